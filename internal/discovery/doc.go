// Package discovery locates manifest files whose version bumphook can
// manage. It checks the working directory for known manifests (setup.py,
// package.json, Cargo.toml, etc.) and can walk the project tree to
// suggest configurations during interactive setup.
package discovery
