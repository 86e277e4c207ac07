// Package version holds the bumphook version string.
package version

// version is the current bumphook release. Overridable at build time via
// -ldflags "-X github.com/cnleo/bumphook/internal/version.version=X.Y.Z".
var version = "0.3.0"

// GetVersion returns the current CLI version without the "v" prefix.
func GetVersion() string {
	return version
}
