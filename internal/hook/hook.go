// Package hook installs and removes the git hook shims that make
// bumphook run before every commit.
package hook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cnleo/bumphook/internal/core"
)

// Type identifies a git hook by its file name under .git/hooks.
type Type string

// TypePreCommit is the hook bumphook installs by default.
const TypePreCommit Type = "pre-commit"

// marker distinguishes shims written by bumphook from hooks the user
// installed themselves.
const marker = "# installed by bumphook"

// shim is the script written into .git/hooks. It re-executes the
// bumphook binary, so upgrading the binary upgrades the hook.
const shim = `#!/bin/sh
` + marker + `
exec bumphook run --quiet "$@"
`

// ExistsError is returned when a foreign hook already occupies the hook
// path and force was not requested.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("a %s hook not managed by bumphook already exists at %s", filepath.Base(e.Path), e.Path)
}

// Suggestion returns a hint on how to proceed.
func (e *ExistsError) Suggestion() string {
	var sb strings.Builder
	sb.WriteString("Inspect the existing hook first:\n")
	sb.WriteString(fmt.Sprintf("  cat %s\n", e.Path))
	sb.WriteString("Then re-run with --force to replace it.")
	return sb.String()
}

// NotInstalledError is returned when uninstall finds no bumphook shim.
type NotInstalledError struct {
	Path string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("no bumphook-managed hook found at %s", e.Path)
}

// Manager installs, inspects, and removes hook shims.
type Manager struct {
	fs  core.FileSystem
	git core.GitEnvOperations
}

// NewManager creates a hook Manager over the given filesystem and git
// environment.
func NewManager(fs core.FileSystem, git core.GitEnvOperations) *Manager {
	return &Manager{
		fs:  fs,
		git: git,
	}
}

// Path returns the path of the hook file for typ. The path is relative
// when git reports a relative git directory.
func (m *Manager) Path(typ Type) (string, error) {
	gitDir, err := m.git.GitDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate git directory: %w", err)
	}
	return filepath.Join(gitDir, "hooks", string(typ)), nil
}

// Install writes the hook shim for typ and returns the written path.
// A hook bumphook already manages is overwritten silently; a foreign
// hook is only replaced when force is set, otherwise an ExistsError is
// returned.
func (m *Manager) Install(ctx context.Context, typ Type, force bool) (string, error) {
	path, err := m.Path(typ)
	if err != nil {
		return "", err
	}

	if _, err := m.fs.Stat(ctx, path); err == nil {
		ours, err := m.isOurs(ctx, path)
		if err != nil {
			return "", err
		}
		if !ours && !force {
			return "", &ExistsError{Path: path}
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to inspect hook %q: %w", path, err)
	}

	if err := m.fs.MkdirAll(ctx, filepath.Dir(path), core.PermDir); err != nil {
		return "", fmt.Errorf("failed to create hooks directory: %w", err)
	}

	if err := m.fs.WriteFile(ctx, path, []byte(shim), core.PermExecutable); err != nil {
		return "", fmt.Errorf("failed to write hook %q: %w", path, err)
	}

	return path, nil
}

// Installed reports whether the bumphook shim is present for typ.
func (m *Manager) Installed(ctx context.Context, typ Type) (bool, error) {
	path, err := m.Path(typ)
	if err != nil {
		return false, err
	}
	return m.isOurs(ctx, path)
}

// Uninstall removes the hook shim for typ and returns the removed path.
// It refuses to touch hooks bumphook did not install.
func (m *Manager) Uninstall(ctx context.Context, typ Type) (string, error) {
	path, err := m.Path(typ)
	if err != nil {
		return "", err
	}

	ours, err := m.isOurs(ctx, path)
	if err != nil {
		return "", err
	}
	if !ours {
		return "", &NotInstalledError{Path: path}
	}

	if err := m.fs.Remove(ctx, path); err != nil {
		return "", fmt.Errorf("failed to remove hook %q: %w", path, err)
	}

	return path, nil
}

// isOurs reports whether the file at path carries the bumphook marker.
// A missing file is not an error, just not ours.
func (m *Manager) isOurs(ctx context.Context, path string) (bool, error) {
	data, err := m.fs.ReadFile(ctx, path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read hook %q: %w", path, err)
	}
	return strings.Contains(string(data), marker), nil
}
