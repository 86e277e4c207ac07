package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/cnleo/bumphook/internal/core"
)

// OSGitOperations implements core.GitCommitOperations and
// core.GitEnvOperations using actual git commands.
type OSGitOperations struct {
	execCommand func(name string, arg ...string) *exec.Cmd
}

// NewOSGitOperations creates a new OSGitOperations with the default exec.Command.
func NewOSGitOperations() *OSGitOperations {
	return &OSGitOperations{
		execCommand: exec.Command,
	}
}

// Verify OSGitOperations implements the core git interfaces.
var (
	_ core.GitCommitOperations = (*OSGitOperations)(nil)
	_ core.GitEnvOperations    = (*OSGitOperations)(nil)
)

// StageFiles runs git add on the given paths.
func (g *OSGitOperations) StageFiles(files ...string) error {
	args := append([]string{"add", "--"}, files...)
	cmd := g.execCommand("git", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return fmt.Errorf("%s: %w", stderrMsg, err)
		}
		return fmt.Errorf("git add failed: %w", err)
	}
	return nil
}

// CheckGit verifies the git executable is available on PATH.
func (g *OSGitOperations) CheckGit() error {
	cmd := g.execCommand("git", "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git executable not found: %w", err)
	}
	return nil
}

// IsInsideWorkTree reports whether the working directory is inside a
// git work tree. Outside a repository git exits non-zero, which comes
// back as an error.
func (g *OSGitOperations) IsInsideWorkTree() (bool, error) {
	cmd := g.execCommand("git", "rev-parse", "--is-inside-work-tree")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return false, fmt.Errorf("%s: %w", stderrMsg, err)
		}
		return false, fmt.Errorf("git rev-parse failed: %w", err)
	}

	return strings.TrimSpace(stdout.String()) == "true", nil
}

// GitDir returns the repository's git directory as reported by
// git rev-parse --git-dir, relative to the working directory when git
// prints it that way.
func (g *OSGitOperations) GitDir() (string, error) {
	cmd := g.execCommand("git", "rev-parse", "--git-dir")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return "", fmt.Errorf("%s: %w", stderrMsg, err)
		}
		return "", fmt.Errorf("git rev-parse failed: %w", err)
	}

	dir := strings.TrimSpace(stdout.String())
	if dir == "" {
		return "", fmt.Errorf("git rev-parse returned no git directory")
	}
	return dir, nil
}
