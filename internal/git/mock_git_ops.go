package git

import "github.com/cnleo/bumphook/internal/core"

// MockGitOperations is a mock implementation of core.GitCommitOperations
// and core.GitEnvOperations for testing.
type MockGitOperations struct {
	StageFilesFn       func(files ...string) error
	CheckGitFn         func() error
	IsInsideWorkTreeFn func() (bool, error)
	GitDirFn           func() (string, error)
}

// Verify MockGitOperations implements the core git interfaces.
var (
	_ core.GitCommitOperations = (*MockGitOperations)(nil)
	_ core.GitEnvOperations    = (*MockGitOperations)(nil)
)

// StageFiles implements core.GitCommitOperations.
func (m *MockGitOperations) StageFiles(files ...string) error {
	if m.StageFilesFn != nil {
		return m.StageFilesFn(files...)
	}
	return nil
}

// CheckGit implements core.GitEnvOperations.
func (m *MockGitOperations) CheckGit() error {
	if m.CheckGitFn != nil {
		return m.CheckGitFn()
	}
	return nil
}

// IsInsideWorkTree implements core.GitEnvOperations.
func (m *MockGitOperations) IsInsideWorkTree() (bool, error) {
	if m.IsInsideWorkTreeFn != nil {
		return m.IsInsideWorkTreeFn()
	}
	return true, nil
}

// GitDir implements core.GitEnvOperations.
func (m *MockGitOperations) GitDir() (string, error) {
	if m.GitDirFn != nil {
		return m.GitDirFn()
	}
	return ".git", nil
}
