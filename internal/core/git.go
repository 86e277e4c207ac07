package core

// GitCommitOperations performs git actions that affect the commit in
// flight.
type GitCommitOperations interface {
	// StageFiles runs git add on the given paths.
	StageFiles(files ...string) error
}

// GitEnvOperations answers questions about the git environment the tool
// runs in.
type GitEnvOperations interface {
	// CheckGit verifies the git executable is available.
	CheckGit() error
	// IsInsideWorkTree reports whether the working directory is inside
	// a git work tree.
	IsInsideWorkTree() (bool, error)
	// GitDir returns the repository's git directory, as reported by
	// git rev-parse --git-dir. The path may be relative to the working
	// directory.
	GitDir() (string, error)
}
