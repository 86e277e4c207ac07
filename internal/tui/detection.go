package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvironmentVariables are markers of CI/CD environments where
// interactive prompts must never block a build.
var ciEnvironmentVariables = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"GITLAB_CI",              // GitLab CI
	"CIRCLECI",               // CircleCI
	"TRAVIS",                 // Travis CI
	"JENKINS_HOME",           // Jenkins
	"BUILDKITE",              // Buildkite
	"BITBUCKET_BUILD_NUMBER", // Bitbucket Pipelines
	"DRONE",                  // Drone CI
	"SEMAPHORE",              // Semaphore CI
	"APPVEYOR",               // AppVeyor
	"CODEBUILD_BUILD_ID",     // AWS CodeBuild
	"TF_BUILD",               // Azure Pipelines
}

// IsInteractive determines if the current environment supports
// interactive prompts. It returns false when stdout is not a terminal
// (redirected to a file, a pipe, or git's hook capture) or when a CI
// environment variable is set. Workflows use it to skip prompts and
// fall back to non-interactive defaults.
func IsInteractive() bool {
	if !IsTTY() {
		return false
	}

	for _, env := range ciEnvironmentVariables {
		if os.Getenv(env) != "" {
			return false
		}
	}

	return true
}

// IsTTY checks if stdout is a terminal.
// This is a lower-level check than IsInteractive.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}
