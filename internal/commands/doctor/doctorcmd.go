package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/cnleo/bumphook/internal/config"
	"github.com/cnleo/bumphook/internal/core"
	"github.com/cnleo/bumphook/internal/discovery"
	"github.com/cnleo/bumphook/internal/git"
	"github.com/cnleo/bumphook/internal/hook"
	"github.com/cnleo/bumphook/internal/manifest"
	"github.com/cnleo/bumphook/internal/printer"
	"github.com/urfave/cli/v3"
	"golang.org/x/mod/semver"
)

// newGitOps returns the git operations doctor checks against.
// Overridable in tests.
var newGitOps = func() core.GitEnvOperations {
	return git.NewOSGitOperations()
}

// Run returns the "doctor" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Usage:     "Check the environment, configuration, and hook setup",
		UsageText: "bumphook doctor",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctorCmd(ctx, cmd, cfg)
		},
	}
}

// runDoctorCmd runs every check, prints one line per result, and fails
// when any check errored.
func runDoctorCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	fs := core.NewOSFileSystem()
	gitOps := newGitOps()

	var results []config.ValidationResult

	results = append(results, checkGitEnvironment(gitOps)...)
	results = append(results, checkConfig(ctx, fs, cfg)...)

	fileCfg := cfg.FileConfigFor(cmd.String("manifest"))
	results = append(results, checkManifestVersion(ctx, fs, fileCfg)...)
	results = append(results, checkHookInstalled(ctx, fs, gitOps))
	results = append(results, checkRootDrift(ctx, fs, fileCfg)...)

	printResults(results)

	if config.HasErrors(results) {
		return fmt.Errorf("doctor found %d problem(s)", config.ErrorCount(results))
	}
	return nil
}

// checkGitEnvironment verifies git is available and the working
// directory sits inside a repository.
func checkGitEnvironment(gitOps core.GitEnvOperations) []config.ValidationResult {
	if err := gitOps.CheckGit(); err != nil {
		return []config.ValidationResult{{
			Category: "Git",
			Message:  fmt.Sprintf("Git is not available: %v", err),
		}}
	}

	results := []config.ValidationResult{{
		Category: "Git",
		Passed:   true,
		Message:  "Git is installed",
	}}

	inside, err := gitOps.IsInsideWorkTree()
	switch {
	case err != nil:
		results = append(results, config.ValidationResult{
			Category: "Git",
			Message:  fmt.Sprintf("Could not check the work tree: %v", err),
		})
	case !inside:
		results = append(results, config.ValidationResult{
			Category: "Git",
			Message:  "Not inside a git work tree",
		})
	default:
		results = append(results, config.ValidationResult{
			Category: "Git",
			Passed:   true,
			Message:  "Inside a git work tree",
		})
	}

	return results
}

// checkConfig validates the loaded configuration file and settings.
func checkConfig(ctx context.Context, fs core.FileSystem, cfg *config.Config) []config.ValidationResult {
	validator := config.NewValidator(fs, cfg, config.ConfigFileName)
	results, err := validator.Validate(ctx)
	if err != nil {
		return []config.ValidationResult{{
			Category: "Config",
			Message:  fmt.Sprintf("Validation failed: %v", err),
		}}
	}
	return results
}

// checkManifestVersion reads the declared version and warns when it is
// not semver shaped.
func checkManifestVersion(ctx context.Context, fs core.FileSystem, fileCfg manifest.FileConfig) []config.ValidationResult {
	reader := manifest.NewReader(fs)
	res, err := reader.Read(ctx, fileCfg)
	if err != nil {
		return []config.ValidationResult{{
			Category: "Version",
			Message:  fmt.Sprintf("Could not read a version from %s: %v", fileCfg.Path, err),
		}}
	}

	results := []config.ValidationResult{{
		Category: "Version",
		Passed:   true,
		Message:  fmt.Sprintf("Current version: %s", res.Version),
	}}

	if semver.IsValid("v" + res.Version) {
		results = append(results, config.ValidationResult{
			Category: "Version",
			Passed:   true,
			Message:  fmt.Sprintf("Version %s follows semantic versioning", res.Version),
		})
	} else {
		results = append(results, config.ValidationResult{
			Category: "Version",
			Passed:   true,
			Warning:  true,
			Message:  fmt.Sprintf("Version %s is not semver shaped", res.Version),
		})
	}

	return results
}

// checkHookInstalled reports whether the pre-commit shim is in place.
// A missing hook is a warning, not an error, so doctor stays green on
// fresh clones.
func checkHookInstalled(ctx context.Context, fs core.FileSystem, gitOps core.GitEnvOperations) config.ValidationResult {
	mgr := hook.NewManager(fs, gitOps)
	installed, err := mgr.Installed(ctx, hook.TypePreCommit)
	switch {
	case err != nil:
		return config.ValidationResult{
			Category: "Hook",
			Passed:   true,
			Warning:  true,
			Message:  fmt.Sprintf("Could not inspect hooks: %v", err),
		}
	case installed:
		return config.ValidationResult{
			Category: "Hook",
			Passed:   true,
			Message:  "pre-commit hook is installed",
		}
	default:
		return config.ValidationResult{
			Category: "Hook",
			Passed:   true,
			Warning:  true,
			Message:  "pre-commit hook is not installed (run 'bumphook install')",
		}
	}
}

// checkRootDrift compares the configured manifest's version against the
// other manifests declared at the project root.
func checkRootDrift(ctx context.Context, fs core.FileSystem, fileCfg manifest.FileConfig) []config.ValidationResult {
	svc := discovery.NewService(fs)
	candidates, err := svc.Detect(ctx, ".")
	if err != nil || len(candidates) < 2 {
		return nil
	}

	reader := manifest.NewReader(fs)
	base, err := reader.ReadVersion(ctx, fileCfg)
	if err != nil {
		// Already reported by the version check.
		return nil
	}

	result := &discovery.Result{Root: ".", Candidates: candidates}
	drifts := discovery.DetectDriftFrom(result, base)
	if len(drifts) == 0 {
		return []config.ValidationResult{{
			Category: "Drift",
			Passed:   true,
			Message:  fmt.Sprintf("%d root manifests agree on %s", len(candidates), base),
		}}
	}

	results := make([]config.ValidationResult, 0, len(drifts))
	for _, d := range drifts {
		results = append(results, config.ValidationResult{
			Category: "Drift",
			Passed:   true,
			Warning:  true,
			Message:  fmt.Sprintf("%s declares %s, expected %s", d.Source, d.GotVersion, d.WantVersion),
		})
	}
	return results
}

// printResults renders one line per check plus a closing summary.
func printResults(results []config.ValidationResult) {
	printer.PrintBold("bumphook doctor")
	fmt.Println(printer.Faint(strings.Repeat("-", 70)))

	for _, r := range results {
		switch {
		case r.Warning:
			fmt.Printf("%s %s: %s\n", printer.WarnMark(), r.Category, r.Message)
		case r.Passed:
			fmt.Printf("%s %s: %s\n", printer.CheckMark(), r.Category, r.Message)
		default:
			fmt.Printf("%s %s: %s\n", printer.CrossMark(), r.Category, r.Message)
		}
	}

	fmt.Println(printer.Faint(strings.Repeat("-", 70)))

	errs := config.ErrorCount(results)
	warns := config.WarningCount(results)
	passed := len(results) - errs - warns
	summary := fmt.Sprintf("%d passed, %d warning(s), %d error(s)", passed, warns, errs)

	switch {
	case errs > 0:
		printer.PrintError(summary)
	case warns > 0:
		printer.PrintWarning(summary)
	default:
		printer.PrintSuccess(summary)
	}
}
