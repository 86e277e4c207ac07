package run

import (
	"context"
	"fmt"

	"github.com/cnleo/bumphook/internal/config"
	"github.com/cnleo/bumphook/internal/core"
	"github.com/cnleo/bumphook/internal/git"
	"github.com/cnleo/bumphook/internal/manifest"
	"github.com/cnleo/bumphook/internal/printer"
	"github.com/urfave/cli/v3"
)

// newStager returns the git operations used to restage bumped files.
// Overridable in tests.
var newStager = func() core.GitCommitOperations {
	return git.NewOSGitOperations()
}

// Run returns the "run" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Bump the manifest version and restage the file",
		UsageText: "bumphook run [--quiet]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress the summary line",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runRunCmd(ctx, cmd, cfg)
		},
	}
}

// runRunCmd bumps the configured manifest and prints a one-line summary.
func runRunCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	fileCfg := cfg.FileConfigFor(cmd.String("manifest"))

	fs := core.NewOSFileSystem()
	bumper := manifest.NewBumper(fs, newStager())

	result, err := bumper.Bump(ctx, fileCfg)
	if err != nil {
		return err
	}

	if cmd.Bool("quiet") {
		return nil
	}

	if !result.Changed() {
		printer.PrintWarning(fmt.Sprintf("No version line found in %s, nothing bumped", fileCfg.Path))
		return nil
	}

	printer.PrintSuccess(fmt.Sprintf("Bumped %s from %s to %s", fileCfg.Path, result.OldVersion, result.NewVersion))
	return nil
}
