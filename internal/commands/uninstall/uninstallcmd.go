package uninstall

import (
	"context"
	"fmt"

	"github.com/cnleo/bumphook/internal/config"
	"github.com/cnleo/bumphook/internal/core"
	"github.com/cnleo/bumphook/internal/git"
	"github.com/cnleo/bumphook/internal/hook"
	"github.com/cnleo/bumphook/internal/printer"
	"github.com/urfave/cli/v3"
)

// newManager returns the hook manager backed by the real filesystem and
// git. Overridable in tests.
var newManager = func() *hook.Manager {
	return hook.NewManager(core.NewOSFileSystem(), git.NewOSGitOperations())
}

// Run returns the "uninstall" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "uninstall",
		Usage:     "Remove the pre-commit hook installed by bumphook",
		UsageText: "bumphook uninstall",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runUninstallCmd(ctx, cmd, cfg)
		},
	}
}

// runUninstallCmd removes the hook shim. Hooks bumphook did not write
// are left alone.
func runUninstallCmd(ctx context.Context, _ *cli.Command, _ *config.Config) error {
	mgr := newManager()

	path, err := mgr.Uninstall(ctx, hook.TypePreCommit)
	if err != nil {
		return err
	}

	printer.PrintSuccess(fmt.Sprintf("Removed %s hook at %s", hook.TypePreCommit, path))
	return nil
}
