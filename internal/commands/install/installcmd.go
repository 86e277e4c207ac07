package install

import (
	"context"
	"errors"
	"fmt"

	"github.com/cnleo/bumphook/internal/config"
	"github.com/cnleo/bumphook/internal/core"
	"github.com/cnleo/bumphook/internal/git"
	"github.com/cnleo/bumphook/internal/hook"
	"github.com/cnleo/bumphook/internal/printer"
	"github.com/cnleo/bumphook/internal/tui"
	"github.com/urfave/cli/v3"
)

// newManager returns the hook manager backed by the real filesystem and
// git. Overridable in tests.
var newManager = func() *hook.Manager {
	return hook.NewManager(core.NewOSFileSystem(), git.NewOSGitOperations())
}

// isInteractiveFn reports whether prompts can be shown. Overridable in
// tests.
var isInteractiveFn = tui.IsInteractive

// confirmFn asks a yes/no question. Overridable in tests.
var confirmFn = tui.Confirm

// Run returns the "install" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install the pre-commit hook into .git/hooks",
		UsageText: "bumphook install [--force]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Replace an existing hook not installed by bumphook",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInstallCmd(ctx, cmd, cfg)
		},
	}
}

// runInstallCmd writes the hook shim, asking before replacing a hook
// that bumphook did not install.
func runInstallCmd(ctx context.Context, cmd *cli.Command, _ *config.Config) error {
	mgr := newManager()
	force := cmd.Bool("force")

	path, err := mgr.Install(ctx, hook.TypePreCommit, force)
	if err != nil {
		var existsErr *hook.ExistsError
		if !errors.As(err, &existsErr) {
			return err
		}

		replace, confirmErr := confirmReplace(existsErr)
		if confirmErr != nil {
			return confirmErr
		}
		if !replace {
			printer.PrintFaint(existsErr.Suggestion())
			return err
		}

		path, err = mgr.Install(ctx, hook.TypePreCommit, true)
		if err != nil {
			return err
		}
	}

	printer.PrintSuccess(fmt.Sprintf("Installed %s hook at %s", hook.TypePreCommit, path))
	return nil
}

// confirmReplace asks whether to overwrite a foreign hook. Outside a
// terminal the answer is always no, leaving --force as the only way.
func confirmReplace(existsErr *hook.ExistsError) (bool, error) {
	if !isInteractiveFn() {
		return false, nil
	}
	return confirmFn(
		"A pre-commit hook already exists. Replace it?",
		fmt.Sprintf("The hook at %s was not installed by bumphook.", existsErr.Path),
	)
}
