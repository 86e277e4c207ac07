package cli

import (
	"context"
	"fmt"

	"github.com/cnleo/bumphook/internal/commands/doctor"
	"github.com/cnleo/bumphook/internal/commands/initialize"
	"github.com/cnleo/bumphook/internal/commands/install"
	"github.com/cnleo/bumphook/internal/commands/run"
	"github.com/cnleo/bumphook/internal/commands/show"
	"github.com/cnleo/bumphook/internal/commands/uninstall"
	"github.com/cnleo/bumphook/internal/config"
	"github.com/cnleo/bumphook/internal/printer"
	"github.com/cnleo/bumphook/internal/tui"
	"github.com/cnleo/bumphook/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the bumphook cli.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "bumphook",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Bump the manifest version on every commit",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "manifest",
				Aliases:     []string{"m"},
				Usage:       "Path to the manifest file",
				Value:       cfg.Manifest,
				DefaultText: "setup.py",
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			if noColorFlag {
				printer.SetNoColor()
			}
			tui.SetTheme(cfg.GetTheme())
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(),
			run.Run(cfg),
			show.Run(cfg),
			install.Run(cfg),
			uninstall.Run(cfg),
			doctor.Run(cfg),
		},
	}
}
