package show

import (
	"context"
	"fmt"

	"github.com/cnleo/bumphook/internal/config"
	"github.com/cnleo/bumphook/internal/core"
	"github.com/cnleo/bumphook/internal/manifest"
	"github.com/urfave/cli/v3"
)

// Run returns the "show" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the version declared in the manifest",
		UsageText: "bumphook show [--path-only]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "path-only",
				Usage: "Print the resolved manifest path instead of the version",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShowCmd(ctx, cmd, cfg)
		},
	}
}

// runShowCmd prints the current version to stdout, unstyled so the
// output stays pipe friendly.
func runShowCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	fileCfg := cfg.FileConfigFor(cmd.String("manifest"))

	if cmd.Bool("path-only") {
		fmt.Println(fileCfg.Path)
		return nil
	}

	reader := manifest.NewReader(core.NewOSFileSystem())
	res, err := reader.Read(ctx, fileCfg)
	if err != nil {
		return err
	}

	fmt.Println(res.Version)
	return nil
}
