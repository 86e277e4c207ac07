// Command bumphook bumps the version declared in a packaging manifest
// and keeps the bumped file staged, typically from a git pre-commit
// hook.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cnleo/bumphook/internal/cli"
	"github.com/cnleo/bumphook/internal/config"
)

func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	return cli.New(cfg).Run(context.Background(), args)
}

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
