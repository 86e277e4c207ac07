package initialize

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/cnleo/bumphook/internal/config"
	"github.com/cnleo/bumphook/internal/core"
	"github.com/cnleo/bumphook/internal/discovery"
	"github.com/cnleo/bumphook/internal/git"
	"github.com/cnleo/bumphook/internal/hook"
	"github.com/cnleo/bumphook/internal/manifest"
	"github.com/cnleo/bumphook/internal/printer"
	"github.com/cnleo/bumphook/internal/tui"
	"github.com/urfave/cli/v3"
)

// isInteractiveFn reports whether prompts can be shown. Overridable in
// tests.
var isInteractiveFn = tui.IsInteractive

// newManager returns the hook manager backed by the real filesystem and
// git. Overridable in tests.
var newManager = func() *hook.Manager {
	return hook.NewManager(core.NewOSFileSystem(), git.NewOSGitOperations())
}

// scanTUIFn runs the interactive scan UI. Overridable in tests.
var scanTUIFn = func(ctx context.Context, svc *discovery.Service, root string) (*discovery.Result, error) {
	return tui.NewScanTUI(os.Stdout, svc).Run(ctx, root, -1)
}

// Run returns the "init" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a .bumphook.yaml for this project",
		UsageText: "bumphook init [--scan] [--force] [--yes]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "scan",
				Usage: "Walk the whole tree for nested manifests",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing " + config.ConfigFileName,
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept defaults without prompting",
			},
		},
		Action: runInitCmd,
	}
}

// runInitCmd detects manifests, writes the config file, and offers to
// install the pre-commit hook.
func runInitCmd(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(config.ConfigFileName); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.ConfigFileName)
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	interactive := isInteractiveFn() && !cmd.Bool("yes")

	svc := discovery.NewService(core.NewOSFileSystem())
	result, err := discoverCandidates(ctx, svc, rootDir, cmd.Bool("scan"), interactive)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	workflow := NewWorkflow(NewPrompter(), result, interactive)

	chosen, err := workflow.ChooseCandidate()
	if err != nil {
		return err
	}
	if chosen == nil {
		printer.PrintWarning(fmt.Sprintf("No manifest detected, defaulting to %s", manifest.DefaultFilename))
	}

	newCfg := configForCandidate(chosen)
	data, err := GenerateConfigWithComments(newCfg)
	if err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}
	if err := os.WriteFile(config.ConfigFileName, data, config.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fc := newCfg.FileConfig()
	printer.PrintSuccess(fmt.Sprintf("Created %s tracking %s (%s format)", config.ConfigFileName, fc.Path, fc.Format))

	hookInstalled, err := workflow.OfferHookInstall(ctx, cmd.Bool("yes"))
	if err != nil {
		return err
	}

	printNextSteps(hookInstalled)
	return nil
}

// discoverCandidates finds manifests at root, walking the whole tree
// when scan is set.
func discoverCandidates(ctx context.Context, svc *discovery.Service, root string, scan, interactive bool) (*discovery.Result, error) {
	if !scan {
		candidates, err := detectCandidates(ctx, svc, root, interactive)
		if err != nil {
			return nil, err
		}
		return &discovery.Result{Root: root, Candidates: candidates}, nil
	}

	if interactive {
		return scanTUIFn(ctx, svc, root)
	}

	svc.Subscribe(func(evt any) {
		if c, ok := evt.(discovery.EventCandidateFound); ok {
			printer.PrintSuccess(fmt.Sprintf("Found %s (%s)", c.RelPath, c.Version))
		}
	})
	return svc.Scan(ctx, root, -1)
}

// detectCandidates checks the root directory only, behind a spinner when
// a terminal is attached.
func detectCandidates(ctx context.Context, svc *discovery.Service, root string, interactive bool) ([]discovery.Candidate, error) {
	if !interactive {
		return svc.Detect(ctx, root)
	}

	var candidates []discovery.Candidate
	err := spinner.New().
		Title("Detecting manifests...").
		Context(ctx).
		ActionWithErr(func(ctx context.Context) error {
			var detectErr error
			candidates, detectErr = svc.Detect(ctx, root)
			return detectErr
		}).
		Run()
	return candidates, err
}

// configForCandidate builds the config a chosen candidate implies. With
// no candidate the conventional default applies.
func configForCandidate(c *discovery.Candidate) *config.Config {
	if c == nil {
		return config.Default()
	}
	return &config.Config{
		Manifest: c.RelPath,
		Format:   c.Format.String(),
		Field:    c.Field,
	}
}

// Workflow drives candidate selection and the hook offer.
type Workflow struct {
	prompter    Prompter
	result      *discovery.Result
	interactive bool
}

// NewWorkflow creates a new workflow handler.
func NewWorkflow(prompter Prompter, result *discovery.Result, interactive bool) *Workflow {
	return &Workflow{
		prompter:    prompter,
		result:      result,
		interactive: interactive,
	}
}

// ChooseCandidate picks the manifest to track. Without a terminal, or
// with a single candidate, the highest-priority one wins.
func (w *Workflow) ChooseCandidate() (*discovery.Candidate, error) {
	if !w.result.HasCandidates() {
		return nil, nil
	}
	if !w.interactive || len(w.result.Candidates) == 1 {
		return w.result.Primary(), nil
	}

	options := make([]huh.Option[string], len(w.result.Candidates))
	for i, c := range w.result.Candidates {
		label := fmt.Sprintf("%s (%s, %s)", c.RelPath, c.Description, c.Version)
		options[i] = huh.NewOption(label, c.RelPath)
	}

	selected, err := w.prompter.Select(
		"Which manifest should bumphook bump?",
		"The version in this file is incremented on every commit.",
		options,
	)
	if err != nil {
		return nil, err
	}

	for i := range w.result.Candidates {
		if w.result.Candidates[i].RelPath == selected {
			return &w.result.Candidates[i], nil
		}
	}
	return w.result.Primary(), nil
}

// OfferHookInstall installs the pre-commit hook when the user accepts,
// or unconditionally when yes is set. Installation problems downgrade
// to a hint so a written config is never rolled back.
func (w *Workflow) OfferHookInstall(ctx context.Context, yes bool) (bool, error) {
	install := yes
	if !install {
		if !w.interactive {
			return false, nil
		}
		ok, err := w.prompter.Confirm(
			"Install the pre-commit hook now?",
			"The hook bumps the version automatically before every commit.",
		)
		if err != nil {
			return false, err
		}
		install = ok
	}
	if !install {
		return false, nil
	}

	path, err := newManager().Install(ctx, hook.TypePreCommit, false)
	if err != nil {
		var existsErr *hook.ExistsError
		if errors.As(err, &existsErr) {
			printer.PrintWarning(fmt.Sprintf("A pre-commit hook already exists at %s", existsErr.Path))
			printer.PrintFaint("Run 'bumphook install --force' to replace it.")
		} else {
			printer.PrintWarning(fmt.Sprintf("Could not install the hook: %v", err))
		}
		return false, nil
	}

	printer.PrintSuccess(fmt.Sprintf("Installed %s hook at %s", hook.TypePreCommit, path))
	return true, nil
}

// printNextSteps closes init with pointers at the rest of the setup.
func printNextSteps(hookInstalled bool) {
	fmt.Println()
	printer.PrintInfo("Next steps:")
	fmt.Printf("  - Review %s and adjust settings\n", config.ConfigFileName)
	if !hookInstalled {
		fmt.Println("  - Run 'bumphook install' to add the pre-commit hook")
	}
	fmt.Println("  - Run 'bumphook doctor' to verify setup")
}
