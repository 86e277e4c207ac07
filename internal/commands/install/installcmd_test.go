package install

import (
	"errors"
	"strings"
	"testing"

	"github.com/cnleo/bumphook/internal/config"
	"github.com/cnleo/bumphook/internal/core"
	"github.com/cnleo/bumphook/internal/git"
	"github.com/cnleo/bumphook/internal/hook"
	"github.com/cnleo/bumphook/internal/testutils"
	"github.com/urfave/cli/v3"
)

// stubManager points the command at a mock filesystem and restores the
// real wiring afterwards.
func stubManager(t *testing.T) *core.MockFileSystem {
	t.Helper()
	fs := core.NewMockFileSystem()
	gitOps := &git.MockGitOperations{
		GitDirFn: func() (string, error) { return "/repo/.git", nil },
	}

	origManager := newManager
	origInteractive := isInteractiveFn
	newManager = func() *hook.Manager { return hook.NewManager(fs, gitOps) }
	isInteractiveFn = func() bool { return false }
	t.Cleanup(func() {
		newManager = origManager
		isInteractiveFn = origInteractive
	})
	return fs
}

func buildCLI(cfg *config.Config) *cli.Command {
	return testutils.BuildCLIForTests(cfg.Manifest, []*cli.Command{Run(cfg)})
}

func TestCLI_InstallCmd(t *testing.T) {
	fs := stubManager(t)

	cfg := config.Default()
	appCli := buildCLI(cfg)

	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, []string{"bumphook", "install"}, t.TempDir())
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}

	if !strings.Contains(output, "Installed pre-commit hook at /repo/.git/hooks/pre-commit") {
		t.Errorf("expected success message, got %q", output)
	}

	shim, ok := fs.GetFile("/repo/.git/hooks/pre-commit")
	if !ok {
		t.Fatal("expected hook shim to be written")
	}
	if !strings.Contains(string(shim), "bumphook run") {
		t.Errorf("expected shim to invoke bumphook run, got %q", shim)
	}
}

func TestCLI_InstallCmd_ForeignHookRefused(t *testing.T) {
	fs := stubManager(t)
	foreign := []byte("#!/bin/sh\nmake lint\n")
	fs.SetFile("/repo/.git/hooks/pre-commit", foreign)

	cfg := config.Default()
	appCli := buildCLI(cfg)

	var runErr error
	output, err := testutils.CaptureStdout(func() {
		runErr = testutils.RunCLITestAllowError(t, appCli, []string{"bumphook", "install"}, t.TempDir())
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}

	if runErr == nil {
		t.Fatal("expected error for foreign hook, got nil")
	}
	if !strings.Contains(output, "--force") {
		t.Errorf("expected suggestion mentioning --force, got %q", output)
	}

	got, _ := fs.GetFile("/repo/.git/hooks/pre-commit")
	if string(got) != string(foreign) {
		t.Errorf("expected foreign hook to be preserved, got %q", got)
	}
}

func TestCLI_InstallCmd_ForceReplacesForeignHook(t *testing.T) {
	fs := stubManager(t)
	fs.SetFile("/repo/.git/hooks/pre-commit", []byte("#!/bin/sh\nmake lint\n"))

	cfg := config.Default()
	appCli := buildCLI(cfg)

	testutils.RunCLITest(t, appCli, []string{"bumphook", "install", "--force"}, t.TempDir())

	got, _ := fs.GetFile("/repo/.git/hooks/pre-commit")
	if !strings.Contains(string(got), "installed by bumphook") {
		t.Errorf("expected shim to replace foreign hook, got %q", got)
	}
}

func TestCLI_InstallCmd_ConfirmReplaces(t *testing.T) {
	fs := stubManager(t)
	fs.SetFile("/repo/.git/hooks/pre-commit", []byte("#!/bin/sh\nmake lint\n"))

	isInteractiveFn = func() bool { return true }
	origConfirm := confirmFn
	confirmFn = func(title, description string) (bool, error) { return true, nil }
	t.Cleanup(func() { confirmFn = origConfirm })

	cfg := config.Default()
	appCli := buildCLI(cfg)

	testutils.RunCLITest(t, appCli, []string{"bumphook", "install"}, t.TempDir())

	got, _ := fs.GetFile("/repo/.git/hooks/pre-commit")
	if !strings.Contains(string(got), "installed by bumphook") {
		t.Errorf("expected shim after confirmation, got %q", got)
	}
}

func TestCLI_InstallCmd_ConfirmDeclined(t *testing.T) {
	fs := stubManager(t)
	foreign := []byte("#!/bin/sh\nmake lint\n")
	fs.SetFile("/repo/.git/hooks/pre-commit", foreign)

	isInteractiveFn = func() bool { return true }
	origConfirm := confirmFn
	confirmFn = func(title, description string) (bool, error) { return false, nil }
	t.Cleanup(func() { confirmFn = origConfirm })

	cfg := config.Default()
	appCli := buildCLI(cfg)

	var runErr error
	_, err := testutils.CaptureStdout(func() {
		runErr = testutils.RunCLITestAllowError(t, appCli, []string{"bumphook", "install"}, t.TempDir())
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}

	if runErr == nil {
		t.Fatal("expected error after declined confirmation, got nil")
	}

	got, _ := fs.GetFile("/repo/.git/hooks/pre-commit")
	if string(got) != string(foreign) {
		t.Errorf("expected foreign hook to be preserved, got %q", got)
	}
}

func TestCLI_InstallCmd_GitDirError(t *testing.T) {
	origManager := newManager
	newManager = func() *hook.Manager {
		return hook.NewManager(core.NewMockFileSystem(), &git.MockGitOperations{
			GitDirFn: func() (string, error) { return "", errors.New("not a git repository") },
		})
	}
	t.Cleanup(func() { newManager = origManager })

	cfg := config.Default()
	appCli := buildCLI(cfg)

	err := testutils.RunCLITestAllowError(t, appCli, []string{"bumphook", "install"}, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "failed to locate git directory") {
		t.Errorf("expected git directory error, got: %v", err)
	}
}
