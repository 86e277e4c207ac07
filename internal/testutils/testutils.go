package testutils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"
)

// CaptureStdout redirects os.Stdout while fn runs and returns everything
// fn wrote to it.
func CaptureStdout(fn func()) (string, error) {
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", fmt.Errorf("failed to create pipe: %w", err)
	}
	os.Stdout = w

	fn()

	if err := w.Close(); err != nil {
		os.Stdout = old
		return "", fmt.Errorf("failed to close pipe writer: %w", err)
	}
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("failed to read captured output: %w", err)
	}
	return buf.String(), nil
}

// BuildCLIForTests assembles a root command around the given subcommands,
// mirroring the flags the real entrypoint registers.
func BuildCLIForTests(manifestPath string, commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:  "bumphook",
		Usage: "test harness",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "path to the manifest file",
				Value: manifestPath,
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
			},
		},
		Commands: commands,
	}
}

// RunCLITest runs appCli with args from dir and fails the test on any
// error, restoring the working directory afterwards.
func RunCLITest(t *testing.T, appCli *cli.Command, args []string, dir string) {
	t.Helper()
	if err := RunCLITestAllowError(t, appCli, args, dir); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

// RunCLITestAllowError runs appCli with args from dir and returns the
// command error so callers can assert on failures.
func RunCLITestAllowError(t *testing.T, appCli *cli.Command, args []string, dir string) error {
	t.Helper()

	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory to %q: %v", dir, err)
	}
	defer func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	}()

	return appCli.Run(context.Background(), args)
}

// WriteTempConfig writes content as a config file in a fresh temp
// directory and returns the file path.
func WriteTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".bumphook.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

// WriteTempSetupPy writes a minimal setup.py declaring version into dir
// and returns the file path.
func WriteTempSetupPy(t *testing.T, dir, version string) string {
	t.Helper()
	content := fmt.Sprintf(`from setuptools import setup

setup(
    name='example',
    version='%s',
    packages=[],
)
`, version)
	path := filepath.Join(dir, "setup.py")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write temp setup.py: %v", err)
	}
	return path
}

// WriteTempManifest writes content as name inside dir and returns the
// file path.
func WriteTempManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write temp manifest %q: %v", name, err)
	}
	return path
}

// ReadFileString reads path and fails the test when it cannot.
func ReadFileString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %q: %v", path, err)
	}
	return string(data)
}
