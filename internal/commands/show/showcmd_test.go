package show

import (
	"strings"
	"testing"

	"github.com/cnleo/bumphook/internal/config"
	"github.com/cnleo/bumphook/internal/testutils"
	"github.com/urfave/cli/v3"
)

func TestCLI_ShowCmd(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		content  string
		cfg      *config.Config
		expected string
	}{
		{
			name:     "line manifest",
			manifest: "setup.py",
			content:  "setup(\n    version='1.2.3',\n)\n",
			cfg:      &config.Config{Manifest: "setup.py"},
			expected: "1.2.3",
		},
		{
			name:     "json manifest",
			manifest: "package.json",
			content:  `{"name": "example", "version": "4.5.6"}`,
			cfg:      &config.Config{Manifest: "package.json"},
			expected: "4.5.6",
		},
		{
			name:     "toml manifest with nested field",
			manifest: "Cargo.toml",
			content:  "[package]\nname = \"example\"\nversion = \"0.9.1\"\n",
			cfg:      &config.Config{Manifest: "Cargo.toml"},
			expected: "0.9.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			testutils.WriteTempManifest(t, tmpDir, tt.manifest, tt.content)

			appCli := testutils.BuildCLIForTests(tt.cfg.Manifest, []*cli.Command{Run(tt.cfg)})

			output, err := testutils.CaptureStdout(func() {
				testutils.RunCLITest(t, appCli, []string{"bumphook", "show"}, tmpDir)
			})
			if err != nil {
				t.Fatalf("failed to capture stdout: %v", err)
			}

			if strings.TrimSpace(output) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, strings.TrimSpace(output))
			}
		})
	}
}

func TestCLI_ShowCmd_PathOnly(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteTempSetupPy(t, tmpDir, "1.0.0")

	cfg := config.Default()
	appCli := testutils.BuildCLIForTests(cfg.Manifest, []*cli.Command{Run(cfg)})

	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, []string{"bumphook", "show", "--path-only"}, tmpDir)
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}

	if strings.TrimSpace(output) != "setup.py" {
		t.Errorf("expected resolved path %q, got %q", "setup.py", strings.TrimSpace(output))
	}
}

func TestShowCmd_ErrorOnMissingManifest(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := config.Default()
	appCli := testutils.BuildCLIForTests(cfg.Manifest, []*cli.Command{Run(cfg)})

	err := testutils.RunCLITestAllowError(t, appCli, []string{"bumphook", "show"}, tmpDir)
	if err == nil {
		t.Fatal("expected error for missing manifest, got nil")
	}
}

func TestShowCmd_ErrorOnMissingVersion(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteTempManifest(t, tmpDir, "setup.py", "setup(name='bare')\n")

	cfg := config.Default()
	appCli := testutils.BuildCLIForTests(cfg.Manifest, []*cli.Command{Run(cfg)})

	err := testutils.RunCLITestAllowError(t, appCli, []string{"bumphook", "show"}, tmpDir)
	if err == nil || !strings.Contains(err.Error(), "no version found") {
		t.Errorf("expected no version error, got: %v", err)
	}
}
