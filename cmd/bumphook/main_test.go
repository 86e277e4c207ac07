package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRunCLI_MissingManifestError tests the runCLI function from main.go
// which surfaces manifest read errors from the run command.
func TestRunCLI_MissingManifestError(t *testing.T) {
	tmp := t.TempDir()

	yamlPath := filepath.Join(tmp, ".bumphook.yaml")
	if err := os.WriteFile(yamlPath, []byte("manifest: missing/setup.py\n"), 0644); err != nil {
		t.Fatal(err)
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	err = runCLI([]string{"bumphook", "run", "--quiet"})
	if err == nil {
		t.Fatal("expected error for missing manifest, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read manifest") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestRunCLI_UnwritableManifestDirError covers the atomic replace path:
// the sibling temp file cannot be created in a read-only directory.
func TestRunCLI_UnwritableManifestDirError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	tmp := t.TempDir()

	noWrite := filepath.Join(tmp, "nonwritable")
	if err := os.Mkdir(noWrite, 0755); err != nil {
		t.Fatal(err)
	}
	manifestPath := filepath.Join(noWrite, "setup.py")
	if err := os.WriteFile(manifestPath, []byte("version='1.0.0',\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(noWrite, 0555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(noWrite, 0755)
	})

	yamlPath := filepath.Join(tmp, ".bumphook.yaml")
	if err := os.WriteFile(yamlPath, []byte("manifest: nonwritable/setup.py\n"), 0644); err != nil {
		t.Fatal(err)
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	err = runCLI([]string{"bumphook", "run", "--quiet"})
	if err == nil {
		t.Fatal("expected error from replace, got nil")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("unexpected error: %v", err)
	}

	data, readErr := os.ReadFile(manifestPath)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(data) != "version='1.0.0',\n" {
		t.Errorf("manifest was modified despite the failed replace:\n%s", data)
	}
}

// TestRunCLI_BumpsConfiguredManifest runs the whole stack end to end
// against a real file, without a config file present.
func TestRunCLI_BumpsConfiguredManifest(t *testing.T) {
	tmp := t.TempDir()

	manifestPath := filepath.Join(tmp, "setup.py")
	content := "from setuptools import setup\n\nsetup(\n    name='example',\n    version='1.2.3',\n)\n"
	if err := os.WriteFile(manifestPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	if err := runCLI([]string{"bumphook", "run", "--quiet"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "version='1.2.4',") {
		t.Errorf("expected bumped version, got:\n%s", data)
	}
	if !strings.Contains(string(data), "name='example',") {
		t.Errorf("expected untouched lines to be preserved, got:\n%s", data)
	}
}
