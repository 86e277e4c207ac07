package initialize

import (
	"strings"
	"testing"

	"github.com/cnleo/bumphook/internal/config"
	"github.com/goccy/go-yaml"
)

func TestGenerateConfigWithComments_Header(t *testing.T) {
	data, err := GenerateConfigWithComments(config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dataStr := string(data)
	expectedComments := []string{
		"bumphook configuration file",
		"Documentation:",
		"Generated by 'bumphook init'",
	}
	for _, comment := range expectedComments {
		if !strings.Contains(dataStr, comment) {
			t.Errorf("expected comment %q in output", comment)
		}
	}
}

func TestGenerateConfigWithComments_RoundTrip(t *testing.T) {
	in := &config.Config{
		Manifest: "web/package.json",
		Format:   "json",
		Field:    "version",
	}

	data, err := GenerateConfigWithComments(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out config.Config
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("failed to parse generated config: %v", err)
	}

	if out.Manifest != in.Manifest {
		t.Errorf("Manifest = %q, want %q", out.Manifest, in.Manifest)
	}
	if out.Format != in.Format {
		t.Errorf("Format = %q, want %q", out.Format, in.Format)
	}
	if out.Field != in.Field {
		t.Errorf("Field = %q, want %q", out.Field, in.Field)
	}
}

func TestGenerateConfigWithComments_OmitsEmptySettings(t *testing.T) {
	data, err := GenerateConfigWithComments(config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dataStr := string(data)
	if !strings.Contains(dataStr, "manifest: setup.py") {
		t.Errorf("expected manifest entry, got:\n%s", dataStr)
	}
	if strings.Contains(dataStr, "pattern:") {
		t.Errorf("expected empty pattern to be omitted, got:\n%s", dataStr)
	}
	if strings.Contains(dataStr, "theme:") {
		t.Errorf("expected empty theme to be omitted, got:\n%s", dataStr)
	}
}
