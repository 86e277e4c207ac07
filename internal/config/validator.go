package config

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/cnleo/bumphook/internal/core"
	"github.com/cnleo/bumphook/internal/manifest"
	"github.com/cnleo/bumphook/internal/tui"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "YAML Syntax", "Manifest Settings").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates configuration files and settings.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	configPath  string
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
// The configPath parameter is the path to .bumphook.yaml, or empty when
// no config file is in use.
func NewValidator(fs core.FileSystem, cfg *Config, configPath string) *Validator {
	return &Validator{
		fs:          fs,
		cfg:         cfg,
		configPath:  configPath,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) ([]ValidationResult, error) {
	// Reset validations
	v.validations = make([]ValidationResult, 0)

	// Validate YAML syntax (by trying to load it)
	v.validateYAMLSyntax(ctx)

	// Validate manifest settings
	v.validateManifestSettings(ctx)

	// Validate theme selection
	v.validateTheme()

	return v.validations, nil
}

// validateYAMLSyntax checks if the config file is valid YAML.
func (v *Validator) validateYAMLSyntax(ctx context.Context) {
	if v.configPath == "" {
		// No config file, use defaults
		v.addValidation("YAML Syntax", true, "No .bumphook.yaml file found, using defaults", false)
		return
	}

	// Check if file exists
	if _, err := v.fs.Stat(ctx, v.configPath); err != nil {
		if os.IsNotExist(err) {
			v.addValidation("YAML Syntax", true, "No .bumphook.yaml file found, using defaults", false)
		} else {
			v.addValidation("YAML Syntax", false, fmt.Sprintf("Failed to access config file: %v", err), false)
		}
		return
	}

	// If we got here, the config was successfully loaded (validated in LoadConfigFn)
	v.addValidation("YAML Syntax", true, "Configuration file is valid YAML", false)
}

// validateManifestSettings checks that the configured manifest, format,
// field, and pattern form a usable combination.
func (v *Validator) validateManifestSettings(ctx context.Context) {
	if v.cfg == nil {
		v.addValidation("Manifest Settings", true,
			fmt.Sprintf("No configuration loaded, using default manifest '%s'", manifest.DefaultFilename), false)
		return
	}

	if v.cfg.Format != "" && !manifest.Format(v.cfg.Format).IsValid() {
		v.addValidation("Manifest Settings", false,
			fmt.Sprintf("Unknown format '%s' (valid: line, json, yaml, toml, raw, regex)", v.cfg.Format), false)
		return
	}

	fc := v.cfg.FileConfig()

	switch fc.Format {
	case manifest.FormatRegex:
		if fc.Pattern == "" {
			v.addValidation("Manifest Settings", false,
				"Regex format requires a 'pattern' setting", false)
			return
		}
		if _, err := regexp.Compile(fc.Pattern); err != nil {
			v.addValidation("Manifest Settings", false,
				fmt.Sprintf("Invalid regex pattern: %v", err), false)
			return
		}
	case manifest.FormatLine, manifest.FormatRaw:
		if v.cfg.Field != "" {
			v.addValidation("Manifest Settings", true,
				fmt.Sprintf("Field '%s' is ignored for %s format", v.cfg.Field, fc.Format), true)
		}
	}

	if v.cfg.Pattern != "" && fc.Format != manifest.FormatRegex {
		v.addValidation("Manifest Settings", true,
			fmt.Sprintf("Pattern is ignored for %s format", fc.Format), true)
	}

	if _, err := v.fs.Stat(ctx, fc.Path); err != nil {
		if os.IsNotExist(err) {
			v.addValidation("Manifest Settings", false,
				fmt.Sprintf("Manifest file not found: %s", fc.Path), false)
		} else {
			v.addValidation("Manifest Settings", false,
				fmt.Sprintf("Failed to access manifest file: %v", err), false)
		}
		return
	}

	v.addValidation("Manifest Settings", true,
		fmt.Sprintf("Manifest '%s' (%s format) is accessible", fc.Path, fc.Format), false)
}

// validateTheme checks that the configured theme exists.
func (v *Validator) validateTheme() {
	if v.cfg == nil || v.cfg.Theme == "" {
		v.addValidation("Theme", true, "No theme configured, using default 'bumphook'", false)
		return
	}

	if !tui.IsValidTheme(v.cfg.Theme) {
		v.addValidation("Theme", false,
			fmt.Sprintf("Unknown theme '%s' (available: %s)", v.cfg.Theme, strings.Join(tui.ValidThemes, ", ")), false)
		return
	}

	v.addValidation("Theme", true, fmt.Sprintf("Theme '%s' is valid", v.cfg.Theme), false)
}

// addValidation adds a validation result to the list.
func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if !r.Passed && !r.Warning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
