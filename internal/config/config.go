package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/cnleo/bumphook/internal/core"
	"github.com/cnleo/bumphook/internal/manifest"
)

// ConfigFileName is the configuration file read from the working directory.
const ConfigFileName = ".bumphook.yaml"

// Config is the main configuration structure for bumphook.
type Config struct {
	// Manifest is the path to the manifest file to bump.
	Manifest string `yaml:"manifest,omitempty"`

	// Format overrides format detection: line, json, yaml, toml, raw or regex.
	Format string `yaml:"format,omitempty"`

	// Field is the dot-notation version field for structured formats.
	Field string `yaml:"field,omitempty"`

	// Pattern is the capture pattern for the regex format.
	Pattern string `yaml:"pattern,omitempty"`

	// Theme selects the interactive prompt theme.
	Theme string `yaml:"theme,omitempty"`
}

// Default returns the configuration used when no config file exists:
// the conventional version line in a setup.py at the working directory
// root.
func Default() *Config {
	return &Config{
		Manifest: manifest.DefaultFilename,
		Format:   manifest.FormatLine.String(),
	}
}

// GetTheme returns the configured theme name, or the default.
func (c *Config) GetTheme() string {
	if c.Theme == "" {
		return "bumphook"
	}
	return c.Theme
}

// FileConfig resolves how the configured manifest is read and bumped,
// inferring format and field from the file name when unset.
func (c *Config) FileConfig() manifest.FileConfig {
	path := c.Manifest
	if path == "" {
		path = manifest.DefaultFilename
	}

	format := manifest.Format(c.Format)
	if c.Format == "" {
		format = manifest.FormatForFile(path)
	}

	field := c.Field
	if field == "" {
		switch format {
		case manifest.FormatJSON, manifest.FormatYAML, manifest.FormatTOML:
			field = manifest.FieldForFormat(path)
		}
	}

	return manifest.FileConfig{
		Path:    path,
		Format:  format,
		Field:   field,
		Pattern: c.Pattern,
	}
}

// FileConfigFor resolves the file configuration for an explicitly
// requested manifest path, such as the --manifest flag. Explicit format
// and field settings apply only to the configured manifest; overrides
// re-infer both from the new file name.
func (c *Config) FileConfigFor(path string) manifest.FileConfig {
	path = NormalizeManifestPath(path)
	if path == "" || path == c.Manifest {
		return c.FileConfig()
	}
	override := Config{Manifest: path}
	return override.FileConfig()
}

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

// osFileOpener is the production implementation of FileOpener.
type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// osFileWriter is the production implementation of FileWriter.
type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

// yamlMarshaler is the production implementation of core.Marshaler using YAML.
type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// Save saves the configuration to the default config file.
func (s *ConfigSaver) Save(cfg *Config) error {
	return s.SaveTo(cfg, ConfigFileName)
}

// SaveTo saves the configuration to the specified file path.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string) error {
	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

// defaultConfigSaver is the default ConfigSaver instance.
var defaultConfigSaver = NewConfigSaver(nil, nil, nil)

// LoadConfigFn and SaveConfigFn are overridable for tests.
var (
	LoadConfigFn = loadConfig
	SaveConfigFn = func(cfg *Config) error {
		return defaultConfigSaver.Save(cfg)
	}
)

func loadConfig() (*Config, error) {
	// Highest priority: ENV variable
	if envPath := os.Getenv("BUMPHOOK_MANIFEST"); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		// Reject relative paths with traversal (use absolute paths instead)
		if strings.Contains(cleanPath, "..") {
			return nil, fmt.Errorf("invalid BUMPHOOK_MANIFEST: path traversal not allowed, use absolute path instead")
		}
		return &Config{Manifest: cleanPath}, nil
	}

	// Second priority: YAML file
	data, err := os.ReadFile(ConfigFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // fallback to default
		}
		return nil, err
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Manifest == "" {
		cfg.Manifest = manifest.DefaultFilename
	}

	return &cfg, nil
}

// NormalizeManifestPath ensures the path is a file, not just a directory.
func NormalizeManifestPath(path string) string {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return filepath.Join(path, manifest.DefaultFilename)
	}

	// If it doesn't exist or is already a file, return as-is
	return path
}

// ConfigFilePerm defines secure file permissions for config files (owner read/write only).
// References core.PermOwnerRW for consistency across the codebase.
const ConfigFilePerm = core.PermOwnerRW
