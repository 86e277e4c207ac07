package manifest

import "path/filepath"

// DefaultFilename is the manifest the tool operates on when nothing
// else is configured: a setup.py in the working directory.
const DefaultFilename = "setup.py"

// KnownManifest describes a manifest file type the tool can read and
// bump without configuration.
type KnownManifest struct {
	// Filename is the expected filename.
	Filename string

	// Format is the file format.
	Format Format

	// Field is the dot-notation path to the version field.
	Field string

	// Description is a human-readable description.
	Description string

	// Priority determines detection order (lower = higher priority).
	Priority int
}

// FileConfig builds the FileConfig for an instance of this manifest
// type at path.
func (k KnownManifest) FileConfig(path string) FileConfig {
	return FileConfig{
		Path:   path,
		Format: k.Format,
		Field:  k.Field,
	}
}

// DefaultKnownManifests returns the list of known manifest files, in
// detection order. setup.py comes first: it is the tool's convention
// default.
func DefaultKnownManifests() []KnownManifest {
	return []KnownManifest{
		{
			Filename:    "setup.py",
			Format:      FormatLine,
			Field:       "",
			Description: "Python (setup.py)",
			Priority:    1,
		},
		{
			Filename:    "package.json",
			Format:      FormatJSON,
			Field:       "version",
			Description: "Node.js (package.json)",
			Priority:    2,
		},
		{
			Filename:    "Cargo.toml",
			Format:      FormatTOML,
			Field:       "package.version",
			Description: "Rust (Cargo.toml)",
			Priority:    3,
		},
		{
			Filename:    "pyproject.toml",
			Format:      FormatTOML,
			Field:       "project.version",
			Description: "Python (pyproject.toml)",
			Priority:    4,
		},
		{
			Filename:    "Chart.yaml",
			Format:      FormatYAML,
			Field:       "version",
			Description: "Helm (Chart.yaml)",
			Priority:    5,
		},
		{
			Filename:    "pubspec.yaml",
			Format:      FormatYAML,
			Field:       "version",
			Description: "Dart/Flutter (pubspec.yaml)",
			Priority:    6,
		},
		{
			Filename:    "composer.json",
			Format:      FormatJSON,
			Field:       "version",
			Description: "PHP (composer.json)",
			Priority:    7,
		},
		{
			Filename:    "version.txt",
			Format:      FormatRaw,
			Field:       "",
			Description: "Plain text (version.txt)",
			Priority:    10,
		},
		{
			Filename:    "VERSION",
			Format:      FormatRaw,
			Field:       "",
			Description: "Plain text (VERSION)",
			Priority:    11,
		},
	}
}

// LookupKnownManifest returns the registry entry matching the base
// name of filename.
func LookupKnownManifest(filename string) (KnownManifest, bool) {
	base := filepath.Base(filename)
	for _, km := range DefaultKnownManifests() {
		if km.Filename == base {
			return km, true
		}
	}
	return KnownManifest{}, false
}
