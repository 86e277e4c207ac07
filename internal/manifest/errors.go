package manifest

import (
	"fmt"
	"strings"
)

// NoVersionError indicates that a manifest was read successfully but
// contains no recognizable version.
type NoVersionError struct {
	Path   string
	Format Format
	Field  string
}

func (e *NoVersionError) Error() string {
	return fmt.Sprintf("no version found in %s", e.Path)
}

// Suggestion returns a helpful message describing what a version
// declaration looks like for the file's format.
func (e *NoVersionError) Suggestion() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "No version found in: %s\n\n", e.Path)

	switch e.Format {
	case FormatLine:
		sb.WriteString("A version line must sit on its own, indented, with nothing else on it:\n\n")
		sb.WriteString("  version='0.1.0',\n\n")
		sb.WriteString("Single or double quotes are fine; the trailing comma is optional.\n")
	case FormatJSON, FormatYAML, FormatTOML:
		field := e.Field
		if field == "" {
			field = "version"
		}
		fmt.Fprintf(&sb, "Expected a string value at the %q field, e.g.:\n\n", field)
		fmt.Fprintf(&sb, "  %s: \"0.1.0\"\n", field)
	case FormatRaw:
		sb.WriteString("The file should contain nothing but the version:\n\n")
		sb.WriteString("  0.1.0\n")
	}

	return sb.String()
}
