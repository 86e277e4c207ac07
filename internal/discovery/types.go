package discovery

import "github.com/cnleo/bumphook/internal/manifest"

// Candidate represents a discovered manifest file whose version the tool
// can bump.
type Candidate struct {
	// Path is the absolute path to the manifest file.
	Path string

	// RelPath is the relative path from the discovery root.
	RelPath string

	// Filename is the base name of the file (e.g., "package.json").
	Filename string

	// Version is the version currently declared by the file.
	Version string

	// Format is the file format (line, json, toml, etc.).
	Format manifest.Format

	// Field is the dot-notation path to the version field.
	Field string

	// Description is a human-readable description of the file type.
	Description string
}

// FileConfig converts a Candidate to a manifest.FileConfig.
func (c Candidate) FileConfig() manifest.FileConfig {
	return manifest.FileConfig{
		Path:   c.RelPath,
		Format: c.Format,
		Field:  c.Field,
	}
}

// Result represents the complete discovery result for a project.
type Result struct {
	// Root is the directory the scan started from.
	Root string

	// Candidates contains discovered manifest files, ordered by registry
	// priority and then by depth.
	Candidates []Candidate

	// Drifts contains version disagreements between candidates.
	Drifts []Drift
}

// HasCandidates returns true if any manifest files were found.
func (r *Result) HasCandidates() bool {
	return len(r.Candidates) > 0
}

// IsEmpty returns true if no version sources were found.
func (r *Result) IsEmpty() bool {
	return len(r.Candidates) == 0
}

// HasDrift returns true if candidates disagree on the version.
func (r *Result) HasDrift() bool {
	return len(r.Drifts) > 0
}

// Primary returns the recommended primary candidate: the first root-level
// candidate, or the first candidate overall.
func (r *Result) Primary() *Candidate {
	for i := range r.Candidates {
		if r.Candidates[i].RelPath == r.Candidates[i].Filename {
			return &r.Candidates[i]
		}
	}
	if len(r.Candidates) > 0 {
		return &r.Candidates[0]
	}
	return nil
}

// PrimaryVersion returns the version of the primary candidate, or "" when
// nothing was found.
func (r *Result) PrimaryVersion() string {
	if p := r.Primary(); p != nil {
		return p.Version
	}
	return ""
}

// Drift represents a version disagreement between manifest files.
type Drift struct {
	// Source is the path of the file with the diverging version.
	Source string

	// WantVersion is the primary version the file is expected to match.
	WantVersion string

	// GotVersion is the version found in the file.
	GotVersion string
}

// Events broadcast while a scan is in progress.
type (
	// Sent when the scanner enters a directory.
	EventScanningDir string

	// Sent when a bumpable manifest has been found.
	EventCandidateFound Candidate

	// Sent when the scan has finished, or when a fatal error ends it.
	EventScanDone struct {
		Err error
	}
)
