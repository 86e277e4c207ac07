package discovery

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cnleo/bumphook/internal/bump"
	"github.com/cnleo/bumphook/internal/core"
	"github.com/cnleo/bumphook/internal/manifest"
)

// Service provides manifest discovery functionality.
type Service struct {
	fs     core.FileSystem
	reader *manifest.Reader
	subs   []func(any)
}

// NewService creates a new discovery Service.
func NewService(fs core.FileSystem) *Service {
	return &Service{
		fs:     fs,
		reader: manifest.NewReader(fs),
	}
}

// Subscribe registers a callback invoked for every scan event.
func (s *Service) Subscribe(f func(any)) {
	s.subs = append(s.subs, f)
}

func (s *Service) broadcastEvent(evt any) {
	for _, sub := range s.subs {
		sub(evt)
	}
}

// Detect looks for known manifest files in root only, without descending
// into subdirectories.
func (s *Service) Detect(ctx context.Context, root string) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.candidatesInDir(ctx, root, root)
}

// Scan walks the directory tree under root and returns every bumpable
// manifest found. If maxDepth is negative, the default depth cap is used.
func (s *Service) Scan(ctx context.Context, root string, maxDepth int) (*Result, error) {
	if maxDepth < 0 {
		maxDepth = core.MaxDiscoveryDepth
	}

	result := &Result{
		Root:       root,
		Candidates: make([]Candidate, 0),
	}

	seen := make(map[string]bool) // Track visited paths to avoid duplicates

	var walk func(dir string, depth int) error
	walk = func(dir string, depth int) error {
		// Check depth limit
		if depth > maxDepth {
			return nil
		}

		// Check for context cancellation
		if err := ctx.Err(); err != nil {
			return err
		}

		// Skip if we've already scanned this directory
		if seen[dir] {
			return nil
		}
		seen[dir] = true

		rel, err := filepath.Rel(root, dir)
		if err != nil {
			rel = dir
		}
		s.broadcastEvent(EventScanningDir(rel))

		candidates, err := s.candidatesInDir(ctx, dir, root)
		if err != nil {
			return err
		}
		for _, c := range candidates {
			s.broadcastEvent(EventCandidateFound(c))
		}
		result.Candidates = append(result.Candidates, candidates...)

		entries, err := s.fs.ReadDir(ctx, dir)
		if err != nil {
			// Skip directories we can't read
			return nil
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			name := entry.Name()
			if shouldExclude(name) {
				continue
			}

			if err := walk(filepath.Join(dir, name), depth+1); err != nil {
				return err
			}
		}

		return nil
	}

	if err := walk(root, 0); err != nil {
		return nil, err
	}

	result.Drifts = DetectDrift(result)

	return result, nil
}

// candidatesInDir finds known manifest files declaring a bumpable version
// in a specific directory.
func (s *Service) candidatesInDir(ctx context.Context, dir, root string) ([]Candidate, error) {
	var candidates []Candidate

	for _, known := range manifest.DefaultKnownManifests() {
		// Check for context cancellation
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, known.Filename)

		// Check if file exists
		if _, err := s.fs.Stat(ctx, path); err != nil {
			continue
		}

		// Try to read the version
		res, err := s.reader.Read(ctx, known.FileConfig(path))
		if err != nil {
			continue
		}

		// Only offer files the bumper can actually increment
		if _, ok := bump.NextVersion(res.Version); !ok {
			continue
		}

		// Calculate relative path from root
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		candidates = append(candidates, Candidate{
			Path:        path,
			RelPath:     relPath,
			Filename:    known.Filename,
			Version:     res.Version,
			Format:      known.Format,
			Field:       known.Field,
			Description: known.Description,
		})
	}

	return candidates, nil
}

// shouldExclude checks if a directory should be skipped while scanning.
func shouldExclude(name string) bool {
	// Skip hidden directories
	if strings.HasPrefix(name, ".") {
		return true
	}

	// Skip common non-project directories
	skipDirs := []string{"node_modules", "vendor", "__pycache__", "target", "dist", "build"}
	return slices.Contains(skipDirs, name)
}

// ScanAt is a convenience function that creates a Service and runs a scan.
func ScanAt(ctx context.Context, fsys core.FileSystem, root string, maxDepth int) (*Result, error) {
	svc := NewService(fsys)
	return svc.Scan(ctx, root, maxDepth)
}
