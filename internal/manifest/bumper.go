package manifest

import (
	"context"
	"fmt"

	"github.com/cnleo/bumphook/internal/bump"
	"github.com/cnleo/bumphook/internal/core"
)

// Bumper increments the version in any supported manifest format and
// re-stages the file afterwards.
type Bumper struct {
	rw     *ReadWriter
	line   *bump.Bumper
	stager core.GitCommitOperations
}

// NewBumper creates a Bumper. stager may be nil, in which case bumped
// files are not re-staged.
func NewBumper(fs core.FileSystem, stager core.GitCommitOperations) *Bumper {
	return &Bumper{
		rw:     NewReadWriter(fs),
		line:   bump.NewBumper(fs, stager),
		stager: stager,
	}
}

// Bump increments the version in the file described by cfg. Line
// manifests go through the whole-file rewrite, which bumps every
// matching line and writes the file back even when nothing matched.
// Structured formats read the current version, increment its final
// numeric group, and write the file only on success.
func (b *Bumper) Bump(ctx context.Context, cfg FileConfig) (bump.Result, error) {
	if cfg.Format == FormatLine {
		return b.line.BumpFile(ctx, cfg.Path)
	}

	current, err := b.rw.ReadVersion(ctx, cfg)
	if err != nil {
		return bump.Result{}, err
	}

	next, ok := bump.NextVersion(current)
	if !ok {
		return bump.Result{}, fmt.Errorf("version %q in %q is not a dotted numeric version", current, cfg.Path)
	}

	if err := b.rw.Write(ctx, cfg, next); err != nil {
		return bump.Result{}, err
	}

	if b.stager != nil {
		_ = b.stager.StageFiles(cfg.Path)
	}

	return bump.Result{Matched: 1, OldVersion: current, NewVersion: next}, nil
}
