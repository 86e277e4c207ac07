package bump

import (
	"context"
	"fmt"

	"github.com/cnleo/bumphook/internal/core"
)

// Bumper applies version increments to a manifest file on disk.
type Bumper struct {
	fs     core.FileSystem
	stager core.GitCommitOperations
}

// NewBumper creates a Bumper. stager may be nil, in which case the
// rewritten manifest is not re-staged.
func NewBumper(fs core.FileSystem, stager core.GitCommitOperations) *Bumper {
	return &Bumper{
		fs:     fs,
		stager: stager,
	}
}

// BumpFile rewrites the manifest at path, replacing it atomically via a
// sibling temp file, then re-stages it. The file is written even when
// no line matched, and the original keeps its permissions. Staging is
// fire and forget; its exit status is not inspected. Any read or write
// failure leaves the original file untouched.
func (b *Bumper) BumpFile(ctx context.Context, path string) (Result, error) {
	data, err := b.fs.ReadFile(ctx, path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	perm := core.PermOwnerRW
	if info, statErr := b.fs.Stat(ctx, path); statErr == nil {
		perm = info.Mode().Perm()
	}

	out, res := Rewrite(data)
	if err := b.fs.ReplaceFile(ctx, path, out, perm); err != nil {
		return Result{}, fmt.Errorf("failed to replace manifest %q: %w", path, err)
	}

	if b.stager != nil {
		_ = b.stager.StageFiles(path)
	}

	return res, nil
}
