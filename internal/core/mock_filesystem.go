package core

import (
	"context"
	"os"
	"sort"
	"strings"
	"time"
)

// MockFileSystem is an in-memory FileSystem implementation for tests.
// Files are stored in a flat map keyed by path; directories are implied
// by path prefixes. Error fields, when set, are returned by the
// corresponding method instead of performing the operation.
type MockFileSystem struct {
	files map[string][]byte

	// Error injection for failure-path tests.
	ReadFileErr    error
	WriteFileErr   error
	ReplaceFileErr error
	StatErr        error
	ReadDirErr     error
	RemoveErr      error
}

// NewMockFileSystem creates an empty in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
	}
}

// SetFile seeds the filesystem with a file at path.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.files[path] = data
}

// GetFile returns the current content of path and whether it exists.
func (m *MockFileSystem) GetFile(path string) ([]byte, bool) {
	data, ok := m.files[path]
	return data, ok
}

func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return data, nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.WriteFileErr != nil {
		return m.WriteFileErr
	}
	m.files[path] = data
	return nil
}

func (m *MockFileSystem) ReplaceFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.ReplaceFileErr != nil {
		return m.ReplaceFileErr
	}
	m.files[path] = data
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	if data, ok := m.files[path]; ok {
		return mockFileInfo{name: baseName(path), size: int64(len(data))}, nil
	}
	if m.hasDir(path) {
		return mockFileInfo{name: baseName(path), dir: true}, nil
	}
	return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
}

func (m *MockFileSystem) MkdirAll(ctx context.Context, path string, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

func (m *MockFileSystem) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	if _, ok := m.files[path]; !ok {
		return &os.PathError{Op: "remove", Path: path, Err: os.ErrNotExist}
	}
	delete(m.files, path)
	return nil
}

func (m *MockFileSystem) RemoveAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prefix := strings.TrimSuffix(path, "/") + "/"
	for p := range m.files {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(m.files, p)
		}
	}
	return nil
}

// ReadDir lists the immediate children of path, derived from the file
// map. Entries are sorted by name, matching os.ReadDir.
func (m *MockFileSystem) ReadDir(ctx context.Context, path string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadDirErr != nil {
		return nil, m.ReadDirErr
	}

	prefix := strings.TrimSuffix(path, "/") + "/"
	seen := make(map[string]bool)
	var entries []os.DirEntry
	for p, data := range m.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		name, isDir := rest, false
		if i := strings.Index(rest, "/"); i >= 0 {
			name, isDir = rest[:i], true
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		size := int64(0)
		if !isDir {
			size = int64(len(data))
		}
		entries = append(entries, mockDirEntry{info: mockFileInfo{name: name, size: size, dir: isDir}})
	}
	if len(entries) == 0 && !m.hasDir(path) {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// hasDir reports whether any stored file lives under path.
func (m *MockFileSystem) hasDir(path string) bool {
	prefix := strings.TrimSuffix(path, "/") + "/"
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return path == "/" || path == "."
}

func baseName(path string) string {
	trimmed := strings.TrimSuffix(path, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

type mockFileInfo struct {
	name string
	size int64
	dir  bool
}

func (fi mockFileInfo) Name() string { return fi.name }
func (fi mockFileInfo) Size() int64  { return fi.size }
func (fi mockFileInfo) Mode() os.FileMode {
	if fi.dir {
		return os.ModeDir | PermDir
	}
	return PermOwnerRW
}
func (fi mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi mockFileInfo) IsDir() bool        { return fi.dir }
func (fi mockFileInfo) Sys() any           { return nil }

type mockDirEntry struct {
	info mockFileInfo
}

func (e mockDirEntry) Name() string { return e.info.name }
func (e mockDirEntry) IsDir() bool  { return e.info.dir }
func (e mockDirEntry) Type() os.FileMode {
	return e.info.Mode().Type()
}
func (e mockDirEntry) Info() (os.FileInfo, error) { return e.info, nil }

// Ensure MockFileSystem implements FileSystem.
var _ FileSystem = (*MockFileSystem)(nil)
