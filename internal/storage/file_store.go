package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// FileStore keeps saves as <dir>/<name>.json on an afero filesystem.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore creates a store rooted at dir on fs.
func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, dir: dir}
}

// NewOSFileStore creates a store on the operating system filesystem.
func NewOSFileStore(dir string) *FileStore {
	return NewFileStore(afero.NewOsFs(), dir)
}

// Location returns the path name is saved at.
func (s *FileStore) Location(name string) string {
	return filepath.Join(s.dir, CleanName(name)+Extension)
}

// Save writes data, creating the directory if needed.
func (s *FileStore) Save(_ context.Context, name string, data []byte) (string, error) {
	path := s.Location(name)
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", s.dir, err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Load reads the file saved under name.
func (s *FileStore) Load(ctx context.Context, name string) ([]byte, error) {
	path := s.Location(name)
	ok, err := s.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether the file saved under name exists.
func (s *FileStore) Exists(_ context.Context, name string) (bool, error) {
	path := s.Location(name)
	ok, err := afero.Exists(s.fs, path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return ok, nil
}

// List returns the base names of the .json files in the directory.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	ok, err := afero.DirExists(s.fs, s.dir)
	if err != nil || !ok {
		return nil, err
	}
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), Extension) {
			names = append(names, strings.TrimSuffix(e.Name(), Extension))
		}
	}
	sort.Strings(names)
	return names, nil
}
