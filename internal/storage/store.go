package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// Extension is appended to every file-backed save.
const Extension = ".json"

// DefaultName is used when a save name is empty after cleaning.
const DefaultName = "dungeon"

// ErrNotFound is returned when loading a save that does not exist.
var ErrNotFound = errors.New("dungeon file not found")

// Store reads and writes encoded dungeons by base name.
type Store interface {
	// Save writes data under name and returns where it went.
	Save(ctx context.Context, name string, data []byte) (string, error)
	// Load returns the data saved under name, or ErrNotFound.
	Load(ctx context.Context, name string) ([]byte, error)
	// Exists reports whether a save named name exists.
	Exists(ctx context.Context, name string) (bool, error)
	// Location describes where name would be saved.
	Location(name string) string
	// List returns the names of every save, sorted.
	List(ctx context.Context) ([]string, error)
}

// CleanName turns user input into a safe base name: no directories, no
// extension, no surrounding space.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.FromSlash(name))
	name = strings.TrimSuffix(name, Extension)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return DefaultName
	}
	return name
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*AppDataStore)(nil)
)
