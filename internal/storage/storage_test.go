package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quasilyte/gdata/v2"
	"github.com/spf13/afero"
)

func TestEncodeDecode(t *testing.T) {
	in := SaveFile{
		Name: "crypt",
		Cells: []CellRecord{
			{X: 0, Z: 0, PrefabGUID: "floor", WallGUID: "wall", NorthWall: true, WestWall: true},
			{X: -3, Z: 7, PrefabGUID: "floor"},
		},
	}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(string(data), "\n    ") {
		t.Error("Encoded file should be indented")
	}

	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if out.Version != Version {
		t.Errorf("Expected version %d, got %d", Version, out.Version)
	}
	if len(out.Cells) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(out.Cells))
	}
	for i := range in.Cells {
		if out.Cells[i] != in.Cells[i] {
			t.Errorf("Record %d: got %+v, want %+v", i, out.Cells[i], in.Cells[i])
		}
	}
}

func TestEncodeEmptyWritesArray(t *testing.T) {
	data, err := Encode(SaveFile{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"cells": []`) {
		t.Errorf("Expected an empty cells array, got %s", data)
	}
}

func TestDecodeHistoricalShapes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		version int
		want    CellRecord
	}{
		{
			name:    "floor only",
			input:   `{"cells":[{"x":1,"z":2,"prefabGuid":"abc"}]}`,
			version: 1,
			want:    CellRecord{X: 1, Z: 2, PrefabGUID: "abc"},
		},
		{
			name:    "wall flags",
			input:   `{"cells":[{"x":1,"z":2,"prefabGuid":"abc","northWall":true,"eastWall":true}]}`,
			version: 1,
			want:    CellRecord{X: 1, Z: 2, PrefabGUID: "abc", NorthWall: true, EastWall: true},
		},
		{
			name:    "split identifiers",
			input:   `{"version":2,"cells":[{"x":1,"z":2,"floorPrefabGuid":"abc","wallPrefabGuid":"w","southWall":true}]}`,
			version: 2,
			want:    CellRecord{X: 1, Z: 2, PrefabGUID: "abc", WallGUID: "w", SouthWall: true},
		},
	}
	for _, tt := range tests {
		f, err := Decode([]byte(tt.input))
		if err != nil {
			t.Errorf("%s: Decode failed: %v", tt.name, err)
			continue
		}
		if f.Version != tt.version {
			t.Errorf("%s: expected version %d, got %d", tt.name, tt.version, f.Version)
		}
		if len(f.Cells) != 1 || f.Cells[0] != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, f.Cells, tt.want)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	for _, input := range []string{`not json`, `{"version":99,"cells":[]}`, `{"cells":[{"x":"one"}]}`} {
		if _, err := Decode([]byte(input)); err == nil {
			t.Errorf("Decode(%s) should fail", input)
		}
	}
}

func TestCleanName(t *testing.T) {
	tests := map[string]string{
		"dungeon":           "dungeon",
		"  level1  ":        "level1",
		"level1.json":       "level1",
		"../../etc/passwd":  "passwd",
		`..\..\evil`:        "evil",
		"":                  DefaultName,
		"..":                DefaultName,
		"nested/dir/floor2": "floor2",
	}
	for in, want := range tests {
		if got := CleanName(in); got != want {
			t.Errorf("CleanName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	s := NewFileStore(fs, "levels")

	if want := filepath.Join("levels", "crypt.json"); s.Location("crypt") != want {
		t.Errorf("Expected location %q, got %q", want, s.Location("crypt"))
	}

	if _, err := s.Load(ctx, "crypt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound before saving, got %v", err)
	}
	names, err := s.List(ctx)
	if err != nil || len(names) != 0 {
		t.Errorf("Expected no saves, got %v (%v)", names, err)
	}

	loc, err := s.Save(ctx, "crypt", []byte(`{"cells":[]}`))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if loc != s.Location("crypt") {
		t.Errorf("Save reported %q, want %q", loc, s.Location("crypt"))
	}
	s.Save(ctx, "attic", []byte(`{}`))
	afero.WriteFile(fs, filepath.Join("levels", "notes.txt"), []byte("x"), 0o644)

	ok, err := s.Exists(ctx, "crypt.json")
	if err != nil || !ok {
		t.Errorf("Expected crypt to exist, got %v (%v)", ok, err)
	}

	data, err := s.Load(ctx, "crypt")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != `{"cells":[]}` {
		t.Errorf("Unexpected data %q", data)
	}

	names, _ = s.List(ctx)
	if fmt.Sprint(names) != "[attic crypt]" {
		t.Errorf("Expected [attic crypt], got %v", names)
	}
}

func TestFileStoreOnDisk(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "levels")
	s := NewOSFileStore(dir)

	if _, err := s.Save(ctx, "disk", []byte("{}")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "disk.json")); err != nil {
		t.Errorf("Expected disk.json on disk: %v", err)
	}
}

// openTestAppData opens a gdata manager whose data directory lives under a
// temporary home, skipping when the environment has no usable data directory.
func openTestAppData(t *testing.T) (*AppDataStore, string) {
	t.Helper()
	home := t.TempDir()
	for _, key := range []string{"HOME", "XDG_DATA_HOME", "APPDATA", "LOCALAPPDATA"} {
		t.Setenv(key, home)
	}
	m, err := gdata.Open(gdata.Config{AppName: "dungeondesigner_test"})
	if err != nil {
		t.Skipf("Cannot open app data: %v", err)
	}
	return NewAppDataStore(m), home
}

func TestAppDataStoreStaysInHome(t *testing.T) {
	ctx := context.Background()
	s, home := openTestAppData(t)

	if _, err := s.Save(ctx, "crypt", []byte(`{"cells":[]}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	var found bool
	filepath.WalkDir(home, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() && strings.Contains(path, "dungeondesigner_test") {
			found = true
		}
		return nil
	})
	if !found {
		t.Errorf("Expected app data files under %s", home)
	}
}

func TestAppDataStore(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestAppData(t)

	if _, err := s.Load(ctx, "crypt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound before saving, got %v", err)
	}

	if _, err := s.Save(ctx, "crypt", []byte(`{"cells":[]}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := s.Save(ctx, "attic", []byte(`{}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Saving again must not duplicate the index entry
	s.Save(ctx, "crypt", []byte(`{"cells":[]}`))

	data, err := s.Load(ctx, "crypt")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != `{"cells":[]}` {
		t.Errorf("Unexpected data %q", data)
	}

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if fmt.Sprint(names) != "[attic crypt]" {
		t.Errorf("Expected [attic crypt], got %v", names)
	}
}
