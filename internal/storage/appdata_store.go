package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Object and property keys inside the application data directory.
const (
	dungeonsObject = "dungeons"
	indexObject    = "dungeon_index"
	indexProperty  = "names"
)

// AppDataStore keeps saves in the per-user application data directory.
type AppDataStore struct {
	m *gdata.Manager
}

// OpenAppDataStore opens the data directory for appName.
func OpenAppDataStore(appName string) (*AppDataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open app data for %s: %w", appName, err)
	}
	return NewAppDataStore(m), nil
}

// NewAppDataStore wraps an open gdata manager.
func NewAppDataStore(m *gdata.Manager) *AppDataStore {
	return &AppDataStore{m: m}
}

// Location describes where name is saved.
func (s *AppDataStore) Location(name string) string {
	return "appdata:" + dungeonsObject + "/" + CleanName(name)
}

// Save writes data and records name in the index.
func (s *AppDataStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	name = CleanName(name)
	if err := s.m.SaveObjectProp(dungeonsObject, name, data); err != nil {
		return "", fmt.Errorf("save %s: %w", s.Location(name), err)
	}
	if err := s.addToIndex(ctx, name); err != nil {
		return "", err
	}
	return s.Location(name), nil
}

// Load reads the data saved under name.
func (s *AppDataStore) Load(_ context.Context, name string) ([]byte, error) {
	name = CleanName(name)
	if !s.m.ObjectPropExists(dungeonsObject, name) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Location(name))
	}
	data, err := s.m.LoadObjectProp(dungeonsObject, name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.Location(name), err)
	}
	return data, nil
}

// Exists reports whether a save named name exists.
func (s *AppDataStore) Exists(_ context.Context, name string) (bool, error) {
	return s.m.ObjectPropExists(dungeonsObject, CleanName(name)), nil
}

// List returns the indexed save names that still exist.
func (s *AppDataStore) List(ctx context.Context) ([]string, error) {
	names, err := s.index()
	if err != nil {
		return nil, err
	}
	out := names[:0]
	for _, n := range names {
		if ok, _ := s.Exists(ctx, n); ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *AppDataStore) index() ([]string, error) {
	if !s.m.ObjectPropExists(indexObject, indexProperty) {
		return nil, nil
	}
	data, err := s.m.LoadObjectProp(indexObject, indexProperty)
	if err != nil {
		return nil, fmt.Errorf("load save index: %w", err)
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse save index: %w", err)
	}
	return names, nil
}

func (s *AppDataStore) addToIndex(_ context.Context, name string) error {
	names, err := s.index()
	if err != nil {
		// A broken index only affects listing; rebuild it from this save
		names = nil
	}
	for _, n := range names {
		if n == name {
			return nil
		}
	}
	names = append(names, name)
	sort.Strings(names)

	data, err := yaml.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode save index: %w", err)
	}
	if err := s.m.SaveObjectProp(indexObject, indexProperty, data); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	return nil
}
