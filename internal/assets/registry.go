package assets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrUnknownAsset is returned when an identifier does not resolve.
	ErrUnknownAsset = errors.New("unknown asset")
	// ErrDuplicateGUID is returned when registering an identifier twice.
	ErrDuplicateGUID = errors.New("duplicate asset guid")
)

// NewGUID returns a fresh 32-character hex identifier.
func NewGUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NameGUID derives an identifier from an asset name. The same name always
// yields the same identifier, so catalog entries written without a guid still
// resolve across runs.
func NameGUID(name string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("dungeondesigner:asset:"+name))
	return strings.ReplaceAll(id.String(), "-", "")
}

// Registry maps stable identifiers to asset definitions.
// Definitions keep their registration order.
type Registry struct {
	byGUID map[string]*AssetDef
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byGUID: make(map[string]*AssetDef)}
}

// Register adds a definition, assigning a GUID if it has none.
// It returns the identifier the asset is registered under.
func (r *Registry) Register(def AssetDef) (string, error) {
	if err := validate(def); err != nil {
		return "", err
	}
	if def.GUID == "" {
		def.GUID = NewGUID()
	}
	if _, exists := r.byGUID[def.GUID]; exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateGUID, def.GUID)
	}
	r.byGUID[def.GUID] = &def
	r.order = append(r.order, def.GUID)
	return def.GUID, nil
}

// Upsert registers a definition or replaces the one with the same GUID,
// keeping its position in the listing order.
func (r *Registry) Upsert(def AssetDef) (string, error) {
	if def.GUID != "" {
		if _, exists := r.byGUID[def.GUID]; exists {
			if err := validate(def); err != nil {
				return "", err
			}
			r.byGUID[def.GUID] = &def
			return def.GUID, nil
		}
	}
	return r.Register(def)
}

func validate(def AssetDef) error {
	if def.Name == "" {
		return errors.New("asset name must not be empty")
	}
	if def.Kind != KindFloor && def.Kind != KindWall {
		return fmt.Errorf("asset %q: unknown kind %q", def.Name, def.Kind)
	}
	return nil
}

// Resolve returns the asset registered under guid.
func (r *Registry) Resolve(guid string) (*AssetDef, bool) {
	def, ok := r.byGUID[guid]
	return def, ok
}

// Floors returns the floor assets in registration order.
func (r *Registry) Floors() []*AssetDef {
	return r.ofKind(KindFloor)
}

// Walls returns the wall assets in registration order.
func (r *Registry) Walls() []*AssetDef {
	return r.ofKind(KindWall)
}

// Count returns the number of registered assets.
func (r *Registry) Count() int {
	return len(r.order)
}

func (r *Registry) ofKind(k Kind) []*AssetDef {
	var out []*AssetDef
	for _, guid := range r.order {
		if def := r.byGUID[guid]; def.Kind == k {
			out = append(out, def)
		}
	}
	return out
}

// LoadRegistry builds a registry from the embedded catalog, then applies the
// YAML catalog at path on top of it. An empty path skips the user catalog.
func LoadRegistry(path string) (*Registry, error) {
	defaults, err := LoadDefaultCatalog()
	if err != nil {
		return nil, err
	}
	if len(defaults) == 0 {
		return nil, errors.New("no assets loaded from the built-in catalog")
	}

	r := NewRegistry()
	for _, def := range defaults {
		if _, err := r.Register(def); err != nil {
			return nil, err
		}
	}

	if path == "" {
		return r, nil
	}
	extra, err := LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	for _, def := range extra {
		if def.GUID == "" {
			def.GUID = NameGUID(def.Name)
		}
		if _, err := r.Upsert(def); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
	}
	return r, nil
}

// MustLoadDefaultRegistry loads the built-in registry, panicking on error.
func MustLoadDefaultRegistry() *Registry {
	r, err := LoadRegistry("")
	if err != nil {
		panic(err)
	}
	return r
}
