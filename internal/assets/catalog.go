package assets

import (
	"github.com/gdamore/tcell/v2"
)

// Kind says what an asset can be placed as.
type Kind string

const (
	KindFloor Kind = "floor"
	KindWall  Kind = "wall"
)

// DefaultCellSize is used when a floor asset has no measurable bounds.
const DefaultCellSize = 1.0

// Size is the bounding box of an asset in world units.
type Size struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// AssetDef describes a placeable visual asset.
type AssetDef struct {
	GUID   string `json:"guid" yaml:"guid"`                         // Stable identifier written to save files
	Name   string `json:"name" yaml:"name"`                         // Display name (e.g., "Stone Floor")
	Kind   Kind   `json:"kind" yaml:"kind"`                         // floor or wall
	Glyph  string `json:"glyph" yaml:"glyph"`                       // Single character for the grid view
	Color  string `json:"color" yaml:"color"`                       // Hex color code (e.g., "#9E9E9E")
	Bounds *Size  `json:"bounds,omitempty" yaml:"bounds,omitempty"` // Nil when the asset has no measurable bounds
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *AssetDef) GlyphRune() rune {
	for _, r := range a.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the asset colour, or white if it does not parse.
func (a *AssetDef) TCellColor() tcell.Color {
	if c := tcell.GetColor(a.Color); c != tcell.ColorDefault {
		return c
	}
	return tcell.ColorWhite
}

// CellSize returns the bounding width of the asset. measured is false when the
// asset has no usable bounds and DefaultCellSize was returned instead.
func CellSize(a *AssetDef) (size float64, measured bool) {
	if a == nil || a.Bounds == nil || a.Bounds.X <= 0 {
		return DefaultCellSize, false
	}
	return a.Bounds.X, true
}

// CatalogFile represents the structure of a catalog file, JSON or YAML.
type CatalogFile struct {
	Assets []AssetDef `json:"assets" yaml:"assets"`
}

// LoadDefaultCatalog loads the asset definitions embedded in the binary.
func LoadDefaultCatalog() ([]AssetDef, error) {
	file, err := loadEmbedded[CatalogFile](defaultCatalog)
	if err != nil {
		return nil, err
	}
	return file.Assets, nil
}

// LoadCatalogFile loads asset definitions from a YAML catalog on disk.
func LoadCatalogFile(path string) ([]AssetDef, error) {
	file, err := loadYAMLFile[CatalogFile](path)
	if err != nil {
		return nil, err
	}
	return file.Assets, nil
}
