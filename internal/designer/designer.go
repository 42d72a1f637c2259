// Package designer implements the dungeon designer's editing operations:
// asset selection, cell placement, reset, undo, layout generation, and
// saving to and loading from JSON.
//
// Expected failures never panic or abort. Each one is logged as a warning,
// leaves the dungeon in a consistent state, and is returned as one of the
// sentinel errors below so the caller can show it.
package designer

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeondesigner/internal/assets"
	"github.com/samdwyer/dungeondesigner/internal/history"
	"github.com/samdwyer/dungeondesigner/internal/scene"
	"github.com/samdwyer/dungeondesigner/internal/storage"
	"github.com/samdwyer/dungeondesigner/internal/telemetry"
	"github.com/samdwyer/dungeondesigner/internal/world"
)

var (
	// ErrMissingInput means no dungeon or no floor asset is assigned.
	ErrMissingInput = errors.New("missing dungeon or floor asset")
	// ErrCellOccupied means a cell already exists at the coordinate.
	ErrCellOccupied = errors.New("cell already occupied")
	// ErrNoCell means no cell exists at the coordinate.
	ErrNoCell = errors.New("no cell at coordinate")
	// ErrNothingToUndo means the history has no step in that direction.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo means there is no undone step to re-apply.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Options configures a Designer.
type Options struct {
	Registry     *assets.Registry
	Store        storage.Store
	Logger       *zap.Logger
	FileName     string
	HistoryDepth int
}

// Designer holds the editing session: the dungeon being edited, the placed
// visuals, the current selections, and the undo history.
type Designer struct {
	dungeon  *world.Dungeon
	registry *assets.Registry
	scene    *scene.Scene
	history  *history.History
	store    storage.Store
	logger   *zap.Logger
	tracer   trace.Tracer

	floor    string // selected floor asset GUID
	wall     string // selected wall asset GUID, may be empty
	walls    world.Walls
	cursor   world.GridPos
	cellSize float64
	fileName string

	tiles  map[world.GridPos]int // floor instance id per cell
	status string
}

// New creates a designer with no dungeon and no selected assets.
func New(opts Options) *Designer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := opts.Registry
	if registry == nil {
		registry = assets.NewRegistry()
	}
	return &Designer{
		registry: registry,
		scene:    scene.New(),
		history:  history.New(opts.HistoryDepth),
		store:    opts.Store,
		logger:   logger.Named("designer"),
		tracer:   telemetry.Tracer("designer"),
		cellSize: assets.DefaultCellSize,
		fileName: storage.CleanName(opts.FileName),
		tiles:    make(map[world.GridPos]int),
	}
}

// SetDungeon assigns the dungeon to edit and rebuilds its visuals.
// The undo history is dropped.
func (d *Designer) SetDungeon(dg *world.Dungeon) {
	d.dungeon = dg
	d.history.Reset()
	d.rebuildScene()
	if dg != nil {
		d.info("editing dungeon", zap.String("name", dg.Name), zap.Int("cells", dg.Len()))
	}
}

// NewDungeon starts editing a new, empty dungeon.
func (d *Designer) NewDungeon(name string) *world.Dungeon {
	dg := world.NewDungeon(name)
	d.SetDungeon(dg)
	return dg
}

// Dungeon returns the dungeon being edited, or nil.
func (d *Designer) Dungeon() *world.Dungeon { return d.dungeon }

// Scene returns the placed visuals.
func (d *Designer) Scene() *scene.Scene { return d.scene }

// Registry returns the asset registry.
func (d *Designer) Registry() *assets.Registry { return d.registry }

// CellSize returns the spacing between placed tiles in world units.
func (d *Designer) CellSize() float64 { return d.cellSize }

// Status returns the message of the last operation.
func (d *Designer) Status() string { return d.status }

// FileName returns the base name saves are written under.
func (d *Designer) FileName() string { return d.fileName }

// SetFileName changes the save base name. Directories and extensions are
// stripped; an empty name falls back to the default.
func (d *Designer) SetFileName(name string) {
	d.fileName = storage.CleanName(name)
	d.info("save file set", zap.String("location", d.SaveLocation()))
}

// SaveLocation describes where Save will write.
func (d *Designer) SaveLocation() string {
	if d.store == nil {
		return d.fileName + storage.Extension
	}
	return d.store.Location(d.fileName)
}

// Cursor returns the coordinate new cells are added at.
func (d *Designer) Cursor() world.GridPos { return d.cursor }

// SetCursor moves the cursor to p.
func (d *Designer) SetCursor(p world.GridPos) { d.cursor = p }

// MoveCursor shifts the cursor by dx, dz.
func (d *Designer) MoveCursor(dx, dz int) {
	d.cursor = d.cursor.Add(world.GridPos{X: dx, Z: dz})
}

// FitCursor moves the cursor to the middle of the occupied area so the
// whole dungeon is centred in view. It reports false for an empty dungeon.
func (d *Designer) FitCursor() bool {
	if d.dungeon == nil {
		return false
	}
	lo, hi, ok := d.dungeon.Bounds()
	if !ok {
		d.info("nothing to fit")
		return false
	}
	d.cursor = world.GridPos{X: (lo.X + hi.X) / 2, Z: (lo.Z + hi.Z) / 2}
	d.info(fmt.Sprintf("view fitted to %s .. %s", lo, hi))
	return true
}

// Walls returns the wall flags applied to new cells.
func (d *Designer) Walls() world.Walls { return d.walls }

// SetWalls replaces the wall flags applied to new cells.
func (d *Designer) SetWalls(w world.Walls) { d.walls = w }

// ToggleWall flips one wall flag for new cells.
func (d *Designer) ToggleWall(dir world.Direction) {
	d.walls = d.walls.Toggle(dir)
}

// CanUndo reports whether Undo has a step to apply.
func (d *Designer) CanUndo() bool { return d.history.CanUndo() }

// CanRedo reports whether Redo has a step to apply.
func (d *Designer) CanRedo() bool { return d.history.CanRedo() }

// UndoDepth returns the number of undo steps kept.
func (d *Designer) UndoDepth() int { return d.history.Len() }

// TileAt returns the floor instance placed for the cell at p.
func (d *Designer) TileAt(p world.GridPos) (*scene.Instance, bool) {
	id, ok := d.tiles[p]
	if !ok {
		return nil, false
	}
	return d.scene.Get(id)
}

// Notify sets the status message shown to the user and logs it.
func (d *Designer) Notify(msg string, fields ...zap.Field) {
	d.info(msg, fields...)
}

func (d *Designer) info(msg string, fields ...zap.Field) {
	d.status = msg
	d.logger.Info(msg, fields...)
}

func (d *Designer) warn(msg string, fields ...zap.Field) {
	d.status = msg
	d.logger.Warn(msg, fields...)
}

func (d *Designer) fail(msg string, err error, fields ...zap.Field) error {
	d.status = fmt.Sprintf("%s: %v", msg, err)
	d.logger.Error(msg, append(fields, zap.Error(err))...)
	return err
}
