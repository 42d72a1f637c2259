package designer

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeondesigner/internal/assets"
	"github.com/samdwyer/dungeondesigner/internal/world"
)

// AddCell adds a cell at (x, z) using the selected assets and wall flags.
func (d *Designer) AddCell(ctx context.Context, x, z int) error {
	return d.AddCellWith(ctx, world.GridPos{X: x, Z: z}, d.floor, d.wall, d.walls)
}

// AddCellAtCursor adds a cell at the cursor.
func (d *Designer) AddCellAtCursor(ctx context.Context) error {
	return d.AddCell(ctx, d.cursor.X, d.cursor.Z)
}

// AddCellWith adds a cell at pos with explicit assets and walls, then places
// its floor visual and one wall visual per enabled edge.
// It fails with ErrMissingInput when no dungeon or floor is assigned and with
// ErrCellOccupied when pos is taken; in both cases nothing changes.
func (d *Designer) AddCellWith(ctx context.Context, pos world.GridPos, floor, wall string, walls world.Walls) error {
	_, span := d.tracer.Start(ctx, "designer.add_cell")
	defer span.End()
	span.SetAttributes(
		attribute.Int("cell.x", pos.X),
		attribute.Int("cell.z", pos.Z),
		attribute.Int("cell.walls", walls.Count()),
	)

	if d.dungeon == nil || floor == "" {
		d.warn("assign a dungeon and a floor asset first")
		return ErrMissingInput
	}
	if _, ok := d.registry.Resolve(floor); !ok {
		d.warn("floor asset not in the catalog", zap.String("guid", floor))
		return fmt.Errorf("%w: %w", ErrMissingInput, assets.ErrUnknownAsset)
	}
	if d.dungeon.Has(pos) {
		d.warn(fmt.Sprintf("cell already at %s", pos))
		span.SetAttributes(attribute.Bool("cell.duplicate", true))
		return ErrCellOccupied
	}

	d.history.Record("add cell", d.dungeon.Snapshot())
	cell := world.Cell{Pos: pos, HasFloor: true, Floor: floor, Wall: wall, Walls: walls}
	d.dungeon.Add(cell)
	d.place(cell)

	d.info(fmt.Sprintf("added cell at %s", pos), zap.Int("cells", d.dungeon.Len()))
	return nil
}

// RemoveCell deletes the cell at (x, z) and its visuals.
func (d *Designer) RemoveCell(ctx context.Context, x, z int) error {
	_, span := d.tracer.Start(ctx, "designer.remove_cell")
	defer span.End()

	pos := world.GridPos{X: x, Z: z}
	if d.dungeon == nil {
		d.warn("assign a dungeon first")
		return ErrMissingInput
	}
	if !d.dungeon.Has(pos) {
		d.warn(fmt.Sprintf("no cell at %s", pos))
		return ErrNoCell
	}

	d.history.Record("remove cell", d.dungeon.Snapshot())
	d.dungeon.Remove(pos)
	if id, ok := d.tiles[pos]; ok {
		d.scene.Remove(id)
		delete(d.tiles, pos)
	}
	d.info(fmt.Sprintf("removed cell at %s", pos), zap.Int("cells", d.dungeon.Len()))
	return nil
}

// Clear removes every placed visual and every cell. The step can be undone.
func (d *Designer) Clear(ctx context.Context) error {
	_, span := d.tracer.Start(ctx, "designer.clear")
	defer span.End()

	if d.dungeon == nil {
		d.warn("assign a dungeon first")
		return ErrMissingInput
	}
	span.SetAttributes(attribute.Int("cells.before", d.dungeon.Len()))

	d.history.Record("clear", d.dungeon.Snapshot())
	removed := d.clear()
	d.info("dungeon cleared", zap.Int("visuals_removed", removed))
	return nil
}

// clear drops visuals and cells without recording history.
func (d *Designer) clear() int {
	removed := d.scene.DestroyRoot()
	d.tiles = make(map[world.GridPos]int)
	d.dungeon.Clear()
	return removed
}

// Undo reverts the last edit.
func (d *Designer) Undo() error {
	if d.dungeon == nil {
		return ErrMissingInput
	}
	snap, label, ok := d.history.Undo(d.dungeon.Snapshot())
	if !ok {
		d.warn("nothing to undo")
		return ErrNothingToUndo
	}
	d.dungeon.Restore(snap)
	d.rebuildScene()
	d.info("undo " + label)
	return nil
}

// Redo re-applies the last undone edit.
func (d *Designer) Redo() error {
	if d.dungeon == nil {
		return ErrMissingInput
	}
	snap, label, ok := d.history.Redo(d.dungeon.Snapshot())
	if !ok {
		d.warn("nothing to redo")
		return ErrNothingToRedo
	}
	d.dungeon.Restore(snap)
	d.rebuildScene()
	d.info("redo " + label)
	return nil
}

// Generate replaces the dungeon with a generated room-and-corridor layout
// built from the selected assets, with walls on every open edge.
// It returns the number of cells created.
func (d *Designer) Generate(ctx context.Context, rng *rand.Rand, width, depth int) (int, error) {
	ctx, span := d.tracer.Start(ctx, "designer.generate")
	defer span.End()

	if d.dungeon == nil || d.floor == "" {
		d.warn("assign a dungeon and a floor asset first")
		return 0, ErrMissingInput
	}

	floor, _ := world.GenerateLayout(ctx, rng, width, depth)
	walls := world.AutoWalls(floor)

	d.history.Record("generate", d.dungeon.Snapshot())
	d.clear()
	for _, p := range floor {
		cell := world.Cell{Pos: p, HasFloor: true, Floor: d.floor, Wall: d.wall, Walls: walls[p]}
		d.dungeon.Add(cell)
		d.place(cell)
	}

	span.SetAttributes(attribute.Int("cells", len(floor)))
	d.info(fmt.Sprintf("generated %d cells", len(floor)))
	return len(floor), nil
}

// place instantiates the visuals of one cell at the current cell size.
func (d *Designer) place(c world.Cell) {
	pos := world.WorldPosition(c.Pos, d.cellSize)
	tile := d.scene.Instantiate(c.Floor, "tile "+c.Pos.String(), pos, 0, d.scene.Root().ID)
	d.tiles[c.Pos] = tile.ID

	if c.Wall == "" || !c.Walls.Any() {
		return
	}
	if _, ok := d.registry.Resolve(c.Wall); !ok {
		d.warn("wall asset not in the catalog, walls not placed", zap.String("guid", c.Wall), zap.Stringer("cell", c.Pos))
		return
	}
	for _, dir := range world.Directions {
		if !c.Walls.Has(dir) {
			continue
		}
		wp, rot := world.WallTransform(pos, dir)
		d.scene.Instantiate(c.Wall, dir.String()+" wall", wp, rot, tile.ID)
	}
}

// rebuildScene replaces every visual with fresh ones for the current cells.
func (d *Designer) rebuildScene() {
	d.scene.DestroyRoot()
	d.tiles = make(map[world.GridPos]int)
	if d.dungeon == nil {
		return
	}
	for _, c := range d.dungeon.Cells() {
		d.place(c)
	}
}
