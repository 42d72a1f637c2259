package designer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/samdwyer/dungeondesigner/internal/assets"
)

// SelectFloor chooses the floor asset for new cells. The cell size is taken
// from the asset's bounding width when it changes, falling back to
// assets.DefaultCellSize when the asset has no bounds.
func (d *Designer) SelectFloor(guid string) error {
	if guid == d.floor {
		return nil
	}
	def, ok := d.registry.Resolve(guid)
	if !ok || def.Kind != assets.KindFloor {
		d.warn("not a floor asset", zap.String("guid", guid))
		return fmt.Errorf("%w: floor %q", assets.ErrUnknownAsset, guid)
	}
	d.floor = guid

	size, measured := assets.CellSize(def)
	if !measured {
		d.warn("could not detect asset size, defaulting to 1", zap.String("asset", def.Name))
	} else {
		d.info("floor selected", zap.String("asset", def.Name), zap.Float64("cell_size", size))
	}
	d.cellSize = size
	return nil
}

// SelectWall chooses the wall asset for new cells. An empty guid clears the
// selection; cells added without a wall asset keep their flags but get no
// wall visuals.
func (d *Designer) SelectWall(guid string) error {
	if guid == "" {
		d.wall = ""
		d.info("wall cleared")
		return nil
	}
	def, ok := d.registry.Resolve(guid)
	if !ok || def.Kind != assets.KindWall {
		d.warn("not a wall asset", zap.String("guid", guid))
		return fmt.Errorf("%w: wall %q", assets.ErrUnknownAsset, guid)
	}
	d.wall = guid
	d.info("wall selected", zap.String("asset", def.Name))
	return nil
}

// Floor returns the selected floor asset, or nil.
func (d *Designer) Floor() *assets.AssetDef {
	def, _ := d.registry.Resolve(d.floor)
	return def
}

// Wall returns the selected wall asset, or nil.
func (d *Designer) Wall() *assets.AssetDef {
	def, _ := d.registry.Resolve(d.wall)
	return def
}

// CycleFloor selects the floor asset step places after the current one.
func (d *Designer) CycleFloor(step int) error {
	floors := d.registry.Floors()
	if len(floors) == 0 {
		d.warn("no floor assets in the catalog")
		return ErrMissingInput
	}
	return d.SelectFloor(floors[next(indexOf(floors, d.floor), step, len(floors))].GUID)
}

// CycleWall selects the wall asset step places after the current one.
// Cycling passes through "no wall" between the last and first asset.
func (d *Designer) CycleWall(step int) error {
	walls := d.registry.Walls()
	// Slot len(walls) is "no wall"
	slot := indexOf(walls, d.wall)
	if slot < 0 {
		slot = len(walls)
	}
	slot = next(slot, step, len(walls)+1)
	if slot == len(walls) {
		return d.SelectWall("")
	}
	return d.SelectWall(walls[slot].GUID)
}

// SetRegistry swaps in a reloaded registry. Selections that no longer
// resolve are cleared.
func (d *Designer) SetRegistry(r *assets.Registry) {
	d.registry = r
	d.info("catalog reloaded", zap.Int("assets", r.Count()))
	if d.floor != "" {
		if def, ok := r.Resolve(d.floor); !ok || def.Kind != assets.KindFloor {
			d.warn("selected floor asset no longer in the catalog", zap.String("guid", d.floor))
			d.floor = ""
		}
	}
	if d.wall != "" {
		if def, ok := r.Resolve(d.wall); !ok || def.Kind != assets.KindWall {
			d.warn("selected wall asset no longer in the catalog", zap.String("guid", d.wall))
			d.wall = ""
		}
	}
}

func indexOf(defs []*assets.AssetDef, guid string) int {
	for i, def := range defs {
		if def.GUID == guid {
			return i
		}
	}
	return -1
}

// next steps i by step within [0, n), treating -1 as "before the first".
func next(i, step, n int) int {
	if i < 0 {
		if step > 0 {
			i = -1
		} else {
			i = 0
		}
	}
	return ((i+step)%n + n) % n
}
