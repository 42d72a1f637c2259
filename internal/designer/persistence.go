package designer

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeondesigner/internal/storage"
	"github.com/samdwyer/dungeondesigner/internal/world"
)

// ErrNoStore means the designer was built without a save location.
var ErrNoStore = errors.New("no save location configured")

// LoadReport summarizes a Load.
type LoadReport struct {
	Total   int // records in the file
	Loaded  int // cells rebuilt
	Skipped int // records dropped for an unknown floor or a repeated coordinate
}

// Records converts the dungeon's cells to save records, in insertion order.
func Records(dg *world.Dungeon) []storage.CellRecord {
	cells := dg.Cells()
	out := make([]storage.CellRecord, 0, len(cells))
	for _, c := range cells {
		out = append(out, storage.CellRecord{
			X:          c.Pos.X,
			Z:          c.Pos.Z,
			PrefabGUID: c.Floor,
			WallGUID:   c.Wall,
			NorthWall:  c.Walls.North,
			SouthWall:  c.Walls.South,
			EastWall:   c.Walls.East,
			WestWall:   c.Walls.West,
		})
	}
	return out
}

// Saves lists the names of existing saves in the store.
func (d *Designer) Saves(ctx context.Context) ([]string, error) {
	if d.store == nil {
		return nil, ErrNoStore
	}
	names, err := d.store.List(ctx)
	if err != nil {
		d.logger.Warn("cannot list saves", zap.Error(err))
		return nil, err
	}
	return names, nil
}

// Save writes the dungeon to the store under the current file name,
// replacing any earlier save, and returns its location.
func (d *Designer) Save(ctx context.Context) (string, error) {
	ctx, span := d.tracer.Start(ctx, "designer.save")
	defer span.End()

	if d.dungeon == nil {
		d.warn("assign a dungeon first")
		return "", ErrMissingInput
	}
	if d.store == nil {
		return "", d.fail("cannot save", ErrNoStore)
	}

	data, err := storage.Encode(storage.SaveFile{
		Name:  d.dungeon.Name,
		Cells: Records(d.dungeon),
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", d.fail("cannot encode dungeon", err)
	}
	loc, err := d.store.Save(ctx, d.fileName, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", d.fail("cannot write dungeon", err, zap.String("location", d.SaveLocation()))
	}

	span.SetAttributes(attribute.String("save.location", loc), attribute.Int("save.cells", d.dungeon.Len()))
	d.info("dungeon saved to "+loc, zap.Int("cells", d.dungeon.Len()))
	return loc, nil
}

// Load replaces the dungeon's contents with the save under the current file
// name and rebuilds its visuals at the current cell size. Records whose floor
// asset no longer resolves are skipped with a warning; a wall asset that no
// longer resolves keeps the cell but drops its wall visuals.
//
// A missing or unreadable file leaves the dungeon untouched.
func (d *Designer) Load(ctx context.Context) (LoadReport, error) {
	ctx, span := d.tracer.Start(ctx, "designer.load")
	defer span.End()

	if d.dungeon == nil {
		d.warn("assign a dungeon first")
		return LoadReport{}, ErrMissingInput
	}
	if d.store == nil {
		return LoadReport{}, d.fail("cannot load", ErrNoStore)
	}

	data, err := d.store.Load(ctx, d.fileName)
	if errors.Is(err, storage.ErrNotFound) {
		d.warn("no dungeon file found to load", zap.String("location", d.SaveLocation()))
		return LoadReport{}, err
	}
	if err != nil {
		span.RecordError(err)
		return LoadReport{}, d.fail("cannot read dungeon", err, zap.String("location", d.SaveLocation()))
	}
	f, err := storage.Decode(data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return LoadReport{}, d.fail("cannot parse dungeon", err, zap.String("location", d.SaveLocation()))
	}

	d.history.Record("load", d.dungeon.Snapshot())
	d.clear()
	if f.Name != "" {
		d.dungeon.Name = f.Name
	}

	report := LoadReport{Total: len(f.Cells)}
	for _, r := range f.Cells {
		pos := world.GridPos{X: r.X, Z: r.Z}
		if _, ok := d.registry.Resolve(r.PrefabGUID); !ok {
			d.logger.Warn("unknown floor asset, cell skipped",
				zap.String("guid", r.PrefabGUID), zap.Stringer("cell", pos))
			report.Skipped++
			continue
		}
		wall := r.WallGUID
		if wall != "" {
			if _, ok := d.registry.Resolve(wall); !ok {
				d.logger.Warn("unknown wall asset, walls dropped",
					zap.String("guid", wall), zap.Stringer("cell", pos))
				wall = ""
			}
		}
		cell := world.Cell{
			Pos:      pos,
			HasFloor: true,
			Floor:    r.PrefabGUID,
			Wall:     wall,
			Walls: world.Walls{
				North: r.NorthWall,
				South: r.SouthWall,
				East:  r.EastWall,
				West:  r.WestWall,
			},
		}
		if !d.dungeon.Add(cell) {
			d.logger.Warn(fmt.Sprintf("cell already at %s", pos))
			report.Skipped++
			continue
		}
		d.place(cell)
		report.Loaded++
	}

	span.SetAttributes(
		attribute.Int("load.total", report.Total),
		attribute.Int("load.loaded", report.Loaded),
		attribute.Int("load.skipped", report.Skipped),
	)
	msg := fmt.Sprintf("loaded %d cells from %s", report.Loaded, d.SaveLocation())
	if report.Skipped > 0 {
		d.warn(fmt.Sprintf("%s, skipped %d", msg, report.Skipped))
	} else {
		d.info(msg)
	}
	return report, nil
}
