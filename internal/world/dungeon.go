package world

// DefaultName is the name given to a dungeon nobody has named yet.
const DefaultName = "NewDungeonData"

// Dungeon is the designer-authored list of cells, kept in insertion order.
// At most one cell exists per grid position.
type Dungeon struct {
	Name  string
	cells []Cell
}

// NewDungeon creates an empty dungeon.
func NewDungeon(name string) *Dungeon {
	if name == "" {
		name = DefaultName
	}
	return &Dungeon{
		Name:  name,
		cells: make([]Cell, 0),
	}
}

// Add appends a cell if its position is free. It returns false, leaving the
// dungeon untouched, when a cell already occupies that position.
func (d *Dungeon) Add(c Cell) bool {
	if d.Has(c.Pos) {
		return false
	}
	d.cells = append(d.cells, c)
	return true
}

// Has reports whether a cell occupies the position.
func (d *Dungeon) Has(p GridPos) bool {
	return d.indexOf(p) >= 0
}

// At returns the cell at the position.
func (d *Dungeon) At(p GridPos) (*Cell, bool) {
	i := d.indexOf(p)
	if i < 0 {
		return nil, false
	}
	return &d.cells[i], true
}

// Remove deletes the cell at the position, keeping the order of the rest.
func (d *Dungeon) Remove(p GridPos) bool {
	i := d.indexOf(p)
	if i < 0 {
		return false
	}
	d.cells = append(d.cells[:i], d.cells[i+1:]...)
	return true
}

// Clear drops every cell.
func (d *Dungeon) Clear() {
	d.cells = d.cells[:0]
}

// Len returns the number of cells.
func (d *Dungeon) Len() int {
	return len(d.cells)
}

// Cells returns a copy of the cells in insertion order.
func (d *Dungeon) Cells() []Cell {
	out := make([]Cell, len(d.cells))
	copy(out, d.cells)
	return out
}

// Bounds returns the smallest and largest occupied coordinates.
// ok is false for an empty dungeon.
func (d *Dungeon) Bounds() (lo, hi GridPos, ok bool) {
	if len(d.cells) == 0 {
		return GridPos{}, GridPos{}, false
	}
	lo, hi = d.cells[0].Pos, d.cells[0].Pos
	for _, c := range d.cells[1:] {
		lo.X = min(lo.X, c.Pos.X)
		lo.Z = min(lo.Z, c.Pos.Z)
		hi.X = max(hi.X, c.Pos.X)
		hi.Z = max(hi.Z, c.Pos.Z)
	}
	return lo, hi, true
}

// IsPassable reports whether a walker may step from p across edge dir.
// The destination needs a floor and no wall may stand on the shared edge.
func (d *Dungeon) IsPassable(p GridPos, dir Direction) bool {
	from, ok := d.At(p)
	if ok && from.Walls.Has(dir) {
		return false
	}
	to, ok := d.At(p.Neighbor(dir))
	if !ok || !to.HasFloor {
		return false
	}
	return !to.Walls.Has(dir.Opposite())
}

// Snapshot is a value copy of a dungeon's contents.
type Snapshot struct {
	Name  string
	Cells []Cell
}

// Snapshot captures the current contents.
func (d *Dungeon) Snapshot() Snapshot {
	return Snapshot{Name: d.Name, Cells: d.Cells()}
}

// Restore replaces the contents with a snapshot.
func (d *Dungeon) Restore(s Snapshot) {
	d.Name = s.Name
	d.cells = make([]Cell, len(s.Cells))
	copy(d.cells, s.Cells)
}

func (d *Dungeon) indexOf(p GridPos) int {
	for i := range d.cells {
		if d.cells[i].Pos == p {
			return i
		}
	}
	return -1
}
