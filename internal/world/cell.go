// Package world provides the grid model of a designed dungeon.
package world

// Direction identifies one edge of a grid cell.
type Direction int

const (
	// North is the +Z edge.
	North Direction = iota + 1
	// South is the -Z edge.
	South
	// East is the +X edge.
	East
	// West is the -X edge.
	West
)

// Directions lists every edge in a stable order.
var Directions = []Direction{North, South, East, West}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Offset returns the grid step that crosses this edge.
func (d Direction) Offset() GridPos {
	switch d {
	case North:
		return GridPos{Z: 1}
	case South:
		return GridPos{Z: -1}
	case East:
		return GridPos{X: 1}
	case West:
		return GridPos{X: -1}
	default:
		return GridPos{}
	}
}

// Opposite returns the edge facing this one from the neighbouring cell.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Walls holds the wall flags of a cell.
type Walls struct {
	North bool
	South bool
	East  bool
	West  bool
}

// Has reports whether a wall stands on the given edge.
func (w Walls) Has(d Direction) bool {
	switch d {
	case North:
		return w.North
	case South:
		return w.South
	case East:
		return w.East
	case West:
		return w.West
	default:
		return false
	}
}

// Set returns a copy of w with the given edge set to on.
func (w Walls) Set(d Direction, on bool) Walls {
	switch d {
	case North:
		w.North = on
	case South:
		w.South = on
	case East:
		w.East = on
	case West:
		w.West = on
	}
	return w
}

// Toggle returns a copy of w with the given edge flipped.
func (w Walls) Toggle(d Direction) Walls {
	return w.Set(d, !w.Has(d))
}

// Count returns the number of walls set.
func (w Walls) Count() int {
	n := 0
	for _, d := range Directions {
		if w.Has(d) {
			n++
		}
	}
	return n
}

// Any reports whether at least one wall is set.
func (w Walls) Any() bool {
	return w.Count() > 0
}

// Cell is one grid-addressed dungeon tile.
// Floor and Wall hold asset identifiers, not the assets themselves.
type Cell struct {
	Pos      GridPos
	HasFloor bool
	Floor    string
	Wall     string
	Walls    Walls
}
