package world

// Room represents a rectangular block of floor.
type Room struct {
	X, Z         int // Corner with the smallest coordinates
	Width, Depth int // Extent along X and Z
}

// Center returns the centre cell of the room.
func (r Room) Center() GridPos {
	return GridPos{X: r.X + r.Width/2, Z: r.Z + r.Depth/2}
}

// Positions lists every cell of the room, row by row.
func (r Room) Positions() []GridPos {
	out := make([]GridPos, 0, r.Width*r.Depth)
	for z := r.Z; z < r.Z+r.Depth; z++ {
		for x := r.X; x < r.X+r.Width; x++ {
			out = append(out, GridPos{X: x, Z: z})
		}
	}
	return out
}
