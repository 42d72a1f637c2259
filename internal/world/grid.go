package world

import "fmt"

// GridPos is an integer grid coordinate on the horizontal plane.
type GridPos struct {
	X, Z int
}

// Add returns the coordinate offset by o.
func (p GridPos) Add(o GridPos) GridPos {
	return GridPos{X: p.X + o.X, Z: p.Z + o.Z}
}

// Neighbor returns the coordinate across the given edge.
func (p GridPos) Neighbor(d Direction) GridPos {
	return p.Add(d.Offset())
}

func (p GridPos) String() string {
	return fmt.Sprintf("%d, %d", p.X, p.Z)
}

// Vec3 is a position in world space. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// WorldPosition maps a grid coordinate to the world position of its floor tile.
func WorldPosition(p GridPos, cellSize float64) Vec3 {
	return Vec3{X: float64(p.X) * cellSize, Y: 0, Z: float64(p.Z) * cellSize}
}

const (
	// wallOffset is the horizontal distance from a tile centre to its walls.
	wallOffset = 5.0
	// wallHeight lifts walls so they sit on top of the floor.
	wallHeight = 0.5
	// wallTurn is the Y rotation, in degrees, applied to east and west walls.
	wallTurn = 90.0
)

// WallTransform returns the world position and Y rotation of a wall placed on
// the given edge of a tile at tilePos.
func WallTransform(tilePos Vec3, d Direction) (Vec3, float64) {
	switch d {
	case North:
		return tilePos.Add(Vec3{Y: wallHeight, Z: wallOffset}), 0
	case South:
		return tilePos.Add(Vec3{Y: wallHeight, Z: -wallOffset}), 0
	case East:
		return tilePos.Add(Vec3{X: wallOffset, Y: wallHeight}), wallTurn
	case West:
		return tilePos.Add(Vec3{X: -wallOffset, Y: wallHeight}), wallTurn
	default:
		return tilePos, 0
	}
}
