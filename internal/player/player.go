// Package player provides the walker used to preview a dungeon from inside.
package player

import "github.com/samdwyer/dungeondesigner/internal/world"

// Player is a walker standing on a dungeon cell.
// Left and right input turn it; up and down move it along its facing.
type Player struct {
	Pos    world.GridPos
	Facing world.Direction
}

// New creates a player at pos facing north.
func New(pos world.GridPos) *Player {
	return &Player{
		Pos:    pos,
		Facing: world.North,
	}
}

// Spawn places a player on the cell at want, or on the first cell of the
// dungeon when want is empty. It returns false for an empty dungeon.
func Spawn(d *world.Dungeon, want world.GridPos) (*Player, bool) {
	if c, ok := d.At(want); ok && c.HasFloor {
		return New(want), true
	}
	for _, c := range d.Cells() {
		if c.HasFloor {
			return New(c.Pos), true
		}
	}
	return nil, false
}

// RotateLeft turns a quarter turn counter-clockwise.
func (p *Player) RotateLeft() {
	p.Facing = turn(p.Facing, -1)
}

// RotateRight turns a quarter turn clockwise.
func (p *Player) RotateRight() {
	p.Facing = turn(p.Facing, 1)
}

// Forward steps one cell along the facing. It reports whether the step
// was taken.
func (p *Player) Forward(d *world.Dungeon) bool {
	return p.step(d, p.Facing)
}

// Backward steps one cell against the facing without turning.
func (p *Player) Backward(d *world.Dungeon) bool {
	return p.step(d, p.Facing.Opposite())
}

func (p *Player) step(d *world.Dungeon, dir world.Direction) bool {
	if !d.IsPassable(p.Pos, dir) {
		return false
	}
	p.Pos = p.Pos.Neighbor(dir)
	return true
}

// Symbol returns the arrow drawn for the player.
func (p *Player) Symbol() rune {
	switch p.Facing {
	case world.North:
		return '▲'
	case world.East:
		return '►'
	case world.South:
		return '▼'
	case world.West:
		return '◄'
	default:
		return '@'
	}
}

// clockwise order, starting north
var compass = [...]world.Direction{world.North, world.East, world.South, world.West}

func turn(d world.Direction, quarter int) world.Direction {
	for i, c := range compass {
		if c == d {
			return compass[((i+quarter)%len(compass)+len(compass))%len(compass)]
		}
	}
	return world.North
}
