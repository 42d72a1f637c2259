package world

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeondesigner/internal/telemetry"
)

const (
	// Default layout dimensions, in cells
	DefaultLayoutWidth = 24
	DefaultLayoutDepth = 16

	// BSP parameters
	minRoomSize = 3 // Minimum room extent
	maxRoomSize = 7 // Maximum room extent
	minLeafSize = 6 // Minimum partition extent before splitting stops
)

// partition is a node of the BSP tree used by GenerateLayout.
type partition struct {
	x, z        int
	w, d        int
	left, right *partition
	room        *Room
}

func (p *partition) isLeaf() bool {
	return p.left == nil && p.right == nil
}

// layout collects floor cells while the tree is walked.
type layout struct {
	rng   *rand.Rand
	w, d  int
	floor map[GridPos]bool
	rooms []Room
}

// GenerateLayout returns the floor cells of a room-and-corridor layout that
// fits inside a width x depth area anchored at the origin. The same rng seed
// always yields the same layout. Cells are returned sorted by Z, then X.
func GenerateLayout(ctx context.Context, rng *rand.Rand, width, depth int) ([]GridPos, []Room) {
	_, span := telemetry.Tracer("world").Start(ctx, "world.generate_layout")
	defer span.End()

	startTime := time.Now()

	l := &layout{rng: rng, w: width, d: depth, floor: make(map[GridPos]bool)}
	root := &partition{w: width, d: depth}
	l.split(root)
	l.placeRooms(root)
	l.connect(root)

	cells := make([]GridPos, 0, len(l.floor))
	for p := range l.floor {
		cells = append(cells, p)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Z != cells[j].Z {
			return cells[i].Z < cells[j].Z
		}
		return cells[i].X < cells[j].X
	})

	span.SetAttributes(
		attribute.Int("layout.width", width),
		attribute.Int("layout.depth", depth),
		attribute.Int("layout.room_count", len(l.rooms)),
		attribute.Int("layout.cell_count", len(cells)),
		attribute.Int64("layout.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return cells, l.rooms
}

// AutoWalls returns, for each floor cell, a wall on every edge that does not
// lead to another floor cell.
func AutoWalls(floor []GridPos) map[GridPos]Walls {
	set := make(map[GridPos]bool, len(floor))
	for _, p := range floor {
		set[p] = true
	}
	out := make(map[GridPos]Walls, len(floor))
	for _, p := range floor {
		var w Walls
		for _, dir := range Directions {
			w = w.Set(dir, !set[p.Neighbor(dir)])
		}
		out[p] = w
	}
	return out
}

func (l *layout) split(p *partition) {
	canX := p.w >= minLeafSize*2
	canZ := p.d >= minLeafSize*2
	if !canX && !canZ {
		return
	}

	// Cut across the longer axis when both are possible
	alongX := canX && (!canZ || p.w > p.d)
	extent := p.d
	if alongX {
		extent = p.w
	}
	cut := minLeafSize + l.rng.Intn(extent-minLeafSize*2+1)

	if alongX {
		p.left = &partition{x: p.x, z: p.z, w: cut, d: p.d}
		p.right = &partition{x: p.x + cut, z: p.z, w: p.w - cut, d: p.d}
	} else {
		p.left = &partition{x: p.x, z: p.z, w: p.w, d: cut}
		p.right = &partition{x: p.x, z: p.z + cut, w: p.w, d: p.d - cut}
	}

	l.split(p.left)
	l.split(p.right)
}

func (l *layout) placeRooms(p *partition) {
	if p == nil {
		return
	}
	if !p.isLeaf() {
		l.placeRooms(p.left)
		l.placeRooms(p.right)
		return
	}

	// Leave a one-cell margin inside the partition
	maxW := min(maxRoomSize, p.w-2)
	maxD := min(maxRoomSize, p.d-2)
	if maxW < minRoomSize || maxD < minRoomSize {
		return
	}
	w := minRoomSize + l.rng.Intn(maxW-minRoomSize+1)
	d := minRoomSize + l.rng.Intn(maxD-minRoomSize+1)

	room := Room{
		X:     p.x + 1 + l.rng.Intn(p.w-w-1),
		Z:     p.z + 1 + l.rng.Intn(p.d-d-1),
		Width: w,
		Depth: d,
	}
	p.room = &room
	l.rooms = append(l.rooms, room)
	for _, c := range room.Positions() {
		l.floor[c] = true
	}
}

// connect joins sibling subtrees bottom-up so every room is reachable.
func (l *layout) connect(p *partition) {
	if p == nil || p.isLeaf() {
		return
	}
	l.connect(p.left)
	l.connect(p.right)

	a, b := anyRoom(p.left), anyRoom(p.right)
	if a != nil && b != nil {
		l.corridor(a.Center(), b.Center())
	}
}

func anyRoom(p *partition) *Room {
	if p == nil {
		return nil
	}
	if p.room != nil {
		return p.room
	}
	if r := anyRoom(p.left); r != nil {
		return r
	}
	return anyRoom(p.right)
}

// corridor carves an L-shaped path, randomly choosing which leg comes first.
func (l *layout) corridor(from, to GridPos) {
	if l.rng.Intn(2) == 0 {
		l.runX(from.X, to.X, from.Z)
		l.runZ(from.Z, to.Z, to.X)
	} else {
		l.runZ(from.Z, to.Z, from.X)
		l.runX(from.X, to.X, to.Z)
	}
}

func (l *layout) runX(x1, x2, z int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		l.carve(GridPos{X: x, Z: z})
	}
}

func (l *layout) runZ(z1, z2, x int) {
	if z1 > z2 {
		z1, z2 = z2, z1
	}
	for z := z1; z <= z2; z++ {
		l.carve(GridPos{X: x, Z: z})
	}
}

func (l *layout) carve(p GridPos) {
	if p.X >= 0 && p.X < l.w && p.Z >= 0 && p.Z < l.d {
		l.floor[p] = true
	}
}
