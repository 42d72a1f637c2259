package world

import (
	"context"
	"math/rand"
	"testing"
)

func TestDungeonAddUniquePosition(t *testing.T) {
	d := NewDungeon("test")

	if !d.Add(Cell{Pos: GridPos{X: 2, Z: 3}, HasFloor: true, Floor: "floor"}) {
		t.Fatal("Add to an empty position should succeed")
	}
	if d.Len() != 1 {
		t.Fatalf("Expected 1 cell, got %d", d.Len())
	}

	c, ok := d.At(GridPos{X: 2, Z: 3})
	if !ok {
		t.Fatal("Cell not found at (2,3)")
	}
	if c.Floor != "floor" {
		t.Errorf("Expected floor %q, got %q", "floor", c.Floor)
	}
}

func TestDungeonRejectsDuplicate(t *testing.T) {
	d := NewDungeon("test")
	d.Add(Cell{Pos: GridPos{X: 1, Z: 1}, Floor: "first"})

	if d.Add(Cell{Pos: GridPos{X: 1, Z: 1}, Floor: "second"}) {
		t.Error("Add to an occupied position should fail")
	}
	if d.Len() != 1 {
		t.Errorf("Expected 1 cell after duplicate, got %d", d.Len())
	}

	// The first cell must not be merged or replaced
	c, _ := d.At(GridPos{X: 1, Z: 1})
	if c.Floor != "first" {
		t.Errorf("Existing cell changed: floor %q", c.Floor)
	}
}

func TestDungeonKeepsInsertionOrder(t *testing.T) {
	d := NewDungeon("")
	if d.Name != DefaultName {
		t.Errorf("Expected default name %q, got %q", DefaultName, d.Name)
	}

	positions := []GridPos{{X: 5, Z: 0}, {X: -1, Z: 2}, {X: 0, Z: 0}, {X: 3, Z: -4}}
	for _, p := range positions {
		d.Add(Cell{Pos: p})
	}

	if !d.Remove(GridPos{X: -1, Z: 2}) {
		t.Fatal("Remove of an existing cell should succeed")
	}
	if d.Remove(GridPos{X: 9, Z: 9}) {
		t.Error("Remove of a missing cell should fail")
	}

	want := []GridPos{{X: 5, Z: 0}, {X: 0, Z: 0}, {X: 3, Z: -4}}
	got := d.Cells()
	if len(got) != len(want) {
		t.Fatalf("Expected %d cells, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Pos != want[i] {
			t.Errorf("Cell %d: expected %v, got %v", i, want[i], got[i].Pos)
		}
	}

	lo, hi, ok := d.Bounds()
	if !ok {
		t.Fatal("Bounds of a non-empty dungeon should be ok")
	}
	if lo != (GridPos{X: 0, Z: -4}) || hi != (GridPos{X: 5, Z: 0}) {
		t.Errorf("Unexpected bounds %v..%v", lo, hi)
	}
}

func TestDungeonClear(t *testing.T) {
	for _, n := range []int{0, 1, 17} {
		d := NewDungeon("test")
		for i := 0; i < n; i++ {
			d.Add(Cell{Pos: GridPos{X: i}})
		}
		d.Clear()
		if d.Len() != 0 {
			t.Errorf("Clear with %d cells left %d", n, d.Len())
		}
		if _, _, ok := d.Bounds(); ok {
			t.Error("Bounds of an empty dungeon should not be ok")
		}
	}
}

func TestDungeonSnapshotIsIndependent(t *testing.T) {
	d := NewDungeon("test")
	d.Add(Cell{Pos: GridPos{X: 1}})
	snap := d.Snapshot()

	d.Add(Cell{Pos: GridPos{X: 2}})
	d.Name = "renamed"
	if len(snap.Cells) != 1 || snap.Name != "test" {
		t.Fatalf("Snapshot changed with the dungeon: %+v", snap)
	}

	d.Restore(snap)
	if d.Len() != 1 || d.Name != "test" {
		t.Errorf("Restore did not bring back the snapshot: len=%d name=%q", d.Len(), d.Name)
	}
}

func TestDungeonIsPassable(t *testing.T) {
	d := NewDungeon("test")
	d.Add(Cell{Pos: GridPos{X: 0, Z: 0}, HasFloor: true, Walls: Walls{East: true}})
	d.Add(Cell{Pos: GridPos{X: 1, Z: 0}, HasFloor: true})
	d.Add(Cell{Pos: GridPos{X: 0, Z: 1}, HasFloor: true})
	d.Add(Cell{Pos: GridPos{X: 0, Z: -1}, HasFloor: true, Walls: Walls{North: true}})

	tests := []struct {
		dir  Direction
		want bool
	}{
		{East, false},  // own wall
		{North, true},  // open
		{South, false}, // neighbour's wall on the shared edge
		{West, false},  // no cell
	}
	for _, tt := range tests {
		if got := d.IsPassable(GridPos{}, tt.dir); got != tt.want {
			t.Errorf("IsPassable(origin, %v) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestWorldPosition(t *testing.T) {
	tests := []struct {
		pos      GridPos
		cellSize float64
		want     Vec3
	}{
		{GridPos{X: 0, Z: 0}, 10, Vec3{}},
		{GridPos{X: 3, Z: -2}, 10, Vec3{X: 30, Z: -20}},
		{GridPos{X: 7, Z: 4}, 1, Vec3{X: 7, Z: 4}},
		{GridPos{X: -5, Z: 9}, 2.5, Vec3{X: -12.5, Z: 22.5}},
	}
	for _, tt := range tests {
		if got := WorldPosition(tt.pos, tt.cellSize); got != tt.want {
			t.Errorf("WorldPosition(%v, %v) = %+v, want %+v", tt.pos, tt.cellSize, got, tt.want)
		}
	}
}

func TestWallTransform(t *testing.T) {
	tile := Vec3{X: 10, Z: 20}
	tests := []struct {
		dir     Direction
		wantPos Vec3
		wantRot float64
	}{
		{North, Vec3{X: 10, Y: 0.5, Z: 25}, 0},
		{South, Vec3{X: 10, Y: 0.5, Z: 15}, 0},
		{East, Vec3{X: 15, Y: 0.5, Z: 20}, 90},
		{West, Vec3{X: 5, Y: 0.5, Z: 20}, 90},
	}
	for _, tt := range tests {
		pos, rot := WallTransform(tile, tt.dir)
		if pos != tt.wantPos || rot != tt.wantRot {
			t.Errorf("WallTransform(%v) = %+v rot %v, want %+v rot %v", tt.dir, pos, rot, tt.wantPos, tt.wantRot)
		}
	}
}

func TestWallsHelpers(t *testing.T) {
	var w Walls
	if w.Any() {
		t.Error("Zero Walls should have no walls")
	}
	w = w.Toggle(North).Toggle(West)
	if !w.Has(North) || !w.Has(West) || w.Has(South) {
		t.Errorf("Unexpected walls after toggles: %+v", w)
	}
	if w.Count() != 2 {
		t.Errorf("Expected 2 walls, got %d", w.Count())
	}
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("Opposite is not an involution for %v", d)
		}
		if (GridPos{}).Neighbor(d).Neighbor(d.Opposite()) != (GridPos{}) {
			t.Errorf("Offsets of %v and its opposite do not cancel", d)
		}
	}
}

func TestLayoutReproducibility(t *testing.T) {
	// Generate two layouts with the same seed
	seed := int64(12345)
	ctx := context.Background()

	cells1, rooms1 := GenerateLayout(ctx, rand.New(rand.NewSource(seed)), DefaultLayoutWidth, DefaultLayoutDepth)
	cells2, rooms2 := GenerateLayout(ctx, rand.New(rand.NewSource(seed)), DefaultLayoutWidth, DefaultLayoutDepth)

	if len(rooms1) != len(rooms2) {
		t.Fatalf("Room count mismatch: %d != %d", len(rooms1), len(rooms2))
	}
	for i := range rooms1 {
		if rooms1[i] != rooms2[i] {
			t.Errorf("Room %d mismatch: %+v != %+v", i, rooms1[i], rooms2[i])
		}
	}

	if len(cells1) != len(cells2) {
		t.Fatalf("Cell count mismatch: %d != %d", len(cells1), len(cells2))
	}
	for i := range cells1 {
		if cells1[i] != cells2[i] {
			t.Errorf("Cell %d mismatch: %v != %v", i, cells1[i], cells2[i])
		}
	}
}

func TestLayoutStaysInBounds(t *testing.T) {
	cells, rooms := GenerateLayout(context.Background(), rand.New(rand.NewSource(7)), DefaultLayoutWidth, DefaultLayoutDepth)
	if len(rooms) == 0 {
		t.Fatal("Expected at least one room")
	}

	set := make(map[GridPos]bool)
	for _, c := range cells {
		if c.X < 0 || c.X >= DefaultLayoutWidth || c.Z < 0 || c.Z >= DefaultLayoutDepth {
			t.Errorf("Cell %v outside the layout area", c)
		}
		if set[c] {
			t.Errorf("Cell %v returned twice", c)
		}
		set[c] = true
	}

	// Every room is fully carved
	for i, r := range rooms {
		for _, p := range r.Positions() {
			if !set[p] {
				t.Errorf("Room %d cell %v not in the layout", i, p)
			}
		}
	}
}

func TestLayoutTooSmall(t *testing.T) {
	cells, rooms := GenerateLayout(context.Background(), rand.New(rand.NewSource(1)), 3, 3)
	if len(cells) != 0 || len(rooms) != 0 {
		t.Errorf("Expected an empty layout, got %d cells and %d rooms", len(cells), len(rooms))
	}
}

func TestAutoWalls(t *testing.T) {
	// A 2x1 strip: the shared edge stays open, every other edge gets a wall
	walls := AutoWalls([]GridPos{{X: 0, Z: 0}, {X: 1, Z: 0}})

	left := walls[GridPos{X: 0, Z: 0}]
	if left != (Walls{North: true, South: true, West: true}) {
		t.Errorf("Unexpected walls for left cell: %+v", left)
	}
	right := walls[GridPos{X: 1, Z: 0}]
	if right != (Walls{North: true, South: true, East: true}) {
		t.Errorf("Unexpected walls for right cell: %+v", right)
	}
}
