package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeondesigner/internal/assets"
	"github.com/samdwyer/dungeondesigner/internal/designer"
	"github.com/samdwyer/dungeondesigner/internal/player"
	"github.com/samdwyer/dungeondesigner/internal/world"
)

func newTestRenderer(t *testing.T) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom failed: %v", err)
	}
	t.Cleanup(s.Close)
	sim.SetSize(100, 30)
	return NewRenderer(s), sim
}

func newTestDesigner(t *testing.T) *designer.Designer {
	t.Helper()
	reg := assets.MustLoadDefaultRegistry()
	d := designer.New(designer.Options{Registry: reg, FileName: "crypt"})
	d.NewDungeon("Crypt")
	d.SelectFloor(reg.Floors()[0].GUID)
	d.SelectWall(reg.Walls()[0].GUID)
	return d
}

func rowText(sim tcell.SimulationScreen, y, from, width int) string {
	var b strings.Builder
	for x := from; x < from+width; x++ {
		ch, _, _, _ := sim.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func screenText(sim tcell.SimulationScreen) string {
	w, h := sim.Size()
	var b strings.Builder
	for y := range h {
		b.WriteString(rowText(sim, y, 0, w))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestRenderCellBlock(t *testing.T) {
	r, sim := newTestRenderer(t)
	d := newTestDesigner(t)
	d.SetWalls(world.Walls{North: true, West: true})
	d.AddCell(context.Background(), 0, 0)
	d.SetCursor(world.GridPos{X: 4})

	r.Render(Frame{Designer: d, Mode: "edit"})

	x, y, ok := r.locate(world.GridPos{})
	if !ok {
		t.Fatal("Origin cell should be visible")
	}
	if ch, _, _, _ := sim.GetContent(x, y); ch != '.' {
		t.Errorf("Expected stone floor glyph in the centre, got %q", ch)
	}
	if got := rowText(sim, y-1, x-1, 3); got != "###" {
		t.Errorf("Expected a north wall row, got %q", got)
	}
	for dy := -1; dy <= 1; dy++ {
		if ch, _, _, _ := sim.GetContent(x-1, y+dy); ch != '#' {
			t.Errorf("Expected west wall at row %d, got %q", dy, ch)
		}
	}
	if ch, _, _, _ := sim.GetContent(x+1, y); ch == '#' {
		t.Error("East wall should not be drawn")
	}
}

func TestRenderCursorAndPanel(t *testing.T) {
	r, sim := newTestRenderer(t)
	d := newTestDesigner(t)
	d.SetCursor(world.GridPos{X: 1, Z: 2})

	r.Render(Frame{Designer: d, Mode: "edit", Help: []string{"q quit"}})

	x, y, ok := r.locate(d.Cursor())
	if !ok {
		t.Fatal("Cursor should be visible")
	}
	ch, _, style, _ := sim.GetContent(x, y)
	_, _, attrs := style.Decompose()
	if ch != '+' || attrs&tcell.AttrReverse == 0 {
		t.Errorf("Expected the reversed cursor marker, got %q", ch)
	}

	text := screenText(sim)
	for _, want := range []string{"Dungeon: Crypt", "Floor: Stone Floor", "Wall: Stone Wall", "Cell size: 10", "File: crypt.json", "q quit"} {
		if !strings.Contains(text, want) {
			t.Errorf("Panel missing %q", want)
		}
	}
}

func TestRenderPlayer(t *testing.T) {
	r, sim := newTestRenderer(t)
	d := newTestDesigner(t)
	d.AddCell(context.Background(), 0, 0)
	p := player.New(world.GridPos{})
	p.RotateRight()

	r.Render(Frame{Designer: d, Player: p, Mode: "walk"})

	x, y, _ := r.locate(p.Pos)
	if ch, _, _, _ := sim.GetContent(x, y); ch != p.Symbol() {
		t.Errorf("Expected the player arrow, got %q", ch)
	}
}

func TestRenderPrompt(t *testing.T) {
	r, sim := newTestRenderer(t)
	d := newTestDesigner(t)

	r.Render(Frame{Designer: d, Mode: "file name", Prompt: "attic", Editing: true})
	if !strings.Contains(screenText(sim), "Save as: attic_") {
		t.Error("Expected the file name prompt")
	}
}

func TestWrap(t *testing.T) {
	got := wrap("no dungeon file found to load", 10)
	want := []string{"no dungeon", "file found", "to load"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("wrap = %q, want %q", got, want)
	}
	if wrap("x", 0) != nil {
		t.Error("Zero width should wrap to nothing")
	}
}

func TestWallFlags(t *testing.T) {
	cases := []struct {
		walls world.Walls
		want  string
	}{
		{world.Walls{North: true, East: true}, "N - E -"},
		{world.Walls{North: true, South: true, East: true, West: true}, "N S E W"},
		{world.Walls{}, "- - - -"},
	}
	for _, c := range cases {
		if got := wallFlags(c.walls); got != c.want {
			t.Errorf("wallFlags(%+v) = %q, want %q", c.walls, got, c.want)
		}
	}
}

func TestRenderExtent(t *testing.T) {
	r, sim := newTestRenderer(t)
	d := newTestDesigner(t)

	r.Render(Frame{Designer: d, Mode: "edit"})
	if !strings.Contains(screenText(sim), "Extent: -") {
		t.Error("An empty dungeon should have no extent")
	}

	d.AddCell(context.Background(), -1, 0)
	d.AddCell(context.Background(), 3, 2)
	r.Render(Frame{Designer: d, Mode: "edit"})
	if !strings.Contains(screenText(sim), "Extent: -1, 0 .. 3, 2") {
		t.Error("Expected the occupied extent in the panel")
	}
}

func TestRenderSaveChoices(t *testing.T) {
	r, sim := newTestRenderer(t)
	d := newTestDesigner(t)

	r.Render(Frame{Designer: d, Mode: "edit", Saves: []string{"attic"}})
	if strings.Contains(screenText(sim), "Saves:") {
		t.Error("Saves are only listed while editing the file name")
	}

	r.Render(Frame{Designer: d, Mode: "file name", Editing: true, Saves: []string{"attic", "crypt"}})
	if !strings.Contains(screenText(sim), "Saves: attic, crypt") {
		t.Error("Expected the save list under the prompt")
	}
}
