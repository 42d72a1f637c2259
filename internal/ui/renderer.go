package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeondesigner/internal/assets"
	"github.com/samdwyer/dungeondesigner/internal/designer"
	"github.com/samdwyer/dungeondesigner/internal/player"
	"github.com/samdwyer/dungeondesigner/internal/world"
)

const (
	blockSize  = 3  // screen columns and rows per grid cell
	panelWidth = 36 // side panel width, separator included
)

var (
	styleGuide  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleBare   = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleCursor = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleLabel  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleValue  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePrompt = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// Frame is everything one render needs.
type Frame struct {
	Designer *designer.Designer
	Player   *player.Player // nil outside walk mode
	Mode     string
	Prompt   string   // shown as a text entry line when non-empty
	Editing  bool     // text entry is active
	Saves    []string // existing save names offered while editing
	Help     []string
}

// viewport maps grid coordinates to the top-left of their screen block.
// North is up, so the top row holds the largest Z.
type viewport struct {
	left, top  int
	cols, rows int
}

func (v viewport) origin(p world.GridPos) (x, y int, ok bool) {
	cx, cz := p.X-v.left, v.top-p.Z
	if cx < 0 || cx >= v.cols || cz < 0 || cz >= v.rows {
		return 0, 0, false
	}
	return cx * blockSize, cz * blockSize, true
}

// Renderer handles drawing the designer to the screen.
type Renderer struct {
	screen *Screen
	view   viewport
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// locate returns the screen position of the centre of a cell's block.
func (r *Renderer) locate(p world.GridPos) (x, y int, ok bool) {
	x, y, ok = r.view.origin(p)
	return x + 1, y + 1, ok
}

// Render draws the grid and the side panel.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	w, h := r.screen.Size()
	mapW := max(w-panelWidth, 0)

	focus := f.Designer.Cursor()
	if f.Player != nil {
		focus = f.Player.Pos
	}
	cols, rows := mapW/blockSize, h/blockSize
	r.view = viewport{
		left: focus.X - cols/2,
		top:  focus.Z + rows/2,
		cols: cols,
		rows: rows,
	}

	r.drawGrid(f)
	r.drawPanel(f, mapW, w, h)
	r.screen.Show()
}

func (r *Renderer) drawGrid(f Frame) {
	d := f.Designer
	reg := d.Registry()

	for cz := 0; cz < r.view.rows; cz++ {
		for cx := 0; cx < r.view.cols; cx++ {
			r.screen.SetContent(cx*blockSize+1, cz*blockSize+1, '·', styleGuide)
		}
	}

	if dg := d.Dungeon(); dg != nil {
		for _, c := range dg.Cells() {
			x, y, ok := r.view.origin(c.Pos)
			if !ok {
				continue
			}
			r.drawCell(reg, c, x, y)
		}
	}

	if f.Player != nil {
		if x, y, ok := r.locate(f.Player.Pos); ok {
			r.screen.SetContent(x, y, f.Player.Symbol(), stylePlayer)
		}
		return
	}
	if x, y, ok := r.locate(d.Cursor()); ok {
		ch := '+'
		if dg := d.Dungeon(); dg != nil {
			if c, found := dg.At(d.Cursor()); found {
				ch = glyphOf(reg, c.Floor, '.')
			}
		}
		r.screen.SetContent(x, y, ch, styleCursor)
	}
}

// drawCell draws the floor glyph in the centre of the block and one wall
// edge per enabled flag. Flags without a wall asset are drawn dimmed.
func (r *Renderer) drawCell(reg *assets.Registry, c world.Cell, x, y int) {
	floorStyle := styleBare
	if def, ok := reg.Resolve(c.Floor); ok {
		floorStyle = tcell.StyleDefault.Foreground(def.TCellColor())
	}
	for dy := range blockSize {
		for dx := range blockSize {
			r.screen.SetContent(x+dx, y+dy, ' ', floorStyle)
		}
	}
	r.screen.SetContent(x+1, y+1, glyphOf(reg, c.Floor, '?'), floorStyle)

	wallRune, wallStyle := '·', styleBare
	if def, ok := reg.Resolve(c.Wall); ok {
		wallRune, wallStyle = def.GlyphRune(), tcell.StyleDefault.Foreground(def.TCellColor())
	}
	last := blockSize - 1
	for i := range blockSize {
		if c.Walls.North {
			r.screen.SetContent(x+i, y, wallRune, wallStyle)
		}
		if c.Walls.South {
			r.screen.SetContent(x+i, y+last, wallRune, wallStyle)
		}
		if c.Walls.West {
			r.screen.SetContent(x, y+i, wallRune, wallStyle)
		}
		if c.Walls.East {
			r.screen.SetContent(x+last, y+i, wallRune, wallStyle)
		}
	}
}

func glyphOf(reg *assets.Registry, guid string, fallback rune) rune {
	if def, ok := reg.Resolve(guid); ok {
		return def.GlyphRune()
	}
	return fallback
}

func (r *Renderer) drawPanel(f Frame, x0, w, h int) {
	d := f.Designer
	for y := range h {
		r.screen.SetContent(x0, y, '│', styleHelp)
	}
	x := x0 + 2
	width := max(w-x, 0)

	y := 0
	line := func(label, value string) {
		n := r.screen.DrawText(x, y, width, label, styleLabel)
		r.screen.DrawText(x+n, y, width-n, value, styleValue)
		y++
	}

	name, cells, extent := "(none)", 0, "-"
	if dg := d.Dungeon(); dg != nil {
		name, cells = dg.Name, dg.Len()
		if lo, hi, ok := dg.Bounds(); ok {
			extent = fmt.Sprintf("%s .. %s", lo, hi)
		}
	}
	line("Dungeon: ", name)
	line("Cells: ", fmt.Sprint(cells))
	line("Extent: ", extent)
	line("Cell size: ", fmt.Sprintf("%g", d.CellSize()))
	line("Floor: ", assetName(d.Floor()))
	line("Wall: ", assetName(d.Wall()))
	line("Walls: ", wallFlags(d.Walls()))
	line("Cursor: ", d.Cursor().String())
	line("File: ", d.SaveLocation())
	line("Undo: ", fmt.Sprintf("%d  Redo: %t", d.UndoDepth(), d.CanRedo()))
	line("Mode: ", f.Mode)
	y++

	if f.Editing {
		r.screen.DrawText(x, y, width, "Save as: "+f.Prompt+"_", stylePrompt)
		y += 2
		if len(f.Saves) > 0 {
			r.screen.DrawText(x, y, width, "Saves: "+strings.Join(f.Saves, ", "), styleHelp)
			y += 2
		}
	}
	if status := d.Status(); status != "" {
		for _, s := range wrap(status, width) {
			r.screen.DrawText(x, y, width, s, styleStatus)
			y++
		}
		y++
	}
	for _, help := range f.Help {
		if y >= h {
			break
		}
		r.screen.DrawText(x, y, width, help, styleHelp)
		y++
	}
}

func assetName(def *assets.AssetDef) string {
	if def == nil {
		return "(none)"
	}
	return def.Name
}

func wallFlags(w world.Walls) string {
	flags := make([]string, 0, len(world.Directions))
	for _, d := range world.Directions {
		if w.Has(d) {
			flags = append(flags, strings.ToUpper(d.String()[:1]))
		} else {
			flags = append(flags, "-")
		}
	}
	return strings.Join(flags, " ")
}

// wrap splits text into lines of at most width runes, breaking on spaces.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	cur := ""
	for _, word := range strings.Fields(text) {
		switch {
		case cur == "":
			cur = word
		case len([]rune(cur))+1+len([]rune(word)) <= width:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
