package editor

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeondesigner/internal/world"
)

var (
	editHelp = []string{
		"arrows  move cursor",
		"enter   add cell     x  remove",
		"n s e w toggle walls",
		"f F     floor        b B  wall",
		"u r     undo / redo  C  clear",
		"^S ^L   save / load  N  rename",
		"R       generate     p  walk",
		"v       fit view",
		"q       quit",
	}
	walkHelp = []string{
		"left right  turn",
		"up down     step",
		"p esc       back to editing",
	}
	fileNameHelp = []string{
		"enter  confirm",
		"tab    next saved name",
		"esc    cancel",
	}
)

func helpFor(m Mode) []string {
	switch m {
	case ModeWalk:
		return walkHelp
	case ModeFileName:
		return fileNameHelp
	default:
		return editHelp
	}
}

// handleEditKey processes keyboard input in edit mode.
func (e *Editor) handleEditKey(ctx context.Context, ev *tcell.EventKey) {
	d := e.designer

	switch ev.Key() {
	case tcell.KeyEscape:
		e.running = false
	case tcell.KeyUp:
		d.MoveCursor(0, 1)
	case tcell.KeyDown:
		d.MoveCursor(0, -1)
	case tcell.KeyLeft:
		d.MoveCursor(-1, 0)
	case tcell.KeyRight:
		d.MoveCursor(1, 0)
	case tcell.KeyEnter:
		e.command(ctx, "add", d.AddCellAtCursor)
	case tcell.KeyCtrlS:
		e.command(ctx, "save", func(ctx context.Context) error {
			_, err := d.Save(ctx)
			return err
		})
	case tcell.KeyCtrlL:
		e.command(ctx, "load", func(ctx context.Context) error {
			_, err := d.Load(ctx)
			return err
		})

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			e.running = false
		case ' ':
			e.command(ctx, "add", d.AddCellAtCursor)
		case 'x':
			e.command(ctx, "remove", func(ctx context.Context) error {
				c := d.Cursor()
				return d.RemoveCell(ctx, c.X, c.Z)
			})
		case 'n':
			d.ToggleWall(world.North)
		case 's':
			d.ToggleWall(world.South)
		case 'e':
			d.ToggleWall(world.East)
		case 'w':
			d.ToggleWall(world.West)
		case 'f':
			d.CycleFloor(1)
		case 'F':
			d.CycleFloor(-1)
		case 'b':
			d.CycleWall(1)
		case 'B':
			d.CycleWall(-1)
		case 'C':
			e.command(ctx, "clear", d.Clear)
		case 'u':
			e.command(ctx, "undo", func(context.Context) error { return d.Undo() })
		case 'r':
			e.command(ctx, "redo", func(context.Context) error { return d.Redo() })
		case 'R':
			e.command(ctx, "generate", func(ctx context.Context) error {
				_, err := d.Generate(ctx, e.rng, e.cfg.LayoutWidth, e.cfg.LayoutDepth)
				return err
			})
		case 'p':
			e.enterWalk()
		case 'v':
			d.FitCursor()
		case 'N':
			e.enterFileName(ctx)
		}
	}
}

// handleWalkKey processes keyboard input in walk mode.
func (e *Editor) handleWalkKey(ev *tcell.EventKey) {
	dg := e.designer.Dungeon()
	if e.player == nil || dg == nil {
		e.leaveWalk()
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		e.leaveWalk()
	case tcell.KeyLeft:
		e.player.RotateLeft()
	case tcell.KeyRight:
		e.player.RotateRight()
	case tcell.KeyUp:
		if !e.player.Forward(dg) {
			e.designer.Notify("blocked")
		}
	case tcell.KeyDown:
		if !e.player.Backward(dg) {
			e.designer.Notify("blocked")
		}
	case tcell.KeyRune:
		if ev.Rune() == 'p' {
			e.leaveWalk()
		}
	}
}

// handleFileNameKey processes text entry for the save file name.
func (e *Editor) handleFileNameKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.leaveFileName()
	case tcell.KeyEnter:
		e.designer.SetFileName(string(e.prompt))
		e.leaveFileName()
	case tcell.KeyTab:
		if len(e.saves) > 0 {
			e.pick = (e.pick + 1) % len(e.saves)
			e.prompt = []rune(e.saves[e.pick])
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.prompt) > 0 {
			e.prompt = e.prompt[:len(e.prompt)-1]
		}
	case tcell.KeyRune:
		e.prompt = append(e.prompt, ev.Rune())
	}
}
