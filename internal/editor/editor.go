package editor

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeondesigner/internal/assets"
	"github.com/samdwyer/dungeondesigner/internal/designer"
	"github.com/samdwyer/dungeondesigner/internal/player"
	"github.com/samdwyer/dungeondesigner/internal/telemetry"
	"github.com/samdwyer/dungeondesigner/internal/ui"
	"github.com/samdwyer/dungeondesigner/internal/world"
)

// Editor holds the terminal session around a designer.
type Editor struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	designer *designer.Designer
	logger   *zap.Logger
	tracer   trace.Tracer
	updates  <-chan *assets.Registry
	rng      *rand.Rand
	cfg      Config

	mode    Mode
	player  *player.Player
	prompt  []rune
	saves   []string // names offered by Tab in file name mode
	pick    int
	running bool
}

// reloadEvent carries a reloaded catalog onto the event loop.
type reloadEvent struct {
	tcell.EventTime
	registry *assets.Registry
}

// New creates an editor drawing to screen. updates may be nil; otherwise
// each registry received on it replaces the designer's catalog between
// events.
func New(screen *ui.Screen, d *designer.Designer, updates <-chan *assets.Registry, cfg Config, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LayoutWidth <= 0 {
		cfg.LayoutWidth = world.DefaultLayoutWidth
	}
	if cfg.LayoutDepth <= 0 {
		cfg.LayoutDepth = world.DefaultLayoutDepth
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Editor{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		designer: d,
		logger:   logger.Named("editor"),
		tracer:   telemetry.Tracer("editor"),
		updates:  updates,
		rng:      rand.New(rand.NewSource(seed)),
		cfg:      cfg,
		mode:     ModeEdit,
		running:  true,
	}
}

// Mode returns what keyboard input currently drives.
func (e *Editor) Mode() Mode { return e.mode }

// Run executes the main loop until the user quits or ctx ends.
func (e *Editor) Run(ctx context.Context) error {
	_, initSpan := e.tracer.Start(ctx, "editor.init")
	if dg := e.designer.Dungeon(); dg != nil {
		initSpan.SetAttributes(
			attribute.String("dungeon.name", dg.Name),
			attribute.Int("dungeon.cells", dg.Len()),
		)
	}
	initSpan.SetAttributes(
		attribute.String("editor.save_location", e.designer.SaveLocation()),
		attribute.Int("catalog.assets", e.designer.Registry().Count()),
		attribute.Bool("catalog.watched", e.updates != nil),
	)
	initSpan.End()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go e.forwardUpdates(ctx, done)

	for e.running && ctx.Err() == nil {
		e.render()
		e.handleEvent(ctx, e.screen.PollEvent())
	}

	cancel()
	<-done
	e.screen.Close()
	return nil
}

// forwardUpdates posts catalog reloads to the event queue so they are
// applied on the loop goroutine. When ctx ends it posts an interrupt so a
// blocked PollEvent returns.
func (e *Editor) forwardUpdates(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	updates := e.updates
	for {
		select {
		case <-ctx.Done():
			if err := e.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
				e.logger.Debug("interrupt not posted", zap.Error(err))
			}
			return
		case r, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			ev := &reloadEvent{registry: r}
			ev.SetEventNow()
			if err := e.screen.PostEvent(ev); err != nil {
				e.logger.Warn("catalog reload dropped", zap.Error(err))
			}
		}
	}
}

func (e *Editor) render() {
	f := ui.Frame{
		Designer: e.designer,
		Mode:     e.mode.String(),
		Help:     helpFor(e.mode),
	}
	if e.mode == ModeWalk {
		f.Player = e.player
	}
	if e.mode == ModeFileName {
		f.Editing = true
		f.Prompt = string(e.prompt)
		f.Saves = e.saves
	}
	e.renderer.Render(f)
}

// handleEvent processes a single input event.
func (e *Editor) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		e.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		e.screen.Sync()
	case *reloadEvent:
		e.designer.SetRegistry(ev.registry)
	case *tcell.EventInterrupt:
		// Woken for cancellation; the loop checks ctx.
	case nil:
		// Screen finalized
		e.running = false
	}
}

func (e *Editor) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		e.running = false
		return
	}
	switch e.mode {
	case ModeEdit:
		e.handleEditKey(ctx, ev)
	case ModeWalk:
		e.handleWalkKey(ev)
	case ModeFileName:
		e.handleFileNameKey(ev)
	}
}

// command runs one designer operation inside an editor.command span.
func (e *Editor) command(ctx context.Context, name string, fn func(context.Context) error) {
	ctx, span := e.tracer.Start(ctx, "editor.command", trace.WithAttributes(attribute.String("command", name)))
	defer span.End()
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Debug("command failed", zap.String("command", name), zap.Error(err))
	}
}

func (e *Editor) enterWalk() {
	dg := e.designer.Dungeon()
	if dg == nil {
		e.designer.Notify("assign a dungeon first")
		return
	}
	p, ok := player.Spawn(dg, e.designer.Cursor())
	if !ok {
		e.designer.Notify("add a cell before walking")
		return
	}
	e.player = p
	e.mode = ModeWalk
	e.designer.Notify("walking from " + p.Pos.String())
}

func (e *Editor) leaveWalk() {
	if e.player != nil {
		e.designer.SetCursor(e.player.Pos)
	}
	e.player = nil
	e.mode = ModeEdit
	e.designer.Notify("back to editing")
}

func (e *Editor) enterFileName(ctx context.Context) {
	e.prompt = []rune(e.designer.FileName())
	e.saves, e.pick = nil, -1
	if names, err := e.designer.Saves(ctx); err == nil {
		e.saves = names
	}
	e.mode = ModeFileName
}

func (e *Editor) leaveFileName() {
	e.prompt, e.saves = nil, nil
	e.mode = ModeEdit
}
