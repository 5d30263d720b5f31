package engine

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vectorlab/clipedit/internal/clip"
	"github.com/vectorlab/clipedit/internal/clipwin"
	"github.com/vectorlab/clipedit/internal/geom"
	"github.com/vectorlab/clipedit/internal/scene"
)

// Options are the drawing defaults of a new engine.
type Options struct {
	Color     colorful.Color
	Thickness float64
}

// DefaultOptions draws red strokes of width 1.
func DefaultOptions() Options {
	return Options{Color: scene.Red, Thickness: 1}
}

// Engine is one editing session. It owns the scene, the clip window and the
// selection/transform state, and turns discrete input commands into state
// changes. It is not safe for concurrent use.
type Engine struct {
	scene  *scene.Scene
	window *clipwin.Window

	// Drawing state
	tool      Tool
	pending   []geom.Point
	color     colorful.Color
	thickness float64

	// Pointer state
	pressed   bool
	cursor    geom.Point
	hasCursor bool

	// Selection and transform state
	mode     Mode
	selected *scene.Entity
	pivot    linePivot

	// Dirty flag - draw commands need recompiling
	dirty    bool
	commands []DrawCommand
}

// NewEngine creates an engine with an empty scene and no clip window.
func NewEngine(opts Options) *Engine {
	if opts.Thickness == 0 {
		opts.Thickness = 1
	}
	return &Engine{
		scene:     scene.NewScene(),
		window:    clipwin.New(),
		tool:      ToolNone,
		color:     opts.Color,
		thickness: scene.ClampThickness(opts.Thickness),
		dirty:     true,
	}
}

// Scene returns the engine's scene. Callers must not mutate it directly.
func (e *Engine) Scene() *scene.Scene { return e.scene }

// Window returns the clip window. Callers must not mutate it directly.
func (e *Engine) Window() *clipwin.Window { return e.window }

func (e *Engine) Mode() Mode                  { return e.mode }
func (e *Engine) Tool() Tool                  { return e.tool }
func (e *Engine) Color() colorful.Color       { return e.color }
func (e *Engine) Thickness() float64          { return e.thickness }
func (e *Engine) Selected() *scene.Entity     { return e.selected }
func (e *Engine) PendingPoints() []geom.Point { return geom.ClonePoints(e.pending) }

// --- Commands (input → engine) ---

// CreateEntity builds an entity from a completed click sequence and adds it
// on top of the scene. For ellipses the second click is turned into the
// radius point (|dx|, |dy|) from the center. The new entity starts unclipped;
// it is clipped the next time the clip window changes.
func (e *Engine) CreateEntity(kind scene.Kind, clicks []geom.Point, color colorful.Color, thickness float64) (*scene.Entity, error) {
	points := clicks
	if kind == scene.KindEllipse && len(clicks) == 2 {
		points = []geom.Point{clicks[0], clicks[1].Sub(clicks[0]).Abs()}
	}
	ent, err := scene.New(kind, points, color, thickness)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}
	e.scene.Add(ent)
	e.dirty = true
	return ent, nil
}

// BeginClipWindowDefinition drops any existing window, restoring the scene,
// and makes the next two primary presses the new window's corners.
func (e *Engine) BeginClipWindowDefinition() {
	if e.window.Clear() {
		e.reclipAll()
	}
	e.window.StartDefine()
	e.tool = ToolWindow
	e.pending = nil
	e.resetTransform()
	e.dirty = true
}

// AddClipCorner records a window corner. It reports whether the window was
// completed, in which case the scene has been re-clipped and the window tool
// released.
func (e *Engine) AddClipCorner(p geom.Point) bool {
	e.dirty = true
	if !e.window.AddCorner(p) {
		return false
	}
	if e.tool == ToolWindow {
		e.tool = ToolNone
	}
	e.reclipAll()
	return true
}

// ClearClipWindow drops the window and restores every entity.
func (e *Engine) ClearClipWindow() {
	e.window.Clear()
	if e.tool == ToolWindow {
		e.tool = ToolNone
	}
	e.resetTransform()
	e.reclipAll()
}

// SetTransformMode switches the transform mode. Any prior selection and any
// clicks collected for a shape are dropped.
func (e *Engine) SetTransformMode(m Mode) {
	e.mode = m
	e.selected = nil
	e.pivot = linePivot{}
	e.pending = nil
	e.dirty = true
}

// PointerDown handles a primary press at world position p. A press on a clip
// window handle starts a window drag and is consumed. Otherwise, with no
// transform mode the press feeds the current tool; with a mode it selects.
func (e *Engine) PointerDown(p geom.Point) {
	e.pressed = true
	e.cursor, e.hasCursor = p, true
	e.dirty = true

	if e.window.Present() && e.tool != ToolWindow {
		if h := e.window.HandleAt(p); h != clipwin.HandleNone {
			e.window.BeginDrag(h, p)
			return
		}
	}

	if e.mode == ModeNone {
		e.click(p)
		return
	}
	e.selectForTransform(p)
}

// PointerDrag handles pointer motion. delta is the world-space motion since
// the last sample and pos the new world position. Without a press it only
// moves the cursor that drawing previews follow.
func (e *Engine) PointerDrag(delta, pos geom.Point) {
	e.cursor, e.hasCursor = pos, true
	e.dirty = true

	if e.window.Dragging() != clipwin.HandleNone {
		if e.window.DragTo(pos) {
			e.reclipAll()
		}
		return
	}
	if !e.pressed || e.selected == nil || e.mode == ModeNone {
		return
	}
	e.applyTransform(delta, pos)
}

// PointerUp releases the primary button. The selection is dropped; the
// transform mode stays active for the next press.
func (e *Engine) PointerUp() {
	e.pressed = false
	e.window.EndDrag()
	e.selected = nil
	e.pivot = linePivot{}
	e.dirty = true
}

// Cancel leaves the transform mode and drops the selection.
func (e *Engine) Cancel() {
	e.resetTransform()
	e.dirty = true
}

// ClearScene drops every entity along with the selection, the transform mode
// and any clicks collected for a shape. The clip window is kept.
func (e *Engine) ClearScene() {
	e.scene.Clear()
	e.pending = nil
	e.resetTransform()
	e.dirty = true
}

// LoadSample replaces the scene with one entity of every kind.
func (e *Engine) LoadSample() {
	e.scene = scene.NewSampleScene()
	e.pending = nil
	e.resetTransform()
	e.dirty = true
}

// SelectTool switches the drawing tool, discarding clicks collected so far
// and leaving any transform mode. Selecting the window tool starts a new clip
// window definition.
func (e *Engine) SelectTool(t Tool) {
	if t == ToolWindow {
		e.BeginClipWindowDefinition()
		return
	}
	if e.window.Defining() {
		e.window.Clear()
	}
	e.tool = t
	e.pending = nil
	e.resetTransform()
	e.dirty = true
}

// SetColor sets the stroke color of new entities from a palette name or hex.
func (e *Engine) SetColor(name string) error {
	c, err := scene.ParseColor(name)
	if err != nil {
		return err
	}
	e.color = c
	e.dirty = true
	return nil
}

// AdjustThickness moves the thickness of new entities by steps of 0.5.
func (e *Engine) AdjustThickness(steps int) {
	e.thickness = scene.ClampThickness(e.thickness + float64(steps)*scene.ThicknessStep)
	e.dirty = true
}

// FinishPolygon completes the polygon being drawn.
func (e *Engine) FinishPolygon() (*scene.Entity, error) {
	if e.tool != ToolFor(scene.KindPolygon) || len(e.pending) == 0 {
		return nil, ErrNoPolygon
	}
	ent, err := e.CreateEntity(scene.KindPolygon, e.pending, e.color, e.thickness)
	if err != nil {
		return nil, err
	}
	e.pending = nil
	return ent, nil
}

// click feeds one primary press to the current tool.
func (e *Engine) click(p geom.Point) {
	if e.tool == ToolWindow {
		e.AddClipCorner(p)
		return
	}
	kind, ok := e.tool.Kind()
	if !ok {
		return
	}
	e.pending = append(e.pending, p)
	if n := kind.Clicks(); n > 0 && len(e.pending) >= n {
		// Click counts always match the kind here.
		_, _ = e.CreateEntity(kind, e.pending, e.color, e.thickness)
		e.pending = nil
	}
}

func (e *Engine) resetTransform() {
	e.mode = ModeNone
	e.selected = nil
	e.pivot = linePivot{}
}

func (e *Engine) reclipAll() {
	r, ok := e.window.Bounds()
	clip.Apply(e.scene.Entities(), r, ok)
	e.dirty = true
}

func (e *Engine) reclip(ent *scene.Entity) {
	r, ok := e.window.Bounds()
	clip.Entity(ent, r, ok)
	e.dirty = true
}
