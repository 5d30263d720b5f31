package engine

import (
	"encoding/json"

	"github.com/vectorlab/clipedit/internal/geom"
	"github.com/vectorlab/clipedit/internal/scene"
)

// Draw operations.
const (
	OpPoint      = "point"
	OpLine       = "line"
	OpRectangle  = "rectangle"
	OpEllipse    = "ellipse"
	OpPolygon    = "polygon"
	OpClipWindow = "clipWindow"
	OpPreview    = "preview"
)

// Clip window outline style.
var (
	clipWindowColor = scene.Yellow
	clipWindowWidth = 2.0
)

// DrawCommand represents a single drawing operation for the renderer to execute.
// Points are in world space; Transform is applied to them before drawing.
type DrawCommand struct {
	Op          string           `json:"op"`                  // point, line, rectangle, ellipse, polygon, clipWindow, preview
	EntityID    string           `json:"entityId,omitempty"`  // For hit correlation
	Kind        string           `json:"kind,omitempty"`      // Shape a preview stands for
	Points      []geom.Point     `json:"points"`              // Visible points; ellipse is [center, radius]
	Transform   []float64        `json:"transform,omitempty"` // [a, b, c, d, e, f] affine matrix
	Live        *scene.Transform `json:"live,omitempty"`      // Raw translation/rotation/scale
	Stroke      string           `json:"stroke"`              // Stroke color
	StrokeWidth float64          `json:"strokeWidth"`         // Stroke width
	Selected    bool             `json:"selected,omitempty"`
}

// Render returns the draw commands for the current state, recompiling them
// only when the state changed since the last call.
func (e *Engine) Render() []DrawCommand {
	if e.dirty || e.commands == nil {
		e.commands = e.compile()
		e.dirty = false
	}
	return e.commands
}

// RenderJSON returns Render serialized as JSON.
func (e *Engine) RenderJSON() string {
	result, _ := DrawCommandsToJSON(e.Render())
	return result
}

// compile generates the draw command buffer in painter's order: entities back
// to front, then the clip window outline, then any drawing preview.
func (e *Engine) compile() []DrawCommand {
	commands := make([]DrawCommand, 0, e.scene.Len()+2)
	for _, ent := range e.scene.Entities() {
		if cmd, ok := e.compileEntity(ent); ok {
			commands = append(commands, cmd)
		}
	}
	if cmd, ok := e.compileClipWindow(); ok {
		commands = append(commands, cmd)
	}
	if cmd, ok := e.compilePreview(); ok {
		commands = append(commands, cmd)
	}
	return commands
}

func (e *Engine) compileEntity(ent *scene.Entity) (DrawCommand, bool) {
	if !ent.IsVisible() {
		return DrawCommand{}, false
	}
	cmd := DrawCommand{
		Op:          string(ent.Kind),
		EntityID:    ent.ID,
		Points:      geom.ClonePoints(ent.VisiblePoints),
		Stroke:      ent.Color.Hex(),
		StrokeWidth: ent.Thickness,
		Selected:    ent == e.selected,
	}
	if !ent.IsLine() {
		live := ent.Transform
		cmd.Transform = ent.RenderMatrix().ToSlice()
		cmd.Live = &live
	}
	return cmd, true
}

// compileClipWindow emits the window outline as a closed loop TL, TR, BR, BL.
func (e *Engine) compileClipWindow() (DrawCommand, bool) {
	c, ok := e.window.Corners()
	if !ok {
		return DrawCommand{}, false
	}
	return DrawCommand{
		Op:          OpClipWindow,
		Points:      []geom.Point{c[0], c[1], c[3], c[2]},
		Stroke:      clipWindowColor.Hex(),
		StrokeWidth: clipWindowWidth,
	}, true
}

// compilePreview draws the shape being collected, following the cursor.
func (e *Engine) compilePreview() (DrawCommand, bool) {
	if !e.hasCursor || e.mode != ModeNone {
		return DrawCommand{}, false
	}
	cur := e.cursor
	cmd := DrawCommand{
		Op:          OpPreview,
		Stroke:      e.color.Hex(),
		StrokeWidth: e.thickness,
	}

	if e.tool == ToolWindow {
		pending := e.window.Pending()
		if len(pending) != 1 {
			return DrawCommand{}, false
		}
		cmd.Kind = OpClipWindow
		cmd.Points = []geom.Point{pending[0], cur}
		cmd.Stroke = clipWindowColor.Hex()
		cmd.StrokeWidth = clipWindowWidth
		return cmd, true
	}

	kind, ok := e.tool.Kind()
	if !ok || len(e.pending) == 0 {
		return DrawCommand{}, false
	}
	cmd.Kind = string(kind)
	first := e.pending[0]
	switch kind {
	case scene.KindEllipse:
		cmd.Points = []geom.Point{first, cur.Sub(first).Abs()}
	case scene.KindPolygon:
		cmd.Points = append(geom.ClonePoints(e.pending), cur)
	default:
		cmd.Points = []geom.Point{first, cur}
	}
	return cmd, true
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		commands = []DrawCommand{}
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
