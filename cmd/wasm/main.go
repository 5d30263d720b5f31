//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/vectorlab/clipedit/internal/engine"
	"github.com/vectorlab/clipedit/internal/geom"
	"github.com/vectorlab/clipedit/internal/session"
	"github.com/vectorlab/clipedit/internal/typeid"
)

var (
	state    *session.State
	viewport = geom.Viewport{Width: 800, Height: 600}
)

func main() {
	state = session.NewState(typeid.NewSessionID(), engine.DefaultOptions())

	// Create the editor API object
	clipEditor := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	clipEditor.Set("setViewport", js.FuncOf(setViewport))
	clipEditor.Set("apply", js.FuncOf(apply))
	clipEditor.Set("pointerDown", js.FuncOf(pointerDown))
	clipEditor.Set("pointerDrag", js.FuncOf(pointerDrag))
	clipEditor.Set("pointerUp", js.FuncOf(simple(session.CmdPointerUp)))
	clipEditor.Set("cancel", js.FuncOf(simple(session.CmdCancel)))
	clipEditor.Set("selectTool", js.FuncOf(selectTool))
	clipEditor.Set("setMode", js.FuncOf(setMode))
	clipEditor.Set("setColor", js.FuncOf(setColor))
	clipEditor.Set("adjustThickness", js.FuncOf(adjustThickness))
	clipEditor.Set("beginClipWindow", js.FuncOf(simple(session.CmdClipBegin)))
	clipEditor.Set("clearClipWindow", js.FuncOf(simple(session.CmdClipClear)))
	clipEditor.Set("finishPolygon", js.FuncOf(simple(session.CmdPolygonFinish)))
	clipEditor.Set("clearScene", js.FuncOf(simple(session.CmdSceneClear)))
	clipEditor.Set("loadSample", js.FuncOf(simple(session.CmdSceneSample)))

	// --- Queries (frontend ← engine) ---
	clipEditor.Set("render", js.FuncOf(render))
	clipEditor.Set("state", js.FuncOf(getState))
	clipEditor.Set("hitTest", js.FuncOf(hitTest))
	clipEditor.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	clipEditor.Set("screenToWorld", js.FuncOf(screenToWorld))

	// Register on global scope
	js.Global().Set("clipEditor", clipEditor)

	// Signal that WASM is ready
	js.Global().Set("clipEditorReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(seq int64, err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "seq": float64(seq)})
}

func run(cmd session.Command) interface{} {
	return result(state.Apply(cmd))
}

func simple(cmdType string) func(js.Value, []js.Value) interface{} {
	return func(this js.Value, args []js.Value) interface{} {
		return run(session.Command{Type: cmdType})
	}
}

// screenPoint reads a pixel position from args[0], args[1].
func screenPoint(args []js.Value) (geom.Point, bool) {
	if len(args) < 2 {
		return geom.Point{}, false
	}
	return viewport.ScreenToWorld(args[0].Float(), args[1].Float()), true
}

func missing(what string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": "missing " + what})
}

// --- Command Handlers ---

func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 || args[0].Float() <= 0 || args[1].Float() <= 0 {
		return missing("viewport size")
	}
	viewport = geom.Viewport{Width: args[0].Float(), Height: args[1].Float()}
	return nil
}

// apply takes one command as JSON, in the same shape the server accepts.
func apply(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("command JSON")
	}
	var cmd session.Command
	if err := json.Unmarshal([]byte(args[0].String()), &cmd); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return run(cmd)
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	p, ok := screenPoint(args)
	if !ok {
		return missing("pointer position")
	}
	return run(session.Command{Type: session.CmdPointerDown, Pos: &p})
}

// pointerDrag sends the new position only; the delta is derived from the
// previous pointer position.
func pointerDrag(this js.Value, args []js.Value) interface{} {
	p, ok := screenPoint(args)
	if !ok {
		return missing("pointer position")
	}
	return run(session.Command{Type: session.CmdPointerDrag, Pos: &p})
}

func selectTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("tool")
	}
	return run(session.Command{Type: session.CmdToolSelect, Tool: args[0].String()})
}

func setMode(this js.Value, args []js.Value) interface{} {
	mode := ""
	if len(args) > 0 && args[0].Type() == js.TypeString {
		mode = args[0].String()
	}
	return run(session.Command{Type: session.CmdTransformMode, Mode: mode})
}

func setColor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("color")
	}
	return run(session.Command{Type: session.CmdColorSelect, Color: args[0].String()})
}

func adjustThickness(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return missing("step")
	}
	return run(session.Command{Type: session.CmdThicknessStep, Step: args[0].Int()})
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	commands, _ := state.Render()
	out, _ := engine.DrawCommandsToJSON(commands)
	return js.ValueOf(out)
}

func getState(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(state.Snapshot())
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

func hitTest(this js.Value, args []js.Value) interface{} {
	p, ok := screenPoint(args)
	if !ok {
		return js.Null()
	}
	if id := state.HitTest(p); id != "" {
		return js.ValueOf(id)
	}
	return js.Null()
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	r, ok := state.SelectionBounds()
	if !ok {
		return js.Null()
	}
	return js.ValueOf(map[string]interface{}{
		"minX": r.Min.X,
		"minY": r.Min.Y,
		"maxX": r.Max.X,
		"maxY": r.Max.Y,
	})
}

func screenToWorld(this js.Value, args []js.Value) interface{} {
	p, ok := screenPoint(args)
	if !ok {
		return js.Null()
	}
	return js.ValueOf(map[string]interface{}{"x": p.X, "y": p.Y})
}
