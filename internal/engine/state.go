package engine

import (
	"encoding/json"

	"github.com/vectorlab/clipedit/internal/geom"
	"github.com/vectorlab/clipedit/internal/scene"
)

// EntityState is the full state of one entity, original and derived.
type EntityState struct {
	ID             string          `json:"id"`
	Kind           scene.Kind      `json:"kind"`
	OriginalPoints []geom.Point    `json:"originalPoints"`
	VisiblePoints  []geom.Point    `json:"visiblePoints"`
	Color          string          `json:"color"`
	OriginalColor  string          `json:"originalColor"`
	Thickness      float64         `json:"thickness"`
	Transform      scene.Transform `json:"transform"`
}

// WindowState describes the clip window.
type WindowState struct {
	Corners  []geom.Point `json:"corners"`
	Bounds   *geom.Rect   `json:"bounds,omitempty"`
	Defining bool         `json:"defining"`
	Drag     string       `json:"drag"`
}

// Snapshot is the complete observable state of an engine.
type Snapshot struct {
	Tool      Tool          `json:"tool"`
	Mode      string        `json:"mode"`
	Color     string        `json:"color"`
	Thickness float64       `json:"thickness"`
	Selected  string        `json:"selected,omitempty"`
	Bounds    *geom.Rect    `json:"selectionBounds,omitempty"`
	Pending   []geom.Point  `json:"pending"`
	Window    WindowState   `json:"window"`
	Entities  []EntityState `json:"entities"`
}

// State returns a snapshot of the engine. The snapshot shares no memory with
// the engine.
func (e *Engine) State() Snapshot {
	s := Snapshot{
		Tool:      e.tool,
		Mode:      e.mode.String(),
		Color:     scene.ColorName(e.color),
		Thickness: e.thickness,
		Pending:   e.PendingPoints(),
		Window: WindowState{
			Corners:  e.window.Pending(),
			Defining: e.window.Defining(),
			Drag:     e.window.Dragging().String(),
		},
		Entities: make([]EntityState, 0, e.scene.Len()),
	}
	if e.selected != nil {
		s.Selected = e.selected.ID
	}
	if r, ok := e.SelectionBounds(); ok {
		s.Bounds = &r
	}
	if c1, c2, ok := e.window.StoredCorners(); ok {
		r, _ := e.window.Bounds()
		s.Window.Corners = []geom.Point{c1, c2}
		s.Window.Bounds = &r
	}
	if s.Window.Corners == nil {
		s.Window.Corners = []geom.Point{}
	}
	for _, ent := range e.scene.Entities() {
		s.Entities = append(s.Entities, EntityState{
			ID:             ent.ID,
			Kind:           ent.Kind,
			OriginalPoints: geom.ClonePoints(ent.OriginalPoints),
			VisiblePoints:  geom.ClonePoints(ent.VisiblePoints),
			Color:          scene.ColorName(ent.Color),
			OriginalColor:  scene.ColorName(ent.OriginalColor),
			Thickness:      ent.Thickness,
			Transform:      ent.Transform,
		})
	}
	return s
}

// StateJSON returns State serialized as JSON.
func (e *Engine) StateJSON() string {
	data, _ := json.Marshal(e.State())
	return string(data)
}
