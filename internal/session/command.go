package session

import (
	"errors"
	"fmt"

	"github.com/vectorlab/clipedit/internal/engine"
	"github.com/vectorlab/clipedit/internal/geom"
	"github.com/vectorlab/clipedit/internal/scene"
)

var (
	ErrUnknownCommand = errors.New("unknown command type")
	ErrInvalidCommand = errors.New("invalid command")
)

// Command types
const (
	CmdEntityCreate  = "entity.create"
	CmdClipBegin     = "clip.begin"
	CmdClipCorner    = "clip.corner"
	CmdClipClear     = "clip.clear"
	CmdTransformMode = "transform.mode"
	CmdPointerDown   = "pointer.down"
	CmdPointerDrag   = "pointer.drag"
	CmdPointerUp     = "pointer.up"
	CmdCancel        = "cancel"
	CmdSceneClear    = "scene.clear"
	CmdSceneSample   = "scene.sample"
	CmdToolSelect    = "tool.select"
	CmdColorSelect   = "color.select"
	CmdThicknessStep = "thickness.step"
	CmdPolygonFinish = "polygon.finish"
)

// CommandTypes lists every command type in a stable order.
var CommandTypes = []string{
	CmdEntityCreate, CmdClipBegin, CmdClipCorner, CmdClipClear, CmdTransformMode,
	CmdPointerDown, CmdPointerDrag, CmdPointerUp, CmdCancel, CmdSceneClear,
	CmdSceneSample, CmdToolSelect, CmdColorSelect, CmdThicknessStep, CmdPolygonFinish,
}

// Command is one discrete input to an editing session. Positions and deltas
// are in world coordinates. Unused fields are ignored.
type Command struct {
	Type      string       `json:"type" yaml:"type"`
	Kind      string       `json:"kind,omitempty" yaml:"kind,omitempty"`
	Points    []geom.Point `json:"points,omitempty" yaml:"points,omitempty"`
	Color     string       `json:"color,omitempty" yaml:"color,omitempty"`
	Thickness float64      `json:"thickness,omitempty" yaml:"thickness,omitempty"`
	Mode      string       `json:"mode,omitempty" yaml:"mode,omitempty"`
	Tool      string       `json:"tool,omitempty" yaml:"tool,omitempty"`
	Pos       *geom.Point  `json:"pos,omitempty" yaml:"pos,omitempty"`
	Delta     *geom.Point  `json:"delta,omitempty" yaml:"delta,omitempty"`
	Step      int          `json:"step,omitempty" yaml:"step,omitempty"`
}

// Dispatch applies cmd to e. lastPos is the previous pointer position, used
// to derive a drag delta when the command does not carry one.
func Dispatch(e *engine.Engine, cmd Command, lastPos *geom.Point) error {
	switch cmd.Type {
	case CmdEntityCreate:
		return dispatchCreate(e, cmd)
	case CmdClipBegin:
		e.BeginClipWindowDefinition()
	case CmdClipCorner:
		p, err := requirePos(cmd)
		if err != nil {
			return err
		}
		if !e.Window().Defining() {
			return fmt.Errorf("%w: %s outside window definition", ErrInvalidCommand, cmd.Type)
		}
		e.AddClipCorner(p)
	case CmdClipClear:
		e.ClearClipWindow()
	case CmdTransformMode:
		m, err := engine.ParseMode(cmd.Mode)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		e.SetTransformMode(m)
	case CmdPointerDown:
		p, err := requirePos(cmd)
		if err != nil {
			return err
		}
		e.PointerDown(p)
	case CmdPointerDrag:
		p, err := requirePos(cmd)
		if err != nil {
			return err
		}
		var d geom.Point
		switch {
		case cmd.Delta != nil:
			d = *cmd.Delta
		case lastPos != nil:
			d = p.Sub(*lastPos)
		}
		e.PointerDrag(d, p)
	case CmdPointerUp:
		e.PointerUp()
	case CmdCancel:
		e.Cancel()
	case CmdSceneClear:
		e.ClearScene()
	case CmdSceneSample:
		e.LoadSample()
	case CmdToolSelect:
		t, err := engine.ParseTool(cmd.Tool)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		e.SelectTool(t)
	case CmdColorSelect:
		if err := e.SetColor(cmd.Color); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
	case CmdThicknessStep:
		if cmd.Step == 0 {
			return fmt.Errorf("%w: %s needs a non-zero step", ErrInvalidCommand, cmd.Type)
		}
		e.AdjustThickness(cmd.Step)
	case CmdPolygonFinish:
		if _, err := e.FinishPolygon(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	return nil
}

func dispatchCreate(e *engine.Engine, cmd Command) error {
	kind, err := scene.ParseKind(cmd.Kind)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	color := e.Color()
	if cmd.Color != "" {
		if color, err = scene.ParseColor(cmd.Color); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
	}
	thickness := e.Thickness()
	if cmd.Thickness != 0 {
		thickness = cmd.Thickness
	}
	if _, err := e.CreateEntity(kind, cmd.Points, color, thickness); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	return nil
}

func requirePos(cmd Command) (geom.Point, error) {
	if cmd.Pos == nil {
		return geom.Point{}, fmt.Errorf("%w: %s needs pos", ErrInvalidCommand, cmd.Type)
	}
	if cmd.Pos.IsNaN() {
		return geom.Point{}, fmt.Errorf("%w: %s pos is not a number", ErrInvalidCommand, cmd.Type)
	}
	return *cmd.Pos, nil
}
