package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vectorlab/clipedit/internal/scene"
)

var (
	ErrUnknownMode = errors.New("unknown transform mode")
	ErrUnknownTool = errors.New("unknown tool")
	ErrNoPolygon   = errors.New("no polygon in progress")
)

// Mode is the active transform mode.
type Mode int

const (
	ModeNone Mode = iota
	ModeTranslate
	ModeRotate
	ModeScale
)

var modeNames = [...]string{"none", "translate", "rotate", "scale"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode resolves a mode name. The empty string means none.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeNone, nil
	}
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeNone, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Tool is what a primary press does when no transform mode is active: collect
// clicks for a shape, collect clip window corners, or nothing.
type Tool string

const (
	ToolNone   Tool = "none"
	ToolWindow Tool = "window"
)

// ToolFor returns the drawing tool that creates entities of kind k.
func ToolFor(k scene.Kind) Tool { return Tool(k) }

// Kind returns the entity kind the tool draws, if any.
func (t Tool) Kind() (scene.Kind, bool) {
	if t == ToolNone || t == ToolWindow {
		return "", false
	}
	return scene.Kind(t), true
}

// ParseTool resolves "none", "window" or an entity kind name.
func ParseTool(s string) (Tool, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "none":
		return ToolNone, nil
	case "window", "clip":
		return ToolWindow, nil
	default:
		k, err := scene.ParseKind(v)
		if err != nil {
			return ToolNone, fmt.Errorf("%w: %q", ErrUnknownTool, s)
		}
		return ToolFor(k), nil
	}
}
