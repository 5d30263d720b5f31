package scene

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrUnknownKind = errors.New("unknown entity kind")
	ErrPointCount  = errors.New("wrong number of points for entity kind")
)

// Kind discriminates the entity variants. It is fixed at creation.
type Kind string

const (
	KindPoint     Kind = "point"
	KindLine      Kind = "line"
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindPolygon   Kind = "polygon"
)

// Kinds lists every entity kind in a stable order.
var Kinds = []Kind{KindPoint, KindLine, KindRectangle, KindEllipse, KindPolygon}

// ParseKind resolves a kind name, case-insensitively. "square" is accepted as
// an alias for rectangle.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Kinds, k) {
		return k, nil
	}
	if k == "square" || k == "rect" {
		return KindRectangle, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// CheckPoints verifies that n points are a valid definition for the kind.
func (k Kind) CheckPoints(n int) error {
	ok := false
	switch k {
	case KindPoint:
		ok = n == 1
	case KindLine, KindRectangle, KindEllipse:
		ok = n == 2
	case KindPolygon:
		ok = n >= 2
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
	if !ok {
		return fmt.Errorf("%w: %s with %d points", ErrPointCount, k, n)
	}
	return nil
}

// Clicks returns how many pointer presses complete an entity of this kind,
// or 0 when the kind is completed explicitly (polygons).
func (k Kind) Clicks() int {
	switch k {
	case KindPoint:
		return 1
	case KindLine, KindRectangle, KindEllipse:
		return 2
	default:
		return 0
	}
}
