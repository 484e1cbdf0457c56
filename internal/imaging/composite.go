package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

// VerticalAlign selects the vertical reference edge for placement.
type VerticalAlign int

const (
	Top VerticalAlign = iota
	Middle
	Bottom
)

// HorizontalAlign selects the horizontal reference edge for placement.
type HorizontalAlign int

const (
	Left HorizontalAlign = iota
	Center
	Right
)

// Anchor is a (vertical, horizontal) placement rule. The zero value is
// top-left.
type Anchor struct {
	Vertical   VerticalAlign
	Horizontal HorizontalAlign
}

// String returns the anchor as "vertical-horizontal", e.g. "top-left".
func (a Anchor) String() string {
	v := [...]string{"top", "center", "bottom"}
	h := [...]string{"left", "center", "right"}
	return v[a.Vertical] + "-" + h[a.Horizontal]
}

// ParseAnchor parses names such as "top-left", "bottom right", "center" or
// "center-right". A single "center" centers both axes; an empty string is
// top-left. "middle" is accepted as a synonym for vertical center.
func ParseAnchor(s string) (Anchor, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Anchor{}, nil
	}
	if s == "center" || s == "middle" {
		return Anchor{Vertical: Middle, Horizontal: Center}, nil
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == ' ' || r == ',' })
	if len(parts) != 2 {
		return Anchor{}, fmt.Errorf("anchor %q: %w", s, ErrInvalidArgument)
	}

	var a Anchor
	switch parts[0] {
	case "top":
		a.Vertical = Top
	case "center", "middle":
		a.Vertical = Middle
	case "bottom":
		a.Vertical = Bottom
	default:
		return Anchor{}, fmt.Errorf("anchor %q: unknown vertical %q: %w", s, parts[0], ErrInvalidArgument)
	}
	switch parts[1] {
	case "left":
		a.Horizontal = Left
	case "center":
		a.Horizontal = Center
	case "right":
		a.Horizontal = Right
	default:
		return Anchor{}, fmt.Errorf("anchor %q: unknown horizontal %q: %w", s, parts[1], ErrInvalidArgument)
	}
	return a, nil
}

// Offset returns where the top-left corner of a src-sized box lands inside a
// dst-sized box.
//
// Horizontally: x for left, dst-src-x for right, round((dst-src)/2) for
// center (x is ignored). Vertically the same with y. The result is not
// clamped and may be negative.
func (a Anchor) Offset(dst, src image.Point, x, y int) image.Point {
	var p image.Point

	switch a.Horizontal {
	case Center:
		p.X = halfRound(dst.X - src.X)
	case Right:
		p.X = dst.X - src.X - x
	default:
		p.X = x
	}

	switch a.Vertical {
	case Middle:
		p.Y = halfRound(dst.Y - src.Y)
	case Bottom:
		p.Y = dst.Y - src.Y - y
	default:
		p.Y = y
	}

	return p
}

func halfRound(v int) int {
	return int(math.Round(float64(v) / 2))
}

// Composite draws src onto dst at the anchored offset and returns the result.
//
// The result is always a new true-colour canvas the size of dst: dst is copied
// in first, then src is alpha-blended over it. Pixels of src that fall outside
// the canvas are clipped.
func Composite(dst *PixelBuffer, src image.Image, x, y int, anchor Anchor) *PixelBuffer {
	canvas := imaging.Paste(imaging.New(dst.Width(), dst.Height(), color.Transparent), dst.pix, image.Pt(0, 0))
	if src == nil {
		return wrapNRGBA(canvas)
	}

	sb := src.Bounds()
	at := anchor.Offset(dst.Size(), sb.Size(), x, y)
	return wrapNRGBA(imaging.Overlay(canvas, src, at, 1.0))
}
