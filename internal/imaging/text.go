package imaging

import (
	"fmt"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// MaxAutoFontSize is the largest size tried when the font size is automatic.
const MaxAutoFontSize = 128

// AutoSize requests the largest font size whose rendered text fits the
// target width.
const AutoSize = 0

// Font is a parsed TrueType font that can produce faces at integer sizes.
// Sizes are in pixels (72 DPI).
type Font struct {
	path string
	ttf  *truetype.Font
}

// LoadFont reads and parses a TrueType font file.
//
// A path that is not a regular file fails with ErrNotFound before any
// parsing happens.
func LoadFont(path string) (*Font, error) {
	if !isFile(path) {
		return nil, fmt.Errorf("font %s: %w", path, ErrNotFound)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return &Font{path: path, ttf: ttf}, nil
}

// Path returns the file the font was loaded from.
func (f *Font) Path() string { return f.path }

// Face returns a face at the given pixel size.
func (f *Font) Face(size int) font.Face {
	return truetype.NewFace(f.ttf, &truetype.Options{Size: float64(size), DPI: 72})
}

// TextBox is the ink bounding box of a string relative to its origin on the
// baseline. Top is negative for glyphs that rise above the baseline.
type TextBox struct {
	Left, Top, Right, Bottom int
}

// Width is the horizontal ink extent.
func (b TextBox) Width() int { return b.Right - b.Left }

// Height is the vertical ink extent.
func (b TextBox) Height() int { return b.Bottom - b.Top }

// Measure returns the bounding box of text at size. Size 0 or an empty
// string measure as an empty box.
func (f *Font) Measure(size int, text string) TextBox {
	if size < 1 || text == "" {
		return TextBox{}
	}
	face := f.Face(size)
	defer face.Close()

	r, _ := font.BoundString(face, text)
	return TextBox{
		Left:   r.Min.X.Floor(),
		Top:    r.Min.Y.Floor(),
		Right:  r.Max.X.Ceil(),
		Bottom: r.Max.Y.Ceil(),
	}
}

// FitSize returns the largest size in [1, MaxAutoFontSize] for which the
// text width plus twice the padding is strictly less than maxWidth, or 0 when
// no size fits. Rendered width grows with size, so a binary search finds the
// same size a top-down scan would.
func (f *Font) FitSize(text string, maxWidth, padding int) int {
	fits := func(size int) bool {
		return f.Measure(size, text).Width()+padding*2 < maxWidth
	}

	best := 0
	lo, hi := 1, MaxAutoFontSize
	for lo <= hi {
		mid := (lo + hi) / 2
		if fits(mid) {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}

// TextOptions controls AddText. The zero value is usable but renders black
// text; DefaultTextOptions mirrors the façade defaults.
type TextOptions struct {
	// X is the horizontal offset of the text inside the strip, interpreted
	// per Anchor.Horizontal.
	X int

	// Y is the vertical offset of the strip inside the target, interpreted
	// per Anchor.Vertical.
	Y int

	Anchor Anchor

	// Size is the font size in pixels, or AutoSize.
	Size int

	Color      color.Color
	Background color.Color

	// Padding is added on every side of the text.
	Padding int
}

// DefaultTextOptions returns top-left, automatic size, white text on a fully
// transparent background, no padding.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Size:       AutoSize,
		Color:      color.White,
		Background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0},
	}
}

// RenderTextStrip draws text onto a stripWidth-wide strip whose height is the
// text height plus twice the padding.
//
// The text sits at X (left), stripWidth-right-X (right) or centered, with its
// baseline Padding below the top of the ink box. The returned buffer is
// ready to be composited with the same anchor.
func RenderTextStrip(f *Font, text string, stripWidth int, opts TextOptions) *PixelBuffer {
	size := opts.Size
	if size == AutoSize {
		size = f.FitSize(text, stripWidth, opts.Padding)
	}
	box := f.Measure(size, text)

	stripWidth = atLeastOne(stripWidth)
	stripHeight := atLeastOne(box.Height() + opts.Padding*2)

	dc := gg.NewContext(stripWidth, stripHeight)
	bg := opts.Background
	if bg == nil {
		bg = color.Transparent
	}
	dc.SetColor(bg)
	dc.Clear()

	if size > 0 && text != "" {
		var x int
		switch opts.Anchor.Horizontal {
		case Center:
			x = halfRound(stripWidth - box.Right)
		case Right:
			x = stripWidth - box.Right - opts.X
		default:
			x = opts.X
		}

		face := f.Face(size)
		defer face.Close()

		fg := opts.Color
		if fg == nil {
			fg = color.Black
		}
		dc.SetFontFace(face)
		dc.SetColor(fg)
		dc.DrawString(text, float64(x), float64(opts.Padding-box.Top))
	}

	return wrapNRGBA(imaging.Clone(dc.Image()))
}

// AddText renders text into a strip as wide as dst and composites it at
// (0, opts.Y) with opts.Anchor. It returns the new buffer and the strip size.
func AddText(dst *PixelBuffer, f *Font, text string, opts TextOptions) (*PixelBuffer, int, int) {
	strip := RenderTextStrip(f, text, dst.Width(), opts)
	out := Composite(dst, strip, 0, opts.Y, opts.Anchor)
	return out, strip.Width(), strip.Height()
}

func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
