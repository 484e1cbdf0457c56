package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ColorMode describes how the source pixels were stored before decoding.
type ColorMode int

const (
	// TrueColor images carry an independent alpha value per pixel.
	TrueColor ColorMode = iota

	// Indexed images were stored as palette indices, with at most one
	// palette entry flagged as transparent.
	Indexed
)

// String returns "truecolor" or "indexed".
func (m ColorMode) String() string {
	if m == Indexed {
		return "indexed"
	}
	return "truecolor"
}

// PixelBuffer is a fully materialized, non-premultiplied RGBA pixel grid.
//
// Palette transparency is resolved into the alpha channel when the buffer is
// built, so every operation can blend without looking at the palette again.
// The palette and transparent index are kept only as metadata describing the
// source.
//
// A PixelBuffer is never mutated once built. Transforms return a new buffer
// and the caller swaps it in.
type PixelBuffer struct {
	pix         *image.NRGBA
	mode        ColorMode
	palette     color.Palette
	transparent int
}

// NewCanvas allocates a fully transparent true-colour buffer.
// Dimensions below 1 are raised to 1.
func NewCanvas(width, height int) *PixelBuffer {
	width, height = atLeastOne(width), atLeastOne(height)
	return wrapNRGBA(imaging.New(width, height, color.Transparent))
}

// NewPixelBuffer copies img into a new buffer. Paletted sources keep their
// palette metadata and transparent index; everything else is TrueColor.
func NewPixelBuffer(img image.Image) *PixelBuffer {
	b := wrapNRGBA(imaging.Clone(img))
	if p, ok := img.(*image.Paletted); ok {
		b.mode = Indexed
		b.palette = append(color.Palette(nil), p.Palette...)
		b.transparent = transparentIndex(p.Palette)
	}
	return b
}

func wrapNRGBA(pix *image.NRGBA) *PixelBuffer {
	return &PixelBuffer{pix: pix, mode: TrueColor, transparent: -1}
}

// transparentIndex returns the first fully transparent palette entry, or -1.
func transparentIndex(p color.Palette) int {
	for i, c := range p {
		if _, _, _, a := c.RGBA(); a == 0 {
			return i
		}
	}
	return -1
}

// Width returns the buffer width in pixels.
func (b *PixelBuffer) Width() int { return b.pix.Rect.Dx() }

// Height returns the buffer height in pixels.
func (b *PixelBuffer) Height() int { return b.pix.Rect.Dy() }

// Size returns the buffer dimensions as a point.
func (b *PixelBuffer) Size() image.Point { return b.pix.Rect.Size() }

// Mode reports whether the buffer came from a true-colour or indexed source.
func (b *PixelBuffer) Mode() ColorMode { return b.mode }

// TransparentIndex returns the palette index flagged transparent, if any.
func (b *PixelBuffer) TransparentIndex() (int, bool) {
	if b.mode != Indexed || b.transparent < 0 {
		return 0, false
	}
	return b.transparent, true
}

// Opaque reports whether every pixel has full alpha.
func (b *PixelBuffer) Opaque() bool { return b.pix.Opaque() }

// ColorModel implements image.Image.
func (b *PixelBuffer) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image. The origin is always (0,0).
func (b *PixelBuffer) Bounds() image.Rectangle { return b.pix.Rect }

// At implements image.Image.
func (b *PixelBuffer) At(x, y int) color.Color { return b.pix.NRGBAAt(x, y) }

// NRGBAAt returns the pixel at (x, y) without interface conversion.
func (b *PixelBuffer) NRGBAAt(x, y int) color.NRGBA { return b.pix.NRGBAAt(x, y) }

// Clone returns a deep copy that keeps the colour mode and palette metadata.
func (b *PixelBuffer) Clone() *PixelBuffer {
	c := &PixelBuffer{
		pix:         imaging.Clone(b.pix),
		mode:        b.mode,
		transparent: b.transparent,
	}
	if b.palette != nil {
		c.palette = append(color.Palette(nil), b.palette...)
	}
	return c
}

// withPixels returns a buffer holding pix and b's colour metadata. Used by
// pixel-preserving transforms such as flips and rotations.
func (b *PixelBuffer) withPixels(pix *image.NRGBA) *PixelBuffer {
	return &PixelBuffer{pix: pix, mode: b.mode, palette: b.palette, transparent: b.transparent}
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
