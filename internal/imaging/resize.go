package imaging

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// Default bounds used by Resize when the caller has no preference.
const (
	DefaultMaxWidth  = 1000
	DefaultMaxHeight = 1000
)

// FitSize computes the largest aspect-preserving size of a width×height
// image that fits inside maxWidth×maxHeight.
//
// The dominant axis is scaled first and the other axis is checked second:
//
//   - Landscape or square (width/height >= 1): if width exceeds maxWidth,
//     scale both to maxWidth. If the resulting height still exceeds
//     maxHeight, rescale both from that second ratio.
//   - Portrait: the symmetric height-first version.
//
// Derived dimensions are truncated toward zero, and raised to 1 when an
// extreme aspect ratio would truncate them away. An image already inside
// the bounds keeps its size.
func FitSize(width, height, maxWidth, maxHeight int) (int, int) {
	w, h := width, height

	if float64(width)/float64(height) >= 1 {
		if width > maxWidth {
			ratio := float64(maxWidth) / float64(width)
			w = maxWidth
			h = int(float64(height) * ratio)
		}
		if h > maxHeight {
			ratio := float64(maxHeight) / float64(h)
			h = maxHeight
			w = int(float64(w) * ratio)
		}
	} else {
		if height > maxHeight {
			ratio := float64(maxHeight) / float64(height)
			h = maxHeight
			w = int(float64(width) * ratio)
		}
		if w > maxWidth {
			ratio := float64(maxWidth) / float64(w)
			w = maxWidth
			h = int(float64(h) * ratio)
		}
	}

	return atLeastOne(w), atLeastOne(h)
}

// Resize returns b scaled to fit inside maxWidth×maxHeight (see FitSize).
//
// The source is area-averaged (box filter) into a fresh transparent canvas.
// When no scaling is needed the result is a copy.
func Resize(b *PixelBuffer, maxWidth, maxHeight int) (*PixelBuffer, error) {
	if maxWidth < 1 || maxHeight < 1 {
		return nil, fmt.Errorf("resize bounds %dx%d: %w", maxWidth, maxHeight, ErrInvalidArgument)
	}
	w, h := FitSize(b.Width(), b.Height(), maxWidth, maxHeight)
	return resample(b, w, h), nil
}

// resample area-averages the whole of b into a new w×h true-colour buffer.
func resample(b *PixelBuffer, w, h int) *PixelBuffer {
	return wrapNRGBA(imaging.Resize(b.pix, w, h, imaging.Box))
}
