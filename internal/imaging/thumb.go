package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ThumbRect returns the source window a cover-fit thumbnail samples from.
//
// The window has the thumbnail's aspect ratio and uses the whole of the
// image's shorter side. It is centered, displaced by (offsetX, offsetY), and
// then clamped so it stays inside the image. Only the origin is clamped; the
// window size never shrinks because of the offset.
func ThumbRect(imgW, imgH, thumbW, thumbH, offsetX, offsetY int) image.Rectangle {
	cutW, cutH := imgW, imgH
	widthToHeight := float64(thumbW) / float64(thumbH)
	heightToWidth := float64(thumbH) / float64(thumbW)

	if cutW <= cutH {
		cutH = int(float64(cutW) * heightToWidth)
	} else {
		cutW = int(float64(cutH) * widthToHeight)
	}

	if cutW > imgW {
		ratio := float64(imgW) / float64(cutW)
		cutW = imgW
		cutH = int(ratio * float64(cutH))
	}
	if cutH > imgH {
		ratio := float64(imgH) / float64(cutH)
		cutH = imgH
		cutW = int(ratio * float64(cutW))
	}
	cutW, cutH = atLeastOne(cutW), atLeastOne(cutH)

	x := clampInt(int(math.Round(float64(imgW-cutW)/2+float64(offsetX))), 0, imgW-cutW)
	y := clampInt(int(math.Round(float64(imgH-cutH)/2+float64(offsetY))), 0, imgH-cutH)

	return image.Rect(x, y, x+cutW, y+cutH)
}

// Thumbnail crops the ThumbRect window out of b and resamples it to exactly
// width×height.
func Thumbnail(b *PixelBuffer, width, height, offsetX, offsetY int) (*PixelBuffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("thumbnail size %dx%d: %w", width, height, ErrInvalidArgument)
	}
	r := ThumbRect(b.Width(), b.Height(), width, height, offsetX, offsetY)
	window := imaging.Crop(b.pix, r)
	return wrapNRGBA(imaging.Resize(window, width, height, imaging.Box)), nil
}

// clampInt constrains val to [lo, hi].
func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
