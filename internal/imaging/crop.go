package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropRect clamps a width×height window at (x, y) to an imgW×imgH image.
//
// The size is clamped first. A negative origin becomes 0; a window that would
// overflow the right or bottom edge is pulled back flush against it.
func CropRect(imgW, imgH, width, height, x, y int) image.Rectangle {
	if width > imgW {
		width = imgW
	}
	if height > imgH {
		height = imgH
	}

	if x < 0 {
		x = 0
	} else if x+width > imgW {
		x = imgW - width
	}

	if y < 0 {
		y = 0
	} else if y+height > imgH {
		y = imgH - height
	}

	return image.Rect(x, y, x+width, y+height)
}

// Crop copies the clamped window (see CropRect) into a new buffer. No
// resampling takes place.
func Crop(b *PixelBuffer, width, height, x, y int) (*PixelBuffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("crop size %dx%d: %w", width, height, ErrInvalidArgument)
	}
	r := CropRect(b.Width(), b.Height(), width, height, x, y)
	return wrapNRGBA(imaging.Crop(b.pix, r)), nil
}
