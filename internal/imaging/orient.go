package imaging

import (
	"bytes"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// ReadOrientation returns the EXIF orientation tag (1-8) embedded in data.
//
// Missing or unparsable metadata is not an error: the result is 0, meaning
// no correction. PNG and GIF sources normally land here.
func ReadOrientation(data []byte) (orientation int) {
	// goexif can panic on truncated IFDs.
	defer func() {
		if recover() != nil {
			orientation = 0
		}
	}()

	x, err := exif.Decode(bytes.NewReader(data))
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		return 0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0
	}
	o, err := tag.Int(0)
	if err != nil || o < 0 || o > 8 {
		return 0
	}
	return o
}

// Orient returns b turned upright according to an EXIF orientation code.
//
//	2: flip horizontal
//	3: rotate 180
//	4: flip vertical
//	5: rotate 90 clockwise, then flip horizontal (transpose)
//	6: rotate 90 clockwise
//	7: rotate 90 counter-clockwise, then flip horizontal (transverse)
//	8: rotate 90 counter-clockwise
//
// Any other code returns b itself. Quarter turns swap width and height.
func Orient(b *PixelBuffer, code int) *PixelBuffer {
	switch code {
	case 2:
		return b.withPixels(imaging.FlipH(b.pix))
	case 3:
		return b.withPixels(imaging.Rotate180(b.pix))
	case 4:
		return b.withPixels(imaging.FlipV(b.pix))
	case 5:
		return b.withPixels(imaging.FlipH(imaging.Rotate270(b.pix)))
	case 6:
		return b.withPixels(imaging.Rotate270(b.pix))
	case 7:
		return b.withPixels(imaging.FlipH(imaging.Rotate90(b.pix)))
	case 8:
		return b.withPixels(imaging.Rotate90(b.pix))
	default:
		return b
	}
}
