package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// Format is the detected container format of an image. GIF is decode-only.
type Format int

const (
	GIF Format = iota + 1
	PNG
	JPG
)

// String returns the canonical extension tag: "gif", "png" or "jpg".
func (f Format) String() string {
	switch f {
	case GIF:
		return "gif"
	case PNG:
		return "png"
	case JPG:
		return "jpg"
	default:
		return "unknown"
	}
}

// MimeType returns the IANA media type for f.
func (f Format) MimeType() string {
	switch f {
	case GIF:
		return "image/gif"
	case PNG:
		return "image/png"
	case JPG:
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// Encodable reports whether f can be written by Encode.
func (f Format) Encodable() bool { return f == PNG || f == JPG }

// ParseFormat maps a name or extension ("png", ".jpg", "JPEG", ...) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "gif":
		return GIF, nil
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// EncodeOptions controls the encoder.
type EncodeOptions struct {
	// JPEGQuality ranges 1-100.
	JPEGQuality int

	// PNGCompression is passed through to image/png.
	PNGCompression png.CompressionLevel

	// Background is the opaque colour transparent regions are flattened
	// against before JPEG encoding.
	Background color.Color
}

// DefaultEncodeOptions returns quality 75 JPEG on white and default zlib PNG.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		JPEGQuality:    75,
		PNGCompression: png.DefaultCompression,
		Background:     color.White,
	}
}

// DecodeBuffer classifies data by content and decodes it.
//
// Only GIF, PNG and JPEG are accepted; anything else (including formats other
// registered decoders understand) fails with ErrUnsupportedFormat. For GIF the
// first frame is used.
func DecodeBuffer(data []byte) (*PixelBuffer, Format, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, 0, fmt.Errorf("failed to decode image: %w", ErrUnsupportedFormat)
		}
		return nil, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	var f Format
	switch name {
	case "gif":
		f = GIF
	case "png":
		f = PNG
	case "jpeg":
		f = JPG
	default:
		return nil, 0, fmt.Errorf("failed to decode image: %w: %s", ErrUnsupportedFormat, name)
	}

	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, 0, fmt.Errorf("failed to decode image: empty %s image", f)
	}
	return NewPixelBuffer(img), f, nil
}

// EncodeBuffer writes b to w as PNG or JPEG.
//
// PNG keeps per-pixel alpha. JPEG has no alpha channel, so the pixels are
// first composited over opts.Background.
func EncodeBuffer(w io.Writer, b *PixelBuffer, f Format, opts EncodeOptions) error {
	switch f {
	case PNG:
		if err := imaging.Encode(w, b.pix, imaging.PNG, imaging.PNGCompressionLevel(opts.PNGCompression)); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
		return nil
	case JPG:
		bg := opts.Background
		if bg == nil {
			bg = color.White
		}
		flat := imaging.New(b.Width(), b.Height(), opaque(bg))
		flat = imaging.Overlay(flat, b.pix, image.Pt(0, 0), 1.0)
		quality := opts.JPEGQuality
		if quality < 1 || quality > 100 {
			quality = 75
		}
		if err := imaging.Encode(w, flat, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return fmt.Errorf("failed to encode jpeg: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("cannot encode %s: %w", f, ErrUnsupportedFormat)
	}
}

// opaque drops the alpha of c.
func opaque(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}
