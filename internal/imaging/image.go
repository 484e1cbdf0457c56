package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

// Image is a loaded raster image plus the transforms that can be scripted
// against it.
//
// Every transform replaces the whole pixel buffer; nothing edits pixels in
// place, and no buffer is ever shared with another Image. An Image is not safe
// for concurrent mutation.
//
// Image implements image.Image, so one Image can be passed to another's
// AddImage.
type Image struct {
	buf         *PixelBuffer
	ext         Format
	path        string
	orientation int
	encode      EncodeOptions
}

// Open loads the image at path.
//
// The format is detected from content, not from the file extension. Any EXIF
// orientation is applied before Open returns. A path that is not a regular
// file fails with ErrNotFound; unrecognized content fails with
// ErrUnsupportedFormat.
func Open(path string) (*Image, error) {
	if !isFile(path) {
		return nil, fmt.Errorf("%s is not a file: %w", path, ErrNotFound)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return Load(data, path)
}

// Load builds an Image from encoded bytes. path is recorded as the default
// Save destination and may be empty.
func Load(data []byte, path string) (*Image, error) {
	buf, ext, err := DecodeBuffer(data)
	if err != nil {
		return nil, err
	}
	orientation := ReadOrientation(data)
	return &Image{
		buf:         Orient(buf, orientation),
		ext:         ext,
		path:        path,
		orientation: orientation,
		encode:      DefaultEncodeOptions(),
	}, nil
}

// Width returns the current width in pixels.
func (img *Image) Width() int { return img.buf.Width() }

// Height returns the current height in pixels.
func (img *Image) Height() int { return img.buf.Height() }

// Extension returns the format detected at load time. It never changes.
func (img *Image) Extension() Format { return img.ext }

// Path returns the file the image was loaded from.
func (img *Image) Path() string { return img.path }

// Orientation returns the EXIF orientation code applied at load (0 if none).
func (img *Image) Orientation() int { return img.orientation }

// Mode returns the colour mode of the current buffer.
func (img *Image) Mode() ColorMode { return img.buf.Mode() }

// Buffer returns a copy of the current pixel buffer.
func (img *Image) Buffer() *PixelBuffer { return img.buf.Clone() }

// SetEncodeOptions replaces the options used by Save, Encode and Bytes.
func (img *Image) SetEncodeOptions(opts EncodeOptions) { img.encode = opts }

// ColorModel implements image.Image.
func (img *Image) ColorModel() color.Model { return img.buf.ColorModel() }

// Bounds implements image.Image.
func (img *Image) Bounds() image.Rectangle { return img.buf.Bounds() }

// At implements image.Image.
func (img *Image) At(x, y int) color.Color { return img.buf.At(x, y) }

// Resize shrinks the image to fit maxWidth×maxHeight, keeping its aspect
// ratio. Images already inside the bounds keep their size.
func (img *Image) Resize(maxWidth, maxHeight int) error {
	buf, err := Resize(img.buf, maxWidth, maxHeight)
	if err != nil {
		return err
	}
	img.buf = buf
	return nil
}

// Crop keeps a width×height window at (x, y), clamped to the image.
func (img *Image) Crop(width, height, x, y int) error {
	buf, err := Crop(img.buf, width, height, x, y)
	if err != nil {
		return err
	}
	img.buf = buf
	return nil
}

// Thumb replaces the image with a width×height cover-fit thumbnail.
// The offset displaces the centered crop window before it is clamped.
func (img *Image) Thumb(width, height, offsetX, offsetY int) error {
	buf, err := Thumbnail(img.buf, width, height, offsetX, offsetY)
	if err != nil {
		return err
	}
	img.buf = buf
	return nil
}

// AddImage draws src over the image at the anchored position. Content that
// falls outside the image is clipped.
func (img *Image) AddImage(src image.Image, x, y int, anchor Anchor) {
	img.buf = Composite(img.buf, src, x, y, anchor)
}

// AddText renders text with the font at fontPath and composites it per opts.
// It returns the size of the rendered strip.
//
// A missing font fails with ErrNotFound and leaves the image untouched.
func (img *Image) AddText(fontPath, text string, opts TextOptions) (int, int, error) {
	f, err := LoadFont(fontPath)
	if err != nil {
		return 0, 0, err
	}
	w, h := img.AddTextFont(f, text, opts)
	return w, h, nil
}

// AddTextFont is AddText with an already loaded font.
func (img *Image) AddTextFont(f *Font, text string, opts TextOptions) (int, int) {
	buf, w, h := AddText(img.buf, f, text, opts)
	img.buf = buf
	return w, h
}

// Filter applies a named pixel filter. Unknown names fail with
// ErrUnknownFilter and leave the image untouched.
func (img *Image) Filter(name FilterType, args ...float64) error {
	buf, err := ApplyFilter(img.buf, name, args...)
	if err != nil {
		return err
	}
	img.buf = buf
	return nil
}

// Clone returns an independent copy with the same format, path and colour
// mode.
func (img *Image) Clone() *Image {
	c := *img
	c.buf = img.buf.Clone()
	return &c
}

// Save encodes the image to destination. An empty destination means the
// source path; a zero format means Extension().
func (img *Image) Save(destination string, format Format) error {
	if destination == "" {
		destination = img.path
	}
	if destination == "" {
		return fmt.Errorf("no destination for image: %w", ErrInvalidArgument)
	}

	data, err := img.Bytes(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(destination, data, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// Encode writes the encoded image to w. A zero format means Extension().
func (img *Image) Encode(w io.Writer, format Format) error {
	if format == 0 {
		format = img.ext
	}
	return EncodeBuffer(w, img.buf, format, img.encode)
}

// Bytes returns the encoded image in the load format, or in format[0] when
// given.
func (img *Image) Bytes(format ...Format) ([]byte, error) {
	var f Format
	if len(format) > 0 {
		f = format[0]
	}
	var buf bytes.Buffer
	if err := img.Encode(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
