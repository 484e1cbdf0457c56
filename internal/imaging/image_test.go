package imaging

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile stores data under a temp dir and returns the path.
func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func openPNG(t *testing.T, img image.Image) *Image {
	t.Helper()
	out, err := Open(writeFile(t, "src.png", encodePNG(t, img)))
	require.NoError(t, err)
	return out
}

func TestOpen(t *testing.T) {
	path := writeFile(t, "photo.png", encodePNG(t, filled(30, 20, color.White)))

	img, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, 30, img.Width())
	assert.Equal(t, 20, img.Height())
	assert.Equal(t, PNG, img.Extension())
	assert.Equal(t, path, img.Path())
	assert.Equal(t, TrueColor, img.Mode())
	assert.Equal(t, 0, img.Orientation())
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "notes.png", []byte("plain text, not pixels"))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOpen_AppliesOrientation(t *testing.T) {
	// Left half red, right half blue
	src := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if x < 20 {
				src.Set(x, y, color.NRGBA{255, 0, 0, 255})
			} else {
				src.Set(x, y, color.NRGBA{0, 0, 255, 255})
			}
		}
	}
	data := withOrientation(t, encodeJPEG(t, src), 6)

	img, err := Open(writeFile(t, "rotated.jpg", data))
	require.NoError(t, err)

	assert.Equal(t, JPG, img.Extension())
	assert.Equal(t, 6, img.Orientation())
	assert.Equal(t, 20, img.Width())
	assert.Equal(t, 40, img.Height())

	// A clockwise quarter turn brings the left half to the top
	top, err := SampleColor(img, 10, 5)
	require.NoError(t, err)
	assert.Greater(t, top.RGBA.R, uint8(200))
	assert.Less(t, top.RGBA.B, uint8(60))

	bottom, err := SampleColor(img, 10, 35)
	require.NoError(t, err)
	assert.Greater(t, bottom.RGBA.B, uint8(200))
	assert.Less(t, bottom.RGBA.R, uint8(60))
}

func TestOpen_IndexedGIF(t *testing.T) {
	img, err := Open(writeFile(t, "anim.gif", encodeTransparentGIF(t, 10, 10)))
	require.NoError(t, err)

	assert.Equal(t, GIF, img.Extension())
	assert.Equal(t, Indexed, img.Mode())
	assert.Equal(t, uint8(0), img.Buffer().NRGBAAt(0, 0).A)

	// GIF can be read but not written
	_, err = img.Bytes()
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	data, err := img.Bytes(PNG)
	require.NoError(t, err)
	out, f, err := DecodeBuffer(data)
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).A, "transparency survives re-encoding")
}

func TestImage_Resize(t *testing.T) {
	img, err := Load(encodePNG(t, filled(2000, 1000, color.White)), "")
	require.NoError(t, err)

	require.NoError(t, img.Resize(DefaultMaxWidth, DefaultMaxHeight))
	assert.Equal(t, 1000, img.Width())
	assert.Equal(t, 500, img.Height())

	// Already within bounds: unchanged
	require.NoError(t, img.Resize(DefaultMaxWidth, DefaultMaxHeight))
	assert.Equal(t, 1000, img.Width())
	assert.Equal(t, 500, img.Height())
}

func TestImage_Thumb(t *testing.T) {
	img := openPNG(t, filled(500, 500, color.White))

	require.NoError(t, img.Thumb(200, 100, 0, 0))
	assert.Equal(t, 200, img.Width())
	assert.Equal(t, 100, img.Height())
}

func TestImage_Crop(t *testing.T) {
	img := openPNG(t, filled(300, 300, color.White))

	require.NoError(t, img.Crop(400, 400, 0, 0))
	assert.Equal(t, 300, img.Width())
	assert.Equal(t, 300, img.Height())
}

func TestImage_FailedTransformLeavesImage(t *testing.T) {
	img := openPNG(t, filled(50, 50, color.White))

	assert.ErrorIs(t, img.Crop(0, 10, 0, 0), ErrInvalidArgument)
	assert.ErrorIs(t, img.Thumb(10, -1, 0, 0), ErrInvalidArgument)
	assert.ErrorIs(t, img.Resize(0, 0), ErrInvalidArgument)
	assert.ErrorIs(t, img.Filter("nope"), ErrUnknownFilter)

	assert.Equal(t, 50, img.Width())
	assert.Equal(t, 50, img.Height())
}

func TestImage_AddImage(t *testing.T) {
	base := openPNG(t, filled(100, 100, color.White))
	logo := openPNG(t, filled(10, 10, color.NRGBA{255, 0, 0, 255}))

	base.AddImage(logo, 5, 5, Anchor{Bottom, Right})

	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, base.Buffer().NRGBAAt(94, 94))
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, base.Buffer().NRGBAAt(95, 95))

	// The overlay source is not consumed
	assert.Equal(t, 10, logo.Width())
}

func TestImage_AddText(t *testing.T) {
	img := openPNG(t, filled(200, 80, color.Black))

	w, h, err := img.AddText(writeTestFont(t), "Hello", DefaultTextOptions())
	require.NoError(t, err)
	assert.Equal(t, 200, w)
	assert.Greater(t, h, 0)
}

func TestImage_AddText_MissingFont(t *testing.T) {
	img := openPNG(t, filled(20, 20, color.Black))
	before := img.Buffer()

	_, _, err := img.AddText(filepath.Join(t.TempDir(), "none.ttf"), "Hello", DefaultTextOptions())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before.pix.Pix, img.Buffer().pix.Pix)
}

func TestImage_Filter(t *testing.T) {
	img := openPNG(t, filled(8, 8, color.NRGBA{255, 0, 0, 255}))

	require.NoError(t, img.Filter(FilterNegate))
	assert.Equal(t, color.NRGBA{0, 255, 255, 255}, img.Buffer().NRGBAAt(0, 0))
}

func TestImage_Clone(t *testing.T) {
	img := openPNG(t, filled(100, 100, color.White))

	c := img.Clone()
	require.NoError(t, c.Resize(10, 10))

	assert.Equal(t, 100, img.Width())
	assert.Equal(t, 10, c.Width())
	assert.Equal(t, img.Extension(), c.Extension())
	assert.Equal(t, img.Path(), c.Path())
	assert.Equal(t, img.Mode(), c.Mode())
}

func TestImage_SavePNGKeepsAlpha(t *testing.T) {
	img := openPNG(t, filled(10, 10, color.NRGBA{0, 255, 0, 90}))
	dest := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, img.Save(dest, PNG))

	saved, err := Open(dest)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0, 255, 0, 90}, saved.Buffer().NRGBAAt(5, 5))
}

func TestImage_SaveJPEGFlattens(t *testing.T) {
	img := openPNG(t, filled(16, 16, color.NRGBA{}))
	dest := filepath.Join(t.TempDir(), "out.jpg")

	require.NoError(t, img.Save(dest, JPG))

	saved, err := Open(dest)
	require.NoError(t, err)
	assert.Equal(t, JPG, saved.Extension())
	px := saved.Buffer().NRGBAAt(8, 8)
	assert.InDelta(t, 255, px.R, 3)
	assert.Equal(t, uint8(255), px.A)
}

func TestImage_SaveDefaultsToSource(t *testing.T) {
	path := writeFile(t, "inplace.png", encodePNG(t, filled(40, 40, color.White)))
	img, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, img.Resize(20, 20))
	require.NoError(t, img.Save("", 0))

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 20, reloaded.Width())
	assert.Equal(t, PNG, reloaded.Extension())
}

func TestImage_SaveGIFFails(t *testing.T) {
	img := openPNG(t, filled(4, 4, color.White))
	dest := filepath.Join(t.TempDir(), "out.gif")

	err := img.Save(dest, GIF)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NoFileExists(t, dest)
}

func TestImage_SaveWithoutDestination(t *testing.T) {
	img, err := Load(encodePNG(t, filled(4, 4, color.White)), "")
	require.NoError(t, err)

	assert.ErrorIs(t, img.Save("", PNG), ErrInvalidArgument)
}

func TestImage_BytesIdempotent(t *testing.T) {
	img := openPNG(t, createPatternImage(20, 20))

	a, err := img.Bytes()
	require.NoError(t, err)
	b, err := img.Bytes()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))
}

func TestImage_EncodeOptions(t *testing.T) {
	img := openPNG(t, createPatternImage(64, 64))

	opts := DefaultEncodeOptions()
	opts.JPEGQuality = 10
	img.SetEncodeOptions(opts)
	low, err := img.Bytes(JPG)
	require.NoError(t, err)

	opts.JPEGQuality = 100
	img.SetEncodeOptions(opts)
	high, err := img.Bytes(JPG)
	require.NoError(t, err)

	assert.Less(t, len(low), len(high))
}

func TestImage_ImplementsImage(t *testing.T) {
	var _ image.Image = (*Image)(nil)

	img := openPNG(t, filled(3, 3, color.White))
	assert.Equal(t, image.Rect(0, 0, 3, 3), img.Bounds())
	assert.Equal(t, color.NRGBAModel, img.ColorModel())
}
