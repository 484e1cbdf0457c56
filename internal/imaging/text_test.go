package imaging

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

// writeTestFont writes the Go Regular TrueType font to a temp dir and
// returns its path.
func writeTestFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	return path
}

func loadTestFont(t *testing.T) *Font {
	t.Helper()
	f, err := LoadFont(writeTestFont(t))
	require.NoError(t, err)
	return f
}

// inkColumns returns the first and last columns holding a pixel with
// non-zero alpha, or (-1, -1) if there are none.
func inkColumns(b *PixelBuffer) (int, int) {
	first, last := -1, -1
	for x := 0; x < b.Width(); x++ {
		for y := 0; y < b.Height(); y++ {
			if b.NRGBAAt(x, y).A > 0 {
				if first < 0 {
					first = x
				}
				last = x
				break
			}
		}
	}
	return first, last
}

func TestLoadFont(t *testing.T) {
	path := writeTestFont(t)

	f, err := LoadFont(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())
}

func TestLoadFont_NotFound(t *testing.T) {
	_, err := LoadFont(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = LoadFont(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound, "a directory is not a font file")
}

func TestLoadFont_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not a font"), 0o644))

	_, err := LoadFont(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFont_Measure(t *testing.T) {
	f := loadTestFont(t)

	small := f.Measure(12, "Hello")
	large := f.Measure(48, "Hello")

	assert.Greater(t, small.Width(), 0)
	assert.Greater(t, large.Width(), small.Width())
	assert.Greater(t, large.Height(), small.Height())
	assert.Less(t, large.Top, 0, "ink rises above the baseline")

	assert.Equal(t, TextBox{}, f.Measure(0, "Hello"))
	assert.Equal(t, TextBox{}, f.Measure(12, ""))
}

func TestFont_FitSize(t *testing.T) {
	f := loadTestFont(t)

	tests := []struct {
		name     string
		maxWidth int
		padding  int
	}{
		{"wide", 400, 0},
		{"narrow", 60, 0},
		{"padded", 200, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size := f.FitSize("Hello", tt.maxWidth, tt.padding)
			require.Greater(t, size, 0)
			require.LessOrEqual(t, size, MaxAutoFontSize)

			assert.Less(t, f.Measure(size, "Hello").Width()+2*tt.padding, tt.maxWidth)
			if size < MaxAutoFontSize {
				assert.GreaterOrEqual(t, f.Measure(size+1, "Hello").Width()+2*tt.padding, tt.maxWidth)
			}
		})
	}
}

func TestFont_FitSize_Caps(t *testing.T) {
	f := loadTestFont(t)
	assert.Equal(t, MaxAutoFontSize, f.FitSize("i", 100000, 0))
}

func TestFont_FitSize_NothingFits(t *testing.T) {
	f := loadTestFont(t)
	assert.Equal(t, 0, f.FitSize("Hello", 1, 0))
	assert.Equal(t, 0, f.FitSize("Hello", 100, 60))
}

func TestRenderTextStrip(t *testing.T) {
	f := loadTestFont(t)
	opts := DefaultTextOptions()
	opts.Size = 24
	opts.Padding = 4

	strip := RenderTextStrip(f, "Hello", 300, opts)

	box := f.Measure(24, "Hello")
	assert.Equal(t, 300, strip.Width())
	assert.Equal(t, box.Height()+8, strip.Height())

	first, last := inkColumns(strip)
	assert.GreaterOrEqual(t, first, 0, "text should be drawn")
	assert.Less(t, last, 300)
}

func TestRenderTextStrip_Alignment(t *testing.T) {
	f := loadTestFont(t)
	const width = 300

	t.Run("left", func(t *testing.T) {
		opts := DefaultTextOptions()
		opts.Size = 24
		opts.X = 20
		first, _ := inkColumns(RenderTextStrip(f, "Hello", width, opts))
		assert.InDelta(t, 20, first, 4)
	})

	t.Run("right", func(t *testing.T) {
		opts := DefaultTextOptions()
		opts.Size = 24
		opts.X = 10
		opts.Anchor = Anchor{Top, Right}
		_, last := inkColumns(RenderTextStrip(f, "Hello", width, opts))
		assert.InDelta(t, width-10, last, 4)
	})

	t.Run("center", func(t *testing.T) {
		opts := DefaultTextOptions()
		opts.Size = 24
		opts.X = 1000 // ignored when centered
		opts.Anchor = Anchor{Middle, Center}
		first, last := inkColumns(RenderTextStrip(f, "Hello", width, opts))
		assert.InDelta(t, first, width-1-last, 4)
	})
}

func TestRenderTextStrip_Background(t *testing.T) {
	f := loadTestFont(t)
	opts := DefaultTextOptions()
	opts.Size = 16
	opts.Background = color.NRGBA{0, 0, 255, 255}

	strip := RenderTextStrip(f, "x", 100, opts)
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, strip.NRGBAAt(99, 0))
}

func TestRenderTextStrip_AutoSizeTooNarrow(t *testing.T) {
	f := loadTestFont(t)

	strip := RenderTextStrip(f, "Hello", 1, DefaultTextOptions())
	assert.Equal(t, 1, strip.Width())
	assert.Equal(t, 1, strip.Height())
	first, _ := inkColumns(strip)
	assert.Equal(t, -1, first)
}

func TestAddText(t *testing.T) {
	f := loadTestFont(t)
	dst := NewPixelBuffer(filled(200, 100, color.Black))

	opts := DefaultTextOptions()
	opts.Size = 20
	opts.Anchor = Anchor{Bottom, Left}
	opts.Background = color.NRGBA{255, 0, 0, 255}

	out, w, h := AddText(dst, f, "Hi", opts)

	assert.Equal(t, 200, w)
	assert.Greater(t, h, 0)
	assert.Equal(t, dst.Size(), out.Size())

	// The strip is flush with the bottom edge
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, out.NRGBAAt(199, 99))
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, out.NRGBAAt(199, 100-h))
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, out.NRGBAAt(199, 99-h))

	// The target is untouched
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, dst.NRGBAAt(199, 99))
}

func TestAddText_TransparentBackground(t *testing.T) {
	f := loadTestFont(t)
	dst := NewPixelBuffer(filled(200, 60, color.Black))

	out, _, _ := AddText(dst, f, "Hello", DefaultTextOptions())

	var white int
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			px := out.NRGBAAt(x, y)
			assert.Equal(t, uint8(255), px.A)
			if px.R > 200 {
				white++
			}
		}
	}
	assert.Greater(t, white, 0, "white text should be visible")
}
