package imaging

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// FilterType names a pixel filter.
type FilterType string

// Filters accepted by ApplyFilter. Filters with a parameter read it from the
// first argument and fall back to the listed default.
const (
	FilterNegate       FilterType = "negate"
	FilterGrayscale    FilterType = "grayscale"
	FilterSepia        FilterType = "sepia"
	FilterBrightness   FilterType = "brightness"    // change in [-1, 1], default 0.1
	FilterContrast     FilterType = "contrast"      // change in [-1, 1], default 0.1
	FilterSaturation   FilterType = "saturation"    // change in [-1, 1], default 0.1
	FilterGamma        FilterType = "gamma"         // gamma > 0, default 1.2
	FilterEdgeDetect   FilterType = "edgedetect"    // radius, default 1
	FilterEmboss       FilterType = "emboss"
	FilterSharpen      FilterType = "sharpen"
	FilterGaussianBlur FilterType = "gaussian_blur" // radius, default 1
	FilterSmooth       FilterType = "smooth"        // box radius, default 1
)

type filterFunc func(img image.Image, arg float64) image.Image

type filterSpec struct {
	fn  filterFunc
	def float64
}

var filters = map[FilterType]filterSpec{
	FilterNegate:       {fn: func(img image.Image, _ float64) image.Image { return effect.Invert(img) }},
	FilterGrayscale:    {fn: func(img image.Image, _ float64) image.Image { return effect.Grayscale(img) }},
	FilterSepia:        {fn: func(img image.Image, _ float64) image.Image { return effect.Sepia(img) }},
	FilterBrightness:   {fn: func(img image.Image, v float64) image.Image { return adjust.Brightness(img, v) }, def: 0.1},
	FilterContrast:     {fn: func(img image.Image, v float64) image.Image { return adjust.Contrast(img, v) }, def: 0.1},
	FilterSaturation:   {fn: func(img image.Image, v float64) image.Image { return adjust.Saturation(img, v) }, def: 0.1},
	FilterGamma:        {fn: func(img image.Image, v float64) image.Image { return adjust.Gamma(img, v) }, def: 1.2},
	FilterEdgeDetect:   {fn: func(img image.Image, v float64) image.Image { return effect.EdgeDetection(img, v) }, def: 1},
	FilterEmboss:       {fn: func(img image.Image, _ float64) image.Image { return effect.Emboss(img) }},
	FilterSharpen:      {fn: func(img image.Image, _ float64) image.Image { return effect.Sharpen(img) }},
	FilterGaussianBlur: {fn: func(img image.Image, v float64) image.Image { return blur.Gaussian(img, v) }, def: 1},
	FilterSmooth:       {fn: func(img image.Image, v float64) image.Image { return blur.Box(img, v) }, def: 1},
}

// Filters returns the known filter names, sorted.
func Filters() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// ApplyFilter runs a named filter over b and returns a new true-colour buffer
// of the same size.
func ApplyFilter(b *PixelBuffer, name FilterType, args ...float64) (*PixelBuffer, error) {
	flt, ok := filters[FilterType(strings.ToLower(string(name)))]
	if !ok {
		return nil, fmt.Errorf("filter %q: %w", name, ErrUnknownFilter)
	}
	arg := flt.def
	if len(args) > 0 {
		arg = args[0]
	}
	return wrapNRGBA(imaging.Clone(flt.fn(b.pix, arg))), nil
}
