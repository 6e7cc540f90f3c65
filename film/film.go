package film

import (
	"fmt"
	"io"
	"math"
	"sync/atomic"
)

// rgbLumaWeights are the CIE Y row of the sRGB-to-XYZ matrix, used to
// estimate a sample's luminance for the firefly clamp without needing
// the active spectrum.Spectrum (Accumulate only ever sees an already
// spectrum-reduced sRGB triple).
var rgbLumaWeights = [3]float64{0.212671, 0.715160, 0.072169}

// fireflyThreshold bounds a single sample's contribution: any sample
// brighter than this luminance is rescaled down to it before the add,
// matching atomic_color.cpp's accumulate (threshold = 16384).
const fireflyThreshold = 16384.0

// pixel holds one framebuffer cell's running sum and sample count as
// atomically-updated bit patterns, so many in-flight paths (one per
// worker-pool tile dispatch) can Accumulate into the same pixel
// without a lock.
type pixel struct {
	sum   [3]atomic.Uint64
	count atomic.Uint64
}

func (p *pixel) addChannel(i int, v float64) {
	for {
		old := p.sum[i].Load()
		next := math.Float64bits(math.Float64frombits(old) + v)
		if p.sum[i].CompareAndSwap(old, next) {
			return
		}
	}
}

// Film accumulates per-pixel radiance samples and resolves them into a
// final image. Exposure is applied as 2^exposure per channel, matching
// AtomicColorFilm's construction from a scalar-or-float3 "exposure"
// property.
type Film struct {
	resolution [2]int
	scale      [3]float64
	pixels     []pixel
}

// New constructs a Film at the given resolution. exposure is in stops
// (2^exposure is applied per channel at Resolve time); a zero value
// leaves radiance unscaled.
func New(resolution [2]int, exposure [3]float64) *Film {
	f := &Film{
		resolution: resolution,
		scale: [3]float64{
			math.Pow(2, exposure[0]),
			math.Pow(2, exposure[1]),
			math.Pow(2, exposure[2]),
		},
		pixels: make([]pixel, resolution[0]*resolution[1]),
	}
	return f
}

// Resolution reports the film's (width, height) in pixels.
func (f *Film) Resolution() [2]int { return f.resolution }

// Accumulate adds one sample's contribution into pixel, rejecting NaN
// outright and rescaling an overly bright sample down to
// fireflyThreshold luminance before the add — both guard the same
// failure mode atomic_color.cpp guards against: a single outlier path
// (e.g. a near-zero-PDF light sample) swamping a pixel's average.
func (f *Film) Accumulate(px [2]int, rgb [3]float64) {
	if math.IsNaN(rgb[0]) || math.IsNaN(rgb[1]) || math.IsNaN(rgb[2]) {
		return
	}
	if px[0] < 0 || px[0] >= f.resolution[0] || px[1] < 0 || px[1] >= f.resolution[1] {
		return
	}
	lum := rgbLumaWeights[0]*rgb[0] + rgbLumaWeights[1]*rgb[1] + rgbLumaWeights[2]*rgb[2]
	c := rgb
	if lum > fireflyThreshold {
		k := fireflyThreshold / lum
		c = [3]float64{rgb[0] * k, rgb[1] * k, rgb[2] * k}
	}
	idx := px[1]*f.resolution[0] + px[0]
	p := &f.pixels[idx]
	for i := 0; i < 3; i++ {
		p.addChannel(i, c[i])
	}
	p.count.Add(1)
}

// Clear resets every pixel's sum and count to zero, matching
// AtomicColorFilmInstance::clear's dispatch of a clear_image kernel
// before a fresh render.
func (f *Film) Clear() {
	for i := range f.pixels {
		f.pixels[i] = pixel{}
	}
}

// Resolve divides each pixel's sum by its sample count and applies the
// exposure scale, returning one [3]float64 per pixel in row-major
// order. A pixel with zero samples resolves to black.
func (f *Film) Resolve() [][3]float64 {
	out := make([][3]float64, len(f.pixels))
	for i := range f.pixels {
		p := &f.pixels[i]
		n := p.count.Load()
		if n == 0 {
			continue
		}
		inv := 1.0 / float64(n)
		out[i] = [3]float64{
			math.Float64frombits(p.sum[0].Load()) * inv * f.scale[0],
			math.Float64frombits(p.sum[1].Load()) * inv * f.scale[1],
			math.Float64frombits(p.sum[2].Load()) * inv * f.scale[2],
		}
	}
	return out
}

// Encoder writes a resolved image to w in a concrete file format.
// image/png, image/jpeg and the golang.org/x/image codecs registered
// in codec.go all satisfy it; an EXR encoder is left as an extension
// point a caller can register, not implemented here.
type Encoder interface {
	Encode(w io.Writer, resolution [2]int, pixels [][3]float64) error
}

// Save resolves the film and writes it out through enc.
func (f *Film) Save(w io.Writer, enc Encoder) error {
	if enc == nil {
		return fmt.Errorf("film: Save requires a non-nil Encoder")
	}
	return enc.Encode(w, f.resolution, f.Resolve())
}
