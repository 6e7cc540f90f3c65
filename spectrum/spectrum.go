package spectrum

// Spectrum is the scene-wide capability that decides how color is
// carried through the renderer: as three fixed RGB channels, or as
// four hero-sampled wavelengths drawn from a visible-range importance
// density or a uniform one. Exactly one Spectrum is active per scene.
type Spectrum interface {
	// Dimension returns the number of channels SampledSpectrum values
	// produced by this variant populate: 3 for RGB, 4 for either
	// hero-wavelength variant.
	Dimension() int

	// Sample draws one SampledWavelengths from u in [0, 1).
	Sample(u float64) SampledWavelengths

	// DecodeAlbedo interprets rgb as a surface reflectance (clamped to
	// [0, 1]) and evaluates it at swl's wavelengths.
	DecodeAlbedo(swl SampledWavelengths, rgb [3]float64) SampledSpectrum

	// DecodeIlluminant interprets rgb as an unbounded positive light
	// color and evaluates it at swl's wavelengths.
	DecodeIlluminant(swl SampledWavelengths, rgb [3]float64) SampledSpectrum

	// CIEY reduces a sampled spectrum to scalar CIE luminance.
	CIEY(swl SampledWavelengths, s SampledSpectrum) float64

	// SRGB reduces a sampled spectrum back to linear sRGB, e.g. for
	// film accumulation.
	SRGB(swl SampledWavelengths, s SampledSpectrum) [3]float64
}

// rgbLumaWeights are the CIE Y row of the sRGB-to-XYZ matrix, used to
// compute luminance directly from RGB without a wavelength loop.
var rgbLumaWeights = [3]float64{0.212671, 0.715160, 0.072169}

// RGBSpectrum is the fixed-RGB-3 variant: color is carried as three
// RGB channels with no spectral uplift at all. Sample returns three
// fixed "peak" wavelengths, roughly where the sRGB primaries are most
// saturated, purely so code shared with the hero-wavelength variants
// (which index by wavelength) has something sensible to report.
type RGBSpectrum struct{}

var rgbPeakWavelengths = [3]float64{611.4, 549.1, 464.5}

func (RGBSpectrum) Dimension() int { return 3 }

func (RGBSpectrum) Sample(float64) SampledWavelengths {
	var swl SampledWavelengths
	for i := 0; i < 3; i++ {
		swl.Lambda[i] = rgbPeakWavelengths[i]
		swl.PDF[i] = 1
	}
	return swl
}

func (RGBSpectrum) DecodeAlbedo(_ SampledWavelengths, rgb [3]float64) SampledSpectrum {
	return SampledSpectrum{Dim: 3, Values: [SampleCount]float64{
		clamp01(rgb[0]), clamp01(rgb[1]), clamp01(rgb[2]),
	}}
}

func (RGBSpectrum) DecodeIlluminant(_ SampledWavelengths, rgb [3]float64) SampledSpectrum {
	return SampledSpectrum{Dim: 3, Values: [SampleCount]float64{
		maxFloat(rgb[0], 0), maxFloat(rgb[1], 0), maxFloat(rgb[2], 0),
	}}
}

func (RGBSpectrum) CIEY(_ SampledWavelengths, s SampledSpectrum) float64 {
	return rgbLumaWeights[0]*s.Values[0] + rgbLumaWeights[1]*s.Values[1] + rgbLumaWeights[2]*s.Values[2]
}

func (RGBSpectrum) SRGB(_ SampledWavelengths, s SampledSpectrum) [3]float64 {
	return [3]float64{s.Values[0], s.Values[1], s.Values[2]}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// heroSpectrum is the common implementation shared by the two
// hero-wavelength variants; they differ only in how Sample draws u.
type heroSpectrum struct {
	sample func(u float64) SampledWavelengths
}

func (h heroSpectrum) Dimension() int { return SampleCount }

func (h heroSpectrum) Sample(u float64) SampledWavelengths { return h.sample(u) }

func (heroSpectrum) DecodeAlbedo(swl SampledWavelengths, rgb [3]float64) SampledSpectrum {
	rsp := DecodeAlbedo(rgb)
	return SampledSpectrum{Dim: SampleCount, Values: RGBAlbedoSpectrum{RSP: rsp}.Sample(swl)}
}

func (heroSpectrum) DecodeIlluminant(swl SampledWavelengths, rgb [3]float64) SampledSpectrum {
	illum := NewRGBIlluminantSpectrum(rgb, nil)
	return SampledSpectrum{Dim: SampleCount, Values: illum.Sample(swl)}
}

func (heroSpectrum) CIEY(swl SampledWavelengths, s SampledSpectrum) float64 {
	return heroToY(swl, s.Values)
}

func (heroSpectrum) SRGB(swl SampledWavelengths, s SampledSpectrum) [3]float64 {
	return heroToRGB(swl, s.Values)
}

// HeroVisibleSpectrum is the fixed-HWSS-4-visible variant: four
// stratified wavelengths drawn from the eye's visible-sensitivity
// importance density.
type HeroVisibleSpectrum struct{ heroSpectrum }

// NewHeroVisibleSpectrum constructs the fixed-HWSS-4-visible variant.
func NewHeroVisibleSpectrum() HeroVisibleSpectrum {
	return HeroVisibleSpectrum{heroSpectrum{sample: SampleVisible}}
}

// HeroUniformSpectrum is the fixed-HWSS-4-uniform variant: four
// stratified wavelengths drawn uniformly across the visible range.
type HeroUniformSpectrum struct{ heroSpectrum }

// NewHeroUniformSpectrum constructs the fixed-HWSS-4-uniform variant.
func NewHeroUniformSpectrum() HeroUniformSpectrum {
	return HeroUniformSpectrum{heroSpectrum{
		sample: func(u float64) SampledWavelengths {
			return SampleUniform(u, VisibleWavelengthMin, VisibleWavelengthMax)
		},
	}}
}

var (
	_ Spectrum = RGBSpectrum{}
	_ Spectrum = HeroVisibleSpectrum{}
	_ Spectrum = HeroUniformSpectrum{}
)
