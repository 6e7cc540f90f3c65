package spectrum

import "math"

// DenselySampledSpectrum stores a spectral function at 1nm resolution
// across [VisibleWavelengthMin, VisibleWavelengthMax] and evaluates it
// at arbitrary (possibly out-of-range) wavelengths by linear
// interpolation, clamping to the nearest edge outside the range.
type DenselySampledSpectrum struct {
	values []float64 // indexed by nm - VisibleWavelengthMin
}

func newDenselySampledSpectrum(f func(lambda float64) float64) *DenselySampledSpectrum {
	n := int(VisibleWavelengthMax-VisibleWavelengthMin) + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = f(VisibleWavelengthMin + float64(i))
	}
	return &DenselySampledSpectrum{values: values}
}

// At evaluates the spectrum at a single wavelength, in nanometers.
func (s *DenselySampledSpectrum) At(lambda float64) float64 {
	offset := lambda - VisibleWavelengthMin
	if offset <= 0 {
		return s.values[0]
	}
	last := len(s.values) - 1
	if offset >= float64(last) {
		return s.values[last]
	}
	lo := int(offset)
	frac := offset - float64(lo)
	return s.values[lo]*(1-frac) + s.values[lo+1]*frac
}

// Sample evaluates the spectrum at all four wavelengths carried by
// swl, returning one value per channel.
func (s *DenselySampledSpectrum) Sample(swl SampledWavelengths) [SampleCount]float64 {
	var out [SampleCount]float64
	for i, lambda := range swl.Lambda {
		out[i] = s.At(lambda)
	}
	return out
}

// gaussianLobe evaluates one asymmetric Gaussian lobe: invSigma1 below
// the mean, invSigma2 above it (both are already inverse scales, so
// the lobe is alpha*exp(-0.5*((x-mu)*invSigma)^2)). This is the
// multi-lobe analytic fit form used to approximate the CIE 1931 color
// matching functions without carrying their measured tables verbatim
// (Wyman, Sloan & Shirley, "Simple Analytic Approximations to the CIE
// XYZ Color Matching Functions", JCGT 2013).
func gaussianLobe(x, alpha, mu, invSigma1, invSigma2 float64) float64 {
	invSigma := invSigma1
	if x > mu {
		invSigma = invSigma2
	}
	t := (x - mu) * invSigma
	return alpha * math.Exp(-0.5*t*t)
}

func cieXFit(lambdaNM float64) float64 {
	return gaussianLobe(lambdaNM, 0.362, 442.0, 0.0624, 0.0374) +
		gaussianLobe(lambdaNM, 1.056, 599.8, 0.0264, 0.0323) +
		gaussianLobe(lambdaNM, -0.065, 501.1, 0.0490, 0.0382)
}

func cieYFit(lambdaNM float64) float64 {
	return gaussianLobe(lambdaNM, 0.821, 568.8, 0.0213, 0.0247) +
		gaussianLobe(lambdaNM, 0.286, 530.9, 0.0613, 0.0322)
}

func cieZFit(lambdaNM float64) float64 {
	return gaussianLobe(lambdaNM, 1.217, 437.0, 0.0845, 0.0278) +
		gaussianLobe(lambdaNM, 0.681, 459.0, 0.0385, 0.0725)
}

// planckianD65 approximates the CIE D65 illuminant's relative spectral
// power distribution with a 6504K Planckian radiator, normalized to
// 100 at 560nm. It is a coarse stand-in for the measured D65 table:
// good enough to tint illuminant spectra plausibly without embedding
// the CIE daylight basis functions.
func planckianD65(lambdaNM float64) float64 {
	const h = 6.62607015e-34
	const c = 2.99792458e8
	const kB = 1.380649e-23
	const temperature = 6504.0

	lambdaM := lambdaNM * 1e-9
	num := 2 * h * c * c
	denom := math.Pow(lambdaM, 5) * (math.Exp((h*c)/(lambdaM*kB*temperature)) - 1)
	radiance := num / denom

	const refLambdaM = 560e-9
	refDenom := math.Pow(refLambdaM, 5) * (math.Exp((h*c)/(refLambdaM*kB*temperature)) - 1)
	refRadiance := num / refDenom

	return 100.0 * radiance / refRadiance
}

var (
	cieXSpectrum   = newDenselySampledSpectrum(cieXFit)
	cieYSpectrum   = newDenselySampledSpectrum(cieYFit)
	cieZSpectrum   = newDenselySampledSpectrum(cieZFit)
	cieD65Spectrum = newDenselySampledSpectrum(planckianD65)
	cieYIntegral   = integrateCIEY()
)

func integrateCIEY() float64 {
	sum := 0.0
	for _, v := range cieYSpectrum.values {
		sum += v
	}
	return sum
}

// CIEX returns the standard observer's densely sampled x-bar curve.
func CIEX() *DenselySampledSpectrum { return cieXSpectrum }

// CIEY returns the standard observer's densely sampled y-bar curve.
func CIEY() *DenselySampledSpectrum { return cieYSpectrum }

// CIEZ returns the standard observer's densely sampled z-bar curve.
func CIEZ() *DenselySampledSpectrum { return cieZSpectrum }

// CIEIlluminantD65 returns the (approximate) relative spectral power
// distribution of the CIE D65 standard illuminant.
func CIEIlluminantD65() *DenselySampledSpectrum { return cieD65Spectrum }

// CIEYIntegral returns the integral of the y-bar curve over 1nm steps
// across the visible range. The hero-wavelength luminance and XYZ
// reductions divide by it, so a unit spectrum maps to unit luminance.
func CIEYIntegral() float64 { return cieYIntegral }
