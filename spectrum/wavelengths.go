package spectrum

import "math"

// VisibleWavelengthMin and VisibleWavelengthMax bound the visible
// spectrum range, in nanometers, that hero-wavelength sampling draws
// from.
const (
	VisibleWavelengthMin = 360.0
	VisibleWavelengthMax = 830.0
)

// SampleCount is the number of co-sampled wavelengths carried by a
// SampledWavelengths value: one primary ("hero") wavelength and three
// secondaries.
const SampleCount = 4

// SampledWavelengths holds four wavelengths sampled together along a
// single path, and the probability density each was sampled with. The
// zero value is not meaningful; construct one with SampleUniform or
// SampleVisible.
type SampledWavelengths struct {
	Lambda [SampleCount]float64
	PDF    [SampleCount]float64
}

// SampleUniform draws four equally spaced, stratified wavelengths
// uniformly over [lambdaMin, lambdaMax] from a single random number u,
// wrapping secondaries that overshoot the range back into it.
func SampleUniform(u, lambdaMin, lambdaMax float64) SampledWavelengths {
	l := lambdaMax - lambdaMin
	delta := l / SampleCount
	primary := lambdaMin + u*(lambdaMax-lambdaMin)

	var swl SampledWavelengths
	swl.Lambda[0] = primary
	for i := 1; i < SampleCount; i++ {
		secondary := primary + delta*float64(i)
		if secondary > lambdaMax {
			secondary -= l
		}
		swl.Lambda[i] = secondary
	}
	for i := range swl.PDF {
		swl.PDF[i] = 1.0 / l
	}
	return swl
}

// SampleVisible draws four stratified wavelengths from the visible
// range using the PBRT-style analytic inverse-CDF importance sampler,
// whose PDF concentrates samples around the eye's peak sensitivity
// near 538nm.
func SampleVisible(u float64) SampledWavelengths {
	var swl SampledWavelengths
	for i := 0; i < SampleCount; i++ {
		offset := float64(i) / SampleCount
		up := fract(u + offset)
		lambda := sampleVisibleWavelength(up)
		swl.Lambda[i] = lambda
		swl.PDF[i] = visibleWavelengthPDF(lambda)
	}
	return swl
}

func sampleVisibleWavelength(u float64) float64 {
	return 538.0 - 138.888889*math.Atanh(0.85691062-1.82750197*u)
}

func visibleWavelengthPDF(lambda float64) float64 {
	if lambda < VisibleWavelengthMin || lambda > VisibleWavelengthMax {
		return 0
	}
	c := math.Cosh(0.0072 * (lambda - 538.0))
	return 0.0039398042 / (c * c)
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}

// SecondaryTerminated reports whether the three secondary wavelengths
// have already been collapsed by TerminateSecondary (or never carried
// independent probability to begin with). PDF[0], the hero wavelength,
// stays nonzero after termination, so only PDF[1:4] are checked.
func (w SampledWavelengths) SecondaryTerminated() bool {
	for _, p := range w.PDF[1:] {
		if p != 0 {
			return false
		}
	}
	return true
}

// TerminateSecondary collapses the three secondary wavelengths,
// quartering the primary's PDF to account for the marginalization. It
// is a no-op if the secondaries are already terminated. Hero-
// wavelength spectral MIS calls this once a path commits to dispersive
// behavior at a single wavelength (e.g. entering a dispersive dielectric).
func (w *SampledWavelengths) TerminateSecondary() {
	if w.SecondaryTerminated() {
		return
	}
	w.PDF[0] *= 1.0 / SampleCount
	w.PDF[1] = 0
	w.PDF[2] = 0
	w.PDF[3] = 0
}
