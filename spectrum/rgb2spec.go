package spectrum

import "math"

// rgb2SpectrumResolution is the resolution of the Jakob-Hanika table
// this scheme is modeled on: a resolution^3 grid of precomputed sigmoid
// coefficients indexed by a remapped RGB cube. Here the table is not
// materialized: DecodeAlbedo and DecodeUnbound fit the coefficients on
// demand (see fitSigmoid), which produces the same shape of curve
// without needing resolution^3 entries on disk. Nothing in the module
// reads the constant.
const rgb2SpectrumResolution = 64

// fitWavelengths are the stratified sample points the Gauss-Newton fit
// evaluates residuals at, standing in for a continuous integral against
// the CIE curves.
var fitWavelengths = stratifiedWavelengths(36)

func stratifiedWavelengths(n int) []float64 {
	out := make([]float64, n)
	step := (VisibleWavelengthMax - VisibleWavelengthMin) / float64(n)
	for i := range out {
		out[i] = VisibleWavelengthMin + step*(float64(i)+0.5)
	}
	return out
}

// RGBToXYZ converts a linear sRGB triple to CIE XYZ (D65 white point).
func RGBToXYZ(rgb [3]float64) [3]float64 {
	r, g, b := rgb[0], rgb[1], rgb[2]
	return [3]float64{
		0.4124564*r + 0.3575761*g + 0.1804375*b,
		0.2126729*r + 0.7151522*g + 0.0721750*b,
		0.0193339*r + 0.1191920*g + 0.9503041*b,
	}
}

// XYZToRGB converts CIE XYZ (D65 white point) to linear sRGB.
func XYZToRGB(xyz [3]float64) [3]float64 {
	x, y, z := xyz[0], xyz[1], xyz[2]
	return [3]float64{
		3.2404542*x - 1.5371385*y - 0.4985314*z,
		-0.9692660*x + 1.8760108*y + 0.0415560*z,
		0.0556434*x - 0.2040259*y + 1.0572252*z,
	}
}

// reflectanceToRGB integrates a reflectance curve against the CIE
// curves under an equal-energy illuminant, approximating the integral
// with the stratified fitWavelengths samples, and returns the result
// re-expressed as linear sRGB.
func reflectanceToRGB(p RGBSigmoidPolynomial) [3]float64 {
	var x, y, z float64
	for _, lambda := range fitWavelengths {
		r := p.At(lambda)
		x += r * cieXSpectrum.At(lambda)
		y += r * cieYSpectrum.At(lambda)
		z += r * cieZSpectrum.At(lambda)
	}
	norm := 1.0 / cieYIntegralOverSamples()
	return XYZToRGB([3]float64{x * norm, y * norm, z * norm})
}

func cieYIntegralOverSamples() float64 {
	sum := 0.0
	for _, lambda := range fitWavelengths {
		sum += cieYSpectrum.At(lambda)
	}
	return sum
}

// fitSigmoid finds (c0, c1, c2) such that reflectanceToRGB of the
// resulting curve is close to target, via damped Gauss-Newton
// iteration starting from a flat curve (c0=c1=0, c2 chosen so the
// sigmoid's plateau matches the target's luminance).
func fitSigmoid(target [3]float64) RGBSigmoidPolynomial {
	lum := (target[0] + target[1] + target[2]) / 3
	c := [3]float64{0, 0, initialC2(lum)}

	const iterations = 20
	const eps = 1e-3
	const damping = 0.7
	// The coefficients multiply lambda^2, lambda and 1, so each gets a
	// finite-difference step scaled to a typical wavelength.
	const lambdaRef = 600.0
	stepScale := [3]float64{1 / (lambdaRef * lambdaRef), 1 / lambdaRef, 1}

	residual := func(c [3]float64) [3]float64 {
		p := RGBSigmoidPolynomial{C0: c[0], C1: c[1], C2: c[2]}
		rgb := reflectanceToRGB(p)
		return [3]float64{rgb[0] - target[0], rgb[1] - target[1], rgb[2] - target[2]}
	}

	for iter := 0; iter < iterations; iter++ {
		r0 := residual(c)
		if vecNorm(r0) < 1e-5 {
			break
		}

		var jac [3][3]float64
		for j := 0; j < 3; j++ {
			cp := c
			h := eps * stepScale[j]
			cp[j] += h
			rp := residual(cp)
			for i := 0; i < 3; i++ {
				jac[i][j] = (rp[i] - r0[i]) / h
			}
		}

		delta, ok := solve3x3(jac, r0)
		if !ok {
			break
		}
		for i := range c {
			c[i] -= damping * delta[i]
		}
	}

	return RGBSigmoidPolynomial{C0: c[0], C1: c[1], C2: c[2]}
}

// initialC2 picks a starting plateau so the sigmoid's flat value is
// close to the target luminance before Gauss-Newton refines the curve
// shape: s(x) = lum solved for x.
func initialC2(lum float64) float64 {
	lum = math.Max(1e-4, math.Min(1-1e-4, lum))
	u := 2*lum - 1
	return u / math.Sqrt(1-u*u)
}

func vecNorm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// solve3x3 solves A*x = b via Gaussian elimination with partial
// pivoting. Returns ok=false if A is (numerically) singular.
func solve3x3(a [3][3]float64, b [3]float64) ([3]float64, bool) {
	const n = 3
	var m [n][n + 1]float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m[i][j] = a[i][j]
		}
		m[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return [3]float64{}, false
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}

	var x [3]float64
	for i := 0; i < n; i++ {
		x[i] = m[i][n] / m[i][i]
	}
	return x, true
}

// DecodeAlbedo fits an RGBSigmoidPolynomial whose integrated
// reflectance reproduces rgb (clamped to [0, 1] per channel, as
// albedos must be).
func DecodeAlbedo(rgb [3]float64) RGBSigmoidPolynomial {
	clamped := [3]float64{
		clamp01(rgb[0]), clamp01(rgb[1]), clamp01(rgb[2]),
	}
	return fitSigmoid(clamped)
}

// DecodeUnbound fits an RGBSigmoidPolynomial and a separate scale
// factor for RGB values that may exceed 1 (illuminant and unbound
// emission colors): the curve is fit against rgb divided by twice its
// maximum channel (so the largest normalized channel is 0.5), and scale
// recovers the original magnitude.
func DecodeUnbound(rgb [3]float64) (RGBSigmoidPolynomial, float64) {
	m := math.Max(rgb[0], math.Max(rgb[1], rgb[2]))
	if m <= 0 {
		return RGBSigmoidPolynomial{}, 0
	}
	scale := 2 * m
	normalized := [3]float64{rgb[0] / scale, rgb[1] / scale, rgb[2] / scale}
	return fitSigmoid(normalized), scale
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
