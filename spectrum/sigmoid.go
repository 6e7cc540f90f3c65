package spectrum

import "math"

// RGBSigmoidPolynomial is a smooth, everywhere-positive reflectance
// curve parameterized by three coefficients of a quadratic in
// wavelength, passed through a logistic-like squashing function so the
// result always lies in [0, 1]:
//
//	f(lambda) = s(c0*lambda^2 + c1*lambda + c2)
//	s(x)      = 0.5 + 0.5*x/sqrt(1+x^2)
//
// This is the Jakob-Hanika spectral uplift curve shape; DecodeAlbedo and
// DecodeUnbound fit c0, c1, c2 for a given target RGB.
type RGBSigmoidPolynomial struct {
	C0, C1, C2 float64
}

func sigmoidS(x float64) float64 {
	if math.IsInf(x, 0) {
		if x > 0 {
			return 1
		}
		return 0
	}
	return 0.5 + 0.5*x/math.Sqrt(1+x*x)
}

// At evaluates the curve at a single wavelength, in nanometers.
func (p RGBSigmoidPolynomial) At(lambda float64) float64 {
	return sigmoidS((p.C0*lambda+p.C1)*lambda + p.C2)
}

// Eval4 evaluates the curve at the four wavelengths of a
// SampledWavelengths, returning one value per channel.
func (p RGBSigmoidPolynomial) Eval4(swl SampledWavelengths) [SampleCount]float64 {
	var out [SampleCount]float64
	for i, lambda := range swl.Lambda {
		out[i] = p.At(lambda)
	}
	return out
}

// Maximum returns the curve's peak value over the visible range,
// checking both wavelength edges and the quadratic's vertex.
func (p RGBSigmoidPolynomial) Maximum() float64 {
	edge := math.Max(p.At(VisibleWavelengthMin), p.At(VisibleWavelengthMax))
	if p.C0 == 0 {
		return edge
	}
	vertex := -p.C1 / (2 * p.C0)
	vertex = math.Max(VisibleWavelengthMin, math.Min(VisibleWavelengthMax, vertex))
	return math.Max(edge, p.At(vertex))
}
