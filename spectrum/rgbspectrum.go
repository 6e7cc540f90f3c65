package spectrum

// RGBAlbedoSpectrum reconstructs a reflectance curve from RGB,
// evaluated through its RGBSigmoidPolynomial directly (no scale, since
// albedo is bounded to [0, 1]).
type RGBAlbedoSpectrum struct {
	RSP RGBSigmoidPolynomial
}

// Sample evaluates the reconstructed albedo at swl's four wavelengths.
func (s RGBAlbedoSpectrum) Sample(swl SampledWavelengths) [SampleCount]float64 {
	return s.RSP.Eval4(swl)
}

// RGBUnboundSpectrum reconstructs an unbounded positive spectrum (e.g.
// a light's emission color before accounting for the illuminant it
// rides on) from RGB: the curve shape times a scale factor recovered
// from the RGB's magnitude.
type RGBUnboundSpectrum struct {
	RSP   RGBSigmoidPolynomial
	Scale float64
}

// Sample evaluates the reconstructed spectrum at swl's four
// wavelengths.
func (s RGBUnboundSpectrum) Sample(swl SampledWavelengths) [SampleCount]float64 {
	curve := s.RSP.Eval4(swl)
	for i := range curve {
		curve[i] *= s.Scale
	}
	return curve
}

// RGBIlluminantSpectrum reconstructs a light source's spectral power
// distribution from its RGB color: the reflectance-shaped curve
// modulated by scale and by a reference illuminant (typically D65),
// matching the way scene authors specify light colors as RGB while
// the renderer still carries a physically plausible spectral shape.
type RGBIlluminantSpectrum struct {
	RSP        RGBSigmoidPolynomial
	Scale      float64
	Illuminant *DenselySampledSpectrum
}

// NewRGBIlluminantSpectrum fits rgb against the given reference
// illuminant (pass nil for CIEIlluminantD65()).
func NewRGBIlluminantSpectrum(rgb [3]float64, illuminant *DenselySampledSpectrum) RGBIlluminantSpectrum {
	if illuminant == nil {
		illuminant = CIEIlluminantD65()
	}
	rsp, scale := DecodeUnbound(rgb)
	return RGBIlluminantSpectrum{RSP: rsp, Scale: scale, Illuminant: illuminant}
}

// Sample evaluates the reconstructed illuminant spectrum at swl's four
// wavelengths.
func (s RGBIlluminantSpectrum) Sample(swl SampledWavelengths) [SampleCount]float64 {
	curve := s.RSP.Eval4(swl)
	illum := s.Illuminant.Sample(swl)
	for i := range curve {
		curve[i] *= s.Scale * illum[i]
	}
	return curve
}
