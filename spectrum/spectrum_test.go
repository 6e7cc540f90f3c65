package spectrum

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSampleUniformStratified(t *testing.T) {
	swl := SampleUniform(0.3, VisibleWavelengthMin, VisibleWavelengthMax)
	for _, lambda := range swl.Lambda {
		if lambda < VisibleWavelengthMin || lambda > VisibleWavelengthMax {
			t.Errorf("Lambda = %v, want within [%v, %v]", lambda, VisibleWavelengthMin, VisibleWavelengthMax)
		}
	}
	for _, pdf := range swl.PDF {
		want := 1.0 / (VisibleWavelengthMax - VisibleWavelengthMin)
		if !almostEqual(pdf, want, 1e-9) {
			t.Errorf("PDF = %v, want %v", pdf, want)
		}
	}
}

func TestSampleVisibleWithinRange(t *testing.T) {
	swl := SampleVisible(0.5)
	for i, lambda := range swl.Lambda {
		if lambda < VisibleWavelengthMin || lambda > VisibleWavelengthMax {
			t.Errorf("Lambda[%d] = %v, want within visible range", i, lambda)
		}
		if swl.PDF[i] <= 0 {
			t.Errorf("PDF[%d] = %v, want > 0 for an in-range wavelength", i, swl.PDF[i])
		}
	}
}

func TestTerminateSecondaryIdempotent(t *testing.T) {
	swl := SampleVisible(0.25)
	if swl.SecondaryTerminated() {
		t.Fatal("freshly sampled wavelengths should not be terminated")
	}
	swl.TerminateSecondary()
	if !swl.SecondaryTerminated() {
		t.Fatal("TerminateSecondary should mark secondaries terminated")
	}
	if swl.PDF[1] != 0 || swl.PDF[2] != 0 || swl.PDF[3] != 0 {
		t.Errorf("secondary PDFs = %v, want all zero", swl.PDF)
	}
	before := swl
	swl.TerminateSecondary()
	if swl != before {
		t.Error("TerminateSecondary should be a no-op once already terminated")
	}
}

func TestRGBSigmoidPolynomialBounded(t *testing.T) {
	p := RGBSigmoidPolynomial{C0: 0.001, C1: -0.5, C2: 3}
	for lambda := VisibleWavelengthMin; lambda <= VisibleWavelengthMax; lambda += 10 {
		v := p.At(lambda)
		if v < 0 || v > 1 {
			t.Errorf("At(%v) = %v, want within [0, 1]", lambda, v)
		}
	}
}

func TestDecodeAlbedoRoundTrips(t *testing.T) {
	targets := [][3]float64{
		{0.8, 0.2, 0.2},
		{0.1, 0.9, 0.1},
		{0.5, 0.5, 0.5},
	}
	for _, target := range targets {
		rsp := DecodeAlbedo(target)
		got := reflectanceToRGB(rsp)
		for i := 0; i < 3; i++ {
			if !almostEqual(got[i], target[i], 0.05) {
				t.Errorf("DecodeAlbedo(%v) round-trip = %v, want close to %v", target, got, target)
			}
		}
	}
}

func TestDecodeUnboundRecoversScale(t *testing.T) {
	target := [3]float64{2.0, 0.5, 0.5}
	rsp, scale := DecodeUnbound(target)
	if scale <= 0 {
		t.Fatalf("DecodeUnbound() scale = %v, want > 0", scale)
	}
	reconstructed := reflectanceToRGB(rsp)
	for i := range reconstructed {
		reconstructed[i] *= scale
	}
	for i := 0; i < 3; i++ {
		if !almostEqual(reconstructed[i], target[i], 0.1) {
			t.Errorf("DecodeUnbound round-trip = %v, want close to %v", reconstructed, target)
		}
	}
}

func TestRGBSpectrumDecodeClampsAlbedo(t *testing.T) {
	s := RGBSpectrum{}
	swl := s.Sample(0)
	out := s.DecodeAlbedo(swl, [3]float64{1.5, -0.2, 0.5})
	if out.Values[0] != 1 || out.Values[1] != 0 || out.Values[2] != 0.5 {
		t.Errorf("DecodeAlbedo() = %v, want clamped to [0,1]", out.Values)
	}
}

func TestHeroVisibleWhiteRoundTripsApproximately(t *testing.T) {
	s := NewHeroVisibleSpectrum()
	swl := s.Sample(0.37)
	white := [3]float64{1, 1, 1}
	decoded := s.DecodeAlbedo(swl, white)
	rgb := s.SRGB(swl, decoded)
	for i, c := range rgb {
		if c < 0.5 || c > 1.5 {
			t.Errorf("SRGB(white)[%d] = %v, want roughly 1", i, c)
		}
	}
}

func TestHeroUniformDimension(t *testing.T) {
	s := NewHeroUniformSpectrum()
	if s.Dimension() != 4 {
		t.Errorf("Dimension() = %d, want 4", s.Dimension())
	}
}

func TestCIEYPositive(t *testing.T) {
	if CIEY().At(555) <= 0 {
		t.Error("CIEY at 555nm (peak sensitivity) should be positive")
	}
}

func TestDenselySampledSpectrumClampsOutOfRange(t *testing.T) {
	s := CIEY()
	below := s.At(VisibleWavelengthMin - 50)
	atEdge := s.At(VisibleWavelengthMin)
	if below != atEdge {
		t.Errorf("At() below range = %v, want clamp to edge value %v", below, atEdge)
	}
}
