package bxdf

import (
	"math"
	"testing"

	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

func whiteSpectrum() spectrum.SampledSpectrum {
	return spectrum.SampledSpectrum{Dim: 3, Values: [4]float64{1, 1, 1, 0}}
}

func TestLambertianReflectionSampleMatchesEvaluate(t *testing.T) {
	l := LambertianReflection{R: whiteSpectrum()}
	wo := shading.Vec3{X: 0, Y: 0, Z: 1}
	wi, f, pdf, ok := l.Sample(wo, [2]float64{0.3, 0.7})
	if !ok {
		t.Fatalf("expected Sample to succeed")
	}
	wantF := l.Evaluate(wo, wi)
	if f.Values[0] != wantF.Values[0] {
		t.Fatalf("Sample's f should match Evaluate at the sampled direction: got %v want %v", f, wantF)
	}
	if pdf != l.PDF(wo, wi) {
		t.Fatalf("Sample's pdf should match PDF at the sampled direction")
	}
	if pdf <= 0 {
		t.Fatalf("expected positive pdf for a same-hemisphere sample, got %v", pdf)
	}
}

func TestLambertianReflectionZeroAcrossHemisphere(t *testing.T) {
	l := LambertianReflection{R: whiteSpectrum()}
	wo := shading.Vec3{X: 0, Y: 0, Z: 1}
	wi := shading.Vec3{X: 0, Y: 0, Z: -1}
	f := l.Evaluate(wo, wi)
	if !f.IsBlack() {
		t.Fatalf("expected zero reflectance across the hemisphere, got %v", f)
	}
}

func TestOrenNayarReducesTowardLambertianAtZeroSigma(t *testing.T) {
	o := NewOrenNayar(whiteSpectrum(), 0)
	wo := shading.Vec3{X: 0.3, Y: 0, Z: 0.95}.Normalize()
	wi := shading.Vec3{X: -0.2, Y: 0.1, Z: 0.97}.Normalize()
	got := o.Evaluate(wo, wi).Values[0]
	want := 1.0 / math.Pi
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("OrenNayar at sigma=0 should equal Lambertian R/pi = %v, got %v", want, got)
	}
}

func TestFresnelDielectricNormalIncidence(t *testing.T) {
	r := FresnelDielectric(1.0, 1.0, 1.5)
	want := math.Pow((1.5-1.0)/(1.5+1.0), 2)
	if math.Abs(r-want) > 1e-9 {
		t.Fatalf("normal-incidence Fresnel reflectance = %v, want %v", r, want)
	}
}

func TestFresnelDielectricTotalInternalReflection(t *testing.T) {
	r := FresnelDielectric(0.05, 1.5, 1.0)
	if r != 1 {
		t.Fatalf("expected total internal reflection (r=1) at grazing angle exiting a denser medium, got %v", r)
	}
}

func TestSpecularReflectionMirrorsDirection(t *testing.T) {
	s := SpecularReflection{R0: [3]float64{0.9, 0.9, 0.9}}
	wo := shading.Vec3{X: 0.3, Y: 0.1, Z: 0.9}
	wi, _, pdf, ok := s.Sample(wo, [2]float64{0, 0})
	if !ok {
		t.Fatalf("expected Sample to succeed")
	}
	if wi.X != -wo.X || wi.Y != -wo.Y || wi.Z != wo.Z {
		t.Fatalf("expected mirrored direction, got %+v from wo=%+v", wi, wo)
	}
	if pdf != 1 {
		t.Fatalf("expected delta pdf of 1, got %v", pdf)
	}
}
