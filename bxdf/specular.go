package bxdf

import (
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

// SpecularReflection is a Fresnel-weighted perfect mirror: a delta
// distribution at the mirrored direction. Grounded on mirror.cpp's
// SchlickFresnel term taken to its smooth (zero-roughness) limit — the
// original drives a full Trowbridge-Reitz microfacet distribution for
// the rough case, which this package does not implement (see
// DESIGN.md's C6 entry for the scope decision).
type SpecularReflection struct {
	R0 [3]float64 // Schlick Fresnel reflectance at normal incidence
}

// IsSpecular reports that this lobe is a delta distribution: Evaluate
// and PDF are always zero for it since no finite-measure direction
// equals the mirrored one exactly. Callers (surface closures, the
// integrator's MIS weighting) must check this before folding in
// light-sampling contributions, matching how a delta BSDF is handled
// in every physically based path tracer.
func (s SpecularReflection) IsSpecular() bool { return true }

func (s SpecularReflection) Evaluate(wo, wi shading.Vec3) spectrum.SampledSpectrum {
	return spectrum.SampledSpectrum{Dim: 3}
}

func (s SpecularReflection) PDF(wo, wi shading.Vec3) float64 { return 0 }

func (s SpecularReflection) Sample(wo shading.Vec3, u [2]float64) (shading.Vec3, spectrum.SampledSpectrum, float64, bool) {
	if wo.Z == 0 {
		return shading.Vec3{}, spectrum.SampledSpectrum{Dim: 3}, 0, false
	}
	wi := shading.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
	fr := FresnelSchlick(s.R0, shading.AbsCosTheta(wo))
	cosI := shading.AbsCosTheta(wi)
	if cosI == 0 {
		return shading.Vec3{}, spectrum.SampledSpectrum{Dim: 3}, 0, false
	}
	f := spectrum.SampledSpectrum{Dim: 3, Values: [4]float64{
		fr[0] / cosI, fr[1] / cosI, fr[2] / cosI, 0,
	}}
	return wi, f, 1, true
}

var _ BxDF = SpecularReflection{}
