package bxdf

import (
	"math"

	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

// LambertianReflection is a perfectly diffuse reflector, grounded on
// util/scattering.h's LambertianReflection: f = R/pi, sampled
// cosine-weighted over the hemisphere on the same side as wo.
type LambertianReflection struct {
	R spectrum.SampledSpectrum
}

func (l LambertianReflection) Evaluate(wo, wi shading.Vec3) spectrum.SampledSpectrum {
	if !shading.SameHemisphere(wo, wi) {
		return spectrum.SampledSpectrum{Dim: l.R.Dim}
	}
	return l.R.Scale(1 / math.Pi)
}

func (l LambertianReflection) Sample(wo shading.Vec3, u [2]float64) (shading.Vec3, spectrum.SampledSpectrum, float64, bool) {
	wi := cosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	return wi, l.Evaluate(wo, wi), l.PDF(wo, wi), true
}

func (l LambertianReflection) PDF(wo, wi shading.Vec3) float64 {
	if !shading.SameHemisphere(wo, wi) {
		return 0
	}
	return cosineHemispherePDF(wi)
}

// LambertianTransmission is a perfectly diffuse transmitter, sampling
// cosine-weighted over the hemisphere opposite wo.
type LambertianTransmission struct {
	T spectrum.SampledSpectrum
}

func (l LambertianTransmission) Evaluate(wo, wi shading.Vec3) spectrum.SampledSpectrum {
	if shading.SameHemisphere(wo, wi) {
		return spectrum.SampledSpectrum{Dim: l.T.Dim}
	}
	return l.T.Scale(1 / math.Pi)
}

func (l LambertianTransmission) Sample(wo shading.Vec3, u [2]float64) (shading.Vec3, spectrum.SampledSpectrum, float64, bool) {
	wi := cosineSampleHemisphere(u)
	if wo.Z > 0 {
		wi.Z = -wi.Z
	}
	return wi, l.Evaluate(wo, wi), l.PDF(wo, wi), true
}

func (l LambertianTransmission) PDF(wo, wi shading.Vec3) float64 {
	if shading.SameHemisphere(wo, wi) {
		return 0
	}
	return cosineHemispherePDF(wi)
}

var (
	_ BxDF = LambertianReflection{}
	_ BxDF = LambertianTransmission{}
)
