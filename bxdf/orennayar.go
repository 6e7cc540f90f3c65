package bxdf

import (
	"math"

	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

// OrenNayar is the rough-diffuse microfacet approximation surfaces.matte
// builds on top of (via MatteSurface -> OrenNayar in the original);
// sigma is the facet-slope standard deviation, in degrees, matching
// matte.cpp's clamp(sigma_texture, 0, 90).
type OrenNayar struct {
	R     spectrum.SampledSpectrum
	Sigma float64 // degrees
	a, b  float64
}

// NewOrenNayar precomputes the A/B coefficients from sigma (degrees),
// matching util/scattering.h's OrenNayar constructor.
func NewOrenNayar(r spectrum.SampledSpectrum, sigmaDegrees float64) OrenNayar {
	sigma := sigmaDegrees * math.Pi / 180
	sigma2 := sigma * sigma
	return OrenNayar{
		R:     r,
		Sigma: sigmaDegrees,
		a:     1 - sigma2/(2*(sigma2+0.33)),
		b:     0.45 * sigma2 / (sigma2 + 0.09),
	}
}

func sinTheta(w shading.Vec3) float64 {
	return math.Sqrt(math.Max(0, 1-shading.Cos2Theta(w)))
}

func cosPhiSinPhi(w shading.Vec3) (cosPhi, sinPhi float64) {
	st := sinTheta(w)
	if st == 0 {
		return 1, 0
	}
	return clampFloat(w.X/st, -1, 1), clampFloat(w.Y/st, -1, 1)
}

func (o OrenNayar) Evaluate(wo, wi shading.Vec3) spectrum.SampledSpectrum {
	if !shading.SameHemisphere(wo, wi) {
		return spectrum.SampledSpectrum{Dim: o.R.Dim}
	}
	sinThetaI := sinTheta(wi)
	sinThetaO := sinTheta(wo)

	maxCos := 0.0
	if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
		cosPhiI, sinPhiI := cosPhiSinPhi(wi)
		cosPhiO, sinPhiO := cosPhiSinPhi(wo)
		dCos := cosPhiI*cosPhiO + sinPhiI*sinPhiO
		maxCos = math.Max(0, dCos)
	}

	var sinAlpha, tanBeta float64
	if shading.AbsCosTheta(wi) > shading.AbsCosTheta(wo) {
		sinAlpha, tanBeta = sinThetaO, sinThetaI/shading.AbsCosTheta(wi)
	} else {
		sinAlpha, tanBeta = sinThetaI, sinThetaO/shading.AbsCosTheta(wo)
	}

	factor := (o.a + o.b*maxCos*sinAlpha*tanBeta) / math.Pi
	return o.R.Scale(factor)
}

func (o OrenNayar) Sample(wo shading.Vec3, u [2]float64) (shading.Vec3, spectrum.SampledSpectrum, float64, bool) {
	wi := cosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	return wi, o.Evaluate(wo, wi), o.PDF(wo, wi), true
}

func (o OrenNayar) PDF(wo, wi shading.Vec3) float64 {
	if !shading.SameHemisphere(wo, wi) {
		return 0
	}
	return cosineHemispherePDF(wi)
}

var _ BxDF = OrenNayar{}
