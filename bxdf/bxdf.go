package bxdf

import (
	"math"

	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

// BxDF is a single scattering lobe in local (shading-frame) space: wo
// and wi both point away from the surface, with cosTheta read from
// their z component.
type BxDF interface {
	// Evaluate returns f(wo, wi), the differential reflectance.
	Evaluate(wo, wi shading.Vec3) spectrum.SampledSpectrum

	// Sample draws wi from a distribution correlated with f, returning
	// the sampled direction, f(wo,wi), and the PDF the direction was
	// drawn with. ok is false only for degenerate inputs (e.g. wo
	// grazing the horizon) where no valid wi exists.
	Sample(wo shading.Vec3, u [2]float64) (wi shading.Vec3, f spectrum.SampledSpectrum, pdf float64, ok bool)

	// PDF returns the density Sample would have drawn wi with, without
	// redrawing it — needed for MIS weight computation against light
	// sampling.
	PDF(wo, wi shading.Vec3) float64
}

// cosineSampleHemisphere maps u in [0,1)^2 to a cosine-weighted
// direction over the local +z hemisphere via Shirley's concentric disk
// mapping, the sampling strategy LambertianReflection and OrenNayar
// both use.
func cosineSampleHemisphere(u [2]float64) shading.Vec3 {
	dx, dy := concentricSampleDisk(u)
	z := math.Sqrt(math.Max(0, 1-dx*dx-dy*dy))
	return shading.Vec3{X: dx, Y: dy, Z: z}
}

func concentricSampleDisk(u [2]float64) (float64, float64) {
	ox := 2*u[0] - 1
	oy := 2*u[1] - 1
	if ox == 0 && oy == 0 {
		return 0, 0
	}
	var r, theta float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = math.Pi / 4 * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2 - math.Pi/4*(ox/oy)
	}
	return r * math.Cos(theta), r * math.Sin(theta)
}

func cosineHemispherePDF(wi shading.Vec3) float64 {
	return shading.AbsCosTheta(wi) / math.Pi
}

// FresnelDielectric evaluates the unpolarized Fresnel reflectance at a
// dielectric boundary, matching util/scattering.h's
// fresnel_dielectric(cosThetaI, etaI, etaT).
func FresnelDielectric(cosThetaI, etaI, etaT float64) float64 {
	cosThetaI = clampFloat(cosThetaI, -1, 1)
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := etaI * etaI / (etaT * etaT) * sin2ThetaI
	if sin2ThetaT >= 1 {
		return 1 // total internal reflection
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	rParl := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	rPerp := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	return (rParl*rParl + rPerp*rPerp) / 2
}

// FresnelSchlick is the polynomial approximation mirror.cpp's
// SchlickFresnel uses: lerp(R0, 1, (1-cosI)^5).
func FresnelSchlick(r0 [3]float64, cosI float64) [3]float64 {
	m := clampFloat(1-cosI, 0, 1)
	weight := m * m * m * m * m
	var out [3]float64
	for i := range out {
		out[i] = r0[i] + (1-r0[i])*weight
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
