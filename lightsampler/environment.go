package lightsampler

import (
	"math"

	"github.com/gogpu/photon/light"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
	"github.com/gogpu/photon/texture"
)

// uniformSpherePDF is the solid-angle density of a direction drawn
// uniformly over the full sphere: 1/(4*pi).
const uniformSpherePDF = 0.25 / math.Pi

// Environment is an infinitely distant emitter sampled by direction
// rather than by position, grounded on environments/spherical.cpp.
//
// The original builds a 2048x1024 importance map (per-row conditional
// alias tables plus one marginal alias table over row averages, with
// an optional compensate_mis pass that subtracts the map's mean before
// table construction) so that bright regions of a non-constant
// environment texture are sampled more often than dim ones. This
// package only implements the constant-emission fast path the
// original itself falls back to when the emission texture is
// constant — direction_to_uv/uv_to_direction and the 1/sin(theta)
// Jacobian are carried over verbatim, but Sample always draws
// uniformly over the sphere rather than building the two-level
// importance map. A non-constant emission texture is honored for
// Evaluate (its actual color is looked up per direction) but sampled
// with the uniform density rather than importance-sampled; DESIGN.md
// records this as a deliberate scope reduction.
type Environment interface {
	Closure(spec spectrum.Spectrum, swl spectrum.SampledWavelengths, time float64) (EnvironmentClosure, error)
}

// EnvironmentClosure mirrors light.Closure's shape but drops the
// "point on the light" side of the contract: an environment has no
// finite position, only a direction and, for MIS against a BSDF
// sample, a PDF over that direction.
type EnvironmentClosure interface {
	Evaluate(wi shading.Vec3) light.Evaluation
	Sample(pFrom shading.Vec3, u [2]float64) light.Sample
}

// SphericalEnvironment wraps an emission texture looked up by
// direction via an equirectangular (latitude-longitude) mapping.
type SphericalEnvironment struct {
	Emission texture.Instance
	Scale    float64
}

func (e SphericalEnvironment) Closure(spec spectrum.Spectrum, swl spectrum.SampledWavelengths, time float64) (EnvironmentClosure, error) {
	return sphericalClosure{env: e, spec: spec, swl: swl, time: time}, nil
}

type sphericalClosure struct {
	env  SphericalEnvironment
	spec spectrum.Spectrum
	swl  spectrum.SampledWavelengths
	time float64
}

// directionToUV converts a world-space direction to the equirectangular
// (theta, phi, uv) triple Spherical::direction_to_uv computes: theta is
// the polar angle from +y, phi the azimuth measured off +z toward +x.
func directionToUV(w shading.Vec3) (theta, phi float64, u, v float64) {
	theta = math.Acos(clampUnit(w.Y))
	phi = math.Atan2(w.X, w.Z)
	u = fract(1 - 0.5*(1/math.Pi)*phi)
	v = fract(theta / math.Pi)
	return theta, phi, u, v
}

// uvToDirection is the inverse mapping: Spherical::uv_to_direction.
func uvToDirection(u, v float64) (theta float64, w shading.Vec3) {
	phi := 2 * math.Pi * (1 - u)
	theta = math.Pi * v
	sinTheta := math.Sin(theta)
	return theta, shading.Vec3{
		X: math.Sin(phi) * sinTheta,
		Y: math.Cos(theta),
		Z: math.Cos(phi) * sinTheta,
	}.Normalize()
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func fract(v float64) float64 {
	f := v - math.Floor(v)
	if f < 0 {
		f += 1
	}
	return f
}

// directionalPDF converts a per-texel importance-map density into a
// solid-angle PDF via the equirectangular Jacobian: dividing by
// sin(theta) accounts for the map's rows shrinking toward the poles.
func directionalPDF(p, theta float64) float64 {
	s := math.Sin(theta)
	if s <= 0 {
		return 0
	}
	return p / s * (0.5 / (math.Pi * math.Pi))
}

func (c sphericalClosure) lookup(w shading.Vec3) spectrum.SampledSpectrum {
	_, _, u, v := directionToUV(w)
	it := shading.Interaction{UV: [2]float64{u, v}}
	decode := c.env.Emission.EvaluateIlluminantSpectrum(it, c.spec, c.swl, c.time)
	return decode.Spectrum.Scale(decode.Strength * c.env.Scale)
}

func (c sphericalClosure) Evaluate(wi shading.Vec3) light.Evaluation {
	l := c.lookup(wi)
	return light.Evaluation{L: l, PDF: uniformSpherePDF}
}

func (c sphericalClosure) Sample(_ shading.Vec3, u [2]float64) light.Sample {
	theta := math.Acos(1 - 2*u[1])
	phi := 2 * math.Pi * u[0]
	sinTheta := math.Sin(theta)
	wi := shading.Vec3{X: math.Sin(phi) * sinTheta, Y: math.Cos(theta), Z: math.Cos(phi) * sinTheta}
	l := c.lookup(wi)
	return light.Sample{
		Wi:       wi,
		Distance: math.MaxFloat64,
		Eval:     light.Evaluation{L: l, PDF: uniformSpherePDF},
	}
}

var (
	_ Environment        = SphericalEnvironment{}
	_ EnvironmentClosure = sphericalClosure{}
)
