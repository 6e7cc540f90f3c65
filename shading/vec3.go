package shading

import "math"

// Vec3 is a host-side 3-vector. Closures run in local (shading-frame)
// or world space depending on the caller; callers are responsible for
// transforming through Frame before mixing the two.
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Add(b Vec3) Vec3   { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3   { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(k float64) Vec3 { return Vec3{a.X * k, a.Y * k, a.Z * k} }
func (a Vec3) Neg() Vec3         { return Vec3{-a.X, -a.Y, -a.Z} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) LengthSquared() float64 { return a.Dot(a) }
func (a Vec3) Length() float64        { return math.Sqrt(a.LengthSquared()) }

// Normalize returns a returned unchanged if it is (numerically) the
// zero vector, rather than producing NaNs.
func (a Vec3) Normalize() Vec3 {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// CosTheta, AbsCosTheta, and Cos2Theta read the z component of a
// local-frame direction, the convention scattering.h's BxDFs use: the
// shading normal is always local +z.
func CosTheta(w Vec3) float64    { return w.Z }
func AbsCosTheta(w Vec3) float64 { return math.Abs(w.Z) }
func Cos2Theta(w Vec3) float64   { return w.Z * w.Z }

func SameHemisphere(a, b Vec3) bool { return a.Z*b.Z > 0 }

// Reflect mirrors wo about n, matching util/scattering.h's reflect(wo, n).
func Reflect(wo, n Vec3) Vec3 {
	return n.Scale(2 * wo.Dot(n)).Sub(wo)
}

// FaceForward flips v to lie in the same hemisphere as n.
func FaceForward(v, n Vec3) Vec3 {
	if v.Dot(n) < 0 {
		return v.Neg()
	}
	return v
}

// Refract implements util/scattering.h's refract(wi, n, eta, &wt):
// wi and n point away from the surface (wi toward the incident
// medium); eta is the relative index etaTransmitted/etaIncident, so
// eta < 1 means leaving a denser medium. Reports false on total
// internal reflection.
func Refract(wi, n Vec3, eta float64) (Vec3, bool) {
	cosThetaI := n.Dot(wi)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt := wi.Neg().Scale(1 / eta).Add(n.Scale(cosThetaI/eta - cosThetaT))
	return wt, true
}
