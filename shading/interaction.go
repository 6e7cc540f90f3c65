package shading

// Ray is a host-side ray: origin, direction, and a maximum parametric
// distance. The megakernel's generated traversal intrinsics consume
// the device-side analogue of this; the Go type exists so closures
// and the light sampler can construct shadow/continuation rays without
// reaching into the backend package.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMax      float64
}

// Interaction is a surface hit record: where the ray landed, the
// geometric and shading normals, the local shading frame built from
// the shading normal, the surface parameterization, and the outgoing
// direction back toward the ray's origin. Grounded on
// original_source/src/base/interaction.h's Interaction class, reduced
// to the fields C6/C7/C8 closures actually consume (no ray
// differentials — texture filtering is out of scope per spec.md §1).
type Interaction struct {
	Position        Vec3
	GeometricNormal Vec3
	Shading         Frame
	UV              [2]float64
	Wo              Vec3
	InstanceID      uint32
	TriangleID      uint32
	TriangleArea    float64
	BackFacing      bool
}

// WoLocal returns the outgoing direction in the local shading frame,
// the space every BxDF in the bxdf package operates in.
func (it Interaction) WoLocal() Vec3 {
	return it.Shading.WorldToLocal(it.Wo)
}

// SameSided reports whether wo and wi lie on the same side of the
// geometric normal, used to reject BTDF contributions leaking through
// a reflection-only lobe and vice versa (interaction.h's same_sided).
func (it Interaction) SameSided(wo, wi Vec3) bool {
	return (wo.Dot(it.GeometricNormal) > 0) == (wi.Dot(it.GeometricNormal) > 0)
}

// SpawnRay builds a continuation or shadow ray leaving the hit point
// toward wi, offset along the geometric normal by offsetFactor to
// avoid immediately re-intersecting the originating surface (the
// "shadow terminator" and self-intersection problem interaction.h's
// p_robust addresses, here parameterized by the instance handle's
// packed IntersectionOffsetFactor rather than a fixed epsilon).
func (it Interaction) SpawnRay(wi Vec3, tMax float64, offsetFactor float64) Ray {
	n := it.GeometricNormal
	if wi.Dot(n) < 0 {
		n = n.Neg()
	}
	origin := it.Position.Add(n.Scale(offsetFactor))
	return Ray{Origin: origin, Direction: wi, TMax: tMax}
}
