package shading

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool { return math.Abs(a-b) < eps }

func TestFrameWorldToLocalRoundTrips(t *testing.T) {
	n := Vec3{0.267, 0.535, 0.802}.Normalize()
	f := MakeFrame(n)
	v := Vec3{1, 2, 3}.Normalize()
	local := f.WorldToLocal(v)
	back := f.LocalToWorld(local)
	if !almostEqual(back.X, v.X, 1e-9) || !almostEqual(back.Y, v.Y, 1e-9) || !almostEqual(back.Z, v.Z, 1e-9) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", back, v)
	}
}

func TestFrameLocalZIsNormal(t *testing.T) {
	n := Vec3{0, 0, 1}
	f := MakeFrame(n)
	local := f.WorldToLocal(n)
	if !almostEqual(local.Z, 1, 1e-9) || !almostEqual(local.X, 0, 1e-9) || !almostEqual(local.Y, 0, 1e-9) {
		t.Fatalf("expected normal to map to local +z, got %+v", local)
	}
}

func TestReflectPreservesAngleToNormal(t *testing.T) {
	n := Vec3{0, 0, 1}
	wo := Vec3{0.5, 0, 0.866}.Normalize()
	wi := Reflect(wo, n)
	if !almostEqual(wo.Dot(n), wi.Dot(n), 1e-9) {
		t.Fatalf("reflection should preserve cosine to normal: wo.n=%v wi.n=%v", wo.Dot(n), wi.Dot(n))
	}
}

func TestRefractTotalInternalReflection(t *testing.T) {
	n := Vec3{0, 0, 1}
	wi := Vec3{0.99, 0, 0.1411}.Normalize() // grazing incidence
	if _, ok := Refract(wi, n, 1.0/1.5); ok {
		t.Fatalf("expected total internal reflection at grazing angle leaving a denser medium")
	}
}

func TestSpawnRayOffsetsAlongNormalTowardWi(t *testing.T) {
	it := Interaction{
		Position:        Vec3{1, 1, 1},
		GeometricNormal: Vec3{0, 0, 1},
	}
	ray := it.SpawnRay(Vec3{0, 0, 1}, 1e9, 1e-4)
	if ray.Origin.Z <= it.Position.Z {
		t.Fatalf("expected ray origin offset above the surface along +n, got %+v", ray.Origin)
	}

	rayDown := it.SpawnRay(Vec3{0, 0, -1}, 1e9, 1e-4)
	if rayDown.Origin.Z >= it.Position.Z {
		t.Fatalf("expected ray origin offset below the surface when wi points into -n, got %+v", rayDown.Origin)
	}
}
