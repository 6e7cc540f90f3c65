package film

import (
	"math"
	"testing"

	"github.com/gogpu/photon/sampler"
	"github.com/gogpu/photon/shading"
)

func TestPinholeCameraCentersStraightAheadAtImageCenter(t *testing.T) {
	cam := NewPinholeCamera(
		shading.Vec3{X: 0, Y: 0, Z: 0},
		shading.Vec3{X: 0, Y: 0, Z: 1},
		shading.Vec3{X: 0, Y: 1, Z: 0},
		60, [2]int{100, 100}, 0,
	)
	s := sampler.NewPCG()
	s.Reset([2]int{100, 100}, 1, 1)
	s.Start([2]int{50, 50}, 0)

	ray, weight := cam.GenerateRay(s, [2]int{50, 50}, 0)
	if weight != 1 {
		t.Fatalf("weight = %v, want 1", weight)
	}
	if math.Abs(ray.Direction.X) > 0.1 || math.Abs(ray.Direction.Y) > 0.1 {
		t.Fatalf("center-pixel ray direction = %+v, want roughly (0,0,1)", ray.Direction)
	}
	if ray.Direction.Z <= 0 {
		t.Fatalf("center-pixel ray direction.Z = %v, want > 0", ray.Direction.Z)
	}
}

func TestPinholeCameraNearPlaneDefaultsWhenZero(t *testing.T) {
	cam := NewPinholeCamera(shading.Vec3{}, shading.Vec3{Z: 1}, shading.Vec3{Y: 1}, 35, [2]int{16, 9}, 0)
	if cam.NearPlane != 0.1 {
		t.Fatalf("NearPlane = %v, want default 0.1", cam.NearPlane)
	}
}

func TestPinholeCameraSensorAspectMatchesResolution(t *testing.T) {
	cam := NewPinholeCamera(shading.Vec3{}, shading.Vec3{Z: 1}, shading.Vec3{Y: 1}, 35, [2]int{1920, 1080}, 0.1)
	gotAspect := cam.SensorSize[0] / cam.SensorSize[1]
	wantAspect := 1920.0 / 1080.0
	if math.Abs(gotAspect-wantAspect) > 1e-9 {
		t.Fatalf("sensor aspect = %v, want %v", gotAspect, wantAspect)
	}
}
