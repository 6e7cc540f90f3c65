package film

import (
	"math"

	"github.com/gogpu/photon/sampler"
	"github.com/gogpu/photon/shading"
)

// PinholeCamera is a distortion-free perspective camera, grounded on
// cameras/pinhole_camera.cpp: a position/target/up triple builds a
// look-at basis (Front, Left, Up), and a vertical field of view plus
// the film's aspect ratio size a sensor plane one NearPlane unit in
// front of the eye. GenerateRay maps a jittered pixel coordinate onto
// that plane and returns the ray toward it.
type PinholeCamera struct {
	Position   shading.Vec3
	Front      shading.Vec3
	Left       shading.Vec3
	Up         shading.Vec3
	SensorSize [2]float64
	NearPlane  float64
	Resolution [2]int
}

// NewPinholeCamera builds a PinholeCamera looking from position toward
// target, with verticalFOVDegrees spanning the film's full height.
// nearPlane defaults to 0.1 when zero or negative, matching
// pinhole_camera.cpp's parse_float_or_default(0.1f).
func NewPinholeCamera(position, target, up shading.Vec3, verticalFOVDegrees float64, resolution [2]int, nearPlane float64) PinholeCamera {
	if nearPlane <= 0 {
		nearPlane = 0.1
	}
	front := target.Sub(position).Normalize()
	left := up.Cross(front).Normalize()
	trueUp := front.Cross(left).Normalize()

	fov := verticalFOVDegrees * math.Pi / 180
	sensorHeight := 2 * nearPlane * math.Tan(0.5*fov)
	aspect := float64(resolution[0]) / float64(resolution[1])
	sensorWidth := sensorHeight * aspect

	return PinholeCamera{
		Position:   position,
		Front:      front,
		Left:       left,
		Up:         trueUp,
		SensorSize: [2]float64{sensorWidth, sensorHeight},
		NearPlane:  nearPlane,
		Resolution: resolution,
	}
}

// GenerateRay builds the ray through pixel's jittered center, drawn
// from s's pixel-filter sample. weight is always 1: a pinhole lens has
// no aperture to weight by importance.
func (c PinholeCamera) GenerateRay(s sampler.Sampler, pixel [2]int, _ float64) (shading.Ray, float64) {
	jitter := s.GeneratePixel2D()
	px := float64(pixel[0]) + jitter[0]
	py := float64(pixel[1]) + jitter[1]

	ndcX := px/float64(c.Resolution[0])*2 - 1
	ndcY := 1 - py/float64(c.Resolution[1])*2

	offset := c.Left.Scale(ndcX * 0.5 * c.SensorSize[0]).Add(c.Up.Scale(ndcY * 0.5 * c.SensorSize[1]))
	pointOnPlane := c.Position.Add(c.Front.Scale(c.NearPlane)).Add(offset)
	direction := pointOnPlane.Sub(c.Position).Normalize()

	return shading.Ray{Origin: c.Position, Direction: direction, TMax: math.Inf(1)}, 1
}
