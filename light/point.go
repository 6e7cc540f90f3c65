package light

import (
	"math"

	"github.com/gogpu/photon/internal/sceneprops"
	"github.com/gogpu/photon/scenedesc"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

// PointLight is grounded on lights/point_light.cpp: a position plus an
// emission color, no sampling dimensions (sampling_dimensions() == 0 —
// a point has no continuous measure to draw u against).
type PointLight struct {
	Position [3]float64
	Emission [3]float64
}

func newPointFromNode(node *scenedesc.Node) (Instance, error) {
	return PointLight{
		Position: sceneprops.RGB(node, "position", [3]float64{0, 0, 0}),
		Emission: sceneprops.RGB(node, "emission", [3]float64{1, 1, 1}),
	}, nil
}

func (p PointLight) Closure(spec spectrum.Spectrum, swl spectrum.SampledWavelengths, _ float64) (Closure, error) {
	l := spec.DecodeIlluminant(swl, p.Emission)
	return pointClosure{position: shading.Vec3{X: p.Position[0], Y: p.Position[1], Z: p.Position[2]}, l: l}, nil
}

type pointClosure struct {
	position shading.Vec3
	l        spectrum.SampledSpectrum
}

// Evaluate always returns a black, zero-pdf result: a delta light has
// no surface a continuation ray could ever intersect, so the
// integrator's "hit light" branch never reaches a point light.
func (c pointClosure) Evaluate(shading.Interaction, shading.Vec3) Evaluation {
	return Evaluation{L: spectrum.SampledSpectrum{Dim: c.l.Dim}, PDF: 0}
}

// Sample returns the inverse-square-falloff radiance toward the point
// light's fixed position. PDF is 1: a delta light carries no
// continuous-measure density, so the integrator must skip MIS
// weighting against the BSDF PDF for this sample (it can never be
// reproduced by BSDF sampling) and use the contribution unweighted.
func (c pointClosure) Sample(pFrom shading.Vec3, _ [3]float64) Sample {
	toLight := c.position.Sub(pFrom)
	distSq := toLight.LengthSquared()
	dist := math.Sqrt(distSq)
	wi := toLight
	if dist > 0 {
		wi = toLight.Scale(1 / dist)
	}
	falloff := 0.0
	if distSq > 0 {
		falloff = 1 / distSq
	}
	return Sample{
		Wi:       wi,
		Distance: dist,
		Point:    c.position,
		Eval:     Evaluation{L: c.l.Scale(falloff), PDF: 1},
	}
}

func (c pointClosure) SamplingDimensions() int { return 0 }

var (
	_ Instance = PointLight{}
	_ Closure  = pointClosure{}
)
