package surface

import (
	"github.com/gogpu/photon/internal/sceneprops"
	"github.com/gogpu/photon/scenedesc"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
	"github.com/gogpu/photon/texture"
)

// MixSurface blends two child surfaces by a ratio texture (a plain
// number is taken as a constant ratio), grounded on surfaces/mix.cpp:
// sampling draws from "a" when u < ratio and from "b" otherwise, then
// evaluates the other child in the sampled direction and blends both
// evaluations by ratio.
type MixSurface struct {
	A, B  Instance
	Ratio texture.Instance
}

func newMixFromNode(node *scenedesc.Node) (Instance, error) {
	aRef, ok := sceneprops.NodeRef(node, "a")
	if !ok {
		return nil, &missingPropertyError{node: node.ImplType(), name: "a"}
	}
	bRef, ok := sceneprops.NodeRef(node, "b")
	if !ok {
		return nil, &missingPropertyError{node: node.ImplType(), name: "b"}
	}
	a, err := Create(aRef.ImplType(), aRef)
	if err != nil {
		return nil, err
	}
	b, err := Create(bRef.ImplType(), bRef)
	if err != nil {
		return nil, err
	}
	m := MixSurface{A: a, B: b}
	if ratioRef, ok := sceneprops.NodeRef(node, "ratio"); ok {
		ratio, err := texture.Create(ratioRef.ImplType(), ratioRef)
		if err != nil {
			return nil, err
		}
		m.Ratio = ratio
	} else {
		r := sceneprops.Float(node, "ratio", 0.5)
		m.Ratio = texture.NewConstantTexture([4]float64{r, r, r, 1}, 1)
	}
	return m, nil
}

type missingPropertyError struct {
	node string
	name string
}

func (e *missingPropertyError) Error() string {
	return "surface " + e.node + ": missing required property " + e.name
}

func (m MixSurface) Closure(it shading.Interaction, spec spectrum.Spectrum, swl spectrum.SampledWavelengths, time float64) (Closure, error) {
	closureA, err := m.A.Closure(it, spec, swl, time)
	if err != nil {
		return nil, err
	}
	closureB, err := m.B.Closure(it, spec, swl, time)
	if err != nil {
		return nil, err
	}
	v := m.Ratio.Evaluate(it, swl, time)
	return mixClosure{a: closureA, b: closureB, ratio: v[0]}, nil
}

type mixClosure struct {
	a, b  Closure
	ratio float64
}

func lerpEvaluation(ratio float64, a, b Evaluation) Evaluation {
	return Evaluation{
		F:         a.F.Scale(ratio).Add(b.F.Scale(1 - ratio)),
		PDF:       ratio*a.PDF + (1-ratio)*b.PDF,
		Normal:    a.Normal,
		Roughness: [2]float64{ratio*a.Roughness[0] + (1-ratio)*b.Roughness[0], ratio*a.Roughness[1] + (1-ratio)*b.Roughness[1]},
		Eta:       a.Eta.Scale(ratio).Add(b.Eta.Scale(1 - ratio)),
	}
}

func (c mixClosure) Evaluate(wi shading.Vec3) Evaluation {
	return lerpEvaluation(c.ratio, c.a.Evaluate(wi), c.b.Evaluate(wi))
}

func (c mixClosure) Sample(uLobe float64, u [2]float64) Sample {
	if uLobe < c.ratio {
		remapped := uLobe / c.ratio
		sampleA := c.a.Sample(remapped, u)
		evalB := c.b.Evaluate(sampleA.Wi)
		return Sample{
			Wi:    sampleA.Wi,
			Eval:  lerpEvaluation(c.ratio, sampleA.Eval, evalB),
			Event: sampleA.Event,
		}
	}
	remapped := (uLobe - c.ratio) / (1 - c.ratio)
	sampleB := c.b.Sample(remapped, u)
	evalA := c.a.Evaluate(sampleB.Wi)
	return Sample{
		Wi:    sampleB.Wi,
		Eval:  lerpEvaluation(c.ratio, evalA, sampleB.Eval),
		Event: sampleB.Event,
	}
}

var (
	_ Instance = MixSurface{}
	_ Closure  = mixClosure{}
)
