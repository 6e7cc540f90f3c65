package lightsampler

import (
	"github.com/gogpu/photon/internal/plugin"
	"github.com/gogpu/photon/internal/sceneprops"
	"github.com/gogpu/photon/light"
	"github.com/gogpu/photon/scenedesc"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

const tag = "LightSampler"

// EnvironmentTag marks a Selection that picked the environment rather
// than an index into the area-light slice, mirroring
// LightSampler::selection_environment in light_sampler.h.
const EnvironmentTag = -1

// Selection is the outcome of choosing which emitter a shadow ray
// should be aimed at: either EnvironmentTag or an index in [0,n), plus
// the discrete probability that choice carried.
type Selection struct {
	Tag  int
	Prob float64
}

// Sampler implements the uniform area-light/environment mixture
// lightsamplers/uniform.cpp describes: a fixed environment_weight
// (clamped to [0.01,0.99] once both an environment and area lights
// exist) decides how often rays are aimed at the environment instead
// of an area light picked uniformly among the rest.
type Sampler struct {
	Lights            []light.Instance
	Env               Environment
	EnvironmentWeight float64 // only meaningful when both Lights and Env are present

	envProb float64
}

// Factory constructs a *Sampler from its scene-graph node. The
// returned sampler carries only the node's own properties
// (EnvironmentWeight) — the pipeline assembly stage is responsible for
// populating Lights/Env from the rest of the scene graph and calling
// Build before first use.
type Factory = plugin.Factory[*Sampler, *scenedesc.Node]

var registry = plugin.NewRegistry[*Sampler, *scenedesc.Node]()

func Register(impl string, factory Factory) { registry.Register(tag, impl, factory) }

func Create(impl string, node *scenedesc.Node) (*Sampler, error) {
	return registry.Create(tag, impl, node)
}

func Names() []string { return registry.Names(tag) }

func init() {
	Register("Uniform", newSamplerFromNode)
}

func newSamplerFromNode(node *scenedesc.Node) (*Sampler, error) {
	s := &Sampler{EnvironmentWeight: sceneprops.Float(node, "environment_weight", 0.5)}
	return s, nil
}

// Build finalizes envProb once the scene's light list and optional
// environment are known; call it once after constructing Sampler (or
// after newSamplerFromNode populates EnvironmentWeight) and before any
// Select/Sample/EvaluateHit/EvaluateMiss call.
func (s *Sampler) Build() {
	switch {
	case s.Env != nil && len(s.Lights) > 0:
		s.envProb = clampFloat(s.EnvironmentWeight, 0.01, 0.99)
	case s.Env != nil:
		s.envProb = 1
	default:
		s.envProb = 0
	}
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

// Select chooses which emitter a shadow ray should be aimed at: with
// probability envProb, the environment; otherwise the remaining [0,1)
// range is partitioned uniformly across the n area lights.
func (s *Sampler) Select(u float64) Selection {
	n := len(s.Lights)
	if s.envProb == 1 {
		return Selection{Tag: EnvironmentTag, Prob: 1}
	}
	if s.envProb == 0 {
		return Selection{Tag: clampIndex(u*float64(n), n), Prob: 1 / float64(n)}
	}
	if u < s.envProb {
		return Selection{Tag: EnvironmentTag, Prob: s.envProb}
	}
	uu := (u - s.envProb) / (1 - s.envProb)
	return Selection{Tag: clampIndex(uu*float64(n), n), Prob: (1 - s.envProb) / float64(n)}
}

func clampIndex(v float64, n int) int {
	i := int(v)
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	return i
}

// Sample draws one shadow-ray candidate: it selects an emitter via
// uSel, then samples a point/direction on it via uLight, scaling the
// returned PDF by the selection probability so the caller can weight
// the contribution directly against the BSDF PDF with the balance
// heuristic.
func (s *Sampler) Sample(pFrom shading.Vec3, uSel float64, uLight [3]float64, spec spectrum.Spectrum, swl spectrum.SampledWavelengths, time float64) (light.Sample, error) {
	sel := s.Select(uSel)
	if sel.Tag == EnvironmentTag {
		closure, err := s.Env.Closure(spec, swl, time)
		if err != nil {
			return light.Sample{}, err
		}
		sample := closure.Sample(pFrom, [2]float64{uLight[0], uLight[1]})
		sample.Eval.PDF *= sel.Prob
		return sample, nil
	}
	inst := s.Lights[sel.Tag]
	closure, err := inst.Closure(spec, swl, time)
	if err != nil {
		return light.Sample{}, err
	}
	sample := closure.Sample(pFrom, uLight)
	sample.Eval.PDF *= sel.Prob
	return sample, nil
}

// EvaluateHit is the "a continuation ray happened to land on an
// emitter" MIS branch: it asks the emitter at the given tag for its
// own PDF at the hit point and scales it by the same (1-envProb)/n
// weight Select would have assigned that light, so the result is
// directly comparable to a BSDF PDF in the balance heuristic.
func (s *Sampler) EvaluateHit(lightTag int, itOnLight shading.Interaction, pFrom shading.Vec3, spec spectrum.Spectrum, swl spectrum.SampledWavelengths, time float64) (light.Evaluation, error) {
	n := len(s.Lights)
	if n == 0 || lightTag < 0 || lightTag >= n {
		return light.Evaluation{L: spectrum.SampledSpectrum{Dim: spec.Dimension()}, PDF: 0}, nil
	}
	closure, err := s.Lights[lightTag].Closure(spec, swl, time)
	if err != nil {
		return light.Evaluation{}, err
	}
	eval := closure.Evaluate(itOnLight, pFrom)
	eval.PDF *= (1 - s.envProb) / float64(n)
	return eval, nil
}

// EvaluateMiss is the symmetric branch for a ray that escaped the
// scene: the environment's own directional PDF scaled by envProb.
func (s *Sampler) EvaluateMiss(wi shading.Vec3, spec spectrum.Spectrum, swl spectrum.SampledWavelengths, time float64) (light.Evaluation, error) {
	if s.Env == nil {
		return light.Evaluation{L: spectrum.SampledSpectrum{Dim: spec.Dimension()}, PDF: 0}, nil
	}
	closure, err := s.Env.Closure(spec, swl, time)
	if err != nil {
		return light.Evaluation{}, err
	}
	eval := closure.Evaluate(wi)
	eval.PDF *= s.envProb
	return eval, nil
}
