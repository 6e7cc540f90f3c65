package surface

import (
	"github.com/gogpu/photon/bxdf"
	"github.com/gogpu/photon/internal/sceneprops"
	"github.com/gogpu/photon/scenedesc"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
	"github.com/gogpu/photon/texture"
)

// MatteSurface is a rough-diffuse material, grounded directly on
// surfaces/matte.cpp: an albedo texture ("Kd") and an optional
// roughness texture ("sigma", in degrees, clamped to [0,90]) feed an
// Oren-Nayar lobe.
type MatteSurface struct {
	Kd    texture.Instance
	Sigma texture.Instance // may be nil, meaning sigma=0 (pure Lambertian)
}

func newMatteFromNode(node *scenedesc.Node) (Instance, error) {
	m := MatteSurface{}
	if ref, ok := sceneprops.NodeRef(node, "Kd"); ok {
		kd, err := texture.Create(ref.ImplType(), ref)
		if err != nil {
			return nil, err
		}
		m.Kd = kd
	} else {
		m.Kd = texture.NewConstantTexture([4]float64{0.5, 0.5, 0.5, 1}, 3)
	}
	if ref, ok := sceneprops.NodeRef(node, "sigma"); ok {
		sigma, err := texture.Create(ref.ImplType(), ref)
		if err != nil {
			return nil, err
		}
		m.Sigma = sigma
	}
	return m, nil
}

func (m MatteSurface) Closure(it shading.Interaction, spec spectrum.Spectrum, swl spectrum.SampledWavelengths, time float64) (Closure, error) {
	albedo := m.Kd.EvaluateAlbedoSpectrum(it, spec, swl, time)
	sigma := 0.0
	if m.Sigma != nil {
		v := m.Sigma.Evaluate(it, swl, time)
		sigma = clampFloat(v[0], 0, 90)
	}
	return matteClosure{it: it, bxdf: bxdf.NewOrenNayar(albedo.Spectrum, sigma)}, nil
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

type matteClosure struct {
	it   shading.Interaction
	bxdf bxdf.OrenNayar
}

func (c matteClosure) Evaluate(wi shading.Vec3) Evaluation {
	woLocal := c.it.WoLocal()
	wiLocal := c.it.Shading.WorldToLocal(wi)
	f := c.bxdf.Evaluate(woLocal, wiLocal)
	return Evaluation{
		F:         f,
		PDF:       c.bxdf.PDF(woLocal, wiLocal),
		Normal:    c.it.Shading.N,
		Roughness: [2]float64{1, 1},
		Eta:       spectrum.SampledSpectrum{Dim: f.Dim, Values: [4]float64{1, 1, 1, 1}},
	}
}

func (c matteClosure) Sample(_ float64, u [2]float64) Sample {
	woLocal := c.it.WoLocal()
	wiLocal, f, pdf, ok := c.bxdf.Sample(woLocal, u)
	event := EventReflect
	if !ok {
		event = EventNull
	}
	wi := c.it.Shading.LocalToWorld(wiLocal)
	return Sample{
		Wi: wi,
		Eval: Evaluation{
			F:         f,
			PDF:       pdf,
			Normal:    c.it.Shading.N,
			Roughness: [2]float64{1, 1},
			Eta:       spectrum.SampledSpectrum{Dim: f.Dim, Values: [4]float64{1, 1, 1, 1}},
		},
		Event: event,
	}
}

var (
	_ Instance = MatteSurface{}
	_ Closure  = matteClosure{}
)
