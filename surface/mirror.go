package surface

import (
	"github.com/gogpu/photon/bxdf"
	"github.com/gogpu/photon/internal/sceneprops"
	"github.com/gogpu/photon/scenedesc"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
	"github.com/gogpu/photon/texture"
)

// MirrorSurface is grounded on surfaces/mirror.cpp: a color texture
// feeds the Schlick Fresnel reflectance at normal incidence, and a
// roughness texture is carried through to Evaluation.Roughness for
// denoiser-style AOVs. mirror.cpp drives a full Trowbridge-Reitz
// microfacet distribution for the rough case; this package implements
// only the smooth (delta) limit, see bxdf.SpecularReflection's doc
// comment and DESIGN.md's C6 entry for the scope decision.
type MirrorSurface struct {
	Color     texture.Instance
	Roughness texture.Instance // may be nil; kept only for AOV reporting
}

func newMirrorFromNode(node *scenedesc.Node) (Instance, error) {
	m := MirrorSurface{}
	if ref, ok := sceneprops.NodeRef(node, "color"); ok {
		color, err := texture.Create(ref.ImplType(), ref)
		if err != nil {
			return nil, err
		}
		m.Color = color
	} else {
		m.Color = texture.NewConstantTexture([4]float64{1, 1, 1, 1}, 3)
	}
	if ref, ok := sceneprops.NodeRef(node, "roughness"); ok {
		roughness, err := texture.Create(ref.ImplType(), ref)
		if err != nil {
			return nil, err
		}
		m.Roughness = roughness
	}
	return m, nil
}

func (m MirrorSurface) Closure(it shading.Interaction, spec spectrum.Spectrum, swl spectrum.SampledWavelengths, time float64) (Closure, error) {
	color := m.Color.EvaluateAlbedoSpectrum(it, spec, swl, time)
	r0 := [3]float64{}
	for i := 0; i < 3 && i < color.Spectrum.Dim; i++ {
		r0[i] = color.Spectrum.Values[i]
	}
	rough := [2]float64{0, 0}
	if m.Roughness != nil {
		v := m.Roughness.Evaluate(it, swl, time)
		rough = [2]float64{v[0], v[0]}
	}
	return mirrorClosure{
		it:        it,
		bxdf:      bxdf.SpecularReflection{R0: r0},
		roughness: rough,
	}, nil
}

type mirrorClosure struct {
	it        shading.Interaction
	bxdf      bxdf.SpecularReflection
	roughness [2]float64
}

func (c mirrorClosure) Evaluate(wi shading.Vec3) Evaluation {
	woLocal := c.it.WoLocal()
	wiLocal := c.it.Shading.WorldToLocal(wi)
	return Evaluation{
		F:         c.bxdf.Evaluate(woLocal, wiLocal),
		PDF:       c.bxdf.PDF(woLocal, wiLocal),
		Normal:    c.it.Shading.N,
		Roughness: c.roughness,
		Eta:       spectrum.SampledSpectrum{Dim: 3, Values: [4]float64{1, 1, 1, 1}},
	}
}

func (c mirrorClosure) Sample(_ float64, u [2]float64) Sample {
	woLocal := c.it.WoLocal()
	wiLocal, f, pdf, ok := c.bxdf.Sample(woLocal, u)
	event := EventReflect
	if !ok {
		event = EventNull
	}
	return Sample{
		Wi: c.it.Shading.LocalToWorld(wiLocal),
		Eval: Evaluation{
			F:         f,
			PDF:       pdf,
			Normal:    c.it.Shading.N,
			Roughness: c.roughness,
			Eta:       spectrum.SampledSpectrum{Dim: 3, Values: [4]float64{1, 1, 1, 1}},
		},
		Event: event,
	}
}

// IsDispersive always reports false: a smooth metallic Fresnel mirror
// has no wavelength-dependent refraction to trigger secondary-ray
// termination.
func (c mirrorClosure) IsDispersive() bool { return false }

var (
	_ Instance   = MirrorSurface{}
	_ Closure    = mirrorClosure{}
	_ Dispersive = mirrorClosure{}
)
