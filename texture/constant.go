package texture

import (
	"github.com/gogpu/photon/internal/sceneprops"
	"github.com/gogpu/photon/scenedesc"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

// ConstantTexture returns the same value everywhere — the default a
// property like MatteSurface's "Kd" or MirrorSurface's "roughness"
// falls back to when the scene omits it (matte.cpp's
// SceneNodeDesc::shared_default_texture("Constant")).
type ConstantTexture struct {
	Value    [4]float64
	channels int
}

// NewConstantTexture builds a constant texture with the given channel
// count (1 for a scalar generic value, 3 or 4 for color).
func NewConstantTexture(value [4]float64, channels int) ConstantTexture {
	return ConstantTexture{Value: value, channels: channels}
}

func newConstantFromNode(node *scenedesc.Node) (Instance, error) {
	v := sceneprops.RGB(node, "v", [3]float64{0, 0, 0})
	return NewConstantTexture([4]float64{v[0], v[1], v[2], 1}, 3), nil
}

func (c ConstantTexture) Evaluate(shading.Interaction, spectrum.SampledWavelengths, float64) [4]float64 {
	return c.Value
}

func (c ConstantTexture) decode(spec spectrum.Spectrum, swl spectrum.SampledWavelengths, unbound bool) Decode {
	rgb := [3]float64{c.Value[0], c.Value[1], c.Value[2]}
	var s spectrum.SampledSpectrum
	if unbound {
		s = spec.DecodeIlluminant(swl, rgb)
	} else {
		s = spec.DecodeAlbedo(swl, rgb)
	}
	return Decode{Spectrum: s, Strength: spec.CIEY(swl, s)}
}

func (c ConstantTexture) EvaluateAlbedoSpectrum(_ shading.Interaction, spec spectrum.Spectrum, swl spectrum.SampledWavelengths, _ float64) Decode {
	return c.decode(spec, swl, false)
}

func (c ConstantTexture) EvaluateIlluminantSpectrum(_ shading.Interaction, spec spectrum.Spectrum, swl spectrum.SampledWavelengths, _ float64) Decode {
	return c.decode(spec, swl, true)
}

func (c ConstantTexture) Channels() int { return c.channels }

func (c ConstantTexture) IsBlack() bool {
	for i := 0; i < c.channels; i++ {
		if c.Value[i] != 0 {
			return false
		}
	}
	return true
}

func (c ConstantTexture) IsConstant() bool { return true }

var _ Instance = ConstantTexture{}
