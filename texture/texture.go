package texture

import (
	"github.com/gogpu/photon/internal/plugin"
	"github.com/gogpu/photon/scenedesc"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

// tag is the one scenedesc.Tag this package's registry dispatches:
// every node reaching texture.Create has already been validated as a
// Texture-tagged node by the scene graph (scenedesc.Tag.valid), so the
// (tag, impl) composite key plugin.Registry expects degenerates to a
// constant tag plus the node's own impl string.
const tag = "Texture"

// Decode pairs a sampled spectrum with a scalar strength — the CIE-Y
// or luminance figure both MIS weighting and alias-table area-light
// weighting key off of, matching texture.h's Spectrum::Decode.
type Decode struct {
	Spectrum spectrum.SampledSpectrum
	Strength float64
}

// Instance is a built texture ready to evaluate at a hit point.
// Evaluate returns the raw float4 channels (e.g. for non-color data
// like roughness or normal maps); EvaluateAlbedoSpectrum and
// EvaluateIlluminantSpectrum additionally route through the active
// spectrum.Spectrum to decode an RGB triple (clamped-reflectance or
// unbounded-illuminant respectively) into wavelength-sampled values.
type Instance interface {
	Evaluate(it shading.Interaction, swl spectrum.SampledWavelengths, time float64) [4]float64
	EvaluateAlbedoSpectrum(it shading.Interaction, spec spectrum.Spectrum, swl spectrum.SampledWavelengths, time float64) Decode
	EvaluateIlluminantSpectrum(it shading.Interaction, spec spectrum.Spectrum, swl spectrum.SampledWavelengths, time float64) Decode

	// Channels reports how many of the four evaluated components carry
	// meaningful data (1 for a scalar roughness/alpha map, 3 or 4 for
	// color), mirroring texture.h's channels().
	Channels() int

	// IsBlack and IsConstant let callers (e.g. MixSurface, the light
	// sampler's alias-table weighting) skip building a closure for a
	// texture known never to contribute, or cache a single evaluation.
	IsBlack() bool
	IsConstant() bool
}

// Factory constructs a texture instance from its scene description
// node.
type Factory = plugin.Factory[Instance, *scenedesc.Node]

var registry = plugin.NewRegistry[Instance, *scenedesc.Node]()

// Register adds a texture implementation under impl (e.g. "Constant",
// "Checkerboard").
func Register(impl string, factory Factory) { registry.Register(tag, impl, factory) }

// Create resolves impl and builds an instance from node.
func Create(impl string, node *scenedesc.Node) (Instance, error) {
	return registry.Create(tag, impl, node)
}

// Names lists every registered texture implementation, sorted.
func Names() []string { return registry.Names(tag) }

func init() {
	Register("Constant", newConstantFromNode)
	Register("Checkerboard", newCheckerboardFromNode)
}
