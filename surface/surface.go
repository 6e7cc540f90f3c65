package surface

import (
	"github.com/gogpu/photon/internal/plugin"
	"github.com/gogpu/photon/scenedesc"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

const tag = "Surface"

// Event classifies which side of the surface a sampled direction
// scattered to, matching spec.md §4.6's sample() contract
// "event ∈ {reflect, transmit, null}".
type Event int

const (
	EventNull Event = iota
	EventReflect
	EventTransmit
)

// Evaluation is one BSDF evaluation: the differential reflectance,
// its PDF, the shading normal it was evaluated against (may differ
// from the interaction's own normal under bump/normal mapping, though
// this package does not implement those), the lobe's effective
// roughness (for denoiser-style AOVs, kept even though denoising
// itself is out of scope), and the relative index of refraction.
type Evaluation struct {
	F         spectrum.SampledSpectrum
	PDF       float64
	Normal    shading.Vec3
	Roughness [2]float64
	Eta       spectrum.SampledSpectrum
}

// Sample is one BSDF sample: the scattered direction, its evaluation,
// and which side it scattered to.
type Sample struct {
	Wi    shading.Vec3
	Eval  Evaluation
	Event Event
}

// Closure is a surface's scattering behavior bound to a specific hit
// point, wavelength sample, and time — grounded on surface.h's
// Surface::Closure. wo and wi are expected in world space; a closure
// implementation is responsible for transforming into its own local
// frame via the Interaction it was built from.
type Closure interface {
	Evaluate(wi shading.Vec3) Evaluation
	Sample(uLobe float64, u [2]float64) Sample
}

// Dispersive is an optional capability: a closure implementing it
// reports whether it should trigger SampledWavelengths.TerminateSecondary
// (spec.md §9's dispersive-dielectric scenario). Closures that don't
// implement it are treated as non-dispersive.
type Dispersive interface {
	IsDispersive() bool
}

// Opaque is an optional capability for stochastic alpha cutout: Opacity
// returns a scalar in [0,1] and true if this closure supports it.
type Opaque interface {
	Opacity() (float64, bool)
}

// Instance is a built surface ready to produce closures per hit. spec
// is the scene's active spectrum.Spectrum, needed to decode any
// texture inputs (e.g. an albedo's RGB) at swl's wavelengths.
type Instance interface {
	Closure(it shading.Interaction, spec spectrum.Spectrum, swl spectrum.SampledWavelengths, time float64) (Closure, error)
}

// Factory constructs a surface instance from its scene description
// node.
type Factory = plugin.Factory[Instance, *scenedesc.Node]

var registry = plugin.NewRegistry[Instance, *scenedesc.Node]()

// Register adds a surface implementation under impl.
func Register(impl string, factory Factory) { registry.Register(tag, impl, factory) }

// Create resolves impl and builds an instance from node.
func Create(impl string, node *scenedesc.Node) (Instance, error) {
	return registry.Create(tag, impl, node)
}

// Names lists every registered surface implementation, sorted.
func Names() []string { return registry.Names(tag) }

func init() {
	Register("Matte", newMatteFromNode)
	Register("Mirror", newMirrorFromNode)
	Register("Mix", newMixFromNode)
}
