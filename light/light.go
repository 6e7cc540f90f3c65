package light

import (
	"github.com/gogpu/photon/internal/plugin"
	"github.com/gogpu/photon/scenedesc"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

const tag = "Light"

// Evaluation is one light evaluation: the emitted radiance along the
// direction it was evaluated/sampled for, and the solid-angle PDF at
// p_from that direction carries, matching spec.md §4.6's
// "evaluate(it_on_light, p_from) -> (L, pdf)".
type Evaluation struct {
	L   spectrum.SampledSpectrum
	PDF float64
}

// Sample is one light sample: the direction and distance from p_from
// toward the sampled point, the point itself (for shadow-ray
// construction), and the evaluation at that point.
type Sample struct {
	Wi       shading.Vec3
	Distance float64
	Point    shading.Vec3
	Eval     Evaluation
}

// Closure is a light's emission behavior bound to a specific hit
// point, wavelength sample, and time.
type Closure interface {
	// Evaluate returns the radiance and PDF of itOnLight as seen from
	// pFrom — used by the integrator's "hit light" MIS branch when a
	// continuation ray happens to land on an emissive surface.
	Evaluate(itOnLight shading.Interaction, pFrom shading.Vec3) Evaluation

	// Sample draws a point on the light from pFrom using u, returning
	// the direction/distance to it and its evaluation — used by the
	// integrator's explicit direct-lighting branch. A delta light (no
	// continuous measure) ignores u entirely; diffuse_area.cpp's area
	// light uses all three components (one to pick a triangle via the
	// alias table, two for barycentric coordinates within it).
	Sample(pFrom shading.Vec3, u [3]float64) Sample

	// SamplingDimensions reports how many of u's three components
	// Sample actually consumes (0 for PointLight, 3 for
	// DiffuseAreaLight), matching point_light.cpp/diffuse_area.cpp's
	// sampling_dimensions().
	SamplingDimensions() int
}

// Instance is a built light ready to produce closures. spec is the
// scene's active spectrum.Spectrum, needed to decode the emission
// texture/RGB at swl's wavelengths.
type Instance interface {
	Closure(spec spectrum.Spectrum, swl spectrum.SampledWavelengths, time float64) (Closure, error)
}

// Factory constructs a light instance from its scene description node.
type Factory = plugin.Factory[Instance, *scenedesc.Node]

var registry = plugin.NewRegistry[Instance, *scenedesc.Node]()

// Register adds a light implementation under impl.
func Register(impl string, factory Factory) { registry.Register(tag, impl, factory) }

// Create resolves impl and builds an instance from node.
func Create(impl string, node *scenedesc.Node) (Instance, error) {
	return registry.Create(tag, impl, node)
}

// Names lists every registered light implementation, sorted.
func Names() []string { return registry.Names(tag) }

func init() {
	Register("Point", newPointFromNode)
	Register("DiffuseArea", newDiffuseAreaFromNode)
}
