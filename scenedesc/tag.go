package scenedesc

// Tag identifies the role a node plays in the scene graph. The set is
// closed: a validator rejects any tag outside it, and a node's tag
// never changes once declared.
type Tag uint32

const (
	TagRoot Tag = iota
	TagInternal
	TagCamera
	TagFilm
	TagFilter
	TagSampler
	TagIntegrator
	TagShape
	TagSurface
	TagLight
	TagLightSampler
	TagTransform
	TagTexture
	TagEnvironment
	TagSpectrum
	TagMedium
	TagPhaseFunction
)

// String returns the human-readable tag name used in diagnostics and
// error messages.
func (t Tag) String() string {
	switch t {
	case TagRoot:
		return "__root__"
	case TagInternal:
		return "__internal__"
	case TagCamera:
		return "Camera"
	case TagFilm:
		return "Film"
	case TagFilter:
		return "Filter"
	case TagSampler:
		return "Sampler"
	case TagIntegrator:
		return "Integrator"
	case TagShape:
		return "Shape"
	case TagSurface:
		return "Surface"
	case TagLight:
		return "Light"
	case TagLightSampler:
		return "LightSampler"
	case TagTransform:
		return "Transform"
	case TagTexture:
		return "Texture"
	case TagEnvironment:
		return "Environment"
	case TagSpectrum:
		return "Spectrum"
	case TagMedium:
		return "Medium"
	case TagPhaseFunction:
		return "PhaseFunction"
	default:
		return "__invalid__"
	}
}

// valid reports whether t is one of the closed set of declared tags.
func (t Tag) valid() bool {
	return t <= TagPhaseFunction
}

// tagNames maps the user-facing tag keyword (as it appears in a scene
// description file) to its Tag value. Root and Internal are
// deliberately absent: a parser never spells them out directly — root
// status comes from binding the RootIdentifier sentinel, and internal
// status comes from nesting an object inline inside a property value.
var tagNames = map[string]Tag{
	"Camera":        TagCamera,
	"Film":          TagFilm,
	"Filter":        TagFilter,
	"Sampler":       TagSampler,
	"Integrator":    TagIntegrator,
	"Shape":         TagShape,
	"Surface":       TagSurface,
	"Light":         TagLight,
	"LightSampler":  TagLightSampler,
	"Transform":     TagTransform,
	"Texture":       TagTexture,
	"Environment":   TagEnvironment,
	"Spectrum":      TagSpectrum,
	"Medium":        TagMedium,
	"PhaseFunction": TagPhaseFunction,
}

// ParseTag resolves a scene-file type keyword to its Tag, reporting
// false if the keyword names no known tag.
func ParseTag(name string) (Tag, bool) {
	t, ok := tagNames[name]
	return t, ok
}
