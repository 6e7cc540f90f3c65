// Package dispatch builds the tag-switch kernel fragment spec.md §4.6
// describes: because device kernels have no virtual dispatch, a
// registered implementation is reached by generating
// `switch(tag){ case 0: ...; case 1: ...; }` source text at pipeline
// build time, one arm per (tag, impl) pair the surface/light registries
// resolved for a scene. The emitted text is returned to the caller; no
// package in the module passes it on to pipeline.KernelRegistry or
// compiles it.
package dispatch

import "strings"

// Case is one resolved (tag, impl) arm: tag is the packed dispatch tag
// geometry.Handle carries (SurfaceTag or LightTag), impl names the
// closure-fragment function the arm calls into.
type Case struct {
	Tag  uint32
	Impl string
}

// Source renders a tag switch over cases, each arm calling
// `<prefix>_<impl>(data_ref)`. prefix distinguishes the surface switch
// from the light switch when both are emitted into the same generated
// kernel module.
func Source(prefix string, cases []Case) string {
	var b strings.Builder
	b.WriteString("switch (tag) {\n")
	for _, c := range cases {
		b.WriteString("  case ")
		b.WriteString(itoa(c.Tag))
		b.WriteString("u: { return ")
		b.WriteString(prefix)
		b.WriteString("_")
		b.WriteString(c.Impl)
		b.WriteString("(data_ref); }\n")
	}
	b.WriteString("  default: { return " + prefix + "_none(data_ref); }\n")
	b.WriteString("}\n")
	return b.String()
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var digits [10]byte
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	return string(digits[i:])
}
