// Package light implements the light closure contract scene emitters
// dispatch through: evaluate(it_on_light, p_from) -> (L, pdf) and
// sample(p_from, u) -> (eval, p_on_light). Grounded on
// original_source/src/render/surface.h's evaluate/sample shape (lights
// share the same closure pattern as surfaces in the original, just
// keyed by a separate tag) and, for the concrete implementations,
// original_source/src/lights/{point_light,diffuse_area}.cpp.
package light
