// Package texture implements the tag-dispatched texture closures a
// scene's materials and lights sample through: a float4 evaluate, plus
// specialized albedo/illuminant decodes that hand off to the active
// spectrum.Spectrum for spectral uplift. Grounded on
// original_source/src/base/texture.{h,cpp} and
// original_source/src/textures/checkerboard.cpp.
package texture
