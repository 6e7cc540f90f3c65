// Package surface implements the BSDF closure contract scene materials
// dispatch through: evaluate(wo, wi), sample(u_lobe, u), and the
// optional opacity/dispersion hooks. Grounded on
// original_source/src/render/surface.h's SurfaceShader/Surface
// template and original_source/src/surfaces/{matte,mirror,mix}.cpp.
package surface
