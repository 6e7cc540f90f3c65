// Package integrator implements the megakernel path-tracing bounce
// loop: one pass per shutter sample, one invocation of RenderPixel per
// dispatched pixel, grounded on original_source/src/integrators/
// mega_path_dx.cpp's render_kernel (the spectral, surface-tagged
// variant of the family — the plain megakernel_path.cpp predates
// spectral sampling and is the simpler ancestor this generalizes).
package integrator
