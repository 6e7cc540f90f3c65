// Package sampler implements the per-pixel sample sequence generators
// the megakernel path tracer draws from: one random number stream per
// in-flight path, reset once per render and started fresh for each
// (pixel, sample index) the integrator dispatches.
//
// Three variants share the Sampler contract: PCG is an independent
// pseudo-random stream seeded by hashing the pixel coordinates and
// sample index (grounded on the teacher domain's tea/lcg per-pixel
// seeding idiom); Sobol pads the first two true Sobol-sequence
// dimensions with hash-based Owen scrambling to cover arbitrary
// dimension counts; PMJ02BN approximates a progressive multi-jittered
// (0,2) sequence by jittering the Sobol sampler's first two dimensions
// within their elementary intervals and shifting the pattern per pixel. All
// three support SaveState/LoadState so a suspended kernel invocation
// (the teacher domain's wavefront scheduling idiom, carried over to
// the megakernel's bounce loop) can resume mid-path without
// re-deriving its position in the sequence.
package sampler
