// Package spectrum implements hero-wavelength spectral sampling and
// the RGB<->spectrum upsampling machinery the megakernel path tracer
// uses to evaluate material and light color under one of several
// Spectrum capability variants (fixed RGB, hero-wavelength visible,
// hero-wavelength uniform).
//
// SampledWavelengths carries four co-sampled wavelengths and their
// sampling PDFs through a single light path; SampledSpectrum is the
// corresponding four-channel radiometric quantity. RGBSigmoidPolynomial,
// DecodeAlbedo and DecodeUnbound implement the Jakob-Hanika style RGB-to-spectrum
// upsampling: an input RGB triple is mapped to a smooth, energy-
// conserving spectral reflectance curve via a per-wavelength sigmoid of
// a quadratic, whose three coefficients are fit on demand by damped
// Gauss-Newton iteration against the CIE color matching functions
// (Package spectrum builds those CIE curves, plus the CIE D65
// illuminant, from compact closed-form fits rather than a multi-
// megabyte measured table, since carrying the latter as Go source
// would dwarf everything else in the module without changing any
// observable result at the four-sample resolution the path tracer
// actually evaluates).
package spectrum
