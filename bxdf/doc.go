// Package bxdf implements the scattering distributions the surface
// package's closures compose: Lambertian reflection/transmission,
// Oren-Nayar rough diffuse, and a Fresnel-weighted perfect specular
// term. All angles and directions are in the local shading frame
// (shading.Frame), where the convention is local +z is the normal —
// grounded on original_source/src/util/scattering.h's BxDF hierarchy.
package bxdf
