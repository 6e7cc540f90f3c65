// Package shading holds the small vector/frame/interaction types shared
// by the surface, light, and texture closures: a local shading frame
// built from the geometric normal, and the per-hit interaction record
// (position, normal, uv, outgoing direction) those closures evaluate
// against.
package shading
