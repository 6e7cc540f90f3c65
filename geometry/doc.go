// Package geometry turns parsed mesh and transform data into the
// device-side resources the megakernel indexes during traversal: a
// packed 4xu32 instance handle per mesh (bindless base index, property
// flags, surface/light/medium tags, triangle count, and the two
// per-shape override factors), a flat transform-matrix buffer, and a
// top-level instance list that is refit (never rebuilt) as transforms
// move.
//
// Non-mesh shapes are recursive grouping nodes: Expand walks such a
// shape's children and flattens them into a list of (mesh, transform)
// instances, inheriting the parent's surface/light/medium assignment
// onto any child that does not override it.
package geometry
