// Package pipeline is the resource registry that sits between a built
// scene graph and a compute backend: a fixed-capacity bindless table
// holding three disjoint resource-handle spaces (buffers, 2D textures,
// 3D textures), a BufferArena that suballocates small typed buffers out
// of a few large device allocations, and a KernelRegistry that memoizes
// named compiled kernels and shared callable fragments so a scene with
// many nodes sharing an implementation compiles it once.
//
// Every resource registered here survives until the Pipeline is torn
// down; nothing in this package allocates on the per-sample render
// path, matching the bindless-table contract's "no per-frame
// allocation is permitted in the integrator path."
package pipeline
