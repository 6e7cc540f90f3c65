// Package gpucore provides the device-resource primitives shared by the
// render pipeline: opaque resource IDs, buffer/texture/pipeline
// descriptors, and the [GPUAdapter] interface that abstracts over a
// specific compute backend.
//
// # Architecture
//
// gpucore sits below the pipeline package (which owns the bindless
// resource table, the kernel registry, and the single serialized command
// stream) and above a concrete backend implementation:
//
//	               +------------------+
//	               |     pipeline     |
//	               | (BindlessTable,  |
//	               |  KernelRegistry) |
//	               +--------+---------+
//	                        |
//	               +--------v---------+
//	               |      gpucore     |
//	               |   (GPUAdapter)   |
//	               +--------+---------+
//	                        |
//	               +--------v---------+
//	               |  backend/wgpu    |
//	               | (gogpu/wgpu HAL) |
//	               +------------------+
//
// Two [GPUAdapter] implementations are shipped: the one in backend/wgpu,
// backed by github.com/gogpu/wgpu, and backend.SoftwareAdapter, which runs
// on the CPU without a real device. The interface stays narrow —
// buffer/texture creation, shader module and pipeline creation, buffer
// read/write, and dispatch/sync — so that both can satisfy it.
//
// # Resource management
//
// All resources are referenced by opaque IDs ([BufferID], [TextureID],
// [ShaderModuleID], [ComputePipelineID], [BindGroupLayoutID],
// [BindGroupID], [PipelineLayoutID], [AccelStructureID]) rather than
// concrete backend handles. The adapter implementation owns the mapping
// from ID to handle; everything above gpucore only ever sees the ID.
package gpucore
