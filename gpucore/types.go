package gpucore

// Resource IDs
//
// These opaque IDs represent GPU resources. Each adapter implementation
// maintains a mapping between IDs and actual backend resources.
// IDs are uint64 to accommodate various backend handle sizes. Bindless
// slot indices are a separate type (pipeline.SlotID) that the pipeline
// package maps to these IDs.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// ShaderModuleID is an opaque handle to a compiled shader module.
type ShaderModuleID uint64

// ComputePipelineID is an opaque handle to a compute pipeline (a compiled
// kernel entry point, in the dispatch-table sense).
type ComputePipelineID uint64

// BindGroupLayoutID is an opaque handle to a bind group layout.
type BindGroupLayoutID uint64

// BindGroupID is an opaque handle to a bind group.
type BindGroupID uint64

// PipelineLayoutID is an opaque handle to a pipeline layout.
type PipelineLayoutID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	// BufferUsageMapRead indicates the buffer can be mapped for reading.
	BufferUsageMapRead BufferUsage = 1 << 0

	// BufferUsageMapWrite indicates the buffer can be mapped for writing.
	BufferUsageMapWrite BufferUsage = 1 << 1

	// BufferUsageCopySrc indicates the buffer can be used as a copy source.
	BufferUsageCopySrc BufferUsage = 1 << 2

	// BufferUsageCopyDst indicates the buffer can be used as a copy destination.
	BufferUsageCopyDst BufferUsage = 1 << 3

	// BufferUsageIndex indicates the buffer can be used as an index buffer.
	BufferUsageIndex BufferUsage = 1 << 4

	// BufferUsageVertex indicates the buffer can be used as a vertex buffer.
	BufferUsageVertex BufferUsage = 1 << 5

	// BufferUsageUniform indicates the buffer can be used as a uniform buffer.
	BufferUsageUniform BufferUsage = 1 << 6

	// BufferUsageStorage indicates the buffer can be used as a storage buffer.
	// The bindless table and the geometry/transform buffers are all
	// allocated with this flag.
	BufferUsageStorage BufferUsage = 1 << 7

	// BufferUsageIndirect indicates the buffer can be used for indirect dispatch/draw.
	BufferUsageIndirect BufferUsage = 1 << 8

	// BufferUsageAccelStructure indicates the buffer backs a bottom- or
	// top-level acceleration structure.
	BufferUsageAccelStructure BufferUsage = 1 << 9
)

// TextureFormat specifies the format of texture data.
type TextureFormat uint32

// Texture formats.
const (
	// TextureFormatRGBA8Unorm is 8-bit RGBA, normalized unsigned integer.
	TextureFormatRGBA8Unorm TextureFormat = iota + 1

	// TextureFormatRGBA8UnormSRGB is 8-bit RGBA, normalized unsigned integer in sRGB color space.
	TextureFormatRGBA8UnormSRGB

	// TextureFormatBGRA8Unorm is 8-bit BGRA, normalized unsigned integer.
	TextureFormatBGRA8Unorm

	// TextureFormatBGRA8UnormSRGB is 8-bit BGRA, normalized unsigned integer in sRGB color space.
	TextureFormatBGRA8UnormSRGB

	// TextureFormatR8Unorm is 8-bit red channel only, normalized unsigned integer.
	TextureFormatR8Unorm

	// TextureFormatR32Float is 32-bit red channel only, floating point. Used
	// for single-channel textures sampled as a dispersive IOR or roughness map.
	TextureFormatR32Float

	// TextureFormatRG32Float is 32-bit RG, floating point.
	TextureFormatRG32Float

	// TextureFormatRGBA32Float is 32-bit RGBA, floating point. Used for the
	// film accumulation texture and any HDR texture input.
	TextureFormatRGBA32Float
)

// TextureUsage is a bitmask specifying how a texture will be used.
type TextureUsage uint32

// Texture usage flags.
const (
	// TextureUsageCopySrc indicates the texture can be used as a copy source.
	TextureUsageCopySrc TextureUsage = 1 << 0

	// TextureUsageCopyDst indicates the texture can be used as a copy destination.
	TextureUsageCopyDst TextureUsage = 1 << 1

	// TextureUsageTextureBinding indicates the texture can be bound as a sampled texture.
	TextureUsageTextureBinding TextureUsage = 1 << 2

	// TextureUsageStorageBinding indicates the texture can be bound as a storage texture.
	TextureUsageStorageBinding TextureUsage = 1 << 3

	// TextureUsageRenderAttachment indicates the texture can be used as a render target.
	TextureUsageRenderAttachment TextureUsage = 1 << 4
)

// BindingType specifies the type of a shader binding.
type BindingType uint32

// Binding types.
const (
	// BindingTypeUniformBuffer is a uniform buffer binding.
	BindingTypeUniformBuffer BindingType = iota + 1

	// BindingTypeStorageBuffer is a storage buffer binding (read-write).
	BindingTypeStorageBuffer

	// BindingTypeReadOnlyStorageBuffer is a read-only storage buffer binding.
	BindingTypeReadOnlyStorageBuffer

	// BindingTypeSampler is a texture sampler binding.
	BindingTypeSampler

	// BindingTypeSampledTexture is a sampled texture binding.
	BindingTypeSampledTexture

	// BindingTypeStorageTexture is a storage texture binding.
	BindingTypeStorageTexture

	// BindingTypeAccelStructure is a ray-tracing acceleration structure binding.
	BindingTypeAccelStructure

	// BindingTypeBindlessArray is the single bindless-table binding shared
	// by every compiled kernel (see pipeline.BindlessTable).
	BindingTypeBindlessArray
)

// ComputePipelineDesc describes a compute pipeline.
type ComputePipelineDesc struct {
	// Label is an optional debug label.
	Label string

	// Layout is the pipeline layout.
	Layout PipelineLayoutID

	// ShaderModule contains the compute shader.
	ShaderModule ShaderModuleID

	// EntryPoint is the name of the shader entry point function.
	EntryPoint string
}

// BindGroupLayoutDesc describes a bind group layout.
type BindGroupLayoutDesc struct {
	// Label is an optional debug label.
	Label string

	// Entries defines the bindings in this layout.
	Entries []BindGroupLayoutEntry
}

// BindGroupLayoutEntry describes a single binding in a bind group layout.
type BindGroupLayoutEntry struct {
	// Binding is the binding index.
	Binding uint32

	// Type is the type of resource bound at this index.
	Type BindingType

	// MinBindingSize is the minimum buffer size for buffer bindings.
	// Set to 0 for non-buffer bindings.
	MinBindingSize uint64
}

// BindGroupEntry describes a single binding in a bind group.
type BindGroupEntry struct {
	// Binding is the binding index.
	Binding uint32

	// Buffer is the buffer to bind (for buffer bindings).
	Buffer BufferID

	// Offset is the offset into the buffer.
	Offset uint64

	// Size is the size of the buffer range to bind.
	// Use 0 to bind the entire buffer from offset.
	Size uint64

	// Texture is the texture to bind (for texture bindings).
	Texture TextureID
}

// BindGroupDesc describes a bind group.
type BindGroupDesc struct {
	// Label is an optional debug label.
	Label string

	// Layout is the bind group layout.
	Layout BindGroupLayoutID

	// Entries are the resource bindings.
	Entries []BindGroupEntry
}

// BufferDesc describes a buffer allocation request.
type BufferDesc struct {
	Label string
	Size  uint64
	Usage BufferUsage
}

// TextureDesc describes a texture allocation request.
type TextureDesc struct {
	Label  string
	Width  uint32
	Height uint32
	Depth  uint32 // 1 for a 2D texture, >1 for a 3D volume
	Format TextureFormat
	Usage  TextureUsage
}

// AccelStructureID is an opaque handle to a ray-tracing acceleration
// structure (a bottom-level mesh accel or the top-level scene accel).
type AccelStructureID uint64

// GPUAdapter abstracts device-level resource creation over a specific
// backend (wgpu today; the interface is kept narrow enough that a
// second backend could implement it without touching callers).
//
// Every method is safe for concurrent use; adapters guard their internal
// ID-to-resource maps with their own locking, matching the device access
// pattern of the serialized command stream described in the pipeline
// package.
type GPUAdapter interface {
	// SupportsCompute reports whether this adapter can run compute
	// kernels at all (a pure presentation-only adapter would not).
	SupportsCompute() bool

	// SupportsRayQuery reports whether the adapter's device exposes
	// hardware or emulated ray-query intrinsics for TLAS traversal.
	SupportsRayQuery() bool

	CreateBuffer(desc BufferDesc) (BufferID, error)
	DestroyBuffer(id BufferID)

	CreateTexture(desc TextureDesc) (TextureID, error)
	DestroyTexture(id TextureID)

	CreateShaderModule(label string, spirv []uint32) (ShaderModuleID, error)
	DestroyShaderModule(id ShaderModuleID)

	CreateComputePipeline(desc ComputePipelineDesc) (ComputePipelineID, error)
	DestroyComputePipeline(id ComputePipelineID)

	CreateBindGroupLayout(desc BindGroupLayoutDesc) (BindGroupLayoutID, error)
	CreateBindGroup(desc BindGroupDesc) (BindGroupID, error)

	// WriteBuffer uploads host data into an existing buffer at offset.
	WriteBuffer(id BufferID, offset uint64, data []byte) error

	// ReadBuffer downloads buffer data back to the host. Used for film
	// readback and debug inspection; not on the per-sample hot path.
	ReadBuffer(id BufferID, offset uint64, size uint64) ([]byte, error)

	// Dispatch submits a compute pipeline invocation over the given
	// workgroup grid, with the bindless table and any extra bind groups
	// bound. It returns once the command is enqueued on the single
	// serialized stream, not once it has completed.
	Dispatch(pipeline ComputePipelineID, bindGroups []BindGroupID, groupsX, groupsY, groupsZ uint32) error

	// Sync blocks until all previously enqueued work has completed.
	Sync() error
}
