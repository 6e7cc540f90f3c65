package backend

import (
	"fmt"
	"sync"

	"github.com/gogpu/photon/gpucore"
)

// Backend name constants.
const (
	// BackendWGPU is the name of the GPU backend (gogpu/wgpu).
	BackendWGPU = "wgpu"
	// BackendSoftware is the name of the CPU-based fallback backend.
	BackendSoftware = "software"
)

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() ComputeBackend {
		return NewSoftwareBackend()
	})
}

// KernelFunc is a host implementation of a compute kernel, keyed by the
// entry point name given to CreateComputePipeline. The software adapter
// has no WGSL interpreter, so every kernel a caller wants to dispatch
// through it must register an equivalent Go implementation first.
type KernelFunc func(ctx *DispatchContext) error

// DispatchContext exposes the bound buffers and workgroup grid size to a
// KernelFunc during Dispatch.
type DispatchContext struct {
	buffers                   [][]byte
	groupsX, groupsY, groupsZ uint32
}

// Buffer returns the raw bytes bound at the given bind-group index.
// Mutations are visible to subsequent ReadBuffer calls, matching the
// semantics of a real storage-buffer binding.
func (c *DispatchContext) Buffer(index int) []byte {
	if index < 0 || index >= len(c.buffers) {
		return nil
	}
	return c.buffers[index]
}

// WorkgroupCount returns the grid size passed to Dispatch.
func (c *DispatchContext) WorkgroupCount() (x, y, z uint32) {
	return c.groupsX, c.groupsY, c.groupsZ
}

// SoftwareAdapter is a CPU-based gpucore.GPUAdapter. Buffers are plain
// byte slices and textures are flat byte buffers; shader modules carry no
// compiled code, and a compute pipeline is resolved at Dispatch time to
// the KernelFunc registered under its entry point name. It exists so the pipeline, geometry, and integrator packages can
// be exercised by tests without a real device, the same role
// UseCPUFallback plays for the rasterizer this package was adapted from.
type SoftwareAdapter struct {
	mu sync.Mutex

	nextID uint64

	buffers  map[gpucore.BufferID][]byte
	textures map[gpucore.TextureID][]byte
	shaders  map[gpucore.ShaderModuleID]string
	kernels  map[gpucore.ComputePipelineID]string

	bindGroupLayouts map[gpucore.BindGroupLayoutID]gpucore.BindGroupLayoutDesc
	bindGroups       map[gpucore.BindGroupID]gpucore.BindGroupDesc

	registry map[string]KernelFunc
}

// NewSoftwareAdapter creates a CPU-backed adapter.
func NewSoftwareAdapter() *SoftwareAdapter {
	return &SoftwareAdapter{
		buffers:          make(map[gpucore.BufferID][]byte),
		textures:         make(map[gpucore.TextureID][]byte),
		shaders:          make(map[gpucore.ShaderModuleID]string),
		kernels:          make(map[gpucore.ComputePipelineID]string),
		bindGroupLayouts: make(map[gpucore.BindGroupLayoutID]gpucore.BindGroupLayoutDesc),
		bindGroups:       make(map[gpucore.BindGroupID]gpucore.BindGroupDesc),
		registry:         make(map[string]KernelFunc),
	}
}

// RegisterKernel associates an entry point name with a host
// implementation, so a ComputePipelineDesc naming that entry point can be
// dispatched on this adapter.
func (a *SoftwareAdapter) RegisterKernel(entryPoint string, fn KernelFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.registry[entryPoint] = fn
}

func (a *SoftwareAdapter) allocID() uint64 {
	a.nextID++
	return a.nextID
}

// SupportsCompute implements gpucore.GPUAdapter.
func (a *SoftwareAdapter) SupportsCompute() bool { return true }

// SupportsRayQuery implements gpucore.GPUAdapter. The software adapter has
// no acceleration structure traversal, and the module has no host-side
// BVH traversal either; ray intersection is left to the integrator.Scene
// implementation the caller supplies.
func (a *SoftwareAdapter) SupportsRayQuery() bool { return false }

// CreateBuffer implements gpucore.GPUAdapter.
func (a *SoftwareAdapter) CreateBuffer(desc gpucore.BufferDesc) (gpucore.BufferID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := gpucore.BufferID(a.allocID())
	a.buffers[id] = make([]byte, desc.Size)
	return id, nil
}

// DestroyBuffer implements gpucore.GPUAdapter.
func (a *SoftwareAdapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.buffers, id)
}

// CreateTexture implements gpucore.GPUAdapter.
func (a *SoftwareAdapter) CreateTexture(desc gpucore.TextureDesc) (gpucore.TextureID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	depth := desc.Depth
	if depth == 0 {
		depth = 1
	}
	id := gpucore.TextureID(a.allocID())
	a.textures[id] = make([]byte, uint64(desc.Width)*uint64(desc.Height)*uint64(depth)*texelSize(desc.Format))
	return id, nil
}

// DestroyTexture implements gpucore.GPUAdapter.
func (a *SoftwareAdapter) DestroyTexture(id gpucore.TextureID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.textures, id)
}

func texelSize(f gpucore.TextureFormat) uint64 {
	switch f {
	case gpucore.TextureFormatR8Unorm:
		return 1
	case gpucore.TextureFormatR32Float:
		return 4
	case gpucore.TextureFormatRG32Float:
		return 8
	case gpucore.TextureFormatRGBA32Float:
		return 16
	default:
		return 4
	}
}

// CreateShaderModule implements gpucore.GPUAdapter. The SPIR-V payload is
// discarded; only the label is kept, since Dispatch resolves kernels by
// entry point name against the registered KernelFunc table.
func (a *SoftwareAdapter) CreateShaderModule(label string, _ []uint32) (gpucore.ShaderModuleID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := gpucore.ShaderModuleID(a.allocID())
	a.shaders[id] = label
	return id, nil
}

// DestroyShaderModule implements gpucore.GPUAdapter.
func (a *SoftwareAdapter) DestroyShaderModule(id gpucore.ShaderModuleID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.shaders, id)
}

// CreateComputePipeline implements gpucore.GPUAdapter.
func (a *SoftwareAdapter) CreateComputePipeline(desc gpucore.ComputePipelineDesc) (gpucore.ComputePipelineID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.registry[desc.EntryPoint]; !ok {
		return 0, fmt.Errorf("backend: software adapter has no registered kernel for entry point %q", desc.EntryPoint)
	}
	id := gpucore.ComputePipelineID(a.allocID())
	a.kernels[id] = desc.EntryPoint
	return id, nil
}

// DestroyComputePipeline implements gpucore.GPUAdapter.
func (a *SoftwareAdapter) DestroyComputePipeline(id gpucore.ComputePipelineID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.kernels, id)
}

// CreateBindGroupLayout implements gpucore.GPUAdapter.
func (a *SoftwareAdapter) CreateBindGroupLayout(desc gpucore.BindGroupLayoutDesc) (gpucore.BindGroupLayoutID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := gpucore.BindGroupLayoutID(a.allocID())
	a.bindGroupLayouts[id] = desc
	return id, nil
}

// CreateBindGroup implements gpucore.GPUAdapter.
func (a *SoftwareAdapter) CreateBindGroup(desc gpucore.BindGroupDesc) (gpucore.BindGroupID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := gpucore.BindGroupID(a.allocID())
	a.bindGroups[id] = desc
	return id, nil
}

// WriteBuffer implements gpucore.GPUAdapter.
func (a *SoftwareAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	buf, ok := a.buffers[id]
	if !ok {
		return fmt.Errorf("backend: unknown buffer %d", id)
	}
	if offset+uint64(len(data)) > uint64(len(buf)) {
		return fmt.Errorf("backend: write out of bounds on buffer %d", id)
	}
	copy(buf[offset:], data)
	return nil
}

// ReadBuffer implements gpucore.GPUAdapter.
func (a *SoftwareAdapter) ReadBuffer(id gpucore.BufferID, offset, size uint64) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	buf, ok := a.buffers[id]
	if !ok {
		return nil, fmt.Errorf("backend: unknown buffer %d", id)
	}
	if offset+size > uint64(len(buf)) {
		return nil, fmt.Errorf("backend: read out of bounds on buffer %d", id)
	}
	out := make([]byte, size)
	copy(out, buf[offset:offset+size])
	return out, nil
}

// Dispatch implements gpucore.GPUAdapter by running the KernelFunc
// registered for the pipeline's entry point synchronously, on the calling
// goroutine.
func (a *SoftwareAdapter) Dispatch(pipeline gpucore.ComputePipelineID, bindGroupIDs []gpucore.BindGroupID, groupsX, groupsY, groupsZ uint32) error {
	a.mu.Lock()
	entryPoint, ok := a.kernels[pipeline]
	if !ok {
		a.mu.Unlock()
		return fmt.Errorf("backend: unknown compute pipeline %d", pipeline)
	}
	fn, ok := a.registry[entryPoint]
	if !ok {
		a.mu.Unlock()
		return fmt.Errorf("backend: no kernel registered for entry point %q", entryPoint)
	}

	var buffers [][]byte
	for _, gid := range bindGroupIDs {
		desc, ok := a.bindGroups[gid]
		if !ok {
			a.mu.Unlock()
			return fmt.Errorf("backend: unknown bind group %d", gid)
		}
		for _, e := range desc.Entries {
			if buf, ok := a.buffers[e.Buffer]; ok {
				buffers = append(buffers, buf)
			} else if tex, ok := a.textures[e.Texture]; ok {
				buffers = append(buffers, tex)
			}
		}
	}
	a.mu.Unlock()

	return fn(&DispatchContext{buffers: buffers, groupsX: groupsX, groupsY: groupsY, groupsZ: groupsZ})
}

// Sync implements gpucore.GPUAdapter. Dispatch already runs synchronously,
// so there is nothing outstanding to wait for.
func (a *SoftwareAdapter) Sync() error { return nil }

// SoftwareBackend is the ComputeBackend wrapping a SoftwareAdapter.
type SoftwareBackend struct {
	adapter *SoftwareAdapter
}

// NewSoftwareBackend creates a new software compute backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string { return BackendSoftware }

// Init implements ComputeBackend. deviceIndex is ignored.
func (b *SoftwareBackend) Init(_ int) error {
	b.adapter = NewSoftwareAdapter()
	return nil
}

// Close implements ComputeBackend.
func (b *SoftwareBackend) Close() {
	b.adapter = nil
}

// Adapter implements ComputeBackend.
func (b *SoftwareBackend) Adapter() gpucore.GPUAdapter {
	if b.adapter == nil {
		return nil
	}
	return b.adapter
}
