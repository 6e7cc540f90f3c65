package wgpu

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/types"

	"github.com/gogpu/photon/gpucore"
	"github.com/gogpu/photon/internal/native"
)

// Adapter implements gpucore.GPUAdapter over a single gogpu/wgpu hal.Device.
//
// It owns the ID-to-resource maps for buffers, textures, shader modules,
// pipelines, and bind groups; everything outside this package only ever
// sees the opaque gpucore IDs, matching the resource-management contract
// described in gpucore's package doc.
type Adapter struct {
	mu sync.Mutex

	adapterID core.AdapterID
	deviceID  core.DeviceID
	queueID   core.QueueID
	device    hal.Device

	nextID uint64

	buffers     map[gpucore.BufferID]hal.Buffer
	textures    map[gpucore.TextureID]hal.Texture
	shaders     map[gpucore.ShaderModuleID]hal.ShaderModule
	pipelines   map[gpucore.ComputePipelineID]hal.ComputePipeline
	bindLayouts map[gpucore.BindGroupLayoutID]hal.BindGroupLayout
	bindGroups  map[gpucore.BindGroupID]hal.BindGroup

	rayQueryCapable bool

	pending atomic.Int64
}

// Open creates a wgpu instance and selects an adapter, then builds a
// logical device and queue, wrapping them as a gpucore.GPUAdapter. A
// negative deviceIndex (the "-d" flag's default) asks the instance for
// its own best pick via RequestAdapter, matching
// NativeBackend.Init's PowerPreferenceHighPerformance request; a
// non-negative deviceIndex instead selects that position out of
// EnumerateAdapters, for callers that enumerated devices up front and
// want a specific one.
func Open(deviceIndex int) (*Adapter, error) {
	instance := core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
	})

	var adapterID core.AdapterID
	if deviceIndex < 0 {
		var err error
		adapterID, err = instance.RequestAdapter(&gputypes.RequestAdapterOptions{
			PowerPreference: gputypes.PowerPreferenceHighPerformance,
		})
		if err != nil {
			return nil, fmt.Errorf("wgpu: request adapter: %w", err)
		}
	} else {
		adapterIDs, err := core.EnumerateAdapters()
		if err != nil {
			return nil, fmt.Errorf("wgpu: enumerate adapters: %w", err)
		}
		if deviceIndex >= len(adapterIDs) {
			return nil, fmt.Errorf("wgpu: device index %d out of range (%d adapters found)", deviceIndex, len(adapterIDs))
		}
		adapterID = adapterIDs[deviceIndex]
	}
	logGPUInfo(adapterID)

	deviceID, err := createDevice(adapterID, "photon-device")
	if err != nil {
		_ = releaseAdapter(adapterID)
		return nil, err
	}
	queueID, err := getDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		_ = releaseAdapter(adapterID)
		return nil, err
	}
	if err := CheckDeviceLimits(deviceID); err != nil {
		return nil, err
	}

	device, err := core.DeviceHAL(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		_ = releaseAdapter(adapterID)
		return nil, fmt.Errorf("wgpu: device HAL handle: %w", err)
	}

	info, _ := getGPUInfo(adapterID)
	rayQuery := info != nil && info.DeviceType != types.DeviceTypeCPU

	return &Adapter{
		adapterID:       adapterID,
		deviceID:        deviceID,
		queueID:         queueID,
		device:          device,
		buffers:         make(map[gpucore.BufferID]hal.Buffer),
		textures:        make(map[gpucore.TextureID]hal.Texture),
		shaders:         make(map[gpucore.ShaderModuleID]hal.ShaderModule),
		pipelines:       make(map[gpucore.ComputePipelineID]hal.ComputePipeline),
		bindLayouts:     make(map[gpucore.BindGroupLayoutID]hal.BindGroupLayout),
		bindGroups:      make(map[gpucore.BindGroupID]hal.BindGroup),
		rayQueryCapable: rayQuery,
	}, nil
}

func (a *Adapter) allocID() uint64 {
	a.nextID++
	return a.nextID
}

// SupportsCompute implements gpucore.GPUAdapter.
func (a *Adapter) SupportsCompute() bool { return true }

// SupportsRayQuery implements gpucore.GPUAdapter.
func (a *Adapter) SupportsRayQuery() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rayQueryCapable
}

// CreateBuffer implements gpucore.GPUAdapter.
func (a *Adapter) CreateBuffer(desc gpucore.BufferDesc) (gpucore.BufferID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	buf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.Size,
		Usage: halBufferUsage(desc.Usage),
	})
	if err != nil {
		return 0, fmt.Errorf("wgpu: create buffer %q: %w", desc.Label, err)
	}
	id := gpucore.BufferID(a.allocID())
	a.buffers[id] = buf
	return id, nil
}

// DestroyBuffer implements gpucore.GPUAdapter.
func (a *Adapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if buf, ok := a.buffers[id]; ok {
		a.device.DestroyBuffer(buf)
		delete(a.buffers, id)
	}
}

// CreateTexture implements gpucore.GPUAdapter.
func (a *Adapter) CreateTexture(desc gpucore.TextureDesc) (gpucore.TextureID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	depth := desc.Depth
	if depth == 0 {
		depth = 1
	}
	tex, err := a.device.CreateTexture(&hal.TextureDescriptor{
		Label:  desc.Label,
		Width:  desc.Width,
		Height: desc.Height,
		Depth:  depth,
		Format: halTextureFormat(desc.Format),
		Usage:  halTextureUsage(desc.Usage),
	})
	if err != nil {
		return 0, fmt.Errorf("wgpu: create texture %q: %w", desc.Label, err)
	}
	id := gpucore.TextureID(a.allocID())
	a.textures[id] = tex
	return id, nil
}

// DestroyTexture implements gpucore.GPUAdapter.
func (a *Adapter) DestroyTexture(id gpucore.TextureID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if tex, ok := a.textures[id]; ok {
		a.device.DestroyTexture(tex)
		delete(a.textures, id)
	}
}

// CreateShaderModule implements gpucore.GPUAdapter. spirv is produced by
// pipeline.CompileKernel, which runs the WGSL emitted by the
// kernel-generation stage through internal/native.CompileShaderToSPIRV
// before handing the result here.
func (a *Adapter) CreateShaderModule(label string, spirv []uint32) (gpucore.ShaderModuleID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	mod, err := native.CreateShaderModule(a.device, label, spirv)
	if err != nil {
		return 0, fmt.Errorf("wgpu: create shader module %q: %w", label, err)
	}
	id := gpucore.ShaderModuleID(a.allocID())
	a.shaders[id] = mod
	return id, nil
}

// DestroyShaderModule implements gpucore.GPUAdapter.
func (a *Adapter) DestroyShaderModule(id gpucore.ShaderModuleID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if mod, ok := a.shaders[id]; ok {
		a.device.DestroyShaderModule(mod)
		delete(a.shaders, id)
	}
}

// CreateComputePipeline implements gpucore.GPUAdapter.
func (a *Adapter) CreateComputePipeline(desc gpucore.ComputePipelineDesc) (gpucore.ComputePipelineID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	mod, ok := a.shaders[desc.ShaderModule]
	if !ok {
		return 0, fmt.Errorf("wgpu: unknown shader module %d", desc.ShaderModule)
	}
	layout, ok := a.bindLayouts[gpucore.BindGroupLayoutID(desc.Layout)]
	_ = layout
	_ = ok

	pipeline, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:      desc.Label,
		Module:     mod,
		EntryPoint: desc.EntryPoint,
	})
	if err != nil {
		return 0, fmt.Errorf("wgpu: create compute pipeline %q: %w", desc.Label, err)
	}
	id := gpucore.ComputePipelineID(a.allocID())
	a.pipelines[id] = pipeline
	return id, nil
}

// DestroyComputePipeline implements gpucore.GPUAdapter.
func (a *Adapter) DestroyComputePipeline(id gpucore.ComputePipelineID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.pipelines[id]; ok {
		a.device.DestroyComputePipeline(p)
		delete(a.pipelines, id)
	}
}

// CreateBindGroupLayout implements gpucore.GPUAdapter.
func (a *Adapter) CreateBindGroupLayout(desc gpucore.BindGroupLayoutDesc) (gpucore.BindGroupLayoutID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entries := make([]hal.BindGroupLayoutEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entries[i] = hal.BindGroupLayoutEntry{
			Binding: e.Binding,
			Type:    halBindingType(e.Type),
		}
	}
	layout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: entries,
	})
	if err != nil {
		return 0, fmt.Errorf("wgpu: create bind group layout %q: %w", desc.Label, err)
	}
	id := gpucore.BindGroupLayoutID(a.allocID())
	a.bindLayouts[id] = layout
	return id, nil
}

// CreateBindGroup implements gpucore.GPUAdapter.
func (a *Adapter) CreateBindGroup(desc gpucore.BindGroupDesc) (gpucore.BindGroupID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	layout, ok := a.bindLayouts[desc.Layout]
	if !ok {
		return 0, fmt.Errorf("wgpu: unknown bind group layout %d", desc.Layout)
	}

	entries := make([]hal.BindGroupEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entry := hal.BindGroupEntry{Binding: e.Binding}
		if buf, ok := a.buffers[e.Buffer]; ok {
			entry.Buffer = buf
			entry.Offset = e.Offset
			entry.Size = e.Size
		}
		if tex, ok := a.textures[e.Texture]; ok {
			entry.Texture = tex
		}
		entries[i] = entry
	}

	group, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return 0, fmt.Errorf("wgpu: create bind group %q: %w", desc.Label, err)
	}
	id := gpucore.BindGroupID(a.allocID())
	a.bindGroups[id] = group
	return id, nil
}

// WriteBuffer implements gpucore.GPUAdapter.
func (a *Adapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	a.mu.Lock()
	buf, ok := a.buffers[id]
	a.mu.Unlock()
	if !ok {
		return fmt.Errorf("wgpu: unknown buffer %d", id)
	}
	if err := core.QueueWriteBuffer(a.queueID, buf, offset, data); err != nil {
		return fmt.Errorf("wgpu: write buffer: %w", err)
	}
	return nil
}

// ReadBuffer implements gpucore.GPUAdapter.
func (a *Adapter) ReadBuffer(id gpucore.BufferID, offset, size uint64) ([]byte, error) {
	a.mu.Lock()
	buf, ok := a.buffers[id]
	a.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("wgpu: unknown buffer %d", id)
	}
	data, err := core.QueueReadBuffer(a.queueID, buf, offset, size)
	if err != nil {
		return nil, fmt.Errorf("wgpu: read buffer: %w", err)
	}
	return data, nil
}

// Dispatch implements gpucore.GPUAdapter. It enqueues a compute pass on the
// device's single serialized command stream and returns without blocking.
func (a *Adapter) Dispatch(pipelineID gpucore.ComputePipelineID, bindGroupIDs []gpucore.BindGroupID, groupsX, groupsY, groupsZ uint32) error {
	a.mu.Lock()
	pipeline, ok := a.pipelines[pipelineID]
	if !ok {
		a.mu.Unlock()
		return fmt.Errorf("wgpu: unknown compute pipeline %d", pipelineID)
	}
	groups := make([]hal.BindGroup, len(bindGroupIDs))
	for i, gid := range bindGroupIDs {
		g, ok := a.bindGroups[gid]
		if !ok {
			a.mu.Unlock()
			return fmt.Errorf("wgpu: unknown bind group %d", gid)
		}
		groups[i] = g
	}
	a.mu.Unlock()

	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "photon-dispatch"})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	pass, err := encoder.BeginComputePass()
	if err != nil {
		return fmt.Errorf("wgpu: begin compute pass: %w", err)
	}
	pass.SetPipeline(pipeline)
	for i, g := range groups {
		pass.SetBindGroup(uint32(i), g)
	}
	pass.DispatchWorkgroups(groupsX, groupsY, groupsZ)
	if err := pass.End(); err != nil {
		return fmt.Errorf("wgpu: end compute pass: %w", err)
	}
	cmd, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("wgpu: finish command encoder: %w", err)
	}
	if err := core.QueueSubmit(a.queueID, cmd); err != nil {
		return fmt.Errorf("wgpu: queue submit: %w", err)
	}
	a.pending.Add(1)
	return nil
}

// Sync implements gpucore.GPUAdapter, blocking until all enqueued work
// completes.
func (a *Adapter) Sync() error {
	if err := core.QueuePoll(a.queueID, true); err != nil {
		return fmt.Errorf("wgpu: queue poll: %w", err)
	}
	a.pending.Store(0)
	return nil
}

// Close tears down every live shader module, compute pipeline, and
// bind group layout this adapter ever created, then releases the
// device and adapter themselves.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	res := native.GPUResources{Device: a.device}
	for _, p := range a.pipelines {
		res.Pipelines = append(res.Pipelines, p)
	}
	for _, l := range a.bindLayouts {
		res.BindLayouts = append(res.BindLayouts, l)
	}
	for _, m := range a.shaders {
		res.ShaderModules = append(res.ShaderModules, m)
	}
	res.Destroy()
	a.pipelines = nil
	a.bindLayouts = nil
	a.shaders = nil

	if err := releaseDevice(a.deviceID); err != nil {
		return err
	}
	return releaseAdapter(a.adapterID)
}

func halBufferUsage(u gpucore.BufferUsage) hal.BufferUsage {
	var out hal.BufferUsage
	if u&gpucore.BufferUsageMapRead != 0 {
		out |= hal.BufferUsageMapRead
	}
	if u&gpucore.BufferUsageMapWrite != 0 {
		out |= hal.BufferUsageMapWrite
	}
	if u&gpucore.BufferUsageCopySrc != 0 {
		out |= hal.BufferUsageCopySrc
	}
	if u&gpucore.BufferUsageCopyDst != 0 {
		out |= hal.BufferUsageCopyDst
	}
	if u&gpucore.BufferUsageStorage != 0 {
		out |= hal.BufferUsageStorage
	}
	if u&gpucore.BufferUsageUniform != 0 {
		out |= hal.BufferUsageUniform
	}
	if u&gpucore.BufferUsageIndirect != 0 {
		out |= hal.BufferUsageIndirect
	}
	return out
}

func halTextureFormat(f gpucore.TextureFormat) hal.TextureFormat {
	switch f {
	case gpucore.TextureFormatRGBA8Unorm:
		return hal.TextureFormatRGBA8Unorm
	case gpucore.TextureFormatRGBA8UnormSRGB:
		return hal.TextureFormatRGBA8UnormSRGB
	case gpucore.TextureFormatBGRA8Unorm:
		return hal.TextureFormatBGRA8Unorm
	case gpucore.TextureFormatBGRA8UnormSRGB:
		return hal.TextureFormatBGRA8UnormSRGB
	case gpucore.TextureFormatR8Unorm:
		return hal.TextureFormatR8Unorm
	case gpucore.TextureFormatR32Float:
		return hal.TextureFormatR32Float
	case gpucore.TextureFormatRG32Float:
		return hal.TextureFormatRG32Float
	case gpucore.TextureFormatRGBA32Float:
		return hal.TextureFormatRGBA32Float
	default:
		return hal.TextureFormatRGBA8Unorm
	}
}

func halTextureUsage(u gpucore.TextureUsage) hal.TextureUsage {
	var out hal.TextureUsage
	if u&gpucore.TextureUsageCopySrc != 0 {
		out |= hal.TextureUsageCopySrc
	}
	if u&gpucore.TextureUsageCopyDst != 0 {
		out |= hal.TextureUsageCopyDst
	}
	if u&gpucore.TextureUsageTextureBinding != 0 {
		out |= hal.TextureUsageTextureBinding
	}
	if u&gpucore.TextureUsageStorageBinding != 0 {
		out |= hal.TextureUsageStorageBinding
	}
	return out
}

func halBindingType(t gpucore.BindingType) hal.BindingType {
	switch t {
	case gpucore.BindingTypeUniformBuffer:
		return hal.BindingTypeUniformBuffer
	case gpucore.BindingTypeStorageBuffer:
		return hal.BindingTypeStorageBuffer
	case gpucore.BindingTypeReadOnlyStorageBuffer:
		return hal.BindingTypeReadOnlyStorageBuffer
	case gpucore.BindingTypeSampler:
		return hal.BindingTypeSampler
	case gpucore.BindingTypeSampledTexture:
		return hal.BindingTypeSampledTexture
	case gpucore.BindingTypeStorageTexture:
		return hal.BindingTypeStorageTexture
	default:
		return hal.BindingTypeStorageBuffer
	}
}
