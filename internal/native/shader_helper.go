package native

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// CompileShaderToSPIRV lowers WGSL source — the assembled megakernel
// body, with internal/dispatch's generated tag-switch fragments spliced
// in — to a SPIR-V word stream, the form gpucore.GPUAdapter.
// CreateShaderModule expects. pipeline.CompileKernel is the real call
// site: it feeds the result straight into CreateShaderModule and then
// CreateComputePipeline, so KernelRegistry only ever pays this cost
// once per distinct kernel name.
func CompileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}

// CreateShaderModule creates a HAL shader module from SPIR-V code. It
// is the device-specific half of backend/wgpu.Adapter.CreateShaderModule
// — gpucore only ever hands callers an opaque ShaderModuleID, but this
// package still has to talk to the real hal.Device to mint one.
func CreateShaderModule(device hal.Device, label string, spirvCode []uint32) (hal.ShaderModule, error) {
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirvCode,
		},
	})
}

// GPUResources bundles the live shader modules, compute pipelines, and
// bind group layouts one backend/wgpu.Adapter accumulates over a
// render's lifetime, so Adapter.Close can tear all of them down before
// dropping the device and adapter themselves — the device driver won't
// reliably free resources it still sees referenced.
type GPUResources struct {
	Device        hal.Device
	ShaderModules []hal.ShaderModule
	BindLayouts   []hal.BindGroupLayout
	Pipelines     []hal.ComputePipeline
}

// Destroy releases every resource in r, in dependency order: compute
// pipelines first (they reference shader modules and bind layouts),
// then bind group layouts, then shader modules. A nil Device means
// there is nothing to release.
func (r *GPUResources) Destroy() {
	if r.Device == nil {
		return
	}

	for _, p := range r.Pipelines {
		if p != nil {
			r.Device.DestroyComputePipeline(p)
		}
	}

	for _, l := range r.BindLayouts {
		if l != nil {
			r.Device.DestroyBindGroupLayout(l)
		}
	}

	for _, m := range r.ShaderModules {
		if m != nil {
			r.Device.DestroyShaderModule(m)
		}
	}
}
