package pipeline

import (
	"fmt"

	"github.com/gogpu/photon/gpucore"
	"github.com/gogpu/photon/internal/native"
)

// CompileKernel lowers generated WGSL (the megakernel body, or one of
// internal/dispatch's tag-switch fragments spliced into it) to SPIR-V
// via internal/native.CompileShaderToSPIRV, then asks adapter to turn
// that into a shader module and a dispatchable compute pipeline around
// entryPoint. It is the "build" closure a caller passes to
// KernelRegistry.GetOrCompileKernel, so a name already present in the
// registry never re-runs naga.Compile.
func CompileKernel(adapter gpucore.GPUAdapter, label, wgslSource, entryPoint string, layout gpucore.PipelineLayoutID) (gpucore.ComputePipelineID, error) {
	spirv, err := native.CompileShaderToSPIRV(wgslSource)
	if err != nil {
		return 0, fmt.Errorf("pipeline: compile kernel %q: %w", label, err)
	}

	module, err := adapter.CreateShaderModule(label, spirv)
	if err != nil {
		return 0, fmt.Errorf("pipeline: create shader module %q: %w", label, err)
	}

	return adapter.CreateComputePipeline(gpucore.ComputePipelineDesc{
		Label:        label,
		Layout:       layout,
		ShaderModule: module,
		EntryPoint:   entryPoint,
	})
}
