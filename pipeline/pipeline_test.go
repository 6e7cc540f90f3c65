package pipeline

import (
	"sync/atomic"

	"github.com/gogpu/photon/gpucore"
)

// fakeAdapter is a minimal in-memory gpucore.GPUAdapter stand-in for
// tests: every Create* call hands out a monotonic id and records
// nothing else, since these tests only exercise the pipeline package's
// own bookkeeping, not real device behavior.
type fakeAdapter struct {
	next atomic.Uint64
}

func newFakeAdapter() *fakeAdapter { return &fakeAdapter{} }

func (a *fakeAdapter) id() uint64 { return a.next.Add(1) }

func (a *fakeAdapter) SupportsCompute() bool  { return true }
func (a *fakeAdapter) SupportsRayQuery() bool { return false }

func (a *fakeAdapter) CreateBuffer(desc gpucore.BufferDesc) (gpucore.BufferID, error) {
	return gpucore.BufferID(a.id()), nil
}
func (a *fakeAdapter) DestroyBuffer(id gpucore.BufferID) {}

func (a *fakeAdapter) CreateTexture(desc gpucore.TextureDesc) (gpucore.TextureID, error) {
	return gpucore.TextureID(a.id()), nil
}
func (a *fakeAdapter) DestroyTexture(id gpucore.TextureID) {}

func (a *fakeAdapter) CreateShaderModule(label string, spirv []uint32) (gpucore.ShaderModuleID, error) {
	return gpucore.ShaderModuleID(a.id()), nil
}
func (a *fakeAdapter) DestroyShaderModule(id gpucore.ShaderModuleID) {}

func (a *fakeAdapter) CreateComputePipeline(desc gpucore.ComputePipelineDesc) (gpucore.ComputePipelineID, error) {
	return gpucore.ComputePipelineID(a.id()), nil
}
func (a *fakeAdapter) DestroyComputePipeline(id gpucore.ComputePipelineID) {}

func (a *fakeAdapter) CreateBindGroupLayout(desc gpucore.BindGroupLayoutDesc) (gpucore.BindGroupLayoutID, error) {
	return gpucore.BindGroupLayoutID(a.id()), nil
}

func (a *fakeAdapter) CreateBindGroup(desc gpucore.BindGroupDesc) (gpucore.BindGroupID, error) {
	return gpucore.BindGroupID(a.id()), nil
}

func (a *fakeAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error { return nil }

func (a *fakeAdapter) ReadBuffer(id gpucore.BufferID, offset, size uint64) ([]byte, error) {
	return make([]byte, size), nil
}

func (a *fakeAdapter) Dispatch(pipeline gpucore.ComputePipelineID, bindGroups []gpucore.BindGroupID, groupsX, groupsY, groupsZ uint32) error {
	return nil
}

func (a *fakeAdapter) Sync() error { return nil }

var _ gpucore.GPUAdapter = (*fakeAdapter)(nil)
