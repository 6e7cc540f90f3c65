package geometry

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/photon/gpucore"
)

// fakeAdapter is a minimal in-memory gpucore.GPUAdapter stand-in: it
// hands out monotonic buffer ids and records every WriteBuffer payload
// so tests can assert on what geometry uploaded without a real device.
type fakeAdapter struct {
	next    atomic.Uint64
	mu      sync.Mutex
	written map[gpucore.BufferID][]byte
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{written: make(map[gpucore.BufferID][]byte)}
}

func (a *fakeAdapter) SupportsCompute() bool  { return true }
func (a *fakeAdapter) SupportsRayQuery() bool { return false }

func (a *fakeAdapter) CreateBuffer(desc gpucore.BufferDesc) (gpucore.BufferID, error) {
	return gpucore.BufferID(a.next.Add(1)), nil
}
func (a *fakeAdapter) DestroyBuffer(id gpucore.BufferID) {}

func (a *fakeAdapter) CreateTexture(desc gpucore.TextureDesc) (gpucore.TextureID, error) {
	return gpucore.TextureID(a.next.Add(1)), nil
}
func (a *fakeAdapter) DestroyTexture(id gpucore.TextureID) {}

func (a *fakeAdapter) CreateShaderModule(label string, spirv []uint32) (gpucore.ShaderModuleID, error) {
	return gpucore.ShaderModuleID(a.next.Add(1)), nil
}
func (a *fakeAdapter) DestroyShaderModule(id gpucore.ShaderModuleID) {}

func (a *fakeAdapter) CreateComputePipeline(desc gpucore.ComputePipelineDesc) (gpucore.ComputePipelineID, error) {
	return gpucore.ComputePipelineID(a.next.Add(1)), nil
}
func (a *fakeAdapter) DestroyComputePipeline(id gpucore.ComputePipelineID) {}

func (a *fakeAdapter) CreateBindGroupLayout(desc gpucore.BindGroupLayoutDesc) (gpucore.BindGroupLayoutID, error) {
	return gpucore.BindGroupLayoutID(a.next.Add(1)), nil
}

func (a *fakeAdapter) CreateBindGroup(desc gpucore.BindGroupDesc) (gpucore.BindGroupID, error) {
	return gpucore.BindGroupID(a.next.Add(1)), nil
}

func (a *fakeAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	buf := a.written[id]
	end := int(offset) + len(data)
	if end > len(buf) {
		grown := make([]byte, end)
		copy(grown, buf)
		buf = grown
	}
	copy(buf[offset:], data)
	a.written[id] = buf
	return nil
}

func (a *fakeAdapter) ReadBuffer(id gpucore.BufferID, offset, size uint64) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	buf := a.written[id]
	out := make([]byte, size)
	copy(out, buf[offset:])
	return out, nil
}

func (a *fakeAdapter) Dispatch(pipeline gpucore.ComputePipelineID, bindGroups []gpucore.BindGroupID, groupsX, groupsY, groupsZ uint32) error {
	return nil
}

func (a *fakeAdapter) Sync() error { return nil }

var _ gpucore.GPUAdapter = (*fakeAdapter)(nil)

func cubeMesh() MeshData {
	v := func(x, y, z float32) Vertex { return Vertex{Position: [3]float32{x, y, z}} }
	vertices := []Vertex{
		v(0, 0, 0), v(1, 0, 0), v(1, 1, 0), v(0, 1, 0),
	}
	triangles := []Triangle{
		{Indices: [3]uint32{0, 1, 2}},
		{Indices: [3]uint32{0, 2, 3}},
	}
	return MeshData{Vertices: vertices, Triangles: triangles, HasSurface: true, SurfaceTag: 3}
}
