package wgpu

import (
	"github.com/gogpu/photon/backend"
	"github.com/gogpu/photon/gpucore"
)

// Backend is the backend.ComputeBackend wrapping a real wgpu device.
type Backend struct {
	adapter *Adapter
}

// init registers the wgpu backend on package import, matching the
// software backend's registration pattern.
func init() {
	backend.Register(backend.BackendWGPU, func() backend.ComputeBackend {
		return &Backend{}
	})
}

// Name implements backend.ComputeBackend.
func (b *Backend) Name() string { return backend.BackendWGPU }

// Init implements backend.ComputeBackend, opening the deviceIndex'th
// enumerated adapter, or the instance's own pick when deviceIndex is
// negative.
func (b *Backend) Init(deviceIndex int) error {
	adapter, err := Open(deviceIndex)
	if err != nil {
		return err
	}
	b.adapter = adapter
	return nil
}

// Close implements backend.ComputeBackend.
func (b *Backend) Close() {
	if b.adapter != nil {
		_ = b.adapter.Close()
		b.adapter = nil
	}
}

// Adapter implements backend.ComputeBackend.
func (b *Backend) Adapter() gpucore.GPUAdapter {
	if b.adapter == nil {
		return nil
	}
	return b.adapter
}
