package backend

import (
	"errors"

	"github.com/gogpu/photon/gpucore"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// ComputeBackend is the interface for compute backends that can execute
// generated kernels. It abstracts over a specific device API, allowing
// the pipeline to support both a real GPU (via wgpu) and a software
// fallback for development and testing without a device.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type ComputeBackend interface {
	// Name returns the backend identifier (e.g., "wgpu", "software").
	Name() string

	// Init selects deviceIndex and brings the backend up. deviceIndex is
	// ignored by backends that have no notion of multiple devices (the
	// software backend).
	Init(deviceIndex int) error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Adapter returns the gpucore.GPUAdapter this backend exposes to the
	// pipeline's bindless table and kernel registry. Returns nil before
	// Init succeeds.
	Adapter() gpucore.GPUAdapter
}
