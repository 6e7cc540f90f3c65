// Package backend provides a pluggable compute backend abstraction.
//
// The backend package lets the pipeline run against either a real GPU
// device or a CPU fallback without the rest of the module knowing which
// one is active; both expose a gpucore.GPUAdapter.
//
// # Backend registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend registers itself on import of this package; the
// wgpu backend registers itself on import of backend/wgpu:
//
//	import _ "github.com/gogpu/photon/backend/wgpu"
//
// # Backend selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	b := backend.Default()
//	if err := b.Init(deviceIndex); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	adapter := b.Adapter()
//
// # Available backends
//
//   - "wgpu": real GPU device via github.com/gogpu/wgpu (priority default)
//   - "software": CPU fallback, buffers as plain byte slices, kernels
//     resolved to registered Go functions by entry point name
package backend
