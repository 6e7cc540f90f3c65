package geometry

import (
	"fmt"
	"sync"

	"github.com/gogpu/photon/gpucore"
)

// Mat4 is a column-major 4x4 matrix, stored the way the generated WGSL
// reads it directly out of the transform buffer.
type Mat4 [16]float32

// Identity4 is the identity transform.
var Identity4 = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Transform holds either a fixed matrix or a time-varying one. A nil
// TimeFunc means the transform is static and At always returns Static.
type Transform struct {
	Static   Mat4
	TimeFunc func(t float64) Mat4
}

// At evaluates the transform at time t.
func (tr Transform) At(t float64) Mat4 {
	if tr.TimeFunc != nil {
		return tr.TimeFunc(t)
	}
	return tr.Static
}

// TransformID indexes a transform's row in the scene-wide transform
// table.
type TransformID uint32

// TransformTable owns a single flat float4x4 device buffer indexed by
// TransformID, matching spec.md's description of the transform tree's
// backing store. Transforms are registered once at scene build time;
// Update re-evaluates every time-varying transform for a new shutter
// time and rewrites only the matrices that changed.
type TransformTable struct {
	mu         sync.Mutex
	adapter    gpucore.GPUAdapter
	capacity   int
	buffer     gpucore.BufferID
	transforms []Transform
	dirty      []bool
}

const mat4Bytes = 16 * 4

// NewTransformTable allocates a transform buffer sized for up to
// capacity transforms.
func NewTransformTable(adapter gpucore.GPUAdapter, capacity int) (*TransformTable, error) {
	if capacity <= 0 {
		capacity = 1
	}
	buf, err := adapter.CreateBuffer(gpucore.BufferDesc{
		Label: "transform-table",
		Size:  uint64(capacity) * mat4Bytes,
		Usage: gpucore.BufferUsageStorage | gpucore.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("geometry: create transform table buffer: %w", err)
	}
	return &TransformTable{adapter: adapter, capacity: capacity, buffer: buf}, nil
}

// BufferID is the device buffer backing the table, for registration
// into the bindless table by the caller that owns the pipeline-wide
// resource set.
func (tt *TransformTable) BufferID() gpucore.BufferID { return tt.buffer }

// Add registers a transform and returns its stable ID. The initial
// matrix (evaluated at t=0) is uploaded immediately.
func (tt *TransformTable) Add(tr Transform) (TransformID, error) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	if len(tt.transforms) >= tt.capacity {
		return 0, fmt.Errorf("geometry: transform table capacity %d exhausted", tt.capacity)
	}
	id := TransformID(len(tt.transforms))
	tt.transforms = append(tt.transforms, tr)
	tt.dirty = append(tt.dirty, true)
	if err := tt.writeRow(id, tr.At(0)); err != nil {
		return 0, err
	}
	return id, nil
}

// Update re-evaluates every time-varying transform at time t and
// rewrites its row in the device buffer. Transforms with a nil
// TimeFunc are skipped, since their matrix never changes after Add —
// this is the "refit, not rebuild" update spec.md's transform tree
// describes.
func (tt *TransformTable) Update(t float64) error {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	for i, tr := range tt.transforms {
		if tr.TimeFunc == nil {
			continue
		}
		if err := tt.writeRow(TransformID(i), tr.At(t)); err != nil {
			return err
		}
	}
	return nil
}

func (tt *TransformTable) writeRow(id TransformID, m Mat4) error {
	data := make([]byte, mat4Bytes)
	for i, f := range m {
		putFloat32(data, i*4, f)
	}
	return tt.adapter.WriteBuffer(tt.buffer, uint64(id)*mat4Bytes, data)
}

// Len returns the number of registered transforms.
func (tt *TransformTable) Len() int {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	return len(tt.transforms)
}
