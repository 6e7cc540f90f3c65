package geometry

import (
	"fmt"
	"sync"

	"github.com/gogpu/photon/gpucore"
)

// Instance pairs a mesh's instance handle with the transform it is
// placed under.
type Instance struct {
	Handle    Handle
	Transform TransformID
}

const instanceRecordBytes = 4*4 + 4 // the 4 handle words plus the transform id

// TopLevelAccel is the scene's top-level acceleration structure: the
// flat instance-record buffer the megakernel's ray-query intrinsics
// walk, plus the transform table those records reference. It is built
// once from the flattened shape tree and refit — never rebuilt — every
// frame as transforms move.
type TopLevelAccel struct {
	mu         sync.Mutex
	adapter    gpucore.GPUAdapter
	transforms *TransformTable
	instances  []Instance
	buffer     gpucore.BufferID
	built      bool
	generation uint64
}

// NewTopLevelAccel creates an empty accel structure over transforms.
func NewTopLevelAccel(adapter gpucore.GPUAdapter, transforms *TransformTable) *TopLevelAccel {
	return &TopLevelAccel{adapter: adapter, transforms: transforms}
}

// AddInstance appends a mesh instance. Must be called before Build.
func (a *TopLevelAccel) AddInstance(inst Instance) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.instances = append(a.instances, inst)
}

// InstanceCount reports how many instances the structure holds.
func (a *TopLevelAccel) InstanceCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.instances)
}

// BufferID is the device buffer backing the instance-record list, for
// registration into the bindless table.
func (a *TopLevelAccel) BufferID() gpucore.BufferID { return a.buffer }

// Generation counts how many times Update has refit the structure;
// tests and callers that need to observe a refit without re-reading
// the whole transform buffer can poll this instead.
func (a *TopLevelAccel) Generation() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generation
}

// Build allocates the instance-record buffer and uploads every
// instance's handle and transform id once. It must run after all
// AddInstance calls and before the first Update.
func (a *TopLevelAccel) Build() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.built {
		return fmt.Errorf("geometry: accel structure already built")
	}
	if len(a.instances) == 0 {
		a.built = true
		return nil
	}

	buf, err := a.adapter.CreateBuffer(gpucore.BufferDesc{
		Label: "tlas-instances",
		Size:  uint64(len(a.instances)) * instanceRecordBytes,
		Usage: gpucore.BufferUsageStorage | gpucore.BufferUsageCopyDst | gpucore.BufferUsageAccelStructure,
	})
	if err != nil {
		return fmt.Errorf("geometry: create accel instance buffer: %w", err)
	}
	a.buffer = buf

	data := make([]byte, len(a.instances)*instanceRecordBytes)
	for i, inst := range a.instances {
		words := inst.Handle.Encode()
		o := i * instanceRecordBytes
		for w := 0; w < 4; w++ {
			putUint32(data, o+w*4, words[w])
		}
		putUint32(data, o+16, uint32(inst.Transform))
	}
	if err := a.adapter.WriteBuffer(a.buffer, 0, data); err != nil {
		return fmt.Errorf("geometry: upload accel instance buffer: %w", err)
	}
	a.built = true
	return nil
}

// Update advances the scene to shutter time t: it rewrites every
// time-varying transform's row in the transform table and bumps the
// refit generation. The instance-record buffer itself is untouched,
// since instance-to-transform bindings never change after Build —
// only the matrices a transform id resolves to move.
func (a *TopLevelAccel) Update(t float64) error {
	if err := a.transforms.Update(t); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.generation++
	return nil
}

func putUint32(out []byte, offset int, v uint32) {
	out[offset] = byte(v)
	out[offset+1] = byte(v >> 8)
	out[offset+2] = byte(v >> 16)
	out[offset+3] = byte(v >> 24)
}
