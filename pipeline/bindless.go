package pipeline

import (
	"sync"

	"github.com/gogpu/photon/gpucore"
)

// DefaultCapacity is the minimum per-space slot count spec.md §4.4
// requires ("≥500 000"). Each of the three resource spaces gets its
// own counter at this capacity; a scene that needs more of one kind
// than another never starves the others, since the spaces are
// disjoint rather than sharing one flat budget.
const DefaultCapacity = 500_000

// SlotID is a bindless-table slot index. It is only unique within the
// resource space it was allocated from — a BufferSlot and a
// Texture2DSlot with the same numeric value name different resources.
type SlotID uint32

// BindlessTable hands out monotonically increasing slot indices across
// three disjoint resource spaces — buffers, 2D textures, 3D textures —
// with no free list: a scene's resource set is built once and lives
// until the Pipeline tears down, so slot reuse is never needed.
//
// BindlessTable is safe for concurrent use; the scene walk that
// populates it (C1 → C4 in spec.md §3's data-flow line) may register
// resources from multiple goroutines.
type BindlessTable struct {
	mu sync.Mutex

	capacity int

	buffers    []gpucore.BufferID
	textures2D []gpucore.TextureID
	textures3D []gpucore.TextureID
}

// NewBindlessTable constructs a table with capacity slots in each of
// the three resource spaces. A capacity of 0 uses DefaultCapacity.
func NewBindlessTable(capacity int) *BindlessTable {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &BindlessTable{capacity: capacity}
}

// Capacity returns the per-space slot capacity.
func (t *BindlessTable) Capacity() int { return t.capacity }

// RegisterBuffer assigns the next buffer slot to id.
func (t *BindlessTable) RegisterBuffer(id gpucore.BufferID) (SlotID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.buffers) >= t.capacity {
		return 0, &ResourceExhaustedError{Kind: "bindless buffer table", Capacity: t.capacity}
	}
	slot := SlotID(len(t.buffers))
	t.buffers = append(t.buffers, id)
	return slot, nil
}

// RegisterTexture2D assigns the next 2D-texture slot to id.
func (t *BindlessTable) RegisterTexture2D(id gpucore.TextureID) (SlotID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.textures2D) >= t.capacity {
		return 0, &ResourceExhaustedError{Kind: "bindless 2D texture table", Capacity: t.capacity}
	}
	slot := SlotID(len(t.textures2D))
	t.textures2D = append(t.textures2D, id)
	return slot, nil
}

// RegisterTexture3D assigns the next 3D-texture slot to id.
func (t *BindlessTable) RegisterTexture3D(id gpucore.TextureID) (SlotID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.textures3D) >= t.capacity {
		return 0, &ResourceExhaustedError{Kind: "bindless 3D texture table", Capacity: t.capacity}
	}
	slot := SlotID(len(t.textures3D))
	t.textures3D = append(t.textures3D, id)
	return slot, nil
}

// Buffer resolves a buffer slot back to its device handle.
func (t *BindlessTable) Buffer(slot SlotID) (gpucore.BufferID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(slot) >= len(t.buffers) {
		return 0, false
	}
	return t.buffers[slot], true
}

// Texture2D resolves a 2D-texture slot back to its device handle.
func (t *BindlessTable) Texture2D(slot SlotID) (gpucore.TextureID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(slot) >= len(t.textures2D) {
		return 0, false
	}
	return t.textures2D[slot], true
}

// Texture3D resolves a 3D-texture slot back to its device handle.
func (t *BindlessTable) Texture3D(slot SlotID) (gpucore.TextureID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(slot) >= len(t.textures3D) {
		return 0, false
	}
	return t.textures3D[slot], true
}

// BufferCount, Texture2DCount, and Texture3DCount report how many
// slots are currently in use in each space.
func (t *BindlessTable) BufferCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buffers)
}

func (t *BindlessTable) Texture2DCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.textures2D)
}

func (t *BindlessTable) Texture3DCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.textures3D)
}
