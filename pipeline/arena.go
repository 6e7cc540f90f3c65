package pipeline

import (
	"fmt"
	"sync"

	"github.com/gogpu/photon/gpucore"
)

// arenaAlignment is the byte alignment every sub-allocation is rounded
// up to, matching typical storage-buffer offset alignment requirements
// on GPU backends.
const arenaAlignment = 256

// Allocation is a sub-buffer carved out of one of a BufferArena's
// backing device buffers.
type Allocation struct {
	Buffer gpucore.BufferID
	Offset uint64
	Size   uint64
}

// BufferArena suballocates small typed buffers from a handful of large
// preallocated device buffers, instead of issuing one device buffer
// per scene object. When the current block has no room left for a
// request, the arena allocates a fresh block and continues from there;
// a single request larger than the arena's block size gets its own
// dedicated buffer rather than forcing every future block to be that
// large.
//
// BufferArena is safe for concurrent use.
type BufferArena struct {
	adapter   gpucore.GPUAdapter
	blockSize uint64
	usage     gpucore.BufferUsage
	label     string

	mu             sync.Mutex
	current        gpucore.BufferID
	currentOffset  uint64
	currentCap     uint64
	blockCount     int
	dedicatedCount int
}

// NewBufferArena constructs an arena that allocates blockSize-byte
// backing buffers from adapter on demand, each created with usage.
func NewBufferArena(adapter gpucore.GPUAdapter, blockSize uint64, usage gpucore.BufferUsage, label string) *BufferArena {
	return &BufferArena{adapter: adapter, blockSize: blockSize, usage: usage, label: label}
}

// Alloc reserves size bytes, returning the backing buffer and the
// offset within it. size is rounded up to arenaAlignment.
func (a *BufferArena) Alloc(size uint64) (Allocation, error) {
	if size == 0 {
		return Allocation{}, fmt.Errorf("pipeline: zero-size arena allocation")
	}
	aligned := alignUp(size, arenaAlignment)

	a.mu.Lock()
	defer a.mu.Unlock()

	if aligned > a.blockSize {
		id, err := a.adapter.CreateBuffer(gpucore.BufferDesc{
			Label: fmt.Sprintf("%s-dedicated-%d", a.label, a.dedicatedCount),
			Size:  aligned,
			Usage: a.usage,
		})
		if err != nil {
			return Allocation{}, err
		}
		a.dedicatedCount++
		return Allocation{Buffer: id, Offset: 0, Size: size}, nil
	}

	if a.current == 0 || a.currentCap-a.currentOffset < aligned {
		id, err := a.adapter.CreateBuffer(gpucore.BufferDesc{
			Label: fmt.Sprintf("%s-block-%d", a.label, a.blockCount),
			Size:  a.blockSize,
			Usage: a.usage,
		})
		if err != nil {
			return Allocation{}, err
		}
		a.current = id
		a.currentOffset = 0
		a.currentCap = a.blockSize
		a.blockCount++
	}

	alloc := Allocation{Buffer: a.current, Offset: a.currentOffset, Size: size}
	a.currentOffset += aligned
	return alloc, nil
}

// BlockCount reports how many block-sized backing buffers have been
// allocated so far (excluding oversized dedicated allocations).
func (a *BufferArena) BlockCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.blockCount
}

// DedicatedCount reports how many oversized requests fell back to a
// dedicated buffer instead of a shared block.
func (a *BufferArena) DedicatedCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dedicatedCount
}

func alignUp(size, align uint64) uint64 {
	return (size + align - 1) / align * align
}
