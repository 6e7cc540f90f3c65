package pipeline

import (
	"testing"

	"github.com/gogpu/photon/gpucore"
)

func TestBufferArenaSharesBlockAcrossSmallAllocs(t *testing.T) {
	adapter := newFakeAdapter()
	arena := NewBufferArena(adapter, 4096, gpucore.BufferUsageStorage, "geometry")

	a1, err := arena.Alloc(64)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	a2, err := arena.Alloc(128)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}

	if a1.Buffer != a2.Buffer {
		t.Fatalf("expected two small allocations to share one backing block")
	}
	if a2.Offset <= a1.Offset {
		t.Fatalf("expected second allocation to land after the first: %d vs %d", a2.Offset, a1.Offset)
	}
	if arena.BlockCount() != 1 {
		t.Fatalf("expected exactly one backing block, got %d", arena.BlockCount())
	}
}

func TestBufferArenaRefillsOnExhaustion(t *testing.T) {
	adapter := newFakeAdapter()
	arena := NewBufferArena(adapter, 256, gpucore.BufferUsageStorage, "geometry")

	a1, err := arena.Alloc(200)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	a2, err := arena.Alloc(200)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}

	if a1.Buffer == a2.Buffer {
		t.Fatalf("expected the arena to refill into a new block once the first is full")
	}
	if arena.BlockCount() != 2 {
		t.Fatalf("expected 2 backing blocks after refill, got %d", arena.BlockCount())
	}
}

func TestBufferArenaOversizedRequestGetsDedicatedBuffer(t *testing.T) {
	adapter := newFakeAdapter()
	arena := NewBufferArena(adapter, 256, gpucore.BufferUsageStorage, "geometry")

	big, err := arena.Alloc(4096)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if big.Offset != 0 {
		t.Fatalf("expected a dedicated buffer to start at offset 0, got %d", big.Offset)
	}
	if arena.DedicatedCount() != 1 {
		t.Fatalf("expected 1 dedicated allocation, got %d", arena.DedicatedCount())
	}
	if arena.BlockCount() != 0 {
		t.Fatalf("expected the oversized request not to consume a normal block, got %d", arena.BlockCount())
	}

	small, err := arena.Alloc(64)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if small.Buffer == big.Buffer {
		t.Fatalf("expected a subsequent small allocation to go to its own block, not the dedicated buffer")
	}
	if arena.BlockCount() != 1 {
		t.Fatalf("expected the small allocation to open a normal block, got %d", arena.BlockCount())
	}
}

func TestBufferArenaAlignsOffsets(t *testing.T) {
	adapter := newFakeAdapter()
	arena := NewBufferArena(adapter, 4096, gpucore.BufferUsageStorage, "geometry")

	a1, _ := arena.Alloc(1)
	a2, _ := arena.Alloc(1)

	if a2.Offset%arenaAlignment != 0 {
		t.Fatalf("expected sub-allocations to start on an %d-byte boundary, got offset %d", arenaAlignment, a2.Offset)
	}
	if a2.Offset-a1.Offset < arenaAlignment {
		t.Fatalf("expected at least one alignment quantum between allocations, got %d", a2.Offset-a1.Offset)
	}
}
