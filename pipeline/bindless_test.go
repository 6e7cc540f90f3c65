package pipeline

import (
	"testing"

	"github.com/gogpu/photon/gpucore"
)

func TestBindlessTableMonotonicSlots(t *testing.T) {
	tbl := NewBindlessTable(4)

	s0, err := tbl.RegisterBuffer(gpucore.BufferID(1))
	if err != nil {
		t.Fatalf("RegisterBuffer: %v", err)
	}
	s1, err := tbl.RegisterBuffer(gpucore.BufferID(2))
	if err != nil {
		t.Fatalf("RegisterBuffer: %v", err)
	}
	if s0 != 0 || s1 != 1 {
		t.Fatalf("expected monotonic slots 0,1; got %d,%d", s0, s1)
	}

	id, ok := tbl.Buffer(s1)
	if !ok || id != gpucore.BufferID(2) {
		t.Fatalf("Buffer(%d) = %v, %v; want 2, true", s1, id, ok)
	}
}

func TestBindlessTableDisjointSpaces(t *testing.T) {
	tbl := NewBindlessTable(4)

	bufSlot, _ := tbl.RegisterBuffer(gpucore.BufferID(1))
	texSlot, _ := tbl.RegisterTexture2D(gpucore.TextureID(1))

	if bufSlot != 0 || texSlot != 0 {
		t.Fatalf("expected each resource space to start its own slot counter at 0, got buffer=%d texture2D=%d", bufSlot, texSlot)
	}
	if _, ok := tbl.Texture2D(bufSlot); !ok {
		t.Fatalf("expected texture slot 0 to resolve independently of buffer slot 0")
	}
}

func TestBindlessTableExhaustion(t *testing.T) {
	tbl := NewBindlessTable(2)
	if _, err := tbl.RegisterBuffer(gpucore.BufferID(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tbl.RegisterBuffer(gpucore.BufferID(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := tbl.RegisterBuffer(gpucore.BufferID(3))
	if err == nil {
		t.Fatalf("expected ResourceExhaustedError at capacity")
	}
	if _, ok := err.(*ResourceExhaustedError); !ok {
		t.Fatalf("expected *ResourceExhaustedError, got %T", err)
	}
}

func TestBindlessTableDefaultCapacity(t *testing.T) {
	tbl := NewBindlessTable(0)
	if tbl.Capacity() != DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultCapacity, tbl.Capacity())
	}
	if tbl.Capacity() < 500_000 {
		t.Fatalf("default capacity must be at least 500,000, got %d", tbl.Capacity())
	}
}
