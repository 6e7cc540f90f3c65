package geometry

import (
	"testing"

	"github.com/gogpu/photon/pipeline"
)

func TestMeshRegistryAssignsContiguousSubBuffers(t *testing.T) {
	adapter := newFakeAdapter()
	table := pipeline.NewBindlessTable(64)
	reg := NewMeshRegistry(adapter, table)

	handle, err := reg.RegisterMesh(cubeMesh())
	if err != nil {
		t.Fatalf("RegisterMesh: %v", err)
	}

	if handle.VertexBufferID() != handle.BufferBase {
		t.Fatalf("expected vertex buffer at base, got %d vs base %d", handle.VertexBufferID(), handle.BufferBase)
	}
	if handle.TriangleBufferID() != handle.BufferBase+1 {
		t.Fatalf("expected triangle buffer at base+1, got %d", handle.TriangleBufferID())
	}
	if handle.AliasTableBufferID() != handle.BufferBase+2 {
		t.Fatalf("expected alias table buffer at base+2, got %d", handle.AliasTableBufferID())
	}
	if handle.PDFBufferID() != handle.BufferBase+3 {
		t.Fatalf("expected pdf buffer at base+3, got %d", handle.PDFBufferID())
	}
	if table.BufferCount() != 4 {
		t.Fatalf("expected 4 bindless buffer registrations, got %d", table.BufferCount())
	}
}

func TestMeshRegistryPacksTriangleCountAndTags(t *testing.T) {
	adapter := newFakeAdapter()
	table := pipeline.NewBindlessTable(64)
	reg := NewMeshRegistry(adapter, table)

	mesh := cubeMesh()
	handle, err := reg.RegisterMesh(mesh)
	if err != nil {
		t.Fatalf("RegisterMesh: %v", err)
	}

	if handle.TriangleCount != uint32(len(mesh.Triangles)) {
		t.Fatalf("TriangleCount = %d, want %d", handle.TriangleCount, len(mesh.Triangles))
	}
	if !handle.HasFlag(PropertyHasSurface) {
		t.Fatalf("expected PropertyHasSurface flag set")
	}
	if handle.SurfaceTag != mesh.SurfaceTag {
		t.Fatalf("SurfaceTag = %d, want %d", handle.SurfaceTag, mesh.SurfaceTag)
	}
}

func TestMeshRegistryRejectsEmptyMesh(t *testing.T) {
	adapter := newFakeAdapter()
	table := pipeline.NewBindlessTable(64)
	reg := NewMeshRegistry(adapter, table)

	if _, err := reg.RegisterMesh(MeshData{}); err == nil {
		t.Fatalf("expected an error for a mesh with no vertices or triangles")
	}
}

func TestMeshRegistryTwoMeshesGetDisjointBases(t *testing.T) {
	adapter := newFakeAdapter()
	table := pipeline.NewBindlessTable(64)
	reg := NewMeshRegistry(adapter, table)

	h1, err := reg.RegisterMesh(cubeMesh())
	if err != nil {
		t.Fatalf("RegisterMesh 1: %v", err)
	}
	h2, err := reg.RegisterMesh(cubeMesh())
	if err != nil {
		t.Fatalf("RegisterMesh 2: %v", err)
	}
	if h2.BufferBase != h1.BufferBase+MeshSubBufferCount {
		t.Fatalf("expected second mesh to start right after the first's 4 slots: %d vs %d", h2.BufferBase, h1.BufferBase)
	}
}
