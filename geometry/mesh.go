package geometry

import (
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/photon/gpucore"
	"github.com/gogpu/photon/pipeline"
)

// Vertex is one mesh vertex: position is always present; normal and uv
// are only meaningful when the corresponding property flag is set on
// the owning instance handle.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Triangle is a triplet of indices into a mesh's vertex buffer.
type Triangle struct {
	Indices [3]uint32
}

// MeshData is a mesh's host-side geometry plus the per-shape overrides
// and dispatch tags that end up packed into its instance handle.
type MeshData struct {
	Vertices []Vertex
	Triangles []Triangle

	HasVertexNormal bool
	HasVertexUV     bool

	SurfaceTag uint32
	LightTag   uint32
	MediumTag  uint32
	HasSurface bool
	HasLight   bool
	HasMedium  bool

	ShadowTerminatorFactor   float32
	IntersectionOffsetFactor float32
}

// triangleArea is the actual triangle area, used as the alias-table
// weight for uniform area sampling of mesh lights.
func triangleArea(m MeshData, tri Triangle) float64 {
	a := m.Vertices[tri.Indices[0]].Position
	b := m.Vertices[tri.Indices[1]].Position
	c := m.Vertices[tri.Indices[2]].Position
	e1 := [3]float64{float64(b[0] - a[0]), float64(b[1] - a[1]), float64(b[2] - a[2])}
	e2 := [3]float64{float64(c[0] - a[0]), float64(c[1] - a[1]), float64(c[2] - a[2])}
	cross := [3]float64{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	lenSq := cross[0]*cross[0] + cross[1]*cross[1] + cross[2]*cross[2]
	return 0.5 * math.Sqrt(lenSq)
}

// MeshRegistry uploads mesh geometry to the device and hands out the
// packed instance handle each mesh is addressed by. It is the one place
// that must guarantee a mesh's four bindless sub-buffers (vertex,
// triangle, alias table, pdf) land on contiguous slots: BindlessTable
// only guarantees monotonic allocation per call, so RegisterMesh holds
// its own lock across all four registrations.
type MeshRegistry struct {
	mu      sync.Mutex
	adapter gpucore.GPUAdapter
	table   *pipeline.BindlessTable
}

// NewMeshRegistry builds a registry that uploads mesh buffers through
// adapter and records their bindless slots in table.
func NewMeshRegistry(adapter gpucore.GPUAdapter, table *pipeline.BindlessTable) *MeshRegistry {
	return &MeshRegistry{adapter: adapter, table: table}
}

// RegisterMesh uploads a mesh's vertex, triangle, alias-table, and pdf
// buffers and returns its instance handle. Each mesh buffer is given
// its own dedicated device buffer (rather than suballocated from a
// BufferArena block) because the bindless table indexes whole buffers,
// not byte ranges within one.
func (r *MeshRegistry) RegisterMesh(mesh MeshData) (Handle, error) {
	if len(mesh.Vertices) == 0 || len(mesh.Triangles) == 0 {
		return Handle{}, fmt.Errorf("geometry: mesh has no vertices or triangles")
	}

	weights := make([]float64, len(mesh.Triangles))
	for i, tri := range mesh.Triangles {
		weights[i] = triangleArea(mesh, tri)
	}
	aliasTable, pdf := BuildAliasTable(weights)

	vertexBytes := encodeVertices(mesh.Vertices)
	triangleBytes := encodeTriangles(mesh.Triangles)
	aliasBytes := encodeAliasTable(aliasTable)
	pdfBytes := encodePDF(pdf)

	r.mu.Lock()
	defer r.mu.Unlock()

	base, err := r.registerContiguous(vertexBytes, triangleBytes, aliasBytes, pdfBytes)
	if err != nil {
		return Handle{}, err
	}

	flags := uint32(0)
	if mesh.HasVertexNormal {
		flags |= PropertyHasVertexNormal
	}
	if mesh.HasVertexUV {
		flags |= PropertyHasVertexUV
	}
	if mesh.HasSurface {
		flags |= PropertyHasSurface
	}
	if mesh.HasLight {
		flags |= PropertyHasLight
	}
	if mesh.HasMedium {
		flags |= PropertyHasMedium
	}

	return Handle{
		BufferBase:               base,
		Flags:                    flags,
		SurfaceTag:               mesh.SurfaceTag,
		LightTag:                 mesh.LightTag,
		MediumTag:                mesh.MediumTag,
		TriangleCount:            uint32(len(mesh.Triangles)),
		ShadowTerminatorFactor:   clamp01(mesh.ShadowTerminatorFactor),
		IntersectionOffsetFactor: clamp01(mesh.IntersectionOffsetFactor),
	}, nil
}

func (r *MeshRegistry) registerContiguous(vertexBytes, triangleBytes, aliasBytes, pdfBytes []byte) (uint32, error) {
	buffers := [MeshSubBufferCount][]byte{vertexBytes, triangleBytes, aliasBytes, pdfBytes}
	labels := [MeshSubBufferCount]string{"mesh-vertices", "mesh-triangles", "mesh-alias-table", "mesh-pdf"}

	var base uint32
	for i, data := range buffers {
		id, err := r.adapter.CreateBuffer(gpucore.BufferDesc{
			Label: labels[i],
			Size:  uint64(len(data)),
			Usage: gpucore.BufferUsageStorage | gpucore.BufferUsageCopyDst,
		})
		if err != nil {
			return 0, fmt.Errorf("geometry: create %s buffer: %w", labels[i], err)
		}
		if err := r.adapter.WriteBuffer(id, 0, data); err != nil {
			return 0, fmt.Errorf("geometry: upload %s buffer: %w", labels[i], err)
		}
		slot, err := r.table.RegisterBuffer(id)
		if err != nil {
			return 0, fmt.Errorf("geometry: register %s buffer: %w", labels[i], err)
		}
		if i == 0 {
			base = uint32(slot)
		} else if uint32(slot) != base+uint32(i) {
			return 0, fmt.Errorf("geometry: mesh sub-buffers were not assigned contiguous bindless slots (expected %d, got %d) — a concurrent registration raced the bindless table", base+uint32(i), slot)
		}
	}
	return base, nil
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
