package light

import (
	"fmt"
	"math"

	"github.com/gogpu/photon/geometry"
	"github.com/gogpu/photon/internal/sceneprops"
	"github.com/gogpu/photon/scenedesc"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

// DiffuseAreaLight is grounded on lights/diffuse_area.cpp: a uniform
// emitter over a shape's surface, optionally two-sided, with 3
// sampling dimensions in the original (one to pick a triangle via the
// alias/cdf table, two for barycentric coordinates within it).
type DiffuseAreaLight struct {
	Mesh       *geometry.MeshData
	Emission   [3]float64
	TwoSided   bool
	aliasTable []geometry.AliasEntry
	pdf        []float64
	area       []float64
	totalArea  float64
}

func newDiffuseAreaFromNode(node *scenedesc.Node) (Instance, error) {
	shapeRef, ok := sceneprops.NodeRef(node, "shape")
	if !ok {
		return nil, fmt.Errorf("light DiffuseArea: missing required property \"shape\"")
	}
	mesh, err := meshFromShapeNode(shapeRef)
	if err != nil {
		return nil, err
	}

	weights := make([]float64, len(mesh.Triangles))
	for i, tri := range mesh.Triangles {
		weights[i] = triangleAreaOf(mesh, tri)
	}
	aliasTable, pdf := geometry.BuildAliasTable(weights)

	total := 0.0
	for _, w := range weights {
		total += w
	}

	return &DiffuseAreaLight{
		Mesh:       mesh,
		Emission:   sceneprops.RGB(node, "emission", [3]float64{1, 1, 1}),
		TwoSided:   sceneprops.Bool(node, "two_sided", false),
		aliasTable: aliasTable,
		pdf:        pdf,
		area:       weights,
		totalArea:  total,
	}, nil
}

// meshFromShapeNode builds a triangle mesh directly from "positions"
// (a flat x,y,z,... number list) and "indices" (a flat i0,i1,i2,...
// number list) properties on a shape node — the inline triangle-mesh
// description a scene file's Shape block carries when it does not
// reference an external mesh file.
func meshFromShapeNode(node *scenedesc.Node) (*geometry.MeshData, error) {
	posProp, ok := node.Property("positions")
	if !ok || posProp.Kind != scenedesc.KindNumber || len(posProp.Numbers)%3 != 0 {
		return nil, fmt.Errorf("shape %q: \"positions\" must be a flat list of 3-tuples", node.ImplType())
	}
	idxProp, ok := node.Property("indices")
	if !ok || idxProp.Kind != scenedesc.KindNumber || len(idxProp.Numbers)%3 != 0 {
		return nil, fmt.Errorf("shape %q: \"indices\" must be a flat list of 3-tuples", node.ImplType())
	}

	vertexCount := len(posProp.Numbers) / 3
	vertices := make([]geometry.Vertex, vertexCount)
	for i := 0; i < vertexCount; i++ {
		vertices[i] = geometry.Vertex{Position: [3]float32{
			float32(posProp.Numbers[3*i]),
			float32(posProp.Numbers[3*i+1]),
			float32(posProp.Numbers[3*i+2]),
		}}
	}

	triCount := len(idxProp.Numbers) / 3
	triangles := make([]geometry.Triangle, triCount)
	for i := 0; i < triCount; i++ {
		triangles[i] = geometry.Triangle{Indices: [3]uint32{
			uint32(idxProp.Numbers[3*i]),
			uint32(idxProp.Numbers[3*i+1]),
			uint32(idxProp.Numbers[3*i+2]),
		}}
	}

	return &geometry.MeshData{Vertices: vertices, Triangles: triangles, HasLight: true}, nil
}

func triangleAreaOf(m *geometry.MeshData, tri geometry.Triangle) float64 {
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
	return 0.5 * math.Sqrt(cross[0]*cross[0]+cross[1]*cross[1]+cross[2]*cross[2])
}

func (d *DiffuseAreaLight) Closure(spec spectrum.Spectrum, swl spectrum.SampledWavelengths, _ float64) (Closure, error) {
	l := spec.DecodeIlluminant(swl, d.Emission)
	return diffuseAreaClosure{light: d, l: l}, nil
}

type diffuseAreaClosure struct {
	light *DiffuseAreaLight
	l     spectrum.SampledSpectrum
}

func triangleGeometry(m *geometry.MeshData, tri geometry.Triangle, b0, b1 float64) (p, n shading.Vec3) {
	a := m.Vertices[tri.Indices[0]].Position
	b := m.Vertices[tri.Indices[1]].Position
	c := m.Vertices[tri.Indices[2]].Position
	b2 := 1 - b0 - b1
	p = shading.Vec3{
		X: float64(a[0])*b2 + float64(b[0])*b0 + float64(c[0])*b1,
		Y: float64(a[1])*b2 + float64(b[1])*b0 + float64(c[1])*b1,
		Z: float64(a[2])*b2 + float64(b[2])*b0 + float64(c[2])*b1,
	}
	e1 := shading.Vec3{X: float64(b[0] - a[0]), Y: float64(b[1] - a[1]), Z: float64(b[2] - a[2])}
	e2 := shading.Vec3{X: float64(c[0] - a[0]), Y: float64(c[1] - a[1]), Z: float64(c[2] - a[2])}
	n = e1.Cross(e2).Normalize()
	return p, n
}

// sampleAlias draws a triangle index from the alias table via the
// Walker two-uniform lookup: u selects a bin, and the bin's stored
// probability decides whether to keep it or redirect to its alias.
func sampleAlias(table []geometry.AliasEntry, u float64) int {
	n := len(table)
	if n == 0 {
		return 0
	}
	scaled := u * float64(n)
	i := int(scaled)
	if i >= n {
		i = n - 1
	}
	frac := scaled - float64(i)
	if frac < float64(table[i].Prob) {
		return i
	}
	return int(table[i].Alias)
}

// Evaluate returns the emission/PDF for the triangle itOnLight landed
// on, as seen from pFrom — used by the "hit light" MIS branch when a
// continuation ray's own intersection happens to carry this light's
// tag. The PDF is the area measure converted to solid angle:
// p_triangle/area * distance^2/|cosTheta|, matching spec.md §4.6.
func (c diffuseAreaClosure) Evaluate(itOnLight shading.Interaction, pFrom shading.Vec3) Evaluation {
	toFrom := pFrom.Sub(itOnLight.Position)
	distSq := toFrom.LengthSquared()
	if distSq == 0 {
		return Evaluation{L: spectrum.SampledSpectrum{Dim: c.l.Dim}, PDF: 0}
	}
	dist := math.Sqrt(distSq)
	wi := toFrom.Scale(1 / dist)
	cosTheta := itOnLight.GeometricNormal.Dot(wi)
	facing := cosTheta > 0 || c.light.TwoSided
	if !facing || c.light.totalArea == 0 {
		return Evaluation{L: spectrum.SampledSpectrum{Dim: c.l.Dim}, PDF: 0}
	}
	absCos := math.Abs(cosTheta)
	pdf := distSq / (c.light.totalArea * absCos)
	return Evaluation{L: c.l, PDF: pdf}
}

// Sample draws a triangle via the alias table (u[0]), a point within
// it via uniform barycentric sampling (u[1], u[2]), and returns the
// direction/distance from pFrom plus the evaluation at that point.
func (c diffuseAreaClosure) Sample(pFrom shading.Vec3, u [3]float64) Sample {
	tri := c.light.Mesh.Triangles[sampleAlias(c.light.aliasTable, u[0])]
	b0, b1 := uniformBarycentric(u[1], u[2])
	p, n := triangleGeometry(c.light.Mesh, tri, b0, b1)

	toLight := p.Sub(pFrom)
	distSq := toLight.LengthSquared()
	if distSq == 0 {
		return Sample{Point: p, Eval: Evaluation{L: spectrum.SampledSpectrum{Dim: c.l.Dim}, PDF: 0}}
	}
	dist := math.Sqrt(distSq)
	wi := toLight.Scale(1 / dist)
	cosTheta := n.Dot(wi.Neg())
	facing := cosTheta > 0 || c.light.TwoSided
	if !facing || c.light.totalArea == 0 {
		return Sample{Wi: wi, Distance: dist, Point: p, Eval: Evaluation{L: spectrum.SampledSpectrum{Dim: c.l.Dim}, PDF: 0}}
	}
	pdf := distSq / (c.light.totalArea * math.Abs(cosTheta))
	return Sample{Wi: wi, Distance: dist, Point: p, Eval: Evaluation{L: c.l, PDF: pdf}}
}

// uniformBarycentric maps two independent uniforms to barycentric
// coordinates over a triangle via the standard square-root mapping
// (e.g. pbrt's UniformSampleTriangle).
func uniformBarycentric(u0, u1 float64) (float64, float64) {
	su0 := math.Sqrt(u0)
	b0 := 1 - su0
	b1 := u1 * su0
	return b0, b1
}

func (c diffuseAreaClosure) SamplingDimensions() int { return 3 }

var (
	_ Instance = (*DiffuseAreaLight)(nil)
	_ Closure  = diffuseAreaClosure{}
)
