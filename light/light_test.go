package light

import (
	"math"
	"testing"

	"github.com/gogpu/photon/geometry"
	"github.com/gogpu/photon/scenedesc"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

func almostEqual(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func defineLightNode(t *testing.T, impl string) *scenedesc.Node {
	t.Helper()
	g := scenedesc.NewGraph()
	node, err := g.Define("n", scenedesc.TagLight, impl, scenedesc.SourceLocation{}, nil)
	if err != nil {
		t.Fatalf("Define(%q): %v", impl, err)
	}
	return node
}

func TestPointLightSampleFalloffIsInverseSquare(t *testing.T) {
	node := defineLightNode(t, "Point")
	node.AddProperty("position", scenedesc.NumberList(0, 0, 2))
	node.AddProperty("emission", scenedesc.NumberList(1, 1, 1))

	inst, err := newPointFromNode(node)
	if err != nil {
		t.Fatalf("newPointFromNode: %v", err)
	}
	closure, err := inst.Closure(spectrum.RGBSpectrum{}, spectrum.SampleUniform(0.25, 360, 830), 0)
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}
	s := closure.Sample(shading.Vec3{X: 0, Y: 0, Z: 0}, [3]float64{})
	if !almostEqual(s.Distance, 2, 1e-9) {
		t.Fatalf("Distance = %v, want 2", s.Distance)
	}
	want := 1.0 / 4.0 // 1/distance^2
	if !almostEqual(s.Eval.L.Values[0], want, 1e-9) {
		t.Fatalf("L = %v, want %v", s.Eval.L.Values[0], want)
	}
	if s.Eval.PDF != 1 {
		t.Fatalf("PDF = %v, want 1 for a delta light", s.Eval.PDF)
	}
}

func quadMesh() *geometry.MeshData {
	return &geometry.MeshData{
		Vertices: []geometry.Vertex{
			{Position: [3]float32{-1, -1, 0}},
			{Position: [3]float32{1, -1, 0}},
			{Position: [3]float32{1, 1, 0}},
			{Position: [3]float32{-1, 1, 0}},
		},
		Triangles: []geometry.Triangle{
			{Indices: [3]uint32{0, 1, 2}},
			{Indices: [3]uint32{0, 2, 3}},
		},
	}
}

func TestDiffuseAreaLightSampleFacesAwayFromNormalIsZeroUnlessTwoSided(t *testing.T) {
	mesh := quadMesh()
	weights := []float64{2, 2}
	aliasTable, _ := geometry.BuildAliasTable(weights)
	d := &DiffuseAreaLight{
		Mesh:       mesh,
		Emission:   [3]float64{1, 1, 1},
		TwoSided:   false,
		aliasTable: aliasTable,
		totalArea:  4,
	}
	closure, err := d.Closure(spectrum.RGBSpectrum{}, spectrum.SampleUniform(0.25, 360, 830), 0)
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}
	behind := closure.Sample(shading.Vec3{X: 0, Y: 0, Z: -5}, [3]float64{0.1, 0.3, 0.3})
	if behind.Eval.PDF != 0 {
		t.Fatalf("one-sided area light sampled from behind should report PDF 0, got %v", behind.Eval.PDF)
	}

	d.TwoSided = true
	closure2, _ := d.Closure(spectrum.RGBSpectrum{}, spectrum.SampleUniform(0.25, 360, 830), 0)
	fromBehindTwoSided := closure2.Sample(shading.Vec3{X: 0, Y: 0, Z: -5}, [3]float64{0.1, 0.3, 0.3})
	if fromBehindTwoSided.Eval.PDF == 0 {
		t.Fatalf("two-sided area light sampled from behind should have nonzero PDF")
	}
}

func TestDiffuseAreaLightSamplePositiveFrontPDF(t *testing.T) {
	mesh := quadMesh()
	weights := []float64{2, 2}
	aliasTable, _ := geometry.BuildAliasTable(weights)
	d := &DiffuseAreaLight{
		Mesh:       mesh,
		Emission:   [3]float64{1, 1, 1},
		aliasTable: aliasTable,
		totalArea:  4,
	}
	closure, err := d.Closure(spectrum.RGBSpectrum{}, spectrum.SampleUniform(0.25, 360, 830), 0)
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}
	s := closure.Sample(shading.Vec3{X: 0, Y: 0, Z: 5}, [3]float64{0.1, 0.3, 0.3})
	if s.Eval.PDF <= 0 {
		t.Fatalf("front-facing sample should have positive PDF, got %v", s.Eval.PDF)
	}
	if s.Distance <= 0 {
		t.Fatalf("Distance should be positive, got %v", s.Distance)
	}
}

func TestNamesListsRegisteredLights(t *testing.T) {
	names := Names()
	want := map[string]bool{"Point": false, "DiffuseArea": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Fatalf("expected %q in registered light names, got %v", n, names)
		}
	}
}
