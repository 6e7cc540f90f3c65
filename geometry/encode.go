package geometry

import (
	"encoding/binary"
	"math"
)

// encodeVertices, encodeTriangles, encodeAliasTable, and encodePDF lay
// out their inputs as tightly packed little-endian buffers, matching
// the layout the megakernel's generated WGSL struct decode expects.

func encodeVertices(vertices []Vertex) []byte {
	const stride = 8 * 4 // position(3) + normal(3) + uv(2), all float32
	out := make([]byte, len(vertices)*stride)
	for i, v := range vertices {
		o := i * stride
		putFloat32(out, o+0, v.Position[0])
		putFloat32(out, o+4, v.Position[1])
		putFloat32(out, o+8, v.Position[2])
		putFloat32(out, o+12, v.Normal[0])
		putFloat32(out, o+16, v.Normal[1])
		putFloat32(out, o+20, v.Normal[2])
		putFloat32(out, o+24, v.UV[0])
		putFloat32(out, o+28, v.UV[1])
	}
	return out
}

func encodeTriangles(triangles []Triangle) []byte {
	const stride = 3 * 4
	out := make([]byte, len(triangles)*stride)
	for i, t := range triangles {
		o := i * stride
		binary.LittleEndian.PutUint32(out[o:], t.Indices[0])
		binary.LittleEndian.PutUint32(out[o+4:], t.Indices[1])
		binary.LittleEndian.PutUint32(out[o+8:], t.Indices[2])
	}
	return out
}

func encodeAliasTable(entries []AliasEntry) []byte {
	const stride = 8 // prob(float32) + alias(uint32)
	out := make([]byte, len(entries)*stride)
	for i, e := range entries {
		o := i * stride
		putFloat32(out, o, e.Prob)
		binary.LittleEndian.PutUint32(out[o+4:], e.Alias)
	}
	return out
}

func encodePDF(pdf []float64) []byte {
	out := make([]byte, len(pdf)*4)
	for i, p := range pdf {
		putFloat32(out, i*4, float32(p))
	}
	return out
}

func putFloat32(out []byte, offset int, v float32) {
	binary.LittleEndian.PutUint32(out[offset:], math.Float32bits(v))
}
