package geometry

import "testing"

func TestHandleEncodeDecodeRoundTrips(t *testing.T) {
	h := Handle{
		BufferBase:               12345,
		Flags:                    PropertyHasVertexNormal | PropertyHasLight,
		SurfaceTag:                7,
		LightTag:                  200,
		MediumTag:                 3,
		TriangleCount:             4096,
		ShadowTerminatorFactor:    0.5,
		IntersectionOffsetFactor:  0.25,
	}

	got := DecodeHandle(h.Encode())

	if got.BufferBase != h.BufferBase {
		t.Fatalf("BufferBase = %d, want %d", got.BufferBase, h.BufferBase)
	}
	if got.Flags != h.Flags {
		t.Fatalf("Flags = %b, want %b", got.Flags, h.Flags)
	}
	if got.SurfaceTag != h.SurfaceTag || got.LightTag != h.LightTag || got.MediumTag != h.MediumTag {
		t.Fatalf("tags = (%d,%d,%d), want (%d,%d,%d)", got.SurfaceTag, got.LightTag, got.MediumTag, h.SurfaceTag, h.LightTag, h.MediumTag)
	}
	if got.TriangleCount != h.TriangleCount {
		t.Fatalf("TriangleCount = %d, want %d", got.TriangleCount, h.TriangleCount)
	}
	if diff := got.ShadowTerminatorFactor - h.ShadowTerminatorFactor; diff > 1e-3 || diff < -1e-3 {
		t.Fatalf("ShadowTerminatorFactor = %v, want %v", got.ShadowTerminatorFactor, h.ShadowTerminatorFactor)
	}
	if diff := got.IntersectionOffsetFactor - h.IntersectionOffsetFactor; diff > 1e-3 || diff < -1e-3 {
		t.Fatalf("IntersectionOffsetFactor = %v, want %v", got.IntersectionOffsetFactor, h.IntersectionOffsetFactor)
	}
}

func TestHandleSubBufferOffsetsAreContiguous(t *testing.T) {
	h := Handle{BufferBase: 100}
	if h.VertexBufferID() != 100 || h.TriangleBufferID() != 101 || h.AliasTableBufferID() != 102 || h.PDFBufferID() != 103 {
		t.Fatalf("sub-buffer ids not contiguous from base: %d %d %d %d",
			h.VertexBufferID(), h.TriangleBufferID(), h.AliasTableBufferID(), h.PDFBufferID())
	}
}

func TestHandleFlagTagBitRangesMatchLayout(t *testing.T) {
	// light_tag: bits 0-11; surface_tag: bits 12-23; medium_tag: bits 24-31.
	h := Handle{LightTag: LightTagMax, SurfaceTag: 0, MediumTag: 0}
	words := h.Encode()
	if words[1] != LightTagMax {
		t.Fatalf("light tag should occupy bits 0-11 alone, word1 = %#x", words[1])
	}

	h2 := Handle{LightTag: 0, SurfaceTag: SurfaceTagMax, MediumTag: 0}
	words2 := h2.Encode()
	if words2[1] != SurfaceTagMax<<12 {
		t.Fatalf("surface tag should occupy bits 12-23, word1 = %#x", words2[1])
	}

	h3 := Handle{LightTag: 0, SurfaceTag: 0, MediumTag: MediumTagMax}
	words3 := h3.Encode()
	if words3[1] != MediumTagMax<<24 {
		t.Fatalf("medium tag should occupy bits 24-31, word1 = %#x", words3[1])
	}

	// property flags: low 10 bits; buffer base: high 22 bits.
	h4 := Handle{BufferBase: BufferBaseMax, Flags: propertyFlagMask}
	words4 := h4.Encode()
	if words4[0] != 0xffffffff {
		t.Fatalf("max buffer base + max flags should fill word0, got %#x", words4[0])
	}
}

func TestHalfFloatRoundTripsCommonFractions(t *testing.T) {
	for _, f := range []float32{0, 1, 0.5, 0.25, 0.125, 1.0 / 3.0} {
		got := halfToFloat(floatToHalf(f))
		diff := got - f
		if diff < 0 {
			diff = -diff
		}
		if diff > 1e-3 {
			t.Fatalf("half round trip of %v = %v, too far off", f, got)
		}
	}
}
