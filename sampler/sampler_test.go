package sampler

import "testing"

func checkUnitRange(t *testing.T, name string, v float64) {
	t.Helper()
	if v < 0 || v >= 1 {
		t.Fatalf("%s: value %v out of [0,1)", name, v)
	}
}

func TestPCGBounds(t *testing.T) {
	s := NewPCG()
	s.Reset([2]int{64, 64}, 1, 16)
	s.Start([2]int{3, 7}, 2)
	for i := 0; i < 64; i++ {
		checkUnitRange(t, "Generate1D", s.Generate1D())
		p := s.Generate2D()
		checkUnitRange(t, "Generate2D.x", p[0])
		checkUnitRange(t, "Generate2D.y", p[1])
	}
}

func TestPCGDeterministicPerPixelSample(t *testing.T) {
	mk := func() float64 {
		s := NewPCG()
		s.Reset([2]int{64, 64}, 1, 16)
		s.Start([2]int{5, 9}, 3)
		return s.Generate1D()
	}
	a, b := mk(), mk()
	if a != b {
		t.Fatalf("expected deterministic stream for identical (pixel, sampleIndex), got %v != %v", a, b)
	}
}

func TestPCGDistinctPixelsDiffer(t *testing.T) {
	s1 := NewPCG()
	s1.Reset([2]int{64, 64}, 1, 16)
	s1.Start([2]int{0, 0}, 0)
	v1 := s1.Generate1D()

	s2 := NewPCG()
	s2.Reset([2]int{64, 64}, 1, 16)
	s2.Start([2]int{1, 0}, 0)
	v2 := s2.Generate1D()

	if v1 == v2 {
		t.Fatalf("expected distinct pixels to produce distinct streams")
	}
}

func TestPCGSaveLoadStateRoundTrips(t *testing.T) {
	s := NewPCG()
	s.Reset([2]int{32, 32}, 1, 8)
	s.Start([2]int{2, 2}, 0)

	_ = s.Generate1D()
	s.SaveState(1)

	want := s.Generate1D()
	s.LoadState(1)
	got := s.Generate1D()

	if got != want {
		t.Fatalf("LoadState did not restore stream position: want %v, got %v", want, got)
	}
}

func TestSobolBounds(t *testing.T) {
	s := NewSobol()
	s.Reset([2]int{64, 64}, 1, 16)
	s.Start([2]int{4, 1}, 5)
	for i := 0; i < 32; i++ {
		checkUnitRange(t, "Sobol.Generate1D", s.Generate1D())
	}
	p := s.GeneratePixel2D()
	checkUnitRange(t, "Sobol.GeneratePixel2D.x", p[0])
	checkUnitRange(t, "Sobol.GeneratePixel2D.y", p[1])
}

func TestSobolDeterministicPerPixelSample(t *testing.T) {
	mk := func() [2]float64 {
		s := NewSobol()
		s.Reset([2]int{64, 64}, 1, 16)
		s.Start([2]int{11, 3}, 4)
		return s.Generate2D()
	}
	a, b := mk(), mk()
	if a != b {
		t.Fatalf("expected deterministic Sobol stream, got %v != %v", a, b)
	}
}

func TestSobolGeneratePixel2DIndependentOfRunningDimension(t *testing.T) {
	s := NewSobol()
	s.Reset([2]int{64, 64}, 1, 16)
	s.Start([2]int{11, 3}, 4)
	_ = s.Generate1D()
	_ = s.Generate1D()
	_ = s.Generate1D()
	p1 := s.GeneratePixel2D()

	s2 := NewSobol()
	s2.Reset([2]int{64, 64}, 1, 16)
	s2.Start([2]int{11, 3}, 4)
	p2 := s2.GeneratePixel2D()

	if p1 != p2 {
		t.Fatalf("GeneratePixel2D should not depend on prior Generate1D/2D calls, got %v != %v", p1, p2)
	}
}

func TestSobolSaveLoadStateRoundTrips(t *testing.T) {
	s := NewSobol()
	s.Reset([2]int{32, 32}, 1, 8)
	s.Start([2]int{6, 6}, 1)

	_ = s.Generate2D()
	s.SaveState(7)

	want := s.Generate1D()
	s.LoadState(7)
	got := s.Generate1D()

	if got != want {
		t.Fatalf("LoadState did not restore Sobol dimension cursor: want %v, got %v", want, got)
	}
}

func TestSobolWarnsOnNonPowerOfTwoSpp(t *testing.T) {
	s := NewSobol()
	// Should not panic; the warning is advisory, not a hard failure.
	s.Reset([2]int{16, 16}, 1, 17)
	s.Start([2]int{0, 0}, 0)
	checkUnitRange(t, "Sobol.Generate1D non-pow2 spp", s.Generate1D())
}

func TestPMJ02BNBounds(t *testing.T) {
	s := NewPMJ02BN()
	s.Reset([2]int{64, 64}, 1, 16)
	s.Start([2]int{4, 1}, 5)
	for i := 0; i < 32; i++ {
		checkUnitRange(t, "PMJ02BN.Generate1D", s.Generate1D())
	}
	p := s.GeneratePixel2D()
	checkUnitRange(t, "PMJ02BN.GeneratePixel2D.x", p[0])
	checkUnitRange(t, "PMJ02BN.GeneratePixel2D.y", p[1])
}

func TestPMJ02BNDeterministicPerPixelSample(t *testing.T) {
	mk := func() [2]float64 {
		s := NewPMJ02BN()
		s.Reset([2]int{64, 64}, 1, 16)
		s.Start([2]int{2, 8}, 9)
		return s.Generate2D()
	}
	a, b := mk(), mk()
	if a != b {
		t.Fatalf("expected deterministic PMJ02BN stream, got %v != %v", a, b)
	}
}

func TestPMJ02BNDistinctPixelsDither(t *testing.T) {
	s1 := NewPMJ02BN()
	s1.Reset([2]int{64, 64}, 1, 16)
	s1.Start([2]int{0, 0}, 0)
	v1 := s1.Generate1D()

	s2 := NewPMJ02BN()
	s2.Reset([2]int{64, 64}, 1, 16)
	s2.Start([2]int{1, 0}, 0)
	v2 := s2.Generate1D()

	if v1 == v2 {
		t.Fatalf("expected the per-pixel dither to decorrelate neighboring pixels")
	}
}

func TestPMJ02BNSaveLoadStateRoundTrips(t *testing.T) {
	s := NewPMJ02BN()
	s.Reset([2]int{32, 32}, 1, 8)
	s.Start([2]int{3, 3}, 2)

	_ = s.Generate2D()
	s.SaveState(4)

	want := s.Generate1D()
	s.LoadState(4)
	got := s.Generate1D()

	if got != want {
		t.Fatalf("LoadState did not restore PMJ02BN dimension cursor: want %v, got %v", want, got)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	cases := map[int]bool{
		0: false, 1: true, 2: true, 3: false, 4: true, 16: true, 17: false, -4: false,
	}
	for n, want := range cases {
		if got := isPowerOfTwo(n); got != want {
			t.Errorf("isPowerOfTwo(%d) = %v, want %v", n, got, want)
		}
	}
}
