package geometry

import "testing"

func TestBuildAliasTableUniformWeights(t *testing.T) {
	weights := []float64{1, 1, 1, 1}
	table, pdf := BuildAliasTable(weights)

	for i, p := range pdf {
		if p != 0.25 {
			t.Fatalf("pdf[%d] = %v, want 0.25", i, p)
		}
	}
	for i, e := range table {
		if e.Prob != 1.0 {
			t.Fatalf("entry %d prob = %v, want 1.0 for a uniform distribution", i, e.Prob)
		}
		_ = e.Alias
	}
}

func TestBuildAliasTableSkewedWeightsConservesMass(t *testing.T) {
	weights := []float64{10, 1, 1, 1, 1}
	table, pdf := BuildAliasTable(weights)

	sum := 0.0
	for _, p := range pdf {
		sum += p
	}
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("pdf should sum to 1, got %v", sum)
	}

	for i, e := range table {
		if e.Prob < 0 || e.Prob > 1.0001 {
			t.Fatalf("entry %d prob %v out of [0,1]", i, e.Prob)
		}
		if int(e.Alias) < 0 || int(e.Alias) >= len(weights) {
			t.Fatalf("entry %d alias %d out of range", i, e.Alias)
		}
	}
}

func TestBuildAliasTableZeroWeightsFallsBackToUniform(t *testing.T) {
	weights := []float64{0, 0, 0}
	table, pdf := BuildAliasTable(weights)
	for i := range pdf {
		if pdf[i] != 1.0/3.0 {
			t.Fatalf("pdf[%d] = %v, want 1/3", i, pdf[i])
		}
		if table[i].Prob != 1.0 || table[i].Alias != uint32(i) {
			t.Fatalf("degenerate entry %d = %+v, want {1.0, %d}", i, table[i], i)
		}
	}
}

func TestBuildAliasTableSamplingReproducesDistribution(t *testing.T) {
	weights := []float64{1, 2, 3, 4}
	table, pdf := BuildAliasTable(weights)

	n := 200000
	counts := make([]int, len(weights))
	rng := newTestRNG(1)
	for i := 0; i < n; i++ {
		u1 := rng.float64()
		u2 := rng.float64()
		bin := int(u1 * float64(len(weights)))
		if bin >= len(weights) {
			bin = len(weights) - 1
		}
		if u2 < float64(table[bin].Prob) {
			counts[bin]++
		} else {
			counts[table[bin].Alias]++
		}
	}

	for i, c := range counts {
		got := float64(c) / float64(n)
		want := pdf[i]
		if diff := got - want; diff > 0.02 || diff < -0.02 {
			t.Fatalf("bin %d sampled frequency %v too far from pdf %v", i, got, want)
		}
	}
}

// testRNG is a tiny deterministic PCG-style generator so the alias
// table's unbiasedness test doesn't depend on math/rand's global state.
type testRNG struct{ state uint64 }

func newTestRNG(seed uint64) *testRNG { return &testRNG{state: seed*2 + 1} }

func (r *testRNG) float64() float64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	x := r.state
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	return float64(x>>11) / float64(1<<53)
}
