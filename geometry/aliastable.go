package geometry

// AliasEntry is one bin of a Walker alias table: Prob is the
// probability of keeping this bin on a draw (already scaled by n), and
// Alias is the bin to redirect to otherwise.
type AliasEntry struct {
	Prob  float32
	Alias uint32
}

// BuildAliasTable builds a Walker alias table over weights (typically
// per-triangle surface area for uniform area sampling of a mesh light)
// together with the normalized PDF each weight maps to. A weights slice
// that sums to zero falls back to a uniform distribution.
//
// Construction partitions bins by scaled probability (p > 1 goes to the
// "overfull" queue, p <= 1 to "underfull"), then repeatedly pairs the
// top of each queue, donating the overfull bin's surplus mass to the
// underfull one until both queues drain.
func BuildAliasTable(weights []float64) ([]AliasEntry, []float64) {
	n := len(weights)
	pdf := make([]float64, n)
	if n == 0 {
		return nil, pdf
	}

	sum := 0.0
	for _, w := range weights {
		sum += abs(w)
	}

	table := make([]AliasEntry, n)
	if sum == 0 {
		// Degenerate input (all-zero weights, e.g. a mesh whose
		// triangles all have zero area): every bin is equally likely
		// and never redirects.
		inv := 1.0 / float64(n)
		for i := range pdf {
			pdf[i] = inv
			table[i] = AliasEntry{Prob: 1.0, Alias: uint32(i)}
		}
		return table, pdf
	}

	invSum := 1.0 / sum
	for i, w := range weights {
		pdf[i] = abs(w) * invSum
	}

	ratio := float64(n) / sum
	var over, under []uint32
	for i, w := range weights {
		p := float32(w * ratio)
		table[i] = AliasEntry{Prob: p, Alias: uint32(i)}
		if p > 1.0 {
			over = append(over, uint32(i))
		} else {
			under = append(under, uint32(i))
		}
	}

	for len(over) > 0 && len(under) > 0 {
		o := over[len(over)-1]
		u := under[len(under)-1]
		over = over[:len(over)-1]
		under = under[:len(under)-1]

		table[o].Prob -= 1.0 - table[u].Prob
		table[u].Alias = o

		switch {
		case table[o].Prob > 1.0:
			over = append(over, o)
		case table[o].Prob < 1.0:
			under = append(under, o)
		}
	}
	for _, i := range over {
		table[i] = AliasEntry{Prob: 1.0, Alias: i}
	}
	for _, i := range under {
		table[i] = AliasEntry{Prob: 1.0, Alias: i}
	}

	return table, pdf
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
