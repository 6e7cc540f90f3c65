package sampler

import "math/rand/v2"

// PCGSampler is the independent variant: every dimension of every
// sample is an independent draw from a PCG32 stream seeded by hashing
// the pixel coordinates and sample index, so distinct (pixel, sample)
// pairs never share a stream.
type PCGSampler struct {
	resolution [2]int
	spp        int

	pcg *rand.PCG
	rng *rand.Rand

	saved map[int][]byte
}

// NewPCG constructs an independent PCG-backed sampler.
func NewPCG() *PCGSampler {
	return &PCGSampler{saved: make(map[int][]byte)}
}

func (s *PCGSampler) Reset(resolution [2]int, stateCount, spp int) {
	s.resolution = resolution
	s.spp = spp
}

func (s *PCGSampler) Start(pixel [2]int, sampleIndex int) {
	seed1, seed2 := teaSeed(uint32(pixel[0]), uint32(pixel[1]), uint32(sampleIndex))
	s.pcg = rand.NewPCG(seed1, seed2)
	s.rng = rand.New(s.pcg)
}

func (s *PCGSampler) SaveState(id int) {
	data, err := s.pcg.MarshalBinary()
	if err != nil {
		return
	}
	s.saved[id] = data
}

func (s *PCGSampler) LoadState(id int) {
	data, ok := s.saved[id]
	if !ok {
		return
	}
	if err := s.pcg.UnmarshalBinary(data); err != nil {
		return
	}
	s.rng = rand.New(s.pcg)
}

func (s *PCGSampler) Generate1D() float64 {
	return clampOpen(s.rng.Float64())
}

func (s *PCGSampler) Generate2D() [2]float64 {
	return [2]float64{clampOpen(s.rng.Float64()), clampOpen(s.rng.Float64())}
}

func (s *PCGSampler) GeneratePixel2D() [2]float64 {
	return s.Generate2D()
}

// teaSeed hashes a pixel coordinate and sample index into two 64-bit
// seeds for rand.NewPCG, via the same Tiny Encryption Algorithm mixing
// round the independent-sampler kernel uses to seed its per-pixel
// state from (pixel_x, pixel_y).
func teaSeed(x, y, sampleIndex uint32) (uint64, uint64) {
	a := teaHash(x, y+sampleIndex*0x9e3779b9, 5)
	b := teaHash(y, x^sampleIndex, 5)
	return uint64(a)<<32 | uint64(b), uint64(b)<<32 | uint64(a)
}

func teaHash(v0, v1 uint32, rounds int) uint32 {
	var s0 uint32
	for n := 0; n < rounds; n++ {
		s0 += 0x9e3779b9
		v0 += ((v1 << 4) + 0xa341316c) ^ (v1 + s0) ^ ((v1 >> 5) + 0xc8013ea4)
		v1 += ((v0 << 4) + 0xad90777d) ^ (v0 + s0) ^ ((v0 >> 5) + 0x7e95761e)
	}
	return v0
}

var _ Sampler = (*PCGSampler)(nil)
