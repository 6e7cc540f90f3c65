package integrator

import (
	"math"

	"github.com/gogpu/photon/film"
	"github.com/gogpu/photon/lightsampler"
	"github.com/gogpu/photon/sampler"
	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
	"github.com/gogpu/photon/surface"
)

// noPriorBounceSentinelPDF stands in for "no prior BSDF sample exists
// yet" (the camera-ray/alpha-skip case): the balance heuristic must
// collapse entirely onto the light-sampling PDF at depth 0, which a
// literal +Inf can't do (Inf/(Inf+finite) divides out to NaN). A very
// large finite value dominates the same way without that failure mode,
// matching mega_path_dx.cpp's own def(1e16f) sentinel.
const noPriorBounceSentinelPDF = 1e16

// Config holds the "depth"/"rr_depth"/"rr_threshold" properties
// mega_path_dx.cpp reads off its scene node.
type Config struct {
	MaxDepth     int
	RRDepth      int
	RRThreshold  float64
	OffsetFactor float64 // SpawnRay's self-intersection offset; 1e-4 if zero
}

func (c Config) resolved() Config {
	if c.MaxDepth <= 0 {
		c.MaxDepth = 10
	}
	if c.RRThreshold <= 0 {
		c.RRThreshold = 0.95
	}
	if c.OffsetFactor <= 0 {
		c.OffsetFactor = 1e-4
	}
	return c
}

// Scene is the host-side intersection contract RenderPixel traces
// rays against, the same role pipeline.intersect/intersect_any play in
// the original. The caller supplies the implementation: the module has
// no BVH traversal of its own (geometry assembles instance and
// transform buffers but does not walk them).
type Scene interface {
	// Intersect returns the closest hit along ray, or ok=false if the
	// ray escapes the scene.
	Intersect(ray shading.Ray) (it shading.Interaction, ok bool)

	// IntersectAny reports whether ray hits anything at all, without
	// resolving a full Interaction — used for shadow-ray occlusion
	// tests where only a boolean is needed.
	IntersectAny(ray shading.Ray) bool

	// SurfaceAt looks up the surface instance tagged onto it's shape,
	// or ok=false if the shape carries no surface (a pure emitter or
	// a clipping volume boundary with no material response).
	SurfaceAt(it shading.Interaction) (inst surface.Instance, ok bool)

	// LightTagAt reports the index into the light sampler's area-light
	// list that it's shape is tagged with, or ok=false if it carries
	// no light.
	LightTagAt(it shading.Interaction) (tag int, ok bool)
}

// Camera generates a primary ray for a pixel at a given shutter time,
// plus the importance weight the ray's differential solid angle and
// any lens sampling contributed (1 for a simple pinhole model).
type Camera interface {
	GenerateRay(s sampler.Sampler, pixel [2]int, time float64) (ray shading.Ray, weight float64)
}

// ShutterSample is one (time, sample count, accumulation weight)
// triple from a camera's shutter_samples list; Render iterates these
// the way _render_one_camera iterates shutter_samples in
// mega_path_dx.cpp.
type ShutterSample struct {
	Time   float64
	SPP    int
	Weight float64
}

// Integrator ties a scene, its light sampler, and the active spectral
// model together into one RenderPixel entry point.
type Integrator struct {
	Config
	Scene        Scene
	LightSampler *lightsampler.Sampler
	Spectrum     spectrum.Spectrum
	Film         *film.Film
}

// New constructs an Integrator, replacing a non-positive MaxDepth,
// RRThreshold or OffsetFactor in cfg with its default (10, 0.95, 1e-4).
// The 0.05 floor on the Russian-roulette survival probability is
// applied per bounce in RenderPixel, not here.
func New(cfg Config, scene Scene, ls *lightsampler.Sampler, spec spectrum.Spectrum, f *film.Film) *Integrator {
	return &Integrator{Config: cfg.resolved(), Scene: scene, LightSampler: ls, Spectrum: spec, Film: f}
}

// balancedHeuristic is the two-technique balance heuristic MIS weight:
// pdf_a/(pdf_a+pdf_b), collapsing to 0 when pdf_a is non-positive (the
// "this technique could never have produced this PDF" case).
func balancedHeuristic(pdfA, pdfB float64) float64 {
	if pdfA <= 0 {
		return 0
	}
	return pdfA / (pdfA + pdfB)
}

// RenderPixel traces one path for the (pixel, frameIndex) sample drawn
// from s, accumulating its contribution into the Film. time and
// shutterWeight come from the ShutterSample currently being rendered.
func (in *Integrator) RenderPixel(cam Camera, s sampler.Sampler, pixel [2]int, frameIndex int, time, shutterWeight float64) {
	s.Start(pixel, frameIndex)
	ray, cameraWeight := cam.GenerateRay(s, pixel, time)
	swl := in.Spectrum.Sample(s.Generate1D())
	dim := in.Spectrum.Dimension()

	beta := uniformSpectrum(dim, cameraWeight)
	etaScale := uniformSpectrum(dim, 1)
	li := spectrum.SampledSpectrum{Dim: dim}
	pdfBSDF := noPriorBounceSentinelPDF

	for depth := 0; depth < in.MaxDepth; depth++ {
		it, hit := in.Scene.Intersect(ray)
		if !hit {
			eval, _ := in.LightSampler.EvaluateMiss(ray.Direction, in.Spectrum, swl, time)
			li = li.Add(beta.Mul(eval.L).Scale(balancedHeuristic(pdfBSDF, eval.PDF)))
			break
		}

		if tag, ok := in.Scene.LightTagAt(it); ok {
			eval, _ := in.LightSampler.EvaluateHit(tag, it, ray.Origin, in.Spectrum, swl, time)
			li = li.Add(beta.Mul(eval.L).Scale(balancedHeuristic(pdfBSDF, eval.PDF)))
		}

		inst, ok := in.Scene.SurfaceAt(it)
		if !ok {
			break
		}

		uSel := s.Generate1D()
		uLight2D := s.Generate2D()
		uLight := [3]float64{uLight2D[0], uLight2D[1], s.Generate1D()}
		lightSample, _ := in.LightSampler.Sample(it.Position, uSel, uLight, in.Spectrum, swl, time)

		shadowRay := it.SpawnRay(lightSample.Wi, lightSample.Distance, in.OffsetFactor)
		occluded := in.Scene.IntersectAny(shadowRay)

		closure, _ := inst.Closure(it, in.Spectrum, swl, time)
		uLobe := s.Generate1D()

		skipped := false
		if op, isOpaque := closure.(surface.Opaque); isOpaque {
			if alpha, has := op.Opacity(); has {
				if uLobe < alpha {
					uLobe = uLobe / alpha
				} else {
					uLobe = (uLobe - alpha) / (1 - alpha)
					ray = it.SpawnRay(ray.Direction, math.Inf(1), in.OffsetFactor)
					pdfBSDF = noPriorBounceSentinelPDF
					skipped = true
				}
			}
		}

		if !skipped {
			if lightSample.Eval.PDF > 0 && !occluded {
				eval := closure.Evaluate(lightSample.Wi)
				if eval.PDF > 0 {
					weight := balancedHeuristic(lightSample.Eval.PDF, eval.PDF)
					factor := weight / lightSample.Eval.PDF * math.Abs(eval.Normal.Dot(lightSample.Wi))
					li = li.Add(beta.Mul(eval.F).Mul(lightSample.Eval.L).Scale(factor))
				}
			}

			sample := closure.Sample(uLobe, s.Generate2D())
			ray = it.SpawnRay(sample.Wi, math.Inf(1), in.OffsetFactor)
			pdfBSDF = sample.Eval.PDF
			if sample.Eval.PDF > 0 {
				factor := math.Abs(sample.Eval.Normal.Dot(sample.Wi)) / sample.Eval.PDF
				beta = beta.Mul(sample.Eval.F).Scale(factor)
			} else {
				beta = spectrum.SampledSpectrum{Dim: dim}
			}

			if disp, ok := closure.(surface.Dispersive); ok && disp.IsDispersive() && sample.Event == surface.EventTransmit {
				swl.TerminateSecondary()
				etaScale = etaScale.Mul(sample.Eval.Eta).Mul(sample.Eval.Eta)
			}
		}

		if beta.IsBlack() {
			break
		}
		q := in.Spectrum.CIEY(swl, beta.Mul(etaScale))
		if depth >= in.RRDepth && q < 1 {
			q = clampFloat(q, 0.05, in.RRThreshold)
			if s.Generate1D() >= q {
				break
			}
			beta = beta.Scale(1 / q)
		}
	}

	in.Film.Accumulate(pixel, in.Spectrum.SRGB(swl, li.Scale(shutterWeight)))
}

// Render drives RenderPixel across every pixel of the film's
// resolution, once per sample of each ShutterSample in order,
// mirroring _render_one_camera's shutter_samples loop. samplerFor
// returns (or lazily constructs) the Sampler a given worker should use
// — the CPU-fallback render pass shares one Sampler per goroutine
// rather than per pixel, so callers typically close over a small pool
// here rather than allocating one per call. onProgress, if non-nil, is
// invoked after every completed sample pass with the fraction of total
// samples-per-pixel done so far — the host-side progress-reporting
// hook progress_bar.h provides, reduced to a callback since the
// terminal/UI surface itself is out of scope.
func (in *Integrator) Render(cam Camera, samplerFor func() sampler.Sampler, shutterSamples []ShutterSample, onProgress func(float64)) {
	resolution := in.Film.Resolution()
	s := samplerFor()
	total := totalSPP(shutterSamples)
	s.Reset(resolution, resolution[0]*resolution[1], total)

	frameIndex := 0
	for _, ss := range shutterSamples {
		for i := 0; i < ss.SPP; i++ {
			for y := 0; y < resolution[1]; y++ {
				for x := 0; x < resolution[0]; x++ {
					in.RenderPixel(cam, s, [2]int{x, y}, frameIndex, ss.Time, ss.Weight)
				}
			}
			frameIndex++
			if onProgress != nil && total > 0 {
				onProgress(float64(frameIndex) / float64(total))
			}
		}
	}
}

func totalSPP(shutterSamples []ShutterSample) int {
	total := 0
	for _, ss := range shutterSamples {
		total += ss.SPP
	}
	return total
}

func uniformSpectrum(dim int, v float64) spectrum.SampledSpectrum {
	s := spectrum.SampledSpectrum{Dim: dim}
	for i := 0; i < dim; i++ {
		s.Values[i] = v
	}
	return s
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
