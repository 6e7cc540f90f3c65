package pipeline

import (
	"errors"
	"testing"

	"github.com/gogpu/photon/gpucore"
)

func TestKernelRegistryMemoizesByName(t *testing.T) {
	reg := NewKernelRegistry(0)

	builds := 0
	build := func() (gpucore.ComputePipelineID, error) {
		builds++
		return gpucore.ComputePipelineID(builds), nil
	}

	id1, err := reg.GetOrCompileKernel("megakernel", build)
	if err != nil {
		t.Fatalf("GetOrCompileKernel: %v", err)
	}
	id2, err := reg.GetOrCompileKernel("megakernel", build)
	if err != nil {
		t.Fatalf("GetOrCompileKernel: %v", err)
	}

	if id1 != id2 {
		t.Fatalf("expected the same pipeline id for repeated requests of the same name, got %v != %v", id1, id2)
	}
	if builds != 1 {
		t.Fatalf("expected build to run exactly once, ran %d times", builds)
	}
}

func TestKernelRegistryDistinctNamesCompileIndependently(t *testing.T) {
	reg := NewKernelRegistry(0)

	a, _ := reg.GetOrCompileKernel("clear", func() (gpucore.ComputePipelineID, error) { return 1, nil })
	b, _ := reg.GetOrCompileKernel("tonemap", func() (gpucore.ComputePipelineID, error) { return 2, nil })

	if a == b {
		t.Fatalf("expected distinct names to resolve to distinct pipelines")
	}
	if reg.KernelCount() != 2 {
		t.Fatalf("expected 2 kernels registered, got %d", reg.KernelCount())
	}
}

func TestKernelRegistryPropagatesBuildError(t *testing.T) {
	reg := NewKernelRegistry(0)
	wantErr := errors.New("compile failed")

	_, err := reg.GetOrCompileKernel("broken", func() (gpucore.ComputePipelineID, error) {
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected build error to propagate, got %v", err)
	}
	if reg.KernelCount() != 0 {
		t.Fatalf("expected a failed build not to populate the cache, got %d entries", reg.KernelCount())
	}
}

func TestKernelRegistryCallableFragmentsMemoize(t *testing.T) {
	reg := NewKernelRegistry(0)

	builds := 0
	build := func() (string, error) {
		builds++
		return "fn cie_importance_sample(...) { ... }", nil
	}

	src1, err := reg.GetOrBuildCallable("cie_xyz_importance", build)
	if err != nil {
		t.Fatalf("GetOrBuildCallable: %v", err)
	}
	src2, err := reg.GetOrBuildCallable("cie_xyz_importance", build)
	if err != nil {
		t.Fatalf("GetOrBuildCallable: %v", err)
	}
	if src1 != src2 || builds != 1 {
		t.Fatalf("expected the callable fragment to be built once and shared, builds=%d", builds)
	}
	if reg.CallableCount() != 1 {
		t.Fatalf("expected 1 callable fragment registered, got %d", reg.CallableCount())
	}
}
