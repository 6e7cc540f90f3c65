package backend

import (
	"testing"

	"github.com/gogpu/photon/gpucore"
)

func TestSoftwareBackendName(t *testing.T) {
	b := NewSoftwareBackend()
	if b.Name() != "software" {
		t.Errorf("Name() = %q, want %q", b.Name(), "software")
	}
}

func TestSoftwareBackendInit(t *testing.T) {
	b := NewSoftwareBackend()
	if err := b.Init(0); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer b.Close()

	if b.Adapter() == nil {
		t.Error("Adapter() should not be nil after Init")
	}
}

func TestSoftwareAdapterBufferRoundTrip(t *testing.T) {
	a := NewSoftwareAdapter()

	id, err := a.CreateBuffer(gpucore.BufferDesc{Label: "test", Size: 16, Usage: gpucore.BufferUsageStorage})
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}

	want := []byte{1, 2, 3, 4}
	if err := a.WriteBuffer(id, 4, want); err != nil {
		t.Fatalf("WriteBuffer() error = %v", err)
	}

	got, err := a.ReadBuffer(id, 4, 4)
	if err != nil {
		t.Fatalf("ReadBuffer() error = %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ReadBuffer()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSoftwareAdapterWriteBufferOutOfBounds(t *testing.T) {
	a := NewSoftwareAdapter()
	id, _ := a.CreateBuffer(gpucore.BufferDesc{Size: 4})
	if err := a.WriteBuffer(id, 2, []byte{1, 2, 3}); err == nil {
		t.Error("WriteBuffer() should fail when writing past buffer end")
	}
}

func TestSoftwareAdapterDispatch(t *testing.T) {
	a := NewSoftwareAdapter()

	bufID, _ := a.CreateBuffer(gpucore.BufferDesc{Size: 4})
	layoutID, _ := a.CreateBindGroupLayout(gpucore.BindGroupLayoutDesc{
		Entries: []gpucore.BindGroupLayoutEntry{{Binding: 0, Type: gpucore.BindingTypeStorageBuffer}},
	})
	groupID, _ := a.CreateBindGroup(gpucore.BindGroupDesc{
		Layout:  layoutID,
		Entries: []gpucore.BindGroupEntry{{Binding: 0, Buffer: bufID}},
	})
	shaderID, _ := a.CreateShaderModule("fill", nil)

	a.RegisterKernel("fill", func(ctx *DispatchContext) error {
		buf := ctx.Buffer(0)
		for i := range buf {
			buf[i] = 0xAA
		}
		return nil
	})

	pipelineID, err := a.CreateComputePipeline(gpucore.ComputePipelineDesc{
		ShaderModule: shaderID,
		EntryPoint:   "fill",
	})
	if err != nil {
		t.Fatalf("CreateComputePipeline() error = %v", err)
	}

	if err := a.Dispatch(pipelineID, []gpucore.BindGroupID{groupID}, 1, 1, 1); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	got, _ := a.ReadBuffer(bufID, 0, 4)
	for i, b := range got {
		if b != 0xAA {
			t.Errorf("buffer[%d] = %#x, want 0xAA", i, b)
		}
	}
}

func TestSoftwareAdapterDispatchUnregisteredKernel(t *testing.T) {
	a := NewSoftwareAdapter()
	shaderID, _ := a.CreateShaderModule("missing", nil)
	if _, err := a.CreateComputePipeline(gpucore.ComputePipelineDesc{ShaderModule: shaderID, EntryPoint: "missing"}); err == nil {
		t.Error("CreateComputePipeline() should fail for an unregistered entry point")
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	// Software backend is auto-registered via init()
	if !IsRegistered("software") {
		t.Error("software backend should be auto-registered")
	}

	b := Get("software")
	if b == nil {
		t.Fatal("Get(software) returned nil")
	}
	if b.Name() != "software" {
		t.Errorf("Get(software).Name() = %q, want %q", b.Name(), "software")
	}
}

func TestRegistryGetUnregistered(t *testing.T) {
	b := Get("nonexistent")
	if b != nil {
		t.Error("Get(nonexistent) should return nil")
	}
}

func TestRegistryAvailable(t *testing.T) {
	available := Available()
	found := false
	for _, name := range available {
		if name == "software" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Available() should include 'software'")
	}
}

func TestRegistryDefault(t *testing.T) {
	b := Default()
	if b == nil {
		t.Fatal("Default() returned nil")
	}
	// Software should be the default when no wgpu device is registered
	// in this process (the wgpu backend self-registers only when
	// backend/wgpu is imported).
	if b.Name() != "software" {
		t.Logf("Default() returned %q (may vary based on available backends)", b.Name())
	}
}

func TestRegistryMustDefault(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustDefault() panicked: %v", r)
		}
	}()
	b := MustDefault()
	if b == nil {
		t.Error("MustDefault() returned nil")
	}
}

func TestRegistryInitDefault(t *testing.T) {
	b, err := InitDefault(0)
	if err != nil {
		t.Fatalf("InitDefault() error = %v", err)
	}
	if b == nil {
		t.Fatal("InitDefault() returned nil backend")
	}
	defer b.Close()

	if b.Adapter() == nil {
		t.Error("backend from InitDefault() should expose a non-nil adapter")
	}
}

func TestRegistryUnregister(t *testing.T) {
	testFactory := func() ComputeBackend {
		return NewSoftwareBackend()
	}
	Register("test-backend", testFactory)

	if !IsRegistered("test-backend") {
		t.Error("test-backend should be registered")
	}

	Unregister("test-backend")

	if IsRegistered("test-backend") {
		t.Error("test-backend should be unregistered")
	}
}

func TestRegistryIsRegistered(t *testing.T) {
	if !IsRegistered("software") {
		t.Error("software should be registered")
	}
	if IsRegistered("nonexistent") {
		t.Error("nonexistent should not be registered")
	}
}
