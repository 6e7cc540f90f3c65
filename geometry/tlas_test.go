package geometry

import "testing"

func TestTopLevelAccelBuildUploadsInstanceRecords(t *testing.T) {
	adapter := newFakeAdapter()
	tt, err := NewTransformTable(adapter, 4)
	if err != nil {
		t.Fatalf("NewTransformTable: %v", err)
	}
	id, err := tt.Add(Transform{Static: Identity4})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	accel := NewTopLevelAccel(adapter, tt)
	handle := Handle{BufferBase: 4, TriangleCount: 2}
	accel.AddInstance(Instance{Handle: handle, Transform: id})

	if err := accel.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if accel.InstanceCount() != 1 {
		t.Fatalf("InstanceCount() = %d, want 1", accel.InstanceCount())
	}

	data, err := adapter.ReadBuffer(accel.BufferID(), 0, instanceRecordBytes)
	if err != nil {
		t.Fatalf("ReadBuffer: %v", err)
	}
	words := handle.Encode()
	for i := 0; i < 4; i++ {
		got := uint32(data[i*4]) | uint32(data[i*4+1])<<8 | uint32(data[i*4+2])<<16 | uint32(data[i*4+3])<<24
		if got != words[i] {
			t.Fatalf("instance record word %d = %#x, want %#x", i, got, words[i])
		}
	}
}

func TestTopLevelAccelBuildTwiceFails(t *testing.T) {
	adapter := newFakeAdapter()
	tt, _ := NewTransformTable(adapter, 4)
	accel := NewTopLevelAccel(adapter, tt)
	if err := accel.Build(); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if err := accel.Build(); err == nil {
		t.Fatalf("expected second Build to fail")
	}
}

func TestTopLevelAccelUpdateBumpsGenerationAndRefitsTransforms(t *testing.T) {
	adapter := newFakeAdapter()
	tt, _ := NewTransformTable(adapter, 4)
	movingID, _ := tt.Add(Transform{TimeFunc: func(t float64) Mat4 {
		m := Identity4
		m[12] = float32(t)
		return m
	}})

	accel := NewTopLevelAccel(adapter, tt)
	accel.AddInstance(Instance{Handle: Handle{}, Transform: movingID})
	if err := accel.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	if accel.Generation() != 0 {
		t.Fatalf("expected generation 0 before any Update")
	}
	if err := accel.Update(5.0); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if accel.Generation() != 1 {
		t.Fatalf("expected generation 1 after one Update, got %d", accel.Generation())
	}

	data, _ := adapter.ReadBuffer(tt.BufferID(), uint64(movingID)*mat4Bytes, mat4Bytes)
	if got := readFloat32(data, 12*4); got != 5.0 {
		t.Fatalf("expected refit transform row to read 5.0, got %v", got)
	}
}
