package dispatch

import (
	"strings"
	"testing"
)

func TestSourceEmitsOneArmPerCase(t *testing.T) {
	src := Source("surface", []Case{{Tag: 0, Impl: "matte"}, {Tag: 1, Impl: "mirror"}})
	if !strings.Contains(src, "case 0u: { return surface_matte(data_ref); }") {
		t.Fatalf("missing matte arm in:\n%s", src)
	}
	if !strings.Contains(src, "case 1u: { return surface_mirror(data_ref); }") {
		t.Fatalf("missing mirror arm in:\n%s", src)
	}
}

func TestSourceEmitsDefaultArm(t *testing.T) {
	src := Source("light", nil)
	if !strings.Contains(src, "default: { return light_none(data_ref); }") {
		t.Fatalf("expected a default arm even with no cases:\n%s", src)
	}
}
