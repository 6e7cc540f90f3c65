package texture

import (
	"testing"

	"github.com/gogpu/photon/shading"
	"github.com/gogpu/photon/spectrum"
)

func TestConstantTextureEvaluateReturnsValue(t *testing.T) {
	c := NewConstantTexture([4]float64{0.2, 0.4, 0.6, 1}, 3)
	got := c.Evaluate(shading.Interaction{}, spectrum.SampledWavelengths{}, 0)
	if got != [4]float64{0.2, 0.4, 0.6, 1} {
		t.Fatalf("Evaluate() = %v, want the constant value", got)
	}
}

func TestConstantTextureIsBlackOnlyWhenAllChannelsZero(t *testing.T) {
	black := NewConstantTexture([4]float64{0, 0, 0, 1}, 3)
	if !black.IsBlack() {
		t.Fatalf("expected zero rgb to be black")
	}
	notBlack := NewConstantTexture([4]float64{0, 0.1, 0, 1}, 3)
	if notBlack.IsBlack() {
		t.Fatalf("expected nonzero channel to not be black")
	}
}

func TestCheckerboardSelectsOnAndOffByUV(t *testing.T) {
	on := NewConstantTexture([4]float64{1, 1, 1, 1}, 3)
	off := NewConstantTexture([4]float64{0, 0, 0, 1}, 3)
	c := CheckerboardTexture{On: on, Off: off, Scale: [2]float64{1, 1}}

	onHit := shading.Interaction{UV: [2]float64{0.1, 0.1}}
	offHit := shading.Interaction{UV: [2]float64{1.1, 0.1}}

	if got := c.Evaluate(onHit, spectrum.SampledWavelengths{}, 0); got[0] != 1 {
		t.Fatalf("expected 'on' texture at uv %v, got %v", onHit.UV, got)
	}
	if got := c.Evaluate(offHit, spectrum.SampledWavelengths{}, 0); got[0] != 0 {
		t.Fatalf("expected 'off' texture at uv %v, got %v", offHit.UV, got)
	}
}

func TestCheckerboardDefaultsOnWhiteOffBlack(t *testing.T) {
	c := CheckerboardTexture{Scale: [2]float64{1, 1}}
	if c.IsBlack() {
		t.Fatalf("a checkerboard with no 'on' texture defaults on to white, so it should not be black")
	}
	got := c.Evaluate(shading.Interaction{UV: [2]float64{0, 0}}, spectrum.SampledWavelengths{}, 0)
	if got != [4]float64{1, 1, 1, 1} {
		t.Fatalf("expected default-on cell to evaluate to white, got %v", got)
	}
}

func TestTextureRegistryResolvesConstant(t *testing.T) {
	names := Names()
	found := false
	for _, n := range names {
		if n == "Constant" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'Constant' to be registered, got %v", names)
	}
}
