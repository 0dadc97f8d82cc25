package regs_test

import (
	"testing"

	"github.com/clktmr/picogs/gs/regs"
	"github.com/clktmr/picogs/gs/texture"
)

// The reset value of the CC_MODE register is the modulate configuration.
func TestCombineModePack(t *testing.T) {
	const modulate = 0x7670767073717371
	if got := regs.Modulate.Pack(); got != modulate {
		t.Errorf("Modulate.Pack() = %#x, want %#x", got, modulate)
	}
	if got := regs.UnpackCombineMode(modulate); got != regs.Modulate {
		t.Errorf("UnpackCombineMode = %+v", got)
	}
}

func TestTexConfigPack(t *testing.T) {
	cfg := regs.TexConfig{
		Enable:     true,
		Filter:     regs.FilterNearest,
		Format:     texture.RGB565,
		WidthLog2:  4,
		HeightLog2: 4,
		UWrap:      regs.WrapRepeat,
		VWrap:      regs.WrapRepeat,
		BaseAddr:   0x0100,
	}
	// matches the value the verification scripts write for a 16x16 RGB565
	// texture at base 0x0100*512
	want := uint64(1) | 4<<4 | 4<<8 | 4<<12 | 0x0100<<32
	if got := cfg.Pack(); got != want {
		t.Errorf("Pack() = %#x, want %#x", got, want)
	}
	if got := regs.UnpackTexConfig(want); got != cfg {
		t.Errorf("UnpackTexConfig = %+v", got)
	}
}

func TestRenderModePack(t *testing.T) {
	for name, mode := range map[string]regs.RenderMode{
		"gouraud":   {Gouraud: true, ColorWrite: true},
		"zbuffered": {Gouraud: true, ZTest: true, ZWrite: true, ColorWrite: true, ZCompare: regs.ZLequal},
		"zclear":    {ZWrite: true, ZCompare: regs.ZAlways},
		"alphatest": {ColorWrite: true, AlphaTest: regs.AlphaGequal, AlphaRef: 0x80},
		"stippled":  {ColorWrite: true, Stipple: true, Dither: true, DitherPattern: 2},
		"culled":    {ColorWrite: true, Cull: regs.CullCCW, Blend: regs.BlendAlpha},
	} {
		t.Run(name, func(t *testing.T) {
			if got := regs.UnpackRenderMode(mode.Pack()); got != mode {
				t.Errorf("round trip: got %+v, want %+v", got, mode)
			}
		})
	}

	// zclear idiom from the depth test scripts: Z write only, compare
	// always
	if got := regs.UnpackRenderMode(1<<3 | 6<<13); !got.ZWrite || got.ZCompare != regs.ZAlways {
		t.Errorf("zclear decode: %+v", got)
	}
}

func TestZComparePass(t *testing.T) {
	for _, tc := range []struct {
		cmp       regs.ZCompare
		z, stored uint16
		want      bool
	}{
		{regs.ZLess, 1, 2, true},
		{regs.ZLess, 2, 2, false},
		{regs.ZLequal, 2, 2, true},
		{regs.ZEqual, 5, 5, true},
		{regs.ZEqual, 5, 6, false},
		{regs.ZGequal, 7, 7, true},
		{regs.ZGreater, 8, 7, true},
		{regs.ZGreater, 7, 7, false},
		{regs.ZNotequal, 7, 7, false},
		{regs.ZAlways, 0xffff, 0, true},
		{regs.ZNever, 0, 0xffff, false},
	} {
		if got := tc.cmp.Pass(tc.z, tc.stored); got != tc.want {
			t.Errorf("%v.Pass(%d, %d) = %v", tc.cmp, tc.z, tc.stored, got)
		}
	}
}

func TestScissorPack(t *testing.T) {
	s := regs.Scissor{X: 0, Y: 0, Width: 512, Height: 512}
	if got := regs.UnpackScissor(s.Pack()); got != s {
		t.Errorf("round trip: %+v", got)
	}
	r := s.Rect()
	if r.Dx() != 512 || r.Dy() != 512 {
		t.Errorf("Rect() = %v", r)
	}
}

func TestStipplePass(t *testing.T) {
	// vertical stripes: even columns pass
	var pattern uint64
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x += 2 {
			pattern |= 1 << (y*8 + x)
		}
	}
	if !regs.StipplePass(pattern, 0, 0) || regs.StipplePass(pattern, 1, 0) {
		t.Error("stripe pattern mismatch at row 0")
	}
	// repeats every 8 pixels
	if !regs.StipplePass(pattern, 8, 13) || regs.StipplePass(pattern, 9, 13) {
		t.Error("stripe pattern mismatch at row 13")
	}
}
