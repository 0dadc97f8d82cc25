package gpu

import (
	"math/bits"
	"testing"

	"github.com/clktmr/picogs/gs/fixed"
	"github.com/clktmr/picogs/gs/regs"
	"github.com/clktmr/picogs/gs/texture"
)

func vtxWord(x, y int, z uint16) uint64 {
	return regs.VertexWord{X: fixed.Int12_4U(x), Y: fixed.Int12_4U(y), Z: z}.Pack()
}

// areaSetupFor computes the host side of triangle setup, the reciprocal of
// twice the signed area.
func areaSetupFor(x0, y0, x1, y1, x2, y2 int) uint64 {
	area2 := (y0-y1)*(x2-x0) + (x1-x0)*(y2-y0)
	d := uint32(area2)
	if area2 < 0 {
		d = uint32(-area2)
	}
	var shift uint8
	if n := bits.Len32(d); n > 16 {
		shift = uint8(n - 16)
	}
	ds := d >> shift
	return regs.AreaSetupCfg{InvArea: uint16((1<<16 + ds/2) / ds), Shift: shift}.Pack()
}

func testCore(t *testing.T, mode regs.RenderMode) *Core {
	t.Helper()
	c := New()
	c.WriteReg(regs.RegFbConfig, regs.FbConfig{
		ColorBase: 0, ZBase: 16, WidthLog2: 6, HeightLog2: 6,
	}.Pack())
	c.WriteReg(regs.RegRenderMode, mode.Pack())
	return c
}

func TestID(t *testing.T) {
	c := New()
	v := c.ReadReg(regs.RegID)
	if v&0xffff != regs.DeviceID {
		t.Errorf("device id %#04x, want %#04x", v&0xffff, regs.DeviceID)
	}
	if v>>16&0xffff != regs.Version {
		t.Errorf("version %#04x, want %#04x", v>>16&0xffff, regs.Version)
	}
}

func TestMemPort(t *testing.T) {
	c := New()
	c.WriteReg(regs.RegMemAddr, 0x100)
	c.WriteReg(regs.RegMemData, 0x0123456789abcdef)
	c.WriteReg(regs.RegMemData, 0xfedcba9876543210)

	c.WriteReg(regs.RegMemAddr, 0x100)
	if got := c.ReadReg(regs.RegMemData); got != 0x0123456789abcdef {
		t.Errorf("dword 0: %#016x", got)
	}
	if got := c.ReadReg(regs.RegMemData); got != 0xfedcba9876543210 {
		t.Errorf("dword 1: %#016x", got)
	}
	// low word first within the dword
	if got := c.Mem().Word(0x100 << 2); got != 0xcdef {
		t.Errorf("word order: %#04x", got)
	}
}

func TestRegReadback(t *testing.T) {
	c := New()
	for name, tc := range map[string]struct {
		reg regs.Reg
		val uint64
	}{
		"render mode": {regs.RegRenderMode, regs.RenderMode{
			Gouraud: true, ZTest: true, ZWrite: true, ColorWrite: true,
			ZCompare: regs.ZLequal, Blend: regs.BlendAlpha,
		}.Pack()},
		"z range":   {regs.RegZRange, regs.ZRangeCfg{Min: 0x10, Max: 0xfff0}.Pack()},
		"stipple":   {regs.RegStipple, 0xaa55aa55aa55aa55},
		"fb config": {regs.RegFbConfig, regs.FbConfig{ColorBase: 4, ZBase: 20, WidthLog2: 8, HeightLog2: 7}.Pack()},
		"scissor":   {regs.RegFbControl, regs.Scissor{X: 1, Y: 2, Width: 3, Height: 4}.Pack()},
		"cc mode":   {regs.RegCcMode, regs.Modulate.Pack()},
	} {
		t.Run(name, func(t *testing.T) {
			c.WriteReg(tc.reg, tc.val)
			if got := c.ReadReg(tc.reg); got != tc.val {
				t.Errorf("got %#016x, want %#016x", got, tc.val)
			}
		})
	}
}

func TestPerfTimestamp(t *testing.T) {
	c := New()
	t0 := c.ReadReg(regs.RegPerfTimestamp)
	t1 := c.ReadReg(regs.RegPerfTimestamp)
	if t1 < t0 {
		t.Errorf("timestamp not monotonic: %d then %d", t0, t1)
	}
}

func TestGouraudTriangle(t *testing.T) {
	c := testCore(t, regs.RenderMode{
		Gouraud: true, ColorWrite: true, ZCompare: regs.ZAlways,
	})
	c.WriteReg(regs.RegAreaSetup, areaSetupFor(8, 8, 56, 8, 8, 56))

	red := regs.RGBA{R: 0xff, A: 0xff}
	green := regs.RGBA{G: 0xff, A: 0xff}
	blue := regs.RGBA{B: 0xff, A: 0xff}
	c.WriteReg(regs.RegColor, regs.PackColors(red, red))
	c.WriteReg(regs.RegVertexNoKick, vtxWord(8, 8, 0x8000))
	c.WriteReg(regs.RegColor, regs.PackColors(green, green))
	c.WriteReg(regs.RegVertexNoKick, vtxWord(56, 8, 0x8000))
	c.WriteReg(regs.RegColor, regs.PackColors(blue, blue))
	c.WriteReg(regs.RegVertexKick012, vtxWord(8, 56, 0x8000))

	img := c.Image()
	covered := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r|g|b != 0 {
				covered++
			}
		}
	}
	// half of the 48x48 bounding box, up to edge quantization
	if covered < 1000 || covered > 1300 {
		t.Errorf("covered %d pixels, want about 1152", covered)
	}

	for name, tc := range map[string]struct {
		x, y     int
		dominant func(r, g, b uint32) bool
	}{
		"red corner":   {9, 9, func(r, g, b uint32) bool { return r > 2*g && r > 2*b }},
		"green corner": {53, 9, func(r, g, b uint32) bool { return g > 2*r && g > 2*b }},
		"blue corner":  {9, 53, func(r, g, b uint32) bool { return b > 2*r && b > 2*g }},
	} {
		t.Run(name, func(t *testing.T) {
			r, g, b, _ := img.At(tc.x, tc.y).RGBA()
			if !tc.dominant(r+1, g+1, b+1) {
				t.Errorf("got rgb %04x %04x %04x", r, g, b)
			}
		})
	}
}

func TestDepthOcclusion(t *testing.T) {
	c := testCore(t, regs.RenderMode{
		ColorWrite: true, ZTest: true, ZWrite: true, ZCompare: regs.ZLess,
	})
	// clear the depth buffer to the far plane
	c.WriteReg(regs.RegMemFill, regs.MemFillCmd{Base: 16, Value: 0xffff, Count: 4096}.Pack())

	draw := func(col regs.RGBA, z uint16) {
		c.WriteReg(regs.RegAreaSetup, areaSetupFor(8, 8, 56, 8, 32, 56))
		c.WriteReg(regs.RegColor, regs.PackColors(col, col))
		c.WriteReg(regs.RegVertexNoKick, vtxWord(8, 8, z))
		c.WriteReg(regs.RegVertexNoKick, vtxWord(56, 8, z))
		c.WriteReg(regs.RegVertexKick012, vtxWord(32, 56, z))
	}

	check := func(step string, want func(r, g, b uint32) bool) {
		t.Helper()
		r, g, b, _ := c.Image().At(32, 30).RGBA()
		if !want(r, g, b) {
			t.Errorf("%s: center rgb %04x %04x %04x", step, r, g, b)
		}
	}

	draw(regs.RGBA{R: 0xff, A: 0xff}, 0x8000)
	check("near", func(r, g, b uint32) bool { return r > 0xc000 && g == 0 })
	draw(regs.RGBA{G: 0xff, A: 0xff}, 0x9000)
	check("occluded", func(r, g, b uint32) bool { return r > 0xc000 && g == 0 })
	draw(regs.RGBA{B: 0xff, A: 0xff}, 0x7000)
	check("nearer", func(r, g, b uint32) bool { return b > 0xc000 && r == 0 })
}

func TestTexturedRect(t *testing.T) {
	c := testCore(t, regs.RenderMode{
		ColorWrite: true, ZCompare: regs.ZAlways,
	})

	// 16x16 single-texel checkerboard at word address 0x8000
	const texBase = 0x8000
	white := texture.PackRGB565(0xff, 0xff, 0xff)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			var p uint16
			if (x+y)&1 == 0 {
				p = white
			}
			c.Mem().SetWord(texBase+texture.TiledOffset(x, y, 4), p)
		}
	}
	c.WriteReg(regs.RegTex0Cfg, regs.TexConfig{
		Enable: true, Format: texture.RGB565,
		WidthLog2: 4, HeightLog2: 4,
		BaseAddr: texBase >> 8,
	}.Pack())
	c.WriteReg(regs.RegCcMode, regs.CombineMode{One: regs.CombinePass{
		RGB:   regs.CombineParams{A: regs.CombineTex0, B: regs.CombineZero, C: regs.CombineOne, D: regs.CombineZero},
		Alpha: regs.CombineParams{A: regs.CombineTex0, B: regs.CombineZero, C: regs.CombineOne, D: regs.CombineZero},
	}, Two: regs.PassThrough}.Pack())

	// one texel per pixel over a 16x16 rect at the origin
	uv := func(u, v fixed.Int4_12) uint64 { return regs.PackUVs(regs.UV{U: u, V: v}, regs.UV{}) }
	c.WriteReg(regs.RegUV0UV1, uv(0, 0))
	c.WriteReg(regs.RegVertexNoKick, vtxWord(0, 0, 0))
	c.WriteReg(regs.RegUV0UV1, uv(0xf00, 0))
	c.WriteReg(regs.RegVertexNoKick, vtxWord(15, 0, 0))
	c.WriteReg(regs.RegUV0UV1, uv(0xf00, 0xf00))
	c.WriteReg(regs.RegVertexKickRect, vtxWord(15, 15, 0))

	for _, p := range []struct {
		x, y  int
		white bool
	}{
		{0, 0, true}, {1, 0, false}, {0, 1, false}, {1, 1, true},
		{15, 15, true}, {14, 15, false},
	} {
		r, _, _, _ := c.Image().At(p.x, p.y).RGBA()
		if got := r > 0x8000; got != p.white {
			t.Errorf("(%d,%d): white=%v, want %v", p.x, p.y, got, p.white)
		}
	}
}
