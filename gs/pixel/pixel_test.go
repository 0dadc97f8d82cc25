package pixel

import (
	"testing"

	"github.com/clktmr/picogs/gs/fixed"
	"github.com/clktmr/picogs/gs/raster"
	"github.com/clktmr/picogs/gs/regs"
	"github.com/clktmr/picogs/gs/sdram"
	"github.com/clktmr/picogs/gs/texcache"
	"github.com/clktmr/picogs/gs/texture"
)

// shadeOnly forwards the interpolated vertex color, no texture needed.
var shadeOnly = regs.CombineMode{
	One: regs.CombinePass{
		RGB:   regs.CombineParams{A: regs.CombineShade0, B: regs.CombineZero, C: regs.CombineOne, D: regs.CombineZero},
		Alpha: regs.CombineParams{A: regs.CombineShade0, B: regs.CombineZero, C: regs.CombineOne, D: regs.CombineZero},
	},
	Two: regs.PassThrough,
}

const fbLog2 = 6 // 64x64 render target

func testFb() regs.FbConfig {
	return regs.FbConfig{ColorBase: 0, ZBase: 16, WidthLog2: fbLog2, HeightLog2: fbLog2}
}

func testPipeline(t *testing.T) (*Pipeline, *sdram.Memory) {
	t.Helper()
	mem := sdram.New(1 << 20)
	p := New(mem, texcache.NewSampler(mem), texcache.NewSampler(mem))
	p.Configure(Config{
		Mode:    regs.RenderMode{ColorWrite: true, ZCompare: regs.ZAlways},
		Fb:      testFb(),
		ZRange:  regs.ZRangeCfg{Min: 0, Max: 0xffff},
		Combine: shadeOnly,
	})
	return p, mem
}

func shade(c regs.RGBA) raster.Shade {
	return raster.Shade{
		R: fixed.PromoteUNORM8(c.R),
		G: fixed.PromoteUNORM8(c.G),
		B: fixed.PromoteUNORM8(c.B),
		A: fixed.PromoteUNORM8(c.A),
	}
}

func frag(x, y int, c regs.RGBA, z uint16) raster.Fragment {
	return raster.Fragment{
		X: uint16(x), Y: uint16(y), Z: z,
		Shade: [2]raster.Shade{shade(c)},
	}
}

func colorWord(mem *sdram.Memory, x, y int) uint16 {
	return mem.Word(testFb().ColorWords() + texture.TiledOffset(x, y, fbLog2))
}

func zWord(mem *sdram.Memory, x, y int) uint16 {
	return mem.Word(testFb().ZWords() + texture.TiledOffset(x, y, fbLog2))
}

func TestColorWrite(t *testing.T) {
	p, mem := testPipeline(t)
	p.Shade(frag(3, 2, regs.RGBA{R: 0xff, A: 0xff}, 0))
	if got, want := colorWord(mem, 3, 2), texture.PackRGB565(0xff, 0, 0); got != want {
		t.Errorf("got %#04x, want %#04x", got, want)
	}
	if got := zWord(mem, 3, 2); got != 0 {
		t.Errorf("depth written without ZWrite: %#04x", got)
	}
}

func TestScissor(t *testing.T) {
	p, mem := testPipeline(t)
	cfg := p.cfg
	cfg.Scissor = regs.Scissor{X: 10, Y: 10, Width: 4, Height: 4}
	p.Configure(cfg)

	white := regs.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	p.Shade(frag(9, 10, white, 0))
	p.Shade(frag(10, 10, white, 0))
	p.Shade(frag(13, 13, white, 0))
	p.Shade(frag(14, 13, white, 0))

	for _, tc := range []struct {
		x, y    int
		covered bool
	}{
		{9, 10, false}, {10, 10, true}, {13, 13, true}, {14, 13, false},
	} {
		if got := colorWord(mem, tc.x, tc.y) != 0; got != tc.covered {
			t.Errorf("(%d,%d): written=%v, want %v", tc.x, tc.y, got, tc.covered)
		}
	}
}

func TestStipple(t *testing.T) {
	p, mem := testPipeline(t)
	cfg := p.cfg
	cfg.Mode.Stipple = true
	cfg.Stipple = 1 << (2*8 + 3) // only (3, 2) passes
	p.Configure(cfg)

	white := regs.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	p.Shade(frag(3, 2, white, 0))
	p.Shade(frag(4, 2, white, 0))
	if colorWord(mem, 3, 2) == 0 {
		t.Error("stippled-in pixel not written")
	}
	if colorWord(mem, 4, 2) != 0 {
		t.Error("stippled-out pixel written")
	}
}

func TestZRange(t *testing.T) {
	p, mem := testPipeline(t)
	cfg := p.cfg
	cfg.ZRange = regs.ZRangeCfg{Min: 0x1000, Max: 0x2000}
	p.Configure(cfg)

	white := regs.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for i, tc := range []struct {
		z       uint16
		covered bool
	}{
		{0x0fff, false}, {0x1000, true}, {0x2000, true}, {0x2001, false},
	} {
		p.Shade(frag(i, 0, white, tc.z))
		if got := colorWord(mem, i, 0) != 0; got != tc.covered {
			t.Errorf("z=%#04x: written=%v, want %v", tc.z, got, tc.covered)
		}
	}
}

func TestDepthTest(t *testing.T) {
	p, mem := testPipeline(t)
	cfg := p.cfg
	cfg.Mode.ZTest = true
	cfg.Mode.ZWrite = true
	cfg.Mode.ZCompare = regs.ZLess
	p.Configure(cfg)

	mem.SetWord(testFb().ZWords()+texture.TiledOffset(5, 5, fbLog2), 0x8000)

	white := regs.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	p.Shade(frag(5, 5, white, 0x7fff))
	if colorWord(mem, 5, 5) == 0 {
		t.Error("nearer fragment rejected")
	}
	if got := zWord(mem, 5, 5); got != 0x7fff {
		t.Errorf("depth not updated: %#04x", got)
	}

	p.Shade(frag(5, 5, regs.RGBA{G: 0xff, A: 0xff}, 0x9000))
	if got := zWord(mem, 5, 5); got != 0x7fff {
		t.Errorf("farther fragment updated depth: %#04x", got)
	}
	if got, want := colorWord(mem, 5, 5), texture.PackRGB565(0xff, 0xff, 0xff); got != want {
		t.Errorf("farther fragment overwrote color: %#04x", got)
	}
}

// The host clears the depth buffer by drawing full-screen triangles with
// color writes off and the depth test forced to pass.
func TestDepthClear(t *testing.T) {
	p, mem := testPipeline(t)
	mem.SetWord(testFb().ZWords()+texture.TiledOffset(7, 7, fbLog2), 0x1234)

	cfg := p.cfg
	cfg.Mode.ColorWrite = false
	cfg.Mode.ZTest = true
	cfg.Mode.ZCompare = regs.ZAlways
	cfg.Mode.ZWrite = true
	p.Configure(cfg)

	p.Shade(frag(7, 7, regs.RGBA{R: 0xff}, 0xffff))
	if got := zWord(mem, 7, 7); got != 0xffff {
		t.Errorf("depth not cleared: %#04x", got)
	}
	if got := colorWord(mem, 7, 7); got != 0 {
		t.Errorf("color written during clear: %#04x", got)
	}
}

func TestAlphaTest(t *testing.T) {
	p, mem := testPipeline(t)
	cfg := p.cfg
	cfg.Mode.AlphaTest = regs.AlphaGequal
	cfg.Mode.AlphaRef = 0x80
	p.Configure(cfg)

	p.Shade(frag(0, 0, regs.RGBA{R: 0xff, A: 0x7f}, 0))
	p.Shade(frag(1, 0, regs.RGBA{R: 0xff, A: 0x80}, 0))
	if colorWord(mem, 0, 0) != 0 {
		t.Error("fragment below reference written")
	}
	if colorWord(mem, 1, 0) == 0 {
		t.Error("fragment at reference rejected")
	}
}

func TestBlend(t *testing.T) {
	for name, tc := range map[string]struct {
		blend regs.AlphaBlend
		src   regs.RGBA
		dst   uint16
		want  uint16
	}{
		"add": {
			regs.BlendAdd,
			regs.RGBA{R: 0x40, A: 0xff},
			texture.PackRGB565(0x40, 0, 0),
			texture.PackRGB565(0x82, 0, 0),
		},
		"subtract": {
			regs.BlendSubtract,
			regs.RGBA{R: 0x40, A: 0xff},
			texture.PackRGB565(0x80, 0, 0),
			texture.PackRGB565(0x42, 0, 0),
		},
		"alpha": {
			regs.BlendAlpha,
			regs.RGBA{R: 0xff, A: 0x80},
			texture.PackRGB565(0, 0, 0xff),
			0x800f,
		},
	} {
		t.Run(name, func(t *testing.T) {
			p, mem := testPipeline(t)
			cfg := p.cfg
			cfg.Mode.Blend = tc.blend
			p.Configure(cfg)

			mem.SetWord(testFb().ColorWords()+texture.TiledOffset(0, 0, fbLog2), tc.dst)
			p.Shade(frag(0, 0, tc.src, 0))
			if got := colorWord(mem, 0, 0); got != tc.want {
				t.Errorf("got %#04x, want %#04x", got, tc.want)
			}
		})
	}
}

func TestDither(t *testing.T) {
	p, mem := testPipeline(t)
	cfg := p.cfg
	cfg.Mode.Dither = true
	p.Configure(cfg)

	// A shade near a quantization step lands on different sides of it in
	// different dither cells.
	c := regs.RGBA{R: 0x83, G: 0x83, B: 0x83, A: 0xff}
	p.Shade(frag(0, 0, c, 0))
	p.Shade(frag(3, 0, c, 0))
	if colorWord(mem, 0, 0) == colorWord(mem, 3, 0) {
		t.Error("uniform shade dithered identically across cells")
	}
}

func TestTexturedModulate(t *testing.T) {
	p, mem := testPipeline(t)

	// Solid mid-gray 16x16 RGB565 texture at word address 0x8000.
	const texBase = 0x8000
	gray := texture.PackRGB565(0x80, 0x80, 0x80)
	for i := 0; i < 256; i++ {
		mem.SetWord(texBase+i, gray)
	}
	p.tex[0].Configure(regs.TexConfig{
		Enable: true, Format: texture.RGB565,
		WidthLog2: 4, HeightLog2: 4,
		BaseAddr: texBase >> 8,
	})
	cfg := p.cfg
	cfg.Combine = regs.Modulate
	p.Configure(cfg)

	white := regs.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	f := frag(1, 1, white, 0)
	f.UV[0] = regs.UV{U: 0x800, V: 0x800}
	p.Shade(f)

	if got, want := colorWord(mem, 1, 1), gray; got != want {
		t.Errorf("got %#04x, want %#04x", got, want)
	}
}

func TestPerspectiveDivide(t *testing.T) {
	p, mem := testPipeline(t)

	const texBase = 0x8000
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			off := texBase + texture.TiledOffset(x, y, 4)
			mem.SetWord(off, texture.PackRGB565(uint8(x<<3), 0, 0))
		}
	}
	p.tex[0].Configure(regs.TexConfig{
		Enable: true, Format: texture.RGB565,
		WidthLog2: 4, HeightLog2: 4,
		BaseAddr: texBase >> 8,
	})
	cfg := p.cfg
	cfg.Combine = regs.Decal
	p.Configure(cfg)

	// Premultiplied u = 0.125 with q = 0.5 addresses u = 0.25, texel 4.
	f := frag(0, 0, regs.RGBA{}, 0)
	f.UV[0] = regs.UV{U: 0x200, V: 0}
	f.Q = 0x800
	p.Shade(f)

	if got, want := colorWord(mem, 0, 0), texture.PackRGB565(4<<3, 0, 0); got != want {
		t.Errorf("got %#04x, want %#04x", got, want)
	}
}
