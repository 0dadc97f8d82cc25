// Package pixel implements the per-fragment pipeline: scissor, stipple and
// depth tests, texture sampling, the color combiner, alpha test, blending,
// dithering and the tiled framebuffer writeback.
package pixel

import (
	"github.com/clktmr/picogs/gs/combiner"
	"github.com/clktmr/picogs/gs/fixed"
	"github.com/clktmr/picogs/gs/raster"
	"github.com/clktmr/picogs/gs/regs"
	"github.com/clktmr/picogs/gs/sdram"
	"github.com/clktmr/picogs/gs/texcache"
	"github.com/clktmr/picogs/gs/texture"
)

// Config is the register state snapshot one primitive is shaded with.
type Config struct {
	Mode    regs.RenderMode
	Fb      regs.FbConfig
	Scissor regs.Scissor
	ZRange  regs.ZRangeCfg
	Stipple uint64
	Combine regs.CombineMode
	Const   [2]regs.RGBA
	Lod     int32 // Q4.12 level of detail, constant per primitive
}

// Pipeline consumes fragments from the bus and retires them into the
// framebuffer and depth buffer.
type Pipeline struct {
	mem *sdram.Memory
	tex [2]*texcache.Sampler
	cfg Config
}

func New(mem *sdram.Memory, tex0, tex1 *texcache.Sampler) *Pipeline {
	return &Pipeline{mem: mem, tex: [2]*texcache.Sampler{tex0, tex1}}
}

func (p *Pipeline) Configure(cfg Config) { p.cfg = cfg }

// Drain shades fragments until the bus is closed and drained.
func (p *Pipeline) Drain(bus *raster.Bus) {
	for {
		f, ok := bus.Recv()
		if !ok {
			return
		}
		p.Shade(f)
	}
}

// Shade runs one fragment through all stages. Stages discard by returning
// early, a retired fragment updates color and depth according to the write
// enables.
func (p *Pipeline) Shade(f raster.Fragment) {
	x, y := int(f.X), int(f.Y)
	m := &p.cfg.Mode

	// An empty scissor rectangle disables the test.
	if r := p.cfg.Scissor.Rect(); !r.Empty() &&
		(x < r.Min.X || x >= r.Max.X || y < r.Min.Y || y >= r.Max.Y) {
		return
	}
	if m.Stipple && !regs.StipplePass(p.cfg.Stipple, x, y) {
		return
	}
	if f.Z < p.cfg.ZRange.Min || f.Z > p.cfg.ZRange.Max {
		return
	}

	zAddr := p.cfg.Fb.ZWords() + texture.TiledOffset(x, y, int(p.cfg.Fb.WidthLog2))
	if m.ZTest && m.ZCompare != regs.ZAlways {
		if !m.ZCompare.Pass(f.Z, p.mem.Word(zAddr)) {
			return
		}
	}

	in := combiner.Inputs{
		Shade0: combiner.Color(f.Shade[0]),
		Shade1: combiner.Color(f.Shade[1]),
		Const0: combiner.FromRGBA(p.cfg.Const[0]),
		Const1: combiner.FromRGBA(p.cfg.Const[1]),
		Tex0:   p.sample(0, f.UV[0], f.Q),
		Tex1:   p.sample(1, f.UV[1], f.Q),
	}
	out := combiner.Combine(p.cfg.Combine, &in).RGBA8()

	if !m.AlphaTest.Pass(out.A, m.AlphaRef) {
		return
	}

	if m.ColorWrite {
		cAddr := p.cfg.Fb.ColorWords() + texture.TiledOffset(x, y, int(p.cfg.Fb.WidthLog2))
		c := p.blend(out, cAddr)
		if m.Dither {
			c = dither(c, x, y, m.DitherPattern)
		}
		p.mem.SetWord(cAddr, texture.PackRGB565(c.R, c.G, c.B))
	}
	if m.ZWrite {
		p.mem.SetWord(zAddr, f.Z)
	}
}

// sample resolves one texture unit, dividing out the perspective weight. A
// disabled unit contributes opaque white so modulation passes through.
func (p *Pipeline) sample(unit int, uv regs.UV, q fixed.UInt4_12) combiner.Color {
	s := p.tex[unit]
	if s == nil || !s.Enabled() {
		one := fixed.Int4_12U(1)
		return combiner.Color{R: one, G: one, B: one, A: one}
	}
	u, v := uv.U, uv.V
	if q != 0 {
		u = fixed.Int4_12(int32(u) << 12 / int32(q))
		v = fixed.Int4_12(int32(v) << 12 / int32(q))
	}
	return combiner.FromRGBA(s.Sample(u, v, p.cfg.Lod))
}

// blend merges the combined color with the destination pixel.
func (p *Pipeline) blend(src regs.RGBA, cAddr int) regs.RGBA {
	if p.cfg.Mode.Blend == regs.BlendDisabled {
		return src
	}
	dst := expand565(p.mem.Word(cAddr))
	switch p.cfg.Mode.Blend {
	case regs.BlendAdd:
		return regs.RGBA{
			R: sat8(int32(dst.R) + int32(src.R)),
			G: sat8(int32(dst.G) + int32(src.G)),
			B: sat8(int32(dst.B) + int32(src.B)),
			A: src.A,
		}
	case regs.BlendSubtract:
		return regs.RGBA{
			R: sat8(int32(dst.R) - int32(src.R)),
			G: sat8(int32(dst.G) - int32(src.G)),
			B: sat8(int32(dst.B) - int32(src.B)),
			A: src.A,
		}
	case regs.BlendAlpha:
		a := int32(src.A)
		mix := func(s, d uint8) uint8 {
			return uint8((int32(s)*a + int32(d)*(255-a) + 127) / 255)
		}
		return regs.RGBA{
			R: mix(src.R, dst.R),
			G: mix(src.G, dst.G),
			B: mix(src.B, dst.B),
			A: src.A,
		}
	}
	return src
}

func sat8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 0xff {
		return 0xff
	}
	return uint8(v)
}

func expand565(p uint16) regs.RGBA {
	r := uint8(p >> 11 & 0x1f)
	g := uint8(p >> 5 & 0x3f)
	b := uint8(p & 0x1f)
	return regs.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xff,
	}
}

// bayer4 is the 4x4 ordered dither matrix.
var bayer4 = [16]uint8{
	0, 8, 2, 10,
	12, 4, 14, 6,
	3, 11, 1, 9,
	15, 7, 13, 5,
}

// dither adds an ordered offset scaled to the RGB565 quantization step.
// pattern rotates the matrix in quarter turns so interleaved passes don't
// reinforce the same cells.
func dither(c regs.RGBA, x, y int, pattern uint8) regs.RGBA {
	bx, by := x&3, y&3
	switch pattern & 3 {
	case 1:
		bx, by = 3-by, bx
	case 2:
		bx, by = 3-bx, 3-by
	case 3:
		bx, by = by, 3-bx
	}
	d := int32(bayer4[by*4+bx])
	return regs.RGBA{
		R: sat8(int32(c.R) + (d>>1 - 4)),
		G: sat8(int32(c.G) + (d>>2 - 2)),
		B: sat8(int32(c.B) + (d>>1 - 4)),
		A: c.A,
	}
}
