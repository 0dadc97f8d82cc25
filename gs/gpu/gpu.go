// Package gpu ties the register file, local memory, texture caches,
// rasterizer and pixel pipeline together into one device model. Hosts drive
// it through WriteReg and ReadReg, the same surface the SPI bridge exposes.
package gpu

import (
	"image"
	"math/bits"
	"time"

	"github.com/clktmr/picogs/gs/pixel"
	"github.com/clktmr/picogs/gs/raster"
	"github.com/clktmr/picogs/gs/regs"
	"github.com/clktmr/picogs/gs/sdram"
	"github.com/clktmr/picogs/gs/texcache"
	"github.com/clktmr/picogs/gs/texture"
)

// busDepth is the fragment bus capacity between rasterizer and pixel
// pipeline.
const busDepth = 64

// perfTick is the period of the PERF_TIMESTAMP counter.
const perfTick = 8 * time.Nanosecond

// Core is one GS device instance.
type Core struct {
	mem  *sdram.Memory
	tex  [2]*texcache.Sampler
	pipe *pixel.Pipeline

	mode    regs.RenderMode
	area    regs.AreaSetupCfg
	fb      regs.FbConfig
	display regs.FbDisplay
	scissor regs.Scissor
	zrange  regs.ZRangeCfg
	stipple uint64
	combine regs.CombineMode
	cc      [2]regs.RGBA

	// vertex staging, shifted on every vertex write
	color [2]regs.RGBA
	uv    [2]regs.UV
	verts [3]raster.Vertex

	epoch time.Time
}

func New() *Core {
	mem := sdram.New(sdram.DefaultSize)
	tex0 := texcache.NewSampler(mem)
	tex1 := texcache.NewSampler(mem)
	return &Core{
		mem:     mem,
		tex:     [2]*texcache.Sampler{tex0, tex1},
		pipe:    pixel.New(mem, tex0, tex1),
		zrange:  regs.ZRangeCfg{Min: 0, Max: 0xffff},
		combine: regs.Modulate,
		epoch:   time.Now(),
	}
}

func (c *Core) Mem() *sdram.Memory { return c.mem }

// WriteReg latches one register write. Vertex kicks render synchronously, the
// write returns once the primitive fully retired.
func (c *Core) WriteReg(r regs.Reg, v uint64) {
	switch r {
	case regs.RegColor:
		c.color[0], c.color[1] = regs.UnpackColors(v)
	case regs.RegUV0UV1:
		c.uv[0], c.uv[1] = regs.UnpackUVs(v)
	case regs.RegAreaSetup:
		c.area = regs.UnpackAreaSetup(v)
	case regs.RegVertexNoKick:
		c.push(v)
	case regs.RegVertexKick012:
		c.push(v)
		c.kick(c.verts, false)
	case regs.RegVertexKick021:
		c.push(v)
		c.kick([3]raster.Vertex{c.verts[0], c.verts[2], c.verts[1]}, false)
	case regs.RegVertexKickRect:
		c.push(v)
		c.kick(c.verts, true)
	case regs.RegTex0Cfg:
		c.tex[0].Configure(regs.UnpackTexConfig(v))
	case regs.RegTex1Cfg:
		c.tex[1].Configure(regs.UnpackTexConfig(v))
	case regs.RegCcMode:
		c.combine = regs.UnpackCombineMode(v)
	case regs.RegConstColor:
		c.cc[0], c.cc[1] = regs.UnpackColors(v)
	case regs.RegRenderMode:
		c.mode = regs.UnpackRenderMode(v)
	case regs.RegZRange:
		c.zrange = regs.UnpackZRange(v)
	case regs.RegStipple:
		c.stipple = v
	case regs.RegFbConfig:
		c.fb = regs.UnpackFbConfig(v)
	case regs.RegFbDisplay:
		c.display = regs.UnpackFbDisplay(v)
	case regs.RegFbControl:
		c.scissor = regs.UnpackScissor(v)
	case regs.RegMemFill:
		c.mem.Fill(regs.UnpackMemFill(v))
	case regs.RegMemAddr:
		c.mem.SetPtr(v)
	case regs.RegMemData:
		c.mem.WriteData(v)
	}
}

// ReadReg returns a register's current value. State registers read back what
// was last written.
func (c *Core) ReadReg(r regs.Reg) uint64 {
	switch r {
	case regs.RegAreaSetup:
		return c.area.Pack()
	case regs.RegTex0Cfg:
		return c.tex[0].Config().Pack()
	case regs.RegTex1Cfg:
		return c.tex[1].Config().Pack()
	case regs.RegCcMode:
		return c.combine.Pack()
	case regs.RegConstColor:
		return regs.PackColors(c.cc[0], c.cc[1])
	case regs.RegRenderMode:
		return c.mode.Pack()
	case regs.RegZRange:
		return c.zrange.Pack()
	case regs.RegStipple:
		return c.stipple
	case regs.RegFbConfig:
		return c.fb.Pack()
	case regs.RegFbDisplay:
		return c.display.Pack()
	case regs.RegFbControl:
		return c.scissor.Pack()
	case regs.RegPerfTimestamp:
		return uint64(time.Since(c.epoch) / perfTick)
	case regs.RegMemData:
		return c.mem.ReadData()
	case regs.RegID:
		return regs.IDValue()
	}
	return 0
}

func (c *Core) push(v uint64) {
	w := regs.UnpackVertexWord(v)
	c.verts[0], c.verts[1] = c.verts[1], c.verts[2]
	c.verts[2] = raster.Vertex{
		X: w.X, Y: w.Y, Z: w.Z, Q: w.Q,
		Color: c.color, UV: c.uv,
	}
}

func (c *Core) kick(v [3]raster.Vertex, rect bool) {
	cfg := raster.Config{
		Mode:       c.mode,
		Area:       c.area,
		WidthLog2:  c.fb.WidthLog2,
		HeightLog2: c.fb.HeightLog2,
	}
	var r *raster.Rasterizer
	if rect {
		r = raster.Rect(v, cfg)
	} else {
		r = raster.Triangle(v, cfg)
	}
	c.pipe.Configure(pixel.Config{
		Mode:    c.mode,
		Fb:      c.fb,
		Scissor: c.scissor,
		ZRange:  c.zrange,
		Stipple: c.stipple,
		Combine: c.combine,
		Const:   c.cc,
		Lod:     c.lod(&v),
	})
	bus := raster.NewBus(busDepth)
	go r.Run(bus)
	c.pipe.Drain(bus)
}

// lod estimates a per-primitive level of detail from the texel to pixel
// ratio along the primitive's edges, in Q4.12.
func (c *Core) lod(v *[3]raster.Vertex) int32 {
	cfg := c.tex[0].Config()
	if !cfg.Enable || cfg.MipLevels == 0 {
		return 0
	}
	var texSpan, pixSpan int32 // Q4.12 texels, S12.4 pixels
	for i := range v {
		j := (i + 1) % 3
		du := abs32(int32(v[i].UV[0].U) - int32(v[j].UV[0].U))
		dv := abs32(int32(v[i].UV[0].V) - int32(v[j].UV[0].V))
		texSpan = max(texSpan, du<<cfg.WidthLog2, dv<<cfg.HeightLog2)
		dx := abs32(int32(v[i].X) - int32(v[j].X))
		dy := abs32(int32(v[i].Y) - int32(v[j].Y))
		pixSpan = max(pixSpan, dx, dy)
	}
	if pixSpan == 0 || texSpan == 0 {
		return 0
	}
	// ratio in Q12: texels per pixel
	ratio := int32(int64(texSpan) << 4 / int64(pixSpan))
	if ratio <= 1<<12 {
		return 0
	}
	// log2 with a linear mantissa approximation
	msb := bits.Len32(uint32(ratio)) - 1
	return int32(msb-12)<<12 | ratio>>(msb-12)&0xfff
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Image returns a snapshot of the current draw target converted to RGBA.
func (c *Core) Image() *image.RGBA {
	w, h := 1<<c.fb.WidthLog2, 1<<c.fb.HeightLog2
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	base := c.fb.ColorWords()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			word := c.mem.Word(base + texture.TiledOffset(x, y, int(c.fb.WidthLog2)))
			r, g, b, _ := texture.ColorRGB565(word).RGBA()
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(r >> 8)
			img.Pix[i+1] = uint8(g >> 8)
			img.Pix[i+2] = uint8(b >> 8)
			img.Pix[i+3] = 0xff
		}
	}
	return img
}
