package texcache

import (
	"github.com/clktmr/picogs/gs/fixed"
	"github.com/clktmr/picogs/gs/regs"
	"github.com/clktmr/picogs/gs/texture"
)

// Sampler resolves texture coordinates to filtered texels through its private
// block cache.
type Sampler struct {
	cache *Cache
}

func NewSampler(mem Mem) *Sampler {
	return &Sampler{cache: New(mem)}
}

func (s *Sampler) Configure(cfg regs.TexConfig) { s.cache.Configure(cfg) }
func (s *Sampler) Config() regs.TexConfig       { return s.cache.Config() }
func (s *Sampler) Enabled() bool                { return s.cache.Config().Enable }
func (s *Sampler) Stats() *Stats                { return &s.cache.Stats }

// Sample filters the texture at (u, v), where (1.0, 1.0) spans the base level
// once. lod is the level of detail in Q4.12, only used by mipmapped filters.
func (s *Sampler) Sample(u, v fixed.Int4_12, lod int32) regs.RGBA {
	cfg := s.cache.Config()
	switch cfg.Filter {
	case regs.FilterTrilinear:
		if lod <= 0 {
			return s.bilinear(u, v, 0)
		}
		level := int(lod >> 12)
		frac := lod & 0xfff
		if level >= int(cfg.MipLevels) {
			return s.bilinear(u, v, int(cfg.MipLevels))
		}
		c0 := s.bilinear(u, v, level)
		c1 := s.bilinear(u, v, level+1)
		return lerpRGBA(c0, c1, frac)
	case regs.FilterBilinear:
		return s.bilinear(u, v, s.level(lod))
	default:
		return s.nearest(u, v, s.level(lod))
	}
}

func (s *Sampler) level(lod int32) int {
	l := int((lod + 0x800) >> 12)
	if l < 0 {
		l = 0
	}
	if top := int(s.cache.Config().MipLevels); l > top {
		l = top
	}
	return l
}

func (s *Sampler) dims(level int) (w, h int) {
	cfg := s.cache.Config()
	return texture.LevelDim(int(cfg.WidthLog2), level),
		texture.LevelDim(int(cfg.HeightLog2), level)
}

func (s *Sampler) nearest(u, v fixed.Int4_12, level int) regs.RGBA {
	w, h := s.dims(level)
	x := int(int32(u)*int32(w)) >> 12
	y := int(int32(v)*int32(h)) >> 12
	return s.texel(x, y, w, h, level)
}

func (s *Sampler) bilinear(u, v fixed.Int4_12, level int) regs.RGBA {
	w, h := s.dims(level)
	// Texel centers sit at half coordinates.
	px := int32(u)*int32(w) - 0x800
	py := int32(v)*int32(h) - 0x800
	x0, y0 := int(px>>12), int(py>>12)
	fx, fy := px&0xfff, py&0xfff

	t00 := s.texel(x0, y0, w, h, level)
	t10 := s.texel(x0+1, y0, w, h, level)
	t01 := s.texel(x0, y0+1, w, h, level)
	t11 := s.texel(x0+1, y0+1, w, h, level)

	return lerpRGBA(lerpRGBA(t00, t10, fx), lerpRGBA(t01, t11, fx), fy)
}

// texel fetches one wrapped texel from the cache.
func (s *Sampler) texel(x, y, w, h, level int) regs.RGBA {
	cfg := s.cache.Config()
	x, oddX := wrapAxis(x, w, cfg.UWrap)
	y, oddY := wrapAxis(y, h, cfg.VWrap)
	// Octahedral surfaces fold across the border: leaving the surface on
	// one axis additionally mirrors the other.
	if cfg.UWrap == regs.WrapOctahedral && oddX {
		y = h - 1 - y
	}
	if cfg.VWrap == regs.WrapOctahedral && oddY {
		x = w - 1 - x
	}
	block := s.cache.Lookup(x/texture.BlockDim, y/texture.BlockDim, level)
	return block[y%texture.BlockDim*texture.BlockDim+x%texture.BlockDim]
}

// wrapAxis maps an out-of-range texel coordinate into [0, n). odd reports
// whether the coordinate landed in a mirrored period, which only the
// octahedral mode cares about.
func wrapAxis(c, n int, m regs.WrapMode) (wrapped int, odd bool) {
	switch m {
	case regs.WrapClampToEdge:
		if c < 0 {
			return 0, false
		}
		if c >= n {
			return n - 1, false
		}
		return c, false
	case regs.WrapMirror, regs.WrapOctahedral:
		p := c & (2*n - 1)
		if p >= n {
			return 2*n - 1 - p, true
		}
		return p, false
	default: // repeat
		return c & (n - 1), false
	}
}

// lerpRGBA blends a towards b by the Q0.12 fraction f.
func lerpRGBA(a, b regs.RGBA, f int32) regs.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8((int32(x)*(0x1000-f) + int32(y)*f) >> 12)
	}
	return regs.RGBA{
		R: mix(a.R, b.R), G: mix(a.G, b.G),
		B: mix(a.B, b.B), A: mix(a.A, b.A),
	}
}
