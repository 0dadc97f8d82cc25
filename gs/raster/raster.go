package raster

import "github.com/clktmr/picogs/debug"

type state uint8

const (
	stateWalk state = iota
	stateDone
)

// Rasterizer walks one primitive's bounding box scanline-major, left to
// right, and produces exactly one fragment per covered pixel.
type Rasterizer struct {
	cfg   Config
	s     setup
	acc   accum
	x, y  int
	e     [3]int32 // edge values at the current pixel
	erow  [3]int32 // edge values at the row start
	state state
}

// Triangle sets up a triangle primitive. A degenerate or culled triangle
// yields a rasterizer that emits no fragments.
func Triangle(v [3]Vertex, cfg Config) *Rasterizer {
	r := &Rasterizer{cfg: cfg, state: stateDone}
	s, ok := setupTriangle(&v, &cfg)
	if ok {
		r.start(s)
	}
	return r
}

// Rect sets up a rectangle primitive spanned by v0 (top-left) and v2
// (bottom-right).
func Rect(v [3]Vertex, cfg Config) *Rasterizer {
	r := &Rasterizer{cfg: cfg, state: stateDone}
	s, ok := setupRect(&v, &cfg)
	if ok {
		r.start(s)
	}
	return r
}

func (r *Rasterizer) start(s setup) {
	r.s = s
	if s.bbox.Empty() {
		return
	}
	if debug.Enabled {
		fb := clampBBox(-1<<11, -1<<11, 1<<11, 1<<11, &r.cfg)
		debug.Assert(s.bbox.In(fb), "bbox exceeds render target")
	}
	r.acc.latch(&s)
	r.x, r.y = s.bbox.Min.X, s.bbox.Min.Y
	for i := range r.erow {
		r.erow[i] = s.edges[i].eval(int32(r.x), int32(r.y))
	}
	r.e = r.erow
	r.state = stateWalk
}

// Next returns the next covered fragment in emission order. The second
// return value is false once the primitive is exhausted.
func (r *Rasterizer) Next() (Fragment, bool) {
	for r.state == stateWalk {
		covered := r.s.inside(r.e[0], r.e[1], r.e[2])
		var f Fragment
		if covered {
			f = r.acc.fragment(r.x, r.y)
		}
		r.advance()
		if covered {
			return f, true
		}
	}
	return Fragment{}, false
}

func (r *Rasterizer) advance() {
	r.x++
	if r.x < r.s.bbox.Max.X {
		for i := range r.e {
			r.e[i] += r.s.edges[i].a
		}
		r.acc.stepX()
		return
	}
	r.y++
	if r.y >= r.s.bbox.Max.Y {
		r.state = stateDone
		return
	}
	r.x = r.s.bbox.Min.X
	for i := range r.erow {
		r.erow[i] += r.s.edges[i].b
	}
	r.e = r.erow
	r.acc.stepY()
}

// Run pumps all fragments onto the bus in order, applying backpressure by
// blocking while the consumer is not ready, and closes the bus when the
// primitive is exhausted.
func (r *Rasterizer) Run(bus *Bus) {
	for {
		f, ok := r.Next()
		if !ok {
			break
		}
		bus.Send(f)
	}
	bus.Close()
}
