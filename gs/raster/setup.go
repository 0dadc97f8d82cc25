package raster

import (
	"image"

	"github.com/clktmr/picogs/gs/regs"
)

// Interpolated attribute indices. Colors run in an 8.16 frame, the wide
// attributes in 16.16. The lanes are int64 so the 16.16 frame keeps a sign
// bit above the full 16-bit depth range.
const (
	attrC0R = iota
	attrC0G
	attrC0B
	attrC0A
	attrC1R
	attrC1G
	attrC1B
	attrC1A
	attrZ
	attrU0
	attrV0
	attrU1
	attrV1
	attrQ
	numAttrs
)

const numColorAttrs = 8

// edge holds one edge function A*x + B*y + C. A and B fit 11 bits, C fits 21
// bits for the supported coordinate range.
type edge struct{ a, b, c int32 }

func (e edge) eval(x, y int32) int32 { return e.a*x + e.b*y + e.c }

// setup is the precomputed per-primitive state: edge functions, signed area,
// clamped bounding box and the attribute derivative set.
type setup struct {
	edges [3]edge
	bias  [3]int32 // 0 on top/left edges, 1 elsewhere
	area2 int32    // twice the signed area, 0 for degenerate
	bbox  image.Rectangle

	init, dx, dy [numAttrs]int64
}

// snap rounds a S12.4 coordinate to the nearest pixel center.
func snap(v int32) int32 { return (v + 8) >> 4 }

func attrs(v *Vertex) [numAttrs]int64 {
	return [numAttrs]int64{
		int64(v.Color[0].R), int64(v.Color[0].G), int64(v.Color[0].B), int64(v.Color[0].A),
		int64(v.Color[1].R), int64(v.Color[1].G), int64(v.Color[1].B), int64(v.Color[1].A),
		int64(v.Z),
		int64(v.UV[0].U), int64(v.UV[0].V),
		int64(v.UV[1].U), int64(v.UV[1].V),
		int64(v.Q),
	}
}

// setupTriangle computes edge coefficients, winding, bounding box and the
// attribute derivatives for one triangle. Returns ok=false when the triangle
// emits no fragments (degenerate or culled).
func setupTriangle(v *[3]Vertex, cfg *Config) (s setup, ok bool) {
	var x, y [3]int32
	for i := range v {
		x[i] = snap(int32(v[i].X))
		y[i] = snap(int32(v[i].Y))
	}

	for i := range s.edges {
		j := (i + 1) % 3
		a := y[i] - y[j]
		b := x[j] - x[i]
		s.edges[i] = edge{a, b, -(a*x[i] + b*y[i])}
	}

	// An edge function evaluated at its opposite vertex is twice the
	// signed area. The sign selects the covered half-space of the edge
	// tests.
	s.area2 = s.edges[0].eval(x[2], y[2])
	if s.area2 == 0 {
		return s, false
	}

	// Top-left fill rule, so triangles sharing an edge rasterize it
	// exactly once and a minimal triangle covers exactly one pixel.
	for i := range s.edges {
		e := s.edges[i]
		var topLeft bool
		if s.area2 > 0 {
			topLeft = e.a > 0 || e.a == 0 && e.b > 0
		} else {
			topLeft = e.a < 0 || e.a == 0 && e.b < 0
		}
		if !topLeft {
			s.bias[i] = 1
		}
	}
	switch cfg.Mode.Cull {
	case regs.CullCW:
		if s.area2 < 0 {
			return s, false
		}
	case regs.CullCCW:
		if s.area2 > 0 {
			return s, false
		}
	}

	s.bbox = clampBBox(
		min(x[0], x[1], x[2]), min(y[0], y[1], y[2]),
		max(x[0], x[1], x[2]), max(y[0], y[1], y[2]),
		cfg,
	)

	f0 := attrs(&v[0])
	f1 := attrs(&v[1])
	f2 := attrs(&v[2])

	// Edge 2 (v2->v0) pairs with the v1 delta, edge 0 (v0->v1) with the
	// v2 delta. See the barycentric gradient identity.
	a1, b1 := int64(s.edges[2].a), int64(s.edges[2].b)
	a2, b2 := int64(s.edges[0].a), int64(s.edges[0].b)

	offx := int64(s.bbox.Min.X) - int64(x[0])
	offy := int64(s.bbox.Min.Y) - int64(y[0])

	gouraud := cfg.Mode.Gouraud
	for i := 0; i < numAttrs; i++ {
		d10 := f1[i] - f0[i]
		d20 := f2[i] - f0[i]
		if i < numColorAttrs && !gouraud {
			// flat shading uses the kick vertex color
			s.init[i] = f2[i] << 16
			continue
		}
		s.dx[i] = deriv(d10*a1+d20*a2, s.area2, cfg.Area)
		s.dy[i] = deriv(d10*b1+d20*b2, s.area2, cfg.Area)
		s.init[i] = f0[i]<<16 + s.dx[i]*offx + s.dy[i]*offy
	}
	return s, true
}

// deriv scales a raw attribute gradient by the reciprocal area. The host
// provides the UQ0.16 reciprocal of |2*area| >> shift, so the result is the
// per-pixel step in the attribute's .16 frame. The winding sign is restored
// here since the reciprocal is computed from the magnitude.
func deriv(raw int64, area2 int32, a regs.AreaSetupCfg) int64 {
	v := (raw * int64(a.InvArea)) >> a.Shift
	if area2 < 0 {
		v = -v
	}
	return v
}

func clampBBox(minX, minY, maxX, maxY int32, cfg *Config) image.Rectangle {
	w := int32(1)<<cfg.WidthLog2 - 1
	h := int32(1)<<cfg.HeightLog2 - 1
	return image.Rect(
		int(clamp(minX, 0, w)), int(clamp(minY, 0, h)),
		int(clamp(maxX, 0, w))+1, int(clamp(maxY, 0, h))+1,
	)
}

func clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// setupRect builds the interpolation state for a rectangle kick. v0 is the
// top-left and v2 the bottom-right corner, v1 supplies the attribute values
// along the horizontal edge.
func setupRect(v *[3]Vertex, cfg *Config) (s setup, ok bool) {
	x0, y0 := snap(int32(v[0].X)), snap(int32(v[0].Y))
	x2, y2 := snap(int32(v[2].X)), snap(int32(v[2].Y))
	if x2 < x0 || y2 < y0 {
		return s, false
	}
	s.area2 = 1 // rectangles have no winding, mark valid
	s.bbox = clampBBox(x0, y0, x2, y2, cfg)

	f0 := attrs(&v[0])
	f1 := attrs(&v[1])
	f2 := attrs(&v[2])

	dx, dy := int64(x2-x0), int64(y2-y0)
	offx := int64(s.bbox.Min.X) - int64(x0)
	offy := int64(s.bbox.Min.Y) - int64(y0)

	gouraud := cfg.Mode.Gouraud
	for i := 0; i < numAttrs; i++ {
		if i < numColorAttrs && !gouraud {
			s.init[i] = f2[i] << 16
			continue
		}
		if dx > 0 {
			s.dx[i] = (f1[i] - f0[i]) << 16 / dx
		}
		if dy > 0 {
			s.dy[i] = (f2[i] - f1[i]) << 16 / dy
		}
		s.init[i] = f0[i]<<16 + s.dx[i]*offx + s.dy[i]*offy
	}
	return s, true
}

// inside reports whether all three edge values lie on the triangle's side.
// Pixels exactly on an edge count as covered only on top and left edges.
func (s *setup) inside(e0, e1, e2 int32) bool {
	if s.area2 > 0 {
		return e0 >= s.bias[0] && e1 >= s.bias[1] && e2 >= s.bias[2]
	}
	return e0 <= -s.bias[0] && e1 <= -s.bias[1] && e2 <= -s.bias[2]
}
