package raster

import "github.com/clktmr/picogs/gs/fixed"

// accum steps the interpolated attributes across the bounding box. Stepping
// down reloads from a separate row origin instead of the running value, so
// rounding errors can't accumulate across scanlines.
type accum struct {
	dx, dy   [numAttrs]int64
	acc, row [numAttrs]int64
}

func (a *accum) latch(s *setup) {
	a.dx, a.dy = s.dx, s.dy
	a.acc, a.row = s.init, s.init
}

func (a *accum) stepX() {
	for i := range a.acc {
		a.acc[i] += a.dx[i]
	}
}

func (a *accum) stepY() {
	for i := range a.row {
		a.row[i] += a.dy[i]
		a.acc[i] = a.row[i]
	}
}

// color promotes an 8.16 accumulator to a Q4.12 channel. Negative values
// clamp to zero, overflow past the 8-bit range clamps to 1.0, in-range
// values replicate their MSBs into the low nibble.
func promoteColor(acc int64) fixed.Int4_12 {
	if acc < 0 {
		return 0
	}
	if acc>>16 > 0xff {
		return 0x0fff
	}
	return fixed.PromoteUNORM8(uint8(acc >> 16))
}

// promoteZ clamps a 16.16 accumulator to the unsigned 16-bit depth domain.
func promoteZ(acc int64) uint16 {
	if acc < 0 {
		return 0
	}
	if acc>>16 > 0xffff {
		return 0xffff
	}
	return uint16(acc >> 16)
}

func (a *accum) fragment(x, y int) (f Fragment) {
	f.X, f.Y = uint16(x), uint16(y)
	f.Z = promoteZ(a.acc[attrZ])
	f.Shade[0] = Shade{
		promoteColor(a.acc[attrC0R]), promoteColor(a.acc[attrC0G]),
		promoteColor(a.acc[attrC0B]), promoteColor(a.acc[attrC0A]),
	}
	f.Shade[1] = Shade{
		promoteColor(a.acc[attrC1R]), promoteColor(a.acc[attrC1G]),
		promoteColor(a.acc[attrC1B]), promoteColor(a.acc[attrC1A]),
	}
	f.UV[0].U = fixed.Int4_12(a.acc[attrU0] >> 16)
	f.UV[0].V = fixed.Int4_12(a.acc[attrV0] >> 16)
	f.UV[1].U = fixed.Int4_12(a.acc[attrU1] >> 16)
	f.UV[1].V = fixed.Int4_12(a.acc[attrV1] >> 16)
	f.Q = fixed.UInt4_12(a.acc[attrQ] >> 16)
	return
}
