// Package combiner implements the two-pass color combiner. Each pass
// evaluates `(A-B)*C + D` per channel in Q4.12 with saturation, the second
// pass can consume the first pass result through the COMBINED source.
package combiner

import (
	"github.com/clktmr/picogs/gs/fixed"
	"github.com/clktmr/picogs/gs/regs"
)

// Color holds one Q4.12 value per channel.
type Color struct{ R, G, B, A fixed.Int4_12 }

// FromRGBA promotes an 8-bit color to Q4.12.
func FromRGBA(c regs.RGBA) Color {
	return Color{
		R: fixed.PromoteUNORM8(c.R),
		G: fixed.PromoteUNORM8(c.G),
		B: fixed.PromoteUNORM8(c.B),
		A: fixed.PromoteUNORM8(c.A),
	}
}

// RGBA8 truncates back to 8-bit channels for the blend and writeback stages.
func (c Color) RGBA8() regs.RGBA {
	return regs.RGBA{R: unorm8(c.R), G: unorm8(c.G), B: unorm8(c.B), A: unorm8(c.A)}
}

func unorm8(v fixed.Int4_12) uint8 {
	if v >= 0x1000 {
		return 0xff
	}
	return uint8(v >> 4)
}

// Inputs are the per-fragment source values, all Q4.12.
type Inputs struct {
	Tex0, Tex1     Color
	Shade0, Shade1 Color
	Const0, Const1 Color
}

// Combine evaluates both passes for one fragment.
func Combine(mode regs.CombineMode, in *Inputs) Color {
	combined := pass(mode.One, in, Color{})
	return pass(mode.Two, in, combined)
}

func pass(p regs.CombinePass, in *Inputs, combined Color) Color {
	a := rgbSource(p.RGB.A, in, combined)
	b := rgbSource(p.RGB.B, in, combined)
	c := rgbCSource(p.RGB.C, in, combined)
	d := rgbSource(p.RGB.D, in, combined)

	aa := alphaSource(p.Alpha.A, in, combined)
	ab := alphaSource(p.Alpha.B, in, combined)
	ac := alphaSource(p.Alpha.C, in, combined)
	ad := alphaSource(p.Alpha.D, in, combined)

	return Color{
		R: eval(a.R, b.R, c.R, d.R),
		G: eval(a.G, b.G, c.G, d.G),
		B: eval(a.B, b.B, c.B, d.B),
		A: eval(aa, ab, ac, ad),
	}
}

// eval computes (a-b)*c + d with a full-width intermediate, then saturates.
func eval(a, b, c, d fixed.Int4_12) fixed.Int4_12 {
	v := (int32(a)-int32(b))*int32(c)>>12 + int32(d)
	return fixed.SatQ12(v)
}

func broadcast(a fixed.Int4_12) Color { return Color{R: a, G: a, B: a, A: a} }

var one = broadcast(fixed.Int4_12U(1))

// rgbSource resolves the A, B and D slots, where source 8 selects SHADE1.
func rgbSource(s regs.CombineSource, in *Inputs, combined Color) Color {
	switch s {
	case regs.CombineCombined:
		return combined
	case regs.CombineTex0:
		return in.Tex0
	case regs.CombineTex1:
		return in.Tex1
	case regs.CombineShade0:
		return in.Shade0
	case regs.CombineConst0:
		return in.Const0
	case regs.CombineConst1:
		return in.Const1
	case regs.CombineOne:
		return one
	case regs.CombineShade1:
		return in.Shade1
	}
	return Color{}
}

// rgbCSource resolves the C slot with its extended alpha-broadcast sources.
func rgbCSource(s regs.CombineSource, in *Inputs, combined Color) Color {
	switch s {
	case regs.CombineCColorTex0Alpha:
		return broadcast(in.Tex0.A)
	case regs.CombineCColorTex1Alpha:
		return broadcast(in.Tex1.A)
	case regs.CombineCColorShade0Alpha:
		return broadcast(in.Shade0.A)
	case regs.CombineCColorConst0Alpha:
		return broadcast(in.Const0.A)
	case regs.CombineCColorCombinedAlpha:
		return broadcast(combined.A)
	case regs.CombineCColorShade1:
		return in.Shade1
	case regs.CombineCColorShade1Alpha:
		return broadcast(in.Shade1.A)
	}
	return rgbSource(s, in, combined)
}

func alphaSource(s regs.CombineSource, in *Inputs, combined Color) fixed.Int4_12 {
	switch s {
	case regs.CombineCombined:
		return combined.A
	case regs.CombineTex0:
		return in.Tex0.A
	case regs.CombineTex1:
		return in.Tex1.A
	case regs.CombineShade0:
		return in.Shade0.A
	case regs.CombineConst0:
		return in.Const0.A
	case regs.CombineConst1:
		return in.Const1.A
	case regs.CombineOne:
		return fixed.Int4_12U(1)
	case regs.CombineShade1:
		return in.Shade1.A
	}
	return 0
}
