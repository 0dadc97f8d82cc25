package regs

// The color combiner computes its output with the equation `(A-B)*C + D`,
// where the inputs A, B, C and D can be chosen from the predefined
// CombineSource values. Color and alpha are calculated separately. Two passes
// are evaluated per fragment, where the second pass can use the first pass
// output as its input.
type CombineMode struct{ One, Two CombinePass }
type CombinePass struct{ RGB, Alpha CombineParams }
type CombineParams struct{ A, B, C, D CombineSource }
type CombineSource uint8

const (
	CombineCombined CombineSource = iota
	CombineTex0
	CombineTex1
	CombineShade0
	CombineConst0
	CombineConst1
	CombineOne
	CombineZero
	CombineShade1

	// The RGB C input has an extended source set that can broadcast an
	// alpha channel onto all color channels.
	CombineCColorTex0Alpha     CombineSource = 8
	CombineCColorTex1Alpha     CombineSource = 9
	CombineCColorShade0Alpha   CombineSource = 10
	CombineCColorConst0Alpha   CombineSource = 11
	CombineCColorCombinedAlpha CombineSource = 12
	CombineCColorShade1        CombineSource = 13
	CombineCColorShade1Alpha   CombineSource = 14
)

// Modulate multiplies the texture by the vertex shade in the first pass, with
// the second pass passing through. Matches the register's reset value.
var Modulate = CombineMode{
	One: CombinePass{
		RGB:   CombineParams{CombineTex0, CombineZero, CombineShade0, CombineZero},
		Alpha: CombineParams{CombineTex0, CombineZero, CombineShade0, CombineZero},
	},
	Two: PassThrough,
}

// Decal outputs the texture unmodified.
var Decal = CombineMode{
	One: CombinePass{
		RGB:   CombineParams{CombineTex0, CombineZero, CombineOne, CombineZero},
		Alpha: CombineParams{CombineTex0, CombineZero, CombineOne, CombineZero},
	},
	Two: PassThrough,
}

// PassThrough forwards the previous pass unchanged, the documented no-op for
// the second pass.
var PassThrough = CombinePass{
	RGB:   CombineParams{CombineCombined, CombineZero, CombineOne, CombineZero},
	Alpha: CombineParams{CombineCombined, CombineZero, CombineOne, CombineZero},
}

func (p CombinePass) pack() uint32 {
	v := uint32(p.Alpha.A&0xf) |
		uint32(p.Alpha.B&0xf)<<4 |
		uint32(p.Alpha.C&0xf)<<8 |
		uint32(p.Alpha.D&0xf)<<12
	v |= uint32(p.RGB.A&0xf)<<16 |
		uint32(p.RGB.B&0xf)<<20 |
		uint32(p.RGB.C&0xf)<<24 |
		uint32(p.RGB.D&0xf)<<28
	return v
}

func unpackPass(v uint32) CombinePass {
	return CombinePass{
		Alpha: CombineParams{
			A: CombineSource(v & 0xf),
			B: CombineSource(v >> 4 & 0xf),
			C: CombineSource(v >> 8 & 0xf),
			D: CombineSource(v >> 12 & 0xf),
		},
		RGB: CombineParams{
			A: CombineSource(v >> 16 & 0xf),
			B: CombineSource(v >> 20 & 0xf),
			C: CombineSource(v >> 24 & 0xf),
			D: CombineSource(v >> 28 & 0xf),
		},
	}
}

func (m CombineMode) Pack() uint64 {
	return uint64(m.Two.pack())<<32 | uint64(m.One.pack())
}

func UnpackCombineMode(v uint64) CombineMode {
	return CombineMode{
		One: unpackPass(uint32(v)),
		Two: unpackPass(uint32(v >> 32)),
	}
}
