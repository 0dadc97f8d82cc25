package regs

import "github.com/clktmr/picogs/gs/fixed"

// RGBA is an 8-bit per channel color as packed into one half of the COLOR or
// CONST_COLOR register, R in the lowest byte.
type RGBA struct{ R, G, B, A uint8 }

func (c RGBA) pack() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

func unpackRGBA(v uint32) RGBA {
	return RGBA{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16), A: uint8(v >> 24)}
}

// PackColors packs the COLOR register, COLOR0 in the low dword.
func PackColors(c0, c1 RGBA) uint64 {
	return uint64(c1.pack())<<32 | uint64(c0.pack())
}

func UnpackColors(v uint64) (c0, c1 RGBA) {
	return unpackRGBA(uint32(v)), unpackRGBA(uint32(v >> 32))
}

// UV is one texture coordinate pair in Q4.12.
type UV struct{ U, V fixed.Int4_12 }

// PackUVs packs the UV0_UV1 register.
func PackUVs(uv0, uv1 UV) uint64 {
	return uint64(uint16(uv0.U)) |
		uint64(uint16(uv0.V))<<16 |
		uint64(uint16(uv1.U))<<32 |
		uint64(uint16(uv1.V))<<48
}

func UnpackUVs(v uint64) (uv0, uv1 UV) {
	uv0 = UV{fixed.Int4_12(v), fixed.Int4_12(v >> 16)}
	uv1 = UV{fixed.Int4_12(v >> 32), fixed.Int4_12(v >> 48)}
	return
}

// VertexWord is the VERTEX_* register payload. X and Y are S12.4 screen
// coordinates where integer values address pixel centers, Q is the
// perspective weight in Q4.12.
type VertexWord struct {
	X, Y fixed.Int12_4
	Z    uint16
	Q    fixed.UInt4_12
}

func (w VertexWord) Pack() uint64 {
	return uint64(uint16(w.X)) |
		uint64(uint16(w.Y))<<16 |
		uint64(w.Z)<<32 |
		uint64(uint16(w.Q))<<48
}

func UnpackVertexWord(v uint64) VertexWord {
	return VertexWord{
		X: fixed.Int12_4(v),
		Y: fixed.Int12_4(v >> 16),
		Z: uint16(v >> 32),
		Q: fixed.UInt4_12(v >> 48),
	}
}
