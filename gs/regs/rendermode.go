package regs

// ZCompare selects the early depth test function.
type ZCompare uint8

const (
	ZLess ZCompare = iota
	ZLequal
	ZEqual
	ZGequal
	ZGreater
	ZNotequal
	ZAlways
	ZNever
)

// Pass reports whether a fragment depth z passes the test against the stored
// depth.
func (c ZCompare) Pass(z, stored uint16) bool {
	switch c {
	case ZLess:
		return z < stored
	case ZLequal:
		return z <= stored
	case ZEqual:
		return z == stored
	case ZGequal:
		return z >= stored
	case ZGreater:
		return z > stored
	case ZNotequal:
		return z != stored
	case ZAlways:
		return true
	}
	return false
}

type CullMode uint8

const (
	CullNone CullMode = iota
	CullCW
	CullCCW
)

type AlphaBlend uint8

const (
	BlendDisabled AlphaBlend = iota
	BlendAdd
	BlendSubtract
	BlendAlpha
)

type AlphaTest uint8

const (
	AlphaAlways AlphaTest = iota
	AlphaLess
	AlphaGequal
	AlphaNotequal
)

// Pass reports whether an 8-bit fragment alpha passes the test against ref.
func (t AlphaTest) Pass(a, ref uint8) bool {
	switch t {
	case AlphaLess:
		return a < ref
	case AlphaGequal:
		return a >= ref
	case AlphaNotequal:
		return a != ref
	}
	return true
}

// RenderMode holds the per-draw state from the RENDER_MODE register.
type RenderMode struct {
	Gouraud       bool
	ZTest         bool
	ZWrite        bool
	ColorWrite    bool
	Cull          CullMode
	Blend         AlphaBlend
	Dither        bool
	DitherPattern uint8
	ZCompare      ZCompare
	Stipple       bool
	AlphaTest     AlphaTest
	AlphaRef      uint8
}

func (m RenderMode) Pack() (v uint64) {
	if m.Gouraud {
		v |= 1 << 0
	}
	if m.ZTest {
		v |= 1 << 2
	}
	if m.ZWrite {
		v |= 1 << 3
	}
	if m.ColorWrite {
		v |= 1 << 4
	}
	v |= uint64(m.Cull&0x3) << 5
	v |= uint64(m.Blend&0x7) << 7
	if m.Dither {
		v |= 1 << 10
	}
	v |= uint64(m.DitherPattern&0x3) << 11
	v |= uint64(m.ZCompare&0x7) << 13
	if m.Stipple {
		v |= 1 << 16
	}
	v |= uint64(m.AlphaTest&0x3) << 17
	v |= uint64(m.AlphaRef) << 19
	return
}

func UnpackRenderMode(v uint64) RenderMode {
	return RenderMode{
		Gouraud:       v&(1<<0) != 0,
		ZTest:         v&(1<<2) != 0,
		ZWrite:        v&(1<<3) != 0,
		ColorWrite:    v&(1<<4) != 0,
		Cull:          CullMode(v >> 5 & 0x3),
		Blend:         AlphaBlend(v >> 7 & 0x7),
		Dither:        v&(1<<10) != 0,
		DitherPattern: uint8(v >> 11 & 0x3),
		ZCompare:      ZCompare(v >> 13 & 0x7),
		Stipple:       v&(1<<16) != 0,
		AlphaTest:     AlphaTest(v >> 17 & 0x3),
		AlphaRef:      uint8(v >> 19),
	}
}
