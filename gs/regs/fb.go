package regs

import "image"

// FbConfig holds the render target surfaces from the FB_CONFIG register.
// Base addresses are in 512 byte units.
type FbConfig struct {
	ColorBase             uint16
	ZBase                 uint16
	WidthLog2, HeightLog2 uint8
}

// ColorWords and ZWords return the surface base addresses in 16-bit words.
func (c FbConfig) ColorWords() int { return int(c.ColorBase) << 8 }
func (c FbConfig) ZWords() int     { return int(c.ZBase) << 8 }

func (c FbConfig) Pack() uint64 {
	return uint64(c.ColorBase) |
		uint64(c.ZBase)<<16 |
		uint64(c.WidthLog2&0xf)<<32 |
		uint64(c.HeightLog2&0xf)<<36
}

func UnpackFbConfig(v uint64) FbConfig {
	return FbConfig{
		ColorBase:  uint16(v),
		ZBase:      uint16(v >> 16),
		WidthLog2:  uint8(v >> 32 & 0xf),
		HeightLog2: uint8(v >> 36 & 0xf),
	}
}

// Scissor is the FB_CONTROL register. Fragments outside the rectangle are
// discarded.
type Scissor struct {
	X, Y          uint16 // 10 bit
	Width, Height uint16 // 10 bit
}

func (s Scissor) Rect() image.Rectangle {
	return image.Rect(int(s.X), int(s.Y), int(s.X+s.Width), int(s.Y+s.Height))
}

func (s Scissor) Pack() uint64 {
	return uint64(s.X&0x3ff) |
		uint64(s.Y&0x3ff)<<10 |
		uint64(s.Width&0x3ff)<<20 |
		uint64(s.Height&0x3ff)<<30
}

func UnpackScissor(v uint64) Scissor {
	return Scissor{
		X:      uint16(v & 0x3ff),
		Y:      uint16(v >> 10 & 0x3ff),
		Width:  uint16(v >> 20 & 0x3ff),
		Height: uint16(v >> 30 & 0x3ff),
	}
}

// FbDisplay configures the scanout side of the framebuffer.
type FbDisplay struct {
	ColorGrade  bool
	LineDouble  bool
	LutAddr     uint16
	FbAddr      uint16 // in 512 byte units
	FbWidthLog2 uint8
}

func (d FbDisplay) Pack() (v uint64) {
	if d.ColorGrade {
		v |= 1 << 0
	}
	if d.LineDouble {
		v |= 1 << 1
	}
	v |= uint64(d.LutAddr) << 16
	v |= uint64(d.FbAddr) << 32
	v |= uint64(d.FbWidthLog2&0xf) << 48
	return
}

func UnpackFbDisplay(v uint64) FbDisplay {
	return FbDisplay{
		ColorGrade:  v&1 != 0,
		LineDouble:  v&2 != 0,
		LutAddr:     uint16(v >> 16),
		FbAddr:      uint16(v >> 32),
		FbWidthLog2: uint8(v >> 48 & 0xf),
	}
}

// ZRangeCfg is the inclusive depth clip range from the Z_RANGE register.
type ZRangeCfg struct {
	Min, Max uint16
}

func (z ZRangeCfg) Pack() uint64 { return uint64(z.Min) | uint64(z.Max)<<16 }

func UnpackZRange(v uint64) ZRangeCfg {
	return ZRangeCfg{Min: uint16(v), Max: uint16(v >> 16)}
}

// MemFillCmd is the MEM_FILL register: fill Count words starting at Base*512
// bytes with Value.
type MemFillCmd struct {
	Base  uint16
	Value uint16
	Count uint32 // 20 bit
}

func (m MemFillCmd) Pack() uint64 {
	return uint64(m.Base) | uint64(m.Value)<<16 | uint64(m.Count&0xfffff)<<32
}

func UnpackMemFill(v uint64) MemFillCmd {
	return MemFillCmd{
		Base:  uint16(v),
		Value: uint16(v >> 16),
		Count: uint32(v >> 32 & 0xfffff),
	}
}

// AreaSetupCfg is the per-triangle normalization from the AREA_SETUP
// register. InvArea is the UQ0.16 reciprocal of (2*area >> Shift), both
// computed by the host.
type AreaSetupCfg struct {
	InvArea uint16
	Shift   uint8
}

func (a AreaSetupCfg) Pack() uint64 {
	return uint64(a.InvArea) | uint64(a.Shift&0xf)<<16
}

func UnpackAreaSetup(v uint64) AreaSetupCfg {
	return AreaSetupCfg{InvArea: uint16(v), Shift: uint8(v >> 16 & 0xf)}
}

// StipplePass reports whether pixel (x, y) passes the 8x8 stipple pattern.
// Bit index is y[2:0]*8 + x[2:0], a set bit passes.
func StipplePass(pattern uint64, x, y int) bool {
	bit := (y&7)*8 + x&7
	return pattern&(1<<bit) != 0
}
