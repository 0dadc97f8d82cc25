package regs

import "github.com/clktmr/picogs/gs/texture"

type Filter uint8

const (
	FilterNearest Filter = iota
	FilterBilinear
	FilterTrilinear
)

type WrapMode uint8

const (
	WrapRepeat WrapMode = iota
	WrapClampToEdge
	WrapMirror
	WrapOctahedral
)

// TexConfig holds one sampler's state from the TEXn_CFG register. Writing the
// register invalidates the sampler's whole texture cache.
type TexConfig struct {
	Enable                bool
	Filter                Filter
	Format                texture.Format
	WidthLog2, HeightLog2 uint8
	UWrap, VWrap          WrapMode
	MipLevels             uint8
	BaseAddr              uint16 // in 512 byte units
}

// BaseWords returns the texture base address in 16-bit words.
func (c TexConfig) BaseWords() int { return int(c.BaseAddr) << 8 }

func (c TexConfig) Pack() (v uint64) {
	if c.Enable {
		v |= 1 << 0
	}
	v |= uint64(c.Filter&0x3) << 2
	v |= uint64(c.Format&0x7) << 4
	v |= uint64(c.WidthLog2&0xf) << 8
	v |= uint64(c.HeightLog2&0xf) << 12
	v |= uint64(c.UWrap&0x3) << 16
	v |= uint64(c.VWrap&0x3) << 18
	v |= uint64(c.MipLevels&0xf) << 20
	v |= uint64(c.BaseAddr) << 32
	return
}

func UnpackTexConfig(v uint64) TexConfig {
	return TexConfig{
		Enable:     v&1 != 0,
		Filter:     Filter(v >> 2 & 0x3),
		Format:     texture.Format(v >> 4 & 0x7),
		WidthLog2:  uint8(v >> 8 & 0xf),
		HeightLog2: uint8(v >> 12 & 0xf),
		UWrap:      WrapMode(v >> 16 & 0x3),
		VWrap:      WrapMode(v >> 18 & 0x3),
		MipLevels:  uint8(v >> 20 & 0xf),
		BaseAddr:   uint16(v >> 32),
	}
}
