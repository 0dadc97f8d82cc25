package spi

import (
	"encoding/binary"
	"math/bits"

	"github.com/clktmr/picogs/gs/fixed"
	"github.com/clktmr/picogs/gs/regs"
	"github.com/clktmr/picogs/gs/texture"
)

// Vertex is a fully attributed vertex as submitted by the host.
type Vertex struct {
	X, Y  fixed.Int12_4
	Z     uint16
	Q     fixed.UInt4_12
	Color [2]regs.RGBA
	UV    [2]regs.UV
}

func (v Vertex) word() uint64 {
	return regs.VertexWord{X: v.X, Y: v.Y, Z: v.Z, Q: v.Q}.Pack()
}

// snap mirrors the device's coordinate rounding during triangle setup.
func snap(v fixed.Int12_4) int32 { return (int32(v) + 8) >> 4 }

// AreaSetup computes the reciprocal of twice the triangle's signed area and
// writes the AREA_SETUP register. The device multiplies attribute gradients
// with it instead of dividing.
func (d *Driver) AreaSetup(v [3]Vertex) error {
	x0, y0 := snap(v[0].X), snap(v[0].Y)
	x1, y1 := snap(v[1].X), snap(v[1].Y)
	x2, y2 := snap(v[2].X), snap(v[2].Y)
	area2 := (y0-y1)*(x2-x0) + (x1-x0)*(y2-y0)
	if area2 < 0 {
		area2 = -area2
	}
	if area2 == 0 {
		return d.WriteReg(regs.RegAreaSetup, 0)
	}
	var shift uint8
	if n := bits.Len32(uint32(area2)); n > 16 {
		shift = uint8(n - 16)
	}
	ds := uint32(area2) >> shift
	cfg := regs.AreaSetupCfg{InvArea: uint16((1<<16 + ds/2) / ds), Shift: shift}
	return d.WriteReg(regs.RegAreaSetup, cfg.Pack())
}

func (d *Driver) vertex(v Vertex, kick regs.Reg) error {
	if err := d.WriteReg(regs.RegColor, regs.PackColors(v.Color[0], v.Color[1])); err != nil {
		return err
	}
	if err := d.WriteReg(regs.RegUV0UV1, regs.PackUVs(v.UV[0], v.UV[1])); err != nil {
		return err
	}
	return d.WriteReg(kick, v.word())
}

// Triangle submits one triangle, kicking on the last vertex.
func (d *Driver) Triangle(v [3]Vertex) error {
	if err := d.AreaSetup(v); err != nil {
		return err
	}
	if err := d.vertex(v[0], regs.RegVertexNoKick); err != nil {
		return err
	}
	if err := d.vertex(v[1], regs.RegVertexNoKick); err != nil {
		return err
	}
	return d.vertex(v[2], regs.RegVertexKick012)
}

// Rect submits an axis-aligned rectangle. v0 is the top-left corner, v1
// carries the attributes of the top-right corner and v2 the bottom-right.
func (d *Driver) Rect(v [3]Vertex) error {
	if err := d.vertex(v[0], regs.RegVertexNoKick); err != nil {
		return err
	}
	if err := d.vertex(v[1], regs.RegVertexNoKick); err != nil {
		return err
	}
	return d.vertex(v[2], regs.RegVertexKickRect)
}

// Upload copies data to GS memory through the MEM_ADDR/MEM_DATA port,
// starting at the given dword address. Data shorter than a multiple of eight
// bytes is zero padded.
func (d *Driver) Upload(dwordAddr int, data []byte) error {
	if err := d.WriteReg(regs.RegMemAddr, uint64(dwordAddr)); err != nil {
		return err
	}
	for len(data) > 0 {
		var chunk [8]byte
		n := copy(chunk[:], data)
		data = data[n:]
		if err := d.WriteReg(regs.RegMemData, binary.LittleEndian.Uint64(chunk[:])); err != nil {
			return err
		}
	}
	return nil
}

// Readback reads n bytes from GS memory starting at a dword address.
func (d *Driver) Readback(dwordAddr, n int) ([]byte, error) {
	if err := d.WriteReg(regs.RegMemAddr, uint64(dwordAddr)); err != nil {
		return nil, err
	}
	buf := make([]byte, 0, (n+7)&^7)
	for len(buf) < n {
		v, err := d.ReadReg(regs.RegMemData)
		if err != nil {
			return nil, err
		}
		buf = binary.LittleEndian.AppendUint64(buf, v)
	}
	return buf[:n], nil
}

// UploadTexture uploads a tiled texture to baseAddr (in 512 byte units) and
// returns the matching sampler configuration.
func (d *Driver) UploadTexture(t *texture.Texture, baseAddr uint16) (regs.TexConfig, error) {
	cfg := regs.TexConfig{
		Enable:     true,
		Format:     t.Format,
		WidthLog2:  t.WidthLog2,
		HeightLog2: t.HeightLog2,
		MipLevels:  t.Levels,
		BaseAddr:   baseAddr,
	}
	// 512 byte units are 64 dwords
	return cfg, d.Upload(int(baseAddr)<<6, t.Pix)
}

// ClearDepth fills the depth buffer with z using the blitter.
func (d *Driver) ClearDepth(fb regs.FbConfig, z uint16) error {
	cmd := regs.MemFillCmd{
		Base:  fb.ZBase,
		Value: z,
		Count: 1 << (fb.WidthLog2 + fb.HeightLog2),
	}
	return d.WriteReg(regs.RegMemFill, cmd.Pack())
}

// ClearColor fills the color buffer with an RGB565 value.
func (d *Driver) ClearColor(fb regs.FbConfig, pix uint16) error {
	cmd := regs.MemFillCmd{
		Base:  fb.ColorBase,
		Value: pix,
		Count: 1 << (fb.WidthLog2 + fb.HeightLog2),
	}
	return d.WriteReg(regs.RegMemFill, cmd.Pack())
}

// Swap points the scanout at the finished frame and the draw target at the
// other buffer of a double buffered setup.
func (d *Driver) Swap(draw regs.FbConfig, show regs.FbDisplay) error {
	if err := d.WriteReg(regs.RegFbDisplay, show.Pack()); err != nil {
		return err
	}
	return d.WriteReg(regs.RegFbConfig, draw.Pack())
}
