package texcache

import (
	"github.com/clktmr/picogs/gs/regs"
	"github.com/clktmr/picogs/gs/texture"
)

// decode expands one burst of a 4x4 block into texels, row-major.
func decode(f texture.Format, words []uint16) (t [16]regs.RGBA) {
	switch f {
	case texture.BC1:
		decodeBC1(blockBytes(words), &t, true)
	case texture.BC2:
		b := blockBytes(words)
		decodeBC1(b[8:], &t, false)
		for i := range t {
			a := b[i/2] >> (4 * (i % 2)) & 0xf
			t[i].A = a<<4 | a
		}
	case texture.BC3:
		b := blockBytes(words)
		decodeBC1(b[8:], &t, false)
		var alpha [16]uint8
		decodeBC4Channel(b, &alpha)
		for i := range t {
			t[i].A = alpha[i]
		}
	case texture.BC4:
		var r [16]uint8
		decodeBC4Channel(blockBytes(words), &r)
		for i := range t {
			t[i] = regs.RGBA{R: r[i], G: r[i], B: r[i], A: 0xff}
		}
	case texture.RGB565:
		for i := range t {
			t[i] = expand565(words[i])
			t[i].A = 0xff
		}
	case texture.RGBA8888:
		for i := range t {
			lo, hi := words[2*i], words[2*i+1]
			t[i] = regs.RGBA{
				R: uint8(lo), G: uint8(lo >> 8),
				B: uint8(hi), A: uint8(hi >> 8),
			}
		}
	case texture.R8:
		b := blockBytes(words)
		for i := range t {
			t[i] = regs.RGBA{R: b[i], G: b[i], B: b[i], A: 0xff}
		}
	}
	return
}

// blockBytes flattens the burst into the block's byte stream, each word
// little-endian.
func blockBytes(words []uint16) []byte {
	b := make([]byte, 2*len(words))
	for i, w := range words {
		b[2*i] = byte(w)
		b[2*i+1] = byte(w >> 8)
	}
	return b
}

// expand565 widens RGB565 to 8 bits per channel by bit replication.
func expand565(p uint16) regs.RGBA {
	r := uint8(p >> 11 & 0x1f)
	g := uint8(p >> 5 & 0x3f)
	b := uint8(p & 0x1f)
	return regs.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
	}
}

// decodeBC1 decodes an 8 byte BC1 color block. punch selects the 3-color
// punch-through mode when c0 <= c1, which BC2/BC3 color blocks never use.
func decodeBC1(b []byte, t *[16]regs.RGBA, punch bool) {
	c0 := uint16(b[0]) | uint16(b[1])<<8
	c1 := uint16(b[2]) | uint16(b[3])<<8
	p0, p1 := expand565(c0), expand565(c1)
	p0.A, p1.A = 0xff, 0xff

	var pal [4]regs.RGBA
	pal[0], pal[1] = p0, p1
	if c0 > c1 || !punch {
		pal[2] = lerpColor(p0, p1, 1, 3)
		pal[3] = lerpColor(p0, p1, 2, 3)
	} else {
		pal[2] = lerpColor(p0, p1, 1, 2)
		pal[3] = regs.RGBA{}
	}

	for i := range t {
		idx := b[4+i/4] >> (i % 4 * 2) & 0x3
		t[i] = pal[idx]
	}
}

// decodeBC4Channel decodes an 8 byte single-channel block (BC4, also the
// alpha half of BC3).
func decodeBC4Channel(b []byte, out *[16]uint8) {
	a0, a1 := b[0], b[1]
	var pal [8]uint8
	pal[0], pal[1] = a0, a1
	if a0 > a1 {
		for i := 1; i < 7; i++ {
			pal[i+1] = uint8((int(a0)*(7-i) + int(a1)*i + 3) / 7)
		}
	} else {
		for i := 1; i < 5; i++ {
			pal[i+1] = uint8((int(a0)*(5-i) + int(a1)*i + 2) / 5)
		}
		pal[6], pal[7] = 0x00, 0xff
	}

	// 16 3-bit indices packed LSB first across 6 bytes.
	bits := uint64(0)
	for i := 5; i >= 0; i-- {
		bits = bits<<8 | uint64(b[2+i])
	}
	for i := range out {
		out[i] = pal[bits>>(3*i)&0x7]
	}
}

func lerpColor(a, b regs.RGBA, num, den int) regs.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8((int(x)*(den-num) + int(y)*num + den/2) / den)
	}
	return regs.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}
