package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/bits"

	gst "github.com/clktmr/picogs/gs/texture"
	"github.com/ericpauley/go-quantize/quantize"
	xdraw "golang.org/x/image/draw"
)

// Encode converts an image into a tiled GS texture with the given number of
// additional mip levels. Both dimensions must be powers of two, at least one
// block wide.
func Encode(src image.Image, format gst.Format, levels int, dither bool) (*gst.Texture, error) {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if w < gst.BlockDim || h < gst.BlockDim ||
		bits.OnesCount(uint(w)) != 1 || bits.OnesCount(uint(h)) != 1 {
		return nil, fmt.Errorf("unsupported dimensions %dx%d", w, h)
	}

	tex := &gst.Texture{
		Format:     format,
		WidthLog2:  uint8(bits.TrailingZeros(uint(w))),
		HeightLog2: uint8(bits.TrailingZeros(uint(h))),
		Levels:     uint8(levels),
	}

	base := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(base, base.Bounds(), src, src.Bounds().Min, draw.Src)

	for l := 0; l < levels+1; l++ {
		lw := gst.LevelDim(int(tex.WidthLog2), l)
		lh := gst.LevelDim(int(tex.HeightLog2), l)
		level := base
		if lw != w || lh != h {
			level = image.NewRGBA(image.Rect(0, 0, lw, lh))
			xdraw.CatmullRom.Scale(level, level.Bounds(), base, base.Bounds(), xdraw.Src, nil)
		}
		if dither && format == gst.RGB565 {
			quantized := gst.NewImageRGB565(level.Bounds())
			xdraw.FloydSteinberg.Draw(quantized, quantized.Bounds(), level, image.Point{})
			draw.Draw(level, level.Bounds(), quantized, image.Point{}, draw.Src)
		}
		tex.Pix = append(tex.Pix, packLevel(level, format)...)
	}
	return tex, nil
}

// packLevel serializes one mip level block by block, in the byte order the
// GS bursts from SDRAM.
func packLevel(img *image.RGBA, format gst.Format) []byte {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	out := make([]byte, 0, (w/gst.BlockDim)*(h/gst.BlockDim)*format.BlockBytes())
	for by := 0; by < h; by += gst.BlockDim {
		for bx := 0; bx < w; bx += gst.BlockDim {
			var block [16]color.RGBA
			for i := range block {
				block[i] = img.RGBAAt(bx+i%4, by+i/4)
			}
			out = appendBlock(out, &block, img, bx, by, format)
		}
	}
	return out
}

func appendBlock(out []byte, b *[16]color.RGBA, img *image.RGBA, bx, by int, format gst.Format) []byte {
	switch format {
	case gst.BC1:
		return appendBC1(out, b, img.SubImage(image.Rect(bx, by, bx+4, by+4)))
	case gst.BC2:
		for i := 0; i < 16; i += 2 {
			out = append(out, b[i].A>>4|b[i+1].A&0xf0)
		}
		return appendBC1(out, b, img.SubImage(image.Rect(bx, by, bx+4, by+4)))
	case gst.BC3:
		out = appendBC4Channel(out, b, func(c color.RGBA) uint8 { return c.A })
		return appendBC1(out, b, img.SubImage(image.Rect(bx, by, bx+4, by+4)))
	case gst.BC4:
		return appendBC4Channel(out, b, func(c color.RGBA) uint8 { return c.R })
	case gst.RGB565:
		for _, c := range b {
			p := gst.PackRGB565(c.R, c.G, c.B)
			out = append(out, byte(p), byte(p>>8))
		}
		return out
	case gst.RGBA8888:
		for _, c := range b {
			out = append(out, c.R, c.G, c.B, c.A)
		}
		return out
	case gst.R8:
		for _, c := range b {
			out = append(out, c.R)
		}
		return out
	}
	return out
}

// appendBC1 encodes one color block. Endpoints come from a two color median
// cut over the block, indices pick the nearest of the four palette entries.
func appendBC1(out []byte, b *[16]color.RGBA, blockImg image.Image) []byte {
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make([]color.Color, 0, 2), blockImg)

	c0 := to565(pal[0])
	c1 := c0
	if len(pal) > 1 {
		c1 = to565(pal[len(pal)-1])
	}
	// four color mode needs c0 > c1
	if c0 < c1 {
		c0, c1 = c1, c0
	} else if c0 == c1 && c0 > 0 {
		c1--
	}

	palette := [4]color.RGBA{
		from565(c0), from565(c1),
		mix565(c0, c1, 1), mix565(c0, c1, 2),
	}

	out = append(out, byte(c0), byte(c0>>8), byte(c1), byte(c1>>8))
	for row := 0; row < 4; row++ {
		var idx byte
		for col := 0; col < 4; col++ {
			idx |= nearest(&palette, b[row*4+col]) << (2 * col)
		}
		out = append(out, idx)
	}
	return out
}

// appendBC4Channel encodes a single channel block with min/max endpoints and
// the 8 value interpolated palette.
func appendBC4Channel(out []byte, b *[16]color.RGBA, ch func(color.RGBA) uint8) []byte {
	a0, a1 := uint8(0), uint8(0xff)
	for _, c := range b {
		a0 = max(a0, ch(c))
		a1 = min(a1, ch(c))
	}
	if a0 == a1 {
		if a0 == 0 {
			a0 = 1
		} else {
			a1 = a0 - 1
		}
	}
	var pal [8]uint8
	pal[0], pal[1] = a0, a1
	for i := 1; i < 7; i++ {
		pal[i+1] = uint8((int(a0)*(7-i) + int(a1)*i + 3) / 7)
	}

	var idx uint64
	for i, c := range b {
		best, bestDist := 0, 256
		for p, v := range pal {
			d := int(ch(c)) - int(v)
			if d < 0 {
				d = -d
			}
			if d < bestDist {
				best, bestDist = p, d
			}
		}
		idx |= uint64(best) << (3 * i)
	}

	out = append(out, a0, a1)
	for i := 0; i < 6; i++ {
		out = append(out, byte(idx>>(8*i)))
	}
	return out
}

func to565(c color.Color) uint16 {
	r, g, b, _ := c.RGBA()
	return gst.PackRGB565(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func from565(p uint16) color.RGBA {
	r := uint8(p >> 11 & 0x1f)
	g := uint8(p >> 5 & 0x3f)
	b := uint8(p & 0x1f)
	return color.RGBA{r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2, 0xff}
}

func mix565(c0, c1 uint16, num int) color.RGBA {
	a, b := from565(c0), from565(c1)
	mix := func(x, y uint8) uint8 {
		return uint8((int(x)*(3-num) + int(y)*num + 1) / 3)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xff}
}

func nearest(pal *[4]color.RGBA, c color.RGBA) byte {
	best, bestDist := 0, 1<<30
	for i, p := range pal {
		dr := int(p.R) - int(c.R)
		dg := int(p.G) - int(c.G)
		db := int(p.B) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return byte(best)
}
