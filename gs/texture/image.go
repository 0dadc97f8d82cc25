package texture

import (
	"image"
	"image/color"
	"math/bits"
)

// ImageRGB565 is a linear row-major RGB565 image. Drawing into it converts
// through RGB565Model, which makes it a suitable target for dithered
// conversions. Use Tile to produce the GS memory layout.
type ImageRGB565 struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

func NewImageRGB565(r image.Rectangle) *ImageRGB565 {
	return &ImageRGB565{
		Pix:    make([]uint8, r.Dx()*r.Dy()*2),
		Stride: 2 * r.Dx(),
		Rect:   r,
	}
}

func (p *ImageRGB565) ColorModel() color.Model { return RGB565Model }

func (p *ImageRGB565) Bounds() image.Rectangle { return p.Rect }

func (p *ImageRGB565) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	offset := p.PixOffset(x, y)
	return ColorRGB565(uint16(p.Pix[offset]) | uint16(p.Pix[offset+1])<<8)
}

func (p *ImageRGB565) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	offset := p.PixOffset(x, y)
	col, _ := rgb565Model(c).(ColorRGB565)
	p.Pix[offset] = uint8(col)
	p.Pix[offset+1] = uint8(col >> 8)
}

func (p *ImageRGB565) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

// Tile converts a linear image into the tiled layout the GS samples and
// scans out, as little-endian words. Both dimensions must be powers of two.
func Tile(img *ImageRGB565) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	wLog2 := bits.TrailingZeros(uint(w))
	out := make([]byte, w*h*2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			dst := TiledOffset(x, y, wLog2) * 2
			out[dst] = img.Pix[src]
			out[dst+1] = img.Pix[src+1]
		}
	}
	return out
}

// ColorRGB565 is a color in the framebuffer's pixel format, R[15:11] G[10:5]
// B[4:0].
type ColorRGB565 uint16

func (c ColorRGB565) RGBA() (r, g, b, a uint32) {
	r = uint32(c>>11) & 0x1f
	g = uint32(c>>5) & 0x3f
	b = uint32(c) & 0x1f
	r = r<<11 | r<<6 | r<<1 | r>>4
	g = g<<10 | g<<4 | g>>2
	b = b<<11 | b<<6 | b<<1 | b>>4
	return r, g, b, 0xffff
}

var RGB565Model color.Model = color.ModelFunc(rgb565Model)

func rgb565Model(c color.Color) color.Color {
	if _, ok := c.(ColorRGB565); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return ColorRGB565(uint16(r>>11)<<11 | uint16(g>>10)<<5 | uint16(b>>11))
}

// PackRGB565 converts 8-bit channels to the framebuffer pixel format.
func PackRGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}
