package framebuffer

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/clktmr/picogs/gs/texture"
)

// The pix display driver interface. Drawing renders into the host shadow,
// Flush tiles and uploads the touched region to the GS draw target.

func (fb *Framebuffer) SetDir(dir int) image.Rectangle {
	// rotation is not supported
	return fb.shadow.Bounds()
}

func (fb *Framebuffer) Draw(r image.Rectangle, src image.Image, sp image.Point,
	mask image.Image, mp image.Point, op draw.Op) {
	draw.DrawMask(fb.shadow, r, src, sp, mask, mp, op)
	fb.dirty = fb.dirty.Union(r.Intersect(fb.shadow.Bounds()))
}

func (fb *Framebuffer) SetColor(c color.Color) {
	fb.fill.C = c
}

func (fb *Framebuffer) Fill(r image.Rectangle) {
	fb.Draw(r, &fb.fill, image.Point{}, nil, image.Point{}, draw.Over)
}

// Flush uploads the dirty region of the shadow image. The GS memory layout
// is block tiled, so the upload covers whole 4x4 blocks.
func (fb *Framebuffer) Flush() {
	if fb.dirty.Empty() {
		return
	}
	// TODO upload only the dirty block rows
	pix := texture.Tile(fb.shadow)
	fb.check(fb.drv.Upload(fb.Config().ColorWords()>>2, pix))
	fb.dirty = image.Rectangle{}
}

func (fb *Framebuffer) Err(clear bool) error {
	err := fb.err
	if clear {
		fb.err = nil
	}
	return err
}
