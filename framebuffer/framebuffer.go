// Package framebuffer provides a host-shadowed, double buffered draw target
// on GS memory. It implements the pix display driver interface, so the
// embeddedgo/display toolkit can render text and 2D graphics into the same
// surface the GS rasterizes into.
package framebuffer

import (
	"image"

	"github.com/clktmr/picogs/gs/regs"
	"github.com/clktmr/picogs/gs/spi"
	"github.com/clktmr/picogs/gs/texture"
)

// Framebuffer manages two color buffers and a shared depth buffer in GS
// memory. 2D drawing goes through a host-side shadow image and is uploaded on
// Flush, the GS draws into the same surface directly.
type Framebuffer struct {
	drv    *spi.Driver
	cfgs   [2]regs.FbConfig
	draw   int
	shadow *texture.ImageRGB565
	dirty  image.Rectangle
	fill   image.Uniform
	err    error
}

// New lays out a double buffered render target at the bottom of GS memory:
// two color buffers followed by the depth buffer.
func New(drv *spi.Driver, widthLog2, heightLog2 uint8) *Framebuffer {
	// surface size in 512 byte units
	blocks := uint16(1) << (widthLog2 + heightLog2 - 8)
	fb := &Framebuffer{
		drv:    drv,
		shadow: texture.NewImageRGB565(image.Rect(0, 0, 1<<widthLog2, 1<<heightLog2)),
	}
	for i := range fb.cfgs {
		fb.cfgs[i] = regs.FbConfig{
			ColorBase:  uint16(i) * blocks,
			ZBase:      2 * blocks,
			WidthLog2:  widthLog2,
			HeightLog2: heightLog2,
		}
	}
	fb.check(drv.WriteReg(regs.RegFbConfig, fb.cfgs[0].Pack()))
	fb.check(drv.WriteReg(regs.RegFbDisplay, fb.display(1).Pack()))
	return fb
}

// Config returns the current draw target, for hosts that program render
// state directly.
func (fb *Framebuffer) Config() regs.FbConfig { return fb.cfgs[fb.draw] }

func (fb *Framebuffer) display(i int) regs.FbDisplay {
	return regs.FbDisplay{
		FbAddr:      fb.cfgs[i].ColorBase,
		FbWidthLog2: fb.cfgs[i].WidthLog2,
	}
}

// Swap scans out the finished frame and redirects drawing to the other
// buffer. Flush any pending 2D drawing first.
func (fb *Framebuffer) Swap() error {
	fb.check(fb.drv.Swap(fb.cfgs[1-fb.draw], fb.display(fb.draw)))
	fb.draw = 1 - fb.draw
	return fb.Err(false)
}

// ClearDepth resets the shared depth buffer to the far plane.
func (fb *Framebuffer) ClearDepth() error {
	fb.check(fb.drv.ClearDepth(fb.Config(), 0xffff))
	return fb.Err(false)
}

func (fb *Framebuffer) check(err error) {
	if fb.err == nil {
		fb.err = err
	}
}
