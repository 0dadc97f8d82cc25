// Package raster implements triangle setup, attribute interpolation and the
// edge-walk rasterizer that turns primitives into a stream of fragments.
package raster

import (
	"github.com/clktmr/picogs/gs/fixed"
	"github.com/clktmr/picogs/gs/regs"
)

// Vertex is one corner of a primitive as latched from the COLOR, UV0_UV1 and
// VERTEX_* registers.
type Vertex struct {
	X, Y  fixed.Int12_4
	Z     uint16
	Color [2]regs.RGBA
	UV    [2]regs.UV
	Q     fixed.UInt4_12
}

// Shade is an interpolated color with Q4.12 channels, already promoted and
// clamped by the accumulator.
type Shade struct{ R, G, B, A fixed.Int4_12 }

// Fragment is one covered pixel on the fragment bus.
type Fragment struct {
	X, Y  uint16 // 10 bit
	Z     uint16
	Shade [2]Shade
	UV    [2]regs.UV
	Q     fixed.UInt4_12
}

// Config is the per-primitive state snapshot the rasterizer works against.
type Config struct {
	Mode                  regs.RenderMode
	Area                  regs.AreaSetupCfg
	WidthLog2, HeightLog2 uint8
}
