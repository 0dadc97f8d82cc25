// Package texture provides a common datastructure for images used by the GS,
// e.g. textures and framebuffers.
package texture

import "image"

// Texel format as encoded in the TEXn_CFG FORMAT field.
type Format uint8

const (
	BC1 Format = iota
	BC2
	BC3
	BC4
	RGB565
	RGBA8888
	R8
)

func (f Format) String() string {
	switch f {
	case BC1:
		return "BC1"
	case BC2:
		return "BC2"
	case BC3:
		return "BC3"
	case BC4:
		return "BC4"
	case RGB565:
		return "RGB565"
	case RGBA8888:
		return "RGBA8888"
	case R8:
		return "R8"
	}
	return "unknown"
}

// BlockBytes returns the size of one 4x4 texel block in bytes.
func (f Format) BlockBytes() int {
	switch f {
	case BC1, BC4:
		return 8
	case BC2, BC3, R8:
		return 16
	case RGB565:
		return 32
	case RGBA8888:
		return 64
	}
	return 0
}

// BurstWords returns the length of the fill burst for one block in 16-bit
// SDRAM words.
func (f Format) BurstWords() int { return f.BlockBytes() >> 1 }

// All surfaces are stored as 4x4 blocks, blocks in row-major order and texels
// in row-major order within a block.
const BlockDim = 4

// TiledOffset returns the texel index of (x, y) in a tiled surface of width
// 1<<widthLog2. Multiply with the format's texel size to get a byte offset,
// except for the BC formats where texels have no individual address.
func TiledOffset(x, y, widthLog2 int) int {
	blocksPerRow := 1 << widthLog2 / BlockDim
	if blocksPerRow < 1 {
		blocksPerRow = 1
	}
	block := (y/BlockDim)*blocksPerRow + x/BlockDim
	return block*BlockDim*BlockDim + (y%BlockDim)*BlockDim + x%BlockDim
}

// BlockIndex returns the row-major index of the block containing (x, y).
func BlockIndex(x, y, widthLog2 int) int {
	blocksPerRow := 1 << widthLog2 / BlockDim
	if blocksPerRow < 1 {
		blocksPerRow = 1
	}
	return (y/BlockDim)*blocksPerRow + x/BlockDim
}

// LevelDim returns the dimension of a mip level, clamped to one block.
func LevelDim(dimLog2, level int) int {
	d := 1 << dimLog2 >> level
	if d < BlockDim {
		d = BlockDim
	}
	return d
}

// MipOffsets returns the cumulative offset of each mip level in 16-bit words,
// relative to the texture's base address. Level sizes shrink by half per
// level, clamped to a single block.
func (f Format) MipOffsets(widthLog2, heightLog2, levels int) []int {
	offsets := make([]int, levels+1)
	words := 0
	for l := 0; l < levels+1; l++ {
		offsets[l] = words
		w, h := LevelDim(widthLog2, l), LevelDim(heightLog2, l)
		blocks := (w / BlockDim) * (h / BlockDim)
		words += blocks * f.BurstWords()
	}
	return offsets
}

// A Texture holds a tiled texture payload in host memory, ready for upload.
type Texture struct {
	Format                Format
	WidthLog2, HeightLog2 uint8
	Levels                uint8 // additional mip levels, 0 means base only
	Pix                   []byte
}

func (t *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, 1<<t.WidthLog2, 1<<t.HeightLog2)
}
