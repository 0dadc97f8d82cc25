package texture_test

import (
	"bytes"
	"testing"

	"github.com/clktmr/picogs/gs/texture"
)

func TestTiledOffset(t *testing.T) {
	// 8x8 surface, two blocks per row
	const widthLog2 = 3
	for _, tc := range []struct {
		x, y, want int
	}{
		{0, 0, 0},
		{3, 0, 3},
		{0, 1, 4},
		{3, 3, 15},
		{4, 0, 16}, // second block
		{7, 3, 31},
		{0, 4, 32}, // second block row
		{7, 7, 63},
	} {
		if got := texture.TiledOffset(tc.x, tc.y, widthLog2); got != tc.want {
			t.Errorf("TiledOffset(%d, %d) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestMipOffsets(t *testing.T) {
	// 16x16 RGB565: level 0 = 16 blocks, level 1 = 4 blocks, level 2 = 1
	// block, level 3 clamps to 1 block.
	got := texture.RGB565.MipOffsets(4, 4, 3)
	want := []int{0, 16 * 16, 16*16 + 4*16, 16*16 + 4*16 + 16}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("offset[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBurstWords(t *testing.T) {
	for _, tc := range []struct {
		format texture.Format
		want   int
	}{
		{texture.BC1, 4},
		{texture.BC2, 8},
		{texture.BC3, 8},
		{texture.BC4, 4},
		{texture.RGB565, 16},
		{texture.RGBA8888, 32},
		{texture.R8, 8},
	} {
		if got := tc.format.BurstWords(); got != tc.want {
			t.Errorf("%v burst = %d, want %d", tc.format, got, tc.want)
		}
	}
}

func TestFileFormat(t *testing.T) {
	tex := &texture.Texture{
		Format:     texture.RGB565,
		WidthLog2:  4,
		HeightLog2: 4,
		Pix:        make([]byte, 512),
	}
	for i := range tex.Pix {
		tex.Pix[i] = byte(i)
	}

	buf := &bytes.Buffer{}
	if err := tex.Store(buf); err != nil {
		t.Fatal(err)
	}

	loaded, err := texture.Load(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Format != tex.Format || loaded.WidthLog2 != tex.WidthLog2 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if !bytes.Equal(loaded.Pix, tex.Pix) {
		t.Error("payload mismatch")
	}

	// corrupt a header byte, must be caught by the checksum
	bad := bytes.Clone(buf.Bytes())
	bad[3] ^= 0xff
	if _, err := texture.Load(bytes.NewReader(bad)); err == nil {
		t.Error("expected error on corrupted header")
	}
}
