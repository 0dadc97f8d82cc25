package framebuffer

import (
	"image/color"
	"testing"

	"github.com/clktmr/picogs/gs/regs"
	"github.com/clktmr/picogs/gs/spi"

	"github.com/embeddedgo/display/pix"
)

func TestPixDisplay(t *testing.T) {
	l := spi.NewLoopback()
	fb := New(spi.New(l), 6, 6)

	disp := pix.NewDisplay(fb)
	a := disp.NewArea(disp.Bounds())
	a.SetColor(color.RGBA{R: 0xff, A: 0xff})
	a.Fill(a.Bounds())
	a.Flush()

	if err := fb.Err(false); err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := l.GS.Image().At(5, 5).RGBA()
	if r < 0xc000 || g != 0 || b != 0 {
		t.Errorf("got rgb %04x %04x %04x, want red", r, g, b)
	}
}

func TestSwap(t *testing.T) {
	l := spi.NewLoopback()
	fb := New(spi.New(l), 6, 6)

	first := fb.Config()
	if err := fb.Swap(); err != nil {
		t.Fatal(err)
	}
	second := fb.Config()
	if first.ColorBase == second.ColorBase {
		t.Error("swap did not change the draw target")
	}
	if got := regs.UnpackFbConfig(l.GS.ReadReg(regs.RegFbConfig)); got != second {
		t.Errorf("device draw target %+v, want %+v", got, second)
	}
	if got := regs.UnpackFbDisplay(l.GS.ReadReg(regs.RegFbDisplay)); got.FbAddr != first.ColorBase {
		t.Errorf("scanout %+v, want buffer at %d", got, first.ColorBase)
	}
}

func TestClearDepth(t *testing.T) {
	l := spi.NewLoopback()
	fb := New(spi.New(l), 6, 6)

	if err := fb.ClearDepth(); err != nil {
		t.Fatal(err)
	}
	if got := l.GS.Mem().Word(fb.Config().ZWords()); got != 0xffff {
		t.Errorf("depth buffer word 0: %#04x", got)
	}
	if got := l.GS.Mem().Word(fb.Config().ZWords() + 4095); got != 0xffff {
		t.Errorf("depth buffer last word: %#04x", got)
	}
}
