package fixed_test

import (
	"testing"

	"github.com/clktmr/picogs/gs/fixed"
)

func TestInt12_4(t *testing.T) {
	if got := fixed.Int12_4U(320); got != 320<<4 {
		t.Errorf("Int12_4U(320) = %v", got)
	}
	if got := fixed.Int12_4F(1.5).Mul(fixed.Int12_4U(2)); got != fixed.Int12_4U(3) {
		t.Errorf("1.5*2 = %v", got)
	}
	if got := fixed.Int12_4F(-2.5).Floor(); got != -3 {
		t.Errorf("floor(-2.5) = %v", got)
	}
}

func TestInt4_12(t *testing.T) {
	half := fixed.Int4_12F(0.5)
	if got := half.Mul(half); got != fixed.Int4_12F(0.25) {
		t.Errorf("0.5*0.5 = %v", got)
	}
	if got := fixed.Int4_12U(1); got != 0x1000 {
		t.Errorf("Int4_12U(1) = %#x", got)
	}
}

func TestPromoteUNORM8(t *testing.T) {
	for _, tc := range []struct {
		in   uint8
		want fixed.Int4_12
	}{
		{0x00, 0x0000},
		{0xff, 0x0fff},
		{0x80, 0x0808},
		{0x40, 0x0404},
	} {
		if got := fixed.PromoteUNORM8(tc.in); got != tc.want {
			t.Errorf("PromoteUNORM8(%#x) = %#x, want %#x", tc.in, got, tc.want)
		}
	}
}

func TestSatQ12(t *testing.T) {
	if got := fixed.SatQ12(-5); got != 0 {
		t.Errorf("SatQ12(-5) = %#x", got)
	}
	if got := fixed.SatQ12(0x1234); got != 0x1000 {
		t.Errorf("SatQ12(0x1234) = %#x", got)
	}
	if got := fixed.SatQ12(0x0800); got != 0x0800 {
		t.Errorf("SatQ12(0x800) = %#x", got)
	}
}
