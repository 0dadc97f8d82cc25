package fixed

import "fmt"

func UInt0_16U(i int) UInt0_16     { return UInt0_16(i << 16) }
func UInt0_16F(f float32) UInt0_16 { return UInt0_16(f * (1 << 16)) }

func (x UInt0_16) Floor() int              { return int(uint32(x) >> 16) }
func (x UInt0_16) Ceil() int               { return int((uint32(x) + 1<<16 - 1) >> 16) }
func (x UInt0_16) Mul(y UInt0_16) UInt0_16 { return UInt0_16((uint32(x) * uint32(y)) >> 16) }
func (x UInt0_16) Div(y UInt0_16) UInt0_16 { return UInt0_16(uint32(x) << 16 / uint32(y)) }

func (x UInt0_16) String() string {
	const shift, mask = 16, 1<<16 - 1
	return fmt.Sprintf("%d:%05d", uint32(x)>>shift, uint32(x&mask))
}
