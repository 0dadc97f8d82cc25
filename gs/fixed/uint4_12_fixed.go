package fixed

import "fmt"

func UInt4_12U(i int) UInt4_12     { return UInt4_12(i << 12) }
func UInt4_12F(f float32) UInt4_12 { return UInt4_12(f * (1 << 12)) }

func (x UInt4_12) Floor() int              { return int(x >> 12) }
func (x UInt4_12) Ceil() int               { return int((uint32(x) + 1<<12 - 1) >> 12) }
func (x UInt4_12) Mul(y UInt4_12) UInt4_12 { return UInt4_12((uint32(x) * uint32(y)) >> 12) }
func (x UInt4_12) Div(y UInt4_12) UInt4_12 { return UInt4_12(uint32(x) << 12 / uint32(y)) }

func (x UInt4_12) String() string {
	const shift, mask = 12, 1<<12 - 1
	return fmt.Sprintf("%d:%04d", uint32(x>>shift), uint32(x&mask))
}
