package fixed

import "fmt"

func Int4_12U(i int) Int4_12     { return Int4_12(i << 12) }
func Int4_12F(f float32) Int4_12 { return Int4_12(f * (1 << 12)) }

func (x Int4_12) Floor() int            { return int(x >> 12) }
func (x Int4_12) Ceil() int             { return int((int32(x) + 1<<12 - 1) >> 12) }
func (x Int4_12) Mul(y Int4_12) Int4_12 { return Int4_12((int32(x) * int32(y)) >> 12) }
func (x Int4_12) Div(y Int4_12) Int4_12 { return Int4_12(int32(x) << 12 / int32(y)) }

func (x Int4_12) String() string {
	const shift, mask = 12, 1<<12 - 1
	return fmt.Sprintf("%d:%04d", int32(x>>shift), int32(x&mask))
}
