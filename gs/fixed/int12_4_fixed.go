package fixed

import "fmt"

func Int12_4U(i int) Int12_4     { return Int12_4(i << 4) }
func Int12_4F(f float32) Int12_4 { return Int12_4(f * (1 << 4)) }

func (x Int12_4) Floor() int            { return int(x >> 4) }
func (x Int12_4) Ceil() int             { return int((int32(x) + 1<<4 - 1) >> 4) }
func (x Int12_4) Mul(y Int12_4) Int12_4 { return Int12_4((int32(x) * int32(y)) >> 4) }
func (x Int12_4) Div(y Int12_4) Int12_4 { return Int12_4(int32(x) << 4 / int32(y)) }

func (x Int12_4) String() string {
	const shift, mask = 4, 1<<4 - 1
	return fmt.Sprintf("%d:%02d", int32(x>>shift), int32(x&mask))
}
