// Package fixed provides fixed-point arithmetic types used by the GS.
package fixed

//go:generate go run mkfixed.go Int12_4 int16
type Int12_4 int16

//go:generate go run mkfixed.go Int4_12 int16
type Int4_12 int16

//go:generate go run mkfixed.go UInt4_12 uint16
type UInt4_12 uint16

//go:generate go run mkfixed.go UInt0_16 uint16
type UInt0_16 uint16
