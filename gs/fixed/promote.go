package fixed

// PromoteUNORM8 converts an 8-bit UNORM channel to Int4_12 by replicating the
// most significant bits into the low nibble, so that 0xff maps to 0x0fff.
func PromoteUNORM8(b uint8) Int4_12 {
	return Int4_12(uint16(b)<<4 | uint16(b)>>4)
}

// SatQ12 clamps a wide intermediate to the Q4.12 color range [0.0, 1.0].
func SatQ12(v int32) Int4_12 {
	if v < 0 {
		return 0
	}
	if v > 0x1000 {
		return 0x1000
	}
	return Int4_12(v)
}
