package bit

// Combine combines two 8 bit values into a single 16 bit value.
// The high byte will be the most significant one.
func Combine(high, low uint8) uint16 {
	return (uint16(high) << 8) | uint16(low)
}

// CheckedAdd adds two 8 bit unsigned values and detects if an overflow happened.
func CheckedAdd(a, b uint8) (result uint8, overflow bool) {
	overflow = (uint16(a)+uint16(b))&0xFF00 != 0
	result = a + b
	return
}

// CheckedAdd16 adds an 8 bit value to a 16 bit one and detects if the sum overflowed 16 bits.
func CheckedAdd16(a uint16, b uint8) (result uint16, overflow bool) {
	sum := uint32(a) + uint32(b)
	return uint16(sum), sum > 0xFFFF
}

// IsSet will check if the bit at the specified index is Set to 1 or not.
func IsSet(index, byte uint8) bool {
	return ((byte >> index) & 1) == 1
}

// Low returns the low (LSB) part of a 16 bit number.
func Low(value uint16) uint8 {
	return uint8(value)
}

// Nibble returns the 4 bit group at the given index of a 16 bit word,
// index 0 being the least significant nibble.
// Example: Nibble(0xABCD, 3) -> 0xA
func Nibble(value uint16, index uint8) uint8 {
	return uint8(value>>(index*4)) & 0x0F
}

// Address returns the low 12 bits of a 16 bit word.
func Address(value uint16) uint16 {
	return value & 0x0FFF
}
