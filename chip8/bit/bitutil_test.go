package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		high, low uint8
		expected  uint16
	}{
		{0xAB, 0xCD, 0xABCD},
		{0x00, 0x00, 0x0000},
		{0xFF, 0xFF, 0xFFFF},
		{0x60, 0x0A, 0x600A},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Combine(tt.high, tt.low), "Combine(%X, %X)", tt.high, tt.low)
	}
}

func TestCheckedAdd(t *testing.T) {
	tests := []struct {
		a, b             uint8
		expectedResult   uint8
		expectedOverflow bool
	}{
		{0b11111111, 0b00000001, 0, true},
		{0b11111111, 0b11111111, 254, true},
		{0b00000001, 0b00000001, 2, false},
		{0b10000000, 0b00000000, 128, false},
		{10, 5, 15, false},
	}

	for _, tt := range tests {
		result, overflow := CheckedAdd(tt.a, tt.b)
		assert.Equal(t, tt.expectedResult, result, "CheckedAdd(%d, %d)", tt.a, tt.b)
		assert.Equal(t, tt.expectedOverflow, overflow, "CheckedAdd(%d, %d) overflow", tt.a, tt.b)
	}
}

func TestCheckedAdd16(t *testing.T) {
	tests := []struct {
		a                uint16
		b                uint8
		expectedResult   uint16
		expectedOverflow bool
	}{
		{0x0FFF, 0x01, 0x1000, false},
		{0xFFFF, 0x01, 0x0000, true},
		{0xFF80, 0xFF, 0x007F, true},
		{0x0000, 0x00, 0x0000, false},
	}

	for _, tt := range tests {
		result, overflow := CheckedAdd16(tt.a, tt.b)
		assert.Equal(t, tt.expectedResult, result)
		assert.Equal(t, tt.expectedOverflow, overflow)
	}
}

func TestIsSet(t *testing.T) {
	tests := []struct {
		byte     uint8
		index    uint8
		expected bool
	}{
		{0b10101010, 0, false},
		{0b10101010, 1, true},
		{0b10101010, 2, false},
		{0b10101010, 7, true},
		{0b10101010, 8, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsSet(tt.index, tt.byte), "IsSet(%d, %08b)", tt.index, tt.byte)
	}
}

func TestLow(t *testing.T) {
	assert.Equal(t, uint8(0xCD), Low(0xABCD))
	assert.Equal(t, uint8(0x00), Low(0xFF00))
}

func TestNibble(t *testing.T) {
	tests := []struct {
		value    uint16
		index    uint8
		expected uint8
	}{
		{0xABCD, 0, 0xD},
		{0xABCD, 1, 0xC},
		{0xABCD, 2, 0xB},
		{0xABCD, 3, 0xA},
		{0x8014, 2, 0x0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Nibble(tt.value, tt.index), "Nibble(%04X, %d)", tt.value, tt.index)
	}
}

func TestAddress(t *testing.T) {
	assert.Equal(t, uint16(0x234), Address(0x1234))
	assert.Equal(t, uint16(0xFFF), Address(0xBFFF))
}
