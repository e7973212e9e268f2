package memory

import (
	"errors"
	"fmt"

	"github.com/valerio/go-chip8/chip8/bit"
)

const (
	// Size is the amount of addressable memory, 4KB.
	Size = 0x1000

	// ProgramStart is where program images are loaded and where execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest image that fits between ProgramStart and the end of memory.
	MaxProgramSize = Size - ProgramStart
)

// ErrAddressOutOfRange is returned when an access would touch a byte outside of memory.
var ErrAddressOutOfRange = errors.New("address out of range")

// Memory is the flat 4KB address space. The low 80 bytes hold the built-in font.
type Memory struct {
	data [Size]byte
}

// New creates a zeroed memory with the font table written at FontBase.
func New() *Memory {
	m := &Memory{}
	copy(m.data[FontBase:], fontSet[:])
	return m
}

// Load copies a program image starting at ProgramStart, one byte per address.
// Bytes that would land past the end of memory are dropped.
// Returns the number of bytes actually copied.
func (m *Memory) Load(program []byte) int {
	return copy(m.data[ProgramStart:], program)
}

// ReadWord reads the big endian 16 bit word at address and address+1.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if !Contains(address, 2) {
		return 0, fmt.Errorf("%w: word at 0x%04X", ErrAddressOutOfRange, address)
	}
	return bit.Combine(m.data[address], m.data[address+1]), nil
}

// Span returns a mutable view of length bytes starting at address.
// Fails with ErrAddressOutOfRange if any of those bytes is outside memory.
func (m *Memory) Span(address uint16, length int) ([]byte, error) {
	if !Contains(address, length) {
		return nil, fmt.Errorf("%w: %d bytes at 0x%04X", ErrAddressOutOfRange, length, address)
	}
	return m.data[int(address) : int(address)+length], nil
}

// Contains reports whether the range [address, address+length) lies entirely inside memory.
func Contains(address uint16, length int) bool {
	return length >= 0 && int(address)+length <= Size
}
