package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned by CALL when all 16 stack slots are in use.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned by RET when the stack is empty.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrPCOutOfRange is returned when the program counter does not point at a full word in memory.
	ErrPCOutOfRange = errors.New("program counter out of range")
)

// Fault is a fatal execution error. Once a CPU faults it stays halted and every
// subsequent Step returns the same Fault.
type Fault struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("cpu fault at pc=0x%04X opcode=0x%04X: %v", f.PC, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
