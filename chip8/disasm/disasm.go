package disasm

import (
	"fmt"
	"io"

	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/memory"
)

// DisassemblyLine represents a single disassembled instruction
type DisassemblyLine struct {
	Address     uint16
	Opcode      uint16
	Instruction string
	Length      int
}

// String formats the line as "ADDR: OPCODE  MNEMONIC".
func (l DisassemblyLine) String() string {
	if l.Length == 1 {
		return fmt.Sprintf("%04X: %02X    %s", l.Address, l.Opcode, l.Instruction)
	}
	return fmt.Sprintf("%04X: %04X  %s", l.Address, l.Opcode, l.Instruction)
}

// DisassembleAt disassembles the instruction at the given program counter
func DisassembleAt(pc uint16, mem *memory.Memory) (DisassemblyLine, error) {
	opcode, err := mem.ReadWord(pc)
	if err != nil {
		return DisassemblyLine{}, fmt.Errorf("disassemble at 0x%04X: %w", pc, err)
	}

	return DisassemblyLine{
		Address:     pc,
		Opcode:      opcode,
		Instruction: cpu.Decode(opcode).String(),
		Length:      2,
	}, nil
}

// DisassembleRange decodes a program image as if loaded at origin, two bytes at a time.
// A trailing odd byte is emitted as a data byte.
func DisassembleRange(program []byte, origin uint16) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, (len(program)+1)/2)

	for offset := 0; offset < len(program); offset += 2 {
		address := origin + uint16(offset)

		if offset+1 >= len(program) {
			lines = append(lines, DisassemblyLine{
				Address:     address,
				Opcode:      uint16(program[offset]),
				Instruction: fmt.Sprintf("DB 0x%02X", program[offset]),
				Length:      1,
			})
			break
		}

		opcode := bit.Combine(program[offset], program[offset+1])
		lines = append(lines, DisassemblyLine{
			Address:     address,
			Opcode:      opcode,
			Instruction: cpu.Decode(opcode).String(),
			Length:      2,
		})
	}

	return lines
}

// Disassemble writes the listing of a program loaded at the standard program start.
func Disassemble(w io.Writer, program []byte) error {
	for _, line := range DisassembleRange(program, memory.ProgramStart) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
