package cpu

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/bit"
)

// Op identifies an instruction variant. Every 16 bit word decodes to exactly one Op.
type Op uint8

const (
	OpUnknown Op = iota
	OpSYS        // 0nnn
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEByte     // 3xkk
	OpSNEByte    // 4xkk
	OpSEReg      // 5xy0
	OpLDByte     // 6xkk
	OpADDByte    // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDIVx      // Fx55
	OpLDVxI      // Fx65

	opCount
)

// Instruction is a decoded opcode with all of its operand fields extracted.
// Which fields are meaningful depends on Op.
type Instruction struct {
	Op     Op
	Opcode uint16

	X   uint8  // bits 11-8, first register operand
	Y   uint8  // bits 7-4, second register operand
	N   uint8  // bits 3-0, small immediate
	NNN uint16 // bits 11-0, address
	KK  uint8  // bits 7-0, byte immediate
}

// Decode splits an instruction word into its fields and identifies the variant.
// It has no side effects, words that match no known pattern decode to OpUnknown.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Op:     decodeOp(opcode),
		Opcode: opcode,
		X:      bit.Nibble(opcode, 2),
		Y:      bit.Nibble(opcode, 1),
		N:      bit.Nibble(opcode, 0),
		NNN:    bit.Address(opcode),
		KK:     bit.Low(opcode),
	}
}

func decodeOp(opcode uint16) Op {
	n := bit.Nibble(opcode, 0)
	kk := bit.Low(opcode)

	switch bit.Nibble(opcode, 3) {
	case 0x0:
		switch opcode {
		case 0x00E0:
			return OpCLS
		case 0x00EE:
			return OpRET
		}
		return OpSYS
	case 0x1:
		return OpJP
	case 0x2:
		return OpCALL
	case 0x3:
		return OpSEByte
	case 0x4:
		return OpSNEByte
	case 0x5:
		if n == 0 {
			return OpSEReg
		}
	case 0x6:
		return OpLDByte
	case 0x7:
		return OpADDByte
	case 0x8:
		return aluOps[n]
	case 0x9:
		if n == 0 {
			return OpSNEReg
		}
	case 0xA:
		return OpLDI
	case 0xB:
		return OpJPV0
	case 0xC:
		return OpRND
	case 0xD:
		return OpDRW
	case 0xE:
		switch kk {
		case 0x9E:
			return OpSKP
		case 0xA1:
			return OpSKNP
		}
	case 0xF:
		switch kk {
		case 0x07:
			return OpLDVxDT
		case 0x0A:
			return OpLDVxK
		case 0x15:
			return OpLDDTVx
		case 0x18:
			return OpLDSTVx
		case 0x1E:
			return OpADDI
		case 0x29:
			return OpLDF
		case 0x33:
			return OpLDB
		case 0x55:
			return OpLDIVx
		case 0x65:
			return OpLDVxI
		}
	}

	return OpUnknown
}

// aluOps maps the low nibble of an 8xyn word to its variant.
var aluOps = [16]Op{
	0x0: OpLDReg,
	0x1: OpOR,
	0x2: OpAND,
	0x3: OpXOR,
	0x4: OpADDReg,
	0x5: OpSUB,
	0x6: OpSHR,
	0x7: OpSUBN,
	0xE: OpSHL,
}

// String returns the assembler mnemonic for the instruction, with its operands.
func (in Instruction) String() string {
	switch in.Op {
	case OpSYS:
		return fmt.Sprintf("SYS 0x%03X", in.NNN)
	case OpCLS:
		return "CLS"
	case OpRET:
		return "RET"
	case OpJP:
		return fmt.Sprintf("JP 0x%03X", in.NNN)
	case OpCALL:
		return fmt.Sprintf("CALL 0x%03X", in.NNN)
	case OpSEByte:
		return fmt.Sprintf("SE V%X, 0x%02X", in.X, in.KK)
	case OpSNEByte:
		return fmt.Sprintf("SNE V%X, 0x%02X", in.X, in.KK)
	case OpSEReg:
		return fmt.Sprintf("SE V%X, V%X", in.X, in.Y)
	case OpLDByte:
		return fmt.Sprintf("LD V%X, 0x%02X", in.X, in.KK)
	case OpADDByte:
		return fmt.Sprintf("ADD V%X, 0x%02X", in.X, in.KK)
	case OpLDReg:
		return fmt.Sprintf("LD V%X, V%X", in.X, in.Y)
	case OpOR:
		return fmt.Sprintf("OR V%X, V%X", in.X, in.Y)
	case OpAND:
		return fmt.Sprintf("AND V%X, V%X", in.X, in.Y)
	case OpXOR:
		return fmt.Sprintf("XOR V%X, V%X", in.X, in.Y)
	case OpADDReg:
		return fmt.Sprintf("ADD V%X, V%X", in.X, in.Y)
	case OpSUB:
		return fmt.Sprintf("SUB V%X, V%X", in.X, in.Y)
	case OpSHR:
		return fmt.Sprintf("SHR V%X", in.X)
	case OpSUBN:
		return fmt.Sprintf("SUBN V%X, V%X", in.X, in.Y)
	case OpSHL:
		return fmt.Sprintf("SHL V%X", in.X)
	case OpSNEReg:
		return fmt.Sprintf("SNE V%X, V%X", in.X, in.Y)
	case OpLDI:
		return fmt.Sprintf("LD I, 0x%03X", in.NNN)
	case OpJPV0:
		return fmt.Sprintf("JP V0, 0x%03X", in.NNN)
	case OpRND:
		return fmt.Sprintf("RND V%X, 0x%02X", in.X, in.KK)
	case OpDRW:
		return fmt.Sprintf("DRW V%X, V%X, %d", in.X, in.Y, in.N)
	case OpSKP:
		return fmt.Sprintf("SKP V%X", in.X)
	case OpSKNP:
		return fmt.Sprintf("SKNP V%X", in.X)
	case OpLDVxDT:
		return fmt.Sprintf("LD V%X, DT", in.X)
	case OpLDVxK:
		return fmt.Sprintf("LD V%X, K", in.X)
	case OpLDDTVx:
		return fmt.Sprintf("LD DT, V%X", in.X)
	case OpLDSTVx:
		return fmt.Sprintf("LD ST, V%X", in.X)
	case OpADDI:
		return fmt.Sprintf("ADD I, V%X", in.X)
	case OpLDF:
		return fmt.Sprintf("LD F, V%X", in.X)
	case OpLDB:
		return fmt.Sprintf("LD B, V%X", in.X)
	case OpLDIVx:
		return fmt.Sprintf("LD [I], V%X", in.X)
	case OpLDVxI:
		return fmt.Sprintf("LD V%X, [I]", in.X)
	}

	return fmt.Sprintf("DW 0x%04X", in.Opcode)
}
