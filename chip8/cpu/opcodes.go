package cpu

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
)

// Opcode is an instruction handler. Handlers mutate machine state and report how
// the program counter should move; they never write pc directly.
type Opcode func(*CPU, Instruction) (Directive, error)

// opcodes maps every decoded variant to its handler.
var opcodes = [opCount]Opcode{
	OpUnknown: unimplemented,
	OpSYS:     opcode0nnn,
	OpCLS:     opcode00E0,
	OpRET:     opcode00EE,
	OpJP:      opcode1nnn,
	OpCALL:    opcode2nnn,
	OpSEByte:  opcode3xkk,
	OpSNEByte: opcode4xkk,
	OpSEReg:   opcode5xy0,
	OpLDByte:  opcode6xkk,
	OpADDByte: opcode7xkk,
	OpLDReg:   opcode8xy0,
	OpOR:      opcode8xy1,
	OpAND:     opcode8xy2,
	OpXOR:     opcode8xy3,
	OpADDReg:  opcode8xy4,
	OpSUB:     opcode8xy5,
	OpSHR:     opcode8xy6,
	OpSUBN:    opcode8xy7,
	OpSHL:     opcode8xyE,
	OpSNEReg:  opcode9xy0,
	OpLDI:     opcodeAnnn,
	OpJPV0:    opcodeBnnn,
	OpRND:     opcodeCxkk,
	OpDRW:     opcodeDxyn,
	OpSKP:     opcodeEx9E,
	OpSKNP:    opcodeExA1,
	OpLDVxDT:  opcodeFx07,
	OpLDVxK:   opcodeFx0A,
	OpLDDTVx:  opcodeFx15,
	OpLDSTVx:  opcodeFx18,
	OpADDI:    opcodeFx1E,
	OpLDF:     opcodeFx29,
	OpLDB:     opcodeFx33,
	OpLDIVx:   opcodeFx55,
	OpLDVxI:   opcodeFx65,
}

// unimplemented runs words that decode to nothing known as a no-op.
func unimplemented(cpu *CPU, in Instruction) (Directive, error) {
	cpu.unimplemented++
	cpu.log().Warn("Unimplemented opcode",
		"pc", fmt.Sprintf("0x%04X", cpu.pc),
		"opcode", fmt.Sprintf("0x%04X", in.Opcode))
	return Next(), nil
}

//SYS addr
//#0nnn:
func opcode0nnn(cpu *CPU, in Instruction) (Directive, error) {
	cpu.log().Debug("Ignoring machine code routine call",
		"pc", fmt.Sprintf("0x%04X", cpu.pc),
		"addr", fmt.Sprintf("0x%03X", in.NNN))
	return Next(), nil
}

//CLS
//#00E0:
func opcode00E0(cpu *CPU, _ Instruction) (Directive, error) {
	cpu.screen.Clear()
	return Next(), nil
}

//RET
//#00EE:
func opcode00EE(cpu *CPU, _ Instruction) (Directive, error) {
	address, err := cpu.popStack()
	if err != nil {
		return Directive{}, err
	}
	return Jump(address), nil
}

//JP addr
//#1nnn:
func opcode1nnn(_ *CPU, in Instruction) (Directive, error) {
	return Jump(in.NNN), nil
}

//CALL addr
//#2nnn:
func opcode2nnn(cpu *CPU, in Instruction) (Directive, error) {
	if err := cpu.pushStack(cpu.pc + instructionSize); err != nil {
		return Directive{}, err
	}
	return Jump(in.NNN), nil
}

//SE Vx, byte
//#3xkk:
func opcode3xkk(cpu *CPU, in Instruction) (Directive, error) {
	return skipIf(cpu.v[in.X] == in.KK), nil
}

//SNE Vx, byte
//#4xkk:
func opcode4xkk(cpu *CPU, in Instruction) (Directive, error) {
	return skipIf(cpu.v[in.X] != in.KK), nil
}

//SE Vx, Vy
//#5xy0:
func opcode5xy0(cpu *CPU, in Instruction) (Directive, error) {
	return skipIf(cpu.v[in.X] == cpu.v[in.Y]), nil
}

//LD Vx, byte
//#6xkk:
func opcode6xkk(cpu *CPU, in Instruction) (Directive, error) {
	cpu.v[in.X] = in.KK
	return Next(), nil
}

//ADD Vx, byte
//#7xkk:
func opcode7xkk(cpu *CPU, in Instruction) (Directive, error) {
	cpu.v[in.X] += in.KK
	return Next(), nil
}

//LD Vx, Vy
//#8xy0:
func opcode8xy0(cpu *CPU, in Instruction) (Directive, error) {
	cpu.v[in.X] = cpu.v[in.Y]
	return Next(), nil
}

//OR Vx, Vy
//#8xy1:
func opcode8xy1(cpu *CPU, in Instruction) (Directive, error) {
	cpu.v[in.X] |= cpu.v[in.Y]
	return Next(), nil
}

//AND Vx, Vy
//#8xy2:
func opcode8xy2(cpu *CPU, in Instruction) (Directive, error) {
	cpu.v[in.X] &= cpu.v[in.Y]
	return Next(), nil
}

//XOR Vx, Vy
//#8xy3:
func opcode8xy3(cpu *CPU, in Instruction) (Directive, error) {
	cpu.v[in.X] ^= cpu.v[in.Y]
	return Next(), nil
}

//ADD Vx, Vy
//#8xy4:
func opcode8xy4(cpu *CPU, in Instruction) (Directive, error) {
	cpu.add(in.X, cpu.v[in.Y])
	return Next(), nil
}

//SUB Vx, Vy
//#8xy5:
func opcode8xy5(cpu *CPU, in Instruction) (Directive, error) {
	cpu.sub(in.X, cpu.v[in.X], cpu.v[in.Y])
	return Next(), nil
}

//SHR Vx
//#8xy6:
func opcode8xy6(cpu *CPU, in Instruction) (Directive, error) {
	cpu.shr(in.X)
	return Next(), nil
}

//SUBN Vx, Vy
//#8xy7:
func opcode8xy7(cpu *CPU, in Instruction) (Directive, error) {
	cpu.sub(in.X, cpu.v[in.Y], cpu.v[in.X])
	return Next(), nil
}

//SHL Vx
//#8xyE:
func opcode8xyE(cpu *CPU, in Instruction) (Directive, error) {
	cpu.shl(in.X)
	return Next(), nil
}

//SNE Vx, Vy
//#9xy0:
func opcode9xy0(cpu *CPU, in Instruction) (Directive, error) {
	return skipIf(cpu.v[in.X] != cpu.v[in.Y]), nil
}

//LD I, addr
//#Annn:
func opcodeAnnn(cpu *CPU, in Instruction) (Directive, error) {
	cpu.i = in.NNN
	return Next(), nil
}

//JP V0, addr
//#Bnnn:
func opcodeBnnn(cpu *CPU, in Instruction) (Directive, error) {
	return Jump(in.NNN + uint16(cpu.v[0])), nil
}

//RND Vx, byte
//#Cxkk:
func opcodeCxkk(cpu *CPU, in Instruction) (Directive, error) {
	cpu.v[in.X] = uint8(cpu.rng.Uint32()) & in.KK
	return Next(), nil
}

//DRW Vx, Vy, nibble
//#Dxyn:
func opcodeDxyn(cpu *CPU, in Instruction) (Directive, error) {
	if err := cpu.drawSprite(in.X, in.Y, in.N); err != nil {
		return Directive{}, err
	}
	return Next(), nil
}

//SKP Vx
//#Ex9E:
func opcodeEx9E(cpu *CPU, in Instruction) (Directive, error) {
	return skipIf(cpu.keypad.IsDown(cpu.v[in.X])), nil
}

//SKNP Vx
//#ExA1:
func opcodeExA1(cpu *CPU, in Instruction) (Directive, error) {
	return skipIf(!cpu.keypad.IsDown(cpu.v[in.X])), nil
}

//LD Vx, DT
//#Fx07:
func opcodeFx07(cpu *CPU, in Instruction) (Directive, error) {
	cpu.v[in.X] = cpu.delayTimer
	return Next(), nil
}

//LD Vx, K
//#Fx0A:
// pc still moves past this instruction; the key lands in Vx when the wait resolves.
func opcodeFx0A(cpu *CPU, in Instruction) (Directive, error) {
	cpu.gate = waitGate{state: AwaitingKey, register: in.X}
	return Next(), nil
}

//LD DT, Vx
//#Fx15:
func opcodeFx15(cpu *CPU, in Instruction) (Directive, error) {
	cpu.delayTimer = cpu.v[in.X]
	return Next(), nil
}

//LD ST, Vx
//#Fx18:
func opcodeFx18(cpu *CPU, in Instruction) (Directive, error) {
	cpu.soundTimer = cpu.v[in.X]
	return Next(), nil
}

//ADD I, Vx
//#Fx1E:
func opcodeFx1E(cpu *CPU, in Instruction) (Directive, error) {
	result, overflow := bit.CheckedAdd16(cpu.i, cpu.v[in.X])
	cpu.i = result
	cpu.setFlag(overflow)
	return Next(), nil
}

//LD F, Vx
//#Fx29:
func opcodeFx29(cpu *CPU, in Instruction) (Directive, error) {
	cpu.i = memory.FontBase + uint16(cpu.v[in.X])*memory.FontGlyphSize
	return Next(), nil
}

//LD B, Vx
//#Fx33:
func opcodeFx33(cpu *CPU, in Instruction) (Directive, error) {
	if err := cpu.storeBCD(in.X); err != nil {
		return Directive{}, err
	}
	return Next(), nil
}

//LD [I], Vx
//#Fx55:
func opcodeFx55(cpu *CPU, in Instruction) (Directive, error) {
	if err := cpu.storeRegisters(in.X); err != nil {
		return Directive{}, err
	}
	return Next(), nil
}

//LD Vx, [I]
//#Fx65:
func opcodeFx65(cpu *CPU, in Instruction) (Directive, error) {
	if err := cpu.loadRegisters(in.X); err != nil {
		return Directive{}, err
	}
	return Next(), nil
}
