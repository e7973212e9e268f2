package cpu

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	// RegisterCount is the number of general purpose registers, V0 through VF.
	RegisterCount = 16
	// StackSize is the number of return addresses the call stack can hold.
	StackSize = 16

	flagRegister    = 0xF
	instructionSize = 2
)

// RunState is the wait gate state of the cycle controller.
type RunState uint8

const (
	// Running means the next Step fetches and executes an instruction.
	Running RunState = iota
	// AwaitingKey means execution is suspended until a key is down.
	AwaitingKey
)

func (s RunState) String() string {
	if s == AwaitingKey {
		return "awaiting-key"
	}
	return "running"
}

type waitGate struct {
	state    RunState
	register uint8
}

// CPU holds the full CHIP-8 machine state and drives it one step at a time.
type CPU struct {
	// registers
	v     [RegisterCount]uint8
	i     uint16
	pc    uint16
	sp    uint8
	stack [StackSize]uint16

	delayTimer uint8
	soundTimer uint8

	gate waitGate

	memory *memory.Memory
	screen *video.FrameBuffer
	keypad *memory.Keypad

	rng    *rand.Rand
	logger *slog.Logger

	// metadata
	currentOpcode uint16
	cycles        uint64
	unimplemented uint64
	fault         *Fault
}

// Option configures a CPU at construction time.
type Option func(*CPU)

// WithLogger routes the CPU's diagnostics to logger instead of slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *CPU) {
		c.logger = logger
	}
}

// WithRandSource sets the source used by RND.
func WithRandSource(src rand.Source) Option {
	return func(c *CPU) {
		c.rng = rand.New(src)
	}
}

// WithSeed makes RND deterministic for a given seed.
func WithSeed(seed uint64) Option {
	return WithRandSource(rand.NewPCG(seed, seed))
}

// New returns a CPU wired to the given memory, screen and keypad, with pc at
// the program start and everything else zeroed.
func New(mem *memory.Memory, screen *video.FrameBuffer, keypad *memory.Keypad, opts ...Option) *CPU {
	c := &CPU{
		pc:     memory.ProgramStart,
		memory: mem,
		screen: screen,
		keypad: keypad,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return c
}

// Step runs one controller step. While running, it decrements both timers,
// fetches the word at pc, executes it and applies the resulting directive.
// While awaiting a key it only polls the keypad.
// The returned error is always a *Fault; after the first one the CPU is halted.
func (c *CPU) Step() error {
	if c.fault != nil {
		return c.fault
	}

	if c.gate.state == AwaitingKey {
		c.resolveWait()
		return nil
	}

	c.tickTimers()

	opcode, err := c.memory.ReadWord(c.pc)
	if err != nil {
		c.currentOpcode = 0
		return c.halt(fmt.Errorf("%w: 0x%04X", ErrPCOutOfRange, c.pc))
	}
	c.currentOpcode = opcode

	instruction := Decode(opcode)

	log := c.log()
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("exec",
			"pc", fmt.Sprintf("0x%04X", c.pc),
			"opcode", fmt.Sprintf("0x%04X", opcode),
			"instr", instruction.String())
	}

	directive, err := opcodes[instruction.Op](c, instruction)
	if err != nil {
		return c.halt(err)
	}

	c.pc = directive.apply(c.pc)
	c.cycles++

	return nil
}

// resolveWait completes a pending LD Vx, K as soon as any key is down,
// picking the lowest index when several are.
func (c *CPU) resolveWait() {
	key, ok := c.keypad.FirstDown()
	if !ok {
		return
	}

	c.v[c.gate.register] = key
	c.gate = waitGate{}
}

func (c *CPU) tickTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

func (c *CPU) halt(err error) error {
	c.fault = &Fault{PC: c.pc, Opcode: c.currentOpcode, Err: err}
	c.log().Error("CPU halted", "error", c.fault)
	return c.fault
}

func (c *CPU) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

// SetKeypad replaces the whole keypad state, 16 booleans indexed by key.
func (c *CPU) SetKeypad(state [memory.KeyCount]bool) {
	c.keypad.Set(state)
}

// Fault returns the error that halted the CPU, or nil while it is healthy.
func (c *CPU) Fault() error {
	if c.fault == nil {
		return nil
	}
	return c.fault
}

// Debug getter methods for register display
func (c *CPU) GetV(x uint8) uint8 { return c.v[x&0xF] }
func (c *CPU) GetRegisters() [RegisterCount]uint8 { return c.v }
func (c *CPU) GetI() uint16 { return c.i }
func (c *CPU) GetPC() uint16 { return c.pc }
func (c *CPU) GetSP() uint8 { return c.sp }
func (c *CPU) GetDelayTimer() uint8 { return c.delayTimer }
func (c *CPU) GetSoundTimer() uint8 { return c.soundTimer }
func (c *CPU) GetState() RunState { return c.gate.state }
func (c *CPU) GetWaitRegister() uint8 { return c.gate.register }
func (c *CPU) GetCycles() uint64 { return c.cycles }

// UnimplementedCount is how many words executed so far decoded to no known instruction.
func (c *CPU) UnimplementedCount() uint64 { return c.unimplemented }
