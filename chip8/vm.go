package chip8

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// DefaultStepsPerFrame runs one instruction per 60 Hz frame, so timers decay
// at their nominal rate.
const DefaultStepsPerFrame = 1

// VM owns the whole machine state and the host-side pieces that feed it:
// the keypad the backends write to, the beeper and the frame limiter.
type VM struct {
	cpu    *cpu.CPU
	mem    *memory.Memory
	screen *video.FrameBuffer

	// hostKeypad is written by input events and handed to the CPU once per frame
	hostKeypad *memory.Keypad
	input      *input.Manager

	beeper  *audio.Beeper
	limiter timing.Limiter
	logger  *slog.Logger

	stepsPerFrame int
	paused        bool
	muted         bool
	frames        uint64

	cpuOptions []cpu.Option
}

// Option configures a VM.
type Option func(*VM)

// WithLogger sets the logger used by the VM and its CPU.
func WithLogger(logger *slog.Logger) Option {
	return func(vm *VM) {
		vm.logger = logger
		vm.cpuOptions = append(vm.cpuOptions, cpu.WithLogger(logger))
	}
}

// WithSeed makes the random instruction deterministic.
func WithSeed(seed uint64) Option {
	return func(vm *VM) {
		vm.cpuOptions = append(vm.cpuOptions, cpu.WithSeed(seed))
	}
}

// WithRandSource sets the source for the random instruction.
func WithRandSource(src rand.Source) Option {
	return func(vm *VM) {
		vm.cpuOptions = append(vm.cpuOptions, cpu.WithRandSource(src))
	}
}

// WithStepsPerFrame sets how many instructions run per frame. Values below 1 are ignored.
func WithStepsPerFrame(steps int) Option {
	return func(vm *VM) {
		if steps > 0 {
			vm.stepsPerFrame = steps
		}
	}
}

// WithLimiter sets the frame limiter. The default does not wait.
func WithLimiter(limiter timing.Limiter) Option {
	return func(vm *VM) {
		vm.limiter = limiter
	}
}

// WithBeeper replaces the default beeper.
func WithBeeper(beeper *audio.Beeper) Option {
	return func(vm *VM) {
		vm.beeper = beeper
	}
}

// WithMuted starts the VM with audio muted.
func WithMuted(muted bool) Option {
	return func(vm *VM) {
		vm.muted = muted
	}
}

// New creates a VM with an empty program area.
func New(opts ...Option) *VM {
	vm := &VM{
		mem:           memory.New(),
		screen:        video.NewFrameBuffer(),
		hostKeypad:    memory.NewKeypad(),
		beeper:        audio.NewBeeper(),
		limiter:       timing.NewNoOpLimiter(),
		stepsPerFrame: DefaultStepsPerFrame,
	}

	for _, opt := range opts {
		opt(vm)
	}

	vm.beeper.SetMuted(vm.muted)
	vm.cpu = cpu.New(vm.mem, vm.screen, memory.NewKeypad(), vm.cpuOptions...)
	vm.input = input.NewManager(vm.hostKeypad)
	vm.registerControls()

	return vm
}

// NewWithFile creates a VM and loads the program image at path into it.
func NewWithFile(path string, opts ...Option) (*VM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	vm := New(opts...)
	vm.LoadProgram(data)

	return vm, nil
}

// LoadProgram copies a program image at the program start. Bytes that don't fit
// in memory are dropped. Returns the number of bytes loaded.
func (vm *VM) LoadProgram(data []byte) int {
	loaded := vm.mem.Load(data)

	if loaded < len(data) {
		vm.log().Warn("Program truncated", "size", len(data), "loaded", loaded, "max", memory.MaxProgramSize)
	} else {
		vm.log().Info("Loaded program", "bytes", loaded)
	}

	return loaded
}

func (vm *VM) registerControls() {
	vm.input.On(action.EmulatorPauseToggle, event.Press, func() {
		vm.paused = !vm.paused
		if !vm.paused {
			vm.limiter.Reset()
		}
		vm.log().Info("Pause toggled", "paused", vm.paused)
	})

	vm.input.On(action.EmulatorMuteToggle, event.Press, func() {
		vm.beeper.SetMuted(!vm.beeper.Muted())
		vm.log().Info("Mute toggled", "muted", vm.beeper.Muted())
	})
}

// RunUntilFrame runs one frame worth of instructions. The current keypad is
// handed to the CPU first; the beeper follows the sound timer afterwards.
// A fatal CPU fault stops the frame early and is returned, every later call
// returns it again.
func (vm *VM) RunUntilFrame() error {
	if !vm.paused {
		vm.cpu.SetKeypad(vm.hostKeypad.State())

		for range vm.stepsPerFrame {
			if err := vm.cpu.Step(); err != nil {
				return err
			}
		}

		vm.beeper.Update(vm.cpu.GetSoundTimer())
		vm.frames++
	} else {
		// the sound timer is frozen, keep the tone off for the length of the pause
		vm.beeper.Update(0)
	}

	vm.limiter.WaitForNextFrame()
	return nil
}

// GetCurrentFrame returns the screen. It is only valid until the next RunUntilFrame.
func (vm *VM) GetCurrentFrame() *video.FrameBuffer {
	return vm.screen
}

// HandleAction routes an input event: keypad actions update the host keypad,
// control actions fire the callbacks registered for that event type.
func (vm *VM) HandleAction(act action.Action, evt event.Type) {
	vm.input.Trigger(act, evt)
}

func (vm *VM) log() *slog.Logger {
	if vm.logger != nil {
		return vm.logger
	}
	return slog.Default()
}

// CPU exposes the processor for inspection.
func (vm *VM) CPU() *cpu.CPU { return vm.cpu }

// Memory exposes the 4KB address space.
func (vm *VM) Memory() *memory.Memory { return vm.mem }

// Beeper returns the tone source, to hand to a backend as its audio provider.
func (vm *VM) Beeper() *audio.Beeper { return vm.beeper }

// Keypad returns the host-side keypad that input events write to.
func (vm *VM) Keypad() *memory.Keypad { return vm.hostKeypad }

// Paused reports whether stepping is suspended.
func (vm *VM) Paused() bool { return vm.paused }

// FrameCount returns how many frames actually ran instructions.
func (vm *VM) FrameCount() uint64 { return vm.frames }
