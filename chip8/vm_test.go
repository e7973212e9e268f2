package chip8

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
)

func newTestVM(t *testing.T, program ...byte) *VM {
	t.Helper()

	vm := New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), WithSeed(1))
	vm.LoadProgram(program)
	return vm
}

func byteAt(t *testing.T, vm *VM, address uint16) byte {
	t.Helper()

	span, err := vm.Memory().Span(address, 1)
	require.NoError(t, err)
	return span[0]
}

func runFrames(t *testing.T, vm *VM, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, vm.RunUntilFrame())
	}
}

func TestVM_EndToEnd(t *testing.T) {
	vm := newTestVM(t, 0x60, 0x0A, 0x61, 0x05, 0x80, 0x14)

	runFrames(t, vm, 3)

	c := vm.CPU()
	assert.Equal(t, uint8(15), c.GetV(0))
	assert.Equal(t, uint8(0), c.GetV(0xF))
	assert.Equal(t, uint16(0x206), c.GetPC())
	assert.Equal(t, uint64(3), vm.FrameCount())
}

func TestVM_StepsPerFrame(t *testing.T) {
	vm := New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), WithStepsPerFrame(3))
	vm.LoadProgram([]byte{0x60, 0x0A, 0x61, 0x05, 0x80, 0x14})

	runFrames(t, vm, 1)

	assert.Equal(t, uint8(15), vm.CPU().GetV(0))
	assert.Equal(t, uint16(0x206), vm.CPU().GetPC())
}

func TestVM_LoadProgram(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		vm := newTestVM(t)
		assert.Equal(t, 4, vm.LoadProgram([]byte{1, 2, 3, 4}))
		assert.Equal(t, byte(4), byteAt(t, vm, 0x203))
	})

	t.Run("truncated", func(t *testing.T) {
		vm := newTestVM(t)
		image := make([]byte, memory.MaxProgramSize+100)
		for i := range image {
			image[i] = 0xAA
		}

		assert.Equal(t, memory.MaxProgramSize, vm.LoadProgram(image))
		assert.Equal(t, byte(0xAA), byteAt(t, vm, memory.Size-1))
		// font region untouched
		assert.Equal(t, byte(0xF0), byteAt(t, vm, 0))
	})
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ch8")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0xE0, 0x12, 0x00}, 0o644))

	vm, err := NewWithFile(path, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	assert.Equal(t, byte(0xE0), byteAt(t, vm, 0x201))

	_, err = NewWithFile(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVM_KeypadHandoff(t *testing.T) {
	// LD V0, K then spin
	vm := newTestVM(t, 0xF0, 0x0A, 0x12, 0x02)

	runFrames(t, vm, 1)
	assert.Equal(t, cpu.AwaitingKey, vm.CPU().GetState())

	// No key yet, still waiting
	runFrames(t, vm, 1)
	assert.Equal(t, cpu.AwaitingKey, vm.CPU().GetState())

	vm.HandleAction(action.Keypad7, event.Press)
	assert.True(t, vm.Keypad().IsDown(7))

	runFrames(t, vm, 1)
	assert.Equal(t, cpu.Running, vm.CPU().GetState())
	assert.Equal(t, uint8(7), vm.CPU().GetV(0))
	assert.Equal(t, uint16(0x202), vm.CPU().GetPC())

	vm.HandleAction(action.Keypad7, event.Release)
	assert.False(t, vm.Keypad().IsDown(7))
}

func TestVM_Pause(t *testing.T) {
	vm := newTestVM(t, 0x70, 0x01, 0x12, 0x00)

	runFrames(t, vm, 2)
	pc := vm.CPU().GetPC()

	vm.HandleAction(action.EmulatorPauseToggle, event.Press)
	assert.True(t, vm.Paused())

	// Release does nothing for controls
	vm.HandleAction(action.EmulatorPauseToggle, event.Release)
	assert.True(t, vm.Paused())

	runFrames(t, vm, 5)
	assert.Equal(t, pc, vm.CPU().GetPC())
	assert.Equal(t, uint64(2), vm.FrameCount())
}

func TestVM_Beeper(t *testing.T) {
	// LD V0, 5; LD ST, V0; spin
	vm := newTestVM(t, 0x60, 0x05, 0xF0, 0x18, 0x12, 0x04)

	runFrames(t, vm, 1)
	assert.False(t, vm.Beeper().Active())

	runFrames(t, vm, 1)
	assert.Equal(t, uint8(5), vm.CPU().GetSoundTimer())
	assert.True(t, vm.Beeper().Active())

	runFrames(t, vm, 5)
	assert.Equal(t, uint8(0), vm.CPU().GetSoundTimer())
	assert.False(t, vm.Beeper().Active())
}

func TestVM_PauseSilencesBeeper(t *testing.T) {
	vm := newTestVM(t, 0x60, 0x05, 0xF0, 0x18, 0x12, 0x04)

	runFrames(t, vm, 2)
	require.True(t, vm.Beeper().Active())

	vm.HandleAction(action.EmulatorPauseToggle, event.Press)
	runFrames(t, vm, 1)

	assert.False(t, vm.Beeper().Active())
	assert.Equal(t, uint8(5), vm.CPU().GetSoundTimer(), "timer frozen while paused")
}

func TestVM_HoldEvents(t *testing.T) {
	vm := newTestVM(t)

	vm.HandleAction(action.EmulatorPauseToggle, event.Press)
	vm.HandleAction(action.EmulatorMuteToggle, event.Press)
	for i := 0; i < 3; i++ {
		vm.HandleAction(action.EmulatorPauseToggle, event.Hold)
		vm.HandleAction(action.EmulatorMuteToggle, event.Hold)
	}
	assert.True(t, vm.Paused())
	assert.True(t, vm.Beeper().Muted())

	vm.HandleAction(action.KeypadB, event.Hold)
	assert.True(t, vm.Keypad().IsDown(0xB))
}

func TestVM_Mute(t *testing.T) {
	vm := newTestVM(t)
	assert.False(t, vm.Beeper().Muted())

	vm.HandleAction(action.EmulatorMuteToggle, event.Press)
	assert.True(t, vm.Beeper().Muted())

	muted := New(WithMuted(true))
	assert.True(t, muted.Beeper().Muted())
}

func TestVM_Fault(t *testing.T) {
	// RET with an empty stack
	vm := newTestVM(t, 0x00, 0xEE)

	err := vm.RunUntilFrame()
	require.Error(t, err)
	assert.ErrorIs(t, err, cpu.ErrStackUnderflow)

	var fault *cpu.Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x200), fault.PC)
	assert.Equal(t, uint16(0x00EE), fault.Opcode)

	// Halted for good
	assert.Same(t, fault, vm.RunUntilFrame())
}
