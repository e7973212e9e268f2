package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
)

func TestManager_KeypadActions(t *testing.T) {
	keypad := memory.NewKeypad()
	m := NewManager(keypad)

	m.Trigger(action.KeypadA, event.Press)
	assert.True(t, keypad.IsDown(0xA))

	m.Trigger(action.KeypadA, event.Release)
	assert.False(t, keypad.IsDown(0xA))

	// no debounce on keypad presses
	m.Trigger(action.KeypadA, event.Press)
	assert.True(t, keypad.IsDown(0xA))

	m.Trigger(action.Keypad3, event.Hold)
	assert.True(t, keypad.IsDown(0x3))
}

func TestManager_KeypadActionsSkipCallbacks(t *testing.T) {
	m := NewManager(memory.NewKeypad())
	called := false
	m.On(action.Keypad1, event.Press, func() { called = true })

	m.Trigger(action.Keypad1, event.Press)

	assert.False(t, called)
}

func TestManager_Callbacks(t *testing.T) {
	m := NewManager(nil)
	count := 0
	m.On(action.EmulatorQuit, event.Press, func() { count++ })
	m.On(action.EmulatorQuit, event.Press, func() { count++ })

	m.Trigger(action.EmulatorQuit, event.Press)
	assert.Equal(t, 2, count)

	m.Trigger(action.EmulatorQuit, event.Release)
	assert.Equal(t, 2, count, "no handler for release")
}

func TestManager_Debounce(t *testing.T) {
	m := NewManager(nil)
	clock := time.Unix(1000, 0)
	m.now = func() time.Time { return clock }

	count := 0
	m.On(action.EmulatorPauseToggle, event.Press, func() { count++ })

	m.Trigger(action.EmulatorPauseToggle, event.Press)
	m.Trigger(action.EmulatorPauseToggle, event.Press)
	assert.Equal(t, 1, count)

	clock = clock.Add(debounceDuration)
	m.Trigger(action.EmulatorPauseToggle, event.Press)
	assert.Equal(t, 2, count)
}

func TestManager_HoldIsNotDebounced(t *testing.T) {
	m := NewManager(nil)
	count := 0
	m.On(action.DebugLogLevelIncrease, event.Hold, func() { count++ })

	for i := 0; i < 5; i++ {
		m.Trigger(action.DebugLogLevelIncrease, event.Hold)
	}
	assert.Equal(t, 5, count)
}

func TestDefaultKeyMap_CoversKeypad(t *testing.T) {
	seen := map[uint8]bool{}
	for _, act := range DefaultKeyMap {
		if act.IsKeypad() {
			seen[act.Key()] = true
		}
	}
	assert.Len(t, seen, 16)

	act, ok := GetDefaultMapping("x")
	assert.True(t, ok)
	assert.Equal(t, action.Keypad0, act)

	_, ok = GetDefaultMapping("F12")
	assert.False(t, ok)
}
