package input

import (
	"time"

	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// Manager handles input actions and their associated callbacks.
// Keypad actions are written straight to the host-side keypad without debouncing,
// everything else goes through registered callbacks.
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	keypad        *memory.Keypad
	now           func() time.Time
}

func NewManager(k *memory.Keypad) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		keypad:        k,
		now:           time.Now,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if act.IsKeypad() {
		m.triggerKey(act, evt)
		return
	}

	// Debounce Press and Release events
	if evt == event.Press || evt == event.Release {
		now := m.now()
		if m.lastTriggered[act] == nil {
			m.lastTriggered[act] = make(map[event.Type]time.Time)
		}
		lastTime := m.lastTriggered[act][evt]
		if now.Sub(lastTime) < debounceDuration {
			return
		}
		m.lastTriggered[act][evt] = now
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}

// triggerKey writes keypad actions to the keypad; Hold keeps the key down.
func (m *Manager) triggerKey(act action.Action, evt event.Type) {
	if m.keypad == nil {
		return
	}

	key := memory.Key(act.Key())
	switch evt {
	case event.Press, event.Hold:
		m.keypad.Press(key)
	case event.Release:
		m.keypad.Release(key)
	}
}

// Keypad returns the host-side keypad the manager writes to.
func (m *Manager) Keypad() *memory.Keypad {
	return m.keypad
}
