package action

import "fmt"

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// CHIP-8 keypad, the value of each action is the key index
	Keypad0 Action = iota
	Keypad1
	Keypad2
	Keypad3
	Keypad4
	Keypad5
	Keypad6
	Keypad7
	Keypad8
	Keypad9
	KeypadA
	KeypadB
	KeypadC
	KeypadD
	KeypadE
	KeypadF

	// Emulator features
	EmulatorSnapshot
	EmulatorPauseToggle
	EmulatorMuteToggle
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

const keypadSize = 16

// Category groups actions for help screens and routing.
type Category int

const (
	CategoryKeypad Category = iota
	CategoryEmulator
	CategoryDebug
)

// FromKey returns the keypad action for key index k (0-F).
func FromKey(k uint8) (Action, bool) {
	if k >= keypadSize {
		return 0, false
	}
	return Action(k), true
}

// IsKeypad reports whether the action is one of the 16 hex keys.
func (a Action) IsKeypad() bool {
	return a >= Keypad0 && a <= KeypadF
}

// Key returns the keypad index of a keypad action. Only meaningful when IsKeypad is true.
func (a Action) Key() uint8 {
	return uint8(a)
}

func (a Action) Category() Category {
	switch {
	case a.IsKeypad():
		return CategoryKeypad
	case a == DebugLogLevelIncrease || a == DebugLogLevelDecrease:
		return CategoryDebug
	default:
		return CategoryEmulator
	}
}

func (a Action) String() string {
	if a.IsKeypad() {
		return fmt.Sprintf("Key %X", uint8(a))
	}
	switch a {
	case EmulatorSnapshot:
		return "Snapshot"
	case EmulatorPauseToggle:
		return "Pause"
	case EmulatorMuteToggle:
		return "Mute"
	case EmulatorQuit:
		return "Quit"
	case DebugLogLevelIncrease:
		return "Log level +"
	case DebugLogLevelDecrease:
		return "Log level -"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}
