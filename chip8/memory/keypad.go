package memory

// KeyCount is the number of logical keys on the hex keypad.
const KeyCount = 16

// Key identifies one of the 16 logical keys, 0x0 to 0xF.
type Key uint8

// Keypad holds the down state of the hex keypad.
type Keypad struct {
	keys [KeyCount]bool
}

// NewKeypad creates a keypad with every key up.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Set replaces the whole keypad state.
func (k *Keypad) Set(state [KeyCount]bool) {
	k.keys = state
}

// State returns a copy of the current keypad state.
func (k *Keypad) State() [KeyCount]bool {
	return k.keys
}

// Press marks a key as down.
func (k *Keypad) Press(key Key) {
	if key < KeyCount {
		k.keys[key] = true
	}
}

// Release marks a key as up.
func (k *Keypad) Release(key Key) {
	if key < KeyCount {
		k.keys[key] = false
	}
}

// IsDown reports whether the key at the given index is held.
// Indexes outside the keypad are never down.
func (k *Keypad) IsDown(index uint8) bool {
	return index < KeyCount && k.keys[index]
}

// FirstDown returns the lowest index of a held key, scanning in ascending order.
func (k *Keypad) FirstDown() (uint8, bool) {
	for i, down := range k.keys {
		if down {
			return uint8(i), true
		}
	}
	return 0, false
}
