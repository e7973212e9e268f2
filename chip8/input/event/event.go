package event

// Type represents the type of input event
type Type int

const (
	Press   Type = iota // Button pressed down (debounced for emulator controls)
	Release             // Button released (debounced for emulator controls)
	Hold                // Continuous while pressed (not debounced)
)

func (t Type) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	case Hold:
		return "hold"
	}
	return "unknown"
}
