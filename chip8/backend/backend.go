package backend

import (
	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend represents a complete emulator platform (rendering + input + audio)
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, SDL window, etc.)
// - Translating platform-specific input events to Actions
// - Playing the tone exposed by the audio provider, if they can
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update renders the frame and returns the input events collected since
	// the previous call. Keypad keys are reported as Press/Hold/Release so the
	// host-side keypad can track which keys are currently down.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// ActionHandler is implemented by backends that react to emulator actions
// themselves, such as saving a snapshot or changing the log level.
type ActionHandler interface {
	HandleAction(act action.Action)
}

// InputEvent is a single input occurrence reported by a backend.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title      string
	Scale      int
	VSync      bool
	Fullscreen bool

	// AudioProvider is the tone source; backends without audio may poll
	// Active() to signal the beep some other way. May be nil.
	AudioProvider audio.Provider
}
