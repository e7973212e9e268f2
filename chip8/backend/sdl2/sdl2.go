//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/snapshot"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	// audioBufferFrames is how many frames worth of samples are kept queued on the device
	audioBufferFrames = 3
	samplesPerFrame   = audio.SampleRate / 60
	bytesPerSample    = 2
)

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed renderer, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	config   backend.BackendConfig

	audioDevice sdl.AudioDeviceID
	pixels      []byte

	events []backend.InputEvent

	// Snapshot state
	currentFrame *video.FrameBuffer
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{
		pixels: make([]byte, video.FramebufferSize*display.RGBABytesPerPixel),
	}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config

	scale := config.Scale
	if scale <= 0 {
		scale = display.DefaultPixelScale
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN)
	if config.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(video.FramebufferWidth*scale),
		int32(video.FramebufferHeight*scale),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	rendererFlags := uint32(sdl.RENDERER_ACCELERATED)
	if config.VSync {
		rendererFlags |= sdl.RENDERER_PRESENTVSYNC
	}
	renderer, err := sdl.CreateRenderer(window, -1, rendererFlags)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer

	// Create texture for the 64x32 screen, the renderer scales it to the window
	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth,
		video.FramebufferHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %w", err)
	}
	s.texture = texture

	if config.AudioProvider != nil {
		if err := s.openAudio(); err != nil {
			slog.Warn("Audio disabled", "error", err)
		}
	}

	slog.Info("SDL2 backend initialized", "scale", scale, "audio", s.audioDevice != 0)
	return nil
}

func (s *Backend) openAudio() error {
	desired := &sdl.AudioSpec{
		Freq:     audio.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  1024,
	}
	var obtained sdl.AudioSpec

	device, err := sdl.OpenAudioDevice("", false, desired, &obtained, 0)
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}

	s.audioDevice = device
	sdl.PauseAudioDevice(device, false)
	return nil
}

// Update renders a frame and processes events
func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	s.events = s.events[:0]

	// Process SDL events
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		s.handleEvent(ev)
	}

	s.queueAudio()

	s.currentFrame = frame
	if err := s.renderFrame(frame); err != nil {
		return nil, err
	}

	events := make([]backend.InputEvent, len(s.events))
	copy(events, s.events)
	return events, nil
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.audioDevice != 0 {
		sdl.CloseAudioDevice(s.audioDevice)
	}
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

// HandleAction processes backend-specific actions
func (s *Backend) HandleAction(act action.Action) {
	if act == action.EmulatorSnapshot {
		snapshot.Take(s.currentFrame, display.DefaultPixelScale)
	}
}

func (s *Backend) handleEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		s.events = append(s.events, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})

	case *sdl.KeyboardEvent:
		act, ok := input.GetDefaultMapping(scancodeNames[e.Keysym.Scancode])
		if !ok {
			return
		}

		switch {
		case e.Type == sdl.KEYDOWN && e.Repeat == 0:
			s.events = append(s.events, backend.InputEvent{Action: act, Type: event.Press})
		case e.Type == sdl.KEYDOWN:
			s.events = append(s.events, backend.InputEvent{Action: act, Type: event.Hold})
		case e.Type == sdl.KEYUP:
			s.events = append(s.events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}
}

// scancodeNames maps physical key positions to key names used in default mappings,
// so the keypad stays on the same keys regardless of keyboard layout.
var scancodeNames = map[sdl.Scancode]string{
	sdl.SCANCODE_1: "1", sdl.SCANCODE_2: "2", sdl.SCANCODE_3: "3", sdl.SCANCODE_4: "4",
	sdl.SCANCODE_Q: "q", sdl.SCANCODE_W: "w", sdl.SCANCODE_E: "e", sdl.SCANCODE_R: "r",
	sdl.SCANCODE_A: "a", sdl.SCANCODE_S: "s", sdl.SCANCODE_D: "d", sdl.SCANCODE_F: "f",
	sdl.SCANCODE_Z: "z", sdl.SCANCODE_X: "x", sdl.SCANCODE_C: "c", sdl.SCANCODE_V: "v",

	sdl.SCANCODE_SPACE:  "Space",
	sdl.SCANCODE_P:      "p",
	sdl.SCANCODE_M:      "m",
	sdl.SCANCODE_F9:     "F9",
	sdl.SCANCODE_ESCAPE: "Escape",
	sdl.SCANCODE_EQUALS: "=",
	sdl.SCANCODE_MINUS:  "-",
}

// queueAudio keeps a few frames of beeper samples queued so playback never starves.
func (s *Backend) queueAudio() {
	if s.audioDevice == 0 {
		return
	}

	target := audioBufferFrames * samplesPerFrame
	queued := int(sdl.GetQueuedAudioSize(s.audioDevice)) / bytesPerSample
	if queued >= target {
		return
	}

	samples := s.config.AudioProvider.GetSamples(target - queued)
	if len(samples) == 0 {
		return
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), len(samples)*bytesPerSample)
	if err := sdl.QueueAudio(s.audioDevice, data); err != nil {
		slog.Debug("Failed to queue audio", "error", err)
	}
}

func (s *Backend) renderFrame(frame *video.FrameBuffer) error {
	for i, pixel := range frame.ToSlice() {
		c := display.PixelColor(pixel)
		idx := i * display.RGBABytesPerPixel

		// ABGR byte order for little-endian RGBA8888
		s.pixels[idx] = c.A
		s.pixels[idx+1] = c.B
		s.pixels[idx+2] = c.G
		s.pixels[idx+3] = c.R
	}

	if err := s.texture.Update(nil, unsafe.Pointer(&s.pixels[0]), video.FramebufferWidth*display.RGBABytesPerPixel); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}

	off := display.OffColor
	s.renderer.SetDrawColor(off.R, off.G, off.B, off.A)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}
