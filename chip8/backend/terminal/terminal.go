package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/terminal/logview"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/render"
	"github.com/valerio/go-chip8/chip8/snapshot"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	width  = video.FramebufferWidth
	height = render.TextHeight

	gameTop       = 1
	statusY       = gameTop + height + 1
	logsTop       = statusY + 2
	minTermWidth  = width + 2
	minTermHeight = logsTop + 4
)

var (
	onColor  = tcell.NewRGBColor(int32(display.OnColor.R), int32(display.OnColor.G), int32(display.OnColor.B))
	offColor = tcell.NewRGBColor(int32(display.OffColor.R), int32(display.OffColor.G), int32(display.OffColor.B))
)

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen     tcell.Screen
	newScreen  func() (tcell.Screen, error)
	logBuffer  *logview.LogBuffer
	logLevel   *slog.LevelVar
	config     backend.BackendConfig
	eventQueue []backend.InputEvent // Collect events to return

	keyStates  map[action.Action]time.Time // Last time each key was pressed
	activeKeys map[action.Action]bool      // Keys active in previous frame

	interrupted atomic.Bool
	signals     chan os.Signal

	beeping      bool
	frameCount   int
	currentFrame *video.FrameBuffer // Store current frame for snapshot generation
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{
		newScreen: tcell.NewScreen,
		logLevel:  new(slog.LevelVar),
	}
}

// NewWithScreen creates a terminal backend drawing on an existing screen, such as
// a tcell simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	b := New()
	b.newScreen = func() (tcell.Screen, error) { return screen, nil }
	return b
}

// SetLogLevel sets the initial filter of the log panel.
func (t *Backend) SetLogLevel(level slog.Level) {
	t.logLevel.Set(level)
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.eventQueue = make([]backend.InputEvent, 0)
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)

	screen, err := t.newScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	t.screen = screen

	// Route logging into the log panel, stderr would corrupt the screen
	t.logBuffer = logview.NewLogBuffer(200)
	slog.SetDefault(slog.New(logview.NewHandler(t.logBuffer, t.logLevel)))

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	// Set up signal handling for graceful shutdown
	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	go t.handleSignals()

	slog.Info("Terminal backend initialized")
	return nil
}

// Key expiry timeout - slightly longer than typical key repeat interval.
// Terminals only report key presses, so a key counts as held until it stops repeating.
const keyTimeout = 100 * time.Millisecond

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	now := time.Now()
	t.frameCount++

	// Poll for input events synchronously
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	if t.interrupted.Load() {
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
	}

	// Track which keys are currently active this frame
	currentlyActive := make(map[action.Action]bool)

	// Check all tracked keys and generate appropriate events
	for act, lastPressed := range t.keyStates {
		if now.Sub(lastPressed) >= keyTimeout {
			// Key has expired - remove it
			delete(t.keyStates, act)
			continue
		}

		currentlyActive[act] = true
		if !t.activeKeys[act] {
			slog.Debug("Key press", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		} else {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		}
	}

	// Check for released keys (were active last frame but not this frame)
	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	// Update active keys for next frame
	t.activeKeys = currentlyActive

	// Add emulator control events (pause, quit, etc)
	events = append(events, t.eventQueue...)
	t.eventQueue = t.eventQueue[:0]

	t.updateBeep()

	t.currentFrame = frame
	t.render(frame)
	t.screen.Show()

	return events, nil
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
		close(t.signals)
		t.signals = nil
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
		t.screen = nil
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		snapshot.Take(t.currentFrame, display.DefaultPixelScale)
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(1)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(-1)
	}
}

func (t *Backend) handleSignals() {
	if _, ok := <-t.signals; ok {
		t.interrupted.Store(true)
	}
}

// updateBeep rings the terminal bell when the tone starts.
func (t *Backend) updateBeep() {
	provider := t.config.AudioProvider
	if provider == nil {
		return
	}

	active := provider.Active()
	if active && !t.beeping && !provider.Muted() {
		if err := t.screen.Beep(); err != nil {
			slog.Debug("Terminal bell unavailable", "error", err)
		}
	}
	t.beeping = active
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEscape: "Escape",
	tcell.KeyF9:     "F9",
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	var name string
	switch ev.Key() {
	case tcell.KeyCtrlC:
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
		return
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			name = "Space"
		} else {
			name = string(unicode.ToLower(ev.Rune()))
		}
	default:
		name = tcellKeyNameMap[ev.Key()]
	}

	act, ok := input.GetDefaultMapping(name)
	if !ok {
		return
	}

	if act.IsKeypad() {
		t.keyStates[act] = now
		return
	}
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

var logLevels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

// changeLogLevel moves the log filter one step, +1 shows more and -1 shows less.
func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel.Level()

	idx := 1
	for i, l := range logLevels {
		if l == oldLevel {
			idx = i
		}
	}
	idx -= direction
	if idx < 0 || idx >= len(logLevels) {
		return
	}

	t.logLevel.Set(logLevels[idx])
	slog.Warn("Log filter changed", "from", oldLevel, "to", logLevels[idx])
}

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		t.drawText(0, termHeight/2, termWidth, fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight), style)
		return
	}

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	t.drawText(1, 0, termWidth, " CHIP-8 ", titleStyle)
	t.drawScreen(frame)

	for x := 0; x < termWidth; x++ {
		t.screen.SetContent(x, statusY-1, '─', nil, borderStyle)
		t.screen.SetContent(x, logsTop-1, '─', nil, borderStyle)
	}
	t.drawStatus(termWidth)

	t.drawText(1, logsTop-1, termWidth, fmt.Sprintf(" Logs [%s] (-/+ filter) ", t.logLevel.Level()), titleStyle)
	t.drawLogs(logsTop, termWidth, termHeight-1)

	t.drawText(0, termHeight-1, termWidth, " 1234/QWER/ASDF/ZXCV=keypad SPACE=pause M=mute F9=snapshot ESC=exit ", borderStyle)
}

func (t *Backend) drawScreen(frame *video.FrameBuffer) {
	style := tcell.StyleDefault.Foreground(onColor).Background(offColor)
	for row, line := range render.RenderFrameToHalfBlocks(frame) {
		for x, ch := range []rune(line) {
			t.screen.SetContent(x, gameTop+row, ch, nil, style)
		}
	}
}

func (t *Backend) drawStatus(termWidth int) {
	status := fmt.Sprintf("frame %d", t.frameCount)
	if provider := t.config.AudioProvider; provider != nil {
		if provider.Active() {
			status += "  ♪"
		}
		if provider.Muted() {
			status += "  [muted]"
		}
	}
	t.drawText(1, statusY, termWidth, status, tcell.StyleDefault.Foreground(tcell.ColorSilver))
}

func (t *Backend) drawLogs(top, termWidth, bottom int) {
	available := bottom - top
	if available <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logBuffer.GetRecent(available, t.logLevel.Level()) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}

		text := logview.FormatLogEntry(entry)
		if len([]rune(text)) > termWidth && termWidth > 3 {
			text = string([]rune(text)[:termWidth-3]) + "..."
		}
		t.drawText(0, top+i, termWidth, text, style)
	}
}

func (t *Backend) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	for _, ch := range text {
		if x >= maxWidth {
			return
		}
		t.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
