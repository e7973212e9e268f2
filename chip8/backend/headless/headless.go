package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/snapshot"
	"github.com/valerio/go-chip8/chip8/video"
)

// progressInterval is one second of emulated time at the default rate
const progressInterval = 60

// Backend runs a fixed number of frames without any output device, for
// automated testing and batch snapshot generation. It asks to quit once the
// last frame has been rendered.
type Backend struct {
	config    backend.BackendConfig
	snapshots SnapshotConfig

	maxFrames int
	frames    int

	// tone starts seen so far, there is no device to play them on
	beeps   int
	beeping bool
}

// SnapshotConfig controls which frames get written to disk.
type SnapshotConfig struct {
	Enabled   bool
	Interval  int             // Save a snapshot every N frames, and on the last one
	Directory string          // Output directory
	ROMName   string          // Prefix for snapshot filenames
	Format    snapshot.Format // png or txt
}

// New returns a backend that quits after maxFrames frames.
func New(maxFrames int, snapshots SnapshotConfig) *Backend {
	return &Backend{
		maxFrames: maxFrames,
		snapshots: snapshots,
	}
}

func (h *Backend) Init(config backend.BackendConfig) error {
	if h.maxFrames <= 0 {
		return fmt.Errorf("headless mode requires a positive frame count, got %d", h.maxFrames)
	}

	h.config = config

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshots.Interval,
		"snapshot_dir", h.snapshots.Directory)

	return nil
}

// Update records the frame, saving a snapshot when one is due.
func (h *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	h.frames++
	h.trackAudio()

	last := h.frames >= h.maxFrames
	if h.snapshotDue(last) {
		h.saveSnapshot(frame)
	}

	if h.frames%progressInterval == 0 {
		slog.Info("Frame progress", "completed", h.frames, "total", h.maxFrames)
	}

	if !last {
		return nil, nil
	}

	attrs := []any{"frames", h.frames, "beeps", h.beeps, "lit_pixels", frame.LitCount()}
	if h.snapshots.Enabled {
		attrs = append(attrs, "snapshots_saved_to", h.snapshots.Directory)
	}
	slog.Info("Headless execution completed", attrs...)

	return []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}, nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// FrameCount is the number of frames rendered so far.
func (h *Backend) FrameCount() int {
	return h.frames
}

// Beeps is the number of times the tone started during the run.
func (h *Backend) Beeps() int {
	return h.beeps
}

func (h *Backend) trackAudio() {
	if h.config.AudioProvider == nil {
		return
	}

	active := h.config.AudioProvider.Active()
	if active && !h.beeping {
		h.beeps++
		slog.Debug("Beep", "frame", h.frames)
	}
	h.beeping = active
}

// snapshotDue is true on every interval boundary and on the last frame.
func (h *Backend) snapshotDue(last bool) bool {
	if !h.snapshots.Enabled || h.snapshots.Interval <= 0 {
		return false
	}
	return last || h.frames%h.snapshots.Interval == 0
}

func (h *Backend) saveSnapshot(frame *video.FrameBuffer) {
	baseName := fmt.Sprintf("%s_frame_%d", h.snapshots.ROMName, h.frames)

	path, err := snapshot.Save(frame, h.snapshots.Format, baseName, h.snapshots.Directory, h.config.Scale)
	if err != nil {
		slog.Error("Failed to save snapshot", "frame", h.frames, "error", err)
		return
	}
	slog.Debug("Saved snapshot", "frame", h.frames, "path", path)
}

// CreateSnapshotConfig builds a snapshot configuration from CLI parameters.
// An empty directory means a fresh temp directory; interval 0 disables snapshots.
func CreateSnapshotConfig(interval int, directory, romPath string, format snapshot.Format) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
		Format:   format,
	}
	if !config.Enabled {
		return config, nil
	}

	dir, err := prepareDirectory(directory)
	if err != nil {
		return config, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	config.Directory = dir

	name := filepath.Base(romPath)
	config.ROMName = strings.TrimSuffix(name, filepath.Ext(name))

	return config, nil
}

func prepareDirectory(directory string) (string, error) {
	if directory == "" {
		return os.MkdirTemp("", "chip8-snapshots-*")
	}
	return directory, os.MkdirAll(directory, 0o755)
}
