package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli"

	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/backend/sdl2"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
	"github.com/valerio/go-chip8/chip8/disasm"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/snapshot"
	"github.com/valerio/go-chip8/chip8/timing"
)

const (
	backendTerminal = "terminal"
	backendSDL2     = "sdl2"
	backendHeadless = "headless"
)

func main() {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 virtual machine"
	app.Usage = "chip8 [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "rom",
			Usage:  "Path to the ROM file",
			EnvVar: "CHIP8_ROM",
		},
		cli.StringFlag{
			Name:   "backend",
			Usage:  "Backend to use: terminal, sdl2 or headless",
			Value:  backendTerminal,
			EnvVar: "CHIP8_BACKEND",
		},
		cli.IntFlag{
			Name:   "frames",
			Usage:  "Number of frames to run in headless mode (required for headless)",
			EnvVar: "CHIP8_FRAMES",
		},
		cli.IntFlag{
			Name:   "snapshot-interval",
			Usage:  "Save frame snapshots every N frames in headless mode (0 = disabled)",
			EnvVar: "CHIP8_SNAPSHOT_INTERVAL",
		},
		cli.StringFlag{
			Name:   "snapshot-dir",
			Usage:  "Directory to save frame snapshots (default: temp directory)",
			EnvVar: "CHIP8_SNAPSHOT_DIR",
		},
		cli.StringFlag{
			Name:   "snapshot-format",
			Usage:  "Snapshot format: png or txt",
			Value:  string(snapshot.FormatPNG),
			EnvVar: "CHIP8_SNAPSHOT_FORMAT",
		},
		cli.IntFlag{
			Name:   "scale",
			Usage:  "Window scale factor (sdl2) and PNG snapshot scale",
			Value:  display.DefaultPixelScale,
			EnvVar: "CHIP8_SCALE",
		},
		cli.Float64Flag{
			Name:   "tick-rate",
			Usage:  "Frames per second, timers decrement once per step",
			Value:  timing.DefaultTickRate,
			EnvVar: "CHIP8_TICK_RATE",
		},
		cli.IntFlag{
			Name:   "steps-per-frame",
			Usage:  "Instructions executed per frame",
			Value:  chip8.DefaultStepsPerFrame,
			EnvVar: "CHIP8_STEPS_PER_FRAME",
		},
		cli.StringFlag{
			Name:   "limiter",
			Usage:  "Frame limiter: adaptive, ticker or none (default: none for headless, adaptive otherwise)",
			EnvVar: "CHIP8_LIMITER",
		},
		cli.Uint64Flag{
			Name:   "seed",
			Usage:  "Seed for the random number instruction (0 = random)",
			EnvVar: "CHIP8_SEED",
		},
		cli.BoolFlag{
			Name:   "mute",
			Usage:  "Start with audio muted",
			EnvVar: "CHIP8_MUTE",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "Log level: debug, info, warn or error",
			Value:  "info",
			EnvVar: "CHIP8_LOG_LEVEL",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "disasm",
			Usage:     "Print a disassembly listing of a ROM",
			ArgsUsage: "<ROM file>",
			Action:    runDisassembler,
		},
	}
	app.Action = runEmulator

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	backendName := c.String("backend")

	limiterKind := c.String("limiter")
	if limiterKind == "" && backendName == backendHeadless {
		limiterKind = timing.KindNone
	}
	limiter, err := timing.NewLimiter(limiterKind, c.Float64("tick-rate"))
	if err != nil {
		return err
	}
	if stopper, ok := limiter.(interface{ Stop() }); ok {
		defer stopper.Stop()
	}

	b, err := createBackend(c, backendName, romPath, level)
	if err != nil {
		return err
	}

	opts := []chip8.Option{
		chip8.WithLimiter(limiter),
		chip8.WithStepsPerFrame(c.Int("steps-per-frame")),
		chip8.WithMuted(c.Bool("mute")),
	}
	if seed := c.Uint64("seed"); seed != 0 {
		opts = append(opts, chip8.WithSeed(seed))
	}

	emu, err := chip8.NewWithFile(romPath, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := backend.BackendConfig{
		Title:         fmt.Sprintf("CHIP-8 - %s", romName(romPath)),
		Scale:         c.Int("scale"),
		VSync:         true,
		AudioProvider: emu.Beeper(),
	}

	return chip8.Run(ctx, emu, b, config)
}

func createBackend(c *cli.Context, name, romPath string, level slog.Level) (backend.Backend, error) {
	switch name {
	case backendTerminal:
		t := terminal.New()
		t.SetLogLevel(level)
		return t, nil

	case backendSDL2:
		setupLogging(level)
		return sdl2.New(), nil

	case backendHeadless:
		setupLogging(level)

		frames := c.Int("frames")
		if frames <= 0 {
			return nil, errors.New("headless mode requires --frames option with a positive value")
		}

		format, err := snapshot.ParseFormat(c.String("snapshot-format"))
		if err != nil {
			return nil, err
		}

		snapshotConfig, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath, format)
		if err != nil {
			return nil, err
		}
		return headless.New(frames, snapshotConfig), nil
	}

	return nil, fmt.Errorf("unknown backend %q (want %s, %s or %s)", name, backendTerminal, backendSDL2, backendHeadless)
}

func setupLogging(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func runDisassembler(c *cli.Context) error {
	romPath := c.Args().First()
	if romPath == "" {
		romPath = c.GlobalString("rom")
	}
	if romPath == "" {
		cli.ShowCommandHelp(c, "disasm")
		return errors.New("no ROM path provided")
	}

	data, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %w", err)
	}

	return disasm.Disassemble(os.Stdout, data)
}

func romName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
