package chip8

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

// Run drives the emulator with the given backend until the backend reports a
// quit, the context is cancelled or the emulator faults. The backend is always
// cleaned up. Quitting and cancellation are not errors.
func Run(ctx context.Context, emu Emulator, b backend.Backend, config backend.BackendConfig) error {
	if err := b.Init(config); err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}
	defer func() {
		if err := b.Cleanup(); err != nil {
			slog.Error("Failed to clean up backend", "error", err)
		}
	}()

	handler, _ := b.(backend.ActionHandler)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Emulation stopped", "reason", ctx.Err())
			return nil
		default:
		}

		if err := emu.RunUntilFrame(); err != nil {
			return err
		}

		events, err := b.Update(emu.GetCurrentFrame())
		if err != nil {
			return fmt.Errorf("backend update failed: %w", err)
		}

		for _, evt := range events {
			if evt.Action == action.EmulatorQuit && evt.Type == event.Press {
				return nil
			}

			emu.HandleAction(evt.Action, evt.Type)

			if handler != nil && !evt.Action.IsKeypad() && evt.Type == event.Press {
				handler.HandleAction(evt.Action)
			}
		}
	}
}
