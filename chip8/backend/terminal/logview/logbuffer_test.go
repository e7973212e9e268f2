package logview

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBuffer_Wraps(t *testing.T) {
	lb := NewLogBuffer(3)
	for i := 0; i < 5; i++ {
		lb.Add(LogEntry{Level: slog.LevelInfo, Message: fmt.Sprint(i)})
	}

	recent := lb.GetRecent(0, slog.LevelDebug)
	require.Len(t, recent, 3)
	assert.Equal(t, "4", recent[0].Message)
	assert.Equal(t, "2", recent[2].Message)
	assert.Len(t, lb.GetRecent(10, slog.LevelDebug), 3)

	lb.Clear()
	assert.Empty(t, lb.GetRecent(0, slog.LevelDebug))
}

func TestLogBuffer_FiltersByLevel(t *testing.T) {
	lb := NewLogBuffer(10)
	lb.Add(LogEntry{Level: slog.LevelDebug, Message: "d"})
	lb.Add(LogEntry{Level: slog.LevelWarn, Message: "w"})
	lb.Add(LogEntry{Level: slog.LevelInfo, Message: "i"})

	recent := lb.GetRecent(5, slog.LevelInfo)
	require.Len(t, recent, 2)
	assert.Equal(t, "i", recent[0].Message)
	assert.Equal(t, "w", recent[1].Message)

	assert.Len(t, lb.GetRecent(1, slog.LevelDebug), 1)
}

func TestHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	logger := slog.New(NewHandler(lb, level))

	logger.Debug("hidden")
	logger.With("component", "cpu").WithGroup("op").Warn("Unimplemented opcode", "opcode", "0x5121")

	recent := lb.GetRecent(0, slog.LevelDebug)
	require.Len(t, recent, 1)
	assert.Equal(t, slog.LevelWarn, recent[0].Level)
	assert.Equal(t, "Unimplemented opcode component=cpu op.opcode=0x5121", recent[0].Message)

	level.Set(slog.LevelDebug)
	logger.Debug("visible")
	assert.Len(t, lb.GetRecent(0, slog.LevelDebug), 2)
}

func TestFormatLogEntry(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, "12:30:45 [WRN] careful", FormatLogEntry(LogEntry{Time: ts, Level: slog.LevelWarn, Message: "careful"}))
	assert.Equal(t, "12:30:45 [DBG] x", FormatLogEntry(LogEntry{Time: ts, Level: slog.LevelDebug, Message: "x"}))
}
