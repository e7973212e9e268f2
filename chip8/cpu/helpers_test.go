package cpu

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

func newTestCPU(t *testing.T, program ...byte) *CPU {
	t.Helper()

	mem := memory.New()
	mem.Load(program)

	return New(mem, video.NewFrameBuffer(), memory.NewKeypad(),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithSeed(1))
}

// exec decodes and runs a single instruction without going through Step.
func exec(t *testing.T, c *CPU, opcode uint16) Directive {
	t.Helper()

	in := Decode(opcode)
	d, err := opcodes[in.Op](c, in)
	require.NoError(t, err)
	return d
}

// poke writes a byte straight into memory, bypassing the CPU.
func poke(t *testing.T, c *CPU, address uint16, value byte) {
	t.Helper()

	span, err := c.memory.Span(address, 1)
	require.NoError(t, err)
	span[0] = value
}

func peek(t *testing.T, c *CPU, address uint16) byte {
	t.Helper()

	span, err := c.memory.Span(address, 1)
	require.NoError(t, err)
	return span[0]
}

func steps(t *testing.T, c *CPU, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		require.NoError(t, c.Step())
	}
}
