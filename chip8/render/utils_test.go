package render

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/video"
)

func TestGetHalfBlockChar(t *testing.T) {
	testCases := []struct {
		desc        string
		top, bottom bool
		want        rune
	}{
		{desc: "both on", top: true, bottom: true, want: '█'},
		{desc: "top on", top: true, want: '▀'},
		{desc: "bottom on", bottom: true, want: '▄'},
		{desc: "both off", want: ' '},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert.Equal(t, tC.want, GetHalfBlockChar(tC.top, tC.bottom))
		})
	}
}

func TestRenderFrameToHalfBlocks(t *testing.T) {
	frame := video.NewFrameBuffer()
	frame.SetPixel(0, 0, true)
	frame.SetPixel(1, 1, true)
	frame.SetPixel(2, 0, true)
	frame.SetPixel(2, 1, true)
	frame.SetPixel(63, 31, true)

	lines := RenderFrameToHalfBlocks(frame)

	require.Len(t, lines, 16)
	for _, line := range lines {
		assert.Equal(t, 64, utf8.RuneCountInString(line))
	}

	first := []rune(lines[0])
	assert.Equal(t, '▀', first[0])
	assert.Equal(t, '▄', first[1])
	assert.Equal(t, '█', first[2])
	assert.Equal(t, ' ', first[3])

	last := []rune(lines[15])
	assert.Equal(t, '▄', last[63])
}

func TestRenderFrameToHalfBlocks_Nil(t *testing.T) {
	assert.Empty(t, RenderFrameToHalfBlocks(nil))
}
