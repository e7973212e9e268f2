package render

import "github.com/valerio/go-chip8/chip8/video"

// SharedRenderUtils contains common rendering utilities for both terminal and snapshot rendering

// GetHalfBlockChar returns the character that draws two vertically stacked pixels in one cell.
func GetHalfBlockChar(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// TextHeight is the number of text rows needed for the screen at two pixel rows per cell.
const TextHeight = (video.FramebufferHeight + 1) / 2

// RenderFrameToHalfBlocks converts a frame buffer to half-block text representation
// Returns a slice of strings, one per text row (16 rows for 32 pixel rows)
func RenderFrameToHalfBlocks(frame *video.FrameBuffer) []string {
	if frame == nil {
		return []string{}
	}

	lines := make([]string, TextHeight)

	// Process two pixel rows at a time
	for textRow := 0; textRow < TextHeight; textRow++ {
		line := make([]rune, video.FramebufferWidth)
		top := uint(textRow * 2)
		bottom := top + 1

		for x := uint(0); x < video.FramebufferWidth; x++ {
			topOn := frame.GetPixel(x, top) != 0
			bottomOn := bottom < video.FramebufferHeight && frame.GetPixel(x, bottom) != 0
			line[x] = GetHalfBlockChar(topOn, bottomOn)
		}

		lines[textRow] = string(line)
	}

	return lines
}
