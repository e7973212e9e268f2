package display

import "image/color"

// RGBA pixel format constants
const (
	// RGBABytesPerPixel is the number of bytes per pixel in RGBA format
	RGBABytesPerPixel = 4
)

// Backend scaling and window constants
const (
	// DefaultPixelScale is the default scaling factor for CHIP-8 pixels
	DefaultPixelScale = 10
	// DefaultWindowWidth is the default window width (CHIP-8 width * scale)
	DefaultWindowWidth = 64 * DefaultPixelScale // 640
	// DefaultWindowHeight is the default window height (CHIP-8 height * scale)
	DefaultWindowHeight = 32 * DefaultPixelScale // 320
)

// Palette, green phosphor on black.
var (
	OnColor  = color.RGBA{R: 0, G: 250, B: 0, A: 0xFF}
	OffColor = color.RGBA{R: 0, G: 0, B: 0, A: 0xFF}
)

// PixelColor maps a framebuffer pixel (0 or 1) to its palette colour.
func PixelColor(pixel uint8) color.RGBA {
	if pixel != 0 {
		return OnColor
	}
	return OffColor
}
