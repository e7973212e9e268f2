package video

const (
	FramebufferWidth  = 64
	FramebufferHeight = 32
	FramebufferSize   = FramebufferWidth * FramebufferHeight
)

// FrameBuffer is the monochrome display, one byte per pixel holding 0 or 1, row-major.
type FrameBuffer struct {
	buffer [FramebufferSize]uint8
}

// NewFrameBuffer creates a cleared frame buffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// GetPixel returns 1 if the pixel at (x, y) is lit, 0 otherwise.
func (fb *FrameBuffer) GetPixel(x, y uint) uint8 {
	return fb.buffer[y*FramebufferWidth+x]
}

// SetPixel sets the pixel at (x, y) to on (1) or off (0).
func (fb *FrameBuffer) SetPixel(x, y uint, on bool) {
	var value uint8
	if on {
		value = 1
	}
	fb.buffer[y*FramebufferWidth+x] = value
}

// TogglePixel XORs the pixel at (x, y), wrapping coordinates around the screen edges.
// Returns true if the pixel was lit and got turned off.
func (fb *FrameBuffer) TogglePixel(x, y uint) bool {
	idx := (y%FramebufferHeight)*FramebufferWidth + x%FramebufferWidth
	collision := fb.buffer[idx] == 1
	fb.buffer[idx] ^= 1
	return collision
}

// Clear turns every pixel off.
func (fb *FrameBuffer) Clear() {
	fb.buffer = [FramebufferSize]uint8{}
}

// ToSlice exposes the row-major pixel data. Callers must treat it as read-only.
func (fb *FrameBuffer) ToSlice() []uint8 {
	return fb.buffer[:]
}

// Copy returns a snapshot of the frame that later draws won't affect.
func (fb *FrameBuffer) Copy() *FrameBuffer {
	c := *fb
	return &c
}

// LitCount returns how many pixels are currently on.
func (fb *FrameBuffer) LitCount() int {
	count := 0
	for _, px := range fb.buffer {
		count += int(px)
	}
	return count
}
