package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameBuffer_SetGet(t *testing.T) {
	fb := NewFrameBuffer()

	fb.SetPixel(3, 2, true)
	assert.Equal(t, uint8(1), fb.GetPixel(3, 2))
	assert.Equal(t, uint8(1), fb.ToSlice()[2*FramebufferWidth+3], "row-major layout")

	fb.SetPixel(3, 2, false)
	assert.Equal(t, uint8(0), fb.GetPixel(3, 2))
}

func TestFrameBuffer_TogglePixel(t *testing.T) {
	testCases := []struct {
		desc          string
		initiallyOn   bool
		wantPixel     uint8
		wantCollision bool
	}{
		{desc: "off turns on", initiallyOn: false, wantPixel: 1, wantCollision: false},
		{desc: "on turns off with collision", initiallyOn: true, wantPixel: 0, wantCollision: true},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			fb := NewFrameBuffer()
			fb.SetPixel(10, 10, tC.initiallyOn)

			collision := fb.TogglePixel(10, 10)

			assert.Equal(t, tC.wantCollision, collision)
			assert.Equal(t, tC.wantPixel, fb.GetPixel(10, 10))
		})
	}
}

func TestFrameBuffer_TogglePixelWraps(t *testing.T) {
	fb := NewFrameBuffer()

	fb.TogglePixel(FramebufferWidth+1, FramebufferHeight+2)

	assert.Equal(t, uint8(1), fb.GetPixel(1, 2))
	assert.Equal(t, 1, fb.LitCount())
}

func TestFrameBuffer_Clear(t *testing.T) {
	fb := NewFrameBuffer()
	fb.SetPixel(0, 0, true)
	fb.SetPixel(63, 31, true)
	assert.Equal(t, 2, fb.LitCount())

	fb.Clear()

	assert.Equal(t, 0, fb.LitCount())
}

func TestFrameBuffer_Copy(t *testing.T) {
	fb := NewFrameBuffer()
	fb.SetPixel(5, 5, true)

	snapshot := fb.Copy()
	fb.Clear()

	assert.Equal(t, uint8(1), snapshot.GetPixel(5, 5))
	assert.Equal(t, uint8(0), fb.GetPixel(5, 5))
	assert.Len(t, snapshot.ToSlice(), FramebufferSize)
}
