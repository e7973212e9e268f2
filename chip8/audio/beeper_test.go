package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeeper_Update(t *testing.T) {
	b := NewBeeper()
	assert.False(t, b.Active())

	assert.True(t, b.Update(5), "tone starts")
	assert.True(t, b.Active())
	assert.False(t, b.Update(4), "already on")
	assert.False(t, b.Update(0))
	assert.False(t, b.Active())
	assert.True(t, b.Update(1))
}

func TestBeeper_SilentWhenOff(t *testing.T) {
	b := NewBeeper()

	samples := b.GetSamples(64)
	require.Len(t, samples, 64)
	for _, s := range samples {
		assert.Zero(t, s)
	}
}

func TestBeeper_SquareWave(t *testing.T) {
	b := NewBeeper()
	b.Update(1)

	// one full period at 440 Hz is a little over 100 samples
	samples := b.GetSamples(SampleRate / ToneFrequency)
	volume := float64(DefaultVolume)
	amplitude := int16(volume * math.MaxInt16)

	high, low := 0, 0
	for _, s := range samples {
		switch s {
		case amplitude:
			high++
		case -amplitude:
			low++
		default:
			t.Fatalf("unexpected sample %d", s)
		}
	}
	assert.InDelta(t, high, low, 2)
	assert.Equal(t, amplitude, samples[0])
	assert.Equal(t, -amplitude, samples[len(samples)-1])
}

func TestBeeper_Muted(t *testing.T) {
	b := NewBeeper()
	b.Update(10)
	b.SetMuted(true)

	assert.True(t, b.Muted())
	assert.True(t, b.Active(), "muting does not change tone state")
	for _, s := range b.GetSamples(32) {
		assert.Zero(t, s)
	}
}

func TestBeeper_GetSamplesEmpty(t *testing.T) {
	assert.Nil(t, NewBeeper().GetSamples(0))
}

func TestNewBeeperWithTone_ClampsVolume(t *testing.T) {
	b := NewBeeperWithTone(1000, 2)
	b.Update(1)

	assert.Equal(t, int16(math.MaxInt16), b.GetSamples(1)[0])
}
