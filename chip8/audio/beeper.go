package audio

import (
	"math"
	"sync"
)

// Beeper turns the sound timer into a fixed-pitch square wave.
// The tone is on while the timer is non-zero. Update is called from the
// emulation loop, GetSamples from whatever drives the audio device.
type Beeper struct {
	mu sync.Mutex

	active bool
	muted  bool

	// phase is the position within one wave period, in [0, 1)
	phase     float64
	phaseInc  float64
	amplitude int16
}

// NewBeeper returns a silent beeper producing a ToneFrequency square wave at SampleRate.
func NewBeeper() *Beeper {
	return NewBeeperWithTone(ToneFrequency, DefaultVolume)
}

// NewBeeperWithTone returns a silent beeper with a custom pitch and volume (0 to 1).
func NewBeeperWithTone(frequency float64, volume float64) *Beeper {
	volume = math.Max(0, math.Min(1, volume))
	return &Beeper{
		phaseInc:  frequency / SampleRate,
		amplitude: int16(volume * math.MaxInt16),
	}
}

// Update polls the sound timer once per frame. Returns true on the frame the tone starts.
func (b *Beeper) Update(soundTimer uint8) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	wasActive := b.active
	b.active = soundTimer > 0
	if !b.active {
		b.phase = 0
	}
	return b.active && !wasActive
}

// GetSamples generates count samples. Silence is returned while the tone is
// off or muted, so the device buffer never runs dry.
func (b *Beeper) GetSamples(count int) []int16 {
	if count <= 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	samples := make([]int16, count)
	if !b.active || b.muted {
		return samples
	}

	for i := range samples {
		if b.phase < 0.5 {
			samples[i] = b.amplitude
		} else {
			samples[i] = -b.amplitude
		}
		b.phase = math.Mod(b.phase+b.phaseInc, 1.0)
	}
	return samples
}

func (b *Beeper) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

func (b *Beeper) SetMuted(muted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = muted
}

func (b *Beeper) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}
