package audio

// Provider is the audio source a backend pulls from.
type Provider interface {
	// GetSamples retrieves mono audio samples for playback
	GetSamples(count int) []int16

	// Active reports whether the tone is currently on
	Active() bool

	SetMuted(muted bool)
	Muted() bool
}

var _ Provider = (*Beeper)(nil)
