package audio

const (
	// SampleRate is the output rate of generated samples, mono.
	SampleRate = 44100

	// ToneFrequency is the pitch of the beep in Hz.
	ToneFrequency = 440

	// DefaultVolume is the square wave amplitude as a fraction of full scale.
	DefaultVolume = 0.25
)
