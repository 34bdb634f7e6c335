package audio

// UnsupportedPlayer is the default playback capability on targets without
// audio output (the API server itself). Controller calls fail fast and the
// client plays the WAV returned by the speech endpoint instead.
type UnsupportedPlayer struct{}

func (UnsupportedPlayer) Supported() bool { return false }

func (UnsupportedPlayer) Play([]float32, int, func()) (func() error, error) {
	return nil, nil
}
