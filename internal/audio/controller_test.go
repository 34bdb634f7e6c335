package audio

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguastory-backend/internal/genai"
	"linguastory-backend/internal/logging"
)

// fakeSynth returns a fixed valid PCM16 payload, or the configured error.
// When block is set, synthesis waits on it and signals started first.
type fakeSynth struct {
	err     error
	calls   int64
	block   chan struct{}
	started chan struct{}
}

func (f *fakeSynth) SynthesizeSpeech(_ context.Context, _ string) (string, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return "", f.err
	}
	return base64.StdEncoding.EncodeToString([]byte{0x00, 0x40, 0x00, 0xC0}), nil
}

// fakePlayer records play/stop activity and lets tests fire onEnded.
type fakePlayer struct {
	mu      sync.Mutex
	stops   int
	stopErr error
	onEnded func()
}

func (f *fakePlayer) Supported() bool { return true }

func (f *fakePlayer) Play(_ []float32, _ int, onEnded func()) (func() error, error) {
	f.mu.Lock()
	f.onEnded = onEnded
	f.mu.Unlock()
	return func() error {
		f.mu.Lock()
		f.stops++
		f.mu.Unlock()
		return f.stopErr
	}, nil
}

func (f *fakePlayer) endPlayback() {
	f.mu.Lock()
	cb := f.onEnded
	f.mu.Unlock()
	if cb != nil {
		cb()
	}
}

func (f *fakePlayer) stopCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

func newTestController(player Player) *Controller {
	return NewController(&fakeSynth{}, player, nil, logging.NewNop())
}

func TestPlayTransitionsToPlaying(t *testing.T) {
	c := newTestController(&fakePlayer{})

	require.NoError(t, c.Play(context.Background(), "hello", "story"))

	state, key := c.StateKey()
	assert.Equal(t, Playing, state)
	assert.Equal(t, "story", key)
}

func TestSecondPlayStopsFirst(t *testing.T) {
	player := &fakePlayer{}
	c := newTestController(player)

	require.NoError(t, c.Play(context.Background(), "a", "vocab-1"))
	require.NoError(t, c.Play(context.Background(), "b", "vocab-2"))

	state, key := c.StateKey()
	assert.Equal(t, Playing, state)
	assert.Equal(t, "vocab-2", key)
	assert.Equal(t, 1, player.stopCount())
}

func TestToggleToStop(t *testing.T) {
	player := &fakePlayer{}
	c := newTestController(player)

	require.NoError(t, c.Play(context.Background(), "a", "story"))
	require.NoError(t, c.Play(context.Background(), "a", "story"))

	state, key := c.StateKey()
	assert.Equal(t, Idle, state)
	assert.Empty(t, key)
	assert.Equal(t, 1, player.stopCount())
}

func TestNaturalEndResetsToIdle(t *testing.T) {
	player := &fakePlayer{}
	c := newTestController(player)

	require.NoError(t, c.Play(context.Background(), "a", "story"))
	player.endPlayback()

	state, _ := c.StateKey()
	assert.Equal(t, Idle, state)
	assert.Equal(t, 0, player.stopCount())
}

func TestStopIsIdempotent(t *testing.T) {
	player := &fakePlayer{}
	c := newTestController(player)

	require.NoError(t, c.Play(context.Background(), "a", "story"))
	c.Stop()
	c.Stop()

	state, _ := c.StateKey()
	assert.Equal(t, Idle, state)
	assert.Equal(t, 1, player.stopCount())
}

func TestStopToleratesErroringStopPrimitive(t *testing.T) {
	player := &fakePlayer{stopErr: errors.New("already ended")}
	c := newTestController(player)

	require.NoError(t, c.Play(context.Background(), "a", "story"))
	c.Stop()

	state, _ := c.StateKey()
	assert.Equal(t, Idle, state)
}

func TestSynthesisFailureResetsState(t *testing.T) {
	synth := &fakeSynth{err: errors.New("quota exceeded")}
	c := NewController(synth, &fakePlayer{}, nil, logging.NewNop())

	err := c.Play(context.Background(), "a", "story")
	require.Error(t, err)

	state, key := c.StateKey()
	assert.Equal(t, Idle, state)
	assert.Empty(t, key)
}

func TestUnsupportedPlayerRejectsPlay(t *testing.T) {
	c := NewController(&fakeSynth{}, UnsupportedPlayer{}, nil, logging.NewNop())

	err := c.Play(context.Background(), "a", "story")
	assert.ErrorIs(t, err, genai.ErrSpeechSynthesis)
}

func TestRepeatPlayWhileLoadingIsIgnored(t *testing.T) {
	synth := &fakeSynth{
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	player := &fakePlayer{}
	c := NewController(synth, player, nil, logging.NewNop())

	done := make(chan error, 1)
	go func() {
		done <- c.Play(context.Background(), "a", "story")
	}()
	<-synth.started

	// Tapping the same item again while it is still synthesizing must not
	// restart synthesis or supersede the in-flight request.
	require.NoError(t, c.Play(context.Background(), "a", "story"))

	close(synth.block)
	require.NoError(t, <-done)

	state, key := c.StateKey()
	assert.Equal(t, Playing, state)
	assert.Equal(t, "story", key)
	assert.Equal(t, int64(1), atomic.LoadInt64(&synth.calls))
}

func TestStaleOnEndedDoesNotClobberNewPlayback(t *testing.T) {
	player := &fakePlayer{}
	c := newTestController(player)

	require.NoError(t, c.Play(context.Background(), "a", "vocab-1"))
	first := player.onEnded

	require.NoError(t, c.Play(context.Background(), "b", "vocab-2"))
	first() // late end signal from the superseded utterance

	state, key := c.StateKey()
	assert.Equal(t, Playing, state)
	assert.Equal(t, "vocab-2", key)
}
