// Package audio implements the single-flight playback state machine and the
// PCM decode contract of the speech endpoint.
package audio

import (
	"context"
	"fmt"
	"sync"

	"linguastory-backend/internal/genai"
	"linguastory-backend/internal/logging"
	"linguastory-backend/utilities"
)

type State int

const (
	Idle State = iota
	Loading
	Playing
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	default:
		return "idle"
	}
}

// Synthesizer requests speech audio for a piece of text.
type Synthesizer interface {
	SynthesizeSpeech(ctx context.Context, text string) (string, error)
}

// Player is the playback capability. Non-browser targets plug in stubs;
// Supported reports whether real output is available. Play returns a stop
// function; onEnded fires once on natural end of playback.
type Player interface {
	Supported() bool
	Play(samples []float32, sampleRate int, onEnded func()) (stop func() error, err error)
}

// Controller enforces at most one audible utterance at a time, keyed by the
// logical source ("story", "vocab-3", a chat-message id) so callers can show
// per-item play/stop affordance.
type Controller struct {
	synth  Synthesizer
	player Player
	bus    *utilities.EventBus
	log    *logging.Logger

	mu    sync.Mutex
	state State
	key   string
	gen   uint64 // increments on every transition that supersedes async work
	stop  func() error
}

func NewController(synth Synthesizer, player Player, bus *utilities.EventBus, log *logging.Logger) *Controller {
	return &Controller{synth: synth, player: player, bus: bus, log: log}
}

// StateKey reports the current state and the active source key.
func (c *Controller) StateKey() (State, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.key
}

// Play synthesizes and plays text under sourceKey. Calling it again with the
// key that is currently playing stops playback instead (toggle-to-stop);
// repeat calls for a key that is still loading are ignored. Any other
// in-flight or audible utterance is stopped first.
func (c *Controller) Play(ctx context.Context, text, sourceKey string) error {
	if !c.player.Supported() {
		return fmt.Errorf("%w: no playback capability", genai.ErrSpeechSynthesis)
	}

	c.mu.Lock()
	if c.state == Loading && c.key == sourceKey {
		// Already synthesizing this utterance; ignore repeat taps.
		c.mu.Unlock()
		return nil
	}
	if c.state == Playing && c.key == sourceKey {
		c.stopLocked()
		c.mu.Unlock()
		return nil
	}
	if c.state != Idle {
		c.stopLocked()
	}
	c.state = Loading
	c.key = sourceKey
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	b64, err := c.synth.SynthesizeSpeech(ctx, text)
	if err != nil {
		c.fail(gen, sourceKey, err)
		return err
	}

	samples, err := DecodePCM16(b64)
	if err != nil {
		err = fmt.Errorf("%w: %v", genai.ErrSpeechSynthesis, err)
		c.fail(gen, sourceKey, err)
		return err
	}

	c.mu.Lock()
	if c.gen != gen {
		// Superseded by a later Play or Stop while synthesizing.
		c.mu.Unlock()
		return nil
	}

	stop, err := c.player.Play(samples, SampleRate, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen == gen && c.key == sourceKey {
			c.state = Idle
			c.key = ""
			c.stop = nil
		}
	})
	if err != nil {
		c.state = Idle
		c.key = ""
		c.mu.Unlock()
		err = fmt.Errorf("%w: %v", genai.ErrSpeechSynthesis, err)
		c.notifyFailure(sourceKey, err)
		return err
	}

	c.state = Playing
	c.stop = stop
	c.mu.Unlock()
	return nil
}

// Stop halts any current playback. Safe to call when already idle, and
// tolerates the underlying stop primitive erroring because playback ended.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.stop != nil {
		if err := c.stop(); err != nil {
			c.log.Debugw("stop after playback ended", "err", err)
		}
		c.stop = nil
	}
	c.state = Idle
	c.key = ""
	c.gen++
}

func (c *Controller) fail(gen uint64, sourceKey string, err error) {
	c.mu.Lock()
	if c.gen == gen {
		c.state = Idle
		c.key = ""
	}
	c.mu.Unlock()
	c.notifyFailure(sourceKey, err)
}

func (c *Controller) notifyFailure(sourceKey string, err error) {
	c.log.Warnw("audio playback failed", "source", sourceKey, "err", err)
	if c.bus != nil {
		c.bus.Publish(utilities.EventAudioFailed, sourceKey)
	}
}
