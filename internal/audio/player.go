package audio

import (
	"context"
	"fmt"
	"sync"
)

// Synthesizer produces a base64-encoded PCM payload for narration text.
// Satisfied by an adapter over the LLM provider's speech API.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// Output plays a decoded buffer. Start returns a stop function that halts
// playback early; onDone fires exactly once when the buffer plays to its
// natural end (not when stopped).
type Output interface {
	Start(buf *Buffer, onDone func()) (stop func(), err error)
}

// Player narrates lesson text. Decoded buffers are cached per text for the
// lifetime of the player so repeated playback never re-invokes synthesis.
// At most one source plays at a time: toggling while playing stops the
// current source instead of stacking a second one.
type Player struct {
	synth      Synthesizer
	out        Output
	sampleRate int
	channels   int

	mu      sync.Mutex
	cache   map[string]*Buffer
	playing bool
	stop    func()
	gen     int // invalidates completion callbacks from stopped sources
}

// NewPlayer creates a Player with default narration PCM parameters.
func NewPlayer(synth Synthesizer, out Output) *Player {
	return &Player{
		synth:      synth,
		out:        out,
		sampleRate: DefaultSampleRate,
		channels:   DefaultChannels,
		cache:      make(map[string]*Buffer),
	}
}

// Toggle starts narration of text, or stops the active narration if one is
// playing. Returns whether audio is playing after the call. Synthesis and
// decoding happen only on a cache miss.
func (p *Player) Toggle(ctx context.Context, text string) (bool, error) {
	p.mu.Lock()
	if p.playing {
		p.stopLocked()
		p.mu.Unlock()
		return false, nil
	}
	buf, ok := p.cache[text]
	p.mu.Unlock()

	if !ok {
		payload, err := p.synth.Synthesize(ctx, text)
		if err != nil {
			return false, fmt.Errorf("synthesize narration: %w", err)
		}
		buf, err = Decode(payload, p.sampleRate, p.channels)
		if err != nil {
			return false, fmt.Errorf("decode narration: %w", err)
		}
		p.mu.Lock()
		p.cache[text] = buf
		p.mu.Unlock()
	}

	return true, p.play(buf)
}

// Stop halts the active narration, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// IsPlaying reports whether a source is currently playing.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) play(buf *Buffer) error {
	p.mu.Lock()
	// A toggle may have raced in while synthesis ran; replace whatever is
	// playing rather than overlapping sources.
	p.stopLocked()
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	stop, err := p.out.Start(buf, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.gen == gen {
			p.playing = false
			p.stop = nil
			p.gen++
		}
	})
	if err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// The source may already be over (completion fired before Start
	// returned) or superseded by another toggle; in either case this
	// generation is stale and must not be recorded as playing.
	if p.gen != gen {
		stop()
		return nil
	}
	p.playing = true
	p.stop = stop
	return nil
}

func (p *Player) stopLocked() {
	if p.stop != nil {
		p.stop()
	}
	p.playing = false
	p.stop = nil
	p.gen++
}
