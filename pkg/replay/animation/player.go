package animation

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
)

// Player drives frame playback: advancing at the animation's nominal rate
// while playing, freezing on pause and jumping anywhere in constant time
// on seek. The rendering layer subscribes via the frame callback.
type Player struct {
	anim    *model.Animation
	onFrame func(model.Frame)

	mu      sync.Mutex
	idx     int
	playing bool
}

type PlayerOption func(*Player)

// WithFrameCallback registers a callback invoked with every displayed
// frame (on play ticks and on seek).
func WithFrameCallback(cb func(model.Frame)) PlayerOption {
	return func(p *Player) { p.onFrame = cb }
}

func NewPlayer(anim *model.Animation, opts ...PlayerOption) *Player {
	p := &Player{anim: anim}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Current returns the currently displayed frame. Before any playback this
// is the first frame of the animation.
func (p *Player) Current() model.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.anim.Frames[p.idx]
}

// Play advances frames at the nominal rate until the end is reached, Pause
// is called or ctx is cancelled. It blocks for the duration of playback.
func (p *Player) Play(ctx context.Context) {
	p.mu.Lock()
	p.playing = true
	p.mu.Unlock()

	ticker := time.NewTicker(time.Duration(p.anim.FrameDuration) * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.Pause()
			return
		case <-ticker.C:
			if !p.advance() {
				return
			}
		}
	}
}

func (p *Player) advance() bool {
	p.mu.Lock()
	if !p.playing || p.idx >= len(p.anim.Frames)-1 {
		p.playing = false
		p.mu.Unlock()
		return false
	}
	p.idx++
	frame := p.anim.Frames[p.idx]
	p.mu.Unlock()
	p.emit(frame)
	return true
}

// Pause freezes playback at the current frame.
func (p *Player) Pause() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// SeekIndex jumps directly to the given frame index.
func (p *Player) SeekIndex(i int) error {
	p.mu.Lock()
	if i < 0 || i >= len(p.anim.Frames) {
		p.mu.Unlock()
		return fmt.Errorf("frame index %d out of range [0,%d)", i, len(p.anim.Frames))
	}
	p.idx = i
	frame := p.anim.Frames[i]
	p.mu.Unlock()
	p.emit(frame)
	return nil
}

// SeekTime jumps to the frame nearest the given timestamp, clamped to the
// animation's time range. Constant time: the grid is uniform, so the index
// is derived arithmetically rather than by scanning.
func (p *Player) SeekTime(t float64) error {
	start := p.anim.Frames[0].TimeSecs
	idx := int(math.Round((t - start) / p.anim.StepSecs))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.anim.Frames) {
		idx = len(p.anim.Frames) - 1
	}
	return p.SeekIndex(idx)
}

func (p *Player) emit(frame model.Frame) {
	if p.onFrame != nil {
		p.onFrame(frame)
	}
}
