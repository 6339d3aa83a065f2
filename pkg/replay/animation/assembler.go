package animation

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
)

// DefaultPadding is the margin added around the track extents, in the
// provider's world units.
const DefaultPadding = 500.0

// DefaultFrameDuration is the nominal playback delay per frame in ms.
const DefaultFrameDuration = 100

// Assembler combines the static track outline with the ordered frame
// sequence into one playable animation.
type Assembler struct {
	padding       float64
	frameDuration int
}

type Option func(*Assembler)

func WithPadding(padding float64) Option {
	return func(a *Assembler) { a.padding = padding }
}

func WithFrameDuration(ms int) Option {
	return func(a *Assembler) { a.frameDuration = ms }
}

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{padding: DefaultPadding, frameDuration: DefaultFrameDuration}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds the animation. The viewport is fixed across all frames:
// the outline's coordinate extents plus the configured padding.
func (a *Assembler) Assemble(
	requestID string,
	scope model.ReplayScope,
	outline model.TrackOutline,
	frameSeq []model.Frame,
	stepSecs float64,
) (*model.Animation, error) {
	if len(outline.X) == 0 || len(outline.X) != len(outline.Y) {
		return nil, fmt.Errorf("unusable track outline (%d x, %d y points)",
			len(outline.X), len(outline.Y))
	}
	return &model.Animation{
		RequestID:     requestID,
		Scope:         scope,
		Track:         outline,
		Viewport:      a.viewport(outline),
		Frames:        frameSeq,
		StepSecs:      stepSecs,
		FrameDuration: a.frameDuration,
	}, nil
}

func (a *Assembler) viewport(outline model.TrackOutline) model.Viewport {
	return model.Viewport{
		XMin: floats.Min(outline.X) - a.padding,
		XMax: floats.Max(outline.X) + a.padding,
		YMin: floats.Min(outline.Y) - a.padding,
		YMax: floats.Max(outline.Y) + a.padding,
	}
}
