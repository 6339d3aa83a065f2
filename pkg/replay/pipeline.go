package replay

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/log"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay/animation"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay/frames"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay/grid"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay/resample"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/session"
)

const (
	// DefaultFullRaceStep keeps full race replays at a bounded frame count.
	DefaultFullRaceStep = 2.0
	// DefaultLapStep gives smooth motion for single lap replays.
	DefaultLapStep = 0.5
	// DefaultLapBuffer extends the lap grid past the focus lap duration.
	DefaultLapBuffer = 5.0
	// DefaultFallbackLapSpan is used when the focus lap duration is unknown.
	DefaultFallbackLapSpan = 150.0
)

// ProgressFunc receives coarse progress while car data is prepared.
type ProgressFunc func(current, total int, carID string)

// Pipeline runs one replay request end to end: fetch, resample all cars,
// build all frames, assemble the animation. All intermediate state is
// request scoped and discarded once the animation is returned.
type Pipeline struct {
	provider  session.Provider
	resampler *resample.Resampler

	fullRaceStep    float64
	lapStep         float64
	lapBuffer       float64
	fallbackLapSpan float64
	drs             frames.DRSConfig
	gapCalibration  float64
	padding         float64
	frameDuration   int
	maxParallel     int
	progress        ProgressFunc
}

type Option func(*Pipeline)

func WithFullRaceStep(step float64) Option {
	return func(p *Pipeline) { p.fullRaceStep = step }
}

func WithLapStep(step float64) Option {
	return func(p *Pipeline) { p.lapStep = step }
}

func WithLapBuffer(buffer float64) Option {
	return func(p *Pipeline) { p.lapBuffer = buffer }
}

func WithFallbackLapSpan(span float64) Option {
	return func(p *Pipeline) { p.fallbackLapSpan = span }
}

func WithDRSConfig(cfg frames.DRSConfig) Option {
	return func(p *Pipeline) { p.drs = cfg }
}

func WithGapCalibration(metersPerSecond float64) Option {
	return func(p *Pipeline) { p.gapCalibration = metersPerSecond }
}

func WithViewportPadding(padding float64) Option {
	return func(p *Pipeline) { p.padding = padding }
}

func WithFrameDuration(ms int) Option {
	return func(p *Pipeline) { p.frameDuration = ms }
}

// WithMaxParallel bounds the number of cars resampled concurrently.
// Non positive values keep the default (number of CPUs).
func WithMaxParallel(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxParallel = n
		}
	}
}

func WithProgress(progress ProgressFunc) Option {
	return func(p *Pipeline) { p.progress = progress }
}

func NewPipeline(provider session.Provider, opts ...Option) *Pipeline {
	p := &Pipeline{
		provider:        provider,
		resampler:       resample.NewResampler(),
		fullRaceStep:    DefaultFullRaceStep,
		lapStep:         DefaultLapStep,
		lapBuffer:       DefaultLapBuffer,
		fallbackLapSpan: DefaultFallbackLapSpan,
		drs:             frames.DefaultDRSConfig(),
		gapCalibration:  frames.DefaultGapCalibration,
		padding:         animation.DefaultPadding,
		frameDuration:   animation.DefaultFrameDuration,
		maxParallel:     runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BuildReplay executes the request and returns the playable animation.
// Failure of one car's data load excludes that car; a missing track
// outline, an unusable focus car or an empty car set abort the request
// with a typed error.
//
//nolint:funlen // pipeline stages read best in one sequence
func (p *Pipeline) BuildReplay(
	ctx context.Context,
	req model.ReplayRequest,
) (*model.Animation, error) {
	requestID := uuid.NewString()
	logger := log.Named("replay").With(
		log.String("requestId", requestID), log.Int("lap", req.Scope.Lap))

	outline, err := p.fetchOutline(ctx)
	if err != nil {
		return nil, &TrackOutlineError{Cause: err}
	}

	entries, err := p.provider.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading session roster: %w", err)
	}
	roster := session.NewRoster(entries)

	carIDs := req.CarIDs
	if len(carIDs) == 0 {
		carIDs = roster.CarIDs()
	}
	carIDs = lo.Uniq(carIDs)
	sort.Strings(carIDs)

	raw := p.fetchTelemetry(ctx, logger, carIDs, req.Scope)
	if len(raw) == 0 {
		return nil, ErrNoData
	}
	if req.FocusCarID != "" {
		if _, ok := raw[req.FocusCarID]; !ok {
			return nil, &LapNotCompletedError{CarID: req.FocusCarID, Lap: req.Scope.Lap}
		}
	}

	timeGrid := p.buildGrid(ctx, req, raw)
	tracks := p.resampleAll(ctx, logger, raw, timeGrid)
	if len(tracks) == 0 {
		return nil, ErrNoData
	}
	if req.FocusCarID != "" && !hasDefinedFrames(tracks, req.FocusCarID) {
		return nil, &LapNotCompletedError{CarID: req.FocusCarID, Lap: req.Scope.Lap}
	}
	if !lo.SomeBy(tracks, func(t *model.CarTrack) bool { return anyDefined(t) }) {
		return nil, ErrNoData
	}

	builder := frames.NewBuilder(roster,
		frames.WithFocusCar(req.FocusCarID),
		frames.WithDRSConfig(p.drs),
		frames.WithGapCalibration(p.gapCalibration),
	)
	frameSeq := builder.BuildFrames(tracks, timeGrid)

	assembler := animation.NewAssembler(
		animation.WithPadding(p.padding),
		animation.WithFrameDuration(p.frameDuration),
	)
	anim, err := assembler.Assemble(requestID, req.Scope, outline, frameSeq,
		timeGrid.Step())
	if err != nil {
		return nil, &TrackOutlineError{Cause: err}
	}
	logger.Info("replay assembled",
		log.Int("cars", len(tracks)), log.Int("frames", len(frameSeq)))
	return anim, nil
}

// fetchOutline loads the reference lap and turns it into the static track
// polyline shared by all frames.
func (p *Pipeline) fetchOutline(ctx context.Context) (model.TrackOutline, error) {
	samples, err := p.provider.ReferenceLap(ctx)
	if err != nil {
		return model.TrackOutline{}, err
	}
	if len(samples) < 2 {
		return model.TrackOutline{}, fmt.Errorf(
			"reference lap has %d samples", len(samples))
	}
	outline := model.TrackOutline{
		X: make([]float64, len(samples)),
		Y: make([]float64, len(samples)),
	}
	for i, s := range samples {
		outline.X[i] = s.X
		outline.Y[i] = s.Y
	}
	return outline, nil
}

// fetchTelemetry loads the raw samples per car, reporting coarse progress.
// Cars whose load fails are excluded rather than aborting the request.
func (p *Pipeline) fetchTelemetry(
	ctx context.Context,
	logger *zap.Logger,
	carIDs []string,
	scope model.ReplayScope,
) map[string][]model.TelemetrySample {
	raw := make(map[string][]model.TelemetrySample, len(carIDs))
	for i, carID := range carIDs {
		if p.progress != nil {
			p.progress(i+1, len(carIDs), carID)
		}
		samples, err := p.provider.CarTelemetry(ctx, carID, scope)
		if err != nil {
			logger.Warn("excluding car: telemetry unavailable",
				log.String("carId", carID), log.ErrorField(err))
			continue
		}
		raw[carID] = samples
	}
	return raw
}

// buildGrid picks the time grid for the request scope: session time bounds
// with a coarse step for the full race, a finer step bounded by the focus
// lap duration (plus buffer) for a single lap.
func (p *Pipeline) buildGrid(
	ctx context.Context,
	req model.ReplayRequest,
	raw map[string][]model.TelemetrySample,
) grid.TimeGrid {
	if req.Scope.FullRace() {
		first := math.Inf(1)
		last := math.Inf(-1)
		for _, samples := range raw {
			if len(samples) == 0 {
				continue
			}
			first = math.Min(first, samples[0].TimeSecs)
			last = math.Max(last, samples[len(samples)-1].TimeSecs)
		}
		return grid.New(first, last, p.fullRaceStep)
	}
	span := p.fallbackLapSpan
	if dur, ok := p.focusLapDuration(ctx, req); ok {
		span = dur + p.lapBuffer
	}
	return grid.New(0, span, p.lapStep)
}

// focusLapDuration looks up the focus car's actual duration of the
// requested lap.
func (p *Pipeline) focusLapDuration(
	ctx context.Context,
	req model.ReplayRequest,
) (float64, bool) {
	if req.FocusCarID == "" {
		return 0, false
	}
	laps, err := p.provider.Laps(ctx)
	if err != nil {
		return 0, false
	}
	for _, lap := range laps {
		if lap.CarID == req.FocusCarID && lap.LapNumber == req.Scope.Lap &&
			lap.LapTimeSecs > 0 {
			return lap.LapTimeSecs, true
		}
	}
	return 0, false
}

// resampleAll resamples every fetched car onto the grid, in parallel. Cars
// that cannot be resampled (too few usable samples) are excluded. The
// result is ordered by car id so downstream output is deterministic.
func (p *Pipeline) resampleAll(
	ctx context.Context,
	logger *zap.Logger,
	raw map[string][]model.TelemetrySample,
	timeGrid grid.TimeGrid,
) []*model.CarTrack {
	carIDs := lo.Keys(raw)
	sort.Strings(carIDs)

	results := make([]*model.CarTrack, len(carIDs))
	g, _ := errgroup.WithContext(ctx)
	if p.maxParallel > 0 {
		g.SetLimit(p.maxParallel)
	}
	for i, carID := range carIDs {
		g.Go(func() error {
			track, err := p.resampler.Resample(carID, raw[carID], timeGrid)
			if err != nil {
				logger.Warn("excluding car: resampling failed",
					log.String("carId", carID), log.ErrorField(err))
				return nil
			}
			results[i] = track
			return nil
		})
	}
	// workers never return errors; exclusion is the recovery path
	_ = g.Wait()

	return lo.Filter(results, func(t *model.CarTrack, _ int) bool {
		return t != nil
	})
}

func hasDefinedFrames(tracks []*model.CarTrack, carID string) bool {
	for _, t := range tracks {
		if t.CarID == carID {
			return anyDefined(t)
		}
	}
	return false
}

func anyDefined(t *model.CarTrack) bool {
	for i := range t.X {
		if t.Defined(i) {
			return true
		}
	}
	return false
}
