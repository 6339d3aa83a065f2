package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/log"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/session"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/utils/cache"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/utils/cache/loadercache"
)

// WebServer serves the dashboard: session tables, charts and the replay
// animation. It is a thin pass-through; all data comes from the session
// provider and all replay logic lives in the pipeline.
type WebServer struct {
	provider    session.Provider
	pipeline    *replay.Pipeline
	addr        string
	logger      *zap.Logger
	mux         *http.ServeMux
	replayCache cache.Cache[replayKey, model.Animation]
}

// replayKey identifies a replay request for caching. Car ids are
// normalized so the parameter order does not fragment the cache.
type replayKey struct {
	Lap   int
	Focus string
	Cars  string
}

func newReplayKey(req model.ReplayRequest) replayKey {
	cars := make([]string, len(req.CarIDs))
	copy(cars, req.CarIDs)
	sort.Strings(cars)
	return replayKey{
		Lap:   req.Scope.Lap,
		Focus: req.FocusCarID,
		Cars:  strings.Join(cars, ","),
	}
}

func NewWebServer(
	provider session.Provider,
	pipeline *replay.Pipeline,
	addr string,
) *WebServer {
	ws := &WebServer{
		provider: provider,
		pipeline: pipeline,
		addr:     addr,
		logger:   log.Named("web"),
		mux:      http.NewServeMux(),
	}
	ws.replayCache = loadercache.New[replayKey, model.Animation](
		loadercache.WithLogger[replayKey, model.Animation](ws.logger),
		loadercache.WithExpiration[replayKey, model.Animation](10*time.Minute),
		loadercache.WithLoader[replayKey, model.Animation](
			func(ctx context.Context, key replayKey) (*model.Animation, error) {
				req := model.ReplayRequest{FocusCarID: key.Focus}
				if key.Lap > 0 {
					req.Scope = model.LapScope(key.Lap)
				}
				if key.Cars != "" {
					req.CarIDs = strings.Split(key.Cars, ",")
				}
				return pipeline.BuildReplay(ctx, req)
			}),
	)
	ws.routes()
	return ws
}

func (ws *WebServer) routes() {
	ws.mux.HandleFunc("GET /", ws.handleIndex)
	ws.mux.HandleFunc("GET /api/event", ws.handleEvent)
	ws.mux.HandleFunc("GET /api/schedule", ws.handleSchedule)
	ws.mux.HandleFunc("GET /api/results", ws.handleResults)
	ws.mux.HandleFunc("GET /api/standings", ws.handleStandings)
	ws.mux.HandleFunc("GET /api/laps", ws.handleLaps)
	ws.mux.HandleFunc("GET /api/replay", ws.handleReplay)
	ws.mux.HandleFunc("GET /tables/results", ws.handleResultsTable)
	ws.mux.HandleFunc("GET /tables/standings", ws.handleStandingsTable)
	ws.mux.HandleFunc("GET /tables/schedule", ws.handleScheduleTable)
	ws.mux.HandleFunc("GET /charts/speed", ws.traceChartHandler("speed"))
	ws.mux.HandleFunc("GET /charts/gear", ws.traceChartHandler("gear"))
	ws.mux.HandleFunc("GET /charts/drs", ws.traceChartHandler("drs"))
	ws.mux.HandleFunc("GET /charts/laptimes", ws.handleLapTimesChart)
	ws.mux.HandleFunc("GET /charts/trackmap", ws.handleTrackMapChart)
	ws.mux.HandleFunc("GET /replay", ws.handleReplayPage)
}

// Start runs the server until ctx is cancelled, then shuts down
// gracefully.
func (ws *WebServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ws.addr,
		Handler:           cors.Default().Handler(ws.mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errChan := make(chan error, 1)
	go func() {
		ws.logger.Info("dashboard listening", log.String("addr", ws.addr))
		if err := srv.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			errChan <- err
		}
	}()
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (ws *WebServer) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ws.logger.Error("writing response", log.ErrorField(err))
	}
}

func (ws *WebServer) writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (ws *WebServer) writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text + "\n"))
}

func (ws *WebServer) handleEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := ws.provider.Event(r.Context())
	if err != nil {
		ws.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	ws.writeJSON(w, ev)
}

func (ws *WebServer) handleSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := ws.provider.Schedule(r.Context())
	if err != nil {
		ws.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	ws.writeJSON(w, schedule)
}

func (ws *WebServer) handleResults(w http.ResponseWriter, r *http.Request) {
	results, err := ws.provider.Results(r.Context())
	if err != nil {
		ws.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	ws.writeJSON(w, results)
}

func (ws *WebServer) handleStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := ws.provider.Standings(r.Context())
	if err != nil {
		ws.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	ws.writeJSON(w, standings)
}

func (ws *WebServer) handleLaps(w http.ResponseWriter, r *http.Request) {
	laps, err := ws.provider.Laps(r.Context())
	if err != nil {
		ws.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	ws.writeJSON(w, laps)
}

// handleReplay runs the replay pipeline for the query parameters:
// lap (0 or absent = full race), focus (car id), cars (comma separated,
// absent = all).
func (ws *WebServer) handleReplay(w http.ResponseWriter, r *http.Request) {
	req, err := parseReplayRequest(r)
	if err != nil {
		ws.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	anim, err := ws.replayCache.Get(r.Context(), newReplayKey(req))
	if err != nil {
		ws.writeJSONError(w, replayErrorStatus(err), err.Error())
		return
	}
	ws.writeJSON(w, anim)
}

func parseReplayRequest(r *http.Request) (model.ReplayRequest, error) {
	req := model.ReplayRequest{FocusCarID: r.URL.Query().Get("focus")}
	if lapParam := r.URL.Query().Get("lap"); lapParam != "" {
		lap, err := strconv.Atoi(lapParam)
		if err != nil || lap < 0 {
			return req, fmt.Errorf("invalid lap %q", lapParam)
		}
		req.Scope = model.LapScope(lap)
	}
	if carsParam := r.URL.Query().Get("cars"); carsParam != "" {
		req.CarIDs = strings.Split(carsParam, ",")
	}
	return req, nil
}

// replayErrorStatus maps the pipeline error taxonomy onto HTTP statuses:
// every fatal condition is recoverable at the request boundary.
func replayErrorStatus(err error) int {
	var lapErr *replay.LapNotCompletedError
	var trackErr *replay.TrackOutlineError
	switch {
	case errors.As(err, &lapErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &trackErr):
		return http.StatusBadGateway
	case errors.Is(err, replay.ErrNoData):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
