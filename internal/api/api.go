// Package api serves the sensor readings over a small read-only HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/store"
	"github.com/rileyhilliard/tremor/internal/tremor"
)

const (
	defaultQueryTimeout  = 10 * time.Second
	defaultHistoryLimit  = 100
	defaultEventLogLimit = 25
)

// Config wires an API to its store. Zero limits and timeouts fall back to defaults.
type Config struct {
	Store         store.Store
	Logger        logger.Logger
	QueryTimeout  time.Duration
	HistoryLimit  int
	EventLogLimit int
	// Location is used for the time labels in summary responses; nil means time.Local.
	Location *time.Location
}

// API serves readings from a store over HTTP.
type API struct {
	store         store.Store
	log           logger.Logger
	queryTimeout  time.Duration
	historyLimit  int
	eventLogLimit int
	loc           *time.Location
}

// New builds an API from config, filling in defaults for unset fields.
func New(config Config) *API {
	a := &API{
		store:         config.Store,
		log:           config.Logger,
		queryTimeout:  config.QueryTimeout,
		historyLimit:  config.HistoryLimit,
		eventLogLimit: config.EventLogLimit,
		loc:           config.Location,
	}
	if a.log == nil {
		a.log = logger.Noop()
	}
	if a.queryTimeout <= 0 {
		a.queryTimeout = defaultQueryTimeout
	}
	if a.historyLimit <= 0 {
		a.historyLimit = defaultHistoryLimit
	}
	if a.eventLogLimit <= 0 {
		a.eventLogLimit = defaultEventLogLimit
	}
	return a
}

// Routes mounts every endpoint on a fresh chi router.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(a.logRequests)

	r.Get("/healthz", a.Healthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/latest", a.GetLatest)
		r.Get("/recent", a.GetRecent)
		r.Get("/summary", a.GetSummary)
	})
	return r
}

// Healthz answers 200 OK when the store responds to a ping, 503 otherwise.
func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), a.queryTimeout)
	defer cancel()

	if err := a.store.Ping(ctx); err != nil {
		a.log.Warn("health check failed: %v", err)
		http.Error(w, "store unreachable", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("OK"))
}

// GetLatest returns the newest reading, or 404 when the table is empty.
func (a *API) GetLatest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), a.queryTimeout)
	defer cancel()

	record, err := a.store.FetchLatest(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoRows) {
			writeError(w, http.StatusNotFound, "no readings recorded yet")
			return
		}
		a.log.Error("fetch latest: %v", err)
		writeError(w, http.StatusBadGateway, "failed to fetch latest reading")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// GetRecent returns up to ?limit= readings, newest first.
func (a *API) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit, ok := a.parseLimit(w, r)
	if !ok {
		return
	}

	records, ok := a.fetchRecent(w, r, limit)
	if !ok {
		return
	}
	if records == nil {
		records = []tremor.SensorRecord{}
	}
	writeJSON(w, http.StatusOK, GetRecentResponse{Records: records})
}

// GetSummary returns recent readings with the tremor count, average heart
// rate, event log and chart series derived from them.
func (a *API) GetSummary(w http.ResponseWriter, r *http.Request) {
	limit, ok := a.parseLimit(w, r)
	if !ok {
		return
	}

	records, ok := a.fetchRecent(w, r, limit)
	if !ok {
		return
	}

	summary := tremor.Summarize(records, a.eventLogLimit, a.loc)
	resp := GetSummaryResponse{
		Records:          summary.Records,
		TremorEventCount: summary.TremorEventCount,
		AverageHeartRate: summary.AverageHeartRate,
		EventLog:         summary.EventLog,
		Series:           summary.Series,
	}
	if resp.EventLog == nil {
		resp.EventLog = []tremor.ChartPoint{}
	}
	if resp.Series == nil {
		resp.Series = []tremor.ChartPoint{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) fetchRecent(w http.ResponseWriter, r *http.Request, limit int) ([]tremor.SensorRecord, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), a.queryTimeout)
	defer cancel()

	records, err := a.store.FetchRecent(ctx, limit)
	if err != nil {
		a.log.Error("fetch recent (limit %d): %v", limit, err)
		writeError(w, http.StatusBadGateway, "failed to fetch recent readings")
		return nil, false
	}
	return records, true
}

// parseLimit reads ?limit=N, falling back to the configured history limit.
// Values above store.MaxRecentLimit are capped rather than rejected.
func (a *API) parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return a.historyLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return store.NormalizeLimit(limit), true
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.log.Debug("%s %s -> %d (%s)", r.Method, r.URL.RequestURI(), ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
