// Package server exposes the observation pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/config"
)

// Server holds the HTTP server and the configured defaults.
type Server struct {
	httpServer *http.Server
	cfg        config.Config
}

// New creates a configured HTTP server. The config supplies the listen
// address and the site used when a request omits location parameters.
func New(cfg config.Config) *Server {
	s := &Server{cfg: cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthz)
	mux.HandleFunc("GET /api/v1/observation", s.handleObservation)

	var handler http.Handler = mux
	handler = loggingMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// HTTPServer returns the underlying *http.Server for external control.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Handler returns the full middleware-wrapped handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// observationResponse is the envelope around one observation. On
// failure Result stays null and Error carries the reason; partial
// results are never emitted.
type observationResponse struct {
	Error  string               `json:"error,omitempty"`
	Result *almanac.Observation `json:"result"`
}

func (s *Server) handleObservation(w http.ResponseWriter, r *http.Request) {
	date, loc, deltaT, err := s.parseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, observationResponse{Error: err.Error()})
		return
	}

	obs, err := almanac.Compute(date, loc, deltaT)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, almanac.ErrInvalidDate) || errors.Is(err, almanac.ErrInvalidLocation) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, observationResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, observationResponse{Result: obs})
}

// parseQuery extracts date, time, lat, lon, zone and delta_t from the
// query string. Location and delta-T fall back to the configured site.
func (s *Server) parseQuery(r *http.Request) (almanac.Date, almanac.Location, float64, error) {
	q := r.URL.Query()

	date := almanac.Date{}
	loc := almanac.Location{
		Latitude:  s.cfg.Site.Latitude,
		Longitude: s.cfg.Site.Longitude,
		Zone:      s.cfg.Site.Zone,
	}
	deltaT := s.cfg.DeltaT

	dateStr := q.Get("date")
	if dateStr == "" {
		return date, loc, 0, errors.New("missing required parameter: date")
	}
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return date, loc, 0, errors.New("invalid date, expected YYYY-MM-DD")
	}
	date.Year, date.Month, date.Day = d.Year(), int(d.Month()), d.Day()

	if timeStr := q.Get("time"); timeStr != "" {
		clock, err := time.Parse("15:04:05", timeStr)
		if err != nil {
			return date, loc, 0, errors.New("invalid time, expected HH:MM:SS")
		}
		date.Hour, date.Minute, date.Second = clock.Hour(), clock.Minute(), clock.Second()
	}

	if v := q.Get("lat"); v != "" {
		loc.Latitude, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return date, loc, 0, errors.New("invalid lat")
		}
	}
	if v := q.Get("lon"); v != "" {
		loc.Longitude, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return date, loc, 0, errors.New("invalid lon")
		}
	}
	if v := q.Get("zone"); v != "" {
		loc.Zone, err = strconv.Atoi(v)
		if err != nil {
			return date, loc, 0, errors.New("invalid zone, expected whole hours")
		}
	}
	if v := q.Get("delta_t"); v != "" {
		deltaT, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return date, loc, 0, errors.New("invalid delta_t")
		}
	}

	return date, loc, deltaT, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sr, r)

		ev := log.Info()
		if r.URL.Path == "/healthz" {
			ev = log.Debug()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sr.statusCode).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("request")
	})
}
