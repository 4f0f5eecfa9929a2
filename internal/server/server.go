/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package server exposes the monitoring engine as a read-mostly HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/phuonguno98/unomon/internal/monitor"
	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/phuonguno98/unomon/pkg/version"
)

// Default query parameter values.
const (
	DefaultAlertLimit = 20
	DefaultStatsHours = 24
)

// Server wires the engine's reporting surface onto an HTTP router. All
// reads go through the engine's synchronized accessors; the server never
// touches the shared state directly.
type Server struct {
	engine *monitor.Engine
	router *mux.Router
	logger *slog.Logger
}

// NewServer creates a server for the given engine and sets up routes.
func NewServer(engine *monitor.Engine, logger *slog.Logger) *Server {
	s := &Server{
		engine: engine,
		router: mux.NewRouter(),
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/api/version", s.handleGetVersion).Methods("GET")
	s.router.HandleFunc("/api/status", s.handleGetStatus).Methods("GET")
	s.router.HandleFunc("/api/system", s.handleGetSystem).Methods("GET")
	s.router.HandleFunc("/api/history", s.handleGetHistory).Methods("GET")
	s.router.HandleFunc("/api/alerts", s.handleGetAlerts).Methods("GET")
	s.router.HandleFunc("/api/statistics", s.handleGetStatistics).Methods("GET")
	s.router.HandleFunc("/api/thresholds", s.handleGetThresholds).Methods("GET")
	s.router.HandleFunc("/api/thresholds/{kind}", s.handleSetThreshold).Methods("PUT")
	s.router.HandleFunc("/api/monitor", s.handleGetMonitor).Methods("GET")
	s.router.HandleFunc("/api/monitor/start", s.handleStartMonitor).Methods("POST")
	s.router.HandleFunc("/api/monitor/stop", s.handleStopMonitor).Methods("POST")
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleGetVersion returns version information from the version package.
func (s *Server) handleGetVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	})
}

// handleGetStatus collects and returns a fresh snapshot.
func (s *Server) handleGetStatus(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.engine.CurrentStatus())
}

// handleGetSystem returns the static host descriptor.
func (s *Server) handleGetSystem(w http.ResponseWriter, _ *http.Request) {
	info, err := s.engine.SystemInfo()
	if err != nil {
		s.logger.Error("Failed to get system info", "error", err)
		s.writeError(w, "Failed to get system info", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, info)
}

// handleGetHistory returns retained snapshots, optionally limited to the
// trailing 'hours' window.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if hoursStr := r.URL.Query().Get("hours"); hoursStr != "" {
		hours, err := strconv.Atoi(hoursStr)
		if err != nil || hours < 1 {
			s.writeError(w, "Invalid hours parameter", http.StatusBadRequest)
			return
		}
		s.writeJSON(w, s.engine.HistorySince(hours))
		return
	}
	s.writeJSON(w, s.engine.History())
}

// handleGetAlerts returns the most recent alerts, newest last.
func (s *Server) handleGetAlerts(w http.ResponseWriter, r *http.Request) {
	limit := DefaultAlertLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			s.writeError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	s.writeJSON(w, map[string]interface{}{
		"total":  s.engine.AlertCount(),
		"alerts": s.engine.RecentAlerts(limit),
	})
}

// handleGetStatistics returns windowed usage statistics. A window with no
// snapshots is 404, not an error object with NaN fields.
func (s *Server) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	hours := DefaultStatsHours
	if hoursStr := r.URL.Query().Get("hours"); hoursStr != "" {
		parsed, err := strconv.Atoi(hoursStr)
		if err != nil || parsed < 1 {
			s.writeError(w, "Invalid hours parameter", http.StatusBadRequest)
			return
		}
		hours = parsed
	}

	stats := s.engine.Statistics(hours)
	if stats == nil {
		s.writeError(w, "Insufficient data for statistics", http.StatusNotFound)
		return
	}
	s.writeJSON(w, stats)
}

// handleGetThresholds returns the current alerting limits.
func (s *Server) handleGetThresholds(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.engine.Thresholds())
}

// handleSetThreshold updates one alerting limit.
func (s *Server) handleSetThreshold(w http.ResponseWriter, r *http.Request) {
	kind := metrics.ThresholdKind(mux.Vars(r)["kind"])

	var body struct {
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.engine.SetThreshold(kind, body.Value); err != nil {
		s.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writeJSON(w, s.engine.Thresholds())
}

// handleGetMonitor reports the loop state.
func (s *Server) handleGetMonitor(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]bool{"running": s.engine.Running()})
}

// handleStartMonitor starts the background loop. An unparseable interval
// falls back to the engine default rather than failing the request.
func (s *Server) handleStartMonitor(w http.ResponseWriter, r *http.Request) {
	var interval time.Duration
	if intervalStr := r.URL.Query().Get("interval"); intervalStr != "" {
		parsed, err := time.ParseDuration(intervalStr)
		if err != nil {
			s.logger.Warn("Invalid interval, using default", "interval", intervalStr)
		} else {
			interval = parsed
		}
	}

	if err := s.engine.Start(interval); err != nil {
		if errors.Is(err, monitor.ErrAlreadyRunning) {
			s.writeError(w, err.Error(), http.StatusConflict)
			return
		}
		s.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, map[string]bool{"running": true})
}

// handleStopMonitor stops the background loop; stopping an idle engine is
// a no-op.
func (s *Server) handleStopMonitor(w http.ResponseWriter, _ *http.Request) {
	s.engine.Stop()
	s.writeJSON(w, map[string]bool{"running": false})
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to write JSON response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); err != nil {
		s.logger.Error("Failed to write error response", "error", err)
	}
}
