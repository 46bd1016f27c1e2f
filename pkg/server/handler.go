// Package server exposes the portfolio over HTTP as JSON.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harrisonrobin/portfolio/pkg/ingest"
	"github.com/harrisonrobin/portfolio/pkg/model"
	"github.com/harrisonrobin/portfolio/pkg/timeline"
)

// Loader produces one portfolio snapshot per call.
type Loader interface {
	Load(ctx context.Context) ingest.Result
}

// Handler serves the dashboard API.
type Handler struct {
	Loader Loader
	// Gatherer backs /metrics. nil leaves the route unregistered.
	Gatherer prometheus.Gatherer
	// Now is the clock for timeline layouts.
	Now func() time.Time

	mux *http.ServeMux
}

// NewHandler wires the routes.
func NewHandler(l Loader, g prometheus.Gatherer) *Handler {
	h := &Handler{Loader: l, Gatherer: g, Now: time.Now}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dashboard", h.handleDashboard)
	mux.HandleFunc("GET /api/projects/{id}/timeline", h.handleTimeline)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	if g != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}
	h.mux = mux
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Loader == nil {
		writeError(w, http.StatusInternalServerError, "portfolio loader not configured")
		return
	}
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Loader.Load(r.Context()))
}

// TimelineResponse is one project with its Gantt layout. IsOffline and
// Error mirror the load pass the project came from.
type TimelineResponse struct {
	Project   model.Project   `json:"project"`
	Layout    timeline.Layout `json:"layout"`
	IsOffline bool            `json:"isOffline"`
	Error     string          `json:"error,omitempty"`
}

func (h *Handler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	res := h.Loader.Load(r.Context())
	project, ok := model.ProjectByID(res.Data, id)
	if !ok {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, TimelineResponse{
		Project:   project,
		Layout:    timeline.Compute(project.Tasks, h.Now()),
		IsOffline: res.IsOffline,
		Error:     res.Error,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
