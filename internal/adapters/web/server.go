// Package web serves the collector's status API: liveness, the latest
// cycle snapshot, Prometheus metrics, on-demand PDF reports, and a
// websocket feed of completed cycles.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/airlens/airmon/internal/adapters/reporting"
	"github.com/airlens/airmon/internal/core/ports"
)

// Server handles HTTP and WebSocket connections for the status API.
type Server struct {
	Addr      string
	Snapshots ports.SnapshotStore
	Hub       *LiveHub
	Exporter  *reporting.PDFExporter

	logger *zap.Logger
	srv    *http.Server
}

// NewServer creates a new status server.
func NewServer(addr string, snapshots ports.SnapshotStore, exporter *reporting.PDFExporter, logger *zap.Logger) *Server {
	return &Server{
		Addr:      addr,
		Snapshots: snapshots,
		Hub:       NewLiveHub(logger),
		Exporter:  exporter,
		logger:    logger,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/venue", s.handleVenue).Methods(http.MethodGet)
	r.HandleFunc("/api/zones", s.handleZones).Methods(http.MethodGet)
	r.HandleFunc("/api/offline", s.handleOffline).Methods(http.MethodGet)
	r.HandleFunc("/api/report/pdf", s.handlePDFReport).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.Hub.HandleWebSocket)
	r.Handle("/metrics", promhttp.Handler())

	return otelhttp.NewHandler(r, "airmon-status")
}

// Start begins serving in its own goroutine.
func (s *Server) Start() {
	s.srv = &http.Server{
		Addr:         s.Addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("status server failed", zap.Error(err))
		}
	}()
	s.logger.Info("status server listening", zap.String("addr", s.Addr))
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatus reports when the collector last completed a cycle.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap, found, err := s.latest(w)
	if err != nil || !found {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cycleId":     snap.CycleID,
		"collectedAt": snap.CollectedAt,
		"zones":       len(snap.Zones),
		"offlineAPs":  len(snap.OfflineAPs),
	})
}

func (s *Server) handleVenue(w http.ResponseWriter, r *http.Request) {
	snap, found, err := s.latest(w)
	if err != nil || !found {
		return
	}
	writeJSON(w, http.StatusOK, snap.Venue)
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	snap, found, err := s.latest(w)
	if err != nil || !found {
		return
	}
	writeJSON(w, http.StatusOK, snap.Zones)
}

func (s *Server) handleOffline(w http.ResponseWriter, r *http.Request) {
	snap, found, err := s.latest(w)
	if err != nil || !found {
		return
	}
	writeJSON(w, http.StatusOK, snap.OfflineAPs)
}

func (s *Server) handlePDFReport(w http.ResponseWriter, r *http.Request) {
	snap, found, err := s.latest(w)
	if err != nil || !found {
		return
	}

	pdf, err := s.Exporter.ExportVenueReport(snap)
	if err != nil {
		s.logger.Error("generating PDF report failed", zap.Error(err))
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=venue-report.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// latest loads the newest snapshot, writing the HTTP error responses
// for the missing and failure cases.
func (s *Server) latest(w http.ResponseWriter) (ports.CycleSnapshot, bool, error) {
	if s.Snapshots == nil {
		http.Error(w, "no snapshot store configured", http.StatusServiceUnavailable)
		return ports.CycleSnapshot{}, false, nil
	}
	snap, found, err := s.Snapshots.LatestCycle()
	if err != nil {
		s.logger.Error("loading latest cycle failed", zap.Error(err))
		http.Error(w, "snapshot unavailable", http.StatusInternalServerError)
		return ports.CycleSnapshot{}, false, err
	}
	if !found {
		http.Error(w, "no cycle collected yet", http.StatusNotFound)
		return ports.CycleSnapshot{}, false, nil
	}
	return snap, true, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
