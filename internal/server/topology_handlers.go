package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"netdash/internal/metrics"
	"netdash/internal/models"
	"netdash/internal/storage"
	"netdash/internal/topology"
)

type overviewResponse struct {
	GeneratedAt  time.Time             `json:"generated_at"`
	Availability metrics.Availability  `json:"availability"`
	Traffic      *models.TrafficSample `json:"traffic,omitempty"`
	Alerts       int                   `json:"alerts"`
}

type toggleResponse struct {
	Change   topology.Change   `json:"change"`
	Snapshot topology.Snapshot `json:"snapshot"`
}

func (s *Server) handleOverview(w http.ResponseWriter, _ *http.Request) {
	resp := overviewResponse{
		GeneratedAt:  time.Now().UTC(),
		Availability: metrics.ComputeAvailability(s.topology.Summary()),
		Alerts:       len(s.alerts.Recent(0)),
	}
	if latest, ok := s.traffic.Latest(); ok {
		resp.Traffic = &latest
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTopology(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.topology.Snapshot())
}

func (s *Server) handleDevices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.topology.Snapshot().Devices)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	change, ok := s.topology.Toggle(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown device")
		return
	}

	user, _ := currentUser(r)
	s.logger.Info("device toggled",
		zap.String("device", id),
		zap.String("from", string(change.From)),
		zap.String("to", string(change.To)),
		zap.Int("neighbors", len(change.Neighbors)),
		zap.String("user", user.Username))

	s.alerts.RecordChange(s.topology, change)
	snapshot := s.topology.Snapshot()
	s.metrics.RecordToggle(change.Device.Category)
	s.metrics.RecordTopology(snapshot.Summary)
	s.hub.broadcast(liveMessage{Type: liveTopology, Topology: &snapshot})

	writeJSON(w, http.StatusOK, toggleResponse{Change: change, Snapshot: snapshot})
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := storage.EncodeDocument(&buf, s.topology.Export(time.Now())); err != nil {
		s.logger.Error("export topology", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="network-topology.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleTraffic(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, s.traffic.Size())
	writeJSON(w, http.StatusOK, s.traffic.LastN(limit))
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if r.URL.Query().Get("limit") != "" {
		limit = parseLimit(r, 1<<20)
	}
	writeJSON(w, http.StatusOK, s.alerts.Recent(limit))
}
