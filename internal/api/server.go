// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lead-generator/internal/common/logger"
	"lead-generator/internal/crm"
	"lead-generator/internal/leads"
	"lead-generator/internal/report"
	"lead-generator/internal/usage"
)

// Server exposes the lead generation facade over HTTP. crmClient and
// tracker are optional.
type Server struct {
	service   *leads.Service
	crmClient *crm.Client
	tracker   *usage.Tracker
	logger    logger.Logger
	httpSrv   *http.Server
}

type generateRequest struct {
	Topic          string `json:"topic"`
	MaxLeads       int    `json:"max_leads"`
	AdditionalInfo string `json:"additional_info"`
}

type generateResponse struct {
	RequestID string            `json:"request_id"`
	Lead      *leads.LeadResult `json:"lead"`
	Report    string            `json:"report"`
}

type healthResponse struct {
	Status          string `json:"status"`
	EngineAvailable bool   `json:"engine_available"`
	Reason          string `json:"reason,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(addr string, service *leads.Service, crmClient *crm.Client, tracker *usage.Tracker, log logger.Logger) *Server {
	s := &Server{
		service:   service,
		crmClient: crmClient,
		tracker:   tracker,
		logger: log.WithFields(map[string]interface{}{
			"component": "api-server",
		}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/leads/generate", s.handleGenerate)
	mux.HandleFunc("/api/usage", s.handleUsage)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
	}

	return s
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("API server listening", map[string]interface{}{
		"addr": s.httpSrv.Addr,
	})
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	requestID := uuid.New().String()
	log := s.logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"topic":      req.Topic,
	})
	log.Info("lead generation requested", nil)

	result := s.service.Run(r.Context(), leads.Inputs{
		Topic:          req.Topic,
		MaxLeads:       req.MaxLeads,
		AdditionalInfo: req.AdditionalInfo,
	})

	if s.crmClient != nil && s.crmClient.Qualifies(result) {
		if err := s.crmClient.ExportLead(r.Context(), result); err != nil {
			log.Warn("CRM export skipped after failure", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	writeJSON(w, http.StatusOK, generateResponse{
		RequestID: requestID,
		Lead:      result,
		Report:    report.Markdown(req.Topic, []*leads.LeadResult{result}),
	})
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.tracker == nil {
		writeError(w, http.StatusNotFound, "usage tracking disabled")
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Totals())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	avail := s.service.Availability()
	resp := healthResponse{
		Status:          "ok",
		EngineAvailable: avail.Available,
		Reason:          avail.Reason,
	}
	if !avail.Available {
		resp.Status = "degraded"
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
