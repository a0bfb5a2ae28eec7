package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/pocketmoney/pkg/budget"
	"github.com/yurifrl/pocketmoney/pkg/report"
)

// Server exposes a loaded budget over a read-only JSON API. The repository
// is immutable, so handlers share it without locking.
type Server struct {
	repo   *budget.Repository
	logger *log.Logger
	mux    *http.ServeMux
}

// New creates a new HTTP server
func New(repo *budget.Repository, logger *log.Logger) *Server {
	s := &Server{
		repo:   repo,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/months", s.withLogging(s.handleMonths))
	s.mux.HandleFunc("/api/categories", s.withLogging(s.handleCategories))
	s.mux.HandleFunc("/api/amounts", s.withLogging(s.handleAmounts))
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	periods := s.repo.Periods()
	months := make([]string, 0, len(periods))
	for _, p := range periods {
		months = append(months, p.String())
	}
	if err := s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"months": months,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// Category is a visible subcategory in JSON responses.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MasterCategory is a visible master category with its visible subcategories.
type MasterCategory struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	SubCategories []Category `json:"sub_categories"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	masters := s.repo.VisibleMasterCategories()
	switch flow := r.URL.Query().Get("flow"); flow {
	case "":
	case "inflow":
		masters = s.repo.InflowMasterCategories()
	case "outflow":
		masters = s.repo.OutflowMasterCategories()
	default:
		s.respondError(w, r, http.StatusBadRequest, "flow must be inflow or outflow", nil)
		return
	}

	out := make([]MasterCategory, 0, len(masters))
	for _, m := range masters {
		mc := MasterCategory{ID: m.ID().String(), Name: m.Name(), Type: string(m.Type()), SubCategories: []Category{}}
		for _, sub := range m.VisibleSubCategories() {
			mc.SubCategories = append(mc.SubCategories, Category{ID: sub.ID().String(), Name: sub.Name()})
		}
		out = append(out, mc)
	}
	if err := s.writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"categories": out,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleAmounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "year required", err)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		s.respondError(w, r, http.StatusBadRequest, "month must be between 1 and 12", err)
		return
	}

	amounts := s.repo.CategoryAmounts(year, month)
	rep := report.New(amounts, s.repo)
	s.logger.Info("amounts computed", "month", amounts.Period(), "rows", len(rep.Rows), "unallocated", rep.Unallocated)

	if err := s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"report": rep,
		"budget": s.repo.MonthlyBudgetFor(year, month) != nil,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// --- helpers ---

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log request start/end and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
