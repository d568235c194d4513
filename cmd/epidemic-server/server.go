package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Ashboy64/disease-spread/internal/driver"
	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"
	"github.com/Ashboy64/disease-spread/internal/stream"

	"github.com/charmbracelet/log"
)

// Server exposes a running simulation over HTTP.
type Server struct {
	driver *driver.Driver
	hub    *stream.Hub
	logger *log.Logger
}

// NewServer wires the handlers to d. hub may be nil, which disables /ws.
func NewServer(d *driver.Driver, hub *stream.Hub, logger *log.Logger) *Server {
	return &Server{driver: d, hub: hub, logger: logger}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /counts", s.handleCounts)
	mux.HandleFunc("POST /pause", s.handlePause)
	mux.HandleFunc("POST /resume", s.handleResume)
	mux.HandleFunc("POST /step", s.handleStep)
	mux.HandleFunc("POST /cell", s.handleCell)
	if s.hub != nil {
		mux.Handle("GET /ws", s.hub)
	}
	return mux
}

type statusResponse struct {
	Tick   int             `json:"tick"`
	Paused bool            `json:"paused"`
	Counts epidemic.Counts `json:"counts"`
}

// cellRequest edits one cell. State is a file state code (0 Dead through
// 4 Recovered); a missing state cycles the cell instead.
type cellRequest struct {
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	State *int `json:"state,omitempty"`
}

type cellResponse struct {
	Row    int             `json:"row"`
	Col    int             `json:"col"`
	State  string          `json:"state"`
	Code   int             `json:"code"`
	Counts epidemic.Counts `json:"counts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.driver.Pause()
	s.writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.driver.Resume()
	s.writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	if _, err := s.driver.StepOnce(); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleCell(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req cellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	var resp cellResponse
	err := s.driver.Edit(func(world *epidemic.World) error {
		var ok bool
		if req.State == nil {
			ok = world.CycleCell(req.Col, req.Row)
		} else {
			state, err := epidemic.ParseState(*req.State)
			if err != nil {
				return badRequest{err}
			}
			ok = world.SetCellState(req.Row, req.Col, state)
		}
		if !ok {
			return badRequest{fmt.Errorf("cell (%d, %d) is outside the grid", req.Row, req.Col)}
		}
		cell, _ := world.CellAt(req.Row, req.Col)
		resp = cellResponse{Row: req.Row, Col: req.Col, State: cell.State.String(), Code: cell.State.Code(), Counts: world.Counts()}
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("cell edited", "row", req.Row, "col", req.Col, "state", resp.State)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) status() statusResponse {
	tick, counts := s.driver.Counts()
	return statusResponse{Tick: tick, Paused: s.driver.Paused(), Counts: counts}
}

type badRequest struct{ error }

func (b badRequest) Unwrap() error { return b.error }

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var bad badRequest
	switch {
	case errors.As(err, &bad):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, driver.ErrRunning):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, driver.ErrClosed):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		s.logger.Error("request failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}
