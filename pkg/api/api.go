// Package api exposes a tiny JSON-over-HTTP API for the rigconf daemon.
// It listens on a Unix domain socket (path comes from config) and delegates
// all business logic to internal/manager.Manager. No third-party HTTP
// framework is used, just net/http + encoding/json, keeping the binary
// small.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lc/rigconf/internal/buildinfo"
	"github.com/lc/rigconf/internal/manager"
	"github.com/lc/rigconf/internal/project"
	"github.com/lc/rigconf/internal/socket"
)

// SwitchRequest represents a request to switch the active project.
// With Persist set, the name is also stored as the durable default.
type SwitchRequest struct {
	Name    string `json:"name"`
	Persist bool   `json:"persist,omitempty"`
}

// ValueResponse carries one typed configuration value.
type ValueResponse struct {
	Key   string `json:"key"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// SectionResponse carries one section of the active project.
type SectionResponse struct {
	Name   string         `json:"name"`
	Keys   []string       `json:"keys"`
	Values map[string]any `json:"values"`
}

// StatusResponse represents the daemon status response.
type StatusResponse struct {
	Project string        `json:"project"`
	LoadID  string        `json:"load_id"`
	Loads   int64         `json:"loads"`
	Uptime  time.Duration `json:"uptime"`
	Version string        `json:"version"`
	Commit  string        `json:"commit"`
}

// -------- server -----------------------------------------------------

// Server handles HTTP API requests over a Unix domain socket.
type Server struct {
	mgr   *manager.Manager
	start time.Time
	mux   *http.ServeMux
	srv   *http.Server
}

// New creates a new API server around the given manager.
// It sets up the HTTP routes and returns a server ready to listen.
func New(mgr *manager.Manager) *Server {
	s := &Server{
		mgr:   mgr,
		start: time.Now(),
		mux:   http.NewServeMux(),
	}

	s.mux.HandleFunc("/v1/projects", s.handleProjects)
	s.mux.HandleFunc("/v1/project", s.handleSwitch)
	s.mux.HandleFunc("/v1/value", s.handleValue)
	s.mux.HandleFunc("/v1/section", s.handleSection)
	s.mux.HandleFunc("/v1/status", s.handleStatus)

	s.srv = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe starts the Unix-socket HTTP server.
func (s *Server) ListenAndServe(path string) error {
	ln, err := socket.Listen(path)
	if err != nil {
		return err
	}
	return s.srv.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

// handleProjects lists the available project names.
func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	names, err := s.mgr.AvailableProjects()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, names)
}

// handleSwitch loads a project, optionally persisting it as the default.
func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req SwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}

	var err error
	if req.Persist {
		err = s.mgr.SetDefaultProject(req.Name)
	} else {
		err = s.mgr.LoadProject(req.Name)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleValue looks up one key across the active project's sections.
func (s *Server) handleValue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "key required", http.StatusBadRequest)
		return
	}
	v, err := s.mgr.Lookup(key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, ValueResponse{Key: key, Kind: v.Kind().String(), Value: v.Interface()})
}

// handleSection returns one section of the active project.
func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}
	sec, err := s.mgr.Section(name)
	if err != nil {
		writeError(w, err)
		return
	}

	values := make(map[string]any, sec.Len())
	for _, k := range sec.Keys() {
		if v, ok := sec.Get(k); ok {
			values[k] = v.Interface()
		}
	}
	writeJSON(w, SectionResponse{Name: sec.Name(), Keys: sec.Keys(), Values: values})
}

// handleStatus returns the daemon status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	active := s.mgr.Active()
	writeJSON(w, StatusResponse{
		Project: active.Name(),
		LoadID:  active.LoadID(),
		Loads:   s.mgr.Loads(),
		Uptime:  time.Since(s.start),
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Error encoding response: %v", err), http.StatusInternalServerError)
	}
}

// writeError maps the configuration error taxonomy to HTTP status codes so
// clients can react by kind.
func writeError(w http.ResponseWriter, err error) {
	var (
		invalidName *project.InvalidNameError
		notFound    *project.NotFoundError
		keyMissing  *project.KeyNotFoundError
		secMissing  *project.SectionNotFoundError
		parseErr    *project.ParseError
	)
	switch {
	case errors.As(err, &invalidName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound), errors.As(err, &keyMissing), errors.As(err, &secMissing):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &parseErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
