// Package remotetest runs an in-memory stand-in for the content backend.
package remotetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/webark/webark/content"
)

// Server is an httptest server speaking the backend's work and services API
// under /api.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	work     []content.WorkItem
	services []content.Service
	failWith int
	nextID   int
	requests []string
}

// NewServer starts a backend seeded with the given records.
func NewServer(work []content.WorkItem, services []content.Service) *Server {
	s := &Server{
		work:     append([]content.WorkItem(nil), work...),
		services: append([]content.Service(nil), services...),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// BaseURL is the API root to hand to remote.New.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// FailWith makes every following request answer with code; 0 restores
// normal behaviour.
func (s *Server) FailWith(code int) {
	s.mu.Lock()
	s.failWith = code
	s.mu.Unlock()
}

// Requests returns "METHOD /path" for every request received so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Work returns the current work items.
func (s *Server) Work() []content.WorkItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]content.WorkItem(nil), s.work...)
}

// Services returns the current services.
func (s *Server) Services() []content.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]content.Service(nil), s.services...)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)

	if s.failWith != 0 {
		http.Error(w, `{"error":"injected failure"}`, s.failWith)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api")
	resource, id, _ := strings.Cut(strings.Trim(path, "/"), "/")

	switch {
	case resource == "work" && id == "" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"works": s.work})
	case resource == "work" && id == "" && r.Method == http.MethodPost:
		var item content.WorkItem
		if !readJSON(w, r, &item) {
			return
		}
		s.nextID++
		item.ID = fmt.Sprintf("work-%d", s.nextID)
		s.work = append(s.work, item)
		writeJSON(w, http.StatusCreated, item)
	case resource == "work" && id != "" && r.Method == http.MethodPut:
		var item content.WorkItem
		if !readJSON(w, r, &item) {
			return
		}
		item.ID = id
		for i := range s.work {
			if s.work[i].ID == id {
				s.work[i] = item
				writeJSON(w, http.StatusOK, item)
				return
			}
		}
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	case resource == "work" && id != "" && r.Method == http.MethodDelete:
		for i := range s.work {
			if s.work[i].ID == id {
				s.work = append(s.work[:i], s.work[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	case resource == "services" && id == "" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"services": s.services})
	case resource == "services" && id == "" && r.Method == http.MethodPost:
		var svc content.Service
		if !readJSON(w, r, &svc) {
			return
		}
		s.services = append(s.services, svc)
		writeJSON(w, http.StatusCreated, svc)
	case resource == "services" && id != "" && r.Method == http.MethodPut:
		var svc content.Service
		if !readJSON(w, r, &svc) {
			return
		}
		svc.ID = id
		for i := range s.services {
			if s.services[i].ID == id {
				s.services[i] = svc
				writeJSON(w, http.StatusOK, svc)
				return
			}
		}
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	default:
		http.Error(w, `{"error":"no route"}`, http.StatusNotFound)
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, `{"error":"bad json"}`, http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
