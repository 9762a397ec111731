package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"checklist/pkg/task"
)

// Options tune the HTTP surface.
type Options struct {
	// Prefix is prepended to every task route, e.g. "/api".
	Prefix string
	// Development exposes internal error messages in 500 responses.
	Development bool
	// AllowedOrigins lists the origins CORS accepts. Empty disables CORS headers.
	AllowedOrigins []string
}

// Server is the HTTP API server.
type Server struct {
	tasks    task.Store
	validate *validator.Validate
	prefix   string
	dev      bool
	mux      *http.ServeMux
	handler  http.Handler
}

// New creates a new Server.
func New(tasks task.Store, opts Options) *Server {
	s := &Server{
		tasks:    tasks,
		validate: newValidator(),
		prefix:   opts.Prefix,
		dev:      opts.Development,
		mux:      http.NewServeMux(),
	}
	s.routes()

	var h http.Handler = s.mux
	h = s.recoverPanics(h)
	h = logRequests(h)
	h = otelhttp.NewHandler(h, "checklist-api")
	if len(opts.AllowedOrigins) > 0 {
		h = cors.New(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}).Handler(h)
	}
	s.handler = h
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	p := s.prefix

	// Tasks
	s.mux.HandleFunc("GET "+p+"/tasks", s.handleTaskList)
	s.mux.HandleFunc("POST "+p+"/tasks", s.handleTaskCreate)
	s.mux.HandleFunc("GET "+p+"/tasks/{id}", s.handleTaskGet)
	s.mux.HandleFunc("PATCH "+p+"/tasks/{id}", s.handleTaskUpdate)
	s.mux.HandleFunc("DELETE "+p+"/tasks/{id}", s.handleTaskDelete)

	// System
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET "+p+"/status", s.handleStatus)

	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	})
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, dataResponse{Success: true, Data: v})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(task.TimestampLayout),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	n, err := s.tasks.Count(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int{"tasks": n})
}
