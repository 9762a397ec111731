package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
)

// Error is an HTTP-shaped failure. Handlers return it and writeError renders
// it inside the error envelope.
type Error struct {
	Status  int
	Message string
	Details string
	Cause   error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// ValidationError reports input that failed schema checks.
func ValidationError(details string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: "Validation error", Details: details}
}

// NotFoundError reports a task id that does not exist.
func NotFoundError() *Error {
	return &Error{Status: http.StatusNotFound, Message: "Task not found"}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeError renders err. Anything that is not an *Error is an internal
// failure whose message is only exposed in development.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.Status, errorResponse{Error: apiErr.Message, Details: apiErr.Details})
		return
	}

	log.Printf("api: %s %s: %v", r.Method, r.URL.Path, err)
	resp := errorResponse{Error: "Internal server error"}
	if s.dev {
		resp.Details = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}
