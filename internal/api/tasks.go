package api

import (
	"net/http"

	"checklist/pkg/task"
)

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tasks, err := s.tasks.List(r.Context(), task.Filter{
		Timeframe: task.Timeframe(q.Get("timeframe")),
		Date:      q.Get("date"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, tasks)
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	t, err := s.tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if t == nil {
		s.writeError(w, r, NotFoundError())
		return
	}
	writeData(w, http.StatusOK, t)
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.tasks.Create(r.Context(), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, t)
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.tasks.Update(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if t == nil {
		s.writeError(w, r, NotFoundError())
		return
	}
	writeData(w, http.StatusOK, t)
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	ok, err := s.tasks.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, NotFoundError())
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Task deleted successfully"})
}
