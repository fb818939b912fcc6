package adapthttp

import (
	"errors"
	"net/http"

	"emberguard/internal/app"
)

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	status := app.TaskStatus(r.URL.Query().Get("status"))
	switch status {
	case app.TaskStatusAll, app.TaskStatusCompleted, app.TaskStatusPending:
	default:
		writeError(w, http.StatusBadRequest, errors.New("status must be completed or pending"))
		return
	}
	items, err := s.tasks.List(r.Context(), workspaceID(r), status)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	detail, err := s.tasks.Get(r.Context(), workspaceID(r), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleTaskCompletion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Completed *bool `json:"completed"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Completed == nil {
		writeError(w, http.StatusBadRequest, errMissingField("completed"))
		return
	}
	task, err := s.tasks.SetCompletion(r.Context(), workspaceID(r), r.PathValue("id"), *req.Completed)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	p, err := s.tasks.Progress(r.Context(), workspaceID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
