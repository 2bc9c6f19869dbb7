package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

/* ===================== DTOs ====================== */

type createTaskReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
	Completed   bool   `json:"completed"`
}

// updateTaskReq is a merge patch: only fields present in the body replace
// stored values. Version, when sent, makes the write conditional.
type updateTaskReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Version     *int    `json:"version"`
}

/* ===================== Handlers ====================== */

// GET /api/tasks/{userID}
func (a *api) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	recs, err := a.store.TasksByUser(userID)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	out := make([]Task, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toPublic(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /api/tasks and POST /api/tasks/{userID}
func (a *api) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in createTaskReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	// Owner resolution: path parameter wins, then the body, then the
	// session cookie. Title is not validated here; the client upholds
	// that part of the contract.
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		userID = strings.TrimSpace(in.UserID)
	}
	if userID == "" {
		userID = a.userKeyFromRequest(r)
	}

	rec := TaskRecord{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		Version:     1,
	}
	if err := a.store.CreateTask(&rec); err != nil {
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusCreated, toPublic(rec))
}

// PUT /api/tasks/{id}
func (a *api) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in updateTaskReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	rec, err := a.store.UpdateTask(id, TaskPatch{
		Title:           in.Title,
		Description:     in.Description,
		Completed:       in.Completed,
		ExpectedVersion: in.Version,
	})
	switch {
	case errors.Is(err, ErrNotFound):
		errorJSON(w, http.StatusNotFound, "Task not found")
		return
	case errors.Is(err, ErrStaleVersion):
		errorJSON(w, http.StatusConflict, "Task was modified by another request")
		return
	case err != nil:
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, toPublic(rec))
}

// DELETE /api/tasks/{id}
// An If-Version header makes the delete conditional.
func (a *api) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var expected *int
	if v := strings.TrimSpace(r.Header.Get("If-Version")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid If-Version")
			return
		}
		expected = &n
	}

	err := a.store.DeleteTask(id, expected)
	switch {
	case errors.Is(err, ErrNotFound):
		errorJSON(w, http.StatusNotFound, "Task not found")
		return
	case errors.Is(err, ErrStaleVersion):
		errorJSON(w, http.StatusConflict, "Task was modified by another request")
		return
	case err != nil:
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}
