package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"taskmanager/m/domain"
)

// timeLayout is a fixed-width ISO-8601 form so stored timestamps sort
// lexicographically in creation order.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

func nowStamp() string {
	return time.Now().UTC().Format(timeLayout)
}

// Task handlers

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed,omitempty"`
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	userID := userIDFromContext(r)
	createdAt := nowStamp()

	var id int64
	err := h.db.QueryRowx(`INSERT INTO tasks (title, description, completed, created_at, user_id) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		req.Title, req.Description, req.Completed, createdAt, userID).Scan(&id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create task")
		return
	}

	respondJSON(w, http.StatusCreated, domain.Task{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		CreatedAt:   createdAt,
		UpdatedAt:   nil,
		UserID:      userID,
	})
}

// loadTask fetches the task in the URL and enforces owner-or-admin access.
// Existence is checked before authorization, so a non-owner probing a missing
// id sees 404, never 403. Returns false when a response was already written.
func (h *Handler) loadTask(w http.ResponseWriter, r *http.Request) (domain.Task, bool) {
	var task domain.Task
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return task, false
	}
	err = h.db.Get(&task, `SELECT id, title, description, completed, created_at, updated_at, user_id FROM tasks WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "task not found")
			return task, false
		}
		respondError(w, http.StatusInternalServerError, "unable to load task")
		return task, false
	}
	if !canAccess(userIDFromContext(r), roleFromContext(r), task.UserID) {
		respondError(w, http.StatusForbidden, "forbidden")
		return task, false
	}
	return task, true
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.loadTask(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, task)
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.loadTask(w, r)
	if !ok {
		return
	}

	// Pointer fields distinguish "absent" from an explicit zero value, so a
	// body of {"completed": false} clears the flag without touching title.
	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	updatedAt := nowStamp()
	_, err := h.db.Exec(`UPDATE tasks SET title = $1, description = $2, completed = $3, updated_at = $4 WHERE id = $5`,
		task.Title, task.Description, task.Completed, updatedAt, task.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update task")
		return
	}
	task.UpdatedAt = &updatedAt

	respondJSON(w, http.StatusOK, task)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.loadTask(w, r)
	if !ok {
		return
	}
	if _, err := h.db.Exec(`DELETE FROM tasks WHERE id = $1`, task.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete task")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"msg": "deleted"})
}

type listTasksResponse struct {
	Tasks   []domain.Task `json:"tasks"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Total   int           `json:"total"`
	Pages   int           `json:"pages"`
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	role := roleFromContext(r)

	page := positiveIntParam(r, "page", 1)
	perPage := positiveIntParam(r, "per_page", 10)

	var (
		args    []any
		clauses []string
	)

	// Only admins see the unfiltered table; everyone else is scoped to
	// their own tasks.
	if role != domain.RoleAdmin {
		args = append(args, userID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}

	switch strings.ToLower(r.URL.Query().Get("completed")) {
	case "true", "1":
		args = append(args, true)
		clauses = append(clauses, fmt.Sprintf("completed = $%d", len(args)))
	case "false", "0":
		args = append(args, false)
		clauses = append(clauses, fmt.Sprintf("completed = $%d", len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := h.db.Get(&total, `SELECT COUNT(*) FROM tasks`+where, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to count tasks")
		return
	}

	// The id tie-break keeps ordering stable for tasks created within the
	// same timestamp, so page concatenation never duplicates or drops rows.
	query := `SELECT id, title, description, completed, created_at, updated_at, user_id FROM tasks` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, perPage, (page-1)*perPage)

	tasks := []domain.Task{}
	if err := h.db.Select(&tasks, query, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list tasks")
		return
	}

	pages := 0
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}

	respondJSON(w, http.StatusOK, listTasksResponse{
		Tasks:   tasks,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
	})
}

func positiveIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return fallback
	}
	return val
}
