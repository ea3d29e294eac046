package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emsuite/ems-backend-go/internal/domain/task"
	"github.com/emsuite/ems-backend-go/internal/handler/http/response"
)

type TaskHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListMineToday(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	CreateProject(w http.ResponseWriter, r *http.Request)
	ListProjects(w http.ResponseWriter, r *http.Request)
}

type TaskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &TaskHandlerImpl{taskService: taskService}
}

// Create implements TaskHandler.
func (h *TaskHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req task.CreateTaskRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create task decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.taskService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create task service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Task created", resp)
}

// ListMine implements TaskHandler.
func (h *TaskHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	resp, err := h.taskService.ListMine(r.Context())
	if err != nil {
		slog.Error("ListMine tasks service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// ListMineToday implements TaskHandler.
func (h *TaskHandlerImpl) ListMineToday(w http.ResponseWriter, r *http.Request) {
	resp, err := h.taskService.ListMineToday(r.Context())
	if err != nil {
		slog.Error("ListMineToday tasks service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// UpdateStatus implements TaskHandler.
func (h *TaskHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req task.UpdateStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "taskID")

	resp, err := h.taskService.UpdateStatus(r.Context(), req)
	if err != nil {
		slog.Error("UpdateStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Task status updated", resp)
}

// CreateProject implements TaskHandler.
func (h *TaskHandlerImpl) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req task.CreateProjectRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateProject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.taskService.CreateProject(r.Context(), req)
	if err != nil {
		slog.Error("CreateProject service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Project created", resp)
}

// ListProjects implements TaskHandler.
func (h *TaskHandlerImpl) ListProjects(w http.ResponseWriter, r *http.Request) {
	resp, err := h.taskService.ListProjects(r.Context())
	if err != nil {
		slog.Error("ListProjects service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
