package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	RecordActivity(w http.ResponseWriter, r *http.Request)
	ListActivity(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	GetDailyHours(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.CheckIn(r.Context())
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Checked in", resp)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.CheckOut(r.Context())
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Checked out", resp)
}

// StartBreak implements AttendanceHandler.
func (h *AttendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.StartBreak(r.Context())
	if err != nil {
		slog.Error("StartBreak service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Break started", resp)
}

// EndBreak implements AttendanceHandler.
func (h *AttendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.EndBreak(r.Context())
	if err != nil {
		slog.Error("EndBreak service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Break ended", resp)
}

// RecordActivity implements AttendanceHandler.
func (h *AttendanceHandlerImpl) RecordActivity(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordActivityRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordActivity decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.RecordActivity(r.Context(), req)
	if err != nil {
		slog.Error("RecordActivity service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Activity recorded", resp)
}

// ListActivity implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	resp, err := h.attendanceService.ListActivity(r.Context(), limit)
	if err != nil {
		slog.Error("ListActivity service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// GetStatus implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.GetStatus(r.Context())
	if err != nil {
		slog.Error("GetStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// GetDailyHours implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetDailyHours(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	resp, err := h.attendanceService.GetDailyHours(r.Context(), date)
	if err != nil {
		slog.Error("GetDailyHours service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
