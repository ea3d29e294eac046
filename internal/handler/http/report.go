package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/emsuite/ems-backend-go/internal/domain/auth"
	"github.com/emsuite/ems-backend-go/internal/domain/report"
	"github.com/emsuite/ems-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MyHours(w http.ResponseWriter, r *http.Request)
	MyManHours(w http.ResponseWriter, r *http.Request)
	EmployeeHours(w http.ResponseWriter, r *http.Request)
	EmployeeManHours(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// MyHours implements ReportHandler.
func (h *ReportHandlerImpl) MyHours(w http.ResponseWriter, r *http.Request) {
	employeeID, err := auth.EmployeeFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.hours(w, r, employeeID)
}

// MyManHours implements ReportHandler.
func (h *ReportHandlerImpl) MyManHours(w http.ResponseWriter, r *http.Request) {
	employeeID, err := auth.EmployeeFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.manHours(w, r, employeeID)
}

// EmployeeHours implements ReportHandler.
func (h *ReportHandlerImpl) EmployeeHours(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}
	h.hours(w, r, employeeID)
}

// EmployeeManHours implements ReportHandler.
func (h *ReportHandlerImpl) EmployeeManHours(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}
	h.manHours(w, r, employeeID)
}

func (h *ReportHandlerImpl) hours(w http.ResponseWriter, r *http.Request, employeeID int64) {
	resp, err := h.reportService.Hours(r.Context(), employeeID, queryFromRequest(r))
	if err != nil {
		slog.Error("Hours report service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *ReportHandlerImpl) manHours(w http.ResponseWriter, r *http.Request, employeeID int64) {
	resp, err := h.reportService.ManHours(r.Context(), employeeID, queryFromRequest(r))
	if err != nil {
		slog.Error("ManHours report service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func queryFromRequest(r *http.Request) report.Query {
	query := r.URL.Query()
	return report.Query{
		Period:    query.Get("period"),
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}
}
