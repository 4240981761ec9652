package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/johangly/gpu/internal/domain/report"
	"github.com/johangly/gpu/internal/handler/http/response"
	"github.com/johangly/gpu/internal/pkg/export"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportHandler interface {
	GetAttendanceReport(w http.ResponseWriter, r *http.Request)
	ExportAttendanceReportPDF(w http.ResponseWriter, r *http.Request)
	ExportAttendanceReportXLSX(w http.ResponseWriter, r *http.Request)
	ListArchivedReports(w http.ResponseWriter, r *http.Request)
	GetArchivedReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// reportRequest reads startDate/endDate from the query string, or from a
// JSON body on POST.
func reportRequest(r *http.Request) (report.AttendanceReportRequest, error) {
	req := report.AttendanceReportRequest{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
	}
	return req, nil
}

// GetAttendanceReport handles GET|POST /reports/attendance
func (h *reportHandlerImpl) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	req, err := reportRequest(r)
	if err != nil {
		slog.Error("GetAttendanceReport decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reportService.GenerateAttendanceReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reporte generado", result)
}

// ExportAttendanceReportPDF handles GET /reports/attendance/pdf
func (h *reportHandlerImpl) ExportAttendanceReportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "pdf", pdfContentType, export.RenderPDF)
}

// ExportAttendanceReportXLSX handles GET /reports/attendance/xlsx
func (h *reportHandlerImpl) ExportAttendanceReportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", xlsxContentType, export.RenderXLSX)
}

func (h *reportHandlerImpl) export(w http.ResponseWriter, r *http.Request, ext, contentType string, render func(report.AttendanceReport) ([]byte, error)) {
	req, err := reportRequest(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reportService.GenerateAttendanceReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := render(result)
	if err != nil {
		slog.Error("report export failed", "format", ext, "error", err)
		response.InternalServerError(w, "Failed to render report")
		return
	}

	response.File(w, fmt.Sprintf("asistencia_%s_%s.%s", req.StartDate, req.EndDate, ext), contentType, data)
}

// ListArchivedReports handles GET /reports/archive
func (h *reportHandlerImpl) ListArchivedReports(w http.ResponseWriter, r *http.Request) {
	dates, err := h.reportService.ListArchivedReports(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dates)
}

// GetArchivedReport handles GET /reports/archive/{date}
func (h *reportHandlerImpl) GetArchivedReport(w http.ResponseWriter, r *http.Request) {
	req := report.ArchivedReportRequest{Date: chi.URLParam(r, "date")}

	data, err := h.reportService.GetArchivedReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, fmt.Sprintf("asistencia-%s.pdf", req.Date), pdfContentType, data)
}
