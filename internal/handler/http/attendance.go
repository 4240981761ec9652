package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/johangly/gpu/internal/domain/attendance"
	"github.com/johangly/gpu/internal/domain/auth"
	"github.com/johangly/gpu/internal/handler/http/response"
	"github.com/johangly/gpu/internal/pkg/jwt"
	"github.com/johangly/gpu/internal/pkg/sse"
)

const keepaliveInterval = 30 * time.Second

type AttendanceHandler interface {
	MarkAttendance(w http.ResponseWriter, r *http.Request)
	GetMyLastActivity(w http.ResponseWriter, r *http.Request)
	GetMyRecentActivities(w http.ResponseWriter, r *http.Request)
	GetEmployeeRecentActivities(w http.ResponseWriter, r *http.Request)
	ListActivities(w http.ResponseWriter, r *http.Request)
	StreamActivities(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	feed              *sse.Hub
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, feed *sse.Hub) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService, feed: feed}
}

// MarkAttendance implements AttendanceHandler. The punch is always
// recorded for the employee behind the token.
func (h *attendanceHandlerImpl) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = claims.EmployeeID

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

// GetMyLastActivity implements AttendanceHandler
func (h *attendanceHandlerImpl) GetMyLastActivity(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.attendanceService.GetLastActivity(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyRecentActivities implements AttendanceHandler
func (h *attendanceHandlerImpl) GetMyRecentActivities(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	results, err := h.attendanceService.GetRecentActivities(r.Context(), claims.EmployeeID, queryInt(r, "limit", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetEmployeeRecentActivities implements AttendanceHandler
func (h *attendanceHandlerImpl) GetEmployeeRecentActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Employee ID must be a positive integer", nil)
		return
	}

	results, err := h.attendanceService.GetRecentActivities(r.Context(), id, queryInt(r, "limit", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListActivities implements AttendanceHandler
func (h *attendanceHandlerImpl) ListActivities(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ActivityFilter{
		EmployeeID: queryInt64(r, "id_personal"),
		GroupID:    queryInt64(r, "id_grupo"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 50),
	}
	if action := queryString(r, "tipo_accion"); action != nil {
		a := attendance.Action(*action)
		filter.Action = &a
	}

	result, err := h.attendanceService.ListActivities(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Activities, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// StreamActivities pushes every new punch to the client as a server-sent event.
func (h *attendanceHandlerImpl) StreamActivities(w http.ResponseWriter, r *http.Request) {
	if h.feed == nil {
		response.HandleError(w, fmt.Errorf("activity feed not configured"))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.feed.Subscribe(sse.TopicActivity)
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("StreamActivities marshal error", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
