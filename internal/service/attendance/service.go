package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/johangly/gpu/internal/domain/attendance"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/pkg/database"
	"github.com/johangly/gpu/internal/pkg/sse"
)

const defaultRecentLimit = 10

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository

	// feed receives every recorded punch; nil disables publishing.
	feed *sse.Hub
	loc  *time.Location
	now  func() time.Time
}

func NewAttendanceService(tx database.Transactor, attendanceRepo attendance.AttendanceRepository, employeeRepo employee.EmployeeRepository, feed *sse.Hub, loc *time.Location) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		feed:                 feed,
		loc:                  loc,
		now:                  time.Now,
	}
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	var (
		created attendance.Event
		owner   employee.Employee
	)
	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		// punches of one employee are serialized on the personal row
		owner, err = a.EmployeeRepository.GetByIDForUpdate(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}
		if !owner.Active {
			return attendance.ErrInactiveEmployee
		}

		last, err := a.AttendanceRepository.GetLast(txCtx, req.EmployeeID)
		hasLast := true
		if err != nil {
			if !errors.Is(err, attendance.ErrNoActivity) {
				return fmt.Errorf("failed to get last activity: %w", err)
			}
			hasLast = false
		}

		switch req.Action {
		case attendance.ActionEntrada:
			if hasLast && last.Action == attendance.ActionEntrada {
				return attendance.ErrAlreadyClockedIn
			}
		case attendance.ActionSalida:
			if !hasLast || last.Action != attendance.ActionEntrada {
				return attendance.ErrNotClockedIn
			}
		}

		created, err = a.AttendanceRepository.Create(txCtx, attendance.Event{
			EmployeeID: req.EmployeeID,
			Action:     req.Action,
			Timestamp:  a.now().UTC(),
		})
		return err
	})
	if err != nil {
		return attendance.EventResponse{}, err
	}

	slog.Info("attendance marked",
		"employee_id", created.EmployeeID,
		"action", created.Action,
		"timestamp", created.Timestamp.In(a.loc).Format(time.RFC3339),
	)
	a.feed.Publish(sse.Event{
		Topic: sse.TopicActivity,
		Event: "attendance",
		Data: attendance.NewActivityResponse(attendance.Activity{
			Event:     created,
			FirstName: owner.FirstName,
			LastName:  owner.LastName,
			Cedula:    owner.Cedula,
			GroupName: owner.GroupName,
		}, a.loc),
	})
	return attendance.NewEventResponse(created, a.loc), nil
}

// GetLastActivity implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetLastActivity(ctx context.Context, employeeID int64) (attendance.EventResponse, error) {
	last, err := a.AttendanceRepository.GetLast(ctx, employeeID)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	return attendance.NewEventResponse(last, a.loc), nil
}

// GetRecentActivities implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRecentActivities(ctx context.Context, employeeID int64, limit int) ([]attendance.EventResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultRecentLimit
	}

	events, err := a.AttendanceRepository.ListRecent(ctx, employeeID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, attendance.NewEventResponse(e, a.loc))
	}
	return responses, nil
}

// ListActivities implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListActivities(ctx context.Context, filter attendance.ActivityFilter) (attendance.ListActivityResponse, error) {
	if err := filter.Validate(a.loc); err != nil {
		return attendance.ListActivityResponse{}, err
	}

	activities, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListActivityResponse{}, err
	}

	responses := make([]attendance.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, attendance.NewActivityResponse(activity, a.loc))
	}

	return attendance.ListActivityResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Activities: responses,
	}, nil
}
