package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/johangly/gpu/internal/domain/attendance"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/domain/group"
	"github.com/johangly/gpu/internal/domain/report"
	"github.com/johangly/gpu/internal/pkg/storage"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	source     report.DataSource
	archive    storage.FileStorage
	reconciler Reconciler
	loc        *time.Location
}

func NewReportService(source report.DataSource, archive storage.FileStorage, loc *time.Location, weekday WeekdayFunc) report.ReportService {
	reconciler := NewReconciler(loc, weekday)
	return &ReportServiceImpl{
		source:     source,
		archive:    archive,
		reconciler: reconciler,
		loc:        reconciler.Location,
	}
}

// GenerateAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, errors.Join(report.ErrInvalidDateRange, err)
	}

	days, err := DateRange(req.StartDate, req.EndDate, s.loc)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	// [first day 00:00:00, last day 23:59:59.999999999]
	first := days[0].Date
	last := days[len(days)-1].Date
	until := last.AddDate(0, 0, 1).Add(-time.Nanosecond)

	var (
		employees []employee.Employee
		groups    []group.Group
		events    []attendance.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if employees, err = s.source.GetActiveEmployeesWithGroup(gctx); err != nil {
			return fmt.Errorf("active employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if groups, err = s.source.GetGroupsWithSchedules(gctx); err != nil {
			return fmt.Errorf("group schedules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if events, err = s.source.GetAttendanceEvents(gctx, first, until); err != nil {
			return fmt.Errorf("attendance events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return report.AttendanceReport{}, fmt.Errorf("%w: %w", report.ErrDataSourceFailure, err)
	}

	index := NewScheduleIndex(groups)
	reconciled := s.reconciler.Reconcile(days, index, employees, events)
	stats := Summarize(reconciled, index.CountCovered(employees))

	return Assemble(first, last, reconciled, stats, index), nil
}

// GetArchivedReport implements report.ReportService.
func (s *ReportServiceImpl) GetArchivedReport(ctx context.Context, req report.ArchivedReportRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, s.loc)
	if err != nil {
		return nil, err
	}

	rc, err := s.archive.Download(ctx, report.ArchiveKey(date))
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, report.ErrArchiveNotFound
		}
		return nil, fmt.Errorf("failed to open archived report: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read archived report: %w", err)
	}
	return data, nil
}

// ListArchivedReports implements report.ReportService.
func (s *ReportServiceImpl) ListArchivedReports(ctx context.Context) ([]string, error) {
	keys, err := s.archive.List(ctx, report.ArchivePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived reports: %w", err)
	}

	dates := make([]string, 0, len(keys))
	for _, key := range keys {
		if date, ok := report.ArchiveDate(key); ok {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}
