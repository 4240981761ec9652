package cron

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/johangly/gpu/internal/domain/report"
	"github.com/johangly/gpu/internal/pkg/export"
	"github.com/johangly/gpu/internal/pkg/storage"
)

const pdfContentType = "application/pdf"

// ReportJobs archives the attendance report of each finished day as a PDF.
type ReportJobs struct {
	reportService report.ReportService
	archive       storage.FileStorage
	loc           *time.Location
	now           func() time.Time
}

func NewReportJobs(reportService report.ReportService, archive storage.FileStorage, loc *time.Location) *ReportJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportJobs{
		reportService: reportService,
		archive:       archive,
		loc:           loc,
		now:           time.Now,
	}
}

func (j *ReportJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("export_daily_attendance_report", interval, j.ExportDailyReport)
}

// ExportDailyReport stores yesterday's report under report.ArchiveKey.
// An existing archive is left untouched, so the job can run as often as
// needed.
func (j *ReportJobs) ExportDailyReport(ctx context.Context) error {
	today := j.now().In(j.loc)
	yesterday := time.Date(today.Year(), today.Month(), today.Day()-1, 0, 0, 0, 0, j.loc)
	return j.ExportReport(ctx, yesterday)
}

// ExportReport renders and stores the report of a single day.
func (j *ReportJobs) ExportReport(ctx context.Context, date time.Time) error {
	key := report.ArchiveKey(date)

	exists, err := j.archive.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check archive %s: %w", key, err)
	}
	if exists {
		slog.Debug("daily report already archived", "key", key)
		return nil
	}

	day := date.Format("2006-01-02")
	rep, err := j.reportService.GenerateAttendanceReport(ctx, report.AttendanceReportRequest{
		StartDate: day,
		EndDate:   day,
	})
	if err != nil {
		return fmt.Errorf("failed to generate report for %s: %w", day, err)
	}

	pdf, err := export.RenderPDF(rep)
	if err != nil {
		return err
	}

	if _, err := j.archive.Upload(ctx, bytes.NewReader(pdf), key, pdfContentType); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}

	slog.Info("daily report archived",
		"date", day,
		"key", key,
		"employees", rep.Statistics.TotalEmployees,
		"attendance_rate", rep.Statistics.AttendanceRate,
	)
	return nil
}
