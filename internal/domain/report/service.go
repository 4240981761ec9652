package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// GenerateAttendanceReport reconciles clock events against group schedules
	// for every day of the requested range.
	GenerateAttendanceReport(ctx context.Context, req AttendanceReportRequest) (AttendanceReport, error)

	// GetArchivedReport returns the PDF stored by the daily export job.
	GetArchivedReport(ctx context.Context, req ArchivedReportRequest) ([]byte, error)

	// ListArchivedReports returns the dates (YYYY-MM-DD) that have an archived PDF, oldest first.
	ListArchivedReports(ctx context.Context) ([]string, error)
}
