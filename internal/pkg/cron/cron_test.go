package cron

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/johangly/gpu/internal/domain/report"
	"github.com/johangly/gpu/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportService struct {
	mu       sync.Mutex
	requests []report.AttendanceReportRequest
	err      error
}

func (f *fakeReportService) GenerateAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return report.AttendanceReport{}, f.err
	}
	return report.AttendanceReport{
		Days:       []report.Day{{DisplayDate: "03/03/2024", Weekday: "domingo", Attendances: []report.AttendanceStatus{}}},
		Statistics: report.Statistics{TotalDays: 1, AttendanceRate: "0.00%"},
	}, nil
}

func (f *fakeReportService) GetArchivedReport(ctx context.Context, req report.ArchivedReportRequest) ([]byte, error) {
	return nil, report.ErrArchiveNotFound
}

func (f *fakeReportService) ListArchivedReports(ctx context.Context) ([]string, error) {
	return nil, nil
}

var caracas = time.FixedZone("VET", -4*60*60)

func newJobs(t *testing.T, svc report.ReportService) (*ReportJobs, *storage.LocalStorage) {
	t.Helper()
	archive, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	jobs := NewReportJobs(svc, archive, caracas)
	// 02:30 UTC on the 4th is still the 3rd in Caracas
	jobs.now = func() time.Time { return time.Date(2024, 3, 4, 2, 30, 0, 0, time.UTC) }
	return jobs, archive
}

func TestExportDailyReport(t *testing.T) {
	svc := &fakeReportService{}
	jobs, archive := newJobs(t, svc)
	ctx := context.Background()

	require.NoError(t, jobs.ExportDailyReport(ctx))

	require.Len(t, svc.requests, 1)
	assert.Equal(t, report.AttendanceReportRequest{StartDate: "2024-03-02", EndDate: "2024-03-02"}, svc.requests[0])

	key := "reports/2024/03/asistencia-2024-03-02.pdf"
	rc, err := archive.Download(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(content[:5]))
}

func TestExportDailyReport_SkipsExistingArchive(t *testing.T) {
	svc := &fakeReportService{}
	jobs, _ := newJobs(t, svc)
	ctx := context.Background()

	require.NoError(t, jobs.ExportDailyReport(ctx))
	require.NoError(t, jobs.ExportDailyReport(ctx))
	assert.Len(t, svc.requests, 1)
}

func TestExportDailyReport_ServiceFailure(t *testing.T) {
	svc := &fakeReportService{err: report.ErrDataSourceFailure}
	jobs, archive := newJobs(t, svc)
	ctx := context.Background()

	err := jobs.ExportDailyReport(ctx)
	assert.ErrorIs(t, err, report.ErrDataSourceFailure)

	keys, err := archive.List(ctx, "reports")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestScheduler_RunOnceAndStop(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler()
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	s.AddJob("broken", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), calls.Load())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	// registering after start has no effect
	s.AddJob("late", time.Hour, func(ctx context.Context) error { return nil })
	assert.Len(t, s.jobs, 2)
}
