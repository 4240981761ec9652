package attendance

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/johangly/gpu/internal/domain/attendance"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/pkg/sse"
	"github.com/johangly/gpu/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAttendanceRepo struct {
	events []attendance.Event

	lastFilter attendance.ActivityFilter
	total      int64
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, e attendance.Event) (attendance.Event, error) {
	e.ID = int64(len(f.events) + 1)
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeAttendanceRepo) GetLast(ctx context.Context, employeeID int64) (attendance.Event, error) {
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].EmployeeID == employeeID {
			return f.events[i], nil
		}
	}
	return attendance.Event{}, attendance.ErrNoActivity
}

func (f *fakeAttendanceRepo) ListRecent(ctx context.Context, employeeID int64, limit int) ([]attendance.Event, error) {
	var out []attendance.Event
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		if f.events[i].EmployeeID == employeeID {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ActivityFilter) ([]attendance.Activity, int64, error) {
	f.lastFilter = filter
	var out []attendance.Activity
	for _, e := range f.events {
		out = append(out, attendance.Activity{Event: e, FirstName: "Ana", LastName: "Pérez"})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, f.total, nil
}

func (f *fakeAttendanceRepo) ListBetween(ctx context.Context, from, to time.Time) ([]attendance.Event, error) {
	return nil, errors.New("not used")
}

type employeeLookup struct {
	employee.EmployeeRepository
	byID map[int64]employee.Employee
}

func (l employeeLookup) GetByIDForUpdate(ctx context.Context, id int64) (employee.Employee, error) {
	return l.GetByID(ctx, id)
}

func (l employeeLookup) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	e, ok := l.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

var caracas = time.FixedZone("VET", -4*60*60)

func setup() (*AttendanceServiceImpl, *fakeAttendanceRepo, *time.Time) {
	repo := &fakeAttendanceRepo{}
	staff := employeeLookup{byID: map[int64]employee.Employee{
		1: {ID: 1, FirstName: "Ana", LastName: "Pérez", Active: true},
		2: {ID: 2, FirstName: "Luis", LastName: "Gómez", Active: false},
	}}

	clock := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	svc := NewAttendanceService(passthroughTx{}, repo, staff, nil, caracas).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return clock }
	return svc, repo, &clock
}

func mark(svc *AttendanceServiceImpl, id int64, action attendance.Action) (attendance.EventResponse, error) {
	return svc.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{EmployeeID: id, Action: action})
}

func TestMarkAttendance_Alternates(t *testing.T) {
	svc, repo, clock := setup()

	resp, err := mark(svc, 1, attendance.ActionEntrada)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionEntrada, resp.Action)
	assert.Equal(t, caracas, resp.Timestamp.Location())
	assert.Equal(t, 8, resp.Timestamp.Hour())

	_, err = mark(svc, 1, attendance.ActionEntrada)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	*clock = clock.Add(8 * time.Hour)
	resp, err = mark(svc, 1, attendance.ActionSalida)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionSalida, resp.Action)

	_, err = mark(svc, 1, attendance.ActionSalida)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	require.Len(t, repo.events, 2)
	assert.Equal(t, time.UTC, repo.events[0].Timestamp.Location())
}

func TestMarkAttendance_PublishesToFeed(t *testing.T) {
	svc, _, _ := setup()
	svc.feed = sse.NewHub()
	events, cleanup := svc.feed.Subscribe(sse.TopicActivity)
	defer cleanup()

	_, err := mark(svc, 1, attendance.ActionEntrada)
	require.NoError(t, err)
	_, err = mark(svc, 1, attendance.ActionEntrada)
	require.Error(t, err)

	require.Len(t, events, 1)
	event := <-events
	assert.Equal(t, "attendance", event.Event)
	activity, ok := event.Data.(attendance.ActivityResponse)
	require.True(t, ok)
	assert.Equal(t, "Ana", activity.FirstName)
	assert.Equal(t, attendance.ActionEntrada, activity.Action)
}

func TestMarkAttendance_SalidaFirst(t *testing.T) {
	svc, repo, _ := setup()

	_, err := mark(svc, 1, attendance.ActionSalida)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
	assert.Empty(t, repo.events)
}

func TestMarkAttendance_Rejected(t *testing.T) {
	svc, repo, _ := setup()

	_, err := mark(svc, 2, attendance.ActionEntrada)
	assert.ErrorIs(t, err, attendance.ErrInactiveEmployee)

	_, err = mark(svc, 99, attendance.ActionEntrada)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = mark(svc, 1, attendance.Action("pausa"))
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	assert.Empty(t, repo.events)
}

func TestGetLastAndRecent(t *testing.T) {
	svc, _, clock := setup()
	ctx := context.Background()

	_, err := svc.GetLastActivity(ctx, 1)
	assert.ErrorIs(t, err, attendance.ErrNoActivity)

	for i := 0; i < 6; i++ {
		action := attendance.ActionEntrada
		if i%2 == 1 {
			action = attendance.ActionSalida
		}
		_, err := mark(svc, 1, action)
		require.NoError(t, err)
		*clock = clock.Add(time.Hour)
	}

	last, err := svc.GetLastActivity(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionSalida, last.Action)

	recent, err := svc.GetRecentActivities(ctx, 1, 4)
	require.NoError(t, err)
	require.Len(t, recent, 4)
	assert.Equal(t, last.ID, recent[0].ID)

	recent, err = svc.GetRecentActivities(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 6)
}

func TestListActivities(t *testing.T) {
	svc, repo, _ := setup()
	_, err := mark(svc, 1, attendance.ActionEntrada)
	require.NoError(t, err)
	repo.total = 101

	start, end := "2024-03-01", "2024-03-04"
	resp, err := svc.ListActivities(context.Background(), attendance.ActivityFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 50, resp.Limit)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Activities, 1)

	require.NotNil(t, repo.lastFilter.From)
	require.NotNil(t, repo.lastFilter.To)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, caracas), *repo.lastFilter.From)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, caracas), *repo.lastFilter.To)
}

func TestListActivities_InvalidRange(t *testing.T) {
	svc, _, _ := setup()

	start, end := "2024-03-05", "2024-03-01"
	_, err := svc.ListActivities(context.Background(), attendance.ActivityFilter{StartDate: &start, EndDate: &end})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}
