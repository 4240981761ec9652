package report

import (
	"testing"
	"time"

	"github.com/johangly/gpu/internal/domain/attendance"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/domain/group"
	"github.com/johangly/gpu/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var caracas = time.FixedZone("UTC-04:00", -4*3600)

func at(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04", value, caracas)
	if err != nil {
		panic(err)
	}
	return t
}

func day(value string) time.Time {
	t, err := time.ParseInLocation(dateLayout, value, caracas)
	if err != nil {
		panic(err)
	}
	return t
}

func scheduledGroup(id int64, name string, weekdays ...int) group.Group {
	g := group.Group{ID: id, Name: name, IsScheduled: true}
	for i, wd := range weekdays {
		g.Schedule = append(g.Schedule, group.ScheduleEntry{
			ID: id*10 + int64(i), GroupID: id, DayOfWeek: wd, StartTime: "08:00", EndTime: "16:00",
		})
	}
	return g
}

func staff(id int64, nombre, apellido string, g group.Group) employee.Employee {
	return employee.Employee{
		ID: id, FirstName: nombre, LastName: apellido,
		GroupID: g.ID, GroupName: g.Name, Active: true, Role: employee.RoleEmployee,
	}
}

func TestScheduleWeekday(t *testing.T) {
	cases := []struct {
		date       string
		iso        int
		legacy     int
		weekdayStr string
	}{
		{"2025-01-05", 7, 1, "domingo"},
		{"2025-01-06", 1, 2, "lunes"},
		{"2025-01-07", 2, 3, "martes"},
		{"2025-01-01", 3, 4, "miércoles"},
		{"2025-01-02", 4, 5, "jueves"},
		{"2025-01-03", 5, 6, "viernes"},
		{"2025-01-04", 6, 7, "sábado"},
	}
	for _, c := range cases {
		d := day(c.date)
		assert.Equal(t, c.iso, ScheduleWeekday(d), c.date)
		assert.Equal(t, c.legacy, LegacyScheduleWeekday(d), c.date)
		assert.Equal(t, c.weekdayStr, WeekdayName(d), c.date)
	}
}

func TestWeekdayConvention(t *testing.T) {
	sunday := day("2025-01-05")

	fn, err := WeekdayConvention("iso")
	require.NoError(t, err)
	assert.Equal(t, 7, fn(sunday))

	fn, err = WeekdayConvention("")
	require.NoError(t, err)
	assert.Equal(t, 7, fn(sunday))

	fn, err = WeekdayConvention("legacy")
	require.NoError(t, err)
	assert.Equal(t, 1, fn(sunday))

	_, err = WeekdayConvention("gregorian")
	assert.Error(t, err)
}

func TestDateRange(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2025-01-01", "2025-01-01", 1},
		{"2025-01-01", "2025-01-31", 31},
		{"2024-12-30", "2025-01-02", 4},
		{"2024-02-27", "2024-03-01", 4},
		{"2025-01-01", "2025-12-31", 365},
	}

	for _, c := range cases {
		days, err := DateRange(c.start, c.end, caracas)
		require.NoError(t, err)
		require.Len(t, days, c.want, "%s..%s", c.start, c.end)

		assert.Equal(t, c.start, days[0].Date.Format(dateLayout))
		assert.Equal(t, c.end, days[len(days)-1].Date.Format(dateLayout))
		for i := 1; i < len(days); i++ {
			assert.Equal(t, days[i-1].Date.AddDate(0, 0, 1), days[i].Date)
		}
		for _, d := range days {
			assert.NotNil(t, d.Attendances)
			assert.Empty(t, d.Attendances)
		}
	}
}

func TestDateRange_Display(t *testing.T) {
	days, err := DateRange("2025-01-01", "2025-01-02", caracas)
	require.NoError(t, err)

	assert.Equal(t, "01/01/2025", days[0].DisplayDate)
	assert.Equal(t, "miércoles", days[0].Weekday)
	assert.Equal(t, "02/01/2025", days[1].DisplayDate)
	assert.Equal(t, "jueves", days[1].Weekday)
}

func TestDateRange_Invalid(t *testing.T) {
	for _, c := range [][2]string{
		{"2025-01-02", "2025-01-01"},
		{"", "2025-01-01"},
		{"2025-01-01", "31/01/2025"},
		{"2025-02-30", "2025-03-01"},
	} {
		days, err := DateRange(c[0], c[1], caracas)
		assert.ErrorIs(t, err, report.ErrInvalidDateRange, "%v", c)
		assert.Nil(t, days)
	}
}

func TestNewScheduleIndex(t *testing.T) {
	docente := scheduledGroup(2, "Docente", 1, 2, 3, 4, 5)
	obrero := scheduledGroup(3, "Obrero", 6)
	admin := scheduledGroup(1, "Administrativo", 1, 2, 3, 4, 5)
	admin.IsScheduled = false
	empty := group.Group{ID: 4, Name: "Vacaciones", IsScheduled: true}

	idx := NewScheduleIndex([]group.Group{obrero, admin, empty, docente})

	require.Len(t, idx.Groups(), 2)
	assert.Equal(t, int64(2), idx.Groups()[0].ID)
	assert.Equal(t, int64(3), idx.Groups()[1].ID)

	assert.True(t, idx.Expects(2, 3))
	assert.False(t, idx.Expects(2, 6))
	assert.True(t, idx.Expects(3, 6))
	assert.False(t, idx.Expects(1, 1), "unscheduled group is never expected")
	assert.False(t, idx.Expects(4, 1), "group without entries is never expected")
	assert.False(t, idx.Expects(99, 1))

	assert.True(t, idx.Covers(2))
	assert.False(t, idx.Covers(1))
	assert.False(t, idx.Covers(4))
}

func TestNewScheduleIndex_DuplicateWeekday(t *testing.T) {
	g := scheduledGroup(1, "Docente", 3, 3)
	idx := NewScheduleIndex([]group.Group{g})

	assert.True(t, idx.Expects(1, 3))
	assert.Len(t, idx.Groups()[0].Schedule, 2)
}

func TestReconcile_PerDayCount(t *testing.T) {
	docente := scheduledGroup(1, "Docente", 1, 2, 3, 4, 5)
	obrero := scheduledGroup(2, "Obrero", 6, 7)
	idx := NewScheduleIndex([]group.Group{docente, obrero})

	employees := []employee.Employee{
		staff(1, "Ana", "Pérez", docente),
		staff(2, "Luis", "Gómez", docente),
		staff(3, "Juan", "Rojas", obrero),
	}
	inactive := staff(4, "Eva", "Díaz", docente)
	inactive.Active = false
	employees = append(employees, inactive)

	days, err := DateRange("2025-01-01", "2025-01-07", caracas)
	require.NoError(t, err)

	result := NewReconciler(caracas, ScheduleWeekday).Reconcile(days, idx, employees, nil)
	require.Len(t, result, 7)

	for _, d := range result {
		wd := ScheduleWeekday(d.Date)
		expected := 0
		for _, e := range employees {
			if e.Active && idx.Expects(e.GroupID, wd) {
				expected++
			}
		}
		assert.Len(t, d.Attendances, expected, d.DisplayDate)
		for _, s := range d.Attendances {
			assert.Equal(t, report.StateAbsent, s.State)
			assert.False(t, s.Attended)
			assert.Nil(t, s.ClockIn)
			assert.Nil(t, s.ClockOut)
		}
	}

	// input days stay untouched
	for _, d := range days {
		assert.Empty(t, d.Attendances)
	}
}

func TestReconcile_OrderedBySurname(t *testing.T) {
	docente := scheduledGroup(1, "Docente", 3)
	idx := NewScheduleIndex([]group.Group{docente})
	employees := []employee.Employee{
		staff(3, "Zoe", "Rojas", docente),
		staff(1, "Ana", "Pérez", docente),
		staff(2, "Luis", "Alvarado", docente),
	}

	days, err := DateRange("2025-01-01", "2025-01-01", caracas)
	require.NoError(t, err)
	result := NewReconciler(caracas, nil).Reconcile(days, idx, employees, nil)

	require.Len(t, result[0].Attendances, 3)
	assert.Equal(t, int64(2), result[0].Attendances[0].EmployeeID)
	assert.Equal(t, int64(1), result[0].Attendances[1].EmployeeID)
	assert.Equal(t, int64(3), result[0].Attendances[2].EmployeeID)
}

func TestReconcile_States(t *testing.T) {
	docente := scheduledGroup(1, "Docente", 3)
	idx := NewScheduleIndex([]group.Group{docente})
	employees := []employee.Employee{
		staff(1, "Ana", "A", docente),
		staff(2, "Bea", "B", docente),
		staff(3, "Cruz", "C", docente),
		staff(4, "Dani", "D", docente),
	}
	events := []attendance.Event{
		{ID: 1, EmployeeID: 1, Action: attendance.ActionEntrada, Timestamp: at("2025-01-01T08:05")},
		{ID: 2, EmployeeID: 1, Action: attendance.ActionSalida, Timestamp: at("2025-01-01T16:02")},
		{ID: 3, EmployeeID: 2, Action: attendance.ActionEntrada, Timestamp: at("2025-01-01T07:58")},
		{ID: 4, EmployeeID: 3, Action: attendance.ActionSalida, Timestamp: at("2025-01-01T16:00")},
	}

	days, err := DateRange("2025-01-01", "2025-01-01", caracas)
	require.NoError(t, err)
	result := NewReconciler(caracas, nil).Reconcile(days, idx, employees, events)

	got := map[int64]report.AttendanceStatus{}
	for _, s := range result[0].Attendances {
		got[s.EmployeeID] = s
	}

	assert.Equal(t, report.StateComplete, got[1].State)
	assert.True(t, got[1].Attended)
	assert.Equal(t, report.StateNoClockOut, got[2].State)
	assert.True(t, got[2].Attended)
	assert.Nil(t, got[2].ClockOut)
	assert.Equal(t, report.StateNoClockIn, got[3].State)
	assert.True(t, got[3].Attended)
	assert.Nil(t, got[3].ClockIn)
	assert.Equal(t, report.StateAbsent, got[4].State)
	assert.False(t, got[4].Attended)
}

func TestReconcile_EarliestPunchWins(t *testing.T) {
	docente := scheduledGroup(1, "Docente", 3)
	idx := NewScheduleIndex([]group.Group{docente})
	employees := []employee.Employee{staff(1, "Ana", "Pérez", docente)}

	// deliberately out of order
	events := []attendance.Event{
		{ID: 5, EmployeeID: 1, Action: attendance.ActionSalida, Timestamp: at("2025-01-01T17:30")},
		{ID: 2, EmployeeID: 1, Action: attendance.ActionEntrada, Timestamp: at("2025-01-01T13:00")},
		{ID: 1, EmployeeID: 1, Action: attendance.ActionEntrada, Timestamp: at("2025-01-01T08:05")},
		{ID: 3, EmployeeID: 1, Action: attendance.ActionSalida, Timestamp: at("2025-01-01T12:00")},
	}

	days, err := DateRange("2025-01-01", "2025-01-01", caracas)
	require.NoError(t, err)
	result := NewReconciler(caracas, nil).Reconcile(days, idx, employees, events)

	status := result[0].Attendances[0]
	require.NotNil(t, status.ClockIn)
	require.NotNil(t, status.ClockOut)
	assert.True(t, status.ClockIn.Equal(at("2025-01-01T08:05")))
	assert.True(t, status.ClockOut.Equal(at("2025-01-01T12:00")))
	assert.Equal(t, report.StateComplete, status.State)
}

func TestReconcile_DayBoundaryUsesConfiguredOffset(t *testing.T) {
	docente := scheduledGroup(1, "Docente", 3, 4)
	idx := NewScheduleIndex([]group.Group{docente})
	employees := []employee.Employee{staff(1, "Ana", "Pérez", docente)}

	// 02:30 UTC on Jan 2 is 22:30 on Jan 1 at -04:00
	events := []attendance.Event{
		{ID: 1, EmployeeID: 1, Action: attendance.ActionEntrada, Timestamp: time.Date(2025, 1, 2, 2, 30, 0, 0, time.UTC)},
	}

	days, err := DateRange("2025-01-01", "2025-01-02", caracas)
	require.NoError(t, err)
	result := NewReconciler(caracas, nil).Reconcile(days, idx, employees, events)

	assert.Equal(t, report.StateNoClockOut, result[0].Attendances[0].State)
	assert.Equal(t, report.StateAbsent, result[1].Attendances[0].State)

	_, offset := result[0].Attendances[0].ClockIn.Zone()
	assert.Equal(t, -4*3600, offset)
}

func TestReconcile_LegacyConvention(t *testing.T) {
	// stored as 4 = Wednesday under the old client numbering
	g := scheduledGroup(1, "Docente", 4)
	idx := NewScheduleIndex([]group.Group{g})
	employees := []employee.Employee{staff(1, "Ana", "Pérez", g)}

	days, err := DateRange("2025-01-01", "2025-01-01", caracas)
	require.NoError(t, err)

	legacy := NewReconciler(caracas, LegacyScheduleWeekday).Reconcile(days, idx, employees, nil)
	assert.Len(t, legacy[0].Attendances, 1)

	iso := NewReconciler(caracas, ScheduleWeekday).Reconcile(days, idx, employees, nil)
	assert.Empty(t, iso[0].Attendances)
}

func TestSummarize(t *testing.T) {
	mk := func(states ...report.State) report.Day {
		d := report.Day{Attendances: []report.AttendanceStatus{}}
		for _, s := range states {
			d.Attendances = append(d.Attendances, report.AttendanceStatus{State: s, Attended: s != report.StateAbsent})
		}
		return d
	}

	days := []report.Day{
		mk(report.StateComplete, report.StateAbsent, report.StateNoClockOut),
		mk(report.StateAbsent, report.StateAbsent, report.StateNoClockIn),
		mk(report.StateAbsent, report.StateAbsent, report.StateAbsent),
	}

	stats := Summarize(days, 3)
	assert.Equal(t, 3, stats.TotalDays)
	assert.Equal(t, 3, stats.TotalEmployees)
	assert.Equal(t, 3, stats.TotalAttendances)
	assert.Equal(t, "33.33%", stats.AttendanceRate)

	stats = Summarize(days[:2], 3)
	assert.Equal(t, "50.00%", stats.AttendanceRate)

	stats = Summarize(days[:1], 3)
	assert.Equal(t, "66.67%", stats.AttendanceRate)
}

func TestSummarize_ZeroDenominator(t *testing.T) {
	stats := Summarize([]report.Day{{Attendances: []report.AttendanceStatus{}}}, 0)
	assert.Equal(t, "0.00%", stats.AttendanceRate)
	assert.Equal(t, 0, stats.TotalAttendances)

	stats = Summarize(nil, 5)
	assert.Equal(t, "0.00%", stats.AttendanceRate)
	assert.Equal(t, 0, stats.TotalDays)
}

func TestAssemble(t *testing.T) {
	docente := scheduledGroup(2, "Docente", 5, 1)
	idx := NewScheduleIndex([]group.Group{docente})

	out := Assemble(day("2025-01-01"), day("2025-01-02"), nil, report.Statistics{AttendanceRate: "0.00%"}, idx)

	assert.NotNil(t, out.Days)
	require.Len(t, out.Groups, 1)
	assert.Equal(t, "Docente", out.Groups[0].Name)
	require.Len(t, out.Groups[0].Schedule, 2)
	assert.Equal(t, 1, out.Groups[0].Schedule[0].DayOfWeek)
	assert.Equal(t, 5, out.Groups[0].Schedule[1].DayOfWeek)
}
