package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/johangly/gpu/internal/domain/group"
	"github.com/johangly/gpu/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() report.AttendanceReport {
	loc := time.FixedZone("VET", -4*60*60)
	in := time.Date(2024, 3, 4, 7, 55, 0, 0, loc)
	out := time.Date(2024, 3, 4, 16, 2, 0, 0, loc)

	return report.AttendanceReport{
		StartDate: time.Date(2024, 3, 4, 0, 0, 0, 0, loc),
		EndDate:   time.Date(2024, 3, 5, 0, 0, 0, 0, loc),
		Days: []report.Day{
			{
				DisplayDate: "04/03/2024",
				Weekday:     "lunes",
				Attendances: []report.AttendanceStatus{
					{EmployeeID: 1, FirstName: "Ana", LastName: "Núñez", GroupName: "Docente", Attended: true, ClockIn: &in, ClockOut: &out, State: report.StateComplete},
					{EmployeeID: 2, FirstName: "José", LastName: "Peña", GroupName: "Docente", State: report.StateAbsent},
				},
			},
			{DisplayDate: "05/03/2024", Weekday: "martes", Attendances: []report.AttendanceStatus{}},
		},
		Statistics: report.Statistics{TotalDays: 2, TotalEmployees: 2, TotalAttendances: 1, AttendanceRate: "25.00%"},
		Groups: []report.GroupSchedule{{
			ID:   2,
			Name: "Docente",
			Schedule: []group.ScheduleEntryResponse{
				{ID: 20, DayOfWeek: 1, StartTime: "08:00", EndTime: "16:00"},
			},
		}},
	}
}

func TestRenderPDF(t *testing.T) {
	out, err := RenderPDF(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderPDF_EmptyReport(t *testing.T) {
	out, err := RenderPDF(report.AttendanceReport{Statistics: report.Statistics{AttendanceRate: "0.00%"}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderXLSX(t *testing.T) {
	out, err := RenderXLSX(sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, detailSheet}, f.GetSheetList())

	rate, err := f.GetCellValue(summarySheet, "B7")
	require.NoError(t, err)
	assert.Equal(t, "25.00%", rate)

	rows, err := f.GetRows(detailSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"04/03/2024", "lunes", "Núñez", "Ana", "Docente", "Sí", "07:55", "16:02", "Completo"}, rows[1])
	assert.Equal(t, []string{"04/03/2024", "lunes", "Peña", "José", "Docente", "No", "-", "-", "Ausente"}, rows[2])
}

func TestStateLabel(t *testing.T) {
	assert.Equal(t, "Sin salida", StateLabel(report.StateNoClockOut))
	assert.Equal(t, "otro", StateLabel(report.State("otro")))
}
