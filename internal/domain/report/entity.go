package report

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/johangly/gpu/internal/domain/group"
)

type State string

const (
	StateComplete   State = "completo"
	StateNoClockOut State = "sin_salida"
	StateNoClockIn  State = "sin_entrada"
	StateAbsent     State = "ausente"
)

// AttendanceStatus is one employee's outcome on one scheduled day.
type AttendanceStatus struct {
	EmployeeID int64      `json:"id_empleado"`
	FirstName  string     `json:"nombre"`
	LastName   string     `json:"apellido"`
	GroupName  string     `json:"grupo"`
	Attended   bool       `json:"asistio"`
	ClockIn    *time.Time `json:"entrada"`
	ClockOut   *time.Time `json:"salida"`
	State      State      `json:"estado"`
}

type Day struct {
	Date        time.Time          `json:"-"`
	DisplayDate string             `json:"fecha"`
	Weekday     string             `json:"dia"`
	Attendances []AttendanceStatus `json:"asistencias"`
}

type Statistics struct {
	TotalDays        int    `json:"totalDias"`
	TotalEmployees   int    `json:"totalEmpleados"`
	TotalAttendances int    `json:"totalAsistencias"`
	AttendanceRate   string `json:"porcentajeAsistencia"`
}

type GroupSchedule struct {
	ID       int64                         `json:"id_grupo"`
	Name     string                        `json:"nombre_grupo"`
	Schedule []group.ScheduleEntryResponse `json:"horario"`
}

type AttendanceReport struct {
	StartDate  time.Time       `json:"-"`
	EndDate    time.Time       `json:"-"`
	Days       []Day           `json:"rangoFechas"`
	Statistics Statistics      `json:"estadisticas"`
	Groups     []GroupSchedule `json:"grupos"`
}

// ArchiveKey is the storage key of the daily PDF export for date.
func ArchiveKey(date time.Time) string {
	return fmt.Sprintf("%s/%s/asistencia-%s.pdf", ArchivePrefix, date.Format("2006/01"), date.Format("2006-01-02"))
}

// ArchivePrefix is the key prefix shared by every archived report.
const ArchivePrefix = "reports"

// ArchiveDate extracts the YYYY-MM-DD date from a key built by ArchiveKey.
func ArchiveDate(key string) (string, bool) {
	name := path.Base(key)
	if !strings.HasPrefix(name, "asistencia-") || !strings.HasSuffix(name, ".pdf") {
		return "", false
	}
	date := strings.TrimSuffix(strings.TrimPrefix(name, "asistencia-"), ".pdf")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", false
	}
	return date, true
}
