// Package export renders attendance reports as downloadable documents.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/johangly/gpu/internal/domain/report"
	"github.com/jung-kurt/gofpdf/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	dateLayout  = "02/01/2006"
	clockLayout = "15:04"
)

var stateLabels = map[report.State]string{
	report.StateComplete:   "Completo",
	report.StateNoClockOut: "Sin salida",
	report.StateNoClockIn:  "Sin entrada",
	report.StateAbsent:     "Ausente",
}

// StateLabel is the human readable form of a day state.
func StateLabel(s report.State) string {
	if label, ok := stateLabels[s]; ok {
		return label
	}
	return string(s)
}

func clock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(clockLayout)
}

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Apellido", 38},
	{"Nombre", 38},
	{"Grupo", 34},
	{"Entrada", 22},
	{"Salida", 22},
	{"Estado", 26},
}

// RenderPDF lays the report out on A4 pages: a summary block, the
// schedules of every group taken into account and one table per day.
func RenderPDF(rep report.AttendanceReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	// a Caser is stateful, one per render
	weekdayTitle := cases.Title(language.Spanish)
	pdf.SetTitle(tr("Reporte de asistencia"), false)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Reporte de asistencia"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Período: %s al %s",
		rep.StartDate.Format(dateLayout), rep.EndDate.Format(dateLayout))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	stats := rep.Statistics
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Estadísticas"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, line := range [][2]string{
		{"Días evaluados", fmt.Sprint(stats.TotalDays)},
		{"Empleados con horario", fmt.Sprint(stats.TotalEmployees)},
		{"Asistencias", fmt.Sprint(stats.TotalAttendances)},
		{"Porcentaje de asistencia", stats.AttendanceRate},
	} {
		pdf.CellFormat(60, 6, tr(line[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(line[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	if len(rep.Groups) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, tr("Horarios"), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, g := range rep.Groups {
			parts := make([]string, 0, len(g.Schedule))
			for _, entry := range g.Schedule {
				parts = append(parts, fmt.Sprintf("%d: %s-%s", entry.DayOfWeek, entry.StartTime, entry.EndTime))
			}
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s (%s)", g.Name, strings.Join(parts, ", "))), "", "L", false)
		}
		pdf.Ln(3)
	}

	for _, day := range rep.Days {
		// keep a day title together with at least a couple of rows
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("%s %s", weekdayTitle.String(day.Weekday), day.DisplayDate)), "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(220, 220, 220)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, tr(col.title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		if len(day.Attendances) == 0 {
			pdf.CellFormat(180, 6, tr("Sin personal programado"), "1", 1, "C", false, 0, "")
		}
		for _, a := range day.Attendances {
			cells := []string{a.LastName, a.FirstName, a.GroupName, clock(a.ClockIn), clock(a.ClockOut), StateLabel(a.State)}
			for i, col := range pdfColumns {
				align := "L"
				if i >= 3 {
					align = "C"
				}
				pdf.CellFormat(col.width, 6, tr(cells[i]), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
