package export

import (
	"fmt"

	"github.com/johangly/gpu/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Resumen"
	detailSheet  = "Detalle"
)

var detailHeaders = []interface{}{"Fecha", "Día", "Apellido", "Nombre", "Grupo", "Asistió", "Entrada", "Salida", "Estado"}

// RenderXLSX writes a workbook with a summary sheet and one row per
// employee and day on the detail sheet.
func RenderXLSX(rep report.AttendanceReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	stats := rep.Statistics
	summary := [][]interface{}{
		{"Reporte de asistencia"},
		{"Desde", rep.StartDate.Format(dateLayout)},
		{"Hasta", rep.EndDate.Format(dateLayout)},
		{"Días evaluados", stats.TotalDays},
		{"Empleados con horario", stats.TotalEmployees},
		{"Asistencias", stats.TotalAttendances},
		{"Porcentaje de asistencia", stats.AttendanceRate},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A7", bold); err != nil {
		return nil, fmt.Errorf("failed to style summary: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 28); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	if err := setRow(f, detailSheet, 1, detailHeaders); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(detailSheet, "A1", "I1", bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	row := 2
	for _, day := range rep.Days {
		for _, a := range day.Attendances {
			attended := "No"
			if a.Attended {
				attended = "Sí"
			}
			values := []interface{}{
				day.DisplayDate, day.Weekday, a.LastName, a.FirstName, a.GroupName,
				attended, clock(a.ClockIn), clock(a.ClockOut), StateLabel(a.State),
			}
			if err := setRow(f, detailSheet, row, values); err != nil {
				return nil, err
			}
			row++
		}
	}
	if err := f.SetColWidth(detailSheet, "A", "I", 16); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
