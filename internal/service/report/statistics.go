package report

import (
	"github.com/johangly/gpu/internal/domain/report"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summarize rolls the days up into report totals. The percentage is
// attendances / (days * employees) rounded to two places, "0.00%" when
// either factor is zero.
func Summarize(days []report.Day, totalEmployees int) report.Statistics {
	attended := 0
	for _, day := range days {
		for _, status := range day.Attendances {
			if status.Attended {
				attended++
			}
		}
	}

	return report.Statistics{
		TotalDays:        len(days),
		TotalEmployees:   totalEmployees,
		TotalAttendances: attended,
		AttendanceRate:   percentage(attended, len(days)*totalEmployees),
	}
}

func percentage(part, whole int) string {
	if whole <= 0 {
		return decimal.Zero.StringFixed(2) + "%"
	}
	rate := decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(whole)))
	return rate.StringFixed(2) + "%"
}
