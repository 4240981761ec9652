package report

import (
	"fmt"
	"time"

	"github.com/johangly/gpu/internal/domain/report"
)

const (
	dateLayout    = "2006-01-02"
	displayLayout = "02/01/2006"
)

// DateRange lists every calendar day from start to end inclusive, at
// midnight in loc. It steps with AddDate so days stay aligned to the
// calendar rather than to 24h intervals.
func DateRange(start, end string, loc *time.Location) ([]report.Day, error) {
	from, err := time.ParseInLocation(dateLayout, start, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q: %w", report.ErrInvalidDateRange, start, err)
	}
	to, err := time.ParseInLocation(dateLayout, end, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q: %w", report.ErrInvalidDateRange, end, err)
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: start date %s is after end date %s", report.ErrInvalidDateRange, start, end)
	}

	var days []report.Day
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, report.Day{
			Date:        d,
			DisplayDate: d.Format(displayLayout),
			Weekday:     WeekdayName(d),
			Attendances: []report.AttendanceStatus{},
		})
	}
	return days, nil
}
