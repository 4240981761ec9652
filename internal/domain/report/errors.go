package report

import "errors"

var (
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrDataSourceFailure = errors.New("failed to load attendance data")
	ErrArchiveNotFound   = errors.New("no archived report for that date")
)
