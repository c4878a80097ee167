package calendar

import "errors"

// Supported year range. Dates outside it have no four digit ISO form.
const (
	MinYear = 1
	MaxYear = 9999
)

var (
	ErrInvalidMonth = errors.New("calendar: month must be between 1 and 12")
	ErrInvalidYear  = errors.New("calendar: year out of supported range")
)
