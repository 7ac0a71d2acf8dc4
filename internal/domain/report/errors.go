package report

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid month or year")
)
