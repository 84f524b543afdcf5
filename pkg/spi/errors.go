package spi

import (
	"errors"
)

var (
	// ErrInvalidArgument reports a missing or malformed request property.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalState reports a request that could not be encoded.
	ErrIllegalState = errors.New("illegal state")

	// ErrCreateSchedule reports a schedule rejected by the cluster.
	ErrCreateSchedule = errors.New("failed to create schedule")

	// ErrScheduleNotFound reports an unschedule of a schedule that does not exist.
	ErrScheduleNotFound = errors.New("schedule does not exist")
)

// CronExpressionError is a schedule rejection caused by an invalid cron expression.
// Its message is the cluster's message verbatim.
type CronExpressionError struct {
	Message string
}

func (e *CronExpressionError) Error() string {
	return e.Message
}

func (e *CronExpressionError) Is(target error) bool {
	return target == ErrCreateSchedule
}
