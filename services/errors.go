package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks caller mistakes: bad dates, non-positive XP, unknown ids.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCoachUnavailable wraps any failure of the generative coach. Callers resubmit; nothing retries.
	ErrCoachUnavailable = errors.New("coach unavailable")
)

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func coachErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCoachUnavailable, op, err)
}
