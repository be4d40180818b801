package postgres

import "github.com/pkg/errors"

// Domain rule violations. All of them are recoverable at the request
// boundary; repositories wrap them into web errors with 4xx statuses.
var (
	ErrNotFound = errors.New("not found")

	ErrAlreadyCheckedIn  = errors.New("already checked in for this day")
	ErrNoCheckInFound    = errors.New("no check-in found for this day")
	ErrAlreadyCheckedOut = errors.New("already checked out for this day")

	ErrPastDateNotAllowed = errors.New("date must not be in the past")
	ErrInvalidHours       = errors.New("requested hours must be positive")
	ErrRequestNotFound    = errors.New("request not found")
	ErrAlreadyApproved    = errors.New("request is already resolved")

	ErrReferentialIntegrity = errors.New("record is still referenced")
)
