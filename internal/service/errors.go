package service

import "errors"

// Domain errors. Handlers map these to distinct outward statuses instead
// of one generic internal error.
var (
	// ErrNotFound: unknown enrollment/submission/exam id. Fatal to the
	// single operation.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyEnrolled: a non-rejected enrollment already exists for the
	// (subject, student) pair.
	ErrAlreadyEnrolled = errors.New("already enrolled")
	// ErrAlreadySubmitted: the attempt already reached its terminal state.
	ErrAlreadySubmitted = errors.New("submission already submitted")
	// ErrValidation: malformed or missing identifiers.
	ErrValidation = errors.New("validation failed")
	// ErrUpstreamUnavailable: a collaborator could not serve the call and
	// the operation could not degrade around it.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
