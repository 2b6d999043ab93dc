package domain

import "errors"

var (
	// ErrUnauthenticated is returned when no verified user identity accompanies a request.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrAlreadyAttempted is returned when a user who already has a recorded attempt
	// tries to view or resubmit the quiz. Storage-level conflicts on insert are
	// translated into this error too.
	ErrAlreadyAttempted = errors.New("quiz already taken")
	// ErrMalformedAnswers indicates the submission body did not carry an answers array.
	ErrMalformedAnswers = errors.New("invalid answers format")
	// ErrAnswerCountMismatch indicates the answers array length differs from the catalog size.
	ErrAnswerCountMismatch = errors.New("answer count mismatch")
)
