package service

import "errors"

// Conflict and validation sentinels. Controllers pick HTTP status codes with
// errors.Is and surface the message verbatim, because each one names the
// exact reason a retake or resume was blocked.
var (
	// ErrNotAssigned rejects a start for a (test, student) pair that has no
	// assignment row at all.
	ErrNotAssigned = errors.New("assessment assignment not found for your account")

	// ErrAlreadySubmitted guards the no-retake property: a Result row exists
	// (or the assignment is terminally submitted) for this pair.
	ErrAlreadySubmitted = errors.New("this assessment has already been submitted; re-entry is prohibited")

	// ErrTestNotFound covers starts and submits against unknown or deleted tests.
	ErrTestNotFound = errors.New("assessment not found")

	// ErrNoQuestions rejects scoring input before division-by-zero can occur.
	ErrNoQuestions = errors.New("assessment has no questions")

	// ErrNoStudents fails test creation outright when the student population
	// is empty: no test may exist with zero possible takers.
	ErrNoStudents = errors.New("no students are registered in the system")
)
