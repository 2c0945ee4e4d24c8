package service

import "errors"

var (
	ErrMissingUserID  = errors.New("missing userId")
	ErrMissingMessage = errors.New("missing message")
)

// GenerationError marks a failed call to the hosted generative API. No
// consultation messages are stored when it occurs.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "generation failed: " + e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }

// PersistenceError marks a failed store operation. On the write path it means
// the generated reply was discarded: the caller gets the error, not the reply.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "persistence failed: " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }
