package usecase

import (
	"errors"
	"fmt"

	"github.com/fadilmartias/ai-assessment/internal/repository"
)

var (
	// ErrValidation marks a malformed request. It is returned before any model call.
	ErrValidation = errors.New("validation error")
	// ErrUpstreamFetch marks a job store failure. The run is aborted with nothing persisted.
	ErrUpstreamFetch = errors.New("upstream fetch failed")
	ErrJobNotFound   = repository.ErrJobNotFound
	ErrNoCriteria    = errors.New("no criteria found")
	// ErrPersistence marks a failed result write. The run's unit of work is rolled back.
	ErrPersistence = errors.New("persistence failed")

	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)

// Error carries a user-facing message and the sentinel it belongs to.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
