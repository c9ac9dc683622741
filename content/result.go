package content

import (
	"context"
	"errors"
)

// ErrNotFound is the error carried by a Result whose record does not exist.
var ErrNotFound = errors.New("content: not found")

// Status classifies the outcome of a content operation.
type Status int

const (
	// StatusOK means the operation succeeded.
	StatusOK Status = iota
	// StatusNotFound means the requested record does not exist.
	StatusNotFound
	// StatusDegraded means a read failed and Value holds an empty fallback.
	StatusDegraded
	// StatusFailed means a write failed; Value is the zero value.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusDegraded:
		return "degraded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the return value of every Repository operation.
//
// A degraded list still carries an empty, non-nil slice in Value, so callers
// that only render Value keep working while callers that care can check
// Status or Err.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool { return r.Status == StatusOK }

// Unwrap returns Value and Err in the usual Go shape.
func (r Result[T]) Unwrap() (T, error) { return r.Value, r.Err }

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusOK}
}

func notFound[T any]() Result[T] {
	return Result[T]{Status: StatusNotFound, Err: ErrNotFound}
}

func degraded[T any](fallback T, err error) Result[T] {
	return Result[T]{Value: fallback, Status: StatusDegraded, Err: err}
}

func failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusFailed, Err: err}
}

// Repository is the contract shared by every content type.
type Repository[T any] interface {
	List(ctx context.Context) Result[[]T]
	Get(ctx context.Context, id string) Result[T]
	Save(ctx context.Context, v T) Result[T]
	Delete(ctx context.Context, id string) Result[bool]
}
