package domain

import "errors"

var (
	ErrNotFound = errors.New("record not found")

	// ErrSourceUnavailable covers network/HTTP failures reaching the order
	// source; ErrSourceRejected covers a non-200 application status inside a
	// well-formed response body. Both abort the current poll only.
	ErrSourceUnavailable = errors.New("order source unavailable")
	ErrSourceRejected    = errors.New("order source rejected request")

	// ErrDispatchTimeout matches ErrDispatchFailed via errors.Is so callers
	// can treat a timed-out attempt as a plain failure.
	ErrDispatchFailed  = errors.New("dispatch failed")
	ErrDispatchTimeout = timeoutError{}
)

type timeoutError struct{}

func (timeoutError) Error() string        { return "dispatch timed out" }
func (timeoutError) Is(target error) bool { return target == ErrDispatchFailed }
