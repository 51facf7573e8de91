package common

import (
	"errors"
	"fmt"
)

// ErrInvalidToken covers expired, malformed and badly signed tokens alike.
var ErrInvalidToken = errors.New("invalid or expired token")

// ErrUnauthorizedSender means the claimed sender does not match the verified
// identity. The message never reaches the store in that case.
var ErrUnauthorizedSender = errors.New("unauthorized sender")

// ValidationError reports malformed input, like empty text content or a media
// message without a media reference.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// StorageError wraps a durable read/write failure. Callers must not retry the
// same call automatically, a duplicate send is worse than a failed one.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
