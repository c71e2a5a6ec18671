package minio

import (
	"errors"
	"fmt"
)

// Storage error codes.
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeBucketNotFound = "BUCKET_NOT_FOUND"
	ErrCodeObjectNotFound = "OBJECT_NOT_FOUND"
	ErrCodeAccessDenied   = "ACCESS_DENIED"
	ErrCodeConnection     = "CONNECTION_ERROR"
	ErrCodeOperation      = "OPERATION_FAILED"
)

// StorageError is returned by every MinIO operation.
type StorageError struct {
	Code      string
	Message   string
	Operation string
	Err       error
}

func (e *StorageError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("minio %s: %s: %s", e.Operation, e.Code, e.Message)
	}
	return fmt.Sprintf("minio: %s: %s", e.Code, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewInvalidInputError(message string) *StorageError {
	return &StorageError{Code: ErrCodeInvalidInput, Message: message}
}

func NewConnectionError(err error) *StorageError {
	return &StorageError{Code: ErrCodeConnection, Message: err.Error(), Err: err}
}

// IsNotFound reports whether err is a missing bucket or object.
func IsNotFound(err error) bool {
	var se *StorageError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == ErrCodeObjectNotFound || se.Code == ErrCodeBucketNotFound
}
