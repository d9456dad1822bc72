package models

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNetwork          = errors.New("network failure")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrValidation       = errors.New("validation failed")
)
