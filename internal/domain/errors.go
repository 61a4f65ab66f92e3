package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrAlreadyEnrolled    = errors.New("student is already signed up")
	ErrNotEnrolled        = errors.New("student is not signed up for this activity")
)
