package domain

import "errors"

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadySignedUp  = errors.New("student already signed up")
	ErrNotSignedUp      = errors.New("student not signed up")
	ErrActivityFull     = errors.New("activity is full")
	ErrEmailRequired    = errors.New("email is required")
)
