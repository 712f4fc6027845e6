// Package genaistudio - errors.go
// Defines session and completion errors.

package genaistudio

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoCompletion    = errors.New("no completion choices returned")
)
