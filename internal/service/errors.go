package service

import "errors"

// Common service errors
var (
	// ErrInvalidPost indicates the requested post does not exist or is not a
	// source post eligible for FAQ generation.
	ErrInvalidPost = errors.New("invalid source post")

	// ErrNilDependency indicates a required constructor dependency was nil.
	ErrNilDependency = errors.New("required dependency is nil")
)
