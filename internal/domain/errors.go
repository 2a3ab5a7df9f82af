package domain

import "errors"

// Sentinel errors for collaborator-level error discrimination.
// Infrastructure wraps these so flows can classify failures without
// leaking store or cache details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrExpired      = errors.New("expired")
	ErrBadRequest   = errors.New("bad request")
)
