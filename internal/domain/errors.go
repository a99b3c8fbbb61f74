package domain

import "errors"

var (
	ErrTemporarilyUnavailable = errors.New("temporarily unavailable")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrGymNotFound            = errors.New("gym not found")
	ErrInvalidInterval        = errors.New("invalid interval")
)
