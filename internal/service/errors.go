package service

import "errors"

// Sentinel errors the controller layer maps onto HTTP statuses.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidStatus    = errors.New("invalid recommendation status")
	ErrInvalidFeedback  = errors.New("invalid feedback type")
	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidLogin     = errors.New("invalid email or password")
	ErrProjectInactive  = errors.New("project is inactive")
	ErrNothingToCollect = errors.New("trending page returned no repositories")
)
