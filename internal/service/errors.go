package service

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrAlreadyProcessed    = errors.New("application already processed")
	ErrConsolidationFailed = errors.New("load consolidation failed")
)
