package domain

import "errors"

var (
	ErrValidation   = errors.New("invalid request")
	ErrNotFound     = errors.New("not found")
	ErrInvalidChart = errors.New("invalid mile chart")
	ErrStaleVersion = errors.New("chart version is not newer than the current one")
	ErrUpstream     = errors.New("upstream offer source failed")
)
