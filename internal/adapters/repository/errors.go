package repository

import "errors"

// Sentinel kinds for result store errors.
var (
	ErrNoBatch = errors.New("no batch loaded")
)
