package dataset

import (
	"errors"
)

// Sentinel kinds for dataset loading errors.
var (
	ErrMissingHeader = errors.New("dataset has no header row")
)
