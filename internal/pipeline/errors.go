package pipeline

import (
	"errors"
)

// Sentinel kinds for per-record validation failures. These never abort a
// batch; they surface through the skipped side channel.
var (
	ErrEmptyID     = errors.New("empty record id")
	ErrDuplicateID = errors.New("duplicate record id")
	ErrBadSignal   = errors.New("signal value is not a finite number")
)
