package scoring

import (
	"errors"
)

// Sentinel error kinds for weight configuration. These allow errors.Is/As
// from callers; all of them mean the batch must not run.
var (
	ErrWeightSum      = errors.New("category weights do not sum to 1.0")
	ErrNegativeWeight = errors.New("negative weight")
	ErrEmptyCategory  = errors.New("empty weight category")
)
