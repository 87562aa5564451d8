package state

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTopology         = errors.New("invalid topology")
	ErrEmptyTopology           = errors.New("topology is empty after reduction")
	ErrConstraintUnsatisfiable = errors.New("star network constraints can not be satisfied")
	ErrInvalidConfig           = errors.New("invalid config")
)

// ConstraintUnsatisfiableError is returned when no hub count below the budget reaches the coverage target
type ConstraintUnsatisfiableError struct {
	HubBudget    int
	Coverage     float64
	BestCoverage float64
	BestHubs     int
}

func (e *ConstraintUnsatisfiableError) Error() string {
	return fmt.Sprintf("%s: hub budget %d, coverage target %.2f%%, best %.2f%% with %d hubs",
		ErrConstraintUnsatisfiable, e.HubBudget, e.Coverage, e.BestCoverage, e.BestHubs)
}

func (e *ConstraintUnsatisfiableError) Unwrap() error {
	return ErrConstraintUnsatisfiable
}
