package app

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	ErrEmptyDescription  = errors.New("project description is required")
	ErrInvalidTeamSize   = errors.New("team size must be between 1 and 10")
	ErrInvalidBudget     = errors.New("budget must not be negative")
	ErrInvalidComplexity = errors.New("unknown complexity")
	ErrInvalidEmployee   = errors.New("employee name is required")
	ErrDuplicateEmployee = errors.New("employee already exists")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrEmptyQuestion     = errors.New("question is required")
	ErrInvalidExperience = errors.New("experience must not be negative")
	ErrInvalidPool       = errors.New("invalid candidate pool")
)

// PersistError reports a store write that failed after the in-memory change was applied.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Warnings splits a combined warning back into its individual persistence failures.
func Warnings(err error) []error {
	return multierr.Errors(err)
}
