// Package filtering narrows the roster down to the candidate pool a team is selected from.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/staffing"
)

// Filter represents a single step applied to the candidate pool.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, pool []staffing.Employee) ([]staffing.Employee, Step, error)
}

type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config holds the pool constraints. Zero values switch the matching step off.
type Config struct {
	MaxWorkload   int      `json:"max_workload,omitempty" mapstructure:"max-workload"`
	MinExperience int      `json:"min_experience,omitempty" mapstructure:"min-experience"`
	Exclude       []string `json:"exclude,omitempty" mapstructure:"exclude"`
}

// IsZero reports whether cfg leaves the pool untouched.
func (cfg *Config) IsZero() bool {
	return cfg == nil || (cfg.MaxWorkload == 0 && cfg.MinExperience == 0 && len(cfg.Exclude) == 0)
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type statusProvider interface {
	Status() Status
}

// Default returns the standard steps in the order they are applied.
func Default() []Filter {
	return []Filter{NewExcluded(), NewWorkload(), NewExperience()}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled step and then applies them in order. The input slice is not modified.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, pool []staffing.Employee) ([]staffing.Employee, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	pool = append([]staffing.Employee(nil), pool...)
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !step.IsEnabled() {
			logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, pool)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		pool = next
	}

	return pool, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

func keep(pool []staffing.Employee, drop func(staffing.Employee) bool) ([]staffing.Employee, []string) {
	kept := pool[:0]
	var dropped []string
	for _, e := range pool {
		if drop(e) {
			dropped = append(dropped, e.Name)
			continue
		}
		kept = append(kept, e)
	}
	return kept, dropped
}
