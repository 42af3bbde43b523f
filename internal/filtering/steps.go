package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/staffing"
)

const (
	NameExcluded   = "excluded"
	NameWorkload   = "workload"
	NameExperience = "experience"
)

type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type excludedFilter struct {
	toggle
	names []string
}

// NewExcluded creates a filter that removes employees listed by name, ignoring letter case.
func NewExcluded() Filter {
	return &excludedFilter{}
}

func (f *excludedFilter) Name() string { return NameExcluded }

func (f *excludedFilter) Validate(cfg *Config) error {
	f.names = f.names[:0]
	for _, name := range cfg.Exclude {
		if name = strings.TrimSpace(name); name != "" {
			f.names = append(f.names, name)
		}
	}
	return nil
}

func (f *excludedFilter) Apply(_ context.Context, deps Deps, pool []staffing.Employee) ([]staffing.Employee, Step, error) {
	initial := len(pool)
	if len(f.names) == 0 {
		return pool, Step{Initial: initial, Left: initial}, nil
	}

	kept, dropped := keep(pool, func(e staffing.Employee) bool {
		for _, name := range f.names {
			if strings.EqualFold(e.Name, name) {
				return true
			}
		}
		return false
	})
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding employees by name",
			zap.Strings("excluded_employees", dropped),
			zap.Int("employees_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *excludedFilter) Status() Status {
	details := map[string]string{}
	if len(f.names) > 0 {
		details["names"] = strings.Join(f.names, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type workloadFilter struct {
	toggle
	max int
}

// NewWorkload creates a filter that removes employees whose workload is above the configured percentage.
func NewWorkload() Filter {
	return &workloadFilter{}
}

func (f *workloadFilter) Name() string { return NameWorkload }

func (f *workloadFilter) Validate(cfg *Config) error {
	if cfg.MaxWorkload < 0 || cfg.MaxWorkload > 100 {
		return fmt.Errorf("max workload must be between 0 and 100, got %d", cfg.MaxWorkload)
	}
	f.max = cfg.MaxWorkload
	return nil
}

func (f *workloadFilter) Apply(_ context.Context, deps Deps, pool []staffing.Employee) ([]staffing.Employee, Step, error) {
	initial := len(pool)
	if f.max == 0 {
		return pool, Step{Initial: initial, Left: initial}, nil
	}

	kept, dropped := keep(pool, func(e staffing.Employee) bool { return e.Workload > f.max })
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding busy employees",
			zap.Int("max_workload", f.max),
			zap.Strings("excluded_employees", dropped),
			zap.Int("employees_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *workloadFilter) Status() Status {
	details := map[string]string{}
	if f.max > 0 {
		details["max_workload"] = strconv.Itoa(f.max)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type experienceFilter struct {
	toggle
	min int
}

// NewExperience creates a filter that removes employees with fewer years than required.
func NewExperience() Filter {
	return &experienceFilter{}
}

func (f *experienceFilter) Name() string { return NameExperience }

func (f *experienceFilter) Validate(cfg *Config) error {
	if cfg.MinExperience < 0 {
		return fmt.Errorf("min experience must not be negative, got %d", cfg.MinExperience)
	}
	f.min = cfg.MinExperience
	return nil
}

func (f *experienceFilter) Apply(_ context.Context, deps Deps, pool []staffing.Employee) ([]staffing.Employee, Step, error) {
	initial := len(pool)
	if f.min == 0 {
		return pool, Step{Initial: initial, Left: initial}, nil
	}

	kept, dropped := keep(pool, func(e staffing.Employee) bool { return e.Experience < f.min })
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding junior employees",
			zap.Int("min_experience", f.min),
			zap.Strings("excluded_employees", dropped),
			zap.Int("employees_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *experienceFilter) Status() Status {
	details := map[string]string{}
	if f.min > 0 {
		details["min_experience"] = strconv.Itoa(f.min)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
