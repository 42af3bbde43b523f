package filtering

import (
	"context"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resource-allocator/internal/staffing"
)

func roster() []staffing.Employee {
	return []staffing.Employee{
		{Name: "Alice", Experience: 5, Workload: 80},
		{Name: "Bob", Experience: 1, Workload: 20},
		{Name: "Carol", Experience: 8, Workload: 40},
		{Name: "Dave", Experience: 3, Workload: 100},
	}
}

func names(pool []staffing.Employee) []string {
	out := make([]string, 0, len(pool))
	for _, e := range pool {
		out = append(out, e.Name)
	}
	return out
}

func TestRunAppliesStepsInOrder(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	input := roster()
	cfg := &Config{MaxWorkload: 80, MinExperience: 2, Exclude: []string{" carol "}}

	pool, err := Run(context.Background(), cfg, Deps{Logger: zap.New(core)}, Default(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := names(pool); !reflect.DeepEqual(got, []string{"Alice"}) {
		t.Fatalf("unexpected pool: %v", got)
	}
	if got := names(input); !reflect.DeepEqual(got, []string{"Alice", "Bob", "Carol", "Dave"}) {
		t.Fatalf("input roster was modified: %v", got)
	}
	if n := logs.FilterMessage("excluding busy employees").Len(); n != 1 {
		t.Fatalf("expected one workload log entry, got %d", n)
	}
}

func TestRunWithZeroConfigKeepsEveryone(t *testing.T) {
	t.Parallel()

	pool, err := Run(context.Background(), nil, Deps{}, Default(), roster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool) != 4 {
		t.Fatalf("expected full roster, got %v", names(pool))
	}
	if !(&Config{}).IsZero() || (&Config{MinExperience: 1}).IsZero() {
		t.Fatal("unexpected IsZero result")
	}
}

func TestRunValidatesConfig(t *testing.T) {
	t.Parallel()

	for _, cfg := range []*Config{{MaxWorkload: 101}, {MaxWorkload: -1}, {MinExperience: -2}} {
		if _, err := Run(context.Background(), cfg, Deps{}, Default(), roster()); err == nil {
			t.Fatalf("expected validation error for %+v", cfg)
		}
	}
}

func TestDisabledStepIsSkipped(t *testing.T) {
	t.Parallel()

	steps := Default()
	DisableByName(steps, NameWorkload, "on call rotation")

	pool, err := Run(context.Background(), &Config{MaxWorkload: 101}, Deps{}, steps, roster())
	if err != nil {
		t.Fatalf("disabled step should not be validated: %v", err)
	}
	if len(pool) != 4 {
		t.Fatalf("expected full roster, got %v", names(pool))
	}

	for _, status := range Describe(steps) {
		if status.Name == NameWorkload && (status.Enabled || status.Reason != "on call rotation") {
			t.Fatalf("unexpected workload status: %+v", status)
		}
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, &Config{}, Deps{}, Default(), roster()); err == nil {
		t.Fatal("expected context error")
	}
}
