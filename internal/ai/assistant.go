package ai

import (
	"context"

	"github.com/spigell/resource-allocator/internal/extraction"
	"github.com/spigell/resource-allocator/internal/staffing"
)

// AdviceRequest carries the project context an assistant needs to answer a question.
type AdviceRequest struct {
	Project       staffing.Project
	MissingSkills []string
	Question      string
}

// Assistant is the text-generation capability. Every method reports failure through
// its error; callers are expected to switch to a deterministic fallback on error.
type Assistant interface {
	Summarize(ctx context.Context, description string) (string, error)
	PredictParameters(ctx context.Context, description string) (*extraction.Parameters, error)
	PredictSkills(ctx context.Context, description string) ([]string, error)
	Advise(ctx context.Context, req AdviceRequest) (string, error)
}
