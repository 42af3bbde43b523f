package extraction

import (
	"strings"

	"github.com/spigell/resource-allocator/internal/staffing"
)

const summaryPreviewLength = 200

// Parameters is the shape of a project parameter prediction, whichever source produced it.
type Parameters struct {
	Summary       string              `json:"summary" mapstructure:"summary"`
	Complexity    staffing.Complexity `json:"complexity" mapstructure:"complexity"`
	TeamSize      int                 `json:"recommended_team_size" mapstructure:"recommended_team_size"`
	Budget        int                 `json:"estimated_budget" mapstructure:"estimated_budget"`
	TimelineWeeks int                 `json:"timeline_weeks" mapstructure:"timeline_weeks"`
	RiskLevel     string              `json:"risk_level" mapstructure:"risk_level"`
	Technologies  []string            `json:"key_technologies" mapstructure:"key_technologies"`
}

// Tiers are tested in this order and a later hit replaces an earlier one.
var complexityTiers = []struct {
	complexity staffing.Complexity
	triggers   []string
}{
	{staffing.ComplexityLow, []string{"simple", "basic", "small", "minimal", "landing page", "brochure"}},
	{staffing.ComplexityHigh, []string{"complex", "enterprise", "large-scale", "mission critical", "banking", "healthcare"}},
	{staffing.ComplexityVeryHigh, []string{"blockchain", "ai", "machine learning", "iot", "advanced", "sophisticated"}},
}

type tierDefaults struct {
	teamSize      int
	budget        int
	timelineWeeks int
	risk          string
}

var defaultsByComplexity = map[staffing.Complexity]tierDefaults{
	staffing.ComplexityLow:      {teamSize: 2, budget: 10000, timelineWeeks: 4, risk: "low"},
	staffing.ComplexityMedium:   {teamSize: 3, budget: 25000, timelineWeeks: 8, risk: "medium"},
	staffing.ComplexityHigh:     {teamSize: 5, budget: 75000, timelineWeeks: 16, risk: "high"},
	staffing.ComplexityVeryHigh: {teamSize: 7, budget: 150000, timelineWeeks: 24, risk: "high"},
}

// ClassifyComplexity defaults to medium when no tier keyword is present.
func ClassifyComplexity(text string) staffing.Complexity {
	lower := strings.ToLower(text)
	complexity := staffing.ComplexityMedium

	for _, tier := range complexityTiers {
		if containsAny(lower, tier.triggers) {
			complexity = tier.complexity
		}
	}

	return complexity
}

// PredictParameters derives all parameters from keywords in the description.
func PredictParameters(description string) Parameters {
	complexity := ClassifyComplexity(description)
	defaults := defaultsByComplexity[complexity]

	return Parameters{
		Summary:       Summarize(description),
		Complexity:    complexity,
		TeamSize:      defaults.teamSize,
		Budget:        defaults.budget,
		TimelineWeeks: defaults.timelineWeeks,
		RiskLevel:     defaults.risk,
		Technologies:  ExtractTechnologies(description),
	}
}

// DefaultsFor fills the numeric parameters of a complexity tier. Unknown tiers get medium values.
func DefaultsFor(c staffing.Complexity) Parameters {
	defaults, ok := defaultsByComplexity[c]
	if !ok {
		c = staffing.ComplexityMedium
		defaults = defaultsByComplexity[c]
	}

	return Parameters{
		Complexity:    c,
		TeamSize:      defaults.teamSize,
		Budget:        defaults.budget,
		TimelineWeeks: defaults.timelineWeeks,
		RiskLevel:     defaults.risk,
	}
}

// Summarize keeps the first two sentences, or the first 200 characters for shorter text.
func Summarize(description string) string {
	sentences := strings.Split(description, ".")
	if len(sentences) > 2 {
		return strings.Join(sentences[:2], ". ") + "."
	}

	runes := []rune(description)
	if len(runes) > summaryPreviewLength {
		runes = runes[:summaryPreviewLength]
	}
	return string(runes) + "..."
}
