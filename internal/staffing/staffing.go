package staffing

import (
	"math"
	"strings"
	"time"
)

type Complexity string

const (
	ComplexityLow      Complexity = "low"
	ComplexityMedium   Complexity = "medium"
	ComplexityHigh     Complexity = "high"
	ComplexityVeryHigh Complexity = "very high"
)

// Complexities lists the tiers in ascending order.
var Complexities = []Complexity{ComplexityLow, ComplexityMedium, ComplexityHigh, ComplexityVeryHigh}

// ParseComplexity accepts any letter case and surrounding whitespace.
func ParseComplexity(s string) (Complexity, bool) {
	c := Complexity(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Complexities {
		if c == known {
			return c, true
		}
	}
	return "", false
}

type Employee struct {
	Name       string   `json:"name"`
	Skills     []string `json:"skills"`
	Experience int      `json:"experience"`
	Workload   int      `json:"workload"`
}

// Clone returns a snapshot that shares no memory with e.
func (e Employee) Clone() Employee {
	e.Skills = append([]string{}, e.Skills...)
	return e
}

type ScoredCandidate struct {
	Employee   Employee `json:"employee"`
	Score      int      `json:"score"`
	Experience int      `json:"experience"`
}

type SkillGapResult struct {
	MissingSkills      []string `json:"missing_skills"`
	CoveredSkills      []string `json:"covered_skills"`
	CoveragePercentage int      `json:"coverage_percentage"`
}

type Project struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Summary        string         `json:"summary"`
	RequiredSkills []string       `json:"required_skills"`
	Complexity     Complexity     `json:"complexity"`
	TeamSize       int            `json:"team_size"`
	Timeline       int            `json:"timeline"`
	EstimatedCost  float64        `json:"estimated_cost"`
	Budget         float64        `json:"budget"`
	RiskLevel      string         `json:"risk_level,omitempty"`
	Technologies   []string       `json:"key_technologies,omitempty"`
	Team           []Employee     `json:"team"`
	SkillGaps      SkillGapResult `json:"skill_gaps"`
	CreatedAt      time.Time      `json:"created_at"`
}

// round rounds half to even.
func round(v float64) int {
	return int(math.RoundToEven(v))
}

// Unique removes duplicate strings keeping the first occurrence.
func Unique(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}
