package staffing

import (
	"math"
	"sort"
)

type Portfolio struct {
	Projects           int     `json:"projects"`
	TotalEstimatedCost float64 `json:"total_estimated_cost"`
	AverageTeamSize    float64 `json:"average_team_size"`
	OverBudget         int     `json:"over_budget"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

func WithinBudget(p Project) bool {
	return p.EstimatedCost <= p.Budget
}

// Summarize aggregates cost and requested team size over all projects.
func Summarize(projects []Project) Portfolio {
	summary := Portfolio{Projects: len(projects)}
	if len(projects) == 0 {
		return summary
	}

	sizes := 0
	for _, p := range projects {
		summary.TotalEstimatedCost += p.EstimatedCost
		sizes += p.TeamSize
		if !WithinBudget(p) {
			summary.OverBudget++
		}
	}

	avg := float64(sizes) / float64(len(projects))
	summary.AverageTeamSize = math.Round(avg*10) / 10
	return summary
}

// SkillDistribution counts employees per skill, most common first.
func SkillDistribution(roster []Employee) []SkillCount {
	counts := make(map[string]int)
	for _, e := range roster {
		for _, skill := range e.Skills {
			counts[skill]++
		}
	}

	result := make([]SkillCount, 0, len(counts))
	for skill, count := range counts {
		result = append(result, SkillCount{Skill: skill, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Skill < result[j].Skill
	})

	return result
}
