package staffing

import "math"

const (
	defaultBaseDays  = 30
	defaultDailyRate = 450
)

var baseDays = map[Complexity]int{
	ComplexityLow:      15,
	ComplexityMedium:   30,
	ComplexityHigh:     60,
	ComplexityVeryHigh: 90,
}

var dailyRates = map[string]int{
	"Python":     500,
	"AI/ML":      700,
	"React":      550,
	"JavaScript": 550,
	"Database":   500,
	"DevOps":     600,
	"Blockchain": 800,
	"Security":   650,
	"Cloud":      600,
	"Design":     450,
	"Go":         650,
	"Golang":     650,
}

// TimelineDays shrinks the base duration for bigger teams. The divisor never
// drops below 1, so no team finishes faster than the base duration.
func TimelineDays(c Complexity, teamSize int) int {
	base, ok := baseDays[c]
	if !ok {
		base = defaultBaseDays
	}

	adjustment := math.Max(1, 5-float64(teamSize)*0.5)
	return round(float64(base) / adjustment)
}

// DailyRate looks the skill up by exact name.
func DailyRate(skill string) int {
	if rate, ok := dailyRates[skill]; ok {
		return rate
	}
	return defaultDailyRate
}

// EstimateCost charges every member the mean rate of their skills for the whole timeline.
func EstimateCost(team []Employee, timeline int) float64 {
	if timeline < 0 {
		timeline = 0
	}

	total := 0.0
	for _, member := range team {
		if len(member.Skills) == 0 {
			continue
		}

		sum := 0
		for _, skill := range member.Skills {
			sum += DailyRate(skill)
		}
		avg := float64(sum) / float64(len(member.Skills))
		total += avg * float64(timeline)
	}

	return math.RoundToEven(total)
}
