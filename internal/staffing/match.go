package staffing

import (
	"sort"
	"strings"
)

const (
	experienceBonusPerYear = 5
	maxExperienceBonus     = 20
	maxScore               = 100
)

// Score rates how well an employee covers the required skills. Skills match
// case-insensitively when either one contains the other, so "React" matches
// "React.js". An empty requirement always scores 0.
func Score(employeeSkills, requiredSkills []string, experience int) int {
	if len(requiredSkills) == 0 {
		return 0
	}

	lowered := make([]string, 0, len(employeeSkills))
	for _, skill := range employeeSkills {
		lowered = append(lowered, strings.ToLower(skill))
	}

	matched := 0
	for _, required := range requiredSkills {
		req := strings.ToLower(required)
		for _, have := range lowered {
			if strings.Contains(have, req) || strings.Contains(req, have) {
				matched++
				break
			}
		}
	}

	base := round(float64(matched) / float64(len(requiredSkills)) * 100)
	return min(base+experienceBonus(experience), maxScore)
}

func experienceBonus(years int) int {
	if years < 0 {
		return 0
	}
	return min(years*experienceBonusPerYear, maxExperienceBonus)
}

// SelectTeam ranks the whole roster and returns copies of the best size employees
// together with the full ranking. Ties on score are broken by experience; full
// ties keep roster order.
func SelectTeam(required []string, roster []Employee, size int) ([]Employee, []ScoredCandidate) {
	ranked := Rank(required, roster)

	n := min(max(size, 0), len(ranked))
	team := make([]Employee, 0, n)
	for _, candidate := range ranked[:n] {
		team = append(team, candidate.Employee.Clone())
	}

	return team, ranked
}

// Rank scores every employee and sorts them best first.
func Rank(required []string, roster []Employee) []ScoredCandidate {
	ranked := make([]ScoredCandidate, 0, len(roster))
	for _, employee := range roster {
		ranked = append(ranked, ScoredCandidate{
			Employee:   employee,
			Score:      Score(employee.Skills, required, employee.Experience),
			Experience: employee.Experience,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Experience > ranked[j].Experience
	})

	return ranked
}
