package staffing

// AnalyzeGaps compares the required skills with everything the roster knows.
// Unlike Score it uses exact, case-sensitive names: "react" does not cover "React".
func AnalyzeGaps(required []string, roster []Employee) SkillGapResult {
	available := make(map[string]struct{})
	for _, employee := range roster {
		for _, skill := range employee.Skills {
			available[skill] = struct{}{}
		}
	}

	result := SkillGapResult{
		MissingSkills: []string{},
		CoveredSkills: []string{},
	}

	requiredSet := Unique(required)
	for _, skill := range requiredSet {
		if _, ok := available[skill]; ok {
			result.CoveredSkills = append(result.CoveredSkills, skill)
			continue
		}
		result.MissingSkills = append(result.MissingSkills, skill)
	}

	if len(requiredSet) > 0 {
		result.CoveragePercentage = round(float64(len(result.CoveredSkills)) / float64(len(requiredSet)) * 100)
	}

	return result
}

// TeamGaps analyzes the project's requirements against its assigned team only.
func TeamGaps(p Project) SkillGapResult {
	return AnalyzeGaps(p.RequiredSkills, p.Team)
}
