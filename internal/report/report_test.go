package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spigell/resource-allocator/internal/advisor"
	"github.com/spigell/resource-allocator/internal/extraction"
	"github.com/spigell/resource-allocator/internal/filtering"
	"github.com/spigell/resource-allocator/internal/prediction"
	"github.com/spigell/resource-allocator/internal/staffing"
)

func sampleProject() staffing.Project {
	return staffing.Project{
		ID:             "p-1",
		Name:           "Ledger",
		Summary:        "A ledger.",
		RequiredSkills: []string{"Go", "Blockchain"},
		Complexity:     staffing.ComplexityHigh,
		TeamSize:       2,
		Timeline:       15,
		EstimatedCost:  125000,
		Budget:         100000,
		Team:           []staffing.Employee{{Name: "Alice", Skills: []string{"Go"}, Experience: 3}},
		SkillGaps: staffing.SkillGapResult{
			MissingSkills:      []string{"Blockchain"},
			CoveredSkills:      []string{"Go"},
			CoveragePercentage: 50,
		},
	}
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Fatalf("expected %q in output:\n%s", w, out)
		}
	}
}

func TestProject(t *testing.T) {
	var buf bytes.Buffer
	Project(&buf, sampleProject())

	assertContains(t, buf.String(),
		"Ledger", "Go, Blockchain", "1 of 2", "15 days",
		"$125,000", "$100,000", "over budget",
		"Alice", "65%", "Missing skills", "50%",
	)
}

func TestTeamWithoutMembers(t *testing.T) {
	var buf bytes.Buffer
	p := sampleProject()
	p.Team = nil
	Team(&buf, p)

	assertContains(t, buf.String(), "No team members selected yet.")
}

func TestRankingLimit(t *testing.T) {
	var buf bytes.Buffer
	Ranking(&buf, []staffing.ScoredCandidate{
		{Employee: staffing.Employee{Name: "Grace"}, Score: 53},
		{Employee: staffing.Employee{Name: "Alice"}, Score: 48},
	}, 1)

	out := buf.String()
	assertContains(t, out, "Grace", "53%")
	if strings.Contains(out, "Alice") {
		t.Fatalf("expected ranking to be limited:\n%s", out)
	}
}

func TestParametersAndPortfolio(t *testing.T) {
	var buf bytes.Buffer
	Parameters(&buf, extraction.PredictParameters("A simple landing page"), prediction.SourceFallback)
	Portfolio(&buf, staffing.Portfolio{Projects: 2, TotalEstimatedCost: 1234567, AverageTeamSize: 3.5, OverBudget: 1},
		[]staffing.SkillCount{{Skill: "Python", Count: 2}})

	assertContains(t, buf.String(), "fallback", "low", "$10,000", "4 weeks", "$1,234,567", "3.5", "Python")
}

func TestAdviceAndHistory(t *testing.T) {
	var buf bytes.Buffer
	Advice(&buf, advisor.Advice{Text: "## Plan", Source: prediction.SourceAI})
	Suggestions(&buf, advisor.SuggestQuestions(nil))
	History(&buf, []advisor.ChatEntry{{
		Question:  "Who?",
		Advice:    "Hire.",
		Timestamp: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}})

	assertContains(t, buf.String(), "## Plan", "(ai)", "1. How can we optimize", "Who?", "2024-05-01 10:00", "Hire.")
}

func TestMoney(t *testing.T) {
	for in, want := range map[float64]string{0: "$0", 999: "$999", 1000: "$1,000", -25000: "-$25,000"} {
		if got := money(in); got != want {
			t.Fatalf("money(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestEmptyListings(t *testing.T) {
	var buf bytes.Buffer
	Projects(&buf, nil)
	Employees(&buf, nil)

	assertContains(t, buf.String(), "No projects analyzed yet.", "No employees in the roster.")
}

func TestFilters(t *testing.T) {
	var buf bytes.Buffer
	Filters(&buf, nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output without filters, got %q", buf.String())
	}

	Filters(&buf, []filtering.Status{
		{Name: "workload", Enabled: true, Details: map[string]string{"max_workload": "80"}},
		{Name: "experience", Enabled: false},
	})
	assertContains(t, buf.String(), "Candidate pool", "workload", "max_workload=80", "experience", "false")
}
