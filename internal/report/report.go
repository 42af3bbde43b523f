// Package report renders projects and rosters for the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/spigell/resource-allocator/internal/advisor"
	"github.com/spigell/resource-allocator/internal/extraction"
	"github.com/spigell/resource-allocator/internal/filtering"
	"github.com/spigell/resource-allocator/internal/prediction"
	"github.com/spigell/resource-allocator/internal/staffing"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	sectionStyle = lipgloss.NewStyle().MarginTop(1)
)

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...)
}

func money(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-$" + s
	}
	return "$" + s
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// Parameters prints a prediction and where it came from.
func Parameters(w io.Writer, p extraction.Parameters, source prediction.Source) {
	lines := []string{
		titleStyle.Render("Predicted parameters") + " " + mutedStyle.Render("("+string(source)+")"),
		field("Summary", p.Summary),
		field("Complexity", string(p.Complexity)),
		field("Team size", strconv.Itoa(p.TeamSize)),
		field("Budget", money(float64(p.Budget))),
		field("Timeline", fmt.Sprintf("%d weeks", p.TimelineWeeks)),
		field("Risk", p.RiskLevel),
		field("Technologies", joinOrDash(p.Technologies)),
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

// Project prints the full record of a project including its team and skill gaps.
func Project(w io.Writer, p staffing.Project) {
	budget := goodStyle.Render("within budget")
	if !staffing.WithinBudget(p) {
		budget = badStyle.Render("over budget")
	}

	lines := []string{
		titleStyle.Render(p.Name) + " " + mutedStyle.Render(p.ID),
		field("Summary", p.Summary),
		field("Complexity", string(p.Complexity)),
		field("Required skills", joinOrDash(p.RequiredSkills)),
		field("Team", fmt.Sprintf("%d of %d", len(p.Team), p.TeamSize)),
		field("Timeline", fmt.Sprintf("%d days", p.Timeline)),
		field("Estimated cost", fmt.Sprintf("%s of %s (%s)", money(p.EstimatedCost), money(p.Budget), budget)),
	}
	if p.RiskLevel != "" {
		lines = append(lines, field("Risk", p.RiskLevel))
	}
	if len(p.Technologies) > 0 {
		lines = append(lines, field("Technologies", joinOrDash(p.Technologies)))
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))

	Team(w, p)
	Gaps(w, p.SkillGaps)
}

// Team lists members with their match score against the project's requirements.
func Team(w io.Writer, p staffing.Project) {
	if len(p.Team) == 0 {
		fmt.Fprintln(w, sectionStyle.Render(mutedStyle.Render("No team members selected yet.")))
		return
	}

	t := newTable("#", "Name", "Skills", "Experience", "Match")
	for i, member := range p.Team {
		score := staffing.Score(member.Skills, p.RequiredSkills, member.Experience)
		t.Row(strconv.Itoa(i+1), member.Name, joinOrDash(member.Skills),
			fmt.Sprintf("%d years", member.Experience), fmt.Sprintf("%d%%", score))
	}
	fmt.Fprintln(w, sectionStyle.Render(t.String()))
}

// Ranking prints the best limit candidates, or all of them when limit is not positive.
func Ranking(w io.Writer, ranked []staffing.ScoredCandidate, limit int) {
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	t := newTable("Rank", "Name", "Skills", "Experience", "Score")
	for i, c := range ranked {
		t.Row(strconv.Itoa(i+1), c.Employee.Name, joinOrDash(c.Employee.Skills),
			strconv.Itoa(c.Experience), fmt.Sprintf("%d%%", c.Score))
	}
	fmt.Fprintln(w, sectionStyle.Render(t.String()))
}

func Gaps(w io.Writer, gaps staffing.SkillGapResult) {
	if len(gaps.MissingSkills) == 0 {
		fmt.Fprintln(w, sectionStyle.Render(goodStyle.Render("All required skills are available.")))
		return
	}

	lines := []string{
		badStyle.Render("Missing skills: ") + strings.Join(gaps.MissingSkills, ", "),
		field("Coverage", fmt.Sprintf("%d%%", gaps.CoveragePercentage)),
	}
	fmt.Fprintln(w, sectionStyle.Render(strings.Join(lines, "\n")))
}

// Projects prints one line per project, numbered from 1.
func Projects(w io.Writer, projects []staffing.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No projects analyzed yet."))
		return
	}

	t := newTable("#", "Name", "Complexity", "Team", "Timeline", "Cost", "Budget", "Coverage")
	for i, p := range projects {
		cost := money(p.EstimatedCost)
		if !staffing.WithinBudget(p) {
			cost = badStyle.Render(cost)
		}
		t.Row(strconv.Itoa(i+1), p.Name, string(p.Complexity), strconv.Itoa(len(p.Team)),
			fmt.Sprintf("%dd", p.Timeline), cost, money(p.Budget), fmt.Sprintf("%d%%", p.SkillGaps.CoveragePercentage))
	}
	fmt.Fprintln(w, t.String())
}

func Employees(w io.Writer, roster []staffing.Employee) {
	if len(roster) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No employees in the roster. Run `employees seed` or `employees add`."))
		return
	}

	t := newTable("Name", "Skills", "Experience", "Workload")
	for _, e := range roster {
		t.Row(e.Name, joinOrDash(e.Skills), fmt.Sprintf("%d years", e.Experience), fmt.Sprintf("%d%%", e.Workload))
	}
	fmt.Fprintln(w, t.String())
}

// Portfolio prints aggregate numbers over all projects and the roster's skill distribution.
func Portfolio(w io.Writer, summary staffing.Portfolio, skills []staffing.SkillCount) {
	lines := []string{
		titleStyle.Render("Portfolio"),
		field("Projects", strconv.Itoa(summary.Projects)),
		field("Total estimated cost", money(summary.TotalEstimatedCost)),
		field("Average team size", strconv.FormatFloat(summary.AverageTeamSize, 'f', 1, 64)),
		field("Over budget", strconv.Itoa(summary.OverBudget)),
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))

	if len(skills) == 0 {
		return
	}
	t := newTable("Skill", "Employees")
	for _, s := range skills {
		t.Row(s.Skill, strconv.Itoa(s.Count))
	}
	fmt.Fprintln(w, sectionStyle.Render(t.String()))
}

func Advice(w io.Writer, a advisor.Advice) {
	fmt.Fprintln(w, titleStyle.Render("Advice")+" "+mutedStyle.Render("("+string(a.Source)+")"))
	fmt.Fprintln(w, a.Text)
}

// Filters lists the candidate pool steps that shaped the team.
func Filters(w io.Writer, statuses []filtering.Status) {
	if len(statuses) == 0 {
		return
	}

	t := newTable("Filter", "Enabled", "Settings")
	for _, st := range statuses {
		settings := make([]string, 0, len(st.Details))
		for k, v := range st.Details {
			settings = append(settings, k+"="+v)
		}
		sort.Strings(settings)
		t.Row(st.Name, strconv.FormatBool(st.Enabled), joinOrDash(settings))
	}
	fmt.Fprintln(w, titleStyle.Render("Candidate pool"))
	fmt.Fprintln(w, t.String())
}

func Suggestions(w io.Writer, questions []string) {
	fmt.Fprintln(w, titleStyle.Render("Suggested questions"))
	for i, q := range questions {
		fmt.Fprintf(w, "%d. %s\n", i+1, q)
	}
}

// History prints the most recent entries last.
func History(w io.Writer, entries []advisor.ChatEntry) {
	for _, entry := range entries {
		fmt.Fprintln(w, sectionStyle.Render(
			titleStyle.Render(entry.Question)+" "+mutedStyle.Render(entry.Timestamp.Format("2006-01-02 15:04")),
		))
		fmt.Fprintln(w, entry.Advice)
	}
}
