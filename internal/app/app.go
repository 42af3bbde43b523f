// Package app wires prediction, staffing and advice into the operations the CLI exposes.
package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/advisor"
	"github.com/spigell/resource-allocator/internal/extraction"
	"github.com/spigell/resource-allocator/internal/filtering"
	"github.com/spigell/resource-allocator/internal/logger"
	"github.com/spigell/resource-allocator/internal/prediction"
	"github.com/spigell/resource-allocator/internal/staffing"
	"github.com/spigell/resource-allocator/internal/storage"
)

const (
	MinTeamSize = 1
	MaxTeamSize = 10
)

type App struct {
	state     *State
	store     storage.Store
	predictor *prediction.Service
	advisor   *advisor.Advisor
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

func New(state *State, store storage.Store, predictor *prediction.Service, adv *advisor.Advisor, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	if predictor == nil {
		predictor = prediction.NewService(nil, 0, log)
	}
	if adv == nil {
		adv = advisor.New(nil, state.Knowledge, 0, log)
	}

	return &App{
		state:     state,
		store:     store,
		predictor: predictor,
		advisor:   adv,
		logger:    log,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// AnalyzeRequest leaves Complexity, TeamSize and Budget at their zero values to take them from the prediction.
// Pool narrows the employees the team is picked from; skill gaps are still measured against the whole roster.
type AnalyzeRequest struct {
	Name        string
	Description string
	Complexity  staffing.Complexity
	TeamSize    int
	Budget      float64
	Pool        *filtering.Config
}

type AnalyzeResult struct {
	Project          staffing.Project           `json:"project"`
	Ranking          []staffing.ScoredCandidate `json:"ranking"`
	Parameters       *extraction.Parameters     `json:"parameters,omitempty"`
	ParametersSource prediction.Source          `json:"parameters_source,omitempty"`
	SummarySource    prediction.Source          `json:"summary_source"`
	SkillsSource     prediction.Source          `json:"skills_source"`
	Filters          []filtering.Status         `json:"filters,omitempty"`
	Warning          error                      `json:"-"`
}

type EmployeeChange struct {
	Employee staffing.Employee `json:"employee"`
	Warning  error             `json:"-"`
}

type TeamChange struct {
	Project staffing.Project  `json:"project"`
	Member  staffing.Employee `json:"member"`
	Warning error             `json:"-"`
}

type AskResult struct {
	Advice  advisor.Advice    `json:"advice"`
	Entry   advisor.ChatEntry `json:"entry"`
	Warning error             `json:"-"`
}

func (a *App) State() *State {
	return a.state
}

// Predict estimates project parameters without creating a project.
func (a *App) Predict(ctx context.Context, description string) (extraction.Parameters, prediction.Source, error) {
	if strings.TrimSpace(description) == "" {
		return extraction.Parameters{}, "", ErrEmptyDescription
	}

	params, source := a.predictor.Parameters(ctx, description)
	return params, source, nil
}

// Analyze runs the whole pipeline for a new project and stores the result.
func (a *App) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if req.TeamSize != 0 && (req.TeamSize < MinTeamSize || req.TeamSize > MaxTeamSize) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTeamSize, req.TeamSize)
	}
	if req.Budget < 0 {
		return nil, fmt.Errorf("%w: got %.0f", ErrInvalidBudget, req.Budget)
	}

	complexity := req.Complexity
	if complexity != "" {
		c, ok := staffing.ParseComplexity(string(complexity))
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrInvalidComplexity, req.Complexity)
		}
		complexity = c
	}

	steps := filtering.Default()
	pool, err := filtering.Run(ctx, req.Pool, filtering.Deps{Logger: a.logger}, steps, a.state.Employees)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPool, err)
	}

	result := &AnalyzeResult{}
	if !req.Pool.IsZero() {
		result.Filters = filtering.Describe(steps)
	}
	teamSize, budget := req.TeamSize, req.Budget

	if complexity == "" || teamSize == 0 || budget == 0 {
		params, source := a.predictor.Parameters(ctx, description)
		result.Parameters = &params
		result.ParametersSource = source

		if complexity == "" {
			complexity = params.Complexity
		}
		if teamSize == 0 {
			teamSize = min(max(params.TeamSize, MinTeamSize), MaxTeamSize)
		}
		if budget == 0 {
			budget = float64(params.Budget)
		}
	}

	var summary string
	if result.Parameters != nil && strings.TrimSpace(result.Parameters.Summary) != "" {
		summary, result.SummarySource = result.Parameters.Summary, result.ParametersSource
	} else {
		summary, result.SummarySource = a.predictor.Summary(ctx, description)
	}

	var skills []string
	skills, result.SkillsSource = a.predictor.Skills(ctx, description)
	skills = staffing.Unique(skills)

	team, ranking := staffing.SelectTeam(skills, pool, teamSize)
	gaps := staffing.AnalyzeGaps(skills, a.state.Employees)
	timeline := staffing.TimelineDays(complexity, len(team))

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("Project %d", len(a.state.Projects)+1)
	}

	project := staffing.Project{
		ID:             a.newID(),
		Name:           name,
		Description:    description,
		Summary:        summary,
		RequiredSkills: skills,
		Complexity:     complexity,
		TeamSize:       teamSize,
		Timeline:       timeline,
		EstimatedCost:  staffing.EstimateCost(team, timeline),
		Budget:         budget,
		Team:           team,
		SkillGaps:      gaps,
		CreatedAt:      a.now(),
	}
	if result.Parameters != nil {
		project.RiskLevel = result.Parameters.RiskLevel
		project.Technologies = result.Parameters.Technologies
	}

	a.state.Projects = append(a.state.Projects, project)
	result.Project = project
	result.Ranking = ranking
	result.Warning = a.persist(ctx, storage.KeyProjects, a.state.Projects)

	logger.WithProjectFields(a.logger, project.ID, project.Name).Info("project analyzed",
		zap.String("complexity", string(project.Complexity)),
		zap.Int("team", len(project.Team)),
		zap.Int("timeline_days", project.Timeline),
		zap.Float64("estimated_cost", project.EstimatedCost),
		zap.Int("coverage", gaps.CoveragePercentage),
	)

	return result, nil
}

func (a *App) AddEmployee(ctx context.Context, e staffing.Employee) (*EmployeeChange, error) {
	if e.Experience < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidExperience, e.Experience)
	}
	e = normalizeEmployee(e)
	if e.Name == "" {
		return nil, ErrInvalidEmployee
	}
	if _, ok := a.findEmployee(e.Name); ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEmployee, e.Name)
	}

	a.state.Employees = append(a.state.Employees, e)
	a.logger.Info("employee added", zap.String("employee", e.Name), zap.Strings("skills", e.Skills))

	return &EmployeeChange{
		Employee: e,
		Warning:  a.persist(ctx, storage.KeyEmployees, a.state.Employees),
	}, nil
}

// SeedEmployees replaces the roster with the sample roster. A non-nil error is a
// *PersistError and the new roster is in place regardless.
func (a *App) SeedEmployees(ctx context.Context) ([]staffing.Employee, error) {
	a.state.Employees = SeedRoster()
	a.logger.Info("sample roster loaded", zap.Int("employees", len(a.state.Employees)))

	return a.state.Employees, a.persist(ctx, storage.KeyEmployees, a.state.Employees)
}

// RemoveEmployee drops the employee from the roster. Project teams keep their snapshots.
func (a *App) RemoveEmployee(ctx context.Context, name string) (*EmployeeChange, error) {
	index, ok := a.findEmployee(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, name)
	}

	removed := a.state.Employees[index]
	a.state.Employees = append(a.state.Employees[:index], a.state.Employees[index+1:]...)
	a.logger.Info("employee removed", zap.String("employee", removed.Name))

	return &EmployeeChange{
		Employee: removed,
		Warning:  a.persist(ctx, storage.KeyEmployees, a.state.Employees),
	}, nil
}

// AddTeamMember copies a roster employee into the project team and re-estimates it.
func (a *App) AddTeamMember(ctx context.Context, projectID, employeeName string) (*TeamChange, error) {
	p, err := a.project(projectID)
	if err != nil {
		return nil, err
	}

	index, ok := a.findEmployee(employeeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, employeeName)
	}
	member := a.state.Employees[index]

	if err := p.AddMember(member); err != nil {
		return nil, fmt.Errorf("add %s to %s: %w", member.Name, p.Name, err)
	}
	p.Reestimate()

	logger.WithProjectFields(a.logger, p.ID, p.Name).Info("team member added",
		zap.String("employee", member.Name),
		zap.Int("timeline_days", p.Timeline),
		zap.Float64("estimated_cost", p.EstimatedCost),
	)

	return &TeamChange{
		Project: *p,
		Member:  member,
		Warning: a.persist(ctx, storage.KeyProjects, a.state.Projects),
	}, nil
}

// RemoveTeamMember removes the member at index (zero based) and re-estimates the project.
func (a *App) RemoveTeamMember(ctx context.Context, projectID string, index int) (*TeamChange, error) {
	p, err := a.project(projectID)
	if err != nil {
		return nil, err
	}

	removed, err := p.RemoveMember(index)
	if err != nil {
		return nil, fmt.Errorf("remove member %d from %s: %w", index, p.Name, err)
	}
	p.Reestimate()

	logger.WithProjectFields(a.logger, p.ID, p.Name).Info("team member removed",
		zap.String("employee", removed.Name),
		zap.Int("timeline_days", p.Timeline),
		zap.Float64("estimated_cost", p.EstimatedCost),
	)

	return &TeamChange{
		Project: *p,
		Member:  removed,
		Warning: a.persist(ctx, storage.KeyProjects, a.state.Projects),
	}, nil
}

// Ask answers a question about the project's skill gaps and records it in the chat history.
func (a *App) Ask(ctx context.Context, projectID, question string) (*AskResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	p, err := a.project(projectID)
	if err != nil {
		return nil, err
	}

	advice := a.advisor.Advise(ctx, *p, question)
	entry := advisor.ChatEntry{
		Project:       p.Name,
		Question:      question,
		Advice:        advice.Text,
		MissingSkills: advice.MissingSkills,
		Timestamp:     a.now(),
	}
	a.state.Chat = append(a.state.Chat, entry)

	return &AskResult{
		Advice:  advice,
		Entry:   entry,
		Warning: a.persist(ctx, storage.KeyChatHistory, a.state.Chat),
	}, nil
}

// History returns the chat entries recorded for the named project, oldest first.
func (a *App) History(projectName string) []advisor.ChatEntry {
	entries := make([]advisor.ChatEntry, 0)
	for _, entry := range a.state.Chat {
		if entry.Project == projectName {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Project finds a project by ID, or by its 1-based position in the project list.
func (a *App) Project(id string) (staffing.Project, error) {
	p, err := a.project(id)
	if err != nil {
		return staffing.Project{}, err
	}
	return *p, nil
}

func (a *App) Projects() []staffing.Project {
	return a.state.Projects
}

func (a *App) Employees() []staffing.Employee {
	return a.state.Employees
}

func (a *App) Portfolio() staffing.Portfolio {
	return staffing.Summarize(a.state.Projects)
}

func (a *App) SkillDistribution() []staffing.SkillCount {
	return staffing.SkillDistribution(a.state.Employees)
}

func (a *App) project(id string) (*staffing.Project, error) {
	id = strings.TrimSpace(id)
	for i := range a.state.Projects {
		if a.state.Projects[i].ID == id {
			return &a.state.Projects[i], nil
		}
	}

	if position, err := strconv.Atoi(id); err == nil && position >= 1 && position <= len(a.state.Projects) {
		return &a.state.Projects[position-1], nil
	}

	return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

func (a *App) findEmployee(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, e := range a.state.Employees {
		if strings.EqualFold(e.Name, name) {
			return i, true
		}
	}
	return 0, false
}

// Export writes every document to dst, for example to move data from JSON files into SQLite.
// All documents are attempted even when some fail.
func (a *App) Export(ctx context.Context, dst storage.Store) error {
	documents := []struct {
		key   string
		value any
	}{
		{storage.KeyEmployees, a.state.Employees},
		{storage.KeyProjects, a.state.Projects},
		{storage.KeyChatHistory, a.state.Chat},
		{storage.KeyKnowledgeBase, a.state.Knowledge},
	}

	var errs error
	for _, doc := range documents {
		if err := dst.Save(ctx, doc.key, doc.value); err != nil {
			errs = multierr.Append(errs, &PersistError{Key: doc.key, Err: err})
		}
	}
	return errs
}

// persist never fails the operation. The returned warning is also logged.
func (a *App) persist(ctx context.Context, key string, v any) error {
	if a.store == nil {
		return nil
	}

	if err := a.store.Save(ctx, key, v); err != nil {
		a.logger.Error("failed to persist state", zap.String("key", key), zap.Error(err))
		return &PersistError{Key: key, Err: err}
	}
	return nil
}
