package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resource-allocator/internal/advisor"
	"github.com/spigell/resource-allocator/internal/ai"
	"github.com/spigell/resource-allocator/internal/extraction"
	"github.com/spigell/resource-allocator/internal/filtering"
	"github.com/spigell/resource-allocator/internal/knowledge"
	"github.com/spigell/resource-allocator/internal/prediction"
	"github.com/spigell/resource-allocator/internal/staffing"
	"github.com/spigell/resource-allocator/internal/storage"
)

type stubAssistant struct {
	params    *extraction.Parameters
	skills    []string
	adviceErr error
}

func (s *stubAssistant) Summarize(context.Context, string) (string, error) {
	return "Assistant summary.", nil
}

func (s *stubAssistant) PredictParameters(context.Context, string) (*extraction.Parameters, error) {
	copied := *s.params
	return &copied, nil
}

func (s *stubAssistant) PredictSkills(context.Context, string) ([]string, error) {
	return s.skills, nil
}

func (s *stubAssistant) Advise(context.Context, ai.AdviceRequest) (string, error) {
	return "", s.adviceErr
}

type failingStore struct {
	storage.Store
	err error
}

func (f failingStore) Save(context.Context, string, any) error {
	return f.err
}

func newStub() *stubAssistant {
	return &stubAssistant{
		params: &extraction.Parameters{
			Summary:       "Predicted summary.",
			Complexity:    staffing.ComplexityHigh,
			TeamSize:      2,
			Budget:        50000,
			TimelineWeeks: 16,
			RiskLevel:     "high",
			Technologies:  []string{"Python", "React"},
		},
		skills:    []string{"Python", "React", "Blockchain", "Python"},
		adviceErr: errors.New("assistant offline"),
	}
}

func newTestApp(t *testing.T, store storage.Store, log *zap.Logger) *App {
	t.Helper()

	if log == nil {
		log = zap.NewNop()
	}

	state := Load(context.Background(), store, log)
	stub := newStub()
	a := New(state,
		store,
		prediction.NewService(stub, time.Second, log),
		advisor.New(stub, state.Knowledge, time.Second, log),
		log,
	)
	a.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	a.newID = func() string { return "project-1" }

	_, err := a.SeedEmployees(context.Background())
	require.NoError(t, err)
	return a
}

func TestAnalyzeBuildsAndStoresProject(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewJSONStore(dir)
	require.NoError(t, err)

	a := newTestApp(t, store, nil)

	result, err := a.Analyze(context.Background(), AnalyzeRequest{Description: "Trading platform"})
	require.NoError(t, err)

	p := result.Project
	require.Equal(t, "project-1", p.ID)
	require.Equal(t, "Project 1", p.Name)
	require.Equal(t, "Predicted summary.", p.Summary)
	require.Equal(t, []string{"Python", "React", "Blockchain"}, p.RequiredSkills)
	require.Equal(t, staffing.ComplexityHigh, p.Complexity)
	require.Equal(t, 2, p.TeamSize)
	require.Equal(t, 50000.0, p.Budget)
	require.Equal(t, "high", p.RiskLevel)

	require.Len(t, p.Team, 2)
	require.Equal(t, "Grace", p.Team[0].Name)
	require.Equal(t, "Alice", p.Team[1].Name, "ties on score and experience keep roster order")
	require.Equal(t, "Frank", result.Ranking[2].Employee.Name)

	require.Equal(t, []string{"Blockchain"}, p.SkillGaps.MissingSkills)
	require.Equal(t, 67, p.SkillGaps.CoveragePercentage)
	require.Equal(t, 15, p.Timeline)
	require.Equal(t, 15250.0, p.EstimatedCost)

	require.Equal(t, prediction.SourceAI, result.ParametersSource)
	require.Equal(t, prediction.SourceAI, result.SkillsSource)
	require.NoError(t, result.Warning)

	reloaded := Load(context.Background(), store, nil)
	require.Len(t, reloaded.Projects, 1)
	require.Equal(t, p.EstimatedCost, reloaded.Projects[0].EstimatedCost)
	require.Len(t, reloaded.Employees, 7)
}

func TestAnalyzeHonoursExplicitParameters(t *testing.T) {
	a := newTestApp(t, nil, nil)

	result, err := a.Analyze(context.Background(), AnalyzeRequest{
		Name:        "Shop",
		Description: "Online shop",
		Complexity:  "Low",
		TeamSize:    1,
		Budget:      5000,
	})
	require.NoError(t, err)

	require.Nil(t, result.Parameters, "no prediction is needed when everything is given")
	require.Equal(t, "Assistant summary.", result.Project.Summary)
	require.Equal(t, staffing.ComplexityLow, result.Project.Complexity)
	require.Len(t, result.Project.Team, 1)
	require.Equal(t, 3, result.Project.Timeline)
	require.Equal(t, 1400.0, result.Project.EstimatedCost)
	require.True(t, staffing.WithinBudget(result.Project))
}

func TestAnalyzeSelectsFromFilteredPool(t *testing.T) {
	a := newTestApp(t, nil, nil)

	result, err := a.Analyze(context.Background(), AnalyzeRequest{
		Description: "Trading platform",
		Pool:        &filtering.Config{Exclude: []string{"grace"}, MinExperience: 3},
	})
	require.NoError(t, err)

	require.Len(t, result.Project.Team, 2)
	require.Equal(t, "Alice", result.Project.Team[0].Name)
	require.Equal(t, "Frank", result.Project.Team[1].Name)
	require.Equal(t, 67, result.Project.SkillGaps.CoveragePercentage, "gaps are measured against the whole roster")
	require.Len(t, a.Employees(), 7)
	require.Len(t, result.Filters, 3)
	require.Equal(t, "grace", result.Filters[0].Details["names"])

	_, err = a.Analyze(context.Background(), AnalyzeRequest{
		Description: "Trading platform",
		Pool:        &filtering.Config{MaxWorkload: 150},
	})
	require.ErrorIs(t, err, ErrInvalidPool)
}

func TestAnalyzeValidation(t *testing.T) {
	a := newTestApp(t, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  AnalyzeRequest
		err  error
	}{
		{"empty description", AnalyzeRequest{Description: "  "}, ErrEmptyDescription},
		{"team too large", AnalyzeRequest{Description: "x", TeamSize: 11}, ErrInvalidTeamSize},
		{"negative team", AnalyzeRequest{Description: "x", TeamSize: -1}, ErrInvalidTeamSize},
		{"negative budget", AnalyzeRequest{Description: "x", Budget: -1}, ErrInvalidBudget},
		{"unknown complexity", AnalyzeRequest{Description: "x", Complexity: "extreme"}, ErrInvalidComplexity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Analyze(ctx, tt.req)
			require.ErrorIs(t, err, tt.err)
		})
	}
	require.Empty(t, a.Projects())
}

func TestTeamEditsReestimate(t *testing.T) {
	a := newTestApp(t, nil, nil)
	ctx := context.Background()

	_, err := a.Analyze(ctx, AnalyzeRequest{Description: "Trading platform"})
	require.NoError(t, err)

	_, err = a.AddTeamMember(ctx, "project-1", "frank")
	require.ErrorIs(t, err, staffing.ErrTeamFull)

	change, err := a.RemoveTeamMember(ctx, "project-1", 0)
	require.NoError(t, err)
	require.Equal(t, "Grace", change.Member.Name)
	require.Equal(t, 13, change.Project.Timeline)
	require.Equal(t, 7150.0, change.Project.EstimatedCost)

	_, err = a.RemoveTeamMember(ctx, "project-1", 5)
	require.ErrorIs(t, err, staffing.ErrMemberNotFound)

	change, err = a.AddTeamMember(ctx, "1", "Frank")
	require.NoError(t, err)
	require.Equal(t, 15, change.Project.Timeline)
	require.Equal(t, 15500.0, change.Project.EstimatedCost)

	stored, err := a.Project("project-1")
	require.NoError(t, err)
	require.Len(t, stored.Team, 2)

	_, err = a.AddTeamMember(ctx, "missing", "Frank")
	require.ErrorIs(t, err, ErrProjectNotFound)
	_, err = a.AddTeamMember(ctx, "project-1", "Zed")
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployees(t *testing.T) {
	a := newTestApp(t, nil, nil)
	ctx := context.Background()

	change, err := a.AddEmployee(ctx, staffing.Employee{Name: " Heidi ", Skills: []string{"Go", " Go", ""}, Experience: 6})
	require.NoError(t, err)
	require.Equal(t, "Heidi", change.Employee.Name)
	require.Equal(t, []string{"Go"}, change.Employee.Skills)
	require.Len(t, a.Employees(), 8)

	_, err = a.AddEmployee(ctx, staffing.Employee{Name: "heidi"})
	require.ErrorIs(t, err, ErrDuplicateEmployee)
	_, err = a.AddEmployee(ctx, staffing.Employee{Name: " "})
	require.ErrorIs(t, err, ErrInvalidEmployee)
	_, err = a.AddEmployee(ctx, staffing.Employee{Name: "Ivan", Experience: -1})
	require.ErrorIs(t, err, ErrInvalidExperience)

	removed, err := a.RemoveEmployee(ctx, "Alice")
	require.NoError(t, err)
	require.Equal(t, "Alice", removed.Employee.Name)
	require.Len(t, a.Employees(), 7)

	_, err = a.RemoveEmployee(ctx, "Alice")
	require.ErrorIs(t, err, ErrEmployeeNotFound)

	distribution := a.SkillDistribution()
	require.Equal(t, staffing.SkillCount{Skill: "React", Count: 2}, distribution[0])
}

func TestAskRecordsHistory(t *testing.T) {
	store, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	a := newTestApp(t, store, nil)
	ctx := context.Background()

	_, err = a.Analyze(ctx, AnalyzeRequest{Description: "Trading platform"})
	require.NoError(t, err)

	_, err = a.Ask(ctx, "project-1", " ")
	require.ErrorIs(t, err, ErrEmptyQuestion)

	result, err := a.Ask(ctx, "project-1", "How do we cover Blockchain?")
	require.NoError(t, err)
	require.Equal(t, prediction.SourceFallback, result.Advice.Source)
	require.Contains(t, result.Advice.Text, "Hire senior blockchain consultants")
	require.Equal(t, []string{"Blockchain"}, result.Entry.MissingSkills)
	require.Equal(t, "Project 1", result.Entry.Project)

	require.Len(t, a.History("Project 1"), 1)
	require.Empty(t, a.History("Other"))

	reloaded := Load(ctx, store, nil)
	require.Len(t, reloaded.Chat, 1)
	require.Equal(t, "How do we cover Blockchain?", reloaded.Chat[0].Question)
}

func TestPersistFailureKeepsInMemoryChange(t *testing.T) {
	jsonStore, err := storage.NewJSONStore(t.TempDir())
	require.NoError(t, err)

	core, logs := observer.New(zapcore.ErrorLevel)
	store := failingStore{Store: jsonStore, err: errors.New("disk full")}

	state := Load(context.Background(), store, nil)
	a := New(state, store, prediction.NewService(newStub(), time.Second, nil), nil, zap.New(core))

	roster, err := a.SeedEmployees(context.Background())
	var persistErr *PersistError
	require.ErrorAs(t, err, &persistErr)
	require.Equal(t, storage.KeyEmployees, persistErr.Key)
	require.Len(t, roster, 7)

	result, err := a.Analyze(context.Background(), AnalyzeRequest{Description: "Trading platform"})
	require.NoError(t, err)
	require.ErrorAs(t, result.Warning, &persistErr)
	require.Equal(t, storage.KeyProjects, persistErr.Key)
	require.Len(t, a.Projects(), 1)
	require.Len(t, Warnings(result.Warning), 1)

	require.Equal(t, 2, logs.FilterMessage("failed to persist state").Len())
}

func TestExportCombinesFailures(t *testing.T) {
	a := newTestApp(t, nil, nil)

	target, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { target.Close() })

	require.NoError(t, a.Export(context.Background(), target))

	var employees []staffing.Employee
	found, err := target.Load(context.Background(), storage.KeyEmployees, &employees)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, employees, 7)

	err = a.Export(context.Background(), failingStore{err: errors.New("read only")})
	require.Len(t, Warnings(err), 4)
}

func TestLoadNormalizesAndToleratesCorruptDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.json"), []byte("{broken"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "employees.json"),
		[]byte(`[{"name":" Zoe ","skills":["Go","Go"," "],"experience":-2,"workload":150}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chat_history.json"),
		[]byte(`[{"project":"P","question":"q","advice":"a","timestamp":"2024-05-01T10:00:00Z"}]`), 0o644))

	store, err := storage.NewJSONStore(dir)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	state := Load(context.Background(), store, zap.New(core))

	require.NotNil(t, state.Projects)
	require.Empty(t, state.Projects)
	require.Equal(t, 1, logs.Len())

	require.Equal(t, staffing.Employee{Name: "Zoe", Skills: []string{"Go"}, Experience: 0, Workload: 100}, state.Employees[0])
	require.Len(t, state.Chat, 1)

	_, ok := state.Knowledge.Lookup("Blockchain")
	require.True(t, ok, "knowledge base defaults to the built-in table")
}

func TestLoadNormalizesProjects(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.json"),
		[]byte(`[{"id":"a","name":"A","required_skills":["Go","Go"],"complexity":"VERY HIGH"},{"id":"b","complexity":"weird"}]`), 0o644))

	kb := knowledge.Base{SkillSolutions: map[string]knowledge.Solution{"Rust": {RiskLevel: "High"}}}
	store, err := storage.NewJSONStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), storage.KeyKnowledgeBase, kb))

	state := Load(context.Background(), store, nil)

	require.Equal(t, []string{"Go"}, state.Projects[0].RequiredSkills)
	require.Equal(t, staffing.ComplexityVeryHigh, state.Projects[0].Complexity)
	require.Equal(t, staffing.ComplexityMedium, state.Projects[1].Complexity)
	require.NotNil(t, state.Projects[1].Team)
	require.NotNil(t, state.Projects[1].SkillGaps.MissingSkills)

	_, ok := state.Knowledge.Lookup("Rust")
	require.True(t, ok, "stored knowledge base replaces the default")
}

func TestPortfolio(t *testing.T) {
	a := newTestApp(t, nil, nil)

	_, err := a.Analyze(context.Background(), AnalyzeRequest{Description: "Trading platform", Budget: 10000})
	require.NoError(t, err)

	summary := a.Portfolio()
	require.Equal(t, 1, summary.Projects)
	require.Equal(t, 1, summary.OverBudget)
	require.Equal(t, 15250.0, summary.TotalEstimatedCost)
	require.Equal(t, 2.0, summary.AverageTeamSize)
}

func TestPredictDoesNotCreateProject(t *testing.T) {
	a := newTestApp(t, nil, nil)

	params, source, err := a.Predict(context.Background(), "Trading platform")
	require.NoError(t, err)
	require.Equal(t, prediction.SourceAI, source)
	require.Equal(t, staffing.ComplexityHigh, params.Complexity)
	require.Empty(t, a.Projects())

	_, _, err = a.Predict(context.Background(), " ")
	require.ErrorIs(t, err, ErrEmptyDescription)
}
