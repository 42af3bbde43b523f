package gemini

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resource-allocator/internal/ai"
	"github.com/spigell/resource-allocator/internal/staffing"
)

type stubGenerator struct {
	answer  string
	err     error
	system  string
	prompts []string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.system = system
	s.prompts = append(s.prompts, message)
	return s.answer, s.err
}

func TestPredictParametersParsesFencedJSON(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{answer: "Sure!\n```json\n{\"summary\": \" Shop \", \"complexity\": \"High\", \"recommended_team_size\": \"4\", \"estimated_budget\": 60000.0, \"timeline_weeks\": 0, \"risk_level\": \"Medium\", \"key_technologies\": [\"Go\", \" Go \", \"\"]}\n```"}
	assistant := NewAssistant(gen, 0, nil)

	params, err := assistant.PredictParameters(context.Background(), "An online shop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if params.Complexity != staffing.ComplexityHigh {
		t.Fatalf("expected high complexity, got %q", params.Complexity)
	}
	if params.TeamSize != 4 || params.Budget != 60000 {
		t.Fatalf("unexpected team size or budget: %+v", params)
	}
	if params.TimelineWeeks != 16 {
		t.Fatalf("expected missing timeline to fall back to tier default, got %d", params.TimelineWeeks)
	}
	if params.RiskLevel != "medium" || params.Summary != "Shop" {
		t.Fatalf("unexpected normalization: %+v", params)
	}
	if !reflect.DeepEqual(params.Technologies, []string{"Go"}) {
		t.Fatalf("unexpected technologies: %v", params.Technologies)
	}
	if !strings.Contains(gen.prompts[0], "Project: An online shop") {
		t.Fatalf("description missing from prompt: %s", gen.prompts[0])
	}
	if gen.system != systemPrompt {
		t.Fatalf("expected system prompt to be sent")
	}
}

func TestParseParametersClampsTeamSize(t *testing.T) {
	t.Parallel()

	params, err := parseParameters(`{"complexity": "very high", "recommended_team_size": 25}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.TeamSize != 10 {
		t.Fatalf("expected team size clamped to 10, got %d", params.TeamSize)
	}
	if params.Budget != 150000 || params.RiskLevel != "high" {
		t.Fatalf("expected tier defaults, got %+v", params)
	}
}

func TestParseParametersRejectsBadAnswers(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"no json here",
		`{"complexity": "galactic"}`,
		`{"complexity": "low", "recommended_team_size": "many"}`,
	} {
		if _, err := parseParameters(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestPredictSkills(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{answer: `Here you go: ["Go", "Docker", 42, "Go", " "]`}
	skills, err := NewAssistant(gen, 0, nil).PredictSkills(context.Background(), "A service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(skills, []string{"Go", "Docker"}) {
		t.Fatalf("unexpected skills: %v", skills)
	}

	gen.answer = "[]"
	if _, err := NewAssistant(gen, 0, nil).PredictSkills(context.Background(), "A service"); !errors.Is(err, errEmptyAnswer) {
		t.Fatalf("expected empty answer error, got %v", err)
	}
}

func TestSummarizeRejectsBlankAnswer(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{answer: "  \n"}
	if _, err := NewAssistant(gen, 0, nil).Summarize(context.Background(), "text"); !errors.Is(err, errEmptyAnswer) {
		t.Fatalf("expected empty answer error, got %v", err)
	}
}

func TestAdvise(t *testing.T) {
	t.Parallel()

	project := staffing.Project{
		Name:           "Ledger",
		RequiredSkills: []string{"Go", "Blockchain"},
		Complexity:     staffing.ComplexityVeryHigh,
		Budget:         150000,
		Timeline:       45,
		Team: []staffing.Employee{
			{Name: "Alice", Skills: []string{"Go", "SQL"}},
		},
	}

	gen := &stubGenerator{answer: "too short"}
	assistant := NewAssistant(gen, 0, nil)
	req := ai.AdviceRequest{Project: project, MissingSkills: []string{"Blockchain"}, Question: "Who should we hire?"}

	if _, err := assistant.Advise(context.Background(), req); err == nil {
		t.Fatal("expected short advice to be rejected")
	}

	prompt := gen.prompts[0]
	for _, want := range []string{"Ledger", "No description", "Blockchain", "Go, SQL", "150000", "45", "very high", "Unknown", "Who should we hire?"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected %q in prompt:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "{{") {
		t.Fatalf("unfilled placeholder in prompt:\n%s", prompt)
	}

	gen.answer = strings.Repeat("Hire a contractor. ", 10)
	advice, err := assistant.Advise(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if advice != strings.TrimSpace(gen.answer) {
		t.Fatalf("unexpected advice: %q", advice)
	}
}

func TestGenerateLogsTruncatedPreview(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	gen := &stubGenerator{answer: strings.Repeat("x", 50)}
	assistant := NewAssistant(gen, 10, zap.New(core))

	if _, err := assistant.Summarize(context.Background(), "desc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := logs.FilterMessage("gemini generate content response").All()
	if len(entries) != 1 {
		t.Fatalf("expected one response log entry, got %d", len(entries))
	}
	preview, _ := entries[0].ContextMap()["response_preview"].(string)
	if len([]rune(preview)) > 13 {
		t.Fatalf("expected truncated preview, got %q", preview)
	}
}
