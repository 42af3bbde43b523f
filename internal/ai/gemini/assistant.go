package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/ai"
	"github.com/spigell/resource-allocator/internal/extraction"
	"github.com/spigell/resource-allocator/internal/staffing"
	"github.com/spigell/resource-allocator/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed prompts/system.md
var systemPrompt string

//go:embed prompts/summary.md
var summaryTemplate string

//go:embed prompts/parameters.md
var parametersTemplate string

//go:embed prompts/skills.md
var skillsTemplate string

//go:embed prompts/advice.md
var adviceTemplate string

const (
	defaultMaxLogLength = 200
	minAdviceLength     = 100
	minTeamSize         = 1
	maxTeamSize         = 10
)

var errEmptyAnswer = errors.New("gemini answer is empty")

// Assistant implements ai.Assistant on top of Gemini text generation.
type Assistant struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Assistant = (*Assistant)(nil)

func NewAssistant(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Assistant {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Assistant{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Assistant) Summarize(ctx context.Context, description string) (string, error) {
	raw, err := a.generate(ctx, "summary", fill(summaryTemplate, map[string]string{"DESCRIPTION": description}))
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(raw)
	if summary == "" {
		return "", errEmptyAnswer
	}
	return summary, nil
}

func (a *Assistant) PredictParameters(ctx context.Context, description string) (*extraction.Parameters, error) {
	raw, err := a.generate(ctx, "parameters", fill(parametersTemplate, map[string]string{"DESCRIPTION": description}))
	if err != nil {
		return nil, err
	}
	return parseParameters(raw)
}

func (a *Assistant) PredictSkills(ctx context.Context, description string) ([]string, error) {
	raw, err := a.generate(ctx, "skills", fill(skillsTemplate, map[string]string{"DESCRIPTION": description}))
	if err != nil {
		return nil, err
	}
	return parseSkills(raw)
}

func (a *Assistant) Advise(ctx context.Context, req ai.AdviceRequest) (string, error) {
	raw, err := a.generate(ctx, "advice", buildAdvicePrompt(req))
	if err != nil {
		return "", err
	}

	advice := strings.TrimSpace(raw)
	if utf8.RuneCountInString(advice) < minAdviceLength {
		return "", fmt.Errorf("advice is too short (%d characters)", utf8.RuneCountInString(advice))
	}
	return advice, nil
}

func (a *Assistant) generate(ctx context.Context, kind, prompt string) (string, error) {
	a.logger.Debug("gemini generate content request",
		zap.String("kind", kind),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, systemPrompt, prompt)
	if err != nil {
		return "", err
	}

	a.logger.Debug("gemini generate content response",
		zap.String("kind", kind),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	return raw, nil
}

func fill(template string, values map[string]string) string {
	prompt := template
	for key, value := range values {
		prompt = strings.ReplaceAll(prompt, "{{"+key+"}}", value)
	}
	return prompt
}

func buildAdvicePrompt(req ai.AdviceRequest) string {
	p := req.Project

	teamSkills := make([]string, 0)
	for _, member := range p.Team {
		teamSkills = append(teamSkills, member.Skills...)
	}

	risk := p.RiskLevel
	if risk == "" {
		risk = "Unknown"
	}

	return fill(adviceTemplate, map[string]string{
		"NAME":            p.Name,
		"DESCRIPTION":     orDefault(p.Description, "No description"),
		"SUMMARY":         orDefault(p.Summary, "No summary"),
		"MISSING_SKILLS":  strings.Join(req.MissingSkills, ", "),
		"TEAM_SKILLS":     strings.Join(teamSkills, ", "),
		"REQUIRED_SKILLS": strings.Join(p.RequiredSkills, ", "),
		"TEAM_SIZE":       strconv.Itoa(len(p.Team)),
		"BUDGET":          strconv.FormatFloat(p.Budget, 'f', 0, 64),
		"ESTIMATED_COST":  strconv.FormatFloat(p.EstimatedCost, 'f', 0, 64),
		"TIMELINE":        strconv.Itoa(p.Timeline),
		"COMPLEXITY":      orDefault(string(p.Complexity), "Unknown"),
		"RISK_LEVEL":      risk,
		"QUESTION":        req.Question,
	})
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func parseParameters(raw string) (*extraction.Parameters, error) {
	cleaned, err := extractDelimited(extractJSON(raw), '{', '}')
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini parameters: %w", err)
	}

	var params extraction.Parameters
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &params,
	})
	if err != nil {
		return nil, fmt.Errorf("build parameters decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini parameters: %w", err)
	}

	complexity, ok := staffing.ParseComplexity(string(params.Complexity))
	if !ok {
		return nil, fmt.Errorf("unknown complexity %q", params.Complexity)
	}
	params.Complexity = complexity

	defaults := extraction.DefaultsFor(complexity)
	if params.TeamSize <= 0 {
		params.TeamSize = defaults.TeamSize
	}
	params.TeamSize = min(max(params.TeamSize, minTeamSize), maxTeamSize)
	if params.Budget <= 0 {
		params.Budget = defaults.Budget
	}
	if params.TimelineWeeks <= 0 {
		params.TimelineWeeks = defaults.TimelineWeeks
	}
	params.RiskLevel = strings.ToLower(strings.TrimSpace(params.RiskLevel))
	if params.RiskLevel == "" {
		params.RiskLevel = defaults.RiskLevel
	}
	params.Summary = strings.TrimSpace(params.Summary)
	params.Technologies = cleanList(params.Technologies)

	return &params, nil
}

func parseSkills(raw string) ([]string, error) {
	cleaned, err := extractDelimited(extractJSON(raw), '[', ']')
	if err != nil {
		return nil, err
	}

	var items []any
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("parse gemini skills: %w", err)
	}

	skills := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			skills = append(skills, s)
		}
	}

	skills = cleanList(skills)
	if len(skills) == 0 {
		return nil, errEmptyAnswer
	}
	return skills, nil
}

func cleanList(items []string) []string {
	trimmed := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			trimmed = append(trimmed, item)
		}
	}
	return staffing.Unique(trimmed)
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// extractDelimited cuts the outermost open..close span out of chatty model output.
func extractDelimited(raw string, opening, closing byte) (string, error) {
	start := strings.IndexByte(raw, opening)
	end := strings.LastIndexByte(raw, closing)
	if start == -1 || end <= start {
		return "", fmt.Errorf("no %c...%c block in gemini response", opening, closing)
	}
	return raw[start : end+1], nil
}
