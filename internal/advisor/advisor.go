// Package advisor answers questions about a project's missing skills.
package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/ai"
	"github.com/spigell/resource-allocator/internal/knowledge"
	"github.com/spigell/resource-allocator/internal/logger"
	"github.com/spigell/resource-allocator/internal/prediction"
	"github.com/spigell/resource-allocator/internal/staffing"
)

const (
	noGapsAdvice = "## AI Analysis\n\nNo significant skill gaps identified for this project. " +
		"The current team appears to have all the necessary skills for successful project delivery."

	defaultTimeout = 90 * time.Second
)

type Advice struct {
	Text          string            `json:"text"`
	Source        prediction.Source `json:"source"`
	MissingSkills []string          `json:"missing_skills"`
}

// ChatEntry is one answered question, kept in the advice history.
type ChatEntry struct {
	Project       string    `json:"project"`
	Question      string    `json:"question"`
	Advice        string    `json:"advice"`
	MissingSkills []string  `json:"missing_skills"`
	Timestamp     time.Time `json:"timestamp"`
}

type Advisor struct {
	assistant ai.Assistant
	knowledge *knowledge.Base
	timeout   time.Duration
	logger    *zap.Logger
}

func New(assistant ai.Assistant, kb *knowledge.Base, timeout time.Duration, log *zap.Logger) *Advisor {
	if kb == nil {
		kb = knowledge.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Advisor{
		assistant: assistant,
		knowledge: kb,
		timeout:   timeout,
		logger:    log,
	}
}

// MissingSkills prefers the gaps recorded at analysis time and recomputes
// them against the assigned team only when none were recorded.
func MissingSkills(p staffing.Project) []string {
	if len(p.SkillGaps.MissingSkills) > 0 {
		return append([]string{}, p.SkillGaps.MissingSkills...)
	}
	return staffing.TeamGaps(p).MissingSkills
}

func (a *Advisor) Advise(ctx context.Context, p staffing.Project, question string) Advice {
	missing := MissingSkills(p)
	if len(missing) == 0 {
		return Advice{Text: noGapsAdvice, Source: prediction.SourceFallback, MissingSkills: missing}
	}

	log := logger.WithProjectFields(a.logger, p.ID, p.Name)

	if a.assistant != nil {
		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		text, err := a.assistant.Advise(ctx, ai.AdviceRequest{
			Project:       p,
			MissingSkills: missing,
			Question:      question,
		})
		if err == nil {
			return Advice{Text: text, Source: prediction.SourceAI, MissingSkills: missing}
		}
		log.Warn("assistant advice failed, using knowledge base report", zap.Error(err))
	}

	return Advice{Text: a.report(missing), Source: prediction.SourceFallback, MissingSkills: missing}
}

// SuggestQuestions returns five prompts tailored to whether the project has gaps.
func SuggestQuestions(missing []string) []string {
	if len(missing) == 0 {
		return []string{
			"How can we optimize our current team further?",
			"What training would benefit this project?",
			"Any potential risks with our current skill set?",
			"How to improve team productivity?",
			"What emerging technologies should we consider?",
		}
	}

	return []string{
		fmt.Sprintf("How to handle missing %s skills?", missing[0]),
		"What are cost-effective solutions for these skill gaps?",
		"How will these gaps impact our timeline and budget?",
		"Should we hire contractors or train our team?",
		"What's the risk assessment for these missing skills?",
	}
}

func (a *Advisor) report(missing []string) string {
	n := len(missing)
	impact, urgency := "Medium", "Address within 1-2 weeks"
	if n > 2 {
		impact, urgency = "High", "Immediate action required"
	}

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("## AI Project Advisor - Comprehensive Solutions\n")
	line("### Critical Skill Gap Analysis")
	line("**Missing Skills:** %s", strings.Join(missing, ", "))
	line("**Impact Level:** %s", impact)
	line("**Urgency:** %s", urgency)
	line("")
	line("### Specific Solutions by Skill\n")

	for _, skill := range missing {
		line("#### %s Solutions\n", skill)

		solution, ok := a.knowledge.Lookup(skill)
		if !ok {
			line("**Specialized skill requiring custom approach:**")
			line("1. Hire senior %s developer ($120-180/hr)", skill)
			line("2. 4-6 week training program for existing team ($8k-15k)")
			line("3. Contract with %s consulting firm", skill)
			line("4. Evaluate alternative technologies\n")
			continue
		}

		options := solution.Solutions
		if len(options) > 4 {
			options = options[:4]
		}
		for i, option := range options {
			line("**Option %d:** %s", i+1, option)
		}
		line("\n**Impact:**")
		line("- Timeline: %s", orDefault(solution.TimelineImpact, "2-4 weeks"))
		line("- Cost: %s", orDefault(solution.CostImpact, "$10k-25k"))
		line("- Risk: %s\n", orDefault(solution.RiskLevel, "Medium"))
	}

	line("### Recommended Implementation Strategy\n")
	line("#### Week 1-2: Immediate Actions")
	line("- Post job listings for critical skills")
	line("- Contact 3-5 recruiting agencies")
	line("- Research training programs")
	line("- Get quotes from consulting firms\n")
	line("#### Week 3-4: Team Building")
	line("- Interview and hire top contractors")
	line("- Enroll team in training programs")
	line("- Set up mentorship with contractors\n")
	line("#### Week 5+: Execution")
	line("- Begin knowledge transfer")
	line("- Regular skill assessments")
	line("- Adjust strategy based on progress\n")

	extra := n * 20000
	line("### Budget Impact Summary\n")
	line("- **Additional Budget Needed:** $%s - $%s", thousands(extra), thousands(extra+30000))
	line("- **Timeline Extension:** %d-%d weeks", n*3, n*5)
	line("- **ROI Timeline:** 3-6 months\n")

	line("### #1 Recommended Approach\n")
	line("**Hybrid Strategy:** Hire 1-2 senior contractors immediately while training your existing team in parallel.")
	line("\n**Why this works:**")
	line("- Immediate capability (contractors)")
	line("- Long-term sustainability (trained team)")
	line("- Knowledge transfer built-in")
	b.WriteString("- Cost-effective over time")

	return b.String()
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// thousands formats a non-negative amount with comma separators.
func thousands(v int) string {
	s := fmt.Sprintf("%d", v)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
