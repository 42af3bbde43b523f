package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/advisor"
	"github.com/spigell/resource-allocator/internal/knowledge"
	"github.com/spigell/resource-allocator/internal/staffing"
	"github.com/spigell/resource-allocator/internal/storage"
)

// State is everything the assistant remembers between runs.
type State struct {
	Employees []staffing.Employee
	Projects  []staffing.Project
	Chat      []advisor.ChatEntry
	Knowledge *knowledge.Base
}

// Load reads every store. Missing or unreadable documents fall back to empty
// values, and the knowledge base to the built-in table. A nil store yields an
// empty state.
func Load(ctx context.Context, store storage.Store, log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}

	state := &State{}
	load(ctx, store, storage.KeyEmployees, &state.Employees, log)
	load(ctx, store, storage.KeyProjects, &state.Projects, log)
	load(ctx, store, storage.KeyChatHistory, &state.Chat, log)

	var kb knowledge.Base
	if load(ctx, store, storage.KeyKnowledgeBase, &kb, log) && len(kb.SkillSolutions) > 0 {
		state.Knowledge = &kb
	} else {
		state.Knowledge = knowledge.Default()
	}

	state.normalize()
	return state
}

func load(ctx context.Context, store storage.Store, key string, dst any, log *zap.Logger) bool {
	if store == nil {
		return false
	}

	found, err := store.Load(ctx, key, dst)
	if err != nil {
		log.Warn("stored document is unreadable, starting empty", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

func (s *State) normalize() {
	if s.Employees == nil {
		s.Employees = []staffing.Employee{}
	}
	for i := range s.Employees {
		s.Employees[i] = normalizeEmployee(s.Employees[i])
	}

	if s.Projects == nil {
		s.Projects = []staffing.Project{}
	}
	for i := range s.Projects {
		p := &s.Projects[i]
		if p.RequiredSkills == nil {
			p.RequiredSkills = []string{}
		}
		p.RequiredSkills = staffing.Unique(p.RequiredSkills)
		if p.Team == nil {
			p.Team = []staffing.Employee{}
		}
		for j := range p.Team {
			p.Team[j] = normalizeEmployee(p.Team[j])
		}
		if c, ok := staffing.ParseComplexity(string(p.Complexity)); ok {
			p.Complexity = c
		} else {
			p.Complexity = staffing.ComplexityMedium
		}
		if p.SkillGaps.MissingSkills == nil {
			p.SkillGaps.MissingSkills = []string{}
		}
		if p.SkillGaps.CoveredSkills == nil {
			p.SkillGaps.CoveredSkills = []string{}
		}
	}

	if s.Chat == nil {
		s.Chat = []advisor.ChatEntry{}
	}
}

func normalizeEmployee(e staffing.Employee) staffing.Employee {
	e.Name = strings.TrimSpace(e.Name)
	skills := make([]string, 0, len(e.Skills))
	for _, skill := range e.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	e.Skills = staffing.Unique(skills)
	if e.Experience < 0 {
		e.Experience = 0
	}
	e.Workload = min(max(e.Workload, 0), 100)
	return e
}

// SeedRoster is the sample roster offered to new installations.
func SeedRoster() []staffing.Employee {
	return []staffing.Employee{
		{Name: "Alice", Skills: []string{"Python", "AI/ML", "SQL"}, Experience: 3},
		{Name: "Bob", Skills: []string{"React", "Design", "Figma"}, Experience: 2},
		{Name: "Charlie", Skills: []string{"Django", "Flask", "DevOps"}, Experience: 4},
		{Name: "David", Skills: []string{"AWS", "Docker", "Kubernetes"}, Experience: 5},
		{Name: "Eva", Skills: []string{"C++", "Embedded", "Testing"}, Experience: 2},
		{Name: "Frank", Skills: []string{"Node", "React", "MongoDB"}, Experience: 3},
		{Name: "Grace", Skills: []string{"Data Science", "Python", "SQL"}, Experience: 4},
	}
}
