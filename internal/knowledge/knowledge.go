// Package knowledge holds the remediation table consulted when a project lacks a skill.
package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

type Solution struct {
	Solutions      []string `json:"solutions" yaml:"solutions"`
	TimelineImpact string   `json:"timeline_impact" yaml:"timeline_impact"`
	CostImpact     string   `json:"cost_impact" yaml:"cost_impact"`
	RiskLevel      string   `json:"risk_level" yaml:"risk_level"`
}

type CompanyContext struct {
	Industry        string   `json:"industry" yaml:"industry"`
	TeamSize        string   `json:"team_size" yaml:"team_size"`
	BudgetRange     string   `json:"budget_range" yaml:"budget_range"`
	Specializations []string `json:"specializations" yaml:"specializations"`
	Constraints     []string `json:"constraints" yaml:"constraints"`
}

// Base is read-only once loaded.
type Base struct {
	CompanyContext CompanyContext      `json:"company_context" yaml:"company_context"`
	SkillSolutions map[string]Solution `json:"skill_solutions" yaml:"skill_solutions"`
	Strategies     map[string][]string `json:"project_management_strategies" yaml:"project_management_strategies"`
}

// Lookup tries the skill as given, then lower-cased, then with only the first letter upper-cased.
func (b *Base) Lookup(skill string) (Solution, bool) {
	if b == nil {
		return Solution{}, false
	}

	for _, key := range []string{skill, strings.ToLower(skill), capitalize(skill)} {
		if solution, ok := b.SkillSolutions[key]; ok {
			return solution, true
		}
	}
	return Solution{}, false
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// LoadFile reads a knowledge base from YAML, or JSON when the file has a .json extension.
// An empty path or a missing file yields Default.
func LoadFile(path string) (*Base, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read knowledge base %q: %w", path, err)
	}

	var base Base
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &base)
	} else {
		err = yaml.Unmarshal(data, &base)
	}
	if err != nil {
		return nil, fmt.Errorf("parse knowledge base %q: %w", path, err)
	}

	if base.SkillSolutions == nil {
		base.SkillSolutions = map[string]Solution{}
	}
	if base.Strategies == nil {
		base.Strategies = map[string][]string{}
	}
	return &base, nil
}
