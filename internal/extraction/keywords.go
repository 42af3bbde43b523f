// Package extraction holds the keyword rules used when no AI answer is available.
// Every function here is deterministic: the same text always yields the same result.
package extraction

import "strings"

const maxTechnologies = 8

type rule struct {
	label    string
	triggers []string
}

var skillRules = []rule{
	{"Python", []string{"python", "django", "flask"}},
	{"AI/ML", []string{"ai", "machine learning", "ml", "tensorflow", "pytorch", "neural network"}},
	{"React", []string{"react", "frontend", "ui"}},
	{"JavaScript", []string{"javascript", "js", "node"}},
	{"Database", []string{"sql", "mysql", "mongodb", "database"}},
	{"DevOps", []string{"devops", "aws", "docker", "kubernetes"}},
	{"Blockchain", []string{"blockchain", "smart contract", "solidity", "ethereum"}},
	{"Security", []string{"security", "encryption", "authentication", "cybersecurity"}},
	{"Cloud", []string{"aws", "azure", "google cloud", "cloud"}},
	{"Go", []string{"go", "golang"}},
	{"Golang", []string{"golang", "go language"}},
}

var technologyRules = []rule{
	{"Python", []string{"python", "django", "flask"}},
	{"JavaScript", []string{"javascript", "js", "node", "react", "angular", "vue"}},
	{"Java", []string{"java", "spring", "hibernate"}},
	{"C#", []string{"c#", ".net", "asp.net"}},
	{"PHP", []string{"php", "laravel", "wordpress"}},
	{"Database", []string{"mysql", "postgresql", "mongodb", "sql", "database"}},
	{"AWS", []string{"aws", "amazon web services"}},
	{"Azure", []string{"azure", "microsoft cloud"}},
	{"Docker", []string{"docker", "container"}},
	{"Kubernetes", []string{"kubernetes", "k8s"}},
	{"React", []string{"react", "react.js"}},
	{"Vue", []string{"vue", "vue.js"}},
	{"Angular", []string{"angular"}},
	{"Blockchain", []string{"blockchain", "ethereum", "solidity", "smart contract"}},
	{"AI/ML", []string{"ai", "machine learning", "ml", "tensorflow", "pytorch", "neural network"}},
	{"Mobile", []string{"ios", "android", "flutter", "react native"}},
	{"Security", []string{"security", "encryption", "authentication", "cybersecurity"}},
	{"Cloud", []string{"cloud", "aws", "azure", "google cloud", "cloud computing"}},
	{"Go", []string{"go", "golang"}},
	{"Golang", []string{"golang", "go language"}},
}

// ExtractSkills returns the skill labels whose triggers occur anywhere in text.
// Triggers are plain substrings, so "ai" also fires on "maintain".
func ExtractSkills(text string) []string {
	return match(skillRules, text, 0)
}

// ExtractTechnologies works like ExtractSkills over a broader table and returns
// at most eight labels.
func ExtractTechnologies(text string) []string {
	return match(technologyRules, text, maxTechnologies)
}

func match(rules []rule, text string, limit int) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)

	for _, r := range rules {
		if limit > 0 && len(found) == limit {
			break
		}
		if containsAny(lower, r.triggers) {
			found = append(found, r.label)
		}
	}

	return found
}

func containsAny(text string, triggers []string) bool {
	for _, trigger := range triggers {
		if strings.Contains(text, trigger) {
			return true
		}
	}
	return false
}
