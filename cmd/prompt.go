package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/spigell/resource-allocator/internal/staffing"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var errNoSelection = errors.New("nothing to choose from")

// selectProject asks for a project and returns its 1-based position as a reference.
func selectProject(projects []staffing.Project) (string, error) {
	if len(projects) == 0 {
		return "", fmt.Errorf("%w: no projects analyzed yet", errNoSelection)
	}

	items := make([]string, 0, len(projects))
	for i, p := range projects {
		items = append(items, fmt.Sprintf("%d. %s (%s, team %d/%d)", i+1, p.Name, p.Complexity, len(p.Team), p.TeamSize))
	}

	prompt := promptui.Select{
		Label:     "Choose a project and press ENTER",
		Items:     items,
		CursorPos: len(items) - 1,
	}
	index, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strconv.Itoa(index + 1), nil
}

func selectEmployee(label string, employees []staffing.Employee) (int, error) {
	if len(employees) == 0 {
		return 0, fmt.Errorf("%w: no employees", errNoSelection)
	}

	items := make([]string, 0, len(employees))
	for _, e := range employees {
		items = append(items, fmt.Sprintf("%s - %v (%d years)", e.Name, e.Skills, e.Experience))
	}

	prompt := promptui.Select{Label: label, Items: items}
	index, _, err := prompt.Run()
	return index, err
}

func selectItem(label string, items []string) (string, error) {
	prompt := promptui.Select{Label: label, Items: items}
	_, value, err := prompt.Run()
	return value, err
}

func confirm(label string) (bool, error) {
	prompt := promptui.Select{
		Label: label,
		Items: []string{PromptYes, PromptNo},
	}
	_, answer, err := prompt.Run()
	if err != nil {
		return false, err
	}
	return answer == PromptYes, nil
}

// ask reads free text, falling back to def when the answer is empty.
func ask(label, def string) (string, error) {
	prompt := promptui.Prompt{Label: label, Default: def}
	return prompt.Run()
}
