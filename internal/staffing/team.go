package staffing

import (
	"errors"
	"slices"
)

var (
	ErrTeamFull       = errors.New("team is already at the requested size")
	ErrAlreadyMember  = errors.New("employee is already on the team")
	ErrMemberNotFound = errors.New("team member not found")
)

// AddMember appends a snapshot of e so later roster edits do not leak into the project.
func (p *Project) AddMember(e Employee) error {
	if len(p.Team) >= p.TeamSize {
		return ErrTeamFull
	}
	if IsMember(p.Team, e) {
		return ErrAlreadyMember
	}

	p.Team = append(p.Team, e.Clone())
	return nil
}

func (p *Project) RemoveMember(index int) (Employee, error) {
	if index < 0 || index >= len(p.Team) {
		return Employee{}, ErrMemberNotFound
	}

	removed := p.Team[index]
	p.Team = slices.Delete(p.Team, index, index+1)
	return removed, nil
}

// Reestimate recomputes timeline and cost for the current team.
func (p *Project) Reestimate() {
	p.Timeline = TimelineDays(p.Complexity, len(p.Team))
	p.EstimatedCost = EstimateCost(p.Team, p.Timeline)
}

// IsMember compares by name and skill list since employees have no identity of their own.
func IsMember(team []Employee, e Employee) bool {
	for _, member := range team {
		if member.Name == e.Name && slices.Equal(member.Skills, e.Skills) {
			return true
		}
	}
	return false
}

// Available returns the roster members that are not on the team.
func Available(roster, team []Employee) []Employee {
	result := make([]Employee, 0, len(roster))
	for _, e := range roster {
		if !IsMember(team, e) {
			result = append(result, e)
		}
	}
	return result
}
