package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/app"
	"github.com/spigell/resource-allocator/internal/report"
	"github.com/spigell/resource-allocator/internal/staffing"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show and edit the team of an analyzed project",
}

var teamShowCmd = &cobra.Command{
	Use:   "show [project]",
	Short: "Show the team, its match scores and the employees still available",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		p := s.mustProject(args)
		available := staffing.Rank(p.RequiredSkills, staffing.Available(s.app.Employees(), p.Team))

		if outputJSON() {
			printJSON(map[string]any{"project": p, "available": available})
			return
		}

		report.Project(os.Stdout, p)
		fmt.Println()
		fmt.Println("Available employees:")
		report.Ranking(os.Stdout, available, 0)
	},
}

var teamAddCmd = &cobra.Command{
	Use:   "add [project] [employee]",
	Short: "Add a roster employee to the project team and re-estimate the project",
	Args:  cobra.MaximumNArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		p := s.mustProject(args)

		var name string
		if len(args) > 1 {
			name = args[1]
		} else {
			if !interactive() {
				s.logger.Fatal("employee name is required")
			}
			available := staffing.Rank(p.RequiredSkills, staffing.Available(s.app.Employees(), p.Team))
			candidates := make([]staffing.Employee, 0, len(available))
			for _, c := range available {
				candidates = append(candidates, c.Employee)
			}
			index, err := selectEmployee("Choose an employee to add", candidates)
			if err != nil {
				s.logger.Fatal("exiting", zap.Error(err))
			}
			name = candidates[index].Name
		}

		change, err := s.app.AddTeamMember(ctx, p.ID, name)
		if err != nil {
			s.logger.Fatal("adding team member", zap.Error(err))
		}
		s.printTeamChange(change, "added")
	},
}

var teamRemoveCmd = &cobra.Command{
	Use:   "remove [project] [member-number]",
	Short: "Remove a member (numbered from 1 as in `team show`) and re-estimate the project",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		p := s.mustProject(args)

		var index int
		if len(args) > 1 {
			position, err := strconv.Atoi(args[1])
			if err != nil {
				s.logger.Fatal("member number must be an integer", zap.String("value", args[1]))
			}
			index = position - 1
		} else {
			if !interactive() {
				s.logger.Fatal("member number is required")
			}
			var err error
			if index, err = selectEmployee("Choose a member to remove", p.Team); err != nil {
				s.logger.Fatal("exiting", zap.Error(err))
			}
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes && interactive() && index >= 0 && index < len(p.Team) {
			ok, err := confirm(fmt.Sprintf("Remove %s from %s?", p.Team[index].Name, p.Name))
			if err != nil {
				s.logger.Fatal("exiting", zap.Error(err))
			}
			if !ok {
				s.logger.Info("exiting", zap.String("reason", "got no from prompt"))
				return
			}
		}

		change, err := s.app.RemoveTeamMember(ctx, p.ID, index)
		if err != nil {
			s.logger.Fatal("removing team member", zap.Error(err))
		}
		s.printTeamChange(change, "removed")
	},
}

func init() {
	rootCmd.AddCommand(teamCmd)
	teamCmd.AddCommand(teamShowCmd, teamAddCmd, teamRemoveCmd)

	teamRemoveCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}

// mustProject resolves the project named by the first argument, or asks for one on a terminal.
func (s *session) mustProject(args []string) staffing.Project {
	var ref string
	if len(args) > 0 {
		ref = args[0]
	} else {
		if !interactive() {
			s.logger.Fatal("project id or number is required")
		}
		var err error
		if ref, err = selectProject(s.app.Projects()); err != nil {
			s.logger.Fatal("exiting", zap.Error(err))
		}
	}

	p, err := s.app.Project(ref)
	if err != nil {
		s.logger.Fatal("finding project", zap.Error(err))
	}
	return p
}

func (s *session) printTeamChange(change *app.TeamChange, verb string) {
	s.warn(change.Warning)

	if outputJSON() {
		printJSON(change)
		return
	}

	fmt.Printf("%s %s.\n", change.Member.Name, verb)
	report.Project(os.Stdout, change.Project)
}
