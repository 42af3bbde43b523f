package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/report"
	"github.com/spigell/resource-allocator/internal/staffing"
)

var employeesCmd = &cobra.Command{
	Use:     "employees",
	Aliases: []string{"roster"},
	Short:   "Manage the employee roster",
}

var employeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the roster",
	Run: func(_ *cobra.Command, _ []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		if outputJSON() {
			printJSON(s.app.Employees())
			return
		}
		report.Employees(os.Stdout, s.app.Employees())
	},
}

var employeesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an employee to the roster",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		skills, _ := cmd.Flags().GetStringSlice("skills")
		experience, _ := cmd.Flags().GetInt("experience")
		workload, _ := cmd.Flags().GetInt("workload")

		change, err := s.app.AddEmployee(ctx, staffing.Employee{
			Name:       args[0],
			Skills:     skills,
			Experience: experience,
			Workload:   workload,
		})
		if err != nil {
			s.logger.Fatal("adding employee", zap.Error(err))
		}
		s.warn(change.Warning)

		if outputJSON() {
			printJSON(change.Employee)
			return
		}
		report.Employees(os.Stdout, []staffing.Employee{change.Employee})
	},
}

var employeesSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the roster with the sample roster",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		if yes, _ := cmd.Flags().GetBool("yes"); !yes && len(s.app.Employees()) > 0 && interactive() {
			ok, err := confirm("Replace the current roster with the sample roster?")
			if err != nil {
				s.logger.Fatal("exiting", zap.Error(err))
			}
			if !ok {
				s.logger.Info("exiting", zap.String("reason", "got no from prompt"))
				return
			}
		}

		roster, err := s.app.SeedEmployees(ctx)
		s.warn(err)

		if outputJSON() {
			printJSON(roster)
			return
		}
		report.Employees(os.Stdout, roster)
	},
}

var employeesRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove an employee from the roster. Existing project teams are not changed",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			if !interactive() {
				s.logger.Fatal("employee name is required")
			}
			index, err := selectEmployee("Choose an employee to remove", s.app.Employees())
			if err != nil {
				s.logger.Fatal("exiting", zap.Error(err))
			}
			name = s.app.Employees()[index].Name
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes && interactive() {
			ok, err := confirm("Remove " + name + " from the roster?")
			if err != nil {
				s.logger.Fatal("exiting", zap.Error(err))
			}
			if !ok {
				s.logger.Info("exiting", zap.String("reason", "got no from prompt"))
				return
			}
		}

		change, err := s.app.RemoveEmployee(ctx, name)
		if err != nil {
			s.logger.Fatal("removing employee", zap.Error(err))
		}
		s.warn(change.Warning)

		if outputJSON() {
			printJSON(change.Employee)
			return
		}
		report.Employees(os.Stdout, s.app.Employees())
	},
}

func init() {
	rootCmd.AddCommand(employeesCmd)
	employeesCmd.AddCommand(employeesListCmd, employeesAddCmd, employeesSeedCmd, employeesRemoveCmd)

	employeesAddCmd.Flags().StringSliceP("skills", "s", nil, "comma separated skills, e.g. Go,Docker")
	employeesAddCmd.Flags().IntP("experience", "e", 1, "years of experience")
	employeesAddCmd.Flags().Int("workload", 0, "current workload in percent")

	employeesSeedCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	employeesRemoveCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}
