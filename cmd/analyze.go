package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/app"
	"github.com/spigell/resource-allocator/internal/filtering"
	"github.com/spigell/resource-allocator/internal/report"
	"github.com/spigell/resource-allocator/internal/staffing"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [description]",
	Short: "Predict required skills, pick a team and estimate timeline and cost for a new project",
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("name", "n", "", "project name (default is \"Project <n>\")")
	analyzeCmd.Flags().StringP("description-file", "f", "", "read the project description from a file")
	analyzeCmd.Flags().StringP("complexity", "c", "", "low, medium, high or \"very high\" (default is predicted)")
	analyzeCmd.Flags().IntP("team-size", "t", 0, "team size from 1 to 10 (default is predicted)")
	analyzeCmd.Flags().Float64P("budget", "b", 0, "budget in dollars (default is predicted)")
	analyzeCmd.Flags().Int("ranking", 5, "how many ranked candidates to show, 0 for all")
	analyzeCmd.Flags().Int("max-workload", 0, "skip employees whose workload is above this percentage, 0 to disable (overrides pool.max-workload)")
	analyzeCmd.Flags().Int("min-experience", 0, "skip employees with fewer years of experience (overrides pool.min-experience)")
	analyzeCmd.Flags().StringSlice("exclude", nil, "employees that must not be picked, comma separated (overrides pool.exclude)")
}

func analyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	s := newSession(ctx)
	defer s.Close()

	description := strings.Join(args, " ")
	if file, _ := cmd.Flags().GetString("description-file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			s.logger.Fatal("reading description file", zap.Error(err), zap.String("file", file))
		}
		description = string(data)
	}
	if strings.TrimSpace(description) == "" && interactive() {
		var err error
		if description, err = ask("Project description", ""); err != nil {
			s.logger.Fatal("exiting", zap.Error(err))
		}
	}

	if len(s.app.Employees()) == 0 {
		s.logger.Warn("the roster is empty, no team can be selected",
			zap.String("hint", "run `"+appName+" employees seed` to load the sample roster"),
		)
	}

	name, _ := cmd.Flags().GetString("name")
	complexity, _ := cmd.Flags().GetString("complexity")
	teamSize, _ := cmd.Flags().GetInt("team-size")
	budget, _ := cmd.Flags().GetFloat64("budget")
	ranking, _ := cmd.Flags().GetInt("ranking")
	pool := s.pool(cmd)

	result, err := s.app.Analyze(ctx, app.AnalyzeRequest{
		Name:        name,
		Description: description,
		Complexity:  staffing.Complexity(complexity),
		TeamSize:    teamSize,
		Budget:      budget,
		Pool:        pool,
	})
	if err != nil {
		s.logger.Fatal("analyzing project", zap.Error(err))
	}
	s.warn(result.Warning)

	if outputJSON() {
		printJSON(result)
		return
	}

	if result.Parameters != nil {
		report.Parameters(os.Stdout, *result.Parameters, result.ParametersSource)
	}
	report.Project(os.Stdout, result.Project)
	report.Ranking(os.Stdout, result.Ranking, ranking)
	report.Filters(os.Stdout, result.Filters)
}

// pool starts from the configured pool constraints and applies the flags that were set explicitly.
func (s *session) pool(cmd *cobra.Command) *filtering.Config {
	pool := *s.config.Pool
	flags := cmd.Flags()

	if flags.Changed("max-workload") {
		pool.MaxWorkload, _ = flags.GetInt("max-workload")
	}
	if flags.Changed("min-experience") {
		pool.MinExperience, _ = flags.GetInt("min-experience")
	}
	if flags.Changed("exclude") {
		pool.Exclude, _ = flags.GetStringSlice("exclude")
	}

	if !pool.IsZero() {
		s.logger.Info("candidate pool is restricted",
			zap.Int("max_workload", pool.MaxWorkload),
			zap.Int("min_experience", pool.MinExperience),
			zap.Strings("exclude", pool.Exclude),
		)
	}
	return &pool
}
