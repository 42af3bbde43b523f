package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/spigell/resource-allocator/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show portfolio totals and the roster's skill distribution",
	Run: func(_ *cobra.Command, _ []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		summary := s.app.Portfolio()
		skills := s.app.SkillDistribution()

		if outputJSON() {
			printJSON(map[string]any{"portfolio": summary, "skills": skills})
			return
		}
		report.Portfolio(os.Stdout, summary, skills)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
