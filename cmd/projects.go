package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/report"
)

var projectsCmd = &cobra.Command{
	Use:   "projects [project]",
	Short: "List analyzed projects, or show one by id or number",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		if len(args) == 0 {
			if outputJSON() {
				printJSON(s.app.Projects())
				return
			}
			report.Projects(os.Stdout, s.app.Projects())
			return
		}

		p, err := s.app.Project(args[0])
		if err != nil {
			s.logger.Fatal("finding project", zap.Error(err))
		}

		history, _ := cmd.Flags().GetBool("history")
		if outputJSON() {
			out := map[string]any{"project": p}
			if history {
				out["history"] = s.app.History(p.Name)
			}
			printJSON(out)
			return
		}

		report.Project(os.Stdout, p)
		if history {
			report.History(os.Stdout, s.app.History(p.Name))
		}
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)

	projectsCmd.Flags().Bool("history", false, "also show questions asked about the project")
}
