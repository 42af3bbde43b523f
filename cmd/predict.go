package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/report"
)

var predictCmd = &cobra.Command{
	Use:   "predict <description>",
	Short: "Predict complexity, team size, budget and timeline without creating a project",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		params, source, err := s.app.Predict(ctx, strings.Join(args, " "))
		if err != nil {
			s.logger.Fatal("predicting parameters", zap.Error(err))
		}

		if outputJSON() {
			printJSON(map[string]any{"parameters": params, "source": source})
			return
		}
		report.Parameters(os.Stdout, params, source)
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)
}
