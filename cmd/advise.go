package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/advisor"
	"github.com/spigell/resource-allocator/internal/report"
)

const promptOwnQuestion = "Ask my own question"

var adviseCmd = &cobra.Command{
	Use:   "advise [project]",
	Short: "Get advice on covering the project's missing skills",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		p := s.mustProject(args)
		suggestions := advisor.SuggestQuestions(advisor.MissingSkills(p))

		if list, _ := cmd.Flags().GetBool("suggest"); list {
			if outputJSON() {
				printJSON(suggestions)
				return
			}
			report.Suggestions(os.Stdout, suggestions)
			return
		}

		question, _ := cmd.Flags().GetString("question")
		if strings.TrimSpace(question) == "" {
			if !interactive() {
				question = suggestions[0]
			} else {
				choice, err := selectItem("Choose a question", append(suggestions, promptOwnQuestion))
				if err != nil {
					s.logger.Fatal("exiting", zap.Error(err))
				}
				question = choice
				if choice == promptOwnQuestion {
					if question, err = ask("Your question", ""); err != nil {
						s.logger.Fatal("exiting", zap.Error(err))
					}
				}
			}
		}

		result, err := s.app.Ask(ctx, p.ID, question)
		if err != nil {
			s.logger.Fatal("asking for advice", zap.Error(err))
		}
		s.warn(result.Warning)

		if outputJSON() {
			printJSON(result)
			return
		}
		report.Advice(os.Stdout, result.Advice)
	},
}

func init() {
	rootCmd.AddCommand(adviseCmd)

	adviseCmd.Flags().StringP("question", "q", "", "question to ask (default is a suggested question)")
	adviseCmd.Flags().Bool("suggest", false, "only list suggested questions")
}
