package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Copy employees, projects, chat history and the knowledge base into another storage backend",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		backend, _ := cmd.Flags().GetString("to-backend")
		dir, _ := cmd.Flags().GetString("to-dir")
		sqlitePath, _ := cmd.Flags().GetString("to-sqlite-path")

		target, err := storage.Open(storage.Config{Backend: backend, Dir: dir, SQLitePath: sqlitePath})
		if err != nil {
			s.logger.Fatal("opening export target", zap.Error(err))
		}
		defer target.Close()

		if err := s.app.Export(ctx, target); err != nil {
			s.logger.Fatal("exporting", zap.Error(err))
		}

		s.logger.Info("export finished", zap.String("backend", backend), zap.String("dir", dir))
		if outputJSON() {
			printJSON(map[string]any{"employees": len(s.app.Employees()), "projects": len(s.app.Projects())})
			return
		}
		fmt.Printf("Exported %d employees and %d projects.\n", len(s.app.Employees()), len(s.app.Projects()))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("to-backend", storage.BackendSQLite, "target backend: json or sqlite")
	exportCmd.Flags().String("to-dir", ".", "target data directory")
	exportCmd.Flags().String("to-sqlite-path", "", "target SQLite file (default is resource-allocator.db in the target directory)")
}
