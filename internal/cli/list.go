package cli

import (
	"fmt"
	"strconv"

	"doc-quiz/internal/config"
	"doc-quiz/internal/database"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/repository"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently archived quizzes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.Archive.Driver == "" {
				return fmt.Errorf("no quiz archive configured (set archive.driver)")
			}

			ctx := cmd.Context()
			db, err := database.Open(ctx, cfg.Archive)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.RunMigrations(ctx, db); err != nil {
				return err
			}

			quizzes, err := repository.NewQuizArchiveAdapter(db).ListRecent(ctx, limit)
			if err != nil {
				return err
			}
			if len(quizzes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quizzes archived.")
				return nil
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"ID", "CREATED", "PROVIDER", "QUESTIONS", "TITLE"}, summaryRows(quizzes)))
			return err
		},
	}
	cmd.Flags().IntP("limit", "l", 20, "Maximum number of quizzes")
	return cmd
}

func summaryRows(quizzes []domain.QuizSummary) [][]string {
	rows := make([][]string, 0, len(quizzes))
	for _, q := range quizzes {
		rows = append(rows, []string{
			q.ID,
			q.CreatedAt.Local().Format("2006-01-02 15:04"),
			string(q.Provider),
			strconv.Itoa(q.QuestionCount),
			q.Title,
		})
	}
	return rows
}
