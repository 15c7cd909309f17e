package cli

import (
	"fmt"

	"doc-quiz/internal/config"
	"doc-quiz/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the quiz archive schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			fmt.Fprintf(cmd.OutOrStdout(), "Archive schema is up to date (%s)\n", cfg.Archive.Driver)
			return nil
		},
	}
}
