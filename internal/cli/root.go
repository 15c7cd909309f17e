// Package cli implements the quizctl command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/logger"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the quizctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "quizctl",
		Short:         "Generate, inspect and take multiple-choice quizzes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			level := "error"
			if verbose {
				level = "debug"
			}
			return logger.Initialize(config.LoggerConfig{Level: level, Env: "development"})
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(newParseCommand())
	root.AddCommand(newGenerateCommand())
	root.AddCommand(newExportCommand())
	root.AddCommand(newTakeCommand())
	root.AddCommand(newProvidersCommand())
	root.AddCommand(newListCommand())
	root.AddCommand(newMigrateCommand())
	return root
}

// Execute runs quizctl with os.Args.
func Execute() error {
	defer logger.Sync()
	return NewRootCommand().ExecuteContext(context.Background())
}

func readQuizFile(path string) (*domain.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz: %w", err)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		return nil, fmt.Errorf("decode quiz %s: %w", path, err)
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("quiz %s has no questions", path)
	}
	return &quiz, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}
