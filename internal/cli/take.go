package cli

import (
	"fmt"

	"doc-quiz/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTakeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "take <quiz.json>",
		Short: "Answer a saved quiz in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, err := readQuizFile(args[0])
			if err != nil {
				return err
			}
			result, err := tui.Run(quiz,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d/%d correct (%.0f%%)\n", result.Correct, result.Total, result.Percentage)
			return nil
		},
	}
}
