package cli

import (
	"doc-quiz/internal/export"

	"github.com/spf13/cobra"
)

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <quiz.json>",
		Short: "Convert a saved quiz to another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}
			quiz, err := readQuizFile(args[0])
			if err != nil {
				return err
			}
			doc, err := export.Render(quiz, format)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, doc.Data)
		},
	}
	cmd.Flags().StringP("format", "f", string(export.FormatMarkdown), "json, text, html, markdown or yaml")
	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	return cmd
}
