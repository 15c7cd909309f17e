package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/parser"

	"github.com/spf13/cobra"
)

func newParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Normalize a raw LLM response into quiz questions",
		Long: "Reads a raw provider response (JSON or a markdown table) from a file or stdin\n" +
			"and prints the normalized questions as JSON.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			var (
				raw []byte
				err error
			)
			if len(args) == 0 || args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read response: %w", err)
			}

			result, err := parser.Parse(string(raw), domain.OutputFormat(format))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringP("format", "f", string(domain.FormatJSON), "Response format: json or markdown")
	return cmd
}
