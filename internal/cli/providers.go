package cli

import (
	"fmt"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/provider"

	"github.com/spf13/cobra"
)

func newProvidersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List configured LLM providers and whether they can be used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			registry, err := provider.NewRegistryFromConfig(cmd.Context(), cfg.LLM, cfg.Quiz.GenerateTimeout)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"PROVIDER", "AVAILABLE", "FORMAT"}, providerRows(registry.Adapters())))
			return err
		},
	}
}

func providerRows(adapters []domain.ProviderAdapter) [][]string {
	rows := make([][]string, 0, len(adapters))
	for _, a := range adapters {
		available := "no"
		if a.IsAvailable() {
			available = "yes"
		}
		rows = append(rows, []string{string(a.Type()), available, string(a.OutputFormat())})
	}
	return rows
}
