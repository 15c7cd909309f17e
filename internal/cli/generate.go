package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"doc-quiz/internal/adapter"
	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
	"doc-quiz/internal/export"
	"doc-quiz/internal/extract"
	"doc-quiz/internal/provider"
	"doc-quiz/internal/service"
	"doc-quiz/internal/validation"

	"github.com/spf13/cobra"
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <document>",
		Short: "Generate a quiz from a local document",
		Long: "Extracts text from a txt, md, html, docx or pdf file, asks the configured\n" +
			"LLM provider for questions and writes the quiz in the chosen export format.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			providerName, _ := flags.GetString("provider")
			model, _ := flags.GetString("model")
			count, _ := flags.GetInt("count")
			difficulty, _ := flags.GetString("difficulty")
			instructions, _ := flags.GetString("instructions")
			formatName, _ := flags.GetString("export")
			output, _ := flags.GetString("output")

			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			text, err := extract.Text(filepath.Base(args[0]), data)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			registry, err := provider.NewRegistryFromConfig(ctx, cfg.LLM, cfg.Quiz.GenerateTimeout)
			if err != nil {
				return err
			}

			cache := adapter.NewMemoryCache()
			store := service.NewQuizStore(cache, nil, cfg.Quiz.CacheTTL)
			documents := service.NewDocumentService(cache, cfg.Uploads, cfg.Quiz.CacheTTL)
			quizService := service.NewQuizService(registry, store, documents, cfg.Quiz)

			req := &dto.GenerateQuizRequest{
				DocumentText:           text,
				NumberOfQuestions:      count,
				Difficulty:             difficulty,
				AdditionalInstructions: instructions,
				Provider:               providerName,
				Model:                  model,
			}
			if errs := validation.NewValidator().ValidateGenerateRequest(req); len(errs) > 0 {
				return errs
			}

			resp, err := quizService.Generate(ctx, req)
			if err != nil {
				return err
			}
			quiz, err := quizService.GetQuiz(ctx, resp.QuizID)
			if err != nil {
				return err
			}

			doc, err := export.Render(quiz, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Generated %d questions with %s\n", len(quiz.Questions), quiz.Metadata.Provider)
			return writeOutput(cmd, output, doc.Data)
		},
	}

	flags := cmd.Flags()
	flags.StringP("provider", "p", "", "LLM provider (openai, anthropic, gemini, deepseek, grok, ollama); default is the first available")
	flags.String("model", "", "Override the provider's default model")
	flags.IntP("count", "n", 0, "Number of questions")
	flags.StringP("difficulty", "d", string(domain.DifficultyMedium), "Difficulty: easy, medium or hard")
	flags.String("instructions", "", "Additional instructions for the provider")
	flags.StringP("export", "e", string(export.FormatJSON), "Output format: json, text, html, markdown or yaml")
	flags.StringP("output", "o", "", "Write to a file instead of stdout")
	return cmd
}
