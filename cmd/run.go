package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/morepeace/manyora/internal/app"
	"github.com/morepeace/manyora/internal/assistant"
	"github.com/morepeace/manyora/internal/diagnosis"
	"github.com/morepeace/manyora/internal/evaluate"
	"github.com/morepeace/manyora/internal/governor"
	"github.com/morepeace/manyora/internal/lessons"
	"github.com/morepeace/manyora/internal/llm"
	"github.com/morepeace/manyora/internal/quizgen"
	"github.com/morepeace/manyora/internal/session"
	"github.com/morepeace/manyora/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	// Keys are commonly kept in a local .env during development.
	_ = godotenv.Load()

	ctx := cmd.Context()
	dataDir, err := resolveDataDir(cmd)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	st, err := store.Open(dataDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{Store: st}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Study sessions and chat will be unavailable.")
	} else {
		opts.Provider = provider
		opts.Services = session.Services{
			Summarizer: lessons.NewService(provider, lessons.DefaultConfig()),
			Quizzes:    quizgen.NewService(provider, quizgen.DefaultConfig()),
			Diagnoser:  diagnosis.NewService(provider, diagnosis.DefaultConfig()),
			Evaluator:  evaluate.NewService(provider, evaluate.DefaultConfig()),
			Advisor:    governor.NewService(provider, governor.DefaultConfig()),
		}
		opts.Assistant = assistant.NewService(provider, assistant.DefaultConfig())
		opts.Narrator = app.NewNarrator(provider)
	}

	return app.Run(opts)
}
