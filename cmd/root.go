package cmd

import (
	"github.com/morepeace/manyora/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "manyora",
	Short: "AI study companion for secondary school",
	Long:  "Manyora - terminal study companion that summarizes your notes, quizzes you on them, and tracks mastery per subject.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the data directory (overrides MANYORA_DATA)")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory using the --data flag (highest
// priority), then MANYORA_DATA, then the default XDG path.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, nil
	}
	return store.DefaultDataDir()
}
