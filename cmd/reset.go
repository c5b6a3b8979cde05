package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morepeace/manyora/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset <profile>",
	Short: "Delete a learner profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			return fmt.Errorf("this deletes all progress for %q; re-run with --yes to confirm", args[0])
		}

		dataDir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		st, err := store.Open(dataDir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.ProfileRepo().Delete(context.Background(), args[0]); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		fmt.Printf("Deleted profile %q.\n", args[0])
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation")
}
