package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morepeace/manyora/internal/profile"
	"github.com/morepeace/manyora/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [profile]",
	Short: "Show a learner's per-subject standing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		st, err := store.Open(dataDir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		var p *profile.Profile
		if len(args) == 1 {
			p, err = st.ProfileRepo().Load(ctx, args[0])
		} else {
			p, err = st.ProfileRepo().LoadActive(ctx)
		}
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}

		printProfile(p)
		return nil
	},
}

func printProfile(p *profile.Profile) {
	fmt.Printf("%s\n", p.Name)
	fmt.Printf("Mastery %.1f   Discipline %d%%   Style %s\n\n",
		p.MasteryScore, p.NoExcusesMetric, p.LearningStyle)

	fmt.Printf("%-20s  %8s  %8s  %s\n", "Subject", "Progress", "Quizzes", "Last activity")
	fmt.Println(strings.Repeat("─", 72))
	for _, sp := range p.Progress {
		fmt.Printf("%-20s  %7d%%  %8d  %s\n",
			sp.Subject, sp.Progress, sp.CompletedQuizzes, sp.LastActivity)
	}

	for _, sp := range p.Progress {
		if len(sp.FailureSignatures) == 0 {
			continue
		}
		fmt.Printf("\nWeak spots in %s\n", sp.Subject)
		for _, f := range sp.FailureSignatures {
			fmt.Printf("  %-32s  missed %dx  (%s)\n", f.Concept, f.TimesFailed, f.TrapType)
		}
	}
}
