package cmd

import (
	"context"

	"github.com/Rana718/filldb/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all seeded data",
	Long: `
Empty every table filldb writes to, dependents first, and restart
their identity sequences. The schema itself is left in place.

⚠️  WARNING: This will permanently delete all data in these tables!

Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		_, s, log, err := openSeeder(ctx)
		if err != nil {
			return err
		}
		defer log.Sync()
		defer s.Close()

		force, _ := cmd.Flags().GetBool("force")
		if !utils.NewInputUtils().AskConfirmation("Delete all users, posts, comments, messages, subscriptions and likes?", force) {
			color.Yellow("❌ Reset cancelled")
			return nil
		}

		if err := s.Truncate(ctx); err != nil {
			return err
		}
		color.Green("✅ Database reset")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolP("force", "f", false, "Skip confirmation")
}
