package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts of the seeded tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, s, log, err := openSeeder(ctx)
		if err != nil {
			return err
		}
		defer log.Sync()
		defer s.Close()

		order, counts, err := s.RowCounts(ctx)
		if err != nil {
			return fmt.Errorf("failed to count rows: %w", err)
		}

		color.Cyan("📊 Database status (%s)", cfg.Database.Provider)
		fmt.Println()
		total := 0
		for _, table := range order {
			fmt.Printf("   %-18s %10d\n", table, counts[table])
			total += counts[table]
		}
		fmt.Printf("   %-18s %10d\n", "total", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
