package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rana718/filldb/internal/config"
	"github.com/Rana718/filldb/internal/logger"
	"github.com/Rana718/filldb/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	seedTruncate bool
	seedReport   string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with synthetic data",
	Long: `
Generate users, posts, comments, personal messages, subscriptions,
post likes and comment likes, in that order, inside one transaction.

The first failing insert rolls back the whole run. Quotas that cannot
be satisfied with unique pairs (for example more subscriptions than
users*(users-1)) are rejected before anything is written.

With --truncate on PostgreSQL and SQLite the tables are cleared inside
the same transaction, so a failed run leaves the old data in place.
MySQL commits TRUNCATE immediately: there the tables are cleared before
the transaction starts and stay empty if the run fails.

Examples:
  filldb seed
  filldb seed --users 50 --posts 200 --subscriptions 500
  filldb seed --seed 42 --truncate --report run.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, s, log, err := openSeeder(ctx)
		if err != nil {
			return err
		}
		defer log.Sync()
		defer s.Close()

		report, err := s.Seed(ctx, seeder.SeedConfig{
			Quotas:   cfg.Quotas,
			Truncate: seedTruncate,
		})
		if err != nil {
			return err
		}

		color.Cyan("⏱️  Finished in %s (random seed %d)", report.Duration.Round(time.Millisecond), report.RandomSeed)
		if seedReport != "" {
			if err := report.WriteFile(seedReport); err != nil {
				return err
			}
			color.Cyan("📄 Report written to %s", seedReport)
		}
		return nil
	},
}

// openSeeder loads and validates the configuration, then connects a seeder.
func openSeeder(ctx context.Context) (*config.Config, *seeder.Seeder, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.NewZapLogger(cfg.Log.OutputPaths, cfg.Log.Level)
	if err != nil {
		return nil, nil, nil, err
	}

	s, err := seeder.NewSeeder(ctx, cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, s, log, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)

	defaults := config.DefaultQuotas()
	quotaFlags := []struct {
		flag  string
		key   string
		value int
		usage string
	}{
		{"users", "quotas.users", defaults.Users, "Number of users"},
		{"posts", "quotas.posts", defaults.Posts, "Number of posts"},
		{"comments", "quotas.comments", defaults.Comments, "Number of comments"},
		{"messages", "quotas.messages", defaults.Messages, "Number of personal messages"},
		{"subscriptions", "quotas.subscriptions", defaults.Subscriptions, "Number of unique subscriptions"},
		{"post-likes", "quotas.post_likes", defaults.PostLikes, "Number of unique post likes"},
		{"comment-likes", "quotas.comment_likes", defaults.CommentLikes, "Number of unique comment likes"},
	}
	for _, q := range quotaFlags {
		seedCmd.Flags().Int(q.flag, q.value, q.usage)
		viper.BindPFlag(q.key, seedCmd.Flags().Lookup(q.flag))
	}

	seedCmd.Flags().Int64("seed", 0, "Random seed for reproducible data (0 picks one)")
	viper.BindPFlag("random_seed", seedCmd.Flags().Lookup("seed"))

	seedCmd.Flags().BoolVar(&seedTruncate, "truncate", false, "Clear all seeded tables before filling them")
	seedCmd.Flags().StringVar(&seedReport, "report", "", "Write a YAML run report to this file")
}
