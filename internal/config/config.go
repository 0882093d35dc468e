package config

import (
	"fmt"
	"os"

	"github.com/Rana718/filldb/internal/sampler"
	"github.com/spf13/viper"
)

type Config struct {
	Database      Database `json:"database" mapstructure:"database"`
	Quotas        Quotas   `json:"quotas" mapstructure:"quotas"`
	User          User     `json:"user" mapstructure:"user"`
	Sampler       Sampler  `json:"sampler" mapstructure:"sampler"`
	Log           Log      `json:"log" mapstructure:"log"`
	RandomSeed    int64    `json:"random_seed" mapstructure:"random_seed"` // 0 picks a time based seed
	ProgressEvery int      `json:"progress_every" mapstructure:"progress_every"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Quotas holds the number of rows generated per table.
type Quotas struct {
	Users         int `json:"users" mapstructure:"users"`
	Posts         int `json:"posts" mapstructure:"posts"`
	Comments      int `json:"comments" mapstructure:"comments"`
	Messages      int `json:"messages" mapstructure:"messages"`
	Subscriptions int `json:"subscriptions" mapstructure:"subscriptions"`
	PostLikes     int `json:"post_likes" mapstructure:"post_likes"`
	CommentLikes  int `json:"comment_likes" mapstructure:"comment_likes"`
}

// User holds the values shared by every generated user.
type User struct {
	Password    string `json:"password" mapstructure:"password"`
	Avatar      string `json:"avatar" mapstructure:"avatar"`
	EmailDomain string `json:"email_domain" mapstructure:"email_domain"`
}

type Sampler struct {
	AttemptFactor int `json:"attempt_factor" mapstructure:"attempt_factor"`
}

type Log struct {
	OutputPaths []string `json:"output_paths" mapstructure:"output_paths"`
	Level       string   `json:"level" mapstructure:"level"`
}

var supportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}

// DefaultQuotas are the row counts of a full socio load test dataset.
func DefaultQuotas() Quotas {
	return Quotas{
		Users:         1000,
		Posts:         1000000,
		Comments:      10000,
		Messages:      10000,
		Subscriptions: 1000,
		PostLikes:     10000,
		CommentLikes:  10000,
	}
}

func Load() (*Config, error) {
	cfg := Config{Quotas: DefaultQuotas()}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.User.Password == "" {
		cfg.User.Password = "password"
	}
	if cfg.User.Avatar == "" {
		cfg.User.Avatar = "default_avatar.png"
	}
	if cfg.User.EmailDomain == "" {
		cfg.User.EmailDomain = "mail.ru"
	}
	if cfg.Sampler.AttemptFactor <= 0 {
		cfg.Sampler.AttemptFactor = sampler.DefaultAttemptFactor
	}
	if cfg.Sampler.AttemptFactor > sampler.MaxAttemptFactor {
		cfg.Sampler.AttemptFactor = sampler.MaxAttemptFactor
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 10000
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	return c.Quotas.Validate()
}

func (q Quotas) Validate() error {
	counts := []struct {
		name  string
		value int
	}{
		{"users", q.Users},
		{"posts", q.Posts},
		{"comments", q.Comments},
		{"messages", q.Messages},
		{"subscriptions", q.Subscriptions},
		{"post_likes", q.PostLikes},
		{"comment_likes", q.CommentLikes},
	}
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("quota %s cannot be negative: %d", c.name, c.value)
		}
	}
	return nil
}

// IsPostgres reports whether the provider speaks the PostgreSQL dialect.
func (c *Config) IsPostgres() bool {
	return c.Database.Provider == "postgresql" || c.Database.Provider == "postgres"
}

func (c *Config) IsSQLite() bool {
	return c.Database.Provider == "sqlite" || c.Database.Provider == "sqlite3"
}

// TransactionalTruncate reports whether clearing tables can be rolled back.
// MySQL commits implicitly on TRUNCATE.
func (c *Config) TransactionalTruncate() bool {
	return c.IsPostgres() || c.IsSQLite()
}
