package config

import (
	"testing"

	"github.com/Rana718/filldb/internal/sampler"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgresql", cfg.Database.Provider)
	assert.Equal(t, "DATABASE_URL", cfg.Database.URLEnv)
	assert.Equal(t, DefaultQuotas(), cfg.Quotas)
	assert.Equal(t, "password", cfg.User.Password)
	assert.Equal(t, "default_avatar.png", cfg.User.Avatar)
	assert.Equal(t, "mail.ru", cfg.User.EmailDomain)
	assert.Equal(t, 64, cfg.Sampler.AttemptFactor)
	assert.Equal(t, 10000, cfg.ProgressEvery)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_OverridesFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("database.provider", "sqlite")
	viper.Set("quotas.users", 10)
	viper.Set("quotas.posts", 50)
	viper.Set("random_seed", 1234)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Provider)
	assert.Equal(t, 10, cfg.Quotas.Users)
	assert.Equal(t, 50, cfg.Quotas.Posts)
	assert.Equal(t, 10000, cfg.Quotas.Comments, "unset quotas keep their defaults")
	assert.Equal(t, int64(1234), cfg.RandomSeed)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Database: Database{Provider: "oracle"}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Database: Database{Provider: "mysql"}, Quotas: DefaultQuotas()}
	assert.NoError(t, cfg.Validate())

	cfg.Quotas.PostLikes = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post_likes")
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := &Config{Database: Database{URLEnv: "FILLDB_TEST_URL"}}

	t.Setenv("FILLDB_TEST_URL", "")
	_, err := cfg.GetDatabaseURL()
	assert.Error(t, err)

	t.Setenv("FILLDB_TEST_URL", "sqlite://./test.db")
	url, err := cfg.GetDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "sqlite://./test.db", url)
}

func TestTransactionalTruncate(t *testing.T) {
	for provider, want := range map[string]bool{
		"postgresql": true,
		"postgres":   true,
		"sqlite":     true,
		"sqlite3":    true,
		"mysql":      false,
	} {
		cfg := &Config{Database: Database{Provider: provider}}
		assert.Equal(t, want, cfg.TransactionalTruncate(), provider)
	}
}

func TestLoad_ClampsAttemptFactor(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("sampler.attempt_factor", 1<<30)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, sampler.MaxAttemptFactor, cfg.Sampler.AttemptFactor)
}
