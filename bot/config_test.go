package bot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Core.Telegram.Token = "123:abc"
	return cfg
}

func TestNormalizeDefaultsToMemoryDriver(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, Normalize(cfg))
	require.Equal(t, StorageMemory, cfg.Storage.Driver)
}

func TestNormalizePostgresRequiresDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "postgres"
	require.Error(t, Normalize(cfg))

	cfg.Database.Host = "localhost"
	require.Error(t, Normalize(cfg))

	cfg.Database.Name = "buynoculars"
	require.NoError(t, Normalize(cfg))
	require.Equal(t, StoragePostgres, cfg.Storage.Driver)
}

func TestNormalizeRejectsUnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "sqlite"
	require.Error(t, Normalize(cfg))
}

func TestNormalizeRejectsNegativeTuning(t *testing.T) {
	cfg := validConfig()
	cfg.Search.AutoSelectThreshold = -1
	require.Error(t, Normalize(cfg))

	cfg = validConfig()
	cfg.Search.PageSize = -1
	require.Error(t, Normalize(cfg))

	cfg = validConfig()
	cfg.Alerts.MaxIndicators = -2
	require.Error(t, Normalize(cfg))
}
