package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*StructuredConfig)
		want   error
	}{
		{"defaults", func(*StructuredConfig) {}, nil},
		{"negative ttl", func(c *StructuredConfig) { c.App.CacheTTL = -1 }, ErrInvalidAppConfigs},
		{"zero ttl allowed", func(c *StructuredConfig) { c.App.CacheTTL = 0 }, nil},
		{"relative url", func(c *StructuredConfig) { c.Adapter.SyncURL = "/api/v1/sync" }, ErrInvalidAdapterConfigs},
		{"ftp url", func(c *StructuredConfig) { c.Adapter.SyncURL = "ftp://host/sync" }, ErrInvalidAdapterConfigs},
		{"zero timeout", func(c *StructuredConfig) { c.Adapter.RequestTimeout = 0 }, ErrInvalidAdapterConfigs},
		{"unknown driver", func(c *StructuredConfig) { c.Storage.Cache.Driver = "redis" }, ErrInvalidStorageConfigs},
		{"file no path", func(c *StructuredConfig) { c.Storage.Cache.Path = "" }, ErrInvalidStorageConfigs},
		{"sqlite memory", func(c *StructuredConfig) {
			c.Storage.Cache.Driver = CacheDriverSQLite
			c.Storage.Cache.DSN = ":memory:"
		}, ErrInvalidStorageConfigs},
		{"sqlite ok", func(c *StructuredConfig) { c.Storage.Cache.Driver = CacheDriverSQLite }, nil},
		{"zero refresh", func(c *StructuredConfig) { c.Workers.RefreshInterval = 0 }, ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRequireToken(t *testing.T) {
	cfg := validConfig()
	assert.ErrorIs(t, cfg.RequireToken(), ErrInvalidAppConfigs)
	assert.ErrorIs(t, cfg.RequireToken(), ErrTokenNotConfigured)

	cfg.App.APIToken = "  "
	assert.ErrorIs(t, cfg.RequireToken(), ErrInvalidAppConfigs)

	cfg.App.APIToken = "tok"
	assert.NoError(t, cfg.RequireToken())
}
