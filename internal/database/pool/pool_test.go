package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func createTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestDefaultPoolConfig(t *testing.T) {
	cfg := DefaultPoolConfig()
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.Equal(t, 2, cfg.MaxIdleConns)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_POOL_MAX_OPEN", "4")
	t.Setenv("DB_POOL_MAX_LIFETIME", "1m")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, 4, cfg.MaxOpenConns)
	assert.Equal(t, 2, cfg.MaxIdleConns)
	assert.Equal(t, time.Minute, cfg.ConnMaxLifetime)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid", cfg: Config{MaxOpenConns: 5, MaxIdleConns: 5}},
		{name: "zero idle", cfg: Config{MaxOpenConns: 5}},
		{name: "zero open", cfg: Config{MaxOpenConns: 0}, wantErr: "MaxOpenConns must be greater than 0"},
		{name: "negative open", cfg: Config{MaxOpenConns: -1}, wantErr: "MaxOpenConns must be greater than 0"},
		{name: "negative idle", cfg: Config{MaxOpenConns: 5, MaxIdleConns: -1}, wantErr: "MaxIdleConns must be non-negative"},
		{name: "idle above open", cfg: Config{MaxOpenConns: 5, MaxIdleConns: 6}, wantErr: "cannot be greater than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSetupConnectionPool(t *testing.T) {
	t.Run("applies settings", func(t *testing.T) {
		db := createTestDB(t)

		err := SetupConnectionPool(db, Config{MaxOpenConns: 7, MaxIdleConns: 1, ConnMaxLifetime: time.Minute})
		require.NoError(t, err)

		sqlDB, err := db.DB()
		require.NoError(t, err)
		assert.Equal(t, 7, sqlDB.Stats().MaxOpenConnections)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		db := createTestDB(t)

		err := SetupConnectionPool(db, Config{MaxOpenConns: 1, MaxIdleConns: 2})
		assert.Error(t, err)
	})
}
