package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartwaste-backend/config"
	"smartwaste-backend/internal/model"
)

func TestInit_SQLiteMigrates(t *testing.T) {
	gormDB, err := Init(&config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:db_init_test?mode=memory&cache=shared",
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, gormDB.Migrator().HasTable(&model.KVEntry{}))
	assert.True(t, gormDB.Migrator().HasTable(&model.PushSubscription{}))
}

func TestInit_UnknownDriver(t *testing.T) {
	_, err := Init(&config.DatabaseConfig{Driver: "mongodb", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
