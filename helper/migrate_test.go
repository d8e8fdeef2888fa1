package helper_test

import (
	"salon/config"
	"salon/helper"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Write.Username = "salon"
	cfg.DB.Postgres.Write.Password = "p@ss word"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "booking"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	t.Run("password is escaped", func(t *testing.T) {
		dsn := helper.MigrationDSN(cfg)

		assert.Equal(t, "postgres://salon:p%40ss%20word@db:5432/booking?sslmode=disable", dsn)
	})

	t.Run("prefix and migration table", func(t *testing.T) {
		withPrefix := *cfg
		withPrefix.DB.Postgres.Prefix = "test_"
		withPrefix.DB.Postgres.MigrationTable = "schema_migrations"

		dsn := helper.MigrationDSN(&withPrefix)

		assert.Contains(t, dsn, "@db:5432/test_booking?")
		assert.Contains(t, dsn, "x-migrations-table=schema_migrations")
	})
}

func TestRunner_UnknownAction(t *testing.T) {
	err := helper.Runner(&config.Config{}, "sideways")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}
