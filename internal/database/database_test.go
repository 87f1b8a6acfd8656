package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/testhelpers"
)

func TestNewSQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "planner.db")}

	db, err := database.New(cfg)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.HealthCheck(context.Background()))
	require.NoError(t, database.RunMigrations(db.Gorm, "migrations-that-do-not-exist"))

	for _, m := range database.Models() {
		assert.True(t, db.Gorm.Migrator().HasTable(m), "%T", m)
	}

	account := &models.Account{Username: "Anna", UsernameKey: models.UsernameKey("Anna"), PasswordHash: "x"}
	require.NoError(t, db.Gorm.Create(account).Error)
	assert.NotZero(t, account.ID)
}

func TestRunMigrationsTwice(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	assert.NoError(t, database.RunMigrations(db, ""))
}

func TestPostgresSQLMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := testhelpers.SetupPostgres(t)

	var applied []string
	require.NoError(t, db.Table("migrations").Order("name").Pluck("name", &applied).Error)
	assert.Equal(t, []string{"001_recipe_search_indexes.sql", "002_meal_plan_checks.sql"}, applied)

	// applying again is a no-op
	require.NoError(t, database.RunMigrations(db, testhelpers.MigrationsDir()))

	err := db.Exec("INSERT INTO meal_plans (account_id, title, week_start, created_at, updated_at) VALUES (1, 't', '2026-10-20', now(), now())").Error
	assert.Error(t, err, "week_start must be a Monday")
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := database.NewRedisClient(&config.Config{RedisURL: "not-a-url://"})
	assert.Error(t, err)
}
