package database_test

import (
	"bytes"
	"os"
	"testing"

	"vidshare/internal/database"
	"vidshare/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpen_SQLiteMigratesAllModels(t *testing.T) {
	db, err := database.Open("sqlite", "file:database_test?mode=memory&cache=shared")
	require.NoError(t, err)

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m), "table for %T should exist", m)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Like{}, "idx_like_user_video"))
	assert.True(t, db.Migrator().HasIndex(&models.Subscription{}, "idx_subscription_user_channel"))
	assert.NoError(t, database.Ping(db))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open("oracle", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestOpen_MissingRecordIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(os.Stdout) })

	db, err := database.Open("sqlite", "file:database_not_found_test?mode=memory&cache=shared")
	require.NoError(t, err)
	buf.Reset()

	var user models.User
	err = db.First(&user, "id = ?", "missing").Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.NotContains(t, buf.String(), "record not found")

	// Real failures are still reported.
	err = db.Table("no_such_table").First(&user).Error
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "no_such_table")
}
