package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "fileserver",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: filepath.Join(t.TempDir(), "users.db")})
		require.NoError(t, err)
		require.NotNil(t, db)

		err = db.Exec("CREATE TABLE users (username TEXT PRIMARY KEY, password TEXT)").Error
		assert.NoError(t, err)
		err = db.Exec("INSERT INTO users (username, password) VALUES (?, ?)", "j", "joyonta").Error
		assert.NoError(t, err)

		var count int64
		assert.NoError(t, db.Table("users").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}
