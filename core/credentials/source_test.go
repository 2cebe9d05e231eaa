package credentials

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestFromDatabase(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT `username`,`password` FROM `accounts`").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password"}).
			AddRow("j", "joyonta").
			AddRow("p", "priyanghsu"))

	table, err := FromDatabase(context.Background(), db, "accounts")
	require.NoError(t, err)
	assert.Equal(t, []string{"j", "p"}, table.Usernames())
	assert.True(t, table.Verify("j", "joyonta"))
	assert.False(t, table.Verify("j", "wrongpass"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFromDatabase_Duplicate(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password"}).
			AddRow("j", "a").
			AddRow("j", "b"))

	_, err := FromDatabase(context.Background(), db, "users")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestFromDatabase_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnError(assert.AnError)

	_, err := FromDatabase(context.Background(), db, "users")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "users")
}

func TestLoad(t *testing.T) {
	t.Run("Env", func(t *testing.T) {
		table, err := Load(context.Background(), Config{Source: SourceEnv, Users: "j:joyonta"}, nil)
		require.NoError(t, err)
		assert.True(t, table.Verify("j", "joyonta"))
	})

	t.Run("Env With Users File", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "users")
		require.NoError(t, os.WriteFile(file, []byte("p:priyanghsu\n"), 0o600))

		table, err := Load(context.Background(), Config{Source: SourceEnv, Users: "j:joyonta", UsersFile: file}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"j", "p"}, table.Usernames())
	})

	t.Run("Env Duplicate Across File", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "users")
		require.NoError(t, os.WriteFile(file, []byte("j:other\n"), 0o600))

		_, err := Load(context.Background(), Config{Source: SourceEnv, Users: "j:joyonta", UsersFile: file}, nil)
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("Env Missing Users File", func(t *testing.T) {
		_, err := Load(context.Background(), Config{Source: SourceEnv, UsersFile: filepath.Join(t.TempDir(), "nope")}, nil)
		assert.Error(t, err)
	})

	t.Run("Default Source", func(t *testing.T) {
		table, err := Load(context.Background(), Config{Users: "j:joyonta"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, table.Len())
	})

	t.Run("Database Without Connection", func(t *testing.T) {
		_, err := Load(context.Background(), Config{Source: SourceDatabase, Table: "users"}, nil)
		assert.Error(t, err)
	})

	t.Run("Database", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM `users`").
			WillReturnRows(sqlmock.NewRows([]string{"username", "password"}).AddRow("p", "priyanghsu"))

		table, err := Load(context.Background(), Config{Source: SourceDatabase, Table: "users"}, db)
		require.NoError(t, err)
		assert.True(t, table.Verify("p", "priyanghsu"))
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := Load(context.Background(), Config{Source: "ldap"}, nil)
		assert.ErrorIs(t, err, ErrUnknownSource)
	})
}
