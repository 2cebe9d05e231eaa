package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"
)

// ErrUnknownSource is returned for an unsupported Config.Source.
var ErrUnknownSource = errors.New("unknown credential source")

// Row is one record of the credential table in the database.
type Row struct {
	Username string
	Password string
}

// Load builds the table from the configured source.
// db is only used by the database source and may be nil otherwise.
func Load(ctx context.Context, cfg Config, db *gorm.DB) (*Table, error) {
	switch cfg.Source {
	case SourceEnv, "":
		return fromEnv(cfg)
	case SourceDatabase:
		if db == nil {
			return nil, fmt.Errorf("database source requires a database connection")
		}
		return FromDatabase(ctx, db, cfg.Table)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, cfg.Source)
	}
}

// fromEnv merges the inline users with the users file, if any.
func fromEnv(cfg Config) (*Table, error) {
	users := make(map[string]string)
	if err := addEntries(users, strings.Split(cfg.Users, ","), "position"); err != nil {
		return nil, err
	}

	if cfg.UsersFile != "" {
		f, err := os.Open(cfg.UsersFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open users file: %w", err)
		}
		defer f.Close()
		if err := readLines(users, f); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.UsersFile, err)
		}
	}

	return NewTable(users)
}

// FromDatabase reads all username/password rows from table once.
func FromDatabase(ctx context.Context, db *gorm.DB, table string) (*Table, error) {
	var rows []Row
	err := db.WithContext(ctx).
		Table(table).
		Select("username", "password").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials from %s: %w", table, err)
	}

	users := make(map[string]string, len(rows))
	for _, r := range rows {
		if _, exists := users[r.Username]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUser, r.Username)
		}
		users[r.Username] = r.Password
	}
	return NewTable(users)
}
