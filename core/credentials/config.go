package credentials

const (
	SourceEnv      = "env"
	SourceDatabase = "database"
)

// Config holds configuration for the credential table.
type Config struct {
	// Source selects where the table is loaded from (env, database).
	Source string `mapstructure:"source" default:"env"`
	// Users is the inline table used by the env source, formatted as "user:pass,user2:pass2".
	// Values starting with "$argon2id$" are always verified as hashes.
	Users string `mapstructure:"users" default:""`
	// UsersFile is an optional file read by the env source, one "user:password" per line.
	// Use it for argon2id hashes, which contain commas.
	UsersFile string `mapstructure:"users_file" default:""`
	// Table is the database table read by the database source.
	Table string `mapstructure:"table" default:"users"`
}

// IsValidSource checks if the configured source is supported.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceEnv, SourceDatabase:
		return true
	default:
		return false
	}
}
