// Package database handles the optional database connection.
//
// It wraps GORM to configure MySQL or SQLite connections from the application's
// configuration. The connection backs the "database" credential source, which
// reads the credential table once at startup.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("database connection required: %w", err)
//	}
package database
