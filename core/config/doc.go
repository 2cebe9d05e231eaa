// Package config provides configuration management for the file server.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (loaded with godotenv). Defaults come from the
// `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: listen host and port, served root, realm, timeouts
//   - Auth: credential source and inline users
//   - Storage: local or S3/MinIO backend settings
//   - Database: connection details for the database credential source
//   - Log: logging level and format
//
// Environment variables map to nested keys by replacing '.' with '_', so
// server.port is read from SERVER_PORT.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
