package server

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// DefaultRealm is the Basic authentication realm advertised in challenges.
const DefaultRealm = "Secure File Server"

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface to listen on. Empty means all interfaces.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen.
	Port int `mapstructure:"port" default:"8000"`
	// Root is the directory served (local driver) or the key prefix inside the bucket (s3 driver).
	Root string `mapstructure:"root" default:"shared"`
	// Realm is the Basic authentication realm.
	Realm string `mapstructure:"realm" default:"Secure File Server"`
	// ReadTimeoutSeconds bounds reading a request. Zero disables it.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"0"`
	// WriteTimeoutSeconds bounds writing a response. Zero disables it.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"0"`
	// ShutdownTimeoutSeconds bounds how long shutdown waits for in-flight requests.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"5"`
}

// Address returns the host:port pair the listener binds to.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks the values that cannot be caught by the listener itself.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Root == "" {
		return fmt.Errorf("root must not be empty")
	}
	return nil
}

// RealmOrDefault returns the configured realm, falling back to DefaultRealm.
func (c Config) RealmOrDefault() string {
	if c.Realm == "" {
		return DefaultRealm
	}
	return c.Realm
}

// ShutdownTimeout returns the shutdown bound as a duration.
func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
