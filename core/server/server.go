package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrBind is returned when the listening socket cannot be opened.
var ErrBind = errors.New("failed to bind listener")

// NewApp creates the Fiber application configured for file serving.
func NewApp(cfg Config) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "secure-file-server",
		DisableStartupMessage: true, // We log our own startup message
		ReadTimeout:           time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:          time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})
}

// Listen binds a TCP listener on the configured address.
// Errors are wrapped with ErrBind.
func Listen(cfg Config) (net.Listener, error) {
	ln, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		return nil, fmt.Errorf("%w on %s: %w", ErrBind, cfg.Address(), err)
	}
	return ln, nil
}

// Serve serves app on ln until ctx is cancelled or the listener fails.
// On cancellation the app is shut down, waiting at most timeout for in-flight requests.
func Serve(ctx context.Context, app *fiber.App, ln net.Listener, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listener(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return app.ShutdownWithTimeout(timeout)
	}
}
