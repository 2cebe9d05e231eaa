// Package server holds the HTTP server configuration and lifecycle helpers.
//
// # Configuration
//
// The Config struct defines the listen host and port, the served root, the
// Basic authentication realm, and optional connection timeouts.
//
// # Lifecycle
//
// NewApp builds the Fiber application. Listen binds the socket separately from
// serving so that bind failures (ErrBind) surface before any request is
// accepted, and Serve runs the app until its context is cancelled.
//
//	ln, err := server.Listen(cfg.Server)
//	if err != nil {
//	    return err // errors.Is(err, server.ErrBind)
//	}
//	return server.Serve(ctx, app, ln, cfg.Server.ShutdownTimeout())
package server
