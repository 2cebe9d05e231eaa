package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"secure-file-server/core/config"
	"secure-file-server/core/credentials"
	"secure-file-server/core/database"
	"secure-file-server/core/logger"
	"secure-file-server/core/server"
	"secure-file-server/feature/files"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the secure file server",
	Long: `Creates the root if it is missing, binds the listener and serves files
to clients presenting valid Basic credentials until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, cfg, logg)
	},
}

func init() {
	startCmd.Flags().String("host", "", "interface to listen on (overrides SERVER_HOST)")
	startCmd.Flags().Int("port", 0, "port to listen on (overrides SERVER_PORT)")
	startCmd.Flags().String("root", "", "directory or bucket prefix to serve (overrides SERVER_ROOT)")
	RootCmd.AddCommand(startCmd)
}

// loadConfig loads the configuration and applies explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("root") {
		cfg.Server.Root, _ = flags.GetString("root")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// run prepares the root, binds the listener and serves until ctx is done.
// The root is ensured before binding so no request can observe a missing root.
func run(ctx context.Context, cfg *config.Config, logg *zap.Logger) error {
	table, err := loadCredentials(ctx, cfg)
	if err != nil {
		return err
	}
	if table.Len() == 0 {
		logg.Warn("No authorized users configured, every request will be rejected")
	}

	backend, err := files.NewBackend(cfg.Storage, cfg.Server.Root)
	if err != nil {
		return err
	}
	created, err := backend.Ensure(ctx)
	if err != nil {
		return err
	}
	if created {
		logg.Info("Created folder", zap.String("root", backend.Root()))
	}

	app, err := newApp(cfg, logg, table, backend)
	if err != nil {
		return fmt.Errorf("failed to load features: %w", err)
	}

	ln, err := server.Listen(cfg.Server)
	if err != nil {
		return err
	}

	logg.Info("Starting secure file server",
		zap.String("address", ln.Addr().String()),
		zap.String("root", backend.Root()),
		zap.String("url", accessURL(ln)),
	)
	logg.Info("Authorized users", zap.Strings("users", table.Usernames()))

	err = server.Serve(ctx, app, ln, cfg.Server.ShutdownTimeout())
	logg.Info("Server stopped")
	return err
}

// loadCredentials builds the credential table, connecting to the database only when it is the source.
func loadCredentials(ctx context.Context, cfg *config.Config) (*credentials.Table, error) {
	if cfg.Auth.Source != credentials.SourceDatabase {
		return credentials.Load(ctx, cfg.Auth, nil)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		// The table is read once; the connection is not needed afterwards.
		defer sqlDB.Close()
	}
	return credentials.Load(ctx, cfg.Auth, db)
}

func accessURL(ln net.Listener) string {
	port := 0
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	return "http://localhost:" + strconv.Itoa(port)
}
