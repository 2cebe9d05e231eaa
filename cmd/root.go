package cmd

import (
	"fmt"
	"os"

	"secure-file-server/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "secure-file-server",
	Short: "Secure File Server",
	Long: `Secure File Server serves a single directory (or bucket prefix) over HTTP.
Every request must carry Basic credentials that match the configured user table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Report with the structured logger in console format, as the CLI user sees it.
		// Debug level selects the development config for ISO8601 timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
