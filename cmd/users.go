package cmd

import (
	"fmt"

	"secure-file-server/core/config"
	"secure-file-server/core/credentials"

	"github.com/spf13/cobra"
)

// usersCmd groups credential helpers
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect and prepare credentials",
}

// usersListCmd represents the users list command
var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the authorized usernames",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		table, err := loadCredentials(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		for _, name := range table.Usernames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

// usersHashCmd represents the users hash command
var usersHashCmd = &cobra.Command{
	Use:   "hash <password>",
	Short: "Print an argon2id hash to store instead of a plaintext password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := credentials.Hash(args[0])
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd, usersHashCmd)
	RootCmd.AddCommand(usersCmd)
}
