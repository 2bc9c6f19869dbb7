package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sainneha/Asana/client"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "taskctl",
		Short:   "taskctl - manage your tasks from the terminal",
		Version: Version,
	}
	rootCmd.PersistentFlags().String("server", "", "API base URL (overrides config)")

	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(doneCmd())
	rootCmd.AddCommand(rmCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newStore builds a client store from the saved config plus the --server
// override.
func newStore(cmd *cobra.Command) (*client.Store, *cliConfig, error) {
	cfg, err := loadCLIConfig()
	if err != nil {
		return nil, nil, err
	}
	if v, _ := cmd.Flags().GetString("server"); v != "" {
		cfg.Server = v
	}
	s := client.New(cfg.Server)
	if cfg.UserID != "" {
		s.SetUser(cfg.UserID)
	}
	return s, cfg, nil
}

func requireUser(cfg *cliConfig) error {
	if cfg.UserID == "" {
		return fmt.Errorf("not logged in: run `taskctl login` first")
	}
	return nil
}
