package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/document-registry/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "drc",
	Short:         "Document registry for versioned documents, locks and relations",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Run executes the CLI and returns the process exit code.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("error:", err)
		return 1
	}
	return 0
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.BaseConfigFile, "Path to the base configuration file")
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newUnlockCmd())
	rootCmd.AddCommand(newHistoryCmd())
}
