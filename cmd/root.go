package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schmilblick-org/violetear-coordinator/cmd/flags"
	"github.com/schmilblick-org/violetear-coordinator/config"
)

var RootCmd = &cobra.Command{
	Use:   "coordinator",
	Short: "Coordinator records build/test task submissions against named profiles",
	Long: `Coordinator is a small coordination service: callers submit tasks
against named profiles over JSON-RPC, and both are persisted durably in a
relational store. It records submissions; it does not run them.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetArgs([]string{"server"})
		cmd.Execute()
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", config.DefaultPath, "Config file")
	RootCmd.PersistentFlags().StringVarP(&flags.Listen, "listen", "l", "", "Listen address (overrides config)")
	RootCmd.PersistentFlags().StringVarP(&flags.PostgresURI, "postgres-uri", "p", "", "Backing store DSN (overrides config)")
}
