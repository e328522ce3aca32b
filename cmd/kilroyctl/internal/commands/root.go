// Package commands implements kilroyctl's CLI command structure using
// Cobra, grounded on the same rootCmd/PersistentFlags shape used
// elsewhere in the ecosystem for small client CLIs.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	baseURL string
	path    string
)

var rootCmd = &cobra.Command{
	Use:   "kilroyctl",
	Short: "Drive a kilroyws server from the command line",
	Long: `kilroyctl is a thin command-line driver for the chat-framed
WebSocket RPC protocol kilroyws implements. It has no commands for the
stateless request/reply protocol.

Examples:
  kilroyctl get --url ws://localhost:8080 --path /status
  kilroyctl subscribe --url ws://localhost:8080 --path /events
  kilroyctl request --url ws://localhost:8080 --path /echo --payload '{"n":1}'`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "", "server base URL (required)")
	rootCmd.PersistentFlags().StringVar(&path, "path", "/", "operation path")
	_ = rootCmd.MarkPersistentFlagRequired("url")
}
