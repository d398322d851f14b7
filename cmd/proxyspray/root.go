// Package main provides the entry point for the proxyspray CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for proxyspray.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proxyspray",
		Short: "Determine which upstream HTTP/S proxies will forward requests to your targets",
		Long: `Proxyspray determines whether upstream HTTP/HTTPS proxies will send
requests to upstream targets. It expands targets (URLs, IPs, CIDR ranges,
files of any of these), pairs each with every supplied proxy of a matching
scheme, and probes each pair exactly once under a bounded concurrency window.

SUCCESS and FAILURE lines are printed to standard output as results arrive;
status and progress go to standard error.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewSprayCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
