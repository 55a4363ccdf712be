package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "colony",
		Short: "Mars colony CLI - inspect and manage the colony simulation",
		Long: `Colony CLI provides commands to inspect settlements, evaluate trade
routes, and work with surface coordinates.

Examples:
  colony settlement list
  colony settlement show "Port Lowell"
  colony trade evaluate --from "Port Lowell"
  colony ledger list
  colony coords distance --from "15.0 N 30.0 E" --to "10.0 S 45.0 W"
  colony coords parse "24.2 S 110.5 E"`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewCoordsCommand())
	rootCmd.AddCommand(NewSettlementCommand())
	rootCmd.AddCommand(NewTradeCommand())
	rootCmd.AddCommand(NewLedgerCommand())

	return rootCmd
}
