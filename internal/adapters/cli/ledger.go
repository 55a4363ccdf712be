package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marscolony/simcore/internal/adapters/persistence"
	"github.com/marscolony/simcore/internal/infrastructure/database"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inter-settlement credit ledger",
		Long: `View the running value balances between settlement pairs.

A positive balance means the first settlement is owed value by the second;
trade missions pad their loads to work balances back toward zero.

Examples:
  colony ledger list`,
	}

	cmd.AddCommand(newLedgerListCommand())

	return cmd
}

func newLedgerListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pair balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			ledger, err := persistence.NewCreditLedgerRepository(db).Load(cmd.Context())
			if err != nil {
				return err
			}

			entries := ledger.Entries()
			if len(entries) == 0 {
				fmt.Println("no balances recorded")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SETTLEMENT A\tSETTLEMENT B\tBALANCE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%.1f\n", e.A, e.B, e.Balance)
			}
			return w.Flush()
		},
	}
}
