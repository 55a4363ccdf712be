package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marscolony/simcore/internal/adapters/persistence"
	"github.com/marscolony/simcore/internal/domain/trading"
	"github.com/marscolony/simcore/internal/infrastructure/database"
)

// NewTradeCommand creates the trade command with subcommands
func NewTradeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade valuation operations",
		Long: `Evaluate trade opportunities between settlements.

Evaluation is read-only: it values hypothetical loads against current
inventories without moving any goods.

Examples:
  colony trade evaluate --from "Port Lowell"
  colony trade evaluate --from "Port Lowell" --to "New Plymouth" --crew 3`,
	}

	cmd.AddCommand(newTradeEvaluateCommand())

	return cmd
}

func newTradeEvaluateCommand() *cobra.Command {
	var (
		from string
		to   string
		crew int
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate trade profit from a settlement",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			catalog := newCatalog()
			repo := persistence.NewSettlementRepository(db, catalog)

			home, err := repo.FindByName(cmd.Context(), from)
			if err != nil {
				return err
			}
			if home == nil {
				return fmt.Errorf("settlement %q not found", from)
			}
			carriers := home.Carriers()
			if len(carriers) == 0 {
				return fmt.Errorf("settlement %q has no carriers", from)
			}
			carrier := carriers[0]

			ledger, err := persistence.NewCreditLedgerRepository(db).Load(cmd.Context())
			if err != nil {
				return err
			}
			valuator := trading.NewValuator(catalog, ledger, crew)

			if to != "" {
				partner, err := repo.FindByName(cmd.Context(), to)
				if err != nil {
					return err
				}
				if partner == nil {
					return fmt.Errorf("settlement %q not found", to)
				}
				profit := valuator.EstimateProfit(home, carrier, partner)
				fmt.Printf("estimated profit %s -> %s: %.1f\n", from, to, profit)
				printLoad("sell load", valuator.BestSellLoad(home, carrier, partner))
				printLoad("buy load", valuator.DesiredBuyLoad(home, carrier, partner))
				return nil
			}

			all, err := repo.FindAll(cmd.Context())
			if err != nil {
				return err
			}
			candidates := make([]trading.Trader, 0, len(all))
			for _, s := range all {
				if s.Name() != home.Name() {
					candidates = append(candidates, s)
				}
			}

			profit, partner := valuator.BestTradeProfit(home, carrier, candidates)
			if partner == nil {
				fmt.Println("no profitable trade partner in range")
				return nil
			}
			fmt.Printf("best partner: %s (estimated profit %.1f)\n", partner.Name(), profit)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Home settlement")
	cmd.Flags().StringVar(&to, "to", "", "Partner settlement (best match when omitted)")
	cmd.Flags().IntVar(&crew, "crew", 2, "Mission crew size")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func printLoad(title string, load trading.Load) {
	fmt.Println(title + ":")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for good, qty := range load {
		fmt.Fprintf(w, "  %s\t%s\t%d\n", good.Symbol(), good.Category(), qty)
	}
	_ = w.Flush()
}
