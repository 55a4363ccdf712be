package cli

import (
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marscolony/simcore/internal/adapters/persistence"
	"github.com/marscolony/simcore/internal/domain/settlement"
	"github.com/marscolony/simcore/internal/domain/surface"
	"github.com/marscolony/simcore/internal/infrastructure/database"
)

// NewSettlementCommand creates the settlement command with subcommands
func NewSettlementCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settlement",
		Short: "Settlement operations",
		Long: `Inspect and manage colony settlements.

Examples:
  colony settlement list
  colony settlement show "Port Lowell"
  colony settlement create --name "Port Lowell" --population 12
  colony settlement create --name "New Plymouth" --at "24.2 S 110.5 E"`,
	}

	cmd.AddCommand(newSettlementListCommand())
	cmd.AddCommand(newSettlementShowCommand())
	cmd.AddCommand(newSettlementCreateCommand())

	return cmd
}

func newSettlementListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List settlements",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			repo := persistence.NewSettlementRepository(db, newCatalog())
			settlements, err := repo.FindAll(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLOCATION\tPOP\tCAPACITY\tCARRIERS")
			for _, s := range settlements {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
					s.Name(), s.Location(), s.Population(), s.PopulationCapacity(), len(s.Carriers()))
			}
			return w.Flush()
		},
	}
}

func newSettlementShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a settlement's inventory and state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			catalog := newCatalog()
			repo := persistence.NewSettlementRepository(db, catalog)
			s, err := repo.FindByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("settlement %q not found", args[0])
			}

			fmt.Printf("%s at %s\n", s.Name(), s.Location())
			fmt.Printf("population %d (indoor %d, capacity %d)\n",
				s.Population(), s.IndoorPopulation(), s.PopulationCapacity())
			fmt.Printf("resource metric %.1f, tourism factor %.1f\n",
				s.ResourceMetric(), s.TourismFactor())

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "GOOD\tCATEGORY\tSTOCK")
			for _, g := range catalog.All() {
				stock := s.NumInStock(g)
				if stock <= 0 {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%.1f\n", g.Symbol(), g.Category(), stock)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			for _, c := range s.Carriers() {
				status := "available"
				if c.Reserved() {
					status = "reserved"
				}
				fmt.Printf("carrier %s: %.0f kg capacity, %.0f km range (%s)\n",
					c.Name(), c.MassCapacityKg(), c.RangeKm(), status)
			}
			return nil
		},
	}
}

func newSettlementCreateCommand() *cobra.Command {
	var (
		name       string
		at         string
		population int
		capacity   int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a settlement",
		Long: `Create a settlement at the given coordinates, or at a random
surface location when --at is omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			var location surface.SphericalPoint
			if at != "" {
				location, err = parsePoint(at)
				if err != nil {
					return err
				}
			} else {
				location = surface.RandomPoint(rand.New(rand.NewSource(int64(os.Getpid()))))
			}

			catalog := newCatalog()
			market := settlement.NewMarket()
			for _, g := range catalog.All() {
				if g.IsLifeSupport() {
					market.SetBaseValue(g, 10)
				}
			}

			if capacity < population {
				capacity = population
			}
			s, err := settlement.NewSettlement(name, location, population, capacity, catalog, market)
			if err != nil {
				return err
			}

			repo := persistence.NewSettlementRepository(db, catalog)
			if err := repo.Save(cmd.Context(), s); err != nil {
				return err
			}
			fmt.Printf("created settlement %s at %s\n", s.Name(), s.Location())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Settlement name")
	cmd.Flags().StringVar(&at, "at", "", "Coordinates (random when omitted)")
	cmd.Flags().IntVar(&population, "population", 4, "Initial population")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Population capacity (defaults to population)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
