package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/marscolony/simcore/internal/domain/surface"
)

// NewCoordsCommand creates the coords command with subcommands
func NewCoordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coords",
		Short: "Surface coordinate utilities",
		Long: `Parse, format, and compute with Martian surface coordinates.

Coordinates are written as "<lat> <N|S> <lon> <E|W>", e.g. "15.0 N 30.0 E".

Examples:
  colony coords parse "24.2 S 110.5 E"
  colony coords distance --from "15.0 N 30.0 E" --to "10.0 S 45.0 W"
  colony coords bearing --from "15.0 N 30.0 E" --to "10.0 S 45.0 W"
  colony coords destination --from "0.0 N 0.0 E" --bearing 90 --distance 500`,
	}

	cmd.AddCommand(newCoordsParseCommand())
	cmd.AddCommand(newCoordsDistanceCommand())
	cmd.AddCommand(newCoordsBearingCommand())
	cmd.AddCommand(newCoordsDestinationCommand())

	return cmd
}

func newCoordsParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <coordinates>",
		Short: "Parse a coordinate string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			point, err := parsePoint(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("phi:   %.6f rad\n", point.Phi())
			fmt.Printf("theta: %.6f rad\n", point.Theta())
			fmt.Printf("formatted: %s\n", point)
			return nil
		},
	}
}

func newCoordsDistanceCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Great-circle distance between two points",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parsePoint(from)
			if err != nil {
				return err
			}
			b, err := parsePoint(to)
			if err != nil {
				return err
			}
			fmt.Printf("angle:    %.6f rad\n", a.AngleTo(b))
			fmt.Printf("distance: %.1f km\n", a.DistanceTo(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Starting coordinates")
	cmd.Flags().StringVar(&to, "to", "", "Target coordinates")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newCoordsBearingCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "bearing",
		Short: "Initial bearing from one point toward another",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parsePoint(from)
			if err != nil {
				return err
			}
			b, err := parsePoint(to)
			if err != nil {
				return err
			}
			bearing := a.BearingTo(b)
			fmt.Printf("bearing: %.6f rad (%.1f deg)\n",
				bearing.Radians(), bearing.Radians()*180/math.Pi)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Starting coordinates")
	cmd.Flags().StringVar(&to, "to", "", "Target coordinates")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newCoordsDestinationCommand() *cobra.Command {
	var from string
	var bearingDeg, distanceKm float64

	cmd := &cobra.Command{
		Use:   "destination",
		Short: "Destination point from a start, bearing, and distance",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parsePoint(from)
			if err != nil {
				return err
			}
			direction := surface.NewDirection(bearingDeg * math.Pi / 180)
			dest := a.Destination(direction, distanceKm)
			fmt.Printf("destination: %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Starting coordinates")
	cmd.Flags().Float64Var(&bearingDeg, "bearing", 0, "Bearing in degrees")
	cmd.Flags().Float64Var(&distanceKm, "distance", 0, "Distance in km")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("distance")
	return cmd
}
