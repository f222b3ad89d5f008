package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/routing"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/scout"
)

// NewScoutCommand builds the `scout` command group: gates and range,
// spec §6.
func NewScoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scout",
		Short: "Scouting primitives: gate neighbors and spatial range",
	}
	cmd.AddCommand(newScoutGatesCommand())
	cmd.AddCommand(newScoutRangeCommand())
	return cmd
}

func newScoutGatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gates <system>",
		Short: "List a system's gate-connected neighbors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			s := scout.New(sess.Map, sess.Index, sess.Catalog)
			result, err := s.Gates(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s has %d gate neighbor(s):\n", result.Name, len(result.Neighbors))
			for _, n := range result.Neighbors {
				fmt.Printf("  %s\n", n.Name)
			}
			return nil
		},
	}
}

func newScoutRangeCommand() *cobra.Command {
	var (
		limitFlag       int
		radiusFlag      float64
		maxTempFlag     float64
		shipFlag        string
		fuelQualityFlag float64
		cargoMassFlag   float64
		fuelLoadFlag    float64
	)

	cmd := &cobra.Command{
		Use:   "range <system>",
		Short: "List the nearest systems by spatial distance",
		Long: `List the nearest systems to <system> by spatial distance, optionally
bounded by a radius or maximum external temperature.

When --ship is given, the candidate set is reordered into a greedy
nearest-neighbor tour and annotated hop by hop with fuel and heat,
identically to how 'route' annotates a RoutePlan.

Examples:
  evefrontier scout range Sol --limit 20
  evefrontier scout range Sol --limit 10 --radius 50 --ship Scorpion`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			s := scout.New(sess.Map, sess.Index, sess.Catalog)

			params := scout.RangeParams{Limit: limitFlag}
			if cmd.Flags().Changed("radius") {
				params.Radius = &radiusFlag
			}
			if cmd.Flags().Changed("max-temp") {
				params.MaxTemperature = &maxTempFlag
			}

			if shipFlag != "" {
				sel := &routing.ShipSelection{
					Name:        shipFlag,
					FuelQuality: fuelQualityFlag,
					CargoMassKg: cargoMassFlag,
					FuelLoad:    fuelLoadFlag,
				}
				plan, err := s.RangeWithShip(args[0], params, sel)
				if err != nil {
					return err
				}
				printRoutePlan(plan)
				return nil
			}

			result, err := s.Range(args[0], params)
			if err != nil {
				return err
			}
			for _, hit := range result.Hits {
				fmt.Printf("  %-20s %8.2f ly\n", hit.Name, hit.DistanceLy)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 10, "Maximum number of systems to return, 1..100")
	cmd.Flags().Float64Var(&radiusFlag, "radius", 0, "Maximum search radius in light-years")
	cmd.Flags().Float64Var(&maxTempFlag, "max-temp", 0, "Maximum external temperature in Kelvin")
	cmd.Flags().StringVar(&shipFlag, "ship", "", "Ship class name to annotate a greedy tour with")
	cmd.Flags().Float64Var(&fuelQualityFlag, "fuel-quality", 100, "Fuel quality percent, 1..100")
	cmd.Flags().Float64Var(&cargoMassFlag, "cargo-mass", 0, "Cargo mass in kg")
	cmd.Flags().Float64Var(&fuelLoadFlag, "fuel-load", 0, "Starting fuel load in units (defaults to full tank)")

	return cmd
}
