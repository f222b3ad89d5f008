package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Scetrov/evefrontier-routecore/internal/adapters/tui"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/pathfinder"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/routing"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// NewRouteCommand builds the `route` command, spec §6:
// route <from> <to> [--algorithm bfs|dijkstra|a-star] [--optimize distance|hops|fuel|heat]
// [--max-jump LY] [--avoid SYS]* [--avoid-gates] [--max-temp K]
// [--avoid-critical-state] [--ship NAME]
// [--fuel-quality P] [--cargo-mass KG] [--fuel-load U] [--max-spatial-neighbours N].
// --avoid-critical-state is a plain boolean flag defaulting to false; there
// is no separate --no-avoid-critical-state flag.
func NewRouteCommand() *cobra.Command {
	var (
		algorithmFlag         string
		optimizeFlag          string
		maxJumpFlag           float64
		avoidFlag             []string
		avoidGatesFlag        bool
		maxTempFlag           float64
		avoidCriticalFlag     bool
		shipFlag              string
		fuelQualityFlag       float64
		cargoMassFlag         float64
		fuelLoadFlag          float64
		maxNeighborsFlag      int
		dynamicMassFlag       bool
		interactiveFlag       bool
	)

	cmd := &cobra.Command{
		Use:   "route <from> <to>",
		Short: "Plan a route between two systems",
		Long: `Plan a route between two named systems using a constraint-aware
BFS, Dijkstra, or A* search over the hybrid gate/spatial-jump graph.

Examples:
  evefrontier route Sol Alpha
  evefrontier route Sol Alpha --algorithm a-star --optimize fuel --ship Scorpion --fuel-quality 95
  evefrontier route Sol Alpha --avoid-gates --max-jump 12.5 --max-temp 350`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}

			algorithm, err := parseAlgorithm(algorithmFlag)
			if err != nil {
				return err
			}
			objective, err := parseObjective(optimizeFlag)
			if err != nil {
				return err
			}

			constraints := routing.RouteConstraints{AvoidGates: avoidGatesFlag, AvoidCriticalState: avoidCriticalFlag}
			if cmd.Flags().Changed("max-jump") {
				constraints.MaxJumpLy = &maxJumpFlag
			}
			if cmd.Flags().Changed("max-temp") {
				constraints.MaxExternalTemperatureK = &maxTempFlag
			}
			if cmd.Flags().Changed("max-spatial-neighbours") {
				constraints.MaxSpatialNeighbors = &maxNeighborsFlag
			}
			if len(avoidFlag) > 0 {
				constraints.AvoidSystems = make(map[starmap.SystemID]struct{}, len(avoidFlag))
				for _, name := range avoidFlag {
					id, err := sess.Map.Resolve(name)
					if err != nil {
						return fmt.Errorf("--avoid %q: %w", name, err)
					}
					constraints.AvoidSystems[id] = struct{}{}
				}
			}
			if shipFlag != "" {
				constraints.Ship = &routing.ShipSelection{
					Name:        shipFlag,
					FuelQuality: fuelQualityFlag,
					CargoMassKg: cargoMassFlag,
					FuelLoad:    fuelLoadFlag,
					DynamicMass: dynamicMassFlag,
				}
			}

			planner := routing.NewPlanner(sess.Map, sess.Index, sess.Catalog, nil)
			req := routing.RouteRequest{
				ID:          uuid.New(),
				StartName:   args[0],
				GoalName:    args[1],
				Algorithm:   algorithm,
				Objective:   objective,
				Constraints: constraints,
			}

			plan, err := planner.PlanRoute(req)
			if err != nil {
				return err
			}

			if interactiveFlag {
				return tui.Run(plan)
			}
			printRoutePlan(plan)
			return nil
		},
	}

	cmd.Flags().StringVar(&algorithmFlag, "algorithm", "a-star", "Search algorithm: bfs|dijkstra|a-star")
	cmd.Flags().StringVar(&optimizeFlag, "optimize", "distance", "Objective: distance|hops|fuel|heat")
	cmd.Flags().Float64Var(&maxJumpFlag, "max-jump", 0, "Maximum spatial jump distance in light-years")
	cmd.Flags().StringArrayVar(&avoidFlag, "avoid", nil, "System name to avoid (repeatable)")
	cmd.Flags().BoolVar(&avoidGatesFlag, "avoid-gates", false, "Never use stargates; spatial jumps only")
	cmd.Flags().Float64Var(&maxTempFlag, "max-temp", 0, "Maximum external temperature in Kelvin")
	cmd.Flags().BoolVar(&avoidCriticalFlag, "avoid-critical-state", false, "Avoid systems in a loader-reported critical state")
	cmd.Flags().StringVar(&shipFlag, "ship", "", "Ship class name for fuel/heat annotation")
	cmd.Flags().Float64Var(&fuelQualityFlag, "fuel-quality", 100, "Fuel quality percent, 1..100")
	cmd.Flags().Float64Var(&cargoMassFlag, "cargo-mass", 0, "Cargo mass in kg")
	cmd.Flags().Float64Var(&fuelLoadFlag, "fuel-load", 0, "Starting fuel load in units (defaults to full tank)")
	cmd.Flags().IntVar(&maxNeighborsFlag, "max-spatial-neighbours", 0, "Cap on spatial-jump candidates considered per node")
	cmd.Flags().BoolVar(&dynamicMassFlag, "dynamic-mass", false, "Recompute ship mass from remaining fuel each hop")
	cmd.Flags().BoolVar(&interactiveFlag, "interactive", false, "Render the plan in an interactive TUI instead of printing it")

	return cmd
}

func parseAlgorithm(s string) (pathfinder.Algorithm, error) {
	switch strings.ToLower(s) {
	case "bfs":
		return pathfinder.BFS, nil
	case "dijkstra":
		return pathfinder.Dijkstra, nil
	case "a-star", "astar":
		return pathfinder.AStar, nil
	default:
		return 0, fmt.Errorf("unknown --algorithm %q (want bfs|dijkstra|a-star)", s)
	}
}

func parseObjective(s string) (pathfinder.Objective, error) {
	switch strings.ToLower(s) {
	case "distance":
		return pathfinder.Distance, nil
	case "hops":
		return pathfinder.Hops, nil
	case "fuel":
		return pathfinder.Fuel, nil
	case "heat":
		return pathfinder.Heat, nil
	default:
		return 0, fmt.Errorf("unknown --optimize %q (want distance|hops|fuel|heat)", s)
	}
}

func printRoutePlan(plan *routing.RoutePlan) {
	fmt.Printf("Route: %d steps, objective cost %.2f\n", len(plan.Steps), plan.ObjectiveCost)
	for i, step := range plan.Steps {
		fmt.Printf("  %2d. %-20s  dist=%s ly  fuel=%.1f  heat=%.0f  cooldown=%s",
			i, step.Name, humanize.FormatFloat("#,###.##", step.CumDistance),
			step.CumFuel, step.CumHeat, costmodel.FormatCooldown(step.CooldownSeconds))
		for _, w := range step.Warnings {
			fmt.Printf("  [%s]", w)
		}
		fmt.Println()
	}
}
