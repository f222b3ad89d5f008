package routing

import (
	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/graph"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/pathfinder"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// Hop is one edge of a step sequence awaiting cost-model annotation:
// either a pathfinder result step or a scout tour leg. Kind is
// meaningless for index 0 (the origin), same as pathfinder.Step.
type Hop struct {
	System   starmap.SystemID
	Kind     graph.EdgeKind
	Distance float64
}

func hopsFromPathfinder(steps []pathfinder.Step) []Hop {
	out := make([]Hop, len(steps))
	for i, s := range steps {
		out[i] = Hop{System: s.System, Kind: s.Kind, Distance: s.Distance}
	}
	return out
}

// AnnotateHops replays an ordered hop sequence through the cost model
// with loadout as the starting ship state, per spec §4.6 step 5. It is
// shared by plan_route and scout_range_with_ship (spec §4.7: "annotates
// each hop with fuel/heat exactly as §4.6 does per-step"). Fuel and heat
// are recomputed independently of whatever numbers a search used as edge
// weights, so the figures stay exact even when DynamicMass changes the
// mass a search's own adapter held fixed.
func AnnotateHops(hops []Hop, loadout *costmodel.ShipLoadout, m *starmap.Starmap, ambient pathfinder.AmbientLookup) []RouteStep {
	steps := make([]RouteStep, len(hops))
	steps[0] = RouteStep{
		System: hops[0].System,
		Name:   m.Name(hops[0].System),
		Kind:   StepOrigin,
	}
	if loadout != nil {
		steps[0].RemainingFuel = loadout.FuelLoad
	}
	if len(hops) == 1 {
		return steps
	}

	remainingFuel := 0.0
	if loadout != nil {
		remainingFuel = loadout.FuelLoad
	}
	cumDistance, cumFuel, cumHeat := 0.0, 0.0, 0.0

	for i := 1; i < len(hops); i++ {
		hop := hops[i]
		cumDistance += hop.Distance

		var hopFuel, hopHeat float64
		if loadout != nil && hop.Kind == graph.EdgeSpatial {
			active := loadout
			if loadout.DynamicMass {
				active = loadout.WithFuel(remainingFuel)
			}
			mass := active.TotalMassKg()
			hopFuel, _ = costmodel.JumpFuelCost(mass, hop.Distance, active.FuelQuality)
			hopHeat, _ = costmodel.JumpHeat(mass, hop.Distance, active.Attrs.HullMassKg(), active.Attrs.JumpHeatCalibration)
		}
		cumFuel += hopFuel
		remainingFuel -= hopFuel

		rawCumHeat := cumHeat + hopHeat
		var warnings []Warning
		var cooldown float64

		if loadout != nil {
			ambientK, hasAmbient := ambient(hop.System)
			switch {
			case rawCumHeat >= costmodel.HeatCritical:
				if hasAmbient {
					if k, err := costmodel.CoolingConstant(loadout, ambientK); err == nil {
						cooldown = costmodel.CooldownSeconds(rawCumHeat, ambientK, costmodel.HeatNominal, k)
					}
				}
				warnings = append(warnings, WarnCoolingCritical)
				cumHeat = costmodel.HeatNominal // resets for subsequent steps, per spec §8 scenario 5
			case rawCumHeat >= costmodel.HeatOverheated:
				cumHeat = rawCumHeat
				warnings = append(warnings, WarnOverheated)
			default:
				cumHeat = rawCumHeat
			}
		}

		steps[i] = RouteStep{
			System:          hop.System,
			Name:            m.Name(hop.System),
			Kind:            stepKindOf(hop.Kind),
			Distance:        hop.Distance,
			CumDistance:     cumDistance,
			HopFuel:         hopFuel,
			CumFuel:         cumFuel,
			RemainingFuel:   remainingFuel,
			HopHeat:         hopHeat,
			CumHeat:         cumHeat,
			CooldownSeconds: cooldown,
			Warnings:        warnings,
		}
	}

	addRefuelWarnings(steps)
	return steps
}

// addRefuelWarnings sets WarnRefuel on step i when its remaining fuel
// can't cover the following hop's fuel cost (spec §4.6 step 5).
func addRefuelWarnings(steps []RouteStep) {
	for i := 0; i < len(steps)-1; i++ {
		next := steps[i+1]
		if steps[i].RemainingFuel < next.HopFuel {
			steps[i].Warnings = append(steps[i].Warnings, WarnRefuel)
		}
	}
}
