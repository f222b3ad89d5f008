// Package routing orchestrates plan_route (spec §4.6): name resolution,
// constraint validation, graph-adapter selection, search invocation, and
// per-step cost-model annotation.
package routing

import (
	"sort"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/graph"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/pathfinder"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/spatial"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// defaultMaxSpatialNeighbors is spec §3's documented default.
const defaultMaxSpatialNeighbors = 250

// CriticalPredicate reports whether a system is in the loader-supplied
// "critical state" set (spec §3, §9 - an opaque boolean the core never
// defines itself).
type CriticalPredicate func(starmap.SystemID) bool

// Planner holds the shared, process-lifetime state plan_route needs:
// the starmap, its spatial index, and an optional ship catalog, plus an
// optional critical-state predicate from the loader. All three are
// read-only after construction (spec §5).
type Planner struct {
	Map     *starmap.Starmap
	Index   *spatial.Index
	Catalog *costmodel.ShipCatalog
	Critical CriticalPredicate

	p99JumpLy float64
}

// NewPlanner builds a Planner and precomputes the A* calibration figures
// (spec §4.5's "99th-percentile observed jump distance") once, since they
// only depend on shared, immutable state.
func NewPlanner(m *starmap.Starmap, idx *spatial.Index, catalog *costmodel.ShipCatalog, critical CriticalPredicate) *Planner {
	return &Planner{
		Map:       m,
		Index:     idx,
		Catalog:   catalog,
		Critical:  critical,
		p99JumpLy: estimateP99JumpLy(m, idx),
	}
}

// estimateP99JumpLy samples each system's nearest spatial neighbor
// distance and returns the 99th percentile, used as the A* heuristic's
// fallback divisor when a request sets no max_jump_ly (spec §4.5).
func estimateP99JumpLy(m *starmap.Starmap, idx *spatial.Index) float64 {
	systems := m.Systems()
	if len(systems) == 0 || idx == nil {
		return 1
	}
	samples := make([]float64, 0, len(systems))
	for _, s := range systems {
		id := s.ID
		hits := idx.QueryKNN(s.Pos, 1, spatial.Filter{ExcludeID: &id})
		if len(hits) == 0 {
			continue
		}
		samples = append(samples, hits[0].Distance)
	}
	if len(samples) == 0 {
		return 1
	}
	sort.Float64s(samples)
	idxP99 := int(float64(len(samples))*0.99 + 0.5)
	if idxP99 >= len(samples) {
		idxP99 = len(samples) - 1
	}
	if samples[idxP99] <= 0 {
		return 1
	}
	return samples[idxP99]
}

// ambientLookup adapts starmap's temperature field to pathfinder's
// AmbientLookup contract.
func (p *Planner) ambientLookup(id starmap.SystemID) (float64, bool) {
	sys := p.Map.System(id)
	if sys == nil {
		return 0, false
	}
	return sys.Temperature()
}

// PlanRoute executes spec §4.6's six steps.
func (p *Planner) PlanRoute(req RouteRequest) (*RoutePlan, error) {
	startID, err := p.resolve(req.StartName)
	if err != nil {
		return nil, err
	}
	goalID, err := p.resolve(req.GoalName)
	if err != nil {
		return nil, err
	}

	if err := validateConstraints(req.Constraints, startID, goalID); err != nil {
		return nil, err
	}

	var loadout *costmodel.ShipLoadout
	if sel := req.Constraints.Ship; sel != nil {
		loadout, err = p.buildLoadout(sel)
		if err != nil {
			return nil, err
		}
	}

	avoidSet := make(map[starmap.SystemID]struct{}, len(req.Constraints.AvoidSystems))
	for id := range req.Constraints.AvoidSystems {
		avoidSet[id] = struct{}{}
	}
	if req.Constraints.AvoidCriticalState && p.Critical != nil {
		for _, s := range p.Map.Systems() {
			if p.Critical(s.ID) {
				avoidSet[s.ID] = struct{}{}
			}
		}
	}
	_, avoidOrigin := avoidSet[startID]

	maxNeighbors := defaultMaxSpatialNeighbors
	if req.Constraints.MaxSpatialNeighbors != nil {
		maxNeighbors = *req.Constraints.MaxSpatialNeighbors
	}

	gc := graph.Constraints{
		MaxJumpLy:           req.Constraints.MaxJumpLy,
		AvoidSystems:        avoidSet,
		AvoidGates:          req.Constraints.AvoidGates,
		MaxExternalTempK:    req.Constraints.MaxExternalTemperatureK,
		MaxSpatialNeighbors: maxNeighbors,
	}

	var adapter graph.Adapter
	switch {
	case req.Constraints.AvoidGates:
		adapter = graph.NewSpatialOnly(p.Map, p.Index, gc)
	case maxNeighbors == 0:
		adapter = graph.NewGateOnly(p.Map, gc)
	default:
		adapter = graph.NewHybrid(p.Map, p.Index, gc)
	}

	pfReq := pathfinder.Request{
		Start:        startID,
		Goal:         goalID,
		Algorithm:    req.Algorithm,
		Objective:    req.Objective,
		Adapter:      adapter,
		Loadout:      loadout,
		Ambient:      p.ambientLookup,
		Map:          p.Map,
		MaxJumpLy:    req.Constraints.MaxJumpLy,
		P99JumpLy:    p.p99JumpLy,
		MinPerLyCost: minPerLyCost(loadout, req.Objective),
		AvoidOrigin:  avoidOrigin,
		ShouldStop:   req.ShouldStop,
	}

	result, err := pathfinder.Run(pfReq)
	if err != nil {
		return nil, translatePathfinderError(err)
	}

	steps := AnnotateHops(hopsFromPathfinder(result.Steps), loadout, p.Map, p.ambientLookup)
	return &RoutePlan{
		Steps:         steps,
		Algorithm:     req.Algorithm,
		Objective:     req.Objective,
		ObjectiveCost: result.Cost,
	}, nil
}

func (p *Planner) resolve(name string) (starmap.SystemID, error) {
	id, err := p.Map.Resolve(name)
	if err != nil {
		if nf, ok := err.(*starmap.NotFound); ok {
			return 0, NewSystemUnknownError(nf.Name, nf.Suggestions)
		}
		return 0, err
	}
	return id, nil
}

func validateConstraints(c RouteConstraints, start, goal starmap.SystemID) error {
	if c.MaxJumpLy != nil && *c.MaxJumpLy <= 0 {
		return NewInvalidConstraintError("max_jump_ly", "must be positive")
	}
	if c.MaxSpatialNeighbors != nil && *c.MaxSpatialNeighbors < 0 {
		return NewInvalidConstraintError("max_spatial_neighbors", "must be >= 0")
	}
	if sel := c.Ship; sel != nil {
		if sel.FuelQuality != 0 && (sel.FuelQuality < 1 || sel.FuelQuality > 100) {
			return NewInvalidConstraintError("fuel_quality", "must be in [1,100]")
		}
	}
	if _, ok := c.AvoidSystems[start]; ok {
		return NewInvalidConstraintError("avoid_systems", "excludes the start system")
	}
	if _, ok := c.AvoidSystems[goal]; ok {
		return NewInvalidConstraintError("avoid_systems", "excludes the goal system")
	}
	return nil
}

func (p *Planner) buildLoadout(sel *ShipSelection) (*costmodel.ShipLoadout, error) {
	if p.Catalog == nil {
		return nil, NewShipUnknownError(sel.Name)
	}
	attrs := p.Catalog.Get(sel.Name)
	if attrs == nil {
		return nil, NewShipUnknownError(sel.Name)
	}
	quality := sel.FuelQuality
	if quality == 0 {
		quality = 100
	}
	fuel := sel.FuelLoad
	if fuel == 0 {
		fuel = attrs.FuelCapacity
	}
	if fuel > attrs.FuelCapacity {
		return nil, NewInvalidConstraintError("fuel_load", "exceeds ship fuel capacity")
	}
	return &costmodel.ShipLoadout{
		Attrs:       attrs,
		FuelLoad:    fuel,
		CargoMassKg: sel.CargoMassKg,
		FuelQuality: quality,
		DynamicMass: sel.DynamicMass,
	}, nil
}

// minPerLyCost computes the A* heuristic's admissible per-ly lower bound
// for the Fuel and Heat objectives: the cost-model formula evaluated at
// the loadout's floor mass (dry + cargo, excluding fuel mass, which is
// always >= 0), so it never exceeds the true remaining cost even when
// DynamicMass lets the actual mass shrink along the route.
func minPerLyCost(loadout *costmodel.ShipLoadout, objective pathfinder.Objective) float64 {
	if loadout == nil {
		return 0
	}
	floorMass := loadout.Attrs.DryMassKg + loadout.CargoMassKg
	switch objective {
	case pathfinder.Fuel:
		return (floorMass / 100_000.0) * (loadout.FuelQuality / 100.0)
	case pathfinder.Heat:
		hull := loadout.Attrs.HullMassKg()
		if hull <= 0 || loadout.Attrs.JumpHeatCalibration <= 0 {
			return 0
		}
		return 3.0 * floorMass / (loadout.Attrs.JumpHeatCalibration * hull)
	default:
		return 0
	}
}

func translatePathfinderError(err error) error {
	switch e := err.(type) {
	case *pathfinder.NoPathError:
		field := ""
		if e.Reason == pathfinder.ConstraintCut {
			field = e.ConstrainingField
		}
		return newNoPathError(field)
	case *pathfinder.UnsupportedObjectiveError:
		return newUnsupportedObjectiveError(e.Error())
	case *pathfinder.CancelledError:
		return newCancelledError()
	default:
		return err
	}
}
