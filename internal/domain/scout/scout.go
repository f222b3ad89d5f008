// Package scout implements the gate-neighbor and spatial-range lookups
// from spec §4.7. Both bypass the pathfinder; they share the map and
// spatial index with the route planner and, for the ship-aware range
// variant, its cost-model annotation.
package scout

import (
	"sort"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/graph"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/pathfinder"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/routing"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/spatial"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// GateNeighbor is one entry of a ScoutGatesResult.
type GateNeighbor struct {
	Name string
	ID   starmap.SystemID
}

// GatesResult is scout_gates' return shape.
type GatesResult struct {
	System    starmap.SystemID
	Name      string
	Neighbors []GateNeighbor
}

// Scout holds the shared state scout_gates and scout_range need: the
// starmap, its spatial index, and an optional ship catalog for the
// ship-aware range variant.
type Scout struct {
	Map     *starmap.Starmap
	Index   *spatial.Index
	Catalog *costmodel.ShipCatalog
}

// New builds a Scout over the shared, already-loaded state.
func New(m *starmap.Starmap, idx *spatial.Index, catalog *costmodel.ShipCatalog) *Scout {
	return &Scout{Map: m, Index: idx, Catalog: catalog}
}

func (s *Scout) resolve(name string) (starmap.SystemID, error) {
	id, err := s.Map.Resolve(name)
	if err != nil {
		if nf, ok := err.(*starmap.NotFound); ok {
			return 0, NewSystemUnknownError(nf.Name, nf.Suggestions)
		}
		return 0, err
	}
	return id, nil
}

func (s *Scout) ambientLookup(id starmap.SystemID) (float64, bool) {
	sys := s.Map.System(id)
	if sys == nil {
		return 0, false
	}
	return sys.Temperature()
}

// Gates resolves originName and returns its gate neighbors sorted by
// name ascending, per spec §4.7.
func (s *Scout) Gates(originName string) (*GatesResult, error) {
	id, err := s.resolve(originName)
	if err != nil {
		return nil, err
	}
	neighborIDs := s.Map.Neighbors(id)
	neighbors := make([]GateNeighbor, len(neighborIDs))
	for i, n := range neighborIDs {
		neighbors[i] = GateNeighbor{Name: s.Map.Name(n), ID: n}
	}
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].Name < neighbors[j].Name })
	return &GatesResult{System: id, Name: s.Map.Name(id), Neighbors: neighbors}, nil
}

// RangeParams is scout_range's optional parameter set (spec §4.7).
type RangeParams struct {
	Limit          int // 1..100
	Radius         *float64
	MaxTemperature *float64
}

// RangeHit is one entry of a RangeResult: a candidate system and its
// distance from the origin.
type RangeHit struct {
	Name       string
	ID         starmap.SystemID
	DistanceLy float64
	MinTempK   *float64
}

// RangeResult is scout_range's return shape: ascending by distance.
type RangeResult struct {
	Origin starmap.SystemID
	Hits   []RangeHit
}

func validateRangeParams(p RangeParams) error {
	if p.Limit < 1 || p.Limit > 100 {
		return NewInvalidParameterError("limit", "must be in [1,100]")
	}
	if p.Radius != nil && *p.Radius <= 0 {
		return NewInvalidParameterError("radius", "must be positive")
	}
	return nil
}

// Range resolves originName and returns up to params.Limit nearest
// systems, ordered by ascending distance, per spec §4.7.
func (s *Scout) Range(originName string, params RangeParams) (*RangeResult, error) {
	id, err := s.resolve(originName)
	if err != nil {
		return nil, err
	}
	if err := validateRangeParams(params); err != nil {
		return nil, err
	}
	if s.Index == nil {
		return nil, NewIndexUnavailableError()
	}

	origin := s.Map.System(id)
	filter := spatial.Filter{ExcludeID: &id}
	if params.Radius != nil {
		r := *params.Radius
		filter.Radius = &r
	}
	if params.MaxTemperature != nil {
		t := *params.MaxTemperature
		filter.MaxTempK = &t
	}

	candidates := s.Index.QueryKNN(origin.Pos, params.Limit, filter)
	hits := make([]RangeHit, len(candidates))
	for i, c := range candidates {
		hit := RangeHit{Name: s.Map.Name(c.ID), ID: c.ID, DistanceLy: c.Distance}
		if sys := s.Map.System(c.ID); sys != nil {
			if t, ok := sys.Temperature(); ok {
				hit.MinTempK = &t
			}
		}
		hits[i] = hit
	}
	return &RangeResult{Origin: id, Hits: hits}, nil
}

// RangeWithShip re-runs Range and reorders the candidate set into a
// greedy nearest-neighbor tour starting at the origin (spec §4.7, §9:
// "documented heuristic, not a TSP solver", O(n^2), acceptable for the
// n<=100 the Limit validation already enforces), then annotates each hop
// with fuel/heat exactly as the route planner annotates a RoutePlan.
func (s *Scout) RangeWithShip(originName string, params RangeParams, ship *routing.ShipSelection) (*routing.RoutePlan, error) {
	result, err := s.Range(originName, params)
	if err != nil {
		return nil, err
	}

	var loadout *costmodel.ShipLoadout
	if ship != nil {
		if s.Catalog == nil {
			return nil, NewInvalidParameterError("ship", "catalog unavailable")
		}
		attrs := s.Catalog.Get(ship.Name)
		if attrs == nil {
			return nil, NewInvalidParameterError("ship", "unknown ship "+ship.Name)
		}
		quality := ship.FuelQuality
		if quality == 0 {
			quality = 100
		}
		fuel := ship.FuelLoad
		if fuel == 0 {
			fuel = attrs.FuelCapacity
		}
		loadout = &costmodel.ShipLoadout{
			Attrs:       attrs,
			FuelLoad:    fuel,
			CargoMassKg: ship.CargoMassKg,
			FuelQuality: quality,
			DynamicMass: ship.DynamicMass,
		}
	}

	posOf := func(id starmap.SystemID) starmap.Position { return s.Map.System(id).Pos }
	tour := greedyTour(posOf(result.Origin), result.Hits, posOf)
	hops := make([]routing.Hop, 0, len(tour)+1)
	hops = append(hops, routing.Hop{System: result.Origin})
	for _, h := range tour {
		hops = append(hops, routing.Hop{System: h.ID, Kind: graph.EdgeSpatial, Distance: h.DistanceLy})
	}

	steps := routing.AnnotateHops(hops, loadout, s.Map, pathfinder.AmbientLookup(s.ambientLookup))
	return &routing.RoutePlan{Steps: steps, Objective: pathfinder.Distance}, nil
}

// greedyTour orders hits into a nearest-neighbor walk starting from
// origin: at each step, picks the nearest remaining candidate to the
// previously visited position, recomputing hop-to-previous distance
// (spec §4.7: "the first step's distance is from the origin; subsequent
// step distances are hop-to-previous").
func greedyTour(origin starmap.Position, hits []RangeHit, posOf func(starmap.SystemID) starmap.Position) []RangeHit {
	remaining := make([]RangeHit, len(hits))
	copy(remaining, hits)

	out := make([]RangeHit, 0, len(hits))
	cur := origin
	for len(remaining) > 0 {
		bestIdx := 0
		bestDist := -1.0
		for i, r := range remaining {
			d := cur.DistanceTo(posOf(r.ID))
			if bestDist < 0 || d < bestDist || (d == bestDist && r.ID < remaining[bestIdx].ID) {
				bestDist = d
				bestIdx = i
			}
		}
		next := remaining[bestIdx]
		next.DistanceLy = bestDist
		out = append(out, next)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		cur = posOf(next.ID)
	}
	return out
}
