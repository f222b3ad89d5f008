// Package graph provides the pathfinder's view of the star map: gate-only,
// spatial-only, and hybrid adapters that yield edges lazily per
// expansion, never materializing a global spatial graph (spec §4.4, §9).
package graph

import (
	"sort"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/spatial"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// EdgeKind distinguishes a gate hop from a spatial jump.
type EdgeKind int

const (
	EdgeGate EdgeKind = iota
	EdgeSpatial
)

// Edge is a single traversal option discovered during expansion. Fuel and
// heat deltas are populated only when a ship loadout was supplied to the
// adapter, since they depend on the loadout's current state.
type Edge struct {
	To       starmap.SystemID
	Kind     EdgeKind
	Distance float64 // ly; 0 for gate edges
	HopFuel  float64 // 0 for gate edges or when no ship supplied
	HopHeat  float64 // 0 for gate edges or when no ship supplied
}

// Constraints narrows which edges an adapter is willing to yield. It is
// the graph-layer projection of routing.RouteConstraints: the adapter
// only needs the fields that affect edge admission.
type Constraints struct {
	MaxJumpLy          *float64
	AvoidSystems       map[starmap.SystemID]struct{}
	AvoidGates         bool
	MaxExternalTempK   *float64
	MaxSpatialNeighbors int
}

// Adapter is the pathfinder's sole dependency on the graph layer:
// expand(node) -> edges, evaluated fresh at every call.
type Adapter interface {
	Expand(node starmap.SystemID, loadout *costmodel.ShipLoadout) []Edge
}

// ConstraintReporter is implemented by adapters that can explain why an
// expansion yielded zero edges at a given node, so the pathfinder's
// NoPathError can name the responsible constraint field instead of a
// generic default (spec §4.5). EmptyExpansionReason returns "" when the
// node has no candidates at all regardless of constraints - a plain
// disconnection, not a constraint cut.
type ConstraintReporter interface {
	EmptyExpansionReason(node starmap.SystemID) string
}

func isAvoided(c Constraints, id starmap.SystemID) bool {
	if c.AvoidSystems == nil {
		return false
	}
	_, avoided := c.AvoidSystems[id]
	return avoided
}

// gateAdapter yields gate-adjacency edges only.
type gateAdapter struct {
	m *starmap.Starmap
	c Constraints
}

// NewGateOnly builds an adapter that only traverses stargates.
func NewGateOnly(m *starmap.Starmap, c Constraints) Adapter {
	return &gateAdapter{m: m, c: c}
}

func (a *gateAdapter) Expand(node starmap.SystemID, _ *costmodel.ShipLoadout) []Edge {
	neighbors := a.m.Neighbors(node)
	out := make([]Edge, 0, len(neighbors))
	for _, n := range neighbors {
		if isAvoided(a.c, n) {
			continue
		}
		out = append(out, Edge{To: n, Kind: EdgeGate})
	}
	return out
}

// EmptyExpansionReason reports "avoid_systems" when node has gate
// neighbors that avoid_systems filtered out entirely, or "" when node is
// simply not gate-connected to anything.
func (a *gateAdapter) EmptyExpansionReason(node starmap.SystemID) string {
	if len(a.m.Neighbors(node)) == 0 {
		return ""
	}
	return "avoid_systems"
}

// spatialAdapter yields KD-tree neighbor edges only.
type spatialAdapter struct {
	m   *starmap.Starmap
	idx *spatial.Index
	c   Constraints
}

// NewSpatialOnly builds an adapter that only traverses free-space jumps.
func NewSpatialOnly(m *starmap.Starmap, idx *spatial.Index, c Constraints) Adapter {
	return &spatialAdapter{m: m, idx: idx, c: c}
}

func (a *spatialAdapter) Expand(node starmap.SystemID, loadout *costmodel.ShipLoadout) []Edge {
	return spatialExpand(a.m, a.idx, node, loadout, a.c)
}

// EmptyExpansionReason reports which constraint emptied node's spatial
// candidate set, by re-querying with each filter applied on its own.
func (a *spatialAdapter) EmptyExpansionReason(node starmap.SystemID) string {
	return spatialEmptyReason(a.m, a.idx, node, a.c)
}

func spatialExpand(m *starmap.Starmap, idx *spatial.Index, node starmap.SystemID, loadout *costmodel.ShipLoadout, c Constraints) []Edge {
	limit := c.MaxSpatialNeighbors
	if limit <= 0 {
		return nil
	}
	sys := m.System(node)
	if sys == nil {
		return nil
	}

	filter := spatial.Filter{ExcludeID: &node}
	if c.MaxJumpLy != nil {
		r := *c.MaxJumpLy
		filter.Radius = &r
	}
	if c.MaxExternalTempK != nil {
		t := *c.MaxExternalTempK
		filter.MaxTempK = &t
	}

	hits := idx.QueryKNN(sys.Pos, limit, filter)
	out := make([]Edge, 0, len(hits))
	for _, h := range hits {
		if isAvoided(c, h.ID) {
			continue
		}
		e := Edge{To: h.ID, Kind: EdgeSpatial, Distance: h.Distance}
		if loadout != nil {
			mass := loadout.TotalMassKg()
			if fuel, err := costmodel.JumpFuelCost(mass, h.Distance, loadout.FuelQuality); err == nil {
				e.HopFuel = fuel
			}
			if heat, err := costmodel.JumpHeat(mass, h.Distance, loadout.Attrs.HullMassKg(), loadout.Attrs.JumpHeatCalibration); err == nil {
				e.HopHeat = heat
			}
		}
		out = append(out, e)
	}
	return out
}

// spatialEmptyReason diagnoses why node's spatial candidate set came up
// empty after filtering, by re-running the KNN query with only one filter
// applied at a time: first max_jump_ly alone, then max_external_temperature_k
// alone. It names the first filter that by itself leaves no candidates, and
// "avoid_systems" when neither does. Returns "" when even the fully
// unfiltered query (besides the neighbor cap) finds nothing, since that is a
// plain absence of spatial candidates, not a constraint cut.
func spatialEmptyReason(m *starmap.Starmap, idx *spatial.Index, node starmap.SystemID, c Constraints) string {
	if c.MaxSpatialNeighbors <= 0 {
		return "max_spatial_neighbors"
	}
	sys := m.System(node)
	if sys == nil {
		return ""
	}

	unfiltered := idx.QueryKNN(sys.Pos, c.MaxSpatialNeighbors, spatial.Filter{ExcludeID: &node})
	if len(unfiltered) == 0 {
		return ""
	}

	if c.MaxJumpLy != nil {
		r := *c.MaxJumpLy
		if hits := idx.QueryKNN(sys.Pos, c.MaxSpatialNeighbors, spatial.Filter{ExcludeID: &node, Radius: &r}); len(hits) == 0 {
			return "max_jump_ly"
		}
	}
	if c.MaxExternalTempK != nil {
		maxTemp := *c.MaxExternalTempK
		if hits := idx.QueryKNN(sys.Pos, c.MaxSpatialNeighbors, spatial.Filter{ExcludeID: &node, MaxTempK: &maxTemp}); len(hits) == 0 {
			return "max_external_temperature_k"
		}
	}
	return "avoid_systems"
}

// hybridAdapter concatenates gate expansion with spatial expansion,
// de-duplicating gate neighbors from the spatial set.
type hybridAdapter struct {
	m   *starmap.Starmap
	idx *spatial.Index
	c   Constraints
}

// NewHybrid builds an adapter that tries stargates first, then free-space
// jumps to any KD-tree neighbor not already reached by gate.
func NewHybrid(m *starmap.Starmap, idx *spatial.Index, c Constraints) Adapter {
	return &hybridAdapter{m: m, idx: idx, c: c}
}

func (a *hybridAdapter) Expand(node starmap.SystemID, loadout *costmodel.ShipLoadout) []Edge {
	gateEdges := (&gateAdapter{m: a.m, c: a.c}).Expand(node, loadout)

	seen := make(map[starmap.SystemID]struct{}, len(gateEdges))
	out := make([]Edge, 0, len(gateEdges))
	for _, e := range gateEdges {
		seen[e.To] = struct{}{}
		out = append(out, e)
	}

	spatialEdges := spatialExpand(a.m, a.idx, node, loadout, a.c)
	for _, e := range spatialEdges {
		if _, dup := seen[e.To]; dup {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind == EdgeGate
		}
		return false
	})
	return out
}

// EmptyExpansionReason reports the gate-side reason when node has
// avoided gate neighbors, else falls through to the spatial-side
// diagnosis, else "" when node has neither gates nor spatial candidates.
func (a *hybridAdapter) EmptyExpansionReason(node starmap.SystemID) string {
	if reason := (&gateAdapter{m: a.m, c: a.c}).EmptyExpansionReason(node); reason != "" {
		return reason
	}
	return spatialEmptyReason(a.m, a.idx, node, a.c)
}
