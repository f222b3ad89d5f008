// Package pathfinder implements the constraint-aware BFS, Dijkstra, and A*
// searches from spec §4.5 over a graph.Adapter. All three algorithms share
// one frontier/best-cost/predecessor frame; only edge weighting and
// frontier ordering differ.
package pathfinder

import (
	"container/heap"
	"math"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/graph"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// Algorithm selects the search strategy.
type Algorithm int

const (
	BFS Algorithm = iota
	Dijkstra
	AStar
)

// Objective selects the scalar the search minimizes.
type Objective int

const (
	Hops Objective = iota
	Distance
	Fuel
	Heat
)

// heatSecondsScale converts a cooldown duration (seconds) into the
// heat-equivalent units the Heat objective is measured in, per spec
// §4.5's "documented scale". One second of forced cooldown is weighted
// the same as one Kelvin of avoidable heat.
const heatSecondsScale = 1.0

// FailureReason explains a NoPath result.
type FailureReason int

const (
	Disconnected FailureReason = iota
	ConstraintCut
)

// NoPathError is returned when the frontier empties before the goal is
// reached.
type NoPathError struct {
	Reason            FailureReason
	ConstrainingField string
}

func (e *NoPathError) Error() string {
	if e.Reason == ConstraintCut {
		return "no path: constraint " + e.ConstrainingField + " excludes every candidate"
	}
	return "no path: goal is disconnected from start"
}

// CancelledError is returned when ShouldStop reports true mid-search.
type CancelledError struct{}

func (e *CancelledError) Error() string { return "search cancelled" }

// UnsupportedObjectiveError is returned when BFS is paired with a
// weighted objective.
type UnsupportedObjectiveError struct {
	Algorithm Algorithm
	Objective Objective
}

func (e *UnsupportedObjectiveError) Error() string {
	return "BFS only supports the Hops objective"
}

// AmbientLookup resolves the cooling environment (minimum external
// temperature) for a system, for the overheating-recovery calculation.
type AmbientLookup func(id starmap.SystemID) (float64, bool)

// Request bundles everything a search needs: the adapter already encodes
// the constraint set (spec §4.4), so the pathfinder itself only needs the
// algorithm/objective selection, the optional ship state for Fuel/Heat,
// and cancellation.
type Request struct {
	Start, Goal starmap.SystemID
	Algorithm   Algorithm
	Objective   Objective
	Adapter     graph.Adapter
	Loadout     *costmodel.ShipLoadout
	Ambient     AmbientLookup
	Map         *starmap.Starmap // positions, for the A* heuristic
	MaxJumpLy   *float64         // A* heuristic divisor, when the request caps jump range
	P99JumpLy   float64          // fallback divisor when MaxJumpLy is unset
	MinPerLyCost float64         // admissible per-ly lower bound for Fuel/Heat heuristics
	AvoidOrigin bool             // true when Start is itself in the avoid set (a caller error)
	ShouldStop  func() bool
}

// Step is one hop of the resulting path, before route-planner annotation.
type Step struct {
	System   starmap.SystemID
	Kind     graph.EdgeKind
	Distance float64
	HopFuel  float64
	HopHeat  float64
	// CooldownTriggered is true when this hop's arrival forced an
	// overheating-recovery wait; CooldownSeconds carries its duration.
	CooldownTriggered bool
	CooldownSeconds   float64
}

// Result is the raw path the pathfinder produces: an ordered step list
// starting with the origin (Step.Kind is meaningless for index 0) and the
// total objective cost.
type Result struct {
	Steps []Step
	Cost  float64
}

type frontierItem struct {
	id       starmap.SystemID
	priority float64 // actualCost + heuristic; what the heap orders on
	actual   float64 // actualCost alone; what the stale-entry check compares
	hops     int
	index    int // heap.Interface bookkeeping
}

type priorityQueue []*frontierItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	if pq[i].hops != pq[j].hops {
		return pq[i].hops < pq[j].hops
	}
	return pq[i].id < pq[j].id
}
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index, pq[j].index = i, j
}
func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*frontierItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

type visitState struct {
	cost        float64
	hops        int
	cumDistance float64
	cumFuel     float64
	cumHeat     float64
	prev        starmap.SystemID
	prevEdge    graph.Edge
	hasPrev     bool
	cooldown    float64
	cooled      bool
}

// Run executes the requested algorithm and returns the shortest-objective
// path from req.Start to req.Goal.
func Run(req Request) (*Result, error) {
	if req.AvoidOrigin {
		return nil, &NoPathError{Reason: ConstraintCut, ConstrainingField: "avoid_systems"}
	}
	if req.Algorithm == BFS && req.Objective != Hops {
		return nil, &UnsupportedObjectiveError{Algorithm: req.Algorithm, Objective: req.Objective}
	}

	if req.Start == req.Goal {
		return &Result{Steps: []Step{{System: req.Start}}, Cost: 0}, nil
	}

	switch req.Algorithm {
	case BFS:
		return runBFS(req)
	case Dijkstra:
		return runDijkstra(req, nil)
	case AStar:
		return runDijkstra(req, astarHeuristic(req))
	default:
		return runDijkstra(req, nil)
	}
}

func runBFS(req Request) (*Result, error) {
	visited := map[starmap.SystemID]visitState{
		req.Start: {hops: 0},
	}
	queue := []starmap.SystemID{req.Start}

	for len(queue) > 0 {
		if req.ShouldStop != nil && req.ShouldStop() {
			return nil, &CancelledError{}
		}
		cur := queue[0]
		queue = queue[1:]

		if cur == req.Goal {
			return reconstruct(req, visited, req.Goal), nil
		}

		edges := req.Adapter.Expand(cur, req.Loadout)
		curState := visited[cur]
		for _, e := range edges {
			if _, seen := visited[e.To]; seen {
				continue
			}
			visited[e.To] = visitState{
				cost: curState.cost + 1,
				hops: curState.hops + 1,
				prev: cur, prevEdge: e, hasPrev: true,
			}
			if e.To == req.Goal {
				return reconstruct(req, visited, req.Goal), nil
			}
			queue = append(queue, e.To)
		}
	}
	return nil, &NoPathError{Reason: Disconnected}
}

func edgeWeight(req Request, cur visitState, e graph.Edge) (weight float64, newCumHeat float64, cooldownSec float64, triggered bool) {
	switch req.Objective {
	case Hops:
		return 1, 0, 0, false
	case Distance:
		return e.Distance, 0, 0, false
	case Fuel:
		return e.HopFuel, 0, 0, false
	case Heat:
		tentative := cur.cumHeat + e.HopHeat
		if tentative > costmodel.HeatCritical && req.Loadout != nil && req.Ambient != nil {
			ambient, ok := req.Ambient(e.To)
			if ok {
				k, err := costmodel.CoolingConstant(req.Loadout, ambient)
				if err == nil {
					cd := costmodel.CooldownSeconds(tentative, ambient, costmodel.HeatNominal, k)
					w := e.HopHeat + cd*heatSecondsScale
					return w, costmodel.HeatNominal, cd, true
				}
			}
		}
		return e.HopHeat, tentative, 0, false
	default:
		return e.Distance, 0, 0, false
	}
}

func runDijkstra(req Request, heuristic func(starmap.SystemID) float64) (*Result, error) {
	best := map[starmap.SystemID]visitState{
		req.Start: {cost: 0, hops: 0},
	}
	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &frontierItem{id: req.Start, priority: 0, actual: 0, hops: 0})

	constraintHit := ""

	for pq.Len() > 0 {
		if req.ShouldStop != nil && req.ShouldStop() {
			return nil, &CancelledError{}
		}
		top := heap.Pop(pq).(*frontierItem)
		cur := top.id

		curState, ok := best[cur]
		if ok && top.actual > curState.cost+1e-9 {
			continue // stale entry
		}

		if cur == req.Goal {
			return reconstruct(req, best, req.Goal), nil
		}

		edges := req.Adapter.Expand(cur, req.Loadout)
		if len(edges) == 0 {
			if reporter, ok := req.Adapter.(graph.ConstraintReporter); ok {
				if reason := reporter.EmptyExpansionReason(cur); reason != "" {
					constraintHit = reason
				}
			} else {
				constraintHit = "avoid_gates_or_max_spatial_neighbors"
			}
		}

		for _, e := range edges {
			w, newCumHeat, cooldownSec, triggered := edgeWeight(req, curState, e)
			if w < 0 || math.IsNaN(w) {
				continue
			}
			newCost := curState.cost + w
			newHops := curState.hops + 1

			existing, seen := best[e.To]
			if !seen || newCost < existing.cost-1e-9 || (math.Abs(newCost-existing.cost) < 1e-9 && newHops < existing.hops) {
				cumFuel := curState.cumFuel + e.HopFuel
				cumDistance := curState.cumDistance + e.Distance
				cumHeat := newCumHeat
				if req.Objective != Heat {
					cumHeat = curState.cumHeat + e.HopHeat
				}
				best[e.To] = visitState{
					cost: newCost, hops: newHops,
					cumDistance: cumDistance, cumFuel: cumFuel, cumHeat: cumHeat,
					prev: cur, prevEdge: e, hasPrev: true,
					cooldown: cooldownSec, cooled: triggered,
				}
				priority := newCost
				if heuristic != nil {
					priority += heuristic(e.To)
				}
				heap.Push(pq, &frontierItem{id: e.To, priority: priority, actual: newCost, hops: newHops})
			}
		}
	}

	if constraintHit != "" {
		return nil, &NoPathError{Reason: ConstraintCut, ConstrainingField: constraintHit}
	}
	return nil, &NoPathError{Reason: Disconnected}
}

