package routing

import (
	"github.com/Scetrov/evefrontier-routecore/internal/domain/graph"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/pathfinder"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// StepKind mirrors graph.EdgeKind plus the origin step, which carries no
// edge at all.
type StepKind int

const (
	StepOrigin StepKind = iota
	StepGate
	StepSpatial
)

func stepKindOf(k graph.EdgeKind) StepKind {
	if k == graph.EdgeGate {
		return StepGate
	}
	return StepSpatial
}

// Warning annotates a RouteStep with a condition the caller should
// surface, per spec §4.6 step 5.
type Warning int

const (
	WarnRefuel Warning = iota
	WarnOverheated
	WarnCoolingCritical
)

func (w Warning) String() string {
	switch w {
	case WarnRefuel:
		return "refuel"
	case WarnOverheated:
		return "overheated"
	case WarnCoolingCritical:
		return "cooling_critical"
	default:
		return "unknown"
	}
}

// RouteStep is one hop of a RoutePlan, annotated with cumulative cost-model
// state as of arrival at System.
type RouteStep struct {
	System   starmap.SystemID
	Name     string
	Kind     StepKind
	Distance float64 // ly; 0 for gate and origin steps
	CumDistance float64

	// Ship-dependent fields; zero when the request carried no ship.
	HopFuel       float64
	CumFuel       float64
	RemainingFuel float64
	HopHeat       float64
	CumHeat       float64

	// CooldownSeconds is set only on steps carrying WarnCoolingCritical: the
	// time to return to HeatNominal from the step's heat before the reset
	// (not from CumHeat, which is already back at HeatNominal there), at
	// this step's ambient temperature; costmodel.UnboundedCooldown when
	// ambient is at or above HeatNominal. It is 0 on every other step and
	// when the step's ambient temperature is unknown.
	CooldownSeconds float64

	Warnings []Warning
}

// RoutePlan is the ordered step sequence plan_route returns, starting with
// the origin (spec §3).
type RoutePlan struct {
	Steps     []RouteStep
	Algorithm pathfinder.Algorithm
	Objective pathfinder.Objective
	// ObjectiveCost is the pathfinder's raw total for the chosen
	// objective, carried alongside the per-step annotation for callers
	// that want the search's own accounting.
	ObjectiveCost float64
}
