package routing

import (
	"github.com/google/uuid"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/pathfinder"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// ShipSelection names a catalog ship plus the per-request overrides that
// get threaded into the ShipLoadout the planner builds, per spec §3
// ("fuel_quality, cargo_mass, fuel_load: overrides threaded into the
// loadout").
type ShipSelection struct {
	Name        string
	FuelQuality float64 // percent, 1..100; 0 means "use the default of 100"
	CargoMassKg float64
	FuelLoad    float64 // units; 0 means "use full capacity"
	DynamicMass bool
}

// RouteConstraints is the RouteRequest's recognized option set from
// spec §3.
type RouteConstraints struct {
	MaxJumpLy               *float64
	AvoidSystems            map[starmap.SystemID]struct{}
	AvoidGates              bool
	MaxExternalTemperatureK *float64
	AvoidCriticalState      bool
	Ship                    *ShipSelection
	// MaxSpatialNeighbors is nil for the spec's default of 250; an
	// explicit 0 disables spatial edges entirely.
	MaxSpatialNeighbors *int
}

// RouteRequest names an origin and destination by display name plus the
// algorithm, objective, and constraints to plan under (spec §3).
type RouteRequest struct {
	ID          uuid.UUID
	StartName   string
	GoalName    string
	Algorithm   pathfinder.Algorithm
	Objective   pathfinder.Objective
	Constraints RouteConstraints
	// ShouldStop is checked at each frontier pop (spec §5 cancellation).
	ShouldStop func() bool
}
