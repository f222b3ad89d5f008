package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/pathfinder"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/routing"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/spatial"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

func triangle(t *testing.T) *starmap.Starmap {
	t.Helper()
	m, err := starmap.Build(
		[]starmap.System{
			{ID: 100, Name: "Y:170N"},
			{ID: 101, Name: "AlphaTest"},
			{ID: 102, Name: "BetaTest"},
		},
		[]starmap.GateJump{
			{From: 100, To: 101},
			{From: 100, To: 102},
			{From: 101, To: 102},
		},
	)
	require.NoError(t, err)
	return m
}

func TestPlanRoute_DirectGateHop(t *testing.T) {
	// Arrange
	m := triangle(t)
	idx := spatial.Build(m)
	planner := routing.NewPlanner(m, idx, nil, nil)

	// Act
	plan, err := planner.PlanRoute(routing.RouteRequest{
		StartName: "Y:170N", GoalName: "BetaTest",
		Algorithm: pathfinder.BFS, Objective: pathfinder.Hops,
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "Y:170N", plan.Steps[0].Name)
	assert.Equal(t, "BetaTest", plan.Steps[1].Name)
}

func TestPlanRoute_UnknownSystemCarriesSuggestions(t *testing.T) {
	// Arrange
	m := triangle(t)
	idx := spatial.Build(m)
	planner := routing.NewPlanner(m, idx, nil, nil)

	// Act
	_, err := planner.PlanRoute(routing.RouteRequest{
		StartName: "Nox", GoalName: "BetaTest",
		Algorithm: pathfinder.BFS, Objective: pathfinder.Hops,
	})

	// Assert
	var unknown *routing.SystemUnknownError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Nox", unknown.Name)
	assert.NotEmpty(t, unknown.Suggestions)
}

func TestPlanRoute_RejectsAvoidingStartOrGoal(t *testing.T) {
	// Arrange
	m := triangle(t)
	idx := spatial.Build(m)
	planner := routing.NewPlanner(m, idx, nil, nil)

	// Act
	_, err := planner.PlanRoute(routing.RouteRequest{
		StartName: "Y:170N", GoalName: "BetaTest",
		Algorithm: pathfinder.BFS, Objective: pathfinder.Hops,
		Constraints: routing.RouteConstraints{
			AvoidSystems: map[starmap.SystemID]struct{}{100: {}},
		},
	})

	// Assert
	var invalid *routing.InvalidConstraintError
	require.ErrorAs(t, err, &invalid)
}

func TestPlanRoute_UnknownShipInConstraints(t *testing.T) {
	// Arrange
	m := triangle(t)
	idx := spatial.Build(m)
	catalog, err := costmodel.NewShipCatalog(nil)
	require.NoError(t, err)
	planner := routing.NewPlanner(m, idx, catalog, nil)

	// Act
	_, err = planner.PlanRoute(routing.RouteRequest{
		StartName: "Y:170N", GoalName: "BetaTest",
		Algorithm: pathfinder.Dijkstra, Objective: pathfinder.Fuel,
		Constraints: routing.RouteConstraints{
			Ship: &routing.ShipSelection{Name: "Scorpion"},
		},
	})

	// Assert
	var shipErr *routing.ShipUnknownError
	require.ErrorAs(t, err, &shipErr)
}

// TestPlanRoute_FuelObjectivePrefersGates is seed scenario 4: a gate and a
// 30 ly spatial edge both connect A and C; Fuel objective must pick the
// zero-cost gate.
func TestPlanRoute_FuelObjectivePrefersGates(t *testing.T) {
	// Arrange
	m, err := starmap.Build(
		[]starmap.System{
			{ID: 100, Name: "A", Pos: starmap.Position{X: 0, Y: 0, Z: 0}},
			{ID: 101, Name: "C", Pos: starmap.Position{X: 30, Y: 0, Z: 0}},
		},
		[]starmap.GateJump{{From: 100, To: 101}},
	)
	require.NoError(t, err)
	idx := spatial.Build(m)
	catalog, err := costmodel.NewShipCatalog([]costmodel.ShipAttributes{
		{Name: "Scorpion", DryMassKg: 1_000_000, FuelCapacity: 100, SpecificHeat: 1, JumpHeatCalibration: 1},
	})
	require.NoError(t, err)
	planner := routing.NewPlanner(m, idx, catalog, nil)

	// Act
	plan, err := planner.PlanRoute(routing.RouteRequest{
		StartName: "A", GoalName: "C",
		Algorithm: pathfinder.Dijkstra, Objective: pathfinder.Fuel,
		Constraints: routing.RouteConstraints{
			Ship: &routing.ShipSelection{Name: "Scorpion"},
		},
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, routing.StepGate, plan.Steps[1].Kind)
	assert.Equal(t, 0.0, plan.Steps[1].HopFuel)
}

func TestPlanRoute_StartEqualsGoalZeroCostNoWarnings(t *testing.T) {
	// Arrange
	m := triangle(t)
	idx := spatial.Build(m)
	planner := routing.NewPlanner(m, idx, nil, nil)

	// Act
	plan, err := planner.PlanRoute(routing.RouteRequest{
		StartName: "Y:170N", GoalName: "Y:170N",
		Algorithm: pathfinder.BFS, Objective: pathfinder.Hops,
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Empty(t, plan.Steps[0].Warnings)
	assert.Equal(t, 0.0, plan.ObjectiveCost)
}

func TestPlanRoute_Determinism(t *testing.T) {
	// Arrange
	m := triangle(t)
	idx := spatial.Build(m)
	planner := routing.NewPlanner(m, idx, nil, nil)
	req := routing.RouteRequest{
		StartName: "Y:170N", GoalName: "BetaTest",
		Algorithm: pathfinder.Dijkstra, Objective: pathfinder.Hops,
	}

	// Act
	first, err := planner.PlanRoute(req)
	require.NoError(t, err)
	second, err := planner.PlanRoute(req)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, first, second)
}
