package pathfinder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/graph"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/pathfinder"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/spatial"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

func triangle(t *testing.T) *starmap.Starmap {
	t.Helper()
	m, err := starmap.Build(
		[]starmap.System{
			{ID: 100, Name: "Y:170N", Pos: starmap.Position{X: 0, Y: 0, Z: 0}},
			{ID: 101, Name: "AlphaTest", Pos: starmap.Position{X: 10, Y: 0, Z: 0}},
			{ID: 102, Name: "BetaTest", Pos: starmap.Position{X: 20, Y: 0, Z: 0}},
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

// TestRun_DirectGateHop is seed scenario 1.
func TestRun_DirectGateHop(t *testing.T) {
	// Arrange
	m := triangle(t)
	adapter := graph.NewGateOnly(m, graph.Constraints{})

	// Act
	result, err := pathfinder.Run(pathfinder.Request{
		Start: 100, Goal: 102,
		Algorithm: pathfinder.BFS, Objective: pathfinder.Hops,
		Adapter: adapter,
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Steps, 2)
	assert.Equal(t, starmap.SystemID(100), result.Steps[0].System)
	assert.Equal(t, starmap.SystemID(102), result.Steps[1].System)
	assert.Equal(t, 1.0, result.Cost)
}

// TestRun_MultiHopViaIntermediate is seed scenario 2: remove the direct
// 100<->102 gate and confirm the search routes through 101.
func TestRun_MultiHopViaIntermediate(t *testing.T) {
	// Arrange
	m, err := starmap.Build(
		[]starmap.System{
			{ID: 100, Name: "Y:170N"},
			{ID: 101, Name: "AlphaTest"},
			{ID: 102, Name: "BetaTest"},
		},
		[]starmap.GateJump{
			{From: 100, To: 101},
			{From: 101, To: 102},
		},
	)
	require.NoError(t, err)
	adapter := graph.NewGateOnly(m, graph.Constraints{})

	// Act
	result, err := pathfinder.Run(pathfinder.Request{
		Start: 100, Goal: 102,
		Algorithm: pathfinder.BFS, Objective: pathfinder.Hops,
		Adapter: adapter,
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Steps, 3)
	assert.Equal(t, starmap.SystemID(101), result.Steps[1].System)
	assert.Equal(t, 2.0, result.Cost)
}

// TestRun_SpatialOnlyWithRangeCap is seed scenario 3.
func TestRun_SpatialOnlyWithRangeCap(t *testing.T) {
	// Arrange
	m, err := starmap.Build(
		[]starmap.System{
			{ID: 100, Name: "Nod", Pos: starmap.Position{X: 0, Y: 0, Z: 0}},
			{ID: 101, Name: "Brana", Pos: starmap.Position{X: 18.9, Y: 0, Z: 0}},
		},
		nil,
	)
	require.NoError(t, err)
	idx := spatial.Build(m)

	// Act: admitted within a 20 ly cap.
	maxJump := 20.0
	result, err := pathfinder.Run(pathfinder.Request{
		Start: 100, Goal: 101,
		Algorithm: pathfinder.AStar, Objective: pathfinder.Distance,
		Adapter: graph.NewSpatialOnly(m, idx, graph.Constraints{
			MaxJumpLy: &maxJump, MaxSpatialNeighbors: 10,
		}),
		Map: m, MaxJumpLy: &maxJump,
	})

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 18.9, result.Cost, 1e-9)

	// Act: rejected with a 10 ly cap and no intermediate.
	tightJump := 10.0
	_, err = pathfinder.Run(pathfinder.Request{
		Start: 100, Goal: 101,
		Algorithm: pathfinder.AStar, Objective: pathfinder.Distance,
		Adapter: graph.NewSpatialOnly(m, idx, graph.Constraints{
			MaxJumpLy: &tightJump, MaxSpatialNeighbors: 10,
		}),
		Map: m, MaxJumpLy: &tightJump,
	})

	// Assert: the goal never entered the frontier because max_jump_ly cut
	// every spatial candidate, so the failure names that field specifically.
	var noPath *pathfinder.NoPathError
	require.ErrorAs(t, err, &noPath)
	assert.Equal(t, pathfinder.ConstraintCut, noPath.Reason)
	assert.Equal(t, "max_jump_ly", noPath.ConstrainingField)
}

func TestRun_StartEqualsGoal(t *testing.T) {
	// Arrange
	m := triangle(t)
	adapter := graph.NewGateOnly(m, graph.Constraints{})

	// Act
	result, err := pathfinder.Run(pathfinder.Request{
		Start: 100, Goal: 100,
		Algorithm: pathfinder.BFS, Objective: pathfinder.Hops,
		Adapter: adapter,
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, 0.0, result.Cost)
}

func TestRun_BFSRejectsNonHopsObjective(t *testing.T) {
	// Arrange
	m := triangle(t)
	adapter := graph.NewGateOnly(m, graph.Constraints{})

	// Act
	_, err := pathfinder.Run(pathfinder.Request{
		Start: 100, Goal: 102,
		Algorithm: pathfinder.BFS, Objective: pathfinder.Distance,
		Adapter: adapter,
	})

	// Assert
	var unsupported *pathfinder.UnsupportedObjectiveError
	require.ErrorAs(t, err, &unsupported)
}

func TestRun_AvoidOriginShortCircuits(t *testing.T) {
	// Arrange
	m := triangle(t)
	adapter := graph.NewGateOnly(m, graph.Constraints{})

	// Act
	_, err := pathfinder.Run(pathfinder.Request{
		Start: 100, Goal: 102,
		Algorithm: pathfinder.Dijkstra, Objective: pathfinder.Hops,
		Adapter: adapter, AvoidOrigin: true,
	})

	// Assert
	var noPath *pathfinder.NoPathError
	require.ErrorAs(t, err, &noPath)
	assert.Equal(t, pathfinder.ConstraintCut, noPath.Reason)
}

func TestRun_Disconnected(t *testing.T) {
	// Arrange: no gates and no spatial edges at all.
	m, err := starmap.Build(
		[]starmap.System{{ID: 100, Name: "A"}, {ID: 101, Name: "B"}},
		nil,
	)
	require.NoError(t, err)
	adapter := graph.NewGateOnly(m, graph.Constraints{})

	// Act
	_, err = pathfinder.Run(pathfinder.Request{
		Start: 100, Goal: 101,
		Algorithm: pathfinder.Dijkstra, Objective: pathfinder.Distance,
		Adapter: adapter,
	})

	// Assert
	var noPath *pathfinder.NoPathError
	require.ErrorAs(t, err, &noPath)
	assert.Equal(t, pathfinder.Disconnected, noPath.Reason)
}

func TestRun_Cancellation(t *testing.T) {
	// Arrange
	m := triangle(t)
	adapter := graph.NewGateOnly(m, graph.Constraints{})

	// Act
	_, err := pathfinder.Run(pathfinder.Request{
		Start: 100, Goal: 102,
		Algorithm: pathfinder.Dijkstra, Objective: pathfinder.Hops,
		Adapter:    adapter,
		ShouldStop: func() bool { return true },
	})

	// Assert
	var cancelled *pathfinder.CancelledError
	require.ErrorAs(t, err, &cancelled)
}
