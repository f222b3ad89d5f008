package starmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestBuild_AdjacencySymmetry(t *testing.T) {
	// Arrange
	m := triangle(t)

	// Act / Assert
	for _, a := range m.Systems() {
		for _, b := range m.Neighbors(a.ID) {
			assert.Contains(t, m.Neighbors(b), a.ID)
		}
	}
}

func TestBuild_RejectsSelfLoop(t *testing.T) {
	// Act
	_, err := starmap.Build(
		[]starmap.System{{ID: 100, Name: "Sol"}},
		[]starmap.GateJump{{From: 100, To: 100}},
	)

	// Assert
	require.Error(t, err)
	var loadErr *starmap.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, starmap.Corrupt, loadErr.Kind)
}

func TestBuild_RejectsDuplicateName(t *testing.T) {
	// Act
	_, err := starmap.Build(
		[]starmap.System{
			{ID: 100, Name: "Sol"},
			{ID: 101, Name: "sol"}, // normalized collision
		},
		nil,
	)

	// Assert
	require.Error(t, err)
	var loadErr *starmap.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, starmap.NameCollision, loadErr.Kind)
}

func TestBuild_RejectsDanglingGateJump(t *testing.T) {
	// Act
	_, err := starmap.Build(
		[]starmap.System{{ID: 100, Name: "Sol"}},
		[]starmap.GateJump{{From: 100, To: 999}},
	)

	// Assert
	require.Error(t, err)
}

func TestResolve_CaseInsensitive(t *testing.T) {
	// Arrange
	m := triangle(t)

	// Act
	id, err := m.Resolve("y:170n")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, starmap.SystemID(100), id)
}

func TestResolve_UnknownReturnsSuggestions(t *testing.T) {
	// Arrange
	m := triangle(t)

	// Act
	_, err := m.Resolve("Nox")

	// Assert
	var notFound *starmap.NotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Nox", notFound.Name)
	assert.NotEmpty(t, notFound.Suggestions)
}

func TestHasGate(t *testing.T) {
	// Arrange
	m := triangle(t)

	// Act / Assert
	assert.True(t, m.HasGate(100, 101))
	assert.False(t, m.HasGate(100, 999))
}

func TestPosition_DistanceTo(t *testing.T) {
	// Arrange
	a := starmap.Position{X: 0, Y: 0, Z: 0}
	b := starmap.Position{X: 3, Y: 4, Z: 0}

	// Act / Assert
	assert.Equal(t, 5.0, a.DistanceTo(b))
}
