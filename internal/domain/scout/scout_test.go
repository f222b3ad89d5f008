package scout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/routing"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/scout"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/spatial"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

func lineOfFive(t *testing.T) *starmap.Starmap {
	t.Helper()
	systems := make([]starmap.System, 5)
	for i := range systems {
		systems[i] = starmap.System{
			ID:   starmap.SystemID(30_000_000 + i),
			Name: string(rune('A' + i)),
			Pos:  starmap.Position{X: float64(i) * 5, Y: 0, Z: 0},
		}
	}
	m, err := starmap.Build(systems, []starmap.GateJump{
		{From: systems[0].ID, To: systems[1].ID},
	})
	require.NoError(t, err)
	return m
}

func TestGates_SortedByName(t *testing.T) {
	// Arrange
	m := lineOfFive(t)
	s := scout.New(m, spatial.Build(m), nil)

	// Act
	result, err := s.Gates("A")

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Neighbors, 1)
	assert.Equal(t, "B", result.Neighbors[0].Name)
}

func TestGates_UnknownSystem(t *testing.T) {
	// Arrange
	m := lineOfFive(t)
	s := scout.New(m, spatial.Build(m), nil)

	// Act
	_, err := s.Gates("Nowhere")

	// Assert
	var unknown *scout.SystemUnknownError
	require.ErrorAs(t, err, &unknown)
}

func TestRange_OrderedByDistance(t *testing.T) {
	// Arrange
	m := lineOfFive(t)
	idx := spatial.Build(m)
	s := scout.New(m, idx, nil)

	// Act
	result, err := s.Range("A", scout.RangeParams{Limit: 4})

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Hits, 4)
	for i := 1; i < len(result.Hits); i++ {
		assert.LessOrEqual(t, result.Hits[i-1].DistanceLy, result.Hits[i].DistanceLy)
	}
}

func TestRange_RejectsLimitOutOfBounds(t *testing.T) {
	// Arrange
	m := lineOfFive(t)
	s := scout.New(m, spatial.Build(m), nil)

	// Act
	_, err := s.Range("A", scout.RangeParams{Limit: 0})

	// Assert
	require.Error(t, err)
}

func TestRange_NoIndexUnavailable(t *testing.T) {
	// Arrange
	m := lineOfFive(t)
	s := scout.New(m, nil, nil)

	// Act
	_, err := s.Range("A", scout.RangeParams{Limit: 5})

	// Assert
	var unavailable *scout.IndexUnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestRangeWithShip_ReturnsGreedyTourAnnotated(t *testing.T) {
	// Arrange
	m := lineOfFive(t)
	idx := spatial.Build(m)
	catalog, err := costmodel.NewShipCatalog([]costmodel.ShipAttributes{
		{Name: "Scorpion", DryMassKg: 100_000, FuelCapacity: 500, SpecificHeat: 0.01, JumpHeatCalibration: 5},
	})
	require.NoError(t, err)
	s := scout.New(m, idx, catalog)

	// Act
	plan, err := s.RangeWithShip("A", scout.RangeParams{Limit: 3}, &routing.ShipSelection{Name: "Scorpion"})

	// Assert
	require.NoError(t, err)
	require.Len(t, plan.Steps, 4) // origin + 3 hits
	for i := 1; i < len(plan.Steps); i++ {
		assert.LessOrEqual(t, plan.Steps[i-1].CumDistance, plan.Steps[i].CumDistance)
	}
}
