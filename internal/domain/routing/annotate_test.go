package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/graph"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/pathfinder"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/routing"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// TestAnnotateHops_OverheatingRecovery is seed scenario 5: a hop that
// pushes cumulative heat above HeatCritical must carry a CoolingCritical
// warning and a Newton's-Law cooldown, then reset to HeatNominal for the
// next step's annotation.
func TestAnnotateHops_OverheatingRecovery(t *testing.T) {
	// Arrange: a ship with low thermal capacity so one big spatial jump
	// blows past HeatCritical.
	attrs := &costmodel.ShipAttributes{
		Name: "Glasscannon", DryMassKg: 100_000, FuelCapacity: 1000,
		SpecificHeat: 0.0005, JumpHeatCalibration: 0.01,
	}
	loadout := &costmodel.ShipLoadout{Attrs: attrs, FuelLoad: 1000, FuelQuality: 100}

	m, err := starmap.Build(
		[]starmap.System{{ID: 100, Name: "Origin"}, {ID: 101, Name: "HotStop"}},
		nil,
	)
	require.NoError(t, err)

	hops := []routing.Hop{
		{System: 100},
		{System: 101, Kind: graph.EdgeSpatial, Distance: 50},
	}
	ambient := pathfinder.AmbientLookup(func(starmap.SystemID) (float64, bool) { return 250, true })

	// Act
	steps := routing.AnnotateHops(hops, loadout, m, ambient)

	// Assert
	require.Len(t, steps, 2)
	hotStep := steps[1]
	assert.Contains(t, hotStep.Warnings, routing.WarnCoolingCritical)
	assert.Equal(t, costmodel.HeatNominal, hotStep.CumHeat)
	assert.Greater(t, hotStep.CooldownSeconds, 0.0)
}

func TestAnnotateHops_MonotoneCumulativeCosts(t *testing.T) {
	// Arrange
	attrs := &costmodel.ShipAttributes{
		Name: "Freighter", DryMassKg: 500_000, FuelCapacity: 500,
		SpecificHeat: 0.01, JumpHeatCalibration: 5,
	}
	loadout := &costmodel.ShipLoadout{Attrs: attrs, FuelLoad: 500, FuelQuality: 100}

	m, err := starmap.Build(
		[]starmap.System{
			{ID: 100, Name: "A"}, {ID: 101, Name: "B"}, {ID: 102, Name: "C"},
		},
		nil,
	)
	require.NoError(t, err)

	hops := []routing.Hop{
		{System: 100},
		{System: 101, Kind: graph.EdgeSpatial, Distance: 5},
		{System: 102, Kind: graph.EdgeSpatial, Distance: 7},
	}
	ambient := pathfinder.AmbientLookup(func(starmap.SystemID) (float64, bool) { return 50, true })

	// Act
	steps := routing.AnnotateHops(hops, loadout, m, ambient)

	// Assert
	require.Len(t, steps, 3)
	assert.LessOrEqual(t, steps[1].CumDistance, steps[2].CumDistance)
	assert.LessOrEqual(t, steps[1].CumFuel, steps[2].CumFuel)
}

func TestAnnotateHops_NoLoadoutSkipsShipFields(t *testing.T) {
	// Arrange
	m, err := starmap.Build([]starmap.System{{ID: 100, Name: "A"}, {ID: 101, Name: "B"}}, nil)
	require.NoError(t, err)
	hops := []routing.Hop{{System: 100}, {System: 101, Kind: graph.EdgeSpatial, Distance: 10}}

	// Act
	steps := routing.AnnotateHops(hops, nil, m, func(starmap.SystemID) (float64, bool) { return 0, false })

	// Assert
	require.Len(t, steps, 2)
	assert.Equal(t, 0.0, steps[1].HopFuel)
	assert.Equal(t, 0.0, steps[1].HopHeat)
	assert.Empty(t, steps[1].Warnings)
}
