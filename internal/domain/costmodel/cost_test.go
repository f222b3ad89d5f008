package costmodel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
)

func TestJumpFuelCost(t *testing.T) {
	// Act
	fuel, err := costmodel.JumpFuelCost(200_000, 10, 100)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 20.0, fuel, 1e-9)
}

func TestJumpFuelCost_RejectsNonPositiveDistance(t *testing.T) {
	// Act
	_, err := costmodel.JumpFuelCost(100_000, 0, 100)

	// Assert
	require.Error(t, err)
}

func TestJumpFuelCost_RejectsQualityOutOfRange(t *testing.T) {
	// Act
	_, err := costmodel.JumpFuelCost(100_000, 10, 101)

	// Assert
	require.Error(t, err)
}

func TestJumpHeat(t *testing.T) {
	// Act
	heat, err := costmodel.JumpHeat(200_000, 10, 100_000, 2)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 30.0, heat, 1e-9)
}

func TestCooldownSeconds_AlreadyCool(t *testing.T) {
	// Act
	seconds := costmodel.CooldownSeconds(50, 20, 100, 0.01)

	// Assert
	assert.Equal(t, 0.0, seconds)
}

func TestCooldownSeconds_UnboundedWhenAmbientAtOrAboveTarget(t *testing.T) {
	// Act
	seconds := costmodel.CooldownSeconds(200, 100, 100, 0.01)

	// Assert
	assert.Equal(t, costmodel.UnboundedCooldown, seconds)
}

func TestCooldownSeconds_Converges(t *testing.T) {
	// Arrange: T(t) = env + (t0-env)*exp(-k*t); solve for a known t.
	env, t0, target, k := 20.0, 160.0, 100.0, 0.05

	// Act
	seconds := costmodel.CooldownSeconds(t0, env, target, k)

	// Assert: plugging seconds back in should reproduce target.
	reconstructed := env + (t0-env)*math.Exp(-k*seconds)
	assert.InDelta(t, target, reconstructed, 1e-6)
}

func TestFormatCooldown(t *testing.T) {
	assert.Equal(t, "unbounded", costmodel.FormatCooldown(costmodel.UnboundedCooldown))
	assert.Equal(t, "45s", costmodel.FormatCooldown(45))
	assert.Equal(t, "2m5s", costmodel.FormatCooldown(125))
}

func TestShipLoadout_TotalMassKg(t *testing.T) {
	// Arrange
	attrs := &costmodel.ShipAttributes{DryMassKg: 1000, FuelCapacity: 100}
	loadout := &costmodel.ShipLoadout{
		Attrs:       attrs,
		FuelLoad:    50,
		CargoMassKg: 200,
		FuelQuality: 100,
	}

	// Act
	total := loadout.TotalMassKg()

	// Assert
	expected := attrs.DryMassKg + loadout.CargoMassKg + loadout.FuelMassKg()
	assert.Equal(t, expected, total)
}

func TestShipLoadout_WithFuelDoesNotMutateOriginal(t *testing.T) {
	// Arrange
	attrs := &costmodel.ShipAttributes{DryMassKg: 1000, FuelCapacity: 100}
	loadout := &costmodel.ShipLoadout{Attrs: attrs, FuelLoad: 50, FuelQuality: 100}

	// Act
	copied := loadout.WithFuel(10)

	// Assert
	assert.Equal(t, 50.0, loadout.FuelLoad)
	assert.Equal(t, 10.0, copied.FuelLoad)
}

func TestShipAttributes_HullMassKg(t *testing.T) {
	// Arrange
	override := 5000.0
	withOverride := &costmodel.ShipAttributes{DryMassKg: 1000, HullMassKgOverride: &override}
	withoutOverride := &costmodel.ShipAttributes{DryMassKg: 1000}

	// Act / Assert
	assert.Equal(t, 5000.0, withOverride.HullMassKg())
	assert.Equal(t, 1000.0, withoutOverride.HullMassKg())
}

func TestNewShipCatalog_RejectsDuplicateNames(t *testing.T) {
	// Act
	_, err := costmodel.NewShipCatalog([]costmodel.ShipAttributes{
		{Name: "Scorpion"},
		{Name: "Scorpion"},
	})

	// Assert
	require.Error(t, err)
}

func TestShipCatalog_Get(t *testing.T) {
	// Arrange
	catalog, err := costmodel.NewShipCatalog([]costmodel.ShipAttributes{{Name: "Scorpion", DryMassKg: 1000}})
	require.NoError(t, err)

	// Act / Assert
	assert.NotNil(t, catalog.Get("Scorpion"))
	assert.Nil(t, catalog.Get("Unknown"))
}
