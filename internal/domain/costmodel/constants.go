// Package costmodel implements the pure, side-effect-free fuel, heat, and
// cooldown functions from spec §4.2, plus the ship/fuel catalogs they
// operate over. Nothing in this package performs I/O.
package costmodel

// Heat zone thresholds, in Kelvin.
const (
	HeatNominal    = 30.0
	HeatOverheated = 90.0
	HeatCritical   = 150.0
)

// BaseCoolingPower is the tuned constant feeding cooling_constant; see
// CoolingConstant below. Calibrated empirically against the original
// game's cooldown curves (see Open Questions in spec §9 - zone_factor is
// documented here as monotone-decreasing but not reproduced table-exact).
const BaseCoolingPower = 50.0

// FuelMassPerUnitBase is the dataset-dependent linear coefficient from
// spec §4.2 ("Fuel mass per unit: a linear function of fuel quality").
// Held as a named constant rather than hardcoded inline so a future
// dataset can override it without touching the formula.
const FuelMassPerUnitBase = 1.0
