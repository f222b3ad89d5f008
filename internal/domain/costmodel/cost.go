package costmodel

import (
	"math"
	"strconv"
)

// JumpFuelCost computes the fuel consumed by a single spatial jump, per
// spec §4.2: (mass / 100_000) * (quality / 100) * distance. Distance must
// be positive and quality must fall in [1, 100]; both are caller
// preconditions enforced at the route-planner boundary, but this function
// re-checks them since it is the last line of defense against a NaN or
// negative fuel figure silently entering a RoutePlan.
func JumpFuelCost(totalMassKg, distanceLy, qualityPct float64) (float64, error) {
	if distanceLy <= 0 {
		return 0, NewInvalidInputError("distance_ly", distanceLy, "must be positive")
	}
	if qualityPct < 1 || qualityPct > 100 {
		return 0, NewInvalidInputError("quality_pct", qualityPct, "must be in [1,100]")
	}
	return (totalMassKg / 100_000.0) * (qualityPct / 100.0) * distanceLy, nil
}

// JumpHeat computes the heat (Kelvin) added by a single spatial jump, per
// spec §4.2: 3 * mass * distance / (calibration * hull_mass).
func JumpHeat(totalMassKg, distanceLy, hullMassKg, calibration float64) (float64, error) {
	if hullMassKg <= 0 {
		return 0, NewInvalidInputError("hull_mass_kg", hullMassKg, "must be positive")
	}
	if calibration <= 0 {
		return 0, NewInvalidInputError("calibration", calibration, "must be positive")
	}
	return 3.0 * totalMassKg * distanceLy / (calibration * hullMassKg), nil
}

// zoneFactor maps an ambient temperature to a cooling-rate multiplier:
// monotone-decreasing in ambient temperature per spec §9 ("hotter
// environment -> slower cooling"). The exact empirical table from the
// original game is an open question the spec explicitly declines to
// resolve; this is a documented, monotone stand-in calibrated so that
// nominal ambient (HeatNominal) yields a factor of 1.
func zoneFactor(ambientK float64) float64 {
	factor := 1.0 - (ambientK-HeatNominal)/500.0
	if factor < 0.05 {
		return 0.05
	}
	return factor
}

// CoolingConstant computes k for Newton's Law of Cooling, per spec §4.2:
// BASE_COOLING_POWER * zone_factor(ambient) / (total_mass * specific_heat).
func CoolingConstant(loadout *ShipLoadout, ambientK float64) (float64, error) {
	mass := loadout.TotalMassKg()
	if mass <= 0 {
		return 0, NewInvalidInputError("total_mass_kg", mass, "must be positive")
	}
	if loadout.Attrs.SpecificHeat <= 0 {
		return 0, NewInvalidInputError("specific_heat", loadout.Attrs.SpecificHeat, "must be positive")
	}
	return BaseCoolingPower * zoneFactor(ambientK) / (mass * loadout.Attrs.SpecificHeat), nil
}

// UnboundedCooldown is the sentinel returned by CooldownSeconds when the
// ambient temperature is at or above the target: Newton's Law never
// converges, so there is no finite cooldown time.
const UnboundedCooldown = math.MaxFloat64

// CooldownSeconds solves Newton's Law of Cooling,
// T(t) = T_env + (T0 - T_env) * exp(-k*t), for t such that T(t) = target.
// Returns 0 when T0 <= target (already cool enough), and UnboundedCooldown
// when ambient >= target (no convergence is possible).
func CooldownSeconds(t0, ambientK, target, k float64) float64 {
	if t0 <= target {
		return 0
	}
	if ambientK >= target {
		return UnboundedCooldown
	}
	if k <= 0 {
		return UnboundedCooldown
	}
	// t = -ln((target - env) / (T0 - env)) / k
	ratio := (target - ambientK) / (t0 - ambientK)
	return -math.Log(ratio) / k
}

// FormatCooldown renders a cooldown duration as the caller-facing "XmYs"
// string spec §4.2 documents, or "unbounded" for the sentinel.
func FormatCooldown(seconds float64) string {
	if seconds >= UnboundedCooldown {
		return "unbounded"
	}
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds + 0.5)
	m := total / 60
	s := total % 60
	if m == 0 {
		return formatSeconds(s)
	}
	return formatMinutesSeconds(m, s)
}

func formatSeconds(s int64) string {
	return strconv.FormatInt(s, 10) + "s"
}

func formatMinutesSeconds(m, s int64) string {
	return strconv.FormatInt(m, 10) + "m" + strconv.FormatInt(s, 10) + "s"
}
