package costmodel

// ShipAttributes describes a ship class: the static numbers needed to
// compute fuel and heat costs. Grounded in the teacher's Waypoint/Fuel
// value objects (internal/domain/shared/fuel.go) generalized from a
// (current, capacity) pair to a full thermal/mass profile.
type ShipAttributes struct {
	Name                 string
	DryMassKg            float64
	FuelCapacity         float64
	SpecificHeat         float64
	JumpHeatCalibration  float64
	HullMassKgOverride   *float64 // nil means "use DryMassKg as hull mass"
}

// HullMassKg returns the mass used for jump-heat calibration: the
// override when present, else the dry mass.
func (a *ShipAttributes) HullMassKg() float64 {
	if a.HullMassKgOverride != nil {
		return *a.HullMassKgOverride
	}
	return a.DryMassKg
}

// ShipCatalog is an immutable name -> ShipAttributes mapping, built once
// from a loader (see infrastructure/shipcatalog) and shared read-only
// across requests exactly like Starmap.
type ShipCatalog struct {
	ships map[string]*ShipAttributes
}

// NewShipCatalog builds a catalog from a slice of attributes. Duplicate
// names are a load error, following the same "never patch silently"
// policy as Starmap.
func NewShipCatalog(ships []ShipAttributes) (*ShipCatalog, error) {
	c := &ShipCatalog{ships: make(map[string]*ShipAttributes, len(ships))}
	for i := range ships {
		s := ships[i]
		if _, exists := c.ships[s.Name]; exists {
			return nil, NewInvalidInputError("name", 0, "duplicate ship name "+s.Name)
		}
		c.ships[s.Name] = &s
	}
	return c, nil
}

// Get returns the attributes for name, or nil if unknown.
func (c *ShipCatalog) Get(name string) *ShipAttributes {
	return c.ships[name]
}

// Names returns every ship name in the catalog.
func (c *ShipCatalog) Names() []string {
	out := make([]string, 0, len(c.ships))
	for name := range c.ships {
		out = append(out, name)
	}
	return out
}

// ShipLoadout pairs ship attributes with the mutable-per-request state
// that the route planner replays hop by hop: current fuel load, cargo
// mass, fuel quality, and whether fuel mass should be recomputed each hop
// (DynamicMass) or held constant at the request's starting value.
type ShipLoadout struct {
	Attrs       *ShipAttributes
	FuelLoad    float64 // units, <= Attrs.FuelCapacity
	CargoMassKg float64 // kg, >= 0
	FuelQuality float64 // percent, 1..100
	DynamicMass bool
}

// FuelMassKg returns the mass contribution of the current fuel load at
// the loadout's quality, using FuelMassPerUnitBase as the linear
// coefficient from spec §4.2.
func (l *ShipLoadout) FuelMassKg() float64 {
	return l.FuelLoad * FuelMassPerUnitBase * (l.FuelQuality / 100.0)
}

// TotalMassKg returns dry + cargo + fuel mass, per spec §3 ShipLoadout.
func (l *ShipLoadout) TotalMassKg() float64 {
	return l.Attrs.DryMassKg + l.CargoMassKg + l.FuelMassKg()
}

// WithFuel returns a copy of the loadout with FuelLoad replaced. Used by
// the route planner to replay hop-by-hop state without mutating the
// request's original loadout.
func (l *ShipLoadout) WithFuel(fuel float64) *ShipLoadout {
	cp := *l
	cp.FuelLoad = fuel
	return &cp
}
