// Package shipcatalog loads the ship-attribute catalog from a CSV file
// (spec §6's "ship catalog ... documented schema"), producing a
// costmodel.ShipCatalog for the route planner and scout.
package shipcatalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
)

// requiredColumns is the documented header: name, dry_mass_kg,
// fuel_capacity, specific_heat, jump_heat_calibration, with an optional
// trailing hull_mass_kg override column.
var requiredColumns = []string{"name", "dry_mass_kg", "fuel_capacity", "specific_heat", "jump_heat_calibration"}

// Load reads path and builds a ShipCatalog.
func Load(path string) (*costmodel.ShipCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ship catalog %s: %w", path, err)
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (*costmodel.ShipCatalog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read ship catalog header: %w", err)
	}
	col, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var ships []costmodel.ShipAttributes
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ship catalog row: %w", err)
		}
		attrs, err := parseRow(record, col)
		if err != nil {
			return nil, err
		}
		ships = append(ships, attrs)
	}

	return costmodel.NewShipCatalog(ships)
}

func columnIndex(header []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("ship catalog missing required column %q", name)
		}
	}
	return col, nil
}

func parseRow(record []string, col map[string]int) (costmodel.ShipAttributes, error) {
	get := func(name string) (string, bool) {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}
	parseFloat := func(name string) (float64, error) {
		v, _ := get(name)
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("ship catalog column %q: invalid number %q: %w", name, v, err)
		}
		return f, nil
	}

	name, _ := get("name")
	if name == "" {
		return costmodel.ShipAttributes{}, fmt.Errorf("ship catalog row missing name")
	}
	dryMass, err := parseFloat("dry_mass_kg")
	if err != nil {
		return costmodel.ShipAttributes{}, err
	}
	fuelCap, err := parseFloat("fuel_capacity")
	if err != nil {
		return costmodel.ShipAttributes{}, err
	}
	specificHeat, err := parseFloat("specific_heat")
	if err != nil {
		return costmodel.ShipAttributes{}, err
	}
	calibration, err := parseFloat("jump_heat_calibration")
	if err != nil {
		return costmodel.ShipAttributes{}, err
	}

	attrs := costmodel.ShipAttributes{
		Name:                name,
		DryMassKg:           dryMass,
		FuelCapacity:        fuelCap,
		SpecificHeat:        specificHeat,
		JumpHeatCalibration: calibration,
	}
	if v, ok := get("hull_mass_kg"); ok && v != "" {
		hull, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return costmodel.ShipAttributes{}, fmt.Errorf("ship catalog column %q: invalid number %q: %w", "hull_mass_kg", v, err)
		}
		attrs.HullMassKgOverride = &hull
	}
	return attrs, nil
}
