// Package steps implements the godog step definitions for the route
// planning feature set, grounded on the teacher's shared-context,
// table-driven step style (one context struct per feature, reset
// between scenarios, `godog.Table` rows parsed by column name).
package steps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/graph"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/pathfinder"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/routing"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/spatial"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

type namedJump struct{ from, to string }

type routeWorld struct {
	systems []starmap.System
	names   map[string]starmap.SystemID
	nextID  starmap.SystemID
	jumps   []namedJump
	ships   map[string]*costmodel.ShipAttributes

	m       *starmap.Starmap
	idx     *spatial.Index
	catalog *costmodel.ShipCatalog

	plan           *routing.RoutePlan
	annotatedSteps []routing.RouteStep
	err            error
	datasetPath    string
	indexPath      string
}

func (w *routeWorld) reset() {
	w.systems = nil
	w.names = map[string]starmap.SystemID{}
	w.nextID = 100
	w.jumps = nil
	w.ships = map[string]*costmodel.ShipAttributes{}
	w.m = nil
	w.idx = nil
	w.catalog = nil
	w.plan = nil
	w.annotatedSteps = nil
	w.err = nil
}

func (w *routeWorld) systemsTable(table *godog.Table) error {
	w.systems = nil
	w.names = map[string]starmap.SystemID{}
	for _, row := range table.Rows {
		name := row.Cells[0].Value
		x, _ := strconv.ParseFloat(row.Cells[1].Value, 64)
		y, _ := strconv.ParseFloat(row.Cells[2].Value, 64)
		z, _ := strconv.ParseFloat(row.Cells[3].Value, 64)
		id := w.nextID
		w.nextID++
		w.names[name] = id
		w.systems = append(w.systems, starmap.System{ID: id, Name: name, Pos: starmap.Position{X: x, Y: y, Z: z}})
	}
	return nil
}

func (w *routeWorld) gateJumpsTable(table *godog.Table) error {
	w.jumps = nil
	for _, row := range table.Rows {
		w.jumps = append(w.jumps, namedJump{from: row.Cells[0].Value, to: row.Cells[1].Value})
	}
	return nil
}

func (w *routeWorld) noGateJumps() error {
	w.jumps = nil
	return nil
}

func (w *routeWorld) gateJumpDoesNotExist(from, to string) error {
	var kept []namedJump
	for _, j := range w.jumps {
		if j.from == from && j.to == to {
			continue
		}
		kept = append(kept, j)
	}
	w.jumps = kept
	return nil
}

func (w *routeWorld) shipWithAttributes(name string, dryMass, fuelCapacity, specificHeat, calibration float64) error {
	w.ships[name] = &costmodel.ShipAttributes{
		Name:                name,
		DryMassKg:           dryMass,
		FuelCapacity:        fuelCapacity,
		SpecificHeat:        specificHeat,
		JumpHeatCalibration: calibration,
	}
	return nil
}

func (w *routeWorld) build() error {
	jumps := make([]starmap.GateJump, 0, len(w.jumps))
	for _, j := range w.jumps {
		jumps = append(jumps, starmap.GateJump{From: w.names[j.from], To: w.names[j.to]})
	}
	m, err := starmap.Build(w.systems, jumps)
	if err != nil {
		return err
	}
	w.m = m
	w.idx = spatial.Build(m)

	var attrs []costmodel.ShipAttributes
	for _, a := range w.ships {
		attrs = append(attrs, *a)
	}
	catalog, err := costmodel.NewShipCatalog(attrs)
	if err != nil {
		return err
	}
	w.catalog = catalog
	return nil
}

func parseAlgorithm(s string) (pathfinder.Algorithm, error) {
	switch s {
	case "bfs":
		return pathfinder.BFS, nil
	case "dijkstra":
		return pathfinder.Dijkstra, nil
	case "a-star", "astar":
		return pathfinder.AStar, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q", s)
	}
}

func parseObjective(s string) (pathfinder.Objective, error) {
	switch s {
	case "distance":
		return pathfinder.Distance, nil
	case "hops":
		return pathfinder.Hops, nil
	case "fuel":
		return pathfinder.Fuel, nil
	case "heat":
		return pathfinder.Heat, nil
	default:
		return 0, fmt.Errorf("unknown objective %q", s)
	}
}

func (w *routeWorld) planRoute(from, to, algorithm, objective string) error {
	return w.planRouteWithShip(from, to, algorithm, objective, "")
}

func (w *routeWorld) planRouteWithShip(from, to, algorithm, objective, ship string) error {
	if err := w.build(); err != nil {
		return err
	}
	alg, err := parseAlgorithm(algorithm)
	if err != nil {
		return err
	}
	obj, err := parseObjective(objective)
	if err != nil {
		return err
	}

	constraints := routing.RouteConstraints{}
	if ship != "" {
		constraints.Ship = &routing.ShipSelection{Name: ship}
	}

	planner := routing.NewPlanner(w.m, w.idx, w.catalog, nil)
	plan, err := planner.PlanRoute(routing.RouteRequest{
		StartName: from, GoalName: to,
		Algorithm: alg, Objective: obj,
		Constraints: constraints,
	})
	w.plan = plan
	w.err = err
	return nil
}

func (w *routeWorld) planSpatialOnlyRoute(from, to string, maxJumpLy float64) error {
	if err := w.build(); err != nil {
		return err
	}
	planner := routing.NewPlanner(w.m, w.idx, w.catalog, nil)
	plan, err := planner.PlanRoute(routing.RouteRequest{
		StartName: from, GoalName: to,
		Algorithm: pathfinder.AStar, Objective: pathfinder.Distance,
		Constraints: routing.RouteConstraints{AvoidGates: true, MaxJumpLy: &maxJumpLy},
	})
	w.plan = plan
	w.err = err
	return nil
}

func (w *routeWorld) annotateHop(distance float64, from, to, ship string, ambientK float64) error {
	if err := w.build(); err != nil {
		return err
	}
	attrs := w.ships[ship]
	loadout := &costmodel.ShipLoadout{Attrs: attrs, FuelLoad: attrs.FuelCapacity, FuelQuality: 100}
	hops := []routing.Hop{
		{System: w.names[from]},
		{System: w.names[to], Kind: graph.EdgeSpatial, Distance: distance},
	}
	ambient := pathfinder.AmbientLookup(func(starmap.SystemID) (float64, bool) { return ambientK, true })
	w.annotatedSteps = routing.AnnotateHops(hops, loadout, w.m, ambient)
	return nil
}

func (w *routeWorld) routeShouldSucceed() error {
	if w.err != nil {
		return fmt.Errorf("expected success, got error: %w", w.err)
	}
	return nil
}

func (w *routeWorld) routeShouldSucceedWithSteps(n int) error {
	if w.err != nil {
		return fmt.Errorf("expected success, got error: %w", w.err)
	}
	if len(w.plan.Steps) != n {
		return fmt.Errorf("expected %d steps, got %d", n, len(w.plan.Steps))
	}
	return nil
}

func (w *routeWorld) objectiveCostShouldBe(cost float64) error {
	if w.plan.ObjectiveCost != cost {
		return fmt.Errorf("expected objective cost %v, got %v", cost, w.plan.ObjectiveCost)
	}
	return nil
}

func (w *routeWorld) routeShouldFailWithNoPath() error {
	if w.err == nil {
		return fmt.Errorf("expected a no-path error, got success")
	}
	var noPath *routing.NoPathError
	if !errors.As(w.err, &noPath) {
		return fmt.Errorf("expected *routing.NoPathError, got %T: %v", w.err, w.err)
	}
	return nil
}

func (w *routeWorld) routeShouldFailWithUnknownSystem(name string) error {
	if w.err == nil {
		return fmt.Errorf("expected an unknown-system error, got success")
	}
	var unknown *routing.SystemUnknownError
	if !errors.As(w.err, &unknown) {
		return fmt.Errorf("expected *routing.SystemUnknownError, got %T: %v", w.err, w.err)
	}
	if unknown.Name != name {
		return fmt.Errorf("expected unknown system %q, got %q", name, unknown.Name)
	}
	return nil
}

func (w *routeWorld) unknownSystemShouldCarrySuggestions() error {
	var unknown *routing.SystemUnknownError
	if !errors.As(w.err, &unknown) {
		return fmt.Errorf("expected *routing.SystemUnknownError, got %T: %v", w.err, w.err)
	}
	if len(unknown.Suggestions) == 0 {
		return fmt.Errorf("expected name suggestions for %q, got none", unknown.Name)
	}
	return nil
}

func (w *routeWorld) stepShouldBeGateHopWithZeroFuel(stepIdx int) error {
	step := w.plan.Steps[stepIdx]
	if step.Kind != routing.StepGate {
		return fmt.Errorf("expected step %d to be a gate hop, got %v", stepIdx, step.Kind)
	}
	if step.HopFuel != 0 {
		return fmt.Errorf("expected zero fuel cost, got %v", step.HopFuel)
	}
	return nil
}

func (w *routeWorld) annotatedStepShouldCarryCoolingCritical() error {
	step := w.annotatedSteps[len(w.annotatedSteps)-1]
	for _, warn := range step.Warnings {
		if warn == routing.WarnCoolingCritical {
			return nil
		}
	}
	return fmt.Errorf("expected a cooling-critical warning, got %v", step.Warnings)
}

func (w *routeWorld) annotatedStepCumulativeHeatShouldBeNominal() error {
	step := w.annotatedSteps[len(w.annotatedSteps)-1]
	if step.CumHeat != costmodel.HeatNominal {
		return fmt.Errorf("expected cumulative heat %v, got %v", costmodel.HeatNominal, step.CumHeat)
	}
	return nil
}

func (w *routeWorld) buildSpatialIndex() error {
	if err := w.build(); err != nil {
		return err
	}
	dir, err := os.MkdirTemp("", "routecore-bdd-*")
	if err != nil {
		return err
	}
	w.datasetPath = filepath.Join(dir, "starmap.db")
	if err := os.WriteFile(w.datasetPath, []byte("fixture"), 0o644); err != nil {
		return err
	}
	w.indexPath = w.datasetPath + ".spatial.bin"
	f, err := os.Create(w.indexPath)
	if err != nil {
		return err
	}
	defer f.Close()
	hash, err := spatial.HashDataset(w.datasetPath)
	if err != nil {
		return err
	}
	return spatial.Write(f, w.idx, &spatial.SourceMetadata{SourceSHA256: hash})
}

func (w *routeWorld) datasetMutated() error {
	return os.WriteFile(w.datasetPath, []byte("mutated"), 0o644)
}

func (w *routeWorld) verifyFreshnessShouldReportStale() error {
	report := spatial.VerifyFreshness(w.indexPath, w.datasetPath, false, "")
	if report.Result != spatial.Stale {
		return fmt.Errorf("expected Stale, got %v", report.Result)
	}
	return nil
}

// InitializeRoutePlanningScenario registers every step for the route
// planning feature, one shared routeWorld reset per scenario.
func InitializeRoutePlanningScenario(sc *godog.ScenarioContext) {
	w := &routeWorld{}
	sc.Before(func(ctx context.Context, scenario *godog.Scenario) (context.Context, error) {
		w.reset()
		return ctx, nil
	})

	sc.Step(`^a star map with systems:$`, w.systemsTable)
	sc.Step(`^the following gate jumps:$`, w.gateJumpsTable)
	sc.Step(`^no gate jumps$`, w.noGateJumps)
	sc.Step(`^the gate jump from "([^"]*)" to "([^"]*)" does not exist$`, w.gateJumpDoesNotExist)
	sc.Step(`^the ship "([^"]*)" with dry mass (\d+(?:\.\d+)?), fuel capacity (\d+(?:\.\d+)?), specific heat (\d+(?:\.\d+)?), jump heat calibration (\d+(?:\.\d+)?)$`, w.shipWithAttributes)

	sc.Step(`^I plan a route from "([^"]*)" to "([^"]*)" using "([^"]*)" optimizing "([^"]*)"$`, w.planRoute)
	sc.Step(`^I plan a route from "([^"]*)" to "([^"]*)" using "([^"]*)" optimizing "([^"]*)" with ship "([^"]*)"$`, w.planRouteWithShip)
	sc.Step(`^I plan a spatial-only route from "([^"]*)" to "([^"]*)" with max jump (\d+(?:\.\d+)?) ly$`, w.planSpatialOnlyRoute)
	sc.Step(`^I annotate a (\d+(?:\.\d+)?) ly spatial hop from "([^"]*)" to "([^"]*)" with ship "([^"]*)" at ambient (\d+(?:\.\d+)?) K$`, w.annotateHop)

	sc.Step(`^the route should succeed$`, w.routeShouldSucceed)
	sc.Step(`^the route should succeed with (\d+) steps?$`, w.routeShouldSucceedWithSteps)
	sc.Step(`^the route's objective cost should be (\d+(?:\.\d+)?)$`, w.objectiveCostShouldBe)
	sc.Step(`^the route should fail with no path$`, w.routeShouldFailWithNoPath)
	sc.Step(`^the route should fail with an unknown system named "([^"]*)"$`, w.routeShouldFailWithUnknownSystem)
	sc.Step(`^the unknown-system error should carry name suggestions$`, w.unknownSystemShouldCarrySuggestions)
	sc.Step(`^step (\d+) should be a gate hop with zero fuel cost$`, func(n int) error { return w.stepShouldBeGateHopWithZeroFuel(n) })
	sc.Step(`^the annotated step should carry a cooling-critical warning$`, w.annotatedStepShouldCarryCoolingCritical)
	sc.Step(`^the annotated step's cumulative heat should be reset to nominal$`, w.annotatedStepCumulativeHeatShouldBeNominal)

	sc.Step(`^a built spatial index over the current star map$`, w.buildSpatialIndex)
	sc.Step(`^the underlying dataset file is mutated after the index was built$`, w.datasetMutated)
	sc.Step(`^verifying the index's freshness should report it stale$`, w.verifyFreshnessShouldReportStale)
}
