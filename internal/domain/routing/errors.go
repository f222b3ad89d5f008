package routing

import "fmt"

// RouteError is the base type for route-planner errors, mirroring the
// embedding convention starmap.LoadError and costmodel.DomainError use.
type RouteError struct {
	Message string
}

func (e *RouteError) Error() string { return e.Message }

// SystemUnknownError is returned when a start or goal name fails
// resolution against the starmap's name index.
type SystemUnknownError struct {
	*RouteError
	Name        string
	Suggestions []string
}

func NewSystemUnknownError(name string, suggestions []string) *SystemUnknownError {
	return &SystemUnknownError{
		RouteError:  &RouteError{Message: fmt.Sprintf("system %q not found", name)},
		Name:        name,
		Suggestions: suggestions,
	}
}

// InvalidConstraintError reports a RouteConstraints field outside its
// documented domain (spec §4.6 step 2).
type InvalidConstraintError struct {
	*RouteError
	Field  string
	Reason string
}

func NewInvalidConstraintError(field, reason string) *InvalidConstraintError {
	return &InvalidConstraintError{
		RouteError: &RouteError{Message: fmt.Sprintf("%s: %s", field, reason)},
		Field:      field,
		Reason:     reason,
	}
}

// ShipUnknownError is returned when RouteConstraints.Ship names a ship
// absent from the catalog supplied to the planner.
type ShipUnknownError struct {
	*RouteError
	Name string
}

func NewShipUnknownError(name string) *ShipUnknownError {
	return &ShipUnknownError{
		RouteError: &RouteError{Message: fmt.Sprintf("ship %q not found in catalog", name)},
		Name:       name,
	}
}

// NoPathError is returned when the pathfinder's frontier empties before
// reaching the goal (spec §7 RouteError.NoPath).
type NoPathError struct {
	*RouteError
	ConstrainingField string // "" when the failure is plain disconnection
}

func newNoPathError(constrainingField string) *NoPathError {
	msg := "no path: goal is disconnected from start"
	if constrainingField != "" {
		msg = fmt.Sprintf("no path: constraint %s excludes every candidate", constrainingField)
	}
	return &NoPathError{RouteError: &RouteError{Message: msg}, ConstrainingField: constrainingField}
}

// UnsupportedObjectiveError is returned when BFS is paired with a
// weighted objective.
type UnsupportedObjectiveError struct {
	*RouteError
}

func newUnsupportedObjectiveError(msg string) *UnsupportedObjectiveError {
	return &UnsupportedObjectiveError{RouteError: &RouteError{Message: msg}}
}

// CancelledError is returned when the request's cancellation signal fired
// mid-search.
type CancelledError struct {
	*RouteError
}

func newCancelledError() *CancelledError {
	return &CancelledError{RouteError: &RouteError{Message: "search cancelled"}}
}
