package scout

import "fmt"

// ScoutError is the base type for scout-primitive errors, mirroring the
// embedding convention the rest of this module uses.
type ScoutError struct {
	Message string
}

func (e *ScoutError) Error() string { return e.Message }

// SystemUnknownError mirrors routing.SystemUnknownError for the scout
// surface (spec §7): a name failed resolution.
type SystemUnknownError struct {
	*ScoutError
	Name        string
	Suggestions []string
}

func NewSystemUnknownError(name string, suggestions []string) *SystemUnknownError {
	return &SystemUnknownError{
		ScoutError:  &ScoutError{Message: fmt.Sprintf("system %q not found", name)},
		Name:        name,
		Suggestions: suggestions,
	}
}

// InvalidParameterError reports a scout_range parameter outside its
// documented domain.
type InvalidParameterError struct {
	*ScoutError
	Field  string
	Reason string
}

func NewInvalidParameterError(field, reason string) *InvalidParameterError {
	return &InvalidParameterError{
		ScoutError: &ScoutError{Message: fmt.Sprintf("%s: %s", field, reason)},
		Field:      field,
		Reason:     reason,
	}
}

// IndexUnavailableError is returned when scout_range is called without a
// built spatial index.
type IndexUnavailableError struct {
	*ScoutError
}

func NewIndexUnavailableError() *IndexUnavailableError {
	return &IndexUnavailableError{ScoutError: &ScoutError{Message: "spatial index unavailable"}}
}
