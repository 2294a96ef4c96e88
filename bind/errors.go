package bind

import "fmt"

// MissingRequiredBindingError reports a required parameter or option with
// no bound value and no default.
type MissingRequiredBindingError struct {
	Name string
}

// Error implements the error interface.
func (e *MissingRequiredBindingError) Error() string {
	return fmt.Sprintf("missing required binding %q", e.Name)
}

// ConversionFailedError reports that a bound string value could not be
// converted to its destination field's type.
type ConversionFailedError struct {
	Name  string
	Cause error
}

// Error implements the error interface.
func (e *ConversionFailedError) Error() string {
	return fmt.Sprintf("failed to bind %q: %v", e.Name, e.Cause)
}

// Unwrap exposes the underlying convert error.
func (e *ConversionFailedError) Unwrap() error {
	return e.Cause
}

// CatchAllBindToScalarError reports an attempt to bind a catch-all
// parameter's space-joined value to a non-slice destination field.
type CatchAllBindToScalarError struct {
	Name string
}

// Error implements the error interface.
func (e *CatchAllBindToScalarError) Error() string {
	return fmt.Sprintf("catch-all parameter %q cannot bind to a non-slice field", e.Name)
}

// UnboundFieldError reports a destination struct field tagged for
// binding that names a parameter absent from the route entirely, a
// mismatch between the handler signature and the pattern it serves.
type UnboundFieldError struct {
	Name string
}

// Error implements the error interface.
func (e *UnboundFieldError) Error() string {
	return fmt.Sprintf("handler field %q has no corresponding route parameter", e.Name)
}
