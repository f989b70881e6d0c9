package result

import "fmt"

// EmptyResultError is returned when a successful run produced no records.
type EmptyResultError struct{}

func (e *EmptyResultError) Error() string {
	return "search tool reported success but produced no results"
}

func (e *EmptyResultError) ContractViolation() bool { return true }

// InvalidLocationError is returned for a non-numeric or non-positive line or column.
type InvalidLocationError struct {
	Line  int
	Field string
	Value string
	Cause error
}

func (e *InvalidLocationError) Error() string {
	return fmt.Sprintf("invalid %s %q on result line %d", e.Field, e.Value, e.Line)
}

func (e *InvalidLocationError) Unwrap() error { return e.Cause }

func (e *InvalidLocationError) ContractViolation() bool { return true }
