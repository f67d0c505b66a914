package look

import "fmt"

// ValidationError reports a record that fails required-field invariants at
// creation. It is surfaced immediately to the caller and never retried; no
// state changes when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid look: %s %s", e.Field, e.Reason)
}
