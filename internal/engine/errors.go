package engine

import "fmt"

// ValidationError indicates a rejected field at the input boundary. The
// analyzers themselves never validate; anything that reaches them is
// assumed well formed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
