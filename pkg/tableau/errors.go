package tableau

import "fmt"

// ResourceExhausted is returned when the completion graph grows past its
// configured node limit before a fixpoint or clash is found.
type ResourceExhausted struct {
	Limit int
}

func (e *ResourceExhausted) Error() string {
	return fmt.Sprintf("tableau: resource exhausted: node limit %d reached", e.Limit)
}

// Timeout is returned when the query's context deadline elapses mid-proof
//.
type Timeout struct{}

func (e *Timeout) Error() string { return "tableau: query timed out" }

// Internal wraps an unexpected internal invariant breach.
type Internal struct {
	Msg string
}

func (e *Internal) Error() string { return "tableau: internal: " + e.Msg }
