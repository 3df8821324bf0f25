package canon

import "fmt"

// CanonicalizationBudgetExceeded is returned when the standard RDFC-1.0
// path's permutation budget is exhausted before all blank-node ties could
// be disambiguated.
type CanonicalizationBudgetExceeded struct {
	Budget int
}

func (e *CanonicalizationBudgetExceeded) Error() string {
	return fmt.Sprintf("canon: permutation budget of %d exceeded while disambiguating blank nodes", e.Budget)
}

// Internal wraps an unexpected internal invariant breach, matching the
// CanonError = { CanonicalizationBudgetExceeded, Internal(msg) } shape the
// public error taxonomy uses.
type Internal struct {
	Msg string
}

func (e *Internal) Error() string { return "canon: internal: " + e.Msg }
