package reasoner

import (
	"context"
	"errors"
	"fmt"

	"github.com/sroiqd/reasoner/pkg/canon"
	"github.com/sroiqd/reasoner/pkg/tableau"
)

// ReasonKind enumerates the error kinds the reasoning façade boundary
// surfaces to callers. Unsatisfiable is deliberately absent: it is a normal
// bool result, never an error.
type ReasonKind int

const (
	Cancelled ReasonKind = iota
	Timeout
	ResourceExhausted
	MemoryLimitExceeded
	ReasonInternal
)

func (k ReasonKind) String() string {
	switch k {
	case Cancelled:
		return "Cancelled"
	case Timeout:
		return "Timeout"
	case ResourceExhausted:
		return "ResourceExhausted"
	case MemoryLimitExceeded:
		return "MemoryLimitExceeded"
	default:
		return "Internal"
	}
}

// ReasonError is the single error type every façade operation returns,
// mapping prover and context errors onto a small public taxonomy. No
// façade operation returns the MemoryLimitExceeded kind.
type ReasonError struct {
	Kind ReasonKind
	Msg  string
}

func (e *ReasonError) Error() string {
	if e.Msg == "" {
		return "reasoner: " + e.Kind.String()
	}
	return fmt.Sprintf("reasoner: %s: %s", e.Kind, e.Msg)
}

// CanonError mirrors ReasonError for the Canonicalizer's boundary.
type CanonError struct {
	BudgetExceeded bool
	Msg            string
}

func (e *CanonError) Error() string {
	if e.BudgetExceeded {
		return "canon: CanonicalizationBudgetExceeded: " + e.Msg
	}
	return "canon: Internal: " + e.Msg
}

// mapProverError translates a tableau/context error into the public
// ReasonError taxonomy; this is the one place that distinction is made —
// component-local errors are mapped once at the façade boundary.
func mapProverError(err error) error {
	if err == nil {
		return nil
	}
	var timeout *tableau.Timeout
	var exhausted *tableau.ResourceExhausted
	var internal *tableau.Internal
	switch {
	case errors.As(err, &timeout):
		return &ReasonError{Kind: Timeout, Msg: err.Error()}
	case errors.As(err, &exhausted):
		return &ReasonError{Kind: ResourceExhausted, Msg: err.Error()}
	case errors.As(err, &internal):
		return &ReasonError{Kind: ReasonInternal, Msg: err.Error()}
	case errors.Is(err, context.Canceled):
		return &ReasonError{Kind: Cancelled, Msg: err.Error()}
	default:
		return &ReasonError{Kind: ReasonInternal, Msg: err.Error()}
	}
}

func mapCanonError(err error) error {
	if err == nil {
		return nil
	}
	var budget *canon.CanonicalizationBudgetExceeded
	if errors.As(err, &budget) {
		return &CanonError{BudgetExceeded: true, Msg: err.Error()}
	}
	return &CanonError{Msg: err.Error()}
}
