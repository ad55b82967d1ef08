package calc

import (
	"errors"
	"fmt"
	"strings"
)

// Failure classes shared by every formula package.
var (
	// ErrInvalidCombination indicates an unsupported set of known inputs.
	ErrInvalidCombination = errors.New("calc: invalid combination of known inputs")

	// ErrInvalidVariant indicates an unsupported variant name (vessel, weir, cam, ...).
	ErrInvalidVariant = errors.New("calc: unsupported variant")

	// ErrDomain indicates the inputs produce a mathematically undefined result.
	ErrDomain = errors.New("calc: input outside formula domain")

	// ErrNotFound indicates a key absent from a static table.
	ErrNotFound = errors.New("calc: not found")
)

// CombinationError names the inputs that were supplied when the set is unsupported.
type CombinationError struct {
	Op       string
	Supplied []string
	Reason   string
}

func (e *CombinationError) Error() string {
	return fmt.Sprintf("%s: %s (supplied: %s)", e.Op, e.Reason, strings.Join(e.Supplied, ", "))
}

func (e *CombinationError) Unwrap() error {
	return ErrInvalidCombination
}

// VariantError carries the rejected name and every accepted one.
type VariantError struct {
	Kind  string
	Got   string
	Valid []string
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("unsupported %s %q, choose from: %s", e.Kind, e.Got, strings.Join(e.Valid, ", "))
}

func (e *VariantError) Unwrap() error {
	return ErrInvalidVariant
}

type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// LookupError wraps a miss in a static table.
type LookupError struct {
	Table string
	Key   string
	Known []string
}

func (e *LookupError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("%s %q not found", e.Table, e.Key)
	}
	return fmt.Sprintf("%s %q not found (available: %s)", e.Table, e.Key, strings.Join(e.Known, ", "))
}

func (e *LookupError) Unwrap() error {
	return ErrNotFound
}

// Domainf builds a DomainError for op.
func Domainf(op, format string, args ...any) error {
	return &DomainError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// NonZero fails when v is zero, the usual divisor guard.
func NonZero(op, name string, v float64) error {
	if v == 0 {
		return Domainf(op, "%s must be non-zero", name)
	}
	return nil
}

// Positive fails when v <= 0.
func Positive(op, name string, v float64) error {
	if v <= 0 {
		return Domainf(op, "%s must be positive, got %g", name, v)
	}
	return nil
}

// NonNegative fails when v < 0.
func NonNegative(op, name string, v float64) error {
	if v < 0 {
		return Domainf(op, "%s must not be negative, got %g", name, v)
	}
	return nil
}

// Finite rejects NaN and Inf results that slipped past the input guards.
func Finite(op string, r *Result) error {
	if !r.IsValid() {
		return Domainf(op, "result is not finite")
	}
	return nil
}
