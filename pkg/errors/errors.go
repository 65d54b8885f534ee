package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownBenchmark       = errors.New("unknown benchmark")
	ErrUnknownSystem          = errors.New("unknown system")
	ErrUnknownVariant         = errors.New("unknown variant")
	ErrInvalidVariantValue    = errors.New("invalid variant value")
	ErrSpecRequired           = errors.New("a spec name is required")
	ErrDuplicateVariant       = errors.New("variant specified more than once")
	ErrConflictingModels      = errors.New("only one programming model may be selected")
	ErrUnsupportedModel       = errors.New("programming model not supported by benchmark")
	ErrConflictingScaling     = errors.New("only one scaling strategy may be selected")
	ErrUnsupportedScaling     = errors.New("scaling strategy not supported by benchmark")
	ErrRanksRequired          = errors.New("n_ranks or n_gpus is required")
	ErrOverAllocation         = errors.New("request exceeds system capacity")
	ErrInvalidRequest         = errors.New("invalid resource request")
	ErrInvalidCapacity        = errors.New("invalid system capacity")
	ErrInvalidScaling         = errors.New("invalid scaling variables")
	ErrDestinationNotEmpty    = errors.New("destination directory is not empty")
	ErrExperimentDescRequired = errors.New("experiment description not found")
	ErrSystemDescRequired     = errors.New("system description not found")
	ErrInvalidModifier        = errors.New("invalid modifier configuration")
	ErrUnknownListKind        = errors.New("unknown list kind")
	ErrUnsupportedScheduler   = errors.New("unsupported scheduler")
)

// OverAllocationError describes one resource that a request asks more of than a node has.
type OverAllocationError struct {
	Resource  string
	Requested int64
	Available int64
}

// Error returns the error message.
func (e OverAllocationError) Error() string {
	return fmt.Sprintf("%s: requested %d, system provides %d", e.Resource, e.Requested, e.Available)
}

// Unwrap allows errors.Is(err, ErrOverAllocation).
func (e OverAllocationError) Unwrap() error {
	return ErrOverAllocation
}

// UnknownVariantError is returned when a spec names a variant the target does not declare.
type UnknownVariantError struct {
	Target  string
	Variant string
	Known   []string
}

// Error returns the error message.
func (e UnknownVariantError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("%s has no variant %q", e.Target, e.Variant)
	}

	return fmt.Sprintf("%s has no variant %q (known: %s)", e.Target, e.Variant, strings.Join(e.Known, ", "))
}

// Unwrap allows errors.Is(err, ErrUnknownVariant).
func (e UnknownVariantError) Unwrap() error {
	return ErrUnknownVariant
}

type notFoundError struct {
	kind  error
	name  string
	known []string
}

// Error returns the error message.
func (e notFoundError) Error() string {
	return fmt.Sprintf("%s %q, available: %s", e.kind, e.name, strings.Join(e.known, ", "))
}

func (e notFoundError) Unwrap() error {
	return e.kind
}

func NewBenchmarkNotFound(name string, known []string) error {
	return notFoundError{kind: ErrUnknownBenchmark, name: name, known: known}
}

func NewSystemNotFound(name string, known []string) error {
	return notFoundError{kind: ErrUnknownSystem, name: name, known: known}
}
