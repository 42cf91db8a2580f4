package parts

import "fmt"

// ErrUnknownPart indicates a catalog key with no spec entry
type ErrUnknownPart struct {
	Key string
}

func (e *ErrUnknownPart) Error() string {
	return fmt.Sprintf("unknown part in catalog: %s", e.Key)
}

// ErrNoReplacementAvailable indicates a missing part or empty pod could not
// be sourced from the warehouse. Recoverable: the part stays broken and the
// lookup can be retried on a later day.
type ErrNoReplacementAvailable struct {
	Key     string
	Tonnage float64
}

func (e *ErrNoReplacementAvailable) Error() string {
	return fmt.Sprintf("no replacement available for %s (%.1ft)", e.Key, e.Tonnage)
}

// ErrNotFixableInPlace indicates a fix was requested on a part whose variant
// has no in-place repair (currently only reported for malformed input).
type ErrNotFixableInPlace struct {
	PartID string
	Kind   Kind
}

func (e *ErrNotFixableInPlace) Error() string {
	return fmt.Sprintf("part %s (%s) cannot be fixed in place", e.PartID, e.Kind)
}

// ErrInvalidWorkTransition indicates a work-state transition that would
// overwrite another reservation or in-progress session.
type ErrInvalidWorkTransition struct {
	PartID string
	From   WorkStatus
	To     WorkStatus
}

func (e *ErrInvalidWorkTransition) Error() string {
	return fmt.Sprintf("part %s: cannot transition work state %s -> %s", e.PartID, e.From, e.To)
}

// ErrStackedMutation indicates an operation that is only legal on a
// quantity-1 entity was attempted on a stacked spare.
type ErrStackedMutation struct {
	PartID   string
	Quantity int
}

func (e *ErrStackedMutation) Error() string {
	return fmt.Sprintf("part %s holds a stack of %d and cannot be mutated directly", e.PartID, e.Quantity)
}
