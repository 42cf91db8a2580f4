package warehouse

import (
	"fmt"

	"github.com/ewynne/mechbay-go/internal/domain/parts"
)

// ErrPartNotFound indicates the warehouse holds no part with the given id
type ErrPartNotFound struct {
	PartID string
}

func (e *ErrPartNotFound) Error() string {
	return fmt.Sprintf("part not found in warehouse: %s", e.PartID)
}

// ErrPartAlreadyClaimed indicates an exclusive claim already exists.
// Claims are all-or-nothing: a second claim within the same tick is
// rejected, never queued.
type ErrPartAlreadyClaimed struct {
	PartID  string
	Purpose parts.WorkPurpose
}

func (e *ErrPartAlreadyClaimed) Error() string {
	return fmt.Sprintf("part %s is already claimed for %s", e.PartID, e.Purpose)
}

// ErrPartNotClaimed indicates a release for a claim that does not exist
type ErrPartNotClaimed struct {
	PartID string
}

func (e *ErrPartNotClaimed) Error() string {
	return fmt.Sprintf("part %s has no active claim", e.PartID)
}

// ErrPartUnavailable indicates the part is in stock but cannot be touched
// right now (in transit or mid-job).
type ErrPartUnavailable struct {
	PartID string
	Status string
}

func (e *ErrPartUnavailable) Error() string {
	return fmt.Sprintf("part %s is unavailable: %s", e.PartID, e.Status)
}
