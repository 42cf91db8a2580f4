package refit

import (
	"fmt"
	"strings"
)

// ErrInvalidState is returned when a lifecycle action is attempted from a
// state that does not allow it.
type ErrInvalidState struct {
	RefitID string
	Status  Status
	Action  string
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("refit %s: cannot %s while %s", e.RefitID, e.Action, e.Status)
}

// ErrUnitAlreadyRefitting is returned when a second refit is initiated for a
// unit that an active project already holds.
type ErrUnitAlreadyRefitting struct {
	UnitID  string
	RefitID string
}

func (e *ErrUnitAlreadyRefitting) Error() string {
	return fmt.Sprintf("unit %s is already held by refit %s", e.UnitID, e.RefitID)
}

// ErrKitShortfall is returned when work is started while kit parts are still
// unsourced. The shortfall is recoverable: stock can arrive and planning can
// be retried.
type ErrKitShortfall struct {
	RefitID string
	Missing []string
}

func (e *ErrKitShortfall) Error() string {
	return fmt.Sprintf("refit %s: kit incomplete, missing %s", e.RefitID, strings.Join(e.Missing, ", "))
}
