package repair

import "fmt"

// ErrAssignmentExceedsTimeBudget indicates the technician cannot finish the
// job inside the daily shift. The assignment is rejected outright, never
// silently truncated.
type ErrAssignmentExceedsTimeBudget struct {
	TechID    string
	PartID    string
	Required  int
	Available int
}

func (e *ErrAssignmentExceedsTimeBudget) Error() string {
	return fmt.Sprintf("tech %s cannot take part %s: needs %d minutes, %d remaining in shift",
		e.TechID, e.PartID, e.Required, e.Available)
}

// ErrPartAlreadyInProgress indicates a part already under another
// technician's work session. Rejected at the boundary, never overwritten.
type ErrPartAlreadyInProgress struct {
	PartID string
	TechID string
}

func (e *ErrPartAlreadyInProgress) Error() string {
	return fmt.Sprintf("part %s is already being worked on by tech %s", e.PartID, e.TechID)
}

// ErrTechAlreadyAssigned indicates the technician already has a work
// session today. One part per tech per day.
type ErrTechAlreadyAssigned struct {
	TechID string
	PartID string
}

func (e *ErrTechAlreadyAssigned) Error() string {
	return fmt.Sprintf("tech %s is already assigned to part %s today", e.TechID, e.PartID)
}

// ErrNoWorkSession indicates a session resolution on an idle part
type ErrNoWorkSession struct {
	PartID string
}

func (e *ErrNoWorkSession) Error() string {
	return fmt.Sprintf("part %s has no active work session", e.PartID)
}
