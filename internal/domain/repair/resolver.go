package repair

import (
	"fmt"

	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
	"github.com/ewynne/mechbay-go/internal/domain/warehouse"
	"github.com/ewynne/mechbay-go/pkg/utils"
)

// Resolver drives one technician's work sessions on parts through the
// Idle -> Reserved -> InProgress -> Good/Idle/Destroyed state machine. It
// receives exactly the collaborators it needs; there is no campaign-wide
// handle.
type Resolver struct {
	catalog parts.Catalog
	wh      *warehouse.Warehouse
}

// NewResolver creates a resolver over the given catalog and warehouse.
func NewResolver(catalog parts.Catalog, wh *warehouse.Warehouse) *Resolver {
	return &Resolver{catalog: catalog, wh: wh}
}

// AssignTech commits a technician to a part's work session. Assignment
// requires the whole remaining job to fit in the tech's shift; an
// over-budget assignment is rejected, not partially applied.
func (r *Resolver) AssignTech(tech *Tech, p *parts.Part) error {
	if p.WorkStatus() == parts.WorkInProgress && p.TechID() != tech.ID() {
		return &ErrPartAlreadyInProgress{PartID: p.ID(), TechID: p.TechID()}
	}

	remaining, err := p.RemainingTime(r.catalog)
	if err != nil {
		return err
	}
	if tech.MinutesUsed()+remaining > tech.DailyMinutes() {
		return &ErrAssignmentExceedsTimeBudget{
			TechID:    tech.ID(),
			PartID:    p.ID(),
			Required:  remaining,
			Available: tech.AvailableMinutes(),
		}
	}
	if err := tech.assign(p.ID()); err != nil {
		return err
	}
	if p.WorkStatus() != parts.WorkInProgress {
		if err := p.StartWork(tech.ID()); err != nil {
			tech.release()
			return err
		}
	}
	return nil
}

// SessionOutcome reports one work session's result back to the daily tick.
type SessionOutcome struct {
	PartID        string
	MinutesWorked int
	// Resolved is true once accrued time reached the work target and the
	// skill roll was consumed.
	Resolved  bool
	Success   bool
	Destroyed bool
	Message   string
}

// WorkSession applies one day of an assigned technician's time to a part.
// Time accrues at min(remaining, available); the skill roll resolves only
// once the accumulated time reaches the work target. Roll failure escalates
// the part's required skill and can destroy it; roll success fixes the part
// and releases the session. owner is the unit the part is installed on, or
// nil for warehouse-only work (omni pods).
func (r *Resolver) WorkSession(owner *unit.Unit, p *parts.Part, tech *Tech, check SkillCheck) (SessionOutcome, error) {
	outcome := SessionOutcome{PartID: p.ID()}

	if p.WorkStatus() != parts.WorkInProgress {
		return outcome, &ErrNoWorkSession{PartID: p.ID()}
	}
	if p.TechID() != tech.ID() {
		return outcome, &ErrPartAlreadyInProgress{PartID: p.ID(), TechID: p.TechID()}
	}
	if owner != nil && !owner.Available() {
		return outcome, &ErrUnitUnavailable{UnitID: owner.ID()}
	}

	remaining, err := p.RemainingTime(r.catalog)
	if err != nil {
		return outcome, err
	}
	minutes := utils.Min(remaining, tech.AvailableMinutes())
	tech.spend(minutes)
	p.AccrueTime(minutes, 0)
	outcome.MinutesWorked = minutes

	target, err := p.WorkTarget(r.catalog)
	if err != nil {
		return outcome, err
	}
	if p.TimeSpent() < target {
		outcome.Message = fmt.Sprintf("%s: %d of %d minutes done", p.Name(), p.TimeSpent(), target)
		return outcome, nil
	}

	difficulty, err := p.Difficulty(r.catalog)
	if err != nil {
		return outcome, err
	}
	outcome.Resolved = true

	if check.Roll(tech.Skill(), p.RequiredSkill(), difficulty) {
		return r.resolveSuccess(owner, p, tech, outcome)
	}
	return r.resolveFailure(owner, p, tech, outcome)
}

// resolveSuccess fixes the part and clears the session. A missing
// replacement that cannot be sourced is recoverable: the session stays open
// for a later day.
func (r *Resolver) resolveSuccess(owner *unit.Unit, p *parts.Part, tech *Tech, outcome SessionOutcome) (SessionOutcome, error) {
	slot := p.Slot()
	if err := p.Fix(r.catalog, r.wh); err != nil {
		outcome.Resolved = false
		outcome.Message = err.Error()
		return outcome, nil
	}
	if owner != nil && slot != parts.UnslottedLocation {
		_ = owner.HealSlot(slot)
	}
	p.ResetWork()
	tech.release()
	outcome.Success = true
	outcome.Message = fmt.Sprintf("%s repaired by %s", p.Name(), tech.Name())
	return outcome, nil
}

// resolveFailure applies the escalating-difficulty retry policy. The
// transition is explicit: the escalated state replaces the old one, and
// crossing the skill ceiling is terminal for the part instance only, never
// for the tick.
func (r *Resolver) resolveFailure(owner *unit.Unit, p *parts.Part, tech *Tech, outcome SessionOutcome) (SessionOutcome, error) {
	next, failed := p.Fail(p.RequiredSkill())
	tech.release()
	outcome.Destroyed = failed.Destroyed
	outcome.Message = failed.Message

	if !failed.Destroyed {
		*p = next
		return outcome, nil
	}

	// Terminal for this entity: remove it permanently, no warehouse return.
	if owner != nil && p.Installed() {
		slot := p.Slot()
		if _, err := owner.Remove(p.ID()); err != nil {
			return outcome, err
		}
		if err := owner.DestroySlot(slot); err != nil {
			return outcome, err
		}
		if _, err := owner.DeriveParts(r.catalog); err != nil {
			return outcome, err
		}
		return outcome, nil
	}
	if _, err := r.wh.Remove(p.ID()); err != nil {
		if _, notFound := err.(*warehouse.ErrPartNotFound); !notFound {
			return outcome, err
		}
	}
	return outcome, nil
}

// ErrUnitUnavailable re-exported for the resolver boundary.
type ErrUnitUnavailable = unit.ErrUnitUnavailable
