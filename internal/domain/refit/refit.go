package refit

import (
	"fmt"

	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
	"github.com/ewynne/mechbay-go/internal/domain/warehouse"
	"github.com/ewynne/mechbay-go/pkg/utils"
)

// Status represents the lifecycle state of a refit project.
type Status string

const (
	StatusPlanning   Status = "PLANNING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Terminal reports whether no further lifecycle actions apply.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Options select the refit class.
type Options struct {
	// Refurbishment relabels the unit's existing parts as new: no diff, no
	// sourcing, every installed part is affected.
	Refurbishment bool
	// CustomJob marks a one-off configuration with no canonical variant name.
	CustomJob bool
}

// kitItem is one sourced replacement bound to the slot it will fill.
type kitItem struct {
	part *parts.Part
	slot int
}

// Refit is a multi-day reconfiguration project tied to exactly one unit.
// It holds temporary claims on warehouse kit parts, never ownership: stock
// changes hands only when the project commits.
//
// Invariants:
//   - At most one active refit per unit; the unit's refit marker is set at
//     planning time and cleared on completion or cancellation.
//   - Cancellation from any non-terminal state releases every kit claim and
//     leaves the unit's configuration untouched.
//   - Claimed kit parts remain warehouse stock until Succeed commits them.
type Refit struct {
	id            string
	unit          *unit.Unit
	target        []unit.Slot
	kit           []kitItem
	shortfall     []string
	removals      []string
	refurbishment bool
	customJob     bool
	status        Status
	timeRequired  int
	daysElapsed   int
	workMinutes   int
}

// Plan initiates a refit: it diffs the unit's current configuration against
// the target blueprint, claims one warehouse spare per slot that needs
// sourcing, and records a shortfall entry for every slot it could not fill.
// A shortfall does not fail planning; it blocks Begin until stock arrives
// and the job is re-planned.
//
// The diff is positional: a slot survives when the target blueprint keeps
// its catalog key at the same index, mirroring how the commit detaches
// parts. Parts only in the current configuration become removals; parts
// only in the target need kit sourcing.
func Plan(u *unit.Unit, target []unit.Slot, wh *warehouse.Warehouse, cat parts.Catalog, opts Options) (*Refit, error) {
	if !u.Available() {
		return nil, &unit.ErrUnitUnavailable{UnitID: u.ID()}
	}
	if u.Refitting() {
		return nil, &ErrUnitAlreadyRefitting{UnitID: u.ID(), RefitID: u.RefitID()}
	}

	r := &Refit{
		id:            utils.GenerateWorkOrderID("refit", u.Name()),
		unit:          u,
		refurbishment: opts.Refurbishment,
		customJob:     opts.CustomJob,
		status:        StatusPlanning,
	}

	if opts.Refurbishment {
		r.target = u.Slots()
		if err := r.planRefurbishment(cat); err != nil {
			return nil, err
		}
		u.SetRefitID(r.id)
		return r, nil
	}

	if err := validateBlueprint(target); err != nil {
		return nil, err
	}
	r.target = make([]unit.Slot, len(target))
	copy(r.target, target)

	if err := r.planDiff(wh, cat); err != nil {
		r.releaseKit(wh)
		return nil, err
	}
	u.SetRefitID(r.id)
	return r, nil
}

// planRefurbishment prices the relabel-as-new job: every installed part is
// affected at its routine base time plus the refit-class surcharge.
func (r *Refit) planRefurbishment(cat parts.Catalog) error {
	for _, p := range r.unit.Parts() {
		spec, err := cat.Lookup(p.CatalogKey())
		if err != nil {
			return err
		}
		r.timeRequired += spec.BaseTimeMinutes * utils.Max(spec.Difficulty+parts.MaintenanceClassModifier, 1)
	}
	return nil
}

// planDiff computes the structural diff and claims kit parts.
func (r *Refit) planDiff(wh *warehouse.Warehouse, cat parts.Catalog) error {
	for _, s := range r.target {
		current := r.unit.PartAt(s.Index)
		if current != nil && current.CatalogKey() == s.CatalogKey && current.SubRating() == s.SubRating {
			continue
		}

		spec, err := cat.Lookup(s.CatalogKey)
		if err != nil {
			return err
		}
		r.timeRequired += spec.ReplacementTimeMinutes * utils.Max(spec.Difficulty+parts.MaintenanceClassModifier, 1)

		template, err := buildTemplate(spec, s, r.unit.Tonnage())
		if err != nil {
			return err
		}
		spare := wh.FindMatchingSpare(template)
		if spare == nil {
			r.shortfall = append(r.shortfall, spec.Name)
			continue
		}
		claimed, err := wh.ClaimOne(spare.ID(), parts.PurposeRefit)
		if err != nil {
			return err
		}
		r.kit = append(r.kit, kitItem{part: claimed, slot: s.Index})
	}

	for _, p := range r.unit.Parts() {
		slot := p.Slot()
		if slot >= 0 && slot < len(r.target) &&
			r.target[slot].CatalogKey == p.CatalogKey() && r.target[slot].SubRating == p.SubRating() {
			continue
		}
		r.removals = append(r.removals, p.Name())
		spec, err := cat.Lookup(p.CatalogKey())
		if err != nil {
			return err
		}
		r.timeRequired += spec.ReplacementTimeMinutes * utils.Max(spec.Difficulty+parts.MaintenanceClassModifier, 1)
	}
	return nil
}

// Begin starts the clock. Rejected while kit parts are still unsourced.
func (r *Refit) Begin() error {
	if r.status != StatusPlanning {
		return &ErrInvalidState{RefitID: r.id, Status: r.status, Action: "begin"}
	}
	if len(r.shortfall) > 0 {
		missing := make([]string, len(r.shortfall))
		copy(missing, r.shortfall)
		return &ErrKitShortfall{RefitID: r.id, Missing: missing}
	}
	r.status = StatusInProgress
	return nil
}

// AdvanceDay accrues one day of refit work and reports whether the required
// time has been reached. Completion itself stays explicit: the caller
// commits via Succeed.
func (r *Refit) AdvanceDay(minutes int) (bool, error) {
	if r.status != StatusInProgress {
		return false, &ErrInvalidState{RefitID: r.id, Status: r.status, Action: "advance"}
	}
	r.daysElapsed++
	r.workMinutes += utils.Max(minutes, 0)
	return r.workMinutes >= r.timeRequired, nil
}

// Cancel abandons the project from any non-terminal state: every kit claim
// is released back to the warehouse unconsumed and the unit keeps its prior
// configuration.
func (r *Refit) Cancel(wh *warehouse.Warehouse) error {
	if r.status.Terminal() {
		return &ErrInvalidState{RefitID: r.id, Status: r.status, Action: "cancel"}
	}
	r.releaseKit(wh)
	r.unit.SetRefitID("")
	r.status = StatusCancelled
	return nil
}

// Succeed commits the target configuration. Valid from Planning as the GM
// force-complete path, provided the kit is whole. Parts only in the old
// configuration return to the warehouse when undamaged and are discarded
// otherwise; kit parts leave warehouse stock and install into their bound
// slots. Returns the completion report.
func (r *Refit) Succeed(wh *warehouse.Warehouse, cat parts.Catalog) (string, error) {
	if r.status.Terminal() {
		return "", &ErrInvalidState{RefitID: r.id, Status: r.status, Action: "complete"}
	}
	if len(r.shortfall) > 0 {
		missing := make([]string, len(r.shortfall))
		copy(missing, r.shortfall)
		return "", &ErrKitShortfall{RefitID: r.id, Missing: missing}
	}

	if r.refurbishment {
		for _, p := range r.unit.Parts() {
			if err := p.RestoreInPlace(); err != nil {
				return "", err
			}
			p.ResetWork()
		}
		r.unit.HealAllSlots()
		r.finish()
		return fmt.Sprintf("%s refurbished as new (%d days)", r.unit.Name(), r.daysElapsed), nil
	}

	// Stage the swap against the unit first; warehouse stock is only
	// touched once every kit part is seated, so an install error unwinds
	// to the pre-commit state instead of stranding a claimed part.
	priorSlots := r.unit.Slots()
	priorAt := make(map[string]int, len(r.unit.Parts()))
	for _, p := range r.unit.Parts() {
		priorAt[p.ID()] = p.Slot()
	}

	detached := r.unit.ReplaceBlueprint(r.target)

	var placed []*parts.Part
	rollback := func(cause error) (string, error) {
		for _, p := range placed {
			if _, err := r.unit.Remove(p.ID()); err == nil {
				_ = p.Reserve(parts.PurposeRefit)
			}
		}
		r.unit.ReplaceBlueprint(priorSlots)
		for _, p := range detached {
			_ = r.unit.Install(p, priorAt[p.ID()])
		}
		return "", cause
	}

	for _, item := range r.kit {
		p, err := wh.Get(item.part.ID())
		if err != nil {
			return rollback(err)
		}
		p.ClearReservation()
		if err := r.unit.Install(p, item.slot); err != nil {
			_ = p.Reserve(parts.PurposeRefit)
			return rollback(err)
		}
		placed = append(placed, p)
		if err := r.unit.HealSlot(item.slot); err != nil {
			return rollback(err)
		}
	}

	// The unit side is committed; none of the remaining moves can fail.
	returned := 0
	for _, p := range detached {
		if p.Condition() == parts.ConditionGood {
			wh.AddPart(p, 0)
			returned++
		}
	}
	for _, item := range r.kit {
		if _, err := wh.Remove(item.part.ID()); err != nil {
			if _, notFound := err.(*warehouse.ErrPartNotFound); !notFound {
				return "", err
			}
		}
	}

	installed := len(r.kit)
	r.kit = nil
	r.finish()
	return fmt.Sprintf("refit of %s complete: %d part/s installed, %d removed (%d returned to warehouse), %d day/s elapsed",
		r.unit.Name(), installed, len(detached), returned, r.daysElapsed), nil
}

func (r *Refit) finish() {
	r.unit.SetRefitID("")
	r.status = StatusCompleted
}

// releaseKit returns every still-claimed kit part to the unreserved pool.
func (r *Refit) releaseKit(wh *warehouse.Warehouse) {
	for _, item := range r.kit {
		// A claim can already be gone if the entity merged away; releasing
		// is best-effort during rollback.
		_ = wh.Release(item.part.ID())
	}
	r.kit = nil
}

// Getters

func (r *Refit) ID() string               { return r.id }
func (r *Refit) UnitID() string           { return r.unit.ID() }
func (r *Refit) Status() Status           { return r.status }
func (r *Refit) Refurbishment() bool      { return r.refurbishment }
func (r *Refit) CustomJob() bool          { return r.customJob }
func (r *Refit) TimeRequiredMinutes() int { return r.timeRequired }
func (r *Refit) DaysElapsed() int         { return r.daysElapsed }
func (r *Refit) WorkMinutes() int         { return r.workMinutes }

// Kit returns the claimed replacement parts in sourcing order.
func (r *Refit) Kit() []*parts.Part {
	result := make([]*parts.Part, 0, len(r.kit))
	for _, item := range r.kit {
		result = append(result, item.part)
	}
	return result
}

// Shortfall returns the display names of target parts that could not be
// sourced at planning time.
func (r *Refit) Shortfall() []string {
	result := make([]string, len(r.shortfall))
	copy(result, r.shortfall)
	return result
}

// Removals returns the display names of parts the commit will detach.
func (r *Refit) Removals() []string {
	result := make([]string, len(r.removals))
	copy(result, r.removals)
	return result
}

// Target returns a copy of the target blueprint.
func (r *Refit) Target() []unit.Slot {
	result := make([]unit.Slot, len(r.target))
	copy(result, r.target)
	return result
}

// validateBlueprint enforces the same shape rules as unit construction.
func validateBlueprint(slots []unit.Slot) error {
	for i, s := range slots {
		if s.Index != i {
			return fmt.Errorf("target slot %d declared with index %d", i, s.Index)
		}
		if s.DependsOn != unit.NoDependency && (s.DependsOn < 0 || s.DependsOn >= len(slots)) {
			return fmt.Errorf("target slot %d depends on unknown slot %d", i, s.DependsOn)
		}
		if s.CatalogKey == "" {
			return fmt.Errorf("target slot %d has no catalog key", i)
		}
	}
	return nil
}

// buildTemplate constructs the fungibility template for sourcing a slot's
// replacement.
func buildTemplate(spec parts.Spec, s unit.Slot, tonnage float64) (*parts.Part, error) {
	switch spec.Kind {
	case parts.KindArmor:
		points := s.ArmorPoints
		if points <= 0 {
			points = 1
		}
		return parts.NewArmor(spec, tonnage, points)
	case parts.KindAmmoBin:
		return parts.NewAmmoBin(spec, tonnage)
	case parts.KindHeatSink:
		return parts.NewHeatSink(spec)
	case parts.KindJumpJet:
		return parts.NewJumpJet(spec, tonnage)
	case parts.KindMASC:
		return parts.NewMASC(spec, tonnage, s.SubRating)
	case parts.KindEquipment:
		return parts.NewEquipment(spec, tonnage)
	default:
		return nil, fmt.Errorf("slot %d: no sourcing template for kind %s", s.Index, spec.Kind)
	}
}
