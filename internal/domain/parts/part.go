package parts

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ewynne/mechbay-go/internal/domain/shared"
	"github.com/ewynne/mechbay-go/pkg/utils"
)

// Kind is the closed set of part variants. Behavior differences between
// variants are dispatched by switching on Kind, never by reflection.
type Kind string

const (
	KindEquipment Kind = "EQUIPMENT"
	KindArmor     Kind = "ARMOR"
	KindAmmoBin   Kind = "AMMO_BIN"
	KindHeatSink  Kind = "HEAT_SINK"
	KindJumpJet   Kind = "JUMP_JET"
	KindMASC      Kind = "MASC"
	KindOmniPod   Kind = "OMNI_POD"
	KindMissing   Kind = "MISSING"
)

// Condition is the physical state of a part.
type Condition string

const (
	ConditionGood    Condition = "GOOD"
	ConditionDamaged Condition = "DAMAGED"
	ConditionMissing Condition = "MISSING"
)

// WorkStatus is the maintenance lifecycle state of a part.
type WorkStatus string

const (
	WorkIdle            WorkStatus = "IDLE"
	WorkReserved        WorkStatus = "RESERVED"
	WorkInProgress      WorkStatus = "IN_PROGRESS"
	WorkAwaitingArrival WorkStatus = "AWAITING_ARRIVAL"
)

// WorkPurpose distinguishes what a reservation is for.
type WorkPurpose string

const (
	PurposeNone        WorkPurpose = ""
	PurposeRefit       WorkPurpose = "REFIT"
	PurposeReplacement WorkPurpose = "REPLACEMENT"
)

// workState bundles the maintenance bookkeeping for one part.
type workState struct {
	status        WorkStatus
	purpose       WorkPurpose
	techID        string
	timeSpent     int // minutes accrued toward the current job
	overtime      int // overtime minutes accrued
	daysToArrival int
}

// UnslottedLocation marks a part that is not installed on any unit.
const UnslottedLocation = -1

// Part is one physical campaign-tracked component: installed equipment, a
// spare in the warehouse, an empty omni pod, or the placeholder for a part
// that was destroyed and needs replacement.
//
// Invariants:
//   - WorkInProgress requires an installed location, except OmniPod which is
//     warehouse-only by design.
//   - Quantity > 1 is only legal for Good, Idle spares (stacking).
type Part struct {
	id         string
	kind       Kind
	catalogKey string
	name       string
	tonnage    float64
	subRating  int // scaling attribute, e.g. MASC engine rating
	quantity   int
	unitID     string
	slot       int
	condition  Condition
	work       workState
	required   shared.Skill // escalates on failed repair attempts
	podded     bool

	// Variant payloads
	podType     *Part // OmniPod: template of the equipment it pods
	armorPoints int   // Armor: current points
	armorTotal  int   // Armor: full points
	shotsNeeded int   // AmmoBin: shots to reload
}

func newPart(spec Spec, tonnage float64, subRating int) *Part {
	return &Part{
		id:         uuid.NewString(),
		kind:       spec.Kind,
		catalogKey: spec.Key,
		name:       spec.Name,
		tonnage:    tonnage,
		subRating:  subRating,
		quantity:   1,
		slot:       UnslottedLocation,
		condition:  ConditionGood,
		work:       workState{status: WorkIdle},
		required:   shared.SkillGreen,
	}
}

// NewEquipment creates a standard equipment part from its catalog spec.
func NewEquipment(spec Spec, tonnage float64) (*Part, error) {
	if err := checkSpecKind(spec, KindEquipment); err != nil {
		return nil, err
	}
	return newPart(spec, tonnage, 0), nil
}

// NewHeatSink creates a heat sink part from its catalog spec.
func NewHeatSink(spec Spec) (*Part, error) {
	if err := checkSpecKind(spec, KindHeatSink); err != nil {
		return nil, err
	}
	return newPart(spec, 0, 0), nil
}

// NewJumpJet creates a jump jet part scaled to the unit tonnage.
func NewJumpJet(spec Spec, tonnage float64) (*Part, error) {
	if err := checkSpecKind(spec, KindJumpJet); err != nil {
		return nil, err
	}
	return newPart(spec, tonnage, 0), nil
}

// NewMASC creates a MASC part. Engine rating is the scaling attribute that
// makes two MASC units interchangeable.
func NewMASC(spec Spec, tonnage float64, engineRating int) (*Part, error) {
	if err := checkSpecKind(spec, KindMASC); err != nil {
		return nil, err
	}
	if engineRating <= 0 {
		return nil, fmt.Errorf("MASC engine rating must be positive, got %d", engineRating)
	}
	return newPart(spec, tonnage, engineRating), nil
}

// NewArmor creates an armor part with a full point allocation.
func NewArmor(spec Spec, tonnage float64, totalPoints int) (*Part, error) {
	if err := checkSpecKind(spec, KindArmor); err != nil {
		return nil, err
	}
	if totalPoints <= 0 {
		return nil, fmt.Errorf("armor total points must be positive, got %d", totalPoints)
	}
	p := newPart(spec, tonnage, 0)
	p.armorPoints = totalPoints
	p.armorTotal = totalPoints
	return p, nil
}

// NewAmmoBin creates a fully loaded ammo bin.
func NewAmmoBin(spec Spec, tonnage float64) (*Part, error) {
	if err := checkSpecKind(spec, KindAmmoBin); err != nil {
		return nil, err
	}
	return newPart(spec, tonnage, 0), nil
}

// NewOmniPod creates an empty omni pod for the given equipment template.
// Pods are specific to the type of equipment they contain, live only in the
// warehouse, and have no damage state of their own.
func NewOmniPod(podType *Part) (*Part, error) {
	if podType == nil {
		return nil, fmt.Errorf("omni pod requires a pod type template")
	}
	if podType.kind == KindOmniPod || podType.kind == KindMissing {
		return nil, fmt.Errorf("omni pod cannot contain a %s part", podType.kind)
	}
	template := podType.Clone()
	template.podded = false
	return &Part{
		id:         uuid.NewString(),
		kind:       KindOmniPod,
		catalogKey: "omni-pod",
		name:       "OmniPod",
		quantity:   1,
		slot:       UnslottedLocation,
		condition:  ConditionGood,
		work:       workState{status: WorkIdle},
		required:   shared.SkillGreen,
		podType:    template,
	}, nil
}

// NewMissing creates the placeholder for a destroyed part: the slot needs a
// replacement of the spec's design before the unit is whole again.
func NewMissing(spec Spec, tonnage float64, subRating int, unitID string, slot int) (*Part, error) {
	if spec.Kind == KindOmniPod || spec.Kind == KindMissing {
		return nil, fmt.Errorf("cannot create missing placeholder for kind %s", spec.Kind)
	}
	p := newPart(spec, tonnage, subRating)
	p.kind = KindMissing
	p.condition = ConditionMissing
	p.unitID = unitID
	p.slot = slot
	return p, nil
}

func checkSpecKind(spec Spec, want Kind) error {
	if spec.Kind != want {
		return fmt.Errorf("catalog spec %s is %s, not %s", spec.Key, spec.Kind, want)
	}
	return nil
}

// Getters

func (p *Part) ID() string                  { return p.id }
func (p *Part) Kind() Kind                  { return p.kind }
func (p *Part) CatalogKey() string          { return p.catalogKey }
func (p *Part) Name() string                { return p.name }
func (p *Part) Tonnage() float64            { return p.tonnage }
func (p *Part) SubRating() int              { return p.subRating }
func (p *Part) Quantity() int               { return p.quantity }
func (p *Part) UnitID() string              { return p.unitID }
func (p *Part) Slot() int                   { return p.slot }
func (p *Part) Condition() Condition        { return p.condition }
func (p *Part) WorkStatus() WorkStatus      { return p.work.status }
func (p *Part) Purpose() WorkPurpose        { return p.work.purpose }
func (p *Part) TechID() string              { return p.work.techID }
func (p *Part) TimeSpent() int              { return p.work.timeSpent }
func (p *Part) Overtime() int               { return p.work.overtime }
func (p *Part) DaysToArrival() int          { return p.work.daysToArrival }
func (p *Part) RequiredSkill() shared.Skill { return p.required }
func (p *Part) Podded() bool                { return p.podded }
func (p *Part) PodType() *Part              { return p.podType }
func (p *Part) ArmorPoints() int            { return p.armorPoints }
func (p *Part) ArmorTotal() int             { return p.armorTotal }
func (p *Part) ShotsNeeded() int            { return p.shotsNeeded }

// Installed reports whether the part occupies a unit slot.
func (p *Part) Installed() bool {
	return p.unitID != "" && p.slot != UnslottedLocation
}

// Present reports whether the part is on hand rather than in transit.
func (p *Part) Present() bool {
	return p.work.status != WorkAwaitingArrival
}

// NeedsFixing reports whether any maintenance action applies. Empty pods
// always want filling; missing placeholders always want replacement.
func (p *Part) NeedsFixing() bool {
	switch p.kind {
	case KindOmniPod, KindMissing:
		return true
	case KindArmor:
		return p.condition != ConditionGood || p.armorPoints < p.armorTotal
	case KindAmmoBin:
		return p.condition != ConditionGood || p.shotsNeeded > 0
	default:
		return p.condition != ConditionGood
	}
}

// Status returns the human-readable maintenance state for display.
func (p *Part) Status() string {
	switch {
	case p.work.status == WorkAwaitingArrival:
		dayName := "day"
		if p.work.daysToArrival > 1 {
			dayName += "s"
		}
		return fmt.Sprintf("In transit (%d %s)", p.work.daysToArrival, dayName)
	case p.work.status == WorkInProgress:
		return "Being worked on"
	case p.work.status == WorkReserved && p.work.purpose == PurposeRefit:
		return "Reserved for Refit"
	case p.work.status == WorkReserved:
		return "Reserved for Repair"
	case p.kind == KindOmniPod:
		return "Empty"
	case p.kind == KindMissing:
		return "Missing"
	case p.condition == ConditionDamaged:
		return "Damaged"
	default:
		return "Good"
	}
}

// IsSamePartType is the fungibility rule used by the warehouse matcher: two
// parts are interchangeable when they share variant kind, catalog identity
// and the scaling attributes, regardless of id or accumulated wear. Pods
// match on their contained equipment type.
func (p *Part) IsSamePartType(other *Part) bool {
	if other == nil || p.kind != other.kind {
		return false
	}
	if p.kind == KindOmniPod {
		return p.podType.IsSamePartType(other.podType)
	}
	return p.catalogKey == other.catalogKey &&
		p.tonnage == other.tonnage &&
		p.subRating == other.subRating &&
		p.podded == other.podded
}

// Clone returns a fresh quantity-1 copy of the part with a new identity,
// uninstalled and idle. Used for pod templates and stack splitting.
func (p *Part) Clone() *Part {
	clone := *p
	clone.id = uuid.NewString()
	clone.quantity = 1
	clone.unitID = ""
	clone.slot = UnslottedLocation
	clone.work = workState{status: WorkIdle}
	if p.podType != nil {
		clone.podType = p.podType.Clone()
	}
	return &clone
}

// Installation

// InstallOn records the reserved-slot back-reference. The unit owns the
// part; this is a relation, not an ownership transfer.
func (p *Part) InstallOn(unitID string, slot int) error {
	if p.kind == KindOmniPod {
		return fmt.Errorf("omni pods are warehouse-only and cannot be installed")
	}
	if p.quantity > 1 {
		return &ErrStackedMutation{PartID: p.id, Quantity: p.quantity}
	}
	p.unitID = unitID
	p.slot = slot
	return nil
}

// Uninstall clears the slot back-reference, returning the part to an
// unattached state.
func (p *Part) Uninstall() {
	p.unitID = ""
	p.slot = UnslottedLocation
}

// MarkDamaged degrades the part condition.
func (p *Part) MarkDamaged() {
	if p.kind != KindOmniPod && p.kind != KindMissing {
		p.condition = ConditionDamaged
	}
}

// SetArmorPoints adjusts the current armor allocation, clamped to [0, total].
func (p *Part) SetArmorPoints(points int) {
	if p.kind != KindArmor {
		return
	}
	p.armorPoints = utils.Min(utils.Max(points, 0), p.armorTotal)
	if p.armorPoints < p.armorTotal {
		p.condition = ConditionDamaged
	} else {
		p.condition = ConditionGood
	}
}

// SetShotsNeeded records how many shots an ammo bin must reload.
func (p *Part) SetShotsNeeded(shots int) {
	if p.kind != KindAmmoBin {
		return
	}
	p.shotsNeeded = utils.Max(shots, 0)
	if p.shotsNeeded > 0 {
		p.condition = ConditionDamaged
	} else {
		p.condition = ConditionGood
	}
}

// Work-state transitions

// Reserve claims the part for a refit kit or a pending replacement.
// Reservations are exclusive: a part already reserved or being worked on is
// rejected, never overwritten.
func (p *Part) Reserve(purpose WorkPurpose) error {
	if p.work.status != WorkIdle {
		return &ErrInvalidWorkTransition{PartID: p.id, From: p.work.status, To: WorkReserved}
	}
	p.work.status = WorkReserved
	p.work.purpose = purpose
	return nil
}

// ClearReservation releases a reservation without completing it.
func (p *Part) ClearReservation() {
	if p.work.status == WorkReserved {
		p.work.status = WorkIdle
		p.work.purpose = PurposeNone
	}
}

// StartWork begins a technician's work session. Warehouse parts cannot be
// worked on, with the omni pod exception (pods are fixed in stock).
func (p *Part) StartWork(techID string) error {
	if p.work.status != WorkIdle && p.work.status != WorkReserved {
		return &ErrInvalidWorkTransition{PartID: p.id, From: p.work.status, To: WorkInProgress}
	}
	if !p.Installed() && p.kind != KindOmniPod && p.kind != KindMissing {
		return fmt.Errorf("part %s is in the warehouse and cannot be worked on", p.id)
	}
	p.work.status = WorkInProgress
	p.work.techID = techID
	return nil
}

// AccrueTime adds a work session's minutes toward the current job.
func (p *Part) AccrueTime(minutes, overtime int) {
	p.work.timeSpent += minutes
	p.work.overtime += overtime
}

// ResetWork clears all maintenance bookkeeping back to idle.
func (p *Part) ResetWork() {
	p.work = workState{status: WorkIdle}
}

// MarkInTransit places the part in the delivery pipeline.
func (p *Part) MarkInTransit(days int) {
	p.work = workState{status: WorkAwaitingArrival, daysToArrival: utils.Max(days, 0)}
	if p.work.daysToArrival == 0 {
		p.work.status = WorkIdle
	}
}

// AdvanceArrival decrements the days-to-arrival counter exactly once,
// floor-clamped at zero; at zero the part becomes available stock.
func (p *Part) AdvanceArrival() {
	if p.work.status != WorkAwaitingArrival {
		return
	}
	if p.work.daysToArrival > 0 {
		p.work.daysToArrival--
	}
	if p.work.daysToArrival == 0 {
		p.work = workState{status: WorkIdle}
	}
}

// SetQuantity is used by the warehouse for stack bookkeeping. Stacking is
// only legal for undamaged idle spares.
func (p *Part) SetQuantity(q int) error {
	if q < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	if q > 1 && (p.condition != ConditionGood || p.work.status != WorkIdle || p.Installed()) {
		return &ErrStackedMutation{PartID: p.id, Quantity: q}
	}
	p.quantity = q
	return nil
}
