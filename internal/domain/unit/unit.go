package unit

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/ewynne/mechbay-go/internal/domain/parts"
)

// Slot is one position in a unit's expected configuration: which part design
// belongs there and how it scales. DependsOn models concealed structure: a
// slot is only derivable once the slot it depends on holds a present,
// non-missing part. Destroying a structural slot therefore hides the damage
// behind it until the structure is replaced.
type Slot struct {
	Index       int
	Location    int
	CatalogKey  string
	SubRating   int
	ArmorPoints int // armor slots only: full point allocation
	Structural  bool
	DependsOn   int // slot index, NoDependency for none
	Destroyed   bool
}

// NoDependency marks a slot with no structural parent.
const NoDependency = -1

// Unit is a campaign unit: an ordered collection of installed part entities
// laid over a blueprint of slots. The unit exclusively owns its installed
// parts by slot index; uninstalled parts belong to the warehouse.
type Unit struct {
	id       string
	name     string
	tonnage  float64
	deployed bool
	salvage  bool
	slots    []Slot
	parts    []*parts.Part
	refitID  string
}

// New creates a unit from its blueprint. Slots must be indexed contiguously
// from zero and dependencies must reference earlier-defined slots.
func New(name string, tonnage float64, slots []Slot) (*Unit, error) {
	if name == "" {
		return nil, fmt.Errorf("unit name cannot be empty")
	}
	if tonnage <= 0 {
		return nil, fmt.Errorf("unit tonnage must be positive")
	}
	blueprint := make([]Slot, len(slots))
	copy(blueprint, slots)
	for i, s := range blueprint {
		if s.Index != i {
			return nil, fmt.Errorf("slot %d declared with index %d", i, s.Index)
		}
		if s.DependsOn != NoDependency && (s.DependsOn < 0 || s.DependsOn >= len(blueprint)) {
			return nil, fmt.Errorf("slot %d depends on unknown slot %d", i, s.DependsOn)
		}
		if s.CatalogKey == "" {
			return nil, fmt.Errorf("slot %d has no catalog key", i)
		}
	}
	return &Unit{
		id:      uuid.NewString(),
		name:    name,
		tonnage: tonnage,
		slots:   blueprint,
	}, nil
}

// Getters

func (u *Unit) ID() string       { return u.id }
func (u *Unit) Name() string     { return u.name }
func (u *Unit) Tonnage() float64 { return u.tonnage }
func (u *Unit) Deployed() bool   { return u.deployed }
func (u *Unit) Salvage() bool    { return u.salvage }
func (u *Unit) RefitID() string  { return u.refitID }

// Available reports whether maintenance can touch the unit.
func (u *Unit) Available() bool { return !u.deployed }

func (u *Unit) SetDeployed(deployed bool) { u.deployed = deployed }
func (u *Unit) SetSalvage(salvage bool)   { u.salvage = salvage }
func (u *Unit) SetRefitID(id string)      { u.refitID = id }

// Refitting reports whether a refit project currently holds the unit.
func (u *Unit) Refitting() bool { return u.refitID != "" }

// Slots returns a copy of the blueprint.
func (u *Unit) Slots() []Slot {
	slots := make([]Slot, len(u.slots))
	copy(slots, u.slots)
	return slots
}

// Parts returns the installed parts ordered by slot index.
func (u *Unit) Parts() []*parts.Part {
	result := make([]*parts.Part, len(u.parts))
	copy(result, u.parts)
	sort.Slice(result, func(i, j int) bool { return result[i].Slot() < result[j].Slot() })
	return result
}

// PartAt returns the part occupying a slot, or nil.
func (u *Unit) PartAt(slot int) *parts.Part {
	for _, p := range u.parts {
		if p.Slot() == slot {
			return p
		}
	}
	return nil
}

// Part returns an installed part by id.
func (u *Unit) Part(partID string) (*parts.Part, error) {
	for _, p := range u.parts {
		if p.ID() == partID {
			return p, nil
		}
	}
	return nil, &ErrPartNotOnUnit{UnitID: u.id, PartID: partID}
}

// NeedsFixing returns the installed parts with outstanding maintenance, in
// slot order.
func (u *Unit) NeedsFixing() []*parts.Part {
	var result []*parts.Part
	for _, p := range u.Parts() {
		if p.NeedsFixing() {
			result = append(result, p)
		}
	}
	return result
}

// Install places a part into an empty blueprint slot.
func (u *Unit) Install(p *parts.Part, slot int) error {
	if slot < 0 || slot >= len(u.slots) {
		return &ErrUnknownSlot{UnitID: u.id, Slot: slot}
	}
	if u.PartAt(slot) != nil {
		return &ErrSlotOccupied{UnitID: u.id, Slot: slot}
	}
	if err := p.InstallOn(u.id, slot); err != nil {
		return err
	}
	u.parts = append(u.parts, p)
	return nil
}

// Remove detaches a part from the unit and returns it. The slot's physical
// state is untouched; the caller decides whether the removal was salvage or
// scrap.
func (u *Unit) Remove(partID string) (*parts.Part, error) {
	for i, p := range u.parts {
		if p.ID() == partID {
			u.parts = append(u.parts[:i], u.parts[i+1:]...)
			p.Uninstall()
			return p, nil
		}
	}
	return nil, &ErrPartNotOnUnit{UnitID: u.id, PartID: partID}
}

// slotDerivable reports whether the slot's contents are reachable: either it
// has no structural parent, or the parent slot holds a present, non-missing
// part. Concealed slots produce nothing until the structure above them is
// restored.
func (u *Unit) slotDerivable(s Slot) bool {
	if s.DependsOn == NoDependency {
		return true
	}
	parent := u.PartAt(s.DependsOn)
	return parent != nil && parent.Kind() != parts.KindMissing && parent.Present()
}

// DeriveParts re-derives the unit's part list from the blueprint: every
// derivable empty slot is materialized, as a good part when the slot is
// intact or as a missing placeholder when it was destroyed. Returns how many
// parts were created.
func (u *Unit) DeriveParts(cat parts.Catalog) (int, error) {
	created := 0
	for _, s := range u.slots {
		if u.PartAt(s.Index) != nil || !u.slotDerivable(s) {
			continue
		}
		spec, err := cat.Lookup(s.CatalogKey)
		if err != nil {
			return created, err
		}

		var p *parts.Part
		if s.Destroyed {
			p, err = parts.NewMissing(spec, u.tonnage, s.SubRating, u.id, s.Index)
			if err != nil {
				return created, err
			}
			u.parts = append(u.parts, p)
			created++
			continue
		}

		p, err = u.buildSlotPart(spec, s)
		if err != nil {
			return created, err
		}
		if err := u.Install(p, s.Index); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// buildSlotPart constructs a factory-fresh part for a blueprint slot.
func (u *Unit) buildSlotPart(spec parts.Spec, s Slot) (*parts.Part, error) {
	switch spec.Kind {
	case parts.KindArmor:
		points := s.ArmorPoints
		if points <= 0 {
			points = 1
		}
		return parts.NewArmor(spec, u.tonnage, points)
	case parts.KindAmmoBin:
		return parts.NewAmmoBin(spec, u.tonnage)
	case parts.KindHeatSink:
		return parts.NewHeatSink(spec)
	case parts.KindJumpJet:
		return parts.NewJumpJet(spec, u.tonnage)
	case parts.KindMASC:
		return parts.NewMASC(spec, u.tonnage, s.SubRating)
	case parts.KindEquipment:
		return parts.NewEquipment(spec, u.tonnage)
	default:
		return nil, fmt.Errorf("slot %d: cannot derive part of kind %s", s.Index, spec.Kind)
	}
}

// DestroySlot records structural damage: the installed part is removed
// permanently and the slot is marked destroyed, so derivation produces a
// missing placeholder for it.
func (u *Unit) DestroySlot(slot int) error {
	if slot < 0 || slot >= len(u.slots) {
		return &ErrUnknownSlot{UnitID: u.id, Slot: slot}
	}
	if p := u.PartAt(slot); p != nil {
		if _, err := u.Remove(p.ID()); err != nil {
			return err
		}
	}
	u.slots[slot].Destroyed = true
	return nil
}

// HealSlot clears the destroyed marker after a replacement is installed.
func (u *Unit) HealSlot(slot int) error {
	if slot < 0 || slot >= len(u.slots) {
		return &ErrUnknownSlot{UnitID: u.id, Slot: slot}
	}
	u.slots[slot].Destroyed = false
	return nil
}

// HealAllSlots is the discrete clear-all-critical-slots corrective action
// used by the bulk restore pass.
func (u *Unit) HealAllSlots() {
	for i := range u.slots {
		u.slots[i].Destroyed = false
	}
}

// ReplaceBlueprint commits a new configuration, detaching any parts whose
// slots no longer exist. A part survives only when the new slot calls for
// the same catalog design at the same sub-rating; a rating change (a MASC
// engine upgrade) vacates the slot for its replacement. Used by refit
// completion; returns detached parts.
func (u *Unit) ReplaceBlueprint(slots []Slot) []*parts.Part {
	blueprint := make([]Slot, len(slots))
	copy(blueprint, slots)
	u.slots = blueprint

	var detached []*parts.Part
	kept := u.parts[:0]
	for _, p := range u.parts {
		if p.Slot() >= 0 && p.Slot() < len(u.slots) &&
			u.slots[p.Slot()].CatalogKey == p.CatalogKey() &&
			u.slots[p.Slot()].SubRating == p.SubRating() {
			kept = append(kept, p)
			continue
		}
		p.Uninstall()
		detached = append(detached, p)
	}
	u.parts = kept
	return detached
}
