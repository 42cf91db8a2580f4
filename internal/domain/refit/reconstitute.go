package refit

import (
	"github.com/ewynne/mechbay-go/internal/domain/unit"
	"github.com/ewynne/mechbay-go/internal/domain/warehouse"
)

// KitSnapshot binds a claimed warehouse part to its target slot.
type KitSnapshot struct {
	PartID string
	Slot   int
}

// Snapshot is the persistence view of a refit project. Kit parts are
// referenced by id; the entities themselves live in the warehouse while
// claimed.
type Snapshot struct {
	ID                  string
	UnitID              string
	Status              Status
	Refurbishment       bool
	CustomJob           bool
	TimeRequiredMinutes int
	DaysElapsed         int
	WorkMinutes         int
	Shortfall           []string
	Removals            []string
	Target              []unit.Slot
	Kit                 []KitSnapshot
}

// ToSnapshot exports the refit state for persistence.
func (r *Refit) ToSnapshot() Snapshot {
	snap := Snapshot{
		ID:                  r.id,
		UnitID:              r.unit.ID(),
		Status:              r.status,
		Refurbishment:       r.refurbishment,
		CustomJob:           r.customJob,
		TimeRequiredMinutes: r.timeRequired,
		DaysElapsed:         r.daysElapsed,
		WorkMinutes:         r.workMinutes,
		Shortfall:           append([]string(nil), r.shortfall...),
		Removals:            append([]string(nil), r.removals...),
		Target:              r.Target(),
	}
	for _, item := range r.kit {
		snap.Kit = append(snap.Kit, KitSnapshot{PartID: item.part.ID(), Slot: item.slot})
	}
	return snap
}

// FromSnapshot rebuilds a refit project from persisted state, resolving kit
// references against current warehouse stock. Intended for repository use
// only.
func FromSnapshot(snap Snapshot, u *unit.Unit, wh *warehouse.Warehouse) (*Refit, error) {
	r := &Refit{
		id:            snap.ID,
		unit:          u,
		refurbishment: snap.Refurbishment,
		customJob:     snap.CustomJob,
		status:        snap.Status,
		timeRequired:  snap.TimeRequiredMinutes,
		daysElapsed:   snap.DaysElapsed,
		workMinutes:   snap.WorkMinutes,
		shortfall:     append([]string(nil), snap.Shortfall...),
		removals:      append([]string(nil), snap.Removals...),
	}
	r.target = make([]unit.Slot, len(snap.Target))
	copy(r.target, snap.Target)

	for _, k := range snap.Kit {
		p, err := wh.Get(k.PartID)
		if err != nil {
			return nil, err
		}
		r.kit = append(r.kit, kitItem{part: p, slot: k.Slot})
	}
	return r, nil
}
