package unit

import (
	"fmt"

	"github.com/ewynne/mechbay-go/internal/domain/parts"
)

// Snapshot is the plain field set used to round-trip a unit through the
// persistence boundary. Installed parts are persisted separately and
// reattached on load.
type Snapshot struct {
	ID       string
	Name     string
	Tonnage  float64
	Deployed bool
	Salvage  bool
	RefitID  string
	Slots    []Slot
}

// ToSnapshot exports the unit for persistence.
func (u *Unit) ToSnapshot() Snapshot {
	slots := make([]Slot, len(u.slots))
	copy(slots, u.slots)
	return Snapshot{
		ID:       u.id,
		Name:     u.name,
		Tonnage:  u.tonnage,
		Deployed: u.deployed,
		Salvage:  u.salvage,
		RefitID:  u.refitID,
		Slots:    slots,
	}
}

// FromSnapshot reconstructs a unit and reattaches its installed parts.
// Repository use only.
func FromSnapshot(snap Snapshot, installed []*parts.Part) (*Unit, error) {
	if snap.ID == "" {
		return nil, fmt.Errorf("unit snapshot missing id")
	}
	slots := make([]Slot, len(snap.Slots))
	copy(slots, snap.Slots)

	u := &Unit{
		id:       snap.ID,
		name:     snap.Name,
		tonnage:  snap.Tonnage,
		deployed: snap.Deployed,
		salvage:  snap.Salvage,
		refitID:  snap.RefitID,
		slots:    slots,
	}
	for _, p := range installed {
		if p.UnitID() != snap.ID {
			return nil, fmt.Errorf("part %s belongs to unit %s, not %s", p.ID(), p.UnitID(), snap.ID)
		}
		u.parts = append(u.parts, p)
	}
	return u, nil
}
