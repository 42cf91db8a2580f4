package parts

import (
	"fmt"

	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

// Snapshot is the plain, ordered field set used to round-trip a part through
// the persistence boundary. Every entity attribute appears with a stable
// identifier so serialization is lossless.
type Snapshot struct {
	ID            string
	Kind          Kind
	CatalogKey    string
	Name          string
	Tonnage       float64
	SubRating     int
	Quantity      int
	UnitID        string
	Slot          int
	Condition     Condition
	WorkStatus    WorkStatus
	Purpose       WorkPurpose
	TechID        string
	TimeSpent     int
	Overtime      int
	DaysToArrival int
	RequiredSkill shared.Skill
	Podded        bool
	PodType       *Snapshot
	ArmorPoints   int
	ArmorTotal    int
	ShotsNeeded   int
}

// ToSnapshot exports the part for persistence.
func (p *Part) ToSnapshot() Snapshot {
	snap := Snapshot{
		ID:            p.id,
		Kind:          p.kind,
		CatalogKey:    p.catalogKey,
		Name:          p.name,
		Tonnage:       p.tonnage,
		SubRating:     p.subRating,
		Quantity:      p.quantity,
		UnitID:        p.unitID,
		Slot:          p.slot,
		Condition:     p.condition,
		WorkStatus:    p.work.status,
		Purpose:       p.work.purpose,
		TechID:        p.work.techID,
		TimeSpent:     p.work.timeSpent,
		Overtime:      p.work.overtime,
		DaysToArrival: p.work.daysToArrival,
		RequiredSkill: p.required,
		Podded:        p.podded,
		ArmorPoints:   p.armorPoints,
		ArmorTotal:    p.armorTotal,
		ShotsNeeded:   p.shotsNeeded,
	}
	if p.podType != nil {
		pod := p.podType.ToSnapshot()
		snap.PodType = &pod
	}
	return snap
}

// FromSnapshot reconstructs a part from persisted data. This should only be
// used by repositories, not during normal operation.
func FromSnapshot(snap Snapshot) (*Part, error) {
	if snap.ID == "" {
		return nil, fmt.Errorf("part snapshot missing id")
	}
	if snap.Kind == KindOmniPod && snap.PodType == nil {
		return nil, fmt.Errorf("omni pod snapshot %s missing pod type", snap.ID)
	}

	p := &Part{
		id:          snap.ID,
		kind:        snap.Kind,
		catalogKey:  snap.CatalogKey,
		name:        snap.Name,
		tonnage:     snap.Tonnage,
		subRating:   snap.SubRating,
		quantity:    snap.Quantity,
		unitID:      snap.UnitID,
		slot:        snap.Slot,
		condition:   snap.Condition,
		required:    snap.RequiredSkill,
		podded:      snap.Podded,
		armorPoints: snap.ArmorPoints,
		armorTotal:  snap.ArmorTotal,
		shotsNeeded: snap.ShotsNeeded,
		work: workState{
			status:        snap.WorkStatus,
			purpose:       snap.Purpose,
			techID:        snap.TechID,
			timeSpent:     snap.TimeSpent,
			overtime:      snap.Overtime,
			daysToArrival: snap.DaysToArrival,
		},
	}
	if snap.PodType != nil {
		pod, err := FromSnapshot(*snap.PodType)
		if err != nil {
			return nil, err
		}
		p.podType = pod
	}
	return p, nil
}
