package repair

import "github.com/ewynne/mechbay-go/internal/domain/shared"

// TechSnapshot is the persistence view of a roster entry.
type TechSnapshot struct {
	ID             string
	Name           string
	Skill          shared.Skill
	DailyMinutes   int
	MinutesUsed    int
	AssignedPartID string
}

// ToSnapshot exports the tech state for persistence.
func (t *Tech) ToSnapshot() TechSnapshot {
	return TechSnapshot{
		ID:             t.id,
		Name:           t.name,
		Skill:          t.skill,
		DailyMinutes:   t.dailyMinutes,
		MinutesUsed:    t.minutesUsed,
		AssignedPartID: t.assignedPartID,
	}
}

// TechFromSnapshot rebuilds a roster entry from persisted state. Intended
// for repository use only.
func TechFromSnapshot(snap TechSnapshot) *Tech {
	return &Tech{
		id:             snap.ID,
		name:           snap.Name,
		skill:          snap.Skill,
		dailyMinutes:   snap.DailyMinutes,
		minutesUsed:    snap.MinutesUsed,
		assignedPartID: snap.AssignedPartID,
	}
}
