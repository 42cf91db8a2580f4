package repair

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

// DailyTimeBudget is a technician's shift: 8 hours of maintenance time.
const DailyTimeBudget = 480

// Tech is one member of the technician roster. The roster itself is
// supplied by the campaign driver each day; the engine only tracks how much
// of the shift a tech has spent and what they are working on.
type Tech struct {
	id             string
	name           string
	skill          shared.Skill
	dailyMinutes   int
	minutesUsed    int
	assignedPartID string
}

// NewTech creates a roster entry. A non-positive budget gets the standard
// shift.
func NewTech(name string, skill shared.Skill, dailyMinutes int) (*Tech, error) {
	if name == "" {
		return nil, fmt.Errorf("tech name cannot be empty")
	}
	if !skill.Valid() {
		return nil, fmt.Errorf("invalid skill tier %d", int(skill))
	}
	if dailyMinutes <= 0 {
		dailyMinutes = DailyTimeBudget
	}
	return &Tech{
		id:           uuid.NewString(),
		name:         name,
		skill:        skill,
		dailyMinutes: dailyMinutes,
	}, nil
}

func (t *Tech) ID() string           { return t.id }
func (t *Tech) Name() string         { return t.name }
func (t *Tech) Skill() shared.Skill  { return t.skill }
func (t *Tech) DailyMinutes() int    { return t.dailyMinutes }
func (t *Tech) MinutesUsed() int     { return t.minutesUsed }
func (t *Tech) AssignedPart() string { return t.assignedPartID }

// AvailableMinutes returns what is left of today's shift.
func (t *Tech) AvailableMinutes() int {
	remaining := t.dailyMinutes - t.minutesUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// assign records the tech's single work session for the day.
func (t *Tech) assign(partID string) error {
	if t.assignedPartID != "" && t.assignedPartID != partID {
		return &ErrTechAlreadyAssigned{TechID: t.id, PartID: t.assignedPartID}
	}
	t.assignedPartID = partID
	return nil
}

// release clears the current assignment.
func (t *Tech) release() {
	t.assignedPartID = ""
}

// spend consumes shift minutes.
func (t *Tech) spend(minutes int) {
	t.minutesUsed += minutes
}

// ResetDay starts a fresh shift. Called once per daily tick.
func (t *Tech) ResetDay() {
	t.minutesUsed = 0
	t.assignedPartID = ""
}
