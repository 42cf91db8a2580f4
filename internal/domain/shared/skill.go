package shared

import "fmt"

// Skill represents a technician proficiency tier. Repair checks are rolled
// against a part's required skill; every failed attempt escalates the
// requirement by one tier until it passes SkillElite and the part is lost.
type Skill int

const (
	SkillGreen Skill = iota
	SkillRegular
	SkillVeteran
	SkillElite
)

// MaxSkill is the escalation ceiling. A required skill strictly above this
// destroys the part on the next failure.
const MaxSkill = SkillElite

var skillNames = map[Skill]string{
	SkillGreen:   "Green",
	SkillRegular: "Regular",
	SkillVeteran: "Veteran",
	SkillElite:   "Elite",
}

func (s Skill) String() string {
	if name, ok := skillNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Skill(%d)", int(s))
}

// Valid reports whether the skill is one of the defined tiers.
func (s Skill) Valid() bool {
	_, ok := skillNames[s]
	return ok
}

// ParseSkill converts a tier name to a Skill.
func ParseSkill(name string) (Skill, error) {
	for skill, n := range skillNames {
		if n == name {
			return skill, nil
		}
	}
	return 0, fmt.Errorf("unknown skill tier: %q", name)
}
