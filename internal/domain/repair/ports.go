package repair

import "github.com/ewynne/mechbay-go/internal/domain/shared"

// SkillCheck resolves a technician's proficiency roll. The roll mechanics
// (dice, target numbers, campaign options) are an external collaborator;
// the resolver only consumes the pass/fail outcome, which keeps daily ticks
// reproducible given a fixed roll sequence.
type SkillCheck interface {
	Roll(techSkill shared.Skill, requiredSkill shared.Skill, difficulty int) bool
}

// SkillCheckFunc adapts a plain function to the SkillCheck interface.
type SkillCheckFunc func(techSkill, requiredSkill shared.Skill, difficulty int) bool

func (f SkillCheckFunc) Roll(techSkill, requiredSkill shared.Skill, difficulty int) bool {
	return f(techSkill, requiredSkill, difficulty)
}
