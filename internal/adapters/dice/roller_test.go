package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ewynne/mechbay-go/internal/adapters/dice"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

func TestRoller_SeededSequenceIsReproducible(t *testing.T) {
	// Arrange
	a := dice.NewRoller(42)
	b := dice.NewRoller(42)

	// Act / Assert
	for i := 0; i < 100; i++ {
		assert.Equal(t,
			a.Roll(shared.SkillRegular, shared.SkillRegular, 1),
			b.Roll(shared.SkillRegular, shared.SkillRegular, 1),
			"roll %d diverged", i)
	}
}

func TestRoller_SkillGapShiftsOdds(t *testing.T) {
	// Arrange
	const rolls = 2000
	expert := dice.NewRoller(7)
	novice := dice.NewRoller(7)

	expertWins, noviceWins := 0, 0

	// Act: same roll sequence, different skill gap
	for i := 0; i < rolls; i++ {
		if expert.Roll(shared.SkillElite, shared.SkillGreen, 1) {
			expertWins++
		}
		if novice.Roll(shared.SkillGreen, shared.SkillElite, 1) {
			noviceWins++
		}
	}

	// Assert: an elite tech on a green job dominates the reverse case
	assert.Greater(t, expertWins, noviceWins)
	// Target 4 on 2d6 passes most of the time
	assert.Greater(t, expertWins, rolls/2)
}

func TestRoller_DifficultyRaisesTarget(t *testing.T) {
	// Arrange
	const rolls = 2000
	easy := dice.NewRoller(11)
	hard := dice.NewRoller(11)

	easyWins, hardWins := 0, 0

	// Act
	for i := 0; i < rolls; i++ {
		if easy.Roll(shared.SkillRegular, shared.SkillRegular, 1) {
			easyWins++
		}
		if hard.Roll(shared.SkillRegular, shared.SkillRegular, 3) {
			hardWins++
		}
	}

	// Assert
	assert.Greater(t, easyWins, hardWins)
}

func TestRoller_ImpossibleTargetAlwaysFails(t *testing.T) {
	// Arrange: green tech, elite job, difficulty 5 means target 15 on 2d6
	roller := dice.NewRoller(3)

	// Act / Assert
	for i := 0; i < 50; i++ {
		assert.False(t, roller.Roll(shared.SkillGreen, shared.SkillElite, 5))
	}
}
