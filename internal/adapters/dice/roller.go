package dice

import (
	"math/rand"
	"sync"
	"time"

	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

// baseTarget is the 2d6 target number for a tech working at exactly the
// required skill tier on a difficulty-1 job.
const baseTarget = 7

// Roller resolves skill checks with a 2d6 roll against a target number
// built from the skill gap and the job difficulty.
type Roller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller creates a roller. Seed zero means a time-based seed; any other
// seed makes the roll sequence reproducible.
func NewRoller(seed int64) *Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// Roll reports whether the check passes. Higher required skill raises the
// target, higher tech skill lowers it, and difficulty above 1 adds on top.
func (r *Roller) Roll(techSkill, requiredSkill shared.Skill, difficulty int) bool {
	target := baseTarget + int(requiredSkill) - int(techSkill)
	if difficulty > 1 {
		target += difficulty - 1
	}

	r.mu.Lock()
	roll := r.rng.Intn(6) + r.rng.Intn(6) + 2
	r.mu.Unlock()
	return roll >= target
}
