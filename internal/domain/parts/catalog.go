package parts

import (
	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

// Spec is the static reference data for one part design: repair and
// replacement times, difficulty, tech rating, price and era availability.
// Specs are read-only; the engine never mutates catalog data.
type Spec struct {
	Key                    string
	Name                   string
	Kind                   Kind
	BaseTimeMinutes        int // routine repair of a damaged part
	ReplacementTimeMinutes int // installing a replacement for a missing part
	Difficulty             int // work-time multiplier and roll modifier, >= 1
	TechRating             shared.Rating
	Price                  int64 // C-bills per unit
	IntroYear              int
	TechBase               shared.TechBase
	Availability           map[shared.Era]shared.Rating
}

// AvailabilityIn returns the catalog availability for an era, defaulting to
// the worst defined rating when the era has no explicit entry.
func (s Spec) AvailabilityIn(era shared.Era) shared.Rating {
	if rating, ok := s.Availability[era]; ok {
		return rating
	}
	worst := shared.RatingA
	for _, rating := range s.Availability {
		worst = shared.MaxRating(worst, rating)
	}
	return worst
}

// Catalog is the read-only part reference data source. Implementations live
// outside the domain (static tables, data files); the engine only looks up.
type Catalog interface {
	// Lookup returns the spec for a catalog key, or ErrUnknownPart.
	Lookup(key string) (Spec, error)
}
