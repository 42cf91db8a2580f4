package shared

import "fmt"

// Era is a campaign technology era. Availability lookups are era-sensitive:
// the Star League and Succession Wars eras can force worst-case ratings for
// omni technology, and the Dark Age floors availability differently from the
// eras in between.
type Era string

const (
	EraStarLeague     Era = "STAR_LEAGUE"
	EraSuccessionWars Era = "SUCCESSION_WARS"
	EraClanInvasion   Era = "CLAN_INVASION"
	EraDarkAge        Era = "DARK_AGE"
)

// Valid reports whether the era is one of the defined campaign eras.
func (e Era) Valid() bool {
	switch e {
	case EraStarLeague, EraSuccessionWars, EraClanInvasion, EraDarkAge:
		return true
	}
	return false
}

// Rating is a tech or availability rating. RatingX marks extinct technology.
type Rating int

const (
	RatingA Rating = iota
	RatingB
	RatingC
	RatingD
	RatingE
	RatingX
)

var ratingNames = map[Rating]string{
	RatingA: "A",
	RatingB: "B",
	RatingC: "C",
	RatingD: "D",
	RatingE: "E",
	RatingX: "X",
}

func (r Rating) String() string {
	if name, ok := ratingNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// MaxRating returns the worse (harder to source) of two ratings.
func MaxRating(a, b Rating) Rating {
	if a > b {
		return a
	}
	return b
}

// TechBase identifies the manufacturing lineage of a part design.
type TechBase string

const (
	TechBaseInnerSphere TechBase = "INNER_SPHERE"
	TechBaseClan        TechBase = "CLAN"
)
