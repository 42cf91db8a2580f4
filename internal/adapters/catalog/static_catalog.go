package catalog

import (
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

// StaticCatalog is the built-in read-only part reference table. Times are
// minutes, prices are C-bills per unit (armor per point, ammo per reload).
type StaticCatalog struct {
	specs map[string]parts.Spec
}

// NewStaticCatalog creates a catalog with the reference part designs.
func NewStaticCatalog() *StaticCatalog {
	c := &StaticCatalog{specs: make(map[string]parts.Spec)}
	for _, spec := range referenceSpecs {
		c.specs[spec.Key] = spec
	}
	return c
}

// Lookup returns the spec for a catalog key.
func (c *StaticCatalog) Lookup(key string) (parts.Spec, error) {
	spec, ok := c.specs[key]
	if !ok {
		return parts.Spec{}, &parts.ErrUnknownPart{Key: key}
	}
	return spec, nil
}

// Keys returns every known catalog key.
func (c *StaticCatalog) Keys() []string {
	keys := make([]string, 0, len(c.specs))
	for key := range c.specs {
		keys = append(keys, key)
	}
	return keys
}

var referenceSpecs = []parts.Spec{
	{
		Key: "medium-laser", Name: "Medium Laser", Kind: parts.KindEquipment,
		BaseTimeMinutes: 60, ReplacementTimeMinutes: 120, Difficulty: 1,
		TechRating: shared.RatingC, Price: 40000, IntroYear: 2300,
		TechBase: shared.TechBaseInnerSphere,
		Availability: map[shared.Era]shared.Rating{
			shared.EraStarLeague:     shared.RatingC,
			shared.EraSuccessionWars: shared.RatingC,
			shared.EraClanInvasion:   shared.RatingC,
			shared.EraDarkAge:        shared.RatingB,
		},
	},
	{
		Key: "large-laser", Name: "Large Laser", Kind: parts.KindEquipment,
		BaseTimeMinutes: 100, ReplacementTimeMinutes: 180, Difficulty: 2,
		TechRating: shared.RatingC, Price: 100000, IntroYear: 2316,
		TechBase: shared.TechBaseInnerSphere,
		Availability: map[shared.Era]shared.Rating{
			shared.EraStarLeague:     shared.RatingC,
			shared.EraSuccessionWars: shared.RatingD,
			shared.EraClanInvasion:   shared.RatingC,
			shared.EraDarkAge:        shared.RatingC,
		},
	},
	{
		Key: "er-ppc-clan", Name: "ER PPC (Clan)", Kind: parts.KindEquipment,
		BaseTimeMinutes: 120, ReplacementTimeMinutes: 240, Difficulty: 3,
		TechRating: shared.RatingE, Price: 300000, IntroYear: 2826,
		TechBase: shared.TechBaseClan,
		Availability: map[shared.Era]shared.Rating{
			shared.EraStarLeague:     shared.RatingX,
			shared.EraSuccessionWars: shared.RatingE,
			shared.EraClanInvasion:   shared.RatingD,
			shared.EraDarkAge:        shared.RatingD,
		},
	},
	{
		Key: "heat-sink", Name: "Heat Sink", Kind: parts.KindHeatSink,
		BaseTimeMinutes: 90, ReplacementTimeMinutes: 90, Difficulty: 1,
		TechRating: shared.RatingA, Price: 2000, IntroYear: 2022,
		TechBase: shared.TechBaseInnerSphere,
		Availability: map[shared.Era]shared.Rating{
			shared.EraStarLeague:     shared.RatingA,
			shared.EraSuccessionWars: shared.RatingA,
			shared.EraClanInvasion:   shared.RatingA,
			shared.EraDarkAge:        shared.RatingA,
		},
	},
	{
		Key: "double-heat-sink", Name: "Double Heat Sink", Kind: parts.KindHeatSink,
		BaseTimeMinutes: 90, ReplacementTimeMinutes: 120, Difficulty: 2,
		TechRating: shared.RatingE, Price: 6000, IntroYear: 2567,
		TechBase: shared.TechBaseInnerSphere,
		Availability: map[shared.Era]shared.Rating{
			shared.EraStarLeague:     shared.RatingC,
			shared.EraSuccessionWars: shared.RatingE,
			shared.EraClanInvasion:   shared.RatingD,
			shared.EraDarkAge:        shared.RatingC,
		},
	},
	{
		Key: "jump-jet", Name: "Jump Jet", Kind: parts.KindJumpJet,
		BaseTimeMinutes: 60, ReplacementTimeMinutes: 90, Difficulty: 1,
		TechRating: shared.RatingC, Price: 50000, IntroYear: 2471,
		TechBase: shared.TechBaseInnerSphere,
		Availability: map[shared.Era]shared.Rating{
			shared.EraStarLeague:     shared.RatingB,
			shared.EraSuccessionWars: shared.RatingB,
			shared.EraClanInvasion:   shared.RatingB,
			shared.EraDarkAge:        shared.RatingB,
		},
	},
	{
		Key: "masc", Name: "MASC", Kind: parts.KindMASC,
		BaseTimeMinutes: 120, ReplacementTimeMinutes: 240, Difficulty: 3,
		TechRating: shared.RatingE, Price: 75000, IntroYear: 2740,
		TechBase: shared.TechBaseInnerSphere,
		Availability: map[shared.Era]shared.Rating{
			shared.EraStarLeague:     shared.RatingD,
			shared.EraSuccessionWars: shared.RatingE,
			shared.EraClanInvasion:   shared.RatingE,
			shared.EraDarkAge:        shared.RatingD,
		},
	},
	{
		Key: "ac5-ammo", Name: "AC/5 Ammo Bin", Kind: parts.KindAmmoBin,
		BaseTimeMinutes: 15, ReplacementTimeMinutes: 120, Difficulty: 1,
		TechRating: shared.RatingC, Price: 4500, IntroYear: 2250,
		TechBase: shared.TechBaseInnerSphere,
		Availability: map[shared.Era]shared.Rating{
			shared.EraStarLeague:     shared.RatingC,
			shared.EraSuccessionWars: shared.RatingC,
			shared.EraClanInvasion:   shared.RatingC,
			shared.EraDarkAge:        shared.RatingC,
		},
	},
	{
		Key: "standard-armor", Name: "Standard Armor", Kind: parts.KindArmor,
		BaseTimeMinutes: 5, ReplacementTimeMinutes: 5, Difficulty: 1,
		TechRating: shared.RatingA, Price: 10000, IntroYear: 2470,
		TechBase: shared.TechBaseInnerSphere,
		Availability: map[shared.Era]shared.Rating{
			shared.EraStarLeague:     shared.RatingA,
			shared.EraSuccessionWars: shared.RatingA,
			shared.EraClanInvasion:   shared.RatingA,
			shared.EraDarkAge:        shared.RatingA,
		},
	},
	{
		Key: "omni-pod", Name: "OmniPod", Kind: parts.KindOmniPod,
		BaseTimeMinutes: 30, ReplacementTimeMinutes: 30, Difficulty: 0,
		TechRating: shared.RatingE, Price: 0, IntroYear: 2850,
		TechBase: shared.TechBaseClan,
		Availability: map[shared.Era]shared.Rating{
			shared.EraStarLeague:     shared.RatingX,
			shared.EraSuccessionWars: shared.RatingE,
			shared.EraClanInvasion:   shared.RatingE,
			shared.EraDarkAge:        shared.RatingD,
		},
	},
}
