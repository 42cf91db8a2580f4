package parts_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewynne/mechbay-go/internal/adapters/catalog"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

// fakeSpares is a minimal SpareSource for exercising Fix without a full
// warehouse.
type fakeSpares struct {
	spares []*parts.Part
	added  []*parts.Part
}

func (f *fakeSpares) FindMatchingSpare(template *parts.Part) *parts.Part {
	for _, p := range f.spares {
		if p.IsSamePartType(template) {
			return p
		}
	}
	return nil
}

func (f *fakeSpares) AddPart(p *parts.Part, quantityDelta int) *parts.Part {
	f.added = append(f.added, p)
	return p
}

func (f *fakeSpares) DecrementQuantity(id string) error {
	for i, p := range f.spares {
		if p.ID() == id {
			if p.Quantity() <= 1 {
				f.spares = append(f.spares[:i], f.spares[i+1:]...)
				return nil
			}
			return p.SetQuantity(p.Quantity() - 1)
		}
	}
	return fmt.Errorf("unknown spare %s", id)
}

func newClanPod(t *testing.T, tonnage float64) *parts.Part {
	t.Helper()
	ppc, err := parts.NewEquipment(mustSpec(t, "er-ppc-clan"), tonnage)
	require.NoError(t, err)
	pod, err := parts.NewOmniPod(ppc)
	require.NoError(t, err)
	return pod
}

func TestBaseTime_PerKind(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	repairJob := newLaser(t, 50)
	replacement, err := parts.NewMissing(mustSpec(t, "medium-laser"), 50, 0, "unit-1", 0)
	require.NoError(t, err)
	pod := newClanPod(t, 75)

	// Act / Assert
	base, err := repairJob.BaseTime(cat)
	require.NoError(t, err)
	assert.Equal(t, 60, base)

	base, err = replacement.BaseTime(cat)
	require.NoError(t, err)
	assert.Equal(t, 120, base)

	// Pod time is the contained equipment's replacement time
	base, err = pod.BaseTime(cat)
	require.NoError(t, err)
	assert.Equal(t, 240, base)
}

func TestDifficulty_PodSurcharge(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	pod := newClanPod(t, 75)

	// Act
	diff, err := pod.Difficulty(cat)

	// Assert: contained equipment difficulty 3 plus the Class-D modifier
	require.NoError(t, err)
	assert.Equal(t, 5, diff)
}

func TestWorkTarget_ScalesByDifficulty(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	laser, err := parts.NewEquipment(mustSpec(t, "large-laser"), 60)
	require.NoError(t, err)
	pod := newClanPod(t, 75)

	// Act / Assert
	target, err := laser.WorkTarget(cat)
	require.NoError(t, err)
	assert.Equal(t, 200, target)

	target, err = pod.WorkTarget(cat)
	require.NoError(t, err)
	assert.Equal(t, 1200, target)
}

func TestRemainingTime_NeverNegative(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	p := newLaser(t, 50)
	require.NoError(t, p.InstallOn("unit-1", 0))
	require.NoError(t, p.StartWork("tech-1"))
	p.AccrueTime(500, 0)

	// Act
	remaining, err := p.RemainingTime(cat)

	// Assert
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestTechRating_PodAlwaysE(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	laser := newLaser(t, 50)
	pod := newClanPod(t, 75)

	// Act / Assert
	rating, err := laser.TechRating(cat)
	require.NoError(t, err)
	assert.Equal(t, shared.RatingC, rating)

	rating, err = pod.TechRating(cat)
	require.NoError(t, err)
	assert.Equal(t, shared.RatingE, rating)
}

func TestAvailability_PodEraBreakpoints(t *testing.T) {
	// Arrange: clan contents rate X/E/D/D across the eras
	cat := catalog.NewStaticCatalog()
	pod := newClanPod(t, 75)

	cases := []struct {
		era  shared.Era
		want shared.Rating
	}{
		{shared.EraStarLeague, shared.RatingX},
		{shared.EraSuccessionWars, shared.RatingE},
		{shared.EraClanInvasion, shared.RatingE},
		{shared.EraDarkAge, shared.RatingD},
	}

	for _, tc := range cases {
		// Act
		rating, err := pod.Availability(cat, tc.era)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, tc.want, rating, "era %s", tc.era)
	}
}

func TestAvailability_InnerSpherePodExtinctThroughSuccessionWars(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	laser := newLaser(t, 50)
	pod, err := parts.NewOmniPod(laser)
	require.NoError(t, err)

	// Act
	rating, err := pod.Availability(cat, shared.EraSuccessionWars)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, shared.RatingX, rating)
}

func TestIntroYear_PodFloorsAtOmniIntroduction(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	clanPod := newClanPod(t, 75)
	isPod, err := parts.NewOmniPod(newLaser(t, 50))
	require.NoError(t, err)

	// Act / Assert: clan ER PPC is from 2826, floored at 2850
	year, err := clanPod.IntroYear(cat)
	require.NoError(t, err)
	assert.Equal(t, 2850, year)

	// Medium laser is from 2300, floored at the IS omni introduction
	year, err = isPod.IntroYear(cat)
	require.NoError(t, err)
	assert.Equal(t, 3052, year)
}

func TestStickerPrice_PodIsFifthOfContentsRoundedUp(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	pod := newClanPod(t, 75)

	// Act
	price, err := pod.StickerPrice(cat)

	// Assert: 300000 / 5
	require.NoError(t, err)
	assert.Equal(t, int64(60000), price)
}

func TestFix_OmniPodConsumesSpareAndAddsPoddedInstance(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	pod := newClanPod(t, 75)

	spare, err := parts.NewEquipment(mustSpec(t, "er-ppc-clan"), 75)
	require.NoError(t, err)
	require.NoError(t, spare.SetQuantity(3))
	src := &fakeSpares{spares: []*parts.Part{spare}}

	// Act
	err = pod.Fix(cat, src)

	// Assert
	require.NoError(t, err)
	require.Len(t, src.added, 1)
	assert.True(t, src.added[0].Podded())
	assert.Equal(t, "er-ppc-clan", src.added[0].CatalogKey())
	assert.Equal(t, 2, spare.Quantity())
	// The pod shell itself stays empty
	assert.Equal(t, parts.KindOmniPod, pod.Kind())
}

func TestFix_OmniPodWithoutSpareIsNoOp(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	pod := newClanPod(t, 75)
	src := &fakeSpares{}

	// Act
	err := pod.Fix(cat, src)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, src.added)
}

func TestFix_MissingBecomesReplacedPart(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	missing, err := parts.NewMissing(mustSpec(t, "medium-laser"), 50, 0, "unit-1", 2)
	require.NoError(t, err)

	spare := newLaser(t, 50)
	src := &fakeSpares{spares: []*parts.Part{spare}}

	// Act
	err = missing.Fix(cat, src)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, parts.KindEquipment, missing.Kind())
	assert.Equal(t, parts.ConditionGood, missing.Condition())
	assert.Empty(t, src.spares)
}

func TestFix_MissingWithoutSpareFails(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	missing, err := parts.NewMissing(mustSpec(t, "medium-laser"), 50, 0, "unit-1", 2)
	require.NoError(t, err)

	// Act
	err = missing.Fix(cat, &fakeSpares{})

	// Assert
	var notAvailable *parts.ErrNoReplacementAvailable
	assert.ErrorAs(t, err, &notAvailable)
	assert.Equal(t, parts.KindMissing, missing.Kind())
}

func TestFix_ArmorAndAmmoRestoreInPlace(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	armor, err := parts.NewArmor(mustSpec(t, "standard-armor"), 9.5, 100)
	require.NoError(t, err)
	armor.SetArmorPoints(12)

	ammo, err := parts.NewAmmoBin(mustSpec(t, "ac5-ammo"), 1)
	require.NoError(t, err)
	ammo.SetShotsNeeded(15)

	// Act
	require.NoError(t, armor.Fix(cat, &fakeSpares{}))
	require.NoError(t, ammo.Fix(cat, &fakeSpares{}))

	// Assert
	assert.Equal(t, 100, armor.ArmorPoints())
	assert.Zero(t, ammo.ShotsNeeded())
	assert.False(t, armor.NeedsFixing())
	assert.False(t, ammo.NeedsFixing())
}

func TestRestoreInPlace_RejectsMissing(t *testing.T) {
	// Arrange
	missing, err := parts.NewMissing(mustSpec(t, "medium-laser"), 50, 0, "unit-1", 0)
	require.NoError(t, err)

	// Act
	err = missing.RestoreInPlace()

	// Assert
	var notFixable *parts.ErrNotFixableInPlace
	assert.ErrorAs(t, err, &notFixable)
}

func TestFail_EscalatesRequiredSkill(t *testing.T) {
	// Arrange
	p := newLaser(t, 50)

	// Act
	next, outcome := p.Fail(shared.SkillGreen)

	// Assert
	assert.False(t, outcome.Destroyed)
	assert.Equal(t, shared.SkillRegular, outcome.RequiredSkill)
	assert.Equal(t, shared.SkillRegular, next.RequiredSkill())
	assert.Zero(t, next.TimeSpent())
	assert.Contains(t, outcome.Message, "next attempt requires Regular")
}

func TestFail_FourthFailureDestroys(t *testing.T) {
	// Arrange
	p := *newLaser(t, 50)

	// Act: escalate Green -> Regular -> Veteran -> Elite -> destroyed
	var outcome parts.FailOutcome
	for i := 0; i < 4; i++ {
		assert.False(t, outcome.Destroyed, "destroyed too early on failure %d", i)
		p, outcome = p.Fail(p.RequiredSkill())
	}

	// Assert
	assert.True(t, outcome.Destroyed)
	assert.Contains(t, outcome.Message, "destroyed")
}

func TestEquivalentTemplate_MissingYieldsGoodPart(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	missing, err := parts.NewMissing(mustSpec(t, "medium-laser"), 50, 0, "unit-1", 0)
	require.NoError(t, err)

	// Act
	template, err := missing.EquivalentTemplate(cat)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, parts.KindEquipment, template.Kind())
	assert.Equal(t, parts.ConditionGood, template.Condition())
	assert.False(t, template.Installed())
}

func TestCheckFixable_MissingNeedsSpare(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	missing, err := parts.NewMissing(mustSpec(t, "medium-laser"), 50, 0, "unit-1", 0)
	require.NoError(t, err)

	// Act / Assert: no stock
	err = missing.CheckFixable(cat, &fakeSpares{})
	var notAvailable *parts.ErrNoReplacementAvailable
	assert.ErrorAs(t, err, &notAvailable)

	// With a matching spare the check passes
	src := &fakeSpares{spares: []*parts.Part{newLaser(t, 50)}}
	assert.NoError(t, missing.CheckFixable(cat, src))
}
