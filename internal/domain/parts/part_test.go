package parts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewynne/mechbay-go/internal/adapters/catalog"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

func mustSpec(t *testing.T, key string) parts.Spec {
	t.Helper()
	spec, err := catalog.NewStaticCatalog().Lookup(key)
	require.NoError(t, err)
	return spec
}

func newLaser(t *testing.T, tonnage float64) *parts.Part {
	t.Helper()
	p, err := parts.NewEquipment(mustSpec(t, "medium-laser"), tonnage)
	require.NoError(t, err)
	return p
}

func TestNewEquipment_Defaults(t *testing.T) {
	// Arrange
	spec := mustSpec(t, "medium-laser")

	// Act
	p, err := parts.NewEquipment(spec, 50)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID())
	assert.Equal(t, parts.KindEquipment, p.Kind())
	assert.Equal(t, "medium-laser", p.CatalogKey())
	assert.Equal(t, "Medium Laser", p.Name())
	assert.Equal(t, 50.0, p.Tonnage())
	assert.Equal(t, 1, p.Quantity())
	assert.Equal(t, parts.ConditionGood, p.Condition())
	assert.Equal(t, parts.WorkIdle, p.WorkStatus())
	assert.Equal(t, shared.SkillGreen, p.RequiredSkill())
	assert.False(t, p.Installed())
	assert.False(t, p.NeedsFixing())
}

func TestNewHeatSink_IgnoresTonnage(t *testing.T) {
	// Act
	p, err := parts.NewHeatSink(mustSpec(t, "heat-sink"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, parts.KindHeatSink, p.Kind())
	assert.Equal(t, 0.0, p.Tonnage())
}

func TestNewMASC_RequiresEngineRating(t *testing.T) {
	// Arrange
	spec := mustSpec(t, "masc")

	// Act
	_, err := parts.NewMASC(spec, 5, 0)

	// Assert
	assert.Error(t, err)

	// Act
	p, err := parts.NewMASC(spec, 5, 300)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 300, p.SubRating())
}

func TestNewArmor_StartsAtFullPoints(t *testing.T) {
	// Act
	p, err := parts.NewArmor(mustSpec(t, "standard-armor"), 9.5, 152)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 152, p.ArmorPoints())
	assert.Equal(t, 152, p.ArmorTotal())
	assert.False(t, p.NeedsFixing())
}

func TestNewArmor_RejectsZeroTotal(t *testing.T) {
	// Act
	_, err := parts.NewArmor(mustSpec(t, "standard-armor"), 9.5, 0)

	// Assert
	assert.Error(t, err)
}

func TestNewOmniPod_ClonesContainedTemplate(t *testing.T) {
	// Arrange
	ppc, err := parts.NewEquipment(mustSpec(t, "er-ppc-clan"), 75)
	require.NoError(t, err)

	// Act
	pod, err := parts.NewOmniPod(ppc)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, parts.KindOmniPod, pod.Kind())
	assert.Equal(t, "omni-pod", pod.CatalogKey())
	assert.Equal(t, "OmniPod", pod.Name())
	require.NotNil(t, pod.PodType())
	assert.NotEqual(t, ppc.ID(), pod.PodType().ID())
	assert.Equal(t, "er-ppc-clan", pod.PodType().CatalogKey())
	assert.False(t, pod.PodType().Podded())
	assert.True(t, pod.NeedsFixing())
}

func TestNewOmniPod_RejectsInvalidContents(t *testing.T) {
	// Arrange
	ppc, err := parts.NewEquipment(mustSpec(t, "er-ppc-clan"), 75)
	require.NoError(t, err)
	pod, err := parts.NewOmniPod(ppc)
	require.NoError(t, err)
	missing, err := parts.NewMissing(mustSpec(t, "medium-laser"), 50, 0, "unit-1", 0)
	require.NoError(t, err)

	// Act / Assert
	_, err = parts.NewOmniPod(nil)
	assert.Error(t, err)

	_, err = parts.NewOmniPod(pod)
	assert.Error(t, err)

	_, err = parts.NewOmniPod(missing)
	assert.Error(t, err)
}

func TestNewMissing_IsInstalledPlaceholder(t *testing.T) {
	// Act
	p, err := parts.NewMissing(mustSpec(t, "medium-laser"), 50, 0, "unit-1", 3)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, parts.KindMissing, p.Kind())
	assert.Equal(t, "unit-1", p.UnitID())
	assert.Equal(t, 3, p.Slot())
	assert.True(t, p.Installed())
	assert.True(t, p.NeedsFixing())
	assert.Equal(t, "Missing", p.Status())
}

func TestIsSamePartType_MatchesOnDesign(t *testing.T) {
	// Arrange
	a := newLaser(t, 50)
	b := newLaser(t, 50)
	heavier := newLaser(t, 100)
	large, err := parts.NewEquipment(mustSpec(t, "large-laser"), 50)
	require.NoError(t, err)

	// Assert
	assert.True(t, a.IsSamePartType(b))
	assert.False(t, a.IsSamePartType(heavier))
	assert.False(t, a.IsSamePartType(large))
}

func TestIsSamePartType_PodsCompareContents(t *testing.T) {
	// Arrange
	ppc1, err := parts.NewEquipment(mustSpec(t, "er-ppc-clan"), 75)
	require.NoError(t, err)
	ppc2, err := parts.NewEquipment(mustSpec(t, "er-ppc-clan"), 75)
	require.NoError(t, err)
	laser := newLaser(t, 75)

	podA, err := parts.NewOmniPod(ppc1)
	require.NoError(t, err)
	podB, err := parts.NewOmniPod(ppc2)
	require.NoError(t, err)
	podC, err := parts.NewOmniPod(laser)
	require.NoError(t, err)

	// Assert
	assert.True(t, podA.IsSamePartType(podB))
	assert.False(t, podA.IsSamePartType(podC))
}

func TestClone_FreshIdentityAndState(t *testing.T) {
	// Arrange
	stack := newLaser(t, 50)
	require.NoError(t, stack.SetQuantity(4))

	installed := newLaser(t, 50)
	require.NoError(t, installed.InstallOn("unit-1", 2))

	// Act
	fromStack := stack.Clone()
	fromInstalled := installed.Clone()

	// Assert
	assert.NotEqual(t, stack.ID(), fromStack.ID())
	assert.Equal(t, 1, fromStack.Quantity())
	assert.True(t, stack.IsSamePartType(fromStack))

	assert.False(t, fromInstalled.Installed())
	assert.Equal(t, parts.WorkIdle, fromInstalled.WorkStatus())
}

func TestInstallOn_RejectsStacksAndPods(t *testing.T) {
	// Arrange
	stack := newLaser(t, 50)
	require.NoError(t, stack.SetQuantity(3))

	ppc, err := parts.NewEquipment(mustSpec(t, "er-ppc-clan"), 75)
	require.NoError(t, err)
	pod, err := parts.NewOmniPod(ppc)
	require.NoError(t, err)

	// Act / Assert
	assert.Error(t, stack.InstallOn("unit-1", 0))
	assert.Error(t, pod.InstallOn("unit-1", 0))
}

func TestSetQuantity_OnlyForLooseGoodStock(t *testing.T) {
	// Arrange
	p := newLaser(t, 50)

	// Act / Assert
	require.NoError(t, p.SetQuantity(5))
	assert.Equal(t, 5, p.Quantity())

	require.NoError(t, p.SetQuantity(1))

	damaged := newLaser(t, 50)
	damaged.MarkDamaged()
	err := damaged.SetQuantity(2)
	var stacked *parts.ErrStackedMutation
	assert.ErrorAs(t, err, &stacked)

	installed := newLaser(t, 50)
	require.NoError(t, installed.InstallOn("unit-1", 0))
	assert.Error(t, installed.SetQuantity(2))
}

func TestWorkTransitions(t *testing.T) {
	// Arrange
	p := newLaser(t, 50)
	require.NoError(t, p.InstallOn("unit-1", 0))

	// Act: reserve, then start
	require.NoError(t, p.Reserve(parts.PurposeReplacement))
	assert.Equal(t, parts.WorkReserved, p.WorkStatus())

	// Reserving again is invalid
	err := p.Reserve(parts.PurposeReplacement)
	var invalid *parts.ErrInvalidWorkTransition
	assert.ErrorAs(t, err, &invalid)

	require.NoError(t, p.StartWork("tech-1"))
	assert.Equal(t, parts.WorkInProgress, p.WorkStatus())
	assert.Equal(t, "tech-1", p.TechID())

	// Act: accrue and reset
	p.AccrueTime(60, 10)
	assert.Equal(t, 60, p.TimeSpent())
	assert.Equal(t, 10, p.Overtime())

	p.ResetWork()
	assert.Equal(t, parts.WorkIdle, p.WorkStatus())
	assert.Zero(t, p.TimeSpent())
	assert.Empty(t, p.TechID())
}

func TestStartWork_RequiresInstalledOrSpecialKind(t *testing.T) {
	// Arrange
	loose := newLaser(t, 50)

	// Act
	err := loose.StartWork("tech-1")

	// Assert
	assert.Error(t, err)

	// Pods are worked on in the warehouse
	ppc, err := parts.NewEquipment(mustSpec(t, "er-ppc-clan"), 75)
	require.NoError(t, err)
	pod, err := parts.NewOmniPod(ppc)
	require.NoError(t, err)
	assert.NoError(t, pod.StartWork("tech-1"))
}

func TestMarkInTransit_AndArrival(t *testing.T) {
	// Arrange
	p := newLaser(t, 50)

	// Act
	p.MarkInTransit(2)

	// Assert
	assert.Equal(t, parts.WorkAwaitingArrival, p.WorkStatus())
	assert.Equal(t, 2, p.DaysToArrival())
	assert.Equal(t, "In transit (2 days)", p.Status())

	// Act: two daily ticks
	p.AdvanceArrival()
	assert.Equal(t, 1, p.DaysToArrival())
	assert.Equal(t, parts.WorkAwaitingArrival, p.WorkStatus())

	p.AdvanceArrival()
	assert.Zero(t, p.DaysToArrival())
	assert.Equal(t, parts.WorkIdle, p.WorkStatus())
}

func TestMarkInTransit_NonPositiveDaysArrivesImmediately(t *testing.T) {
	// Arrange
	p := newLaser(t, 50)

	// Act
	p.MarkInTransit(0)

	// Assert
	assert.Equal(t, parts.WorkIdle, p.WorkStatus())
	assert.Zero(t, p.DaysToArrival())
}

func TestSetArmorPoints_ClampsAndTracksCondition(t *testing.T) {
	// Arrange
	p, err := parts.NewArmor(mustSpec(t, "standard-armor"), 9.5, 100)
	require.NoError(t, err)

	// Act / Assert
	p.SetArmorPoints(40)
	assert.Equal(t, 40, p.ArmorPoints())
	assert.Equal(t, parts.ConditionDamaged, p.Condition())
	assert.True(t, p.NeedsFixing())

	p.SetArmorPoints(-5)
	assert.Zero(t, p.ArmorPoints())

	p.SetArmorPoints(500)
	assert.Equal(t, 100, p.ArmorPoints())
	assert.Equal(t, parts.ConditionGood, p.Condition())
	assert.False(t, p.NeedsFixing())
}

func TestSetShotsNeeded_TracksCondition(t *testing.T) {
	// Arrange
	p, err := parts.NewAmmoBin(mustSpec(t, "ac5-ammo"), 1)
	require.NoError(t, err)

	// Act / Assert
	p.SetShotsNeeded(10)
	assert.Equal(t, 10, p.ShotsNeeded())
	assert.True(t, p.NeedsFixing())

	p.SetShotsNeeded(0)
	assert.False(t, p.NeedsFixing())
	assert.Equal(t, parts.ConditionGood, p.Condition())
}

func TestStatus_Strings(t *testing.T) {
	// Arrange
	good := newLaser(t, 50)

	damaged := newLaser(t, 50)
	damaged.MarkDamaged()

	reserved := newLaser(t, 50)
	require.NoError(t, reserved.Reserve(parts.PurposeRefit))

	working := newLaser(t, 50)
	require.NoError(t, working.InstallOn("unit-1", 0))
	require.NoError(t, working.Reserve(parts.PurposeReplacement))
	require.NoError(t, working.StartWork("tech-1"))

	ppc, err := parts.NewEquipment(mustSpec(t, "er-ppc-clan"), 75)
	require.NoError(t, err)
	emptyPod, err := parts.NewOmniPod(ppc)
	require.NoError(t, err)

	drained, err := parts.NewAmmoBin(mustSpec(t, "ac5-ammo"), 1)
	require.NoError(t, err)
	drained.SetShotsNeeded(20)

	// Assert
	assert.Equal(t, "Good", good.Status())
	assert.Equal(t, "Damaged", damaged.Status())
	assert.Equal(t, "Reserved for Refit", reserved.Status())
	assert.Equal(t, "Being worked on", working.Status())
	assert.Equal(t, "Empty", emptyPod.Status())
	assert.Equal(t, "Damaged", drained.Status())
}
