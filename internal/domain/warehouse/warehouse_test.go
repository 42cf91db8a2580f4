package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewynne/mechbay-go/internal/adapters/catalog"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/warehouse"
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

func TestAddPart_MergesIntoMatchingStack(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	first := wh.AddPart(newLaser(t, 50), 0)

	// Act: add two more of the same design
	second := newLaser(t, 50)
	owner := wh.AddPart(second, 1)

	// Assert: the original stack survives, grown by two
	assert.Equal(t, first.ID(), owner.ID())
	assert.Equal(t, 3, first.Quantity())
	assert.Len(t, wh.Parts(), 1)

	_, err := wh.Get(second.ID())
	assert.Error(t, err)
}

func TestAddPart_DamagedStockStaysStandalone(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	wh.AddPart(newLaser(t, 50), 0)

	damaged := newLaser(t, 50)
	damaged.MarkDamaged()

	// Act
	wh.AddPart(damaged, 0)

	// Assert
	assert.Len(t, wh.Parts(), 2)
}

func TestAddPart_DifferentTonnageStaysStandalone(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	wh.AddPart(newLaser(t, 50), 0)

	// Act
	wh.AddPart(newLaser(t, 100), 0)

	// Assert: same design at a different scale is not fungible
	assert.Len(t, wh.Parts(), 2)
}

func TestFindMatchingSpare_SkipsUnavailableStock(t *testing.T) {
	// Arrange
	wh := warehouse.New()

	damaged := newLaser(t, 50)
	damaged.MarkDamaged()
	wh.AddPart(damaged, 0)

	inTransit := newLaser(t, 50)
	inTransit.MarkInTransit(3)
	wh.AddPart(inTransit, 0)

	claimed := wh.AddPart(newLaser(t, 100), 0)
	require.NoError(t, wh.Claim(claimed.ID(), parts.PurposeRefit))

	// Act
	found := wh.FindMatchingSpare(newLaser(t, 50))

	// Assert: no good idle unclaimed candidate
	assert.Nil(t, found)

	// A good spare becomes findable
	good := wh.AddPart(newLaser(t, 50), 0)
	assert.Equal(t, good.ID(), wh.FindMatchingSpare(newLaser(t, 50)).ID())
}

func TestFindMatchingSpare_DeterministicLowestID(t *testing.T) {
	// Arrange: two separate good stacks of the same design cannot coexist
	// (AddPart merges them), so use damaged stock flipped good afterwards
	wh := warehouse.New()
	a := newLaser(t, 50)
	a.MarkDamaged()
	b := newLaser(t, 50)
	b.MarkDamaged()
	wh.AddPart(a, 0)
	wh.AddPart(b, 0)
	require.NoError(t, a.RestoreInPlace())
	require.NoError(t, b.RestoreInPlace())

	want := a.ID()
	if b.ID() < want {
		want = b.ID()
	}

	// Act / Assert: repeated lookups agree on the lowest id
	for i := 0; i < 3; i++ {
		found := wh.FindMatchingSpare(newLaser(t, 50))
		require.NotNil(t, found)
		assert.Equal(t, want, found.ID())
	}
}

func TestDecrementQuantity_RemovesExhaustedStack(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	stack := wh.AddPart(newLaser(t, 50), 1)
	require.Equal(t, 2, stack.Quantity())

	// Act / Assert
	require.NoError(t, wh.DecrementQuantity(stack.ID()))
	assert.Equal(t, 1, stack.Quantity())

	require.NoError(t, wh.DecrementQuantity(stack.ID()))
	_, err := wh.Get(stack.ID())
	var notFound *warehouse.ErrPartNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestClaim_IsExclusive(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	p := wh.AddPart(newLaser(t, 50), 0)

	// Act
	require.NoError(t, wh.Claim(p.ID(), parts.PurposeRefit))
	err := wh.Claim(p.ID(), parts.PurposeReplacement)

	// Assert
	var alreadyClaimed *warehouse.ErrPartAlreadyClaimed
	assert.ErrorAs(t, err, &alreadyClaimed)
	assert.Equal(t, parts.WorkReserved, p.WorkStatus())

	purpose, ok := wh.ClaimedBy(p.ID())
	assert.True(t, ok)
	assert.Equal(t, parts.PurposeRefit, purpose)
}

func TestClaim_RejectsInTransitStock(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	p := newLaser(t, 50)
	p.MarkInTransit(2)
	wh.AddPart(p, 0)

	// Act
	err := wh.Claim(p.ID(), parts.PurposeReplacement)

	// Assert
	var unavailable *warehouse.ErrPartUnavailable
	assert.ErrorAs(t, err, &unavailable)
}

func TestClaimOne_SplitsStack(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	stack := wh.AddPart(newLaser(t, 50), 2)
	require.Equal(t, 3, stack.Quantity())

	// Act
	claimed, err := wh.ClaimOne(stack.ID(), parts.PurposeRefit)

	// Assert: one unit split off and reserved, the rest stays loose
	require.NoError(t, err)
	assert.NotEqual(t, stack.ID(), claimed.ID())
	assert.Equal(t, 1, claimed.Quantity())
	assert.Equal(t, parts.WorkReserved, claimed.WorkStatus())
	assert.Equal(t, 2, stack.Quantity())
	assert.Equal(t, parts.WorkIdle, stack.WorkStatus())

	_, ok := wh.ClaimedBy(claimed.ID())
	assert.True(t, ok)
	_, ok = wh.ClaimedBy(stack.ID())
	assert.False(t, ok)
}

func TestClaimOne_SingleUnitClaimsWhole(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	p := wh.AddPart(newLaser(t, 50), 0)

	// Act
	claimed, err := wh.ClaimOne(p.ID(), parts.PurposeReplacement)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, p.ID(), claimed.ID())
	assert.Equal(t, parts.WorkReserved, p.WorkStatus())
}

func TestRelease_MergesBackIntoStock(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	stack := wh.AddPart(newLaser(t, 50), 2)
	claimed, err := wh.ClaimOne(stack.ID(), parts.PurposeRefit)
	require.NoError(t, err)
	require.Equal(t, 2, stack.Quantity())

	// Act
	require.NoError(t, wh.Release(claimed.ID()))

	// Assert: the split unit rejoined the stack
	assert.Equal(t, 3, stack.Quantity())
	assert.Len(t, wh.Parts(), 1)

	_, ok := wh.ClaimedBy(claimed.ID())
	assert.False(t, ok)
}

func TestRelease_RequiresClaim(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	p := wh.AddPart(newLaser(t, 50), 0)

	// Act
	err := wh.Release(p.ID())

	// Assert
	var notClaimed *warehouse.ErrPartNotClaimed
	assert.ErrorAs(t, err, &notClaimed)
}

func TestRemove_RejectsInTransit(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	p := newLaser(t, 50)
	p.MarkInTransit(1)
	wh.AddPart(p, 0)

	// Act
	_, err := wh.Remove(p.ID())

	// Assert
	var unavailable *warehouse.ErrPartUnavailable
	assert.ErrorAs(t, err, &unavailable)

	// After arrival removal succeeds
	wh.AdvanceArrivals()
	removed, err := wh.Remove(p.ID())
	require.NoError(t, err)
	assert.Equal(t, p.ID(), removed.ID())
	assert.Empty(t, wh.Parts())
}

func TestAdvanceArrivals_DailyTick(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	p := newLaser(t, 50)
	p.MarkInTransit(2)
	wh.AddPart(p, 0)

	// Act / Assert
	wh.AdvanceArrivals()
	assert.Equal(t, 1, p.DaysToArrival())

	wh.AdvanceArrivals()
	assert.Equal(t, parts.WorkIdle, p.WorkStatus())
	assert.NotNil(t, wh.FindMatchingSpare(newLaser(t, 50)))
}

func TestSnapshot_GroupsFungibleStock(t *testing.T) {
	// Arrange
	wh := warehouse.New()
	wh.AddPart(newLaser(t, 50), 2)

	damaged := newLaser(t, 50)
	damaged.MarkDamaged()
	wh.AddPart(damaged, 0)

	wh.AddPart(newLaser(t, 100), 0)

	// Act
	snapshot := wh.Snapshot()

	// Assert: three lines, grouped by design, scale and condition
	require.Len(t, snapshot, 3)
	total := 0
	for _, entry := range snapshot {
		assert.Equal(t, "medium-laser", entry.Key)
		total += entry.Quantity
	}
	assert.Equal(t, 5, total)
}

func TestSnapshot_PodsGroupByContents(t *testing.T) {
	// Arrange
	wh := warehouse.New()

	ppc, err := parts.NewEquipment(mustSpec(t, "er-ppc-clan"), 75)
	require.NoError(t, err)
	podA, err := parts.NewOmniPod(ppc)
	require.NoError(t, err)

	laser := newLaser(t, 75)
	podB, err := parts.NewOmniPod(laser)
	require.NoError(t, err)

	wh.AddPart(podA, 0)
	wh.AddPart(podB, 0)

	// Act
	snapshot := wh.Snapshot()

	// Assert: pods with different contents do not merge
	require.Len(t, snapshot, 2)
	for _, entry := range snapshot {
		assert.Equal(t, parts.KindOmniPod, entry.Kind)
		assert.Equal(t, 1, entry.Quantity)
	}
}
