package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewynne/mechbay-go/internal/adapters/catalog"
	"github.com/ewynne/mechbay-go/internal/application/campaign/commands"
	"github.com/ewynne/mechbay-go/internal/application/common"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/refit"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

type captureSink struct {
	reports []string
}

func (s *captureSink) Publish(ctx context.Context, report string) {
	s.reports = append(s.reports, report)
}

var alwaysPass = repair.SkillCheckFunc(func(techSkill, requiredSkill shared.Skill, difficulty int) bool {
	return true
})

func newCampaign(t *testing.T) *common.Campaign {
	t.Helper()
	return common.NewCampaign(shared.EraClanInvasion, catalog.NewStaticCatalog())
}

func addUnit(t *testing.T, campaign *common.Campaign, name string) *unit.Unit {
	t.Helper()
	u, err := unit.New(name, 50, []unit.Slot{
		{Index: 0, CatalogKey: "medium-laser", DependsOn: unit.NoDependency},
		{Index: 1, CatalogKey: "heat-sink", DependsOn: unit.NoDependency},
	})
	require.NoError(t, err)
	_, err = u.DeriveParts(campaign.Catalog)
	require.NoError(t, err)
	campaign.AddUnit(u)
	return u
}

func addTech(t *testing.T, campaign *common.Campaign) *repair.Tech {
	t.Helper()
	tech, err := repair.NewTech("Dex Calloway", shared.SkillVeteran, 480)
	require.NoError(t, err)
	campaign.AddTech(tech)
	return tech
}

func TestNewDayHandler_RunsOpenWorkSessions(t *testing.T) {
	// Arrange: a damaged laser with an assigned tech
	campaign := newCampaign(t)
	u := addUnit(t, campaign, "Atlas")
	tech := addTech(t, campaign)

	laser := u.PartAt(0)
	laser.MarkDamaged()
	resolver := repair.NewResolver(campaign.Catalog, campaign.Warehouse)
	require.NoError(t, resolver.AssignTech(tech, laser))
	// Simulate yesterday's spent shift; the tick resets it
	tech.ResetDay()

	sink := &captureSink{}
	handler := commands.NewNewDayHandler(campaign, alwaysPass, common.NoOpMetrics{}, sink, 480)

	// Act
	response, err := handler.Handle(context.Background(), &commands.NewDayCommand{})

	// Assert
	require.NoError(t, err)
	day := response.(*commands.NewDayResponse)
	assert.Equal(t, 1, day.SessionsRun)
	assert.Equal(t, parts.ConditionGood, laser.Condition())
	require.NotEmpty(t, sink.reports)
	assert.Contains(t, sink.reports[0], "repaired by Dex Calloway")
}

func TestNewDayHandler_AdvancesArrivalsAndRefits(t *testing.T) {
	// Arrange: an in-transit spare and an in-progress refit
	campaign := newCampaign(t)
	u := addUnit(t, campaign, "Shadow Hawk")

	inbound, err := parts.NewEquipment(mustLookup(t, campaign, "large-laser"), 50)
	require.NoError(t, err)
	inbound.MarkInTransit(2)
	campaign.Warehouse.AddPart(inbound, 0)

	spare, err := parts.NewEquipment(mustLookup(t, campaign, "large-laser"), 50)
	require.NoError(t, err)
	campaign.Warehouse.AddPart(spare, 0)

	target := u.Slots()
	target[0].CatalogKey = "large-laser"
	project, err := refit.Plan(u, target, campaign.Warehouse, campaign.Catalog, refit.Options{})
	require.NoError(t, err)
	require.NoError(t, project.Begin())
	campaign.AddRefit(project)

	sink := &captureSink{}
	// The whole 1080 minute refit fits into one day's work rate
	handler := commands.NewNewDayHandler(campaign, alwaysPass, common.NoOpMetrics{}, sink, 1100)

	// Act
	response, err := handler.Handle(context.Background(), &commands.NewDayCommand{})

	// Assert
	require.NoError(t, err)
	day := response.(*commands.NewDayResponse)
	assert.Equal(t, 1, day.RefitsAdvanced)

	// The refit committed and left the active set
	assert.Empty(t, campaign.Refits())
	assert.Equal(t, "large-laser", u.PartAt(0).CatalogKey())
	assert.Empty(t, u.RefitID())

	// The inbound part ticked one day closer
	assert.Equal(t, 1, inbound.DaysToArrival())

	// Day two: it arrives
	_, err = handler.Handle(context.Background(), &commands.NewDayCommand{})
	require.NoError(t, err)
	assert.Equal(t, parts.WorkIdle, inbound.WorkStatus())
}

func TestNewDayHandler_StalledSessionReported(t *testing.T) {
	// Arrange: an open session whose tech left the roster
	campaign := newCampaign(t)
	u := addUnit(t, campaign, "Spider")
	laser := u.PartAt(0)
	laser.MarkDamaged()
	require.NoError(t, laser.StartWork("gone-tech"))

	sink := &captureSink{}
	handler := commands.NewNewDayHandler(campaign, alwaysPass, common.NoOpMetrics{}, sink, 480)

	// Act
	response, err := handler.Handle(context.Background(), &commands.NewDayCommand{})

	// Assert: reported, not aborted
	require.NoError(t, err)
	day := response.(*commands.NewDayResponse)
	assert.Zero(t, day.SessionsRun)
	require.NotEmpty(t, day.Reports)
	assert.Contains(t, day.Reports[0], "work stalled")
}

func TestNewDayHandler_RejectsWrongRequestType(t *testing.T) {
	// Arrange
	campaign := newCampaign(t)
	handler := commands.NewNewDayHandler(campaign, alwaysPass, common.NoOpMetrics{}, &captureSink{}, 480)

	// Act
	_, err := handler.Handle(context.Background(), &struct{}{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request type")
}

func mustLookup(t *testing.T, campaign *common.Campaign, key string) parts.Spec {
	t.Helper()
	spec, err := campaign.Catalog.Lookup(key)
	require.NoError(t, err)
	return spec
}
