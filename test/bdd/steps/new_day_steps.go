package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/ewynne/mechbay-go/internal/adapters/catalog"
	"github.com/ewynne/mechbay-go/internal/application/campaign/commands"
	"github.com/ewynne/mechbay-go/internal/application/common"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/refit"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

type recordingSink struct {
	reports []string
}

func (s *recordingSink) Publish(ctx context.Context, report string) {
	s.reports = append(s.reports, report)
}

type campaignContext struct {
	campaign *common.Campaign
	sink     *recordingSink
	part     *parts.Part
	inbound  *parts.Part
	resp     *commands.NewDayResponse
}

func (cc *campaignContext) reset() {
	cc.campaign = common.NewCampaign(shared.EraClanInvasion, catalog.NewStaticCatalog())
	cc.sink = &recordingSink{}
	cc.part = nil
	cc.inbound = nil
	cc.resp = nil
}

func (cc *campaignContext) advance(minutes int) error {
	handler := commands.NewNewDayHandler(cc.campaign, alwaysPassCheck, common.NoOpMetrics{}, cc.sink, minutes)
	result, err := handler.Handle(context.Background(), &commands.NewDayCommand{})
	if err != nil {
		return err
	}
	resp, ok := result.(*commands.NewDayResponse)
	if !ok {
		return fmt.Errorf("unexpected response type %T", result)
	}
	cc.resp = resp
	return nil
}

func (cc *campaignContext) aCampaignUnitWithADamagedPart(tonnage int, name, key string) error {
	u, err := unit.New(name, float64(tonnage), []unit.Slot{
		{Index: 0, CatalogKey: key, DependsOn: unit.NoDependency},
	})
	if err != nil {
		return err
	}
	if _, err := u.DeriveParts(cc.campaign.Catalog); err != nil {
		return err
	}
	cc.campaign.AddUnit(u)
	cc.part = u.PartAt(0)
	cc.part.MarkDamaged()
	return nil
}

func (cc *campaignContext) aCampaignTechnicianAssigned(name, skillName string) error {
	skill, err := shared.ParseSkill(skillName)
	if err != nil {
		return err
	}
	tech, err := repair.NewTech(name, skill, 0)
	if err != nil {
		return err
	}
	cc.campaign.AddTech(tech)
	resolver := repair.NewResolver(cc.campaign.Catalog, cc.campaign.Warehouse)
	return resolver.AssignTech(tech, cc.part)
}

func (cc *campaignContext) aDeliveryArrivingInDays(key string, days int) error {
	spec, err := cc.campaign.Catalog.Lookup(key)
	if err != nil {
		return err
	}
	p, err := parts.NewEquipment(spec, 5)
	if err != nil {
		return err
	}
	p.MarkInTransit(days)
	cc.inbound = cc.campaign.Warehouse.AddPart(p, 0)
	return nil
}

func (cc *campaignContext) aCampaignUnitRefittingTo(tonnage int, name, key string) error {
	u, err := unit.New(name, float64(tonnage), []unit.Slot{
		{Index: 0, CatalogKey: "medium-laser", DependsOn: unit.NoDependency},
	})
	if err != nil {
		return err
	}
	if _, err := u.DeriveParts(cc.campaign.Catalog); err != nil {
		return err
	}
	cc.campaign.AddUnit(u)

	spec, err := cc.campaign.Catalog.Lookup(key)
	if err != nil {
		return err
	}
	spare, err := parts.NewEquipment(spec, u.Tonnage())
	if err != nil {
		return err
	}
	cc.campaign.Warehouse.AddPart(spare, 0)

	target := u.Slots()
	target[0].CatalogKey = key
	r, err := refit.Plan(u, target, cc.campaign.Warehouse, cc.campaign.Catalog, refit.Options{})
	if err != nil {
		return err
	}
	if err := r.Begin(); err != nil {
		return err
	}
	cc.campaign.AddRefit(r)
	return nil
}

func (cc *campaignContext) theDayAdvances() error {
	return cc.advance(480)
}

func (cc *campaignContext) theDayAdvancesWithRefitMinutes(minutes int) error {
	return cc.advance(minutes)
}

func (cc *campaignContext) workSessionsShouldHaveRun(count int) error {
	if cc.resp.SessionsRun != count {
		return fmt.Errorf("expected %d sessions but got %d", count, cc.resp.SessionsRun)
	}
	return nil
}

func (cc *campaignContext) theCampaignReportShouldMention(fragment string) error {
	for _, report := range cc.sink.reports {
		if strings.Contains(report, fragment) {
			return nil
		}
	}
	return fmt.Errorf("no report mentions %q in %v", fragment, cc.sink.reports)
}

func (cc *campaignContext) theDamagedPartShouldBeGoodAgain() error {
	if cc.part.Condition() != parts.ConditionGood {
		return fmt.Errorf("expected condition GOOD but got %s", cc.part.Condition())
	}
	return nil
}

func (cc *campaignContext) theDeliveryShouldShowDaysRemaining(days int) error {
	if cc.inbound.DaysToArrival() != days {
		return fmt.Errorf("expected %d days to arrival but got %d", days, cc.inbound.DaysToArrival())
	}
	return nil
}

func (cc *campaignContext) theDeliveryShouldBeAvailableStock() error {
	if cc.inbound.Status() != "Good" {
		return fmt.Errorf("expected status Good but got %q", cc.inbound.Status())
	}
	return nil
}

func (cc *campaignContext) refitsShouldHaveAdvanced(count int) error {
	if cc.resp.RefitsAdvanced != count {
		return fmt.Errorf("expected %d refits advanced but got %d", count, cc.resp.RefitsAdvanced)
	}
	return nil
}

func (cc *campaignContext) theCampaignShouldHaveNoActiveRefits() error {
	if got := len(cc.campaign.Refits()); got != 0 {
		return fmt.Errorf("expected no active refits but got %d", got)
	}
	return nil
}

func (cc *campaignContext) shouldMountA(name, key string) error {
	u, err := cc.campaign.UnitByName(name)
	if err != nil {
		return err
	}
	for _, p := range u.Parts() {
		if p.CatalogKey() == key {
			return nil
		}
	}
	return fmt.Errorf("%s does not mount %q", name, key)
}

func InitializeNewDayScenario(ctx *godog.ScenarioContext) {
	cc := &campaignContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})

	ctx.Step(`^a campaign with a (\d+) ton unit "([^"]*)" mounting a damaged "([^"]*)"$`, cc.aCampaignUnitWithADamagedPart)
	ctx.Step(`^a campaign technician "([^"]*)" with "([^"]*)" skill assigned to the damaged part$`, cc.aCampaignTechnicianAssigned)
	ctx.Step(`^a campaign with a "([^"]*)" arriving in (\d+) days$`, cc.aDeliveryArrivingInDays)
	ctx.Step(`^a campaign with a (\d+) ton unit "([^"]*)" refitting to "([^"]*)"$`, cc.aCampaignUnitRefittingTo)
	ctx.Step(`^the day advances$`, cc.theDayAdvances)
	ctx.Step(`^the day advances with (\d+) refit minutes$`, cc.theDayAdvancesWithRefitMinutes)
	ctx.Step(`^(\d+) work session should have run$`, cc.workSessionsShouldHaveRun)
	ctx.Step(`^the campaign report should mention "([^"]*)"$`, cc.theCampaignReportShouldMention)
	ctx.Step(`^the damaged part should be good again$`, cc.theDamagedPartShouldBeGoodAgain)
	ctx.Step(`^the delivery should show (\d+) day remaining$`, cc.theDeliveryShouldShowDaysRemaining)
	ctx.Step(`^the delivery should be available stock$`, cc.theDeliveryShouldBeAvailableStock)
	ctx.Step(`^(\d+) refit should have advanced$`, cc.refitsShouldHaveAdvanced)
	ctx.Step(`^the campaign should have no active refits$`, cc.theCampaignShouldHaveNoActiveRefits)
	ctx.Step(`^"([^"]*)" should mount a "([^"]*)"$`, cc.shouldMountA)
}
