package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/ewynne/mechbay-go/internal/adapters/catalog"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/refit"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
	"github.com/ewynne/mechbay-go/internal/domain/warehouse"
)

type refitContext struct {
	cat   *catalog.StaticCatalog
	wh    *warehouse.Warehouse
	unit  *unit.Unit
	refit *refit.Refit
}

func (fc *refitContext) reset() {
	fc.cat = catalog.NewStaticCatalog()
	fc.wh = warehouse.New()
	fc.unit = nil
	fc.refit = nil
}

func (fc *refitContext) aUnitMounting(tonnage int, name, key string) error {
	u, err := unit.New(name, float64(tonnage), []unit.Slot{
		{Index: 0, CatalogKey: key, DependsOn: unit.NoDependency},
	})
	if err != nil {
		return err
	}
	if _, err := u.DeriveParts(fc.cat); err != nil {
		return err
	}
	fc.unit = u
	return nil
}

func (fc *refitContext) aSpareInStock(key string) error {
	spec, err := fc.cat.Lookup(key)
	if err != nil {
		return err
	}
	spare, err := parts.NewEquipment(spec, fc.unit.Tonnage())
	if err != nil {
		return err
	}
	fc.wh.AddPart(spare, 0)
	return nil
}

func (fc *refitContext) aRefitToIsPlanned(key string) error {
	target := fc.unit.Slots()
	target[0].CatalogKey = key
	r, err := refit.Plan(fc.unit, target, fc.wh, fc.cat, refit.Options{})
	if err != nil {
		return err
	}
	fc.refit = r
	return nil
}

func (fc *refitContext) theRefitShouldRequireMinutes(minutes int) error {
	if fc.refit.TimeRequiredMinutes() != minutes {
		return fmt.Errorf("expected %d required minutes but got %d", minutes, fc.refit.TimeRequiredMinutes())
	}
	return nil
}

func (fc *refitContext) theKitShouldHoldParts(count int) error {
	if got := len(fc.refit.Kit()); got != count {
		return fmt.Errorf("expected a kit of %d but got %d", count, got)
	}
	return nil
}

func (fc *refitContext) theRefitShortfallShouldBeEmpty() error {
	if len(fc.refit.Shortfall()) != 0 {
		return fmt.Errorf("expected no shortfall but got %v", fc.refit.Shortfall())
	}
	return nil
}

func (fc *refitContext) theRefitShortfallShouldList(name string) error {
	for _, missing := range fc.refit.Shortfall() {
		if missing == name {
			return nil
		}
	}
	return fmt.Errorf("expected shortfall listing %q but got %v", name, fc.refit.Shortfall())
}

func (fc *refitContext) beginningTheRefitShouldFail() error {
	if err := fc.refit.Begin(); err == nil {
		return fmt.Errorf("expected begin to fail but it succeeded")
	}
	return nil
}

func (fc *refitContext) theRefitIsCancelled() error {
	return fc.refit.Cancel(fc.wh)
}

func (fc *refitContext) theRefitIsBegun() error {
	return fc.refit.Begin()
}

func (fc *refitContext) daysOfRefitWorkAreApplied(days int) error {
	for i := 0; i < days; i++ {
		if _, err := fc.refit.AdvanceDay(480); err != nil {
			return err
		}
	}
	return nil
}

func (fc *refitContext) theRefitIsCompleted() error {
	_, err := fc.refit.Succeed(fc.wh, fc.cat)
	return err
}

func (fc *refitContext) theSpareShouldBeIdleInStock(key string) error {
	for _, p := range fc.wh.Parts() {
		if p.CatalogKey() == key && p.Condition() == parts.ConditionGood && p.WorkStatus() == parts.WorkIdle {
			return nil
		}
	}
	return fmt.Errorf("no idle %q in stock", key)
}

func (fc *refitContext) theUnitShouldNotBeRefitting() error {
	if fc.unit.Refitting() {
		return fmt.Errorf("expected the unit to be free but refit %s is still attached", fc.unit.RefitID())
	}
	return nil
}

func (fc *refitContext) theUnitShouldMountA(key string) error {
	for _, p := range fc.unit.Parts() {
		if p.CatalogKey() == key {
			return nil
		}
	}
	return fmt.Errorf("unit does not mount %q", key)
}

func (fc *refitContext) aShouldBeBackInStock(key string) error {
	for _, p := range fc.wh.Parts() {
		if p.CatalogKey() == key {
			return nil
		}
	}
	return fmt.Errorf("no %q back in stock", key)
}

func InitializeRefitScenario(ctx *godog.ScenarioContext) {
	fc := &refitContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.reset()
		return ctx, nil
	})

	ctx.Step(`^a (\d+) ton unit "([^"]*)" mounting a "([^"]*)"$`, fc.aUnitMounting)
	ctx.Step(`^a spare "([^"]*)" in stock$`, fc.aSpareInStock)
	ctx.Step(`^a refit to "([^"]*)" is planned$`, fc.aRefitToIsPlanned)
	ctx.Step(`^the refit should require (\d+) minutes$`, fc.theRefitShouldRequireMinutes)
	ctx.Step(`^the kit should hold (\d+) part$`, fc.theKitShouldHoldParts)
	ctx.Step(`^the refit shortfall should be empty$`, fc.theRefitShortfallShouldBeEmpty)
	ctx.Step(`^the refit shortfall should list "([^"]*)"$`, fc.theRefitShortfallShouldList)
	ctx.Step(`^beginning the refit should fail$`, fc.beginningTheRefitShouldFail)
	ctx.Step(`^the refit is cancelled$`, fc.theRefitIsCancelled)
	ctx.Step(`^the refit is begun$`, fc.theRefitIsBegun)
	ctx.Step(`^(\d+) days of refit work are applied$`, fc.daysOfRefitWorkAreApplied)
	ctx.Step(`^the refit is completed$`, fc.theRefitIsCompleted)
	ctx.Step(`^the spare "([^"]*)" should be idle in stock$`, fc.theSpareShouldBeIdleInStock)
	ctx.Step(`^the unit should not be refitting$`, fc.theUnitShouldNotBeRefitting)
	ctx.Step(`^the unit should mount a "([^"]*)"$`, fc.theUnitShouldMountA)
	ctx.Step(`^a "([^"]*)" should be back in stock$`, fc.aShouldBeBackInStock)
}
