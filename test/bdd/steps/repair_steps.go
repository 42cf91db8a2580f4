package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/ewynne/mechbay-go/internal/adapters/catalog"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
	"github.com/ewynne/mechbay-go/internal/domain/warehouse"
)

type repairContext struct {
	cat      *catalog.StaticCatalog
	wh       *warehouse.Warehouse
	resolver *repair.Resolver
	unit     *unit.Unit
	part     *parts.Part
	tech     *repair.Tech
	outcome  repair.SessionOutcome
}

func (rc *repairContext) reset() {
	rc.cat = catalog.NewStaticCatalog()
	rc.wh = warehouse.New()
	rc.resolver = repair.NewResolver(rc.cat, rc.wh)
	rc.unit = nil
	rc.part = nil
	rc.tech = nil
	rc.outcome = repair.SessionOutcome{}
}

func (rc *repairContext) aDamagedPartInstalledOnAUnit(key string, tonnage int) error {
	u, err := unit.New("Bay Subject", float64(tonnage), []unit.Slot{
		{Index: 0, CatalogKey: key, DependsOn: unit.NoDependency},
	})
	if err != nil {
		return err
	}
	if _, err := u.DeriveParts(rc.cat); err != nil {
		return err
	}
	rc.unit = u
	rc.part = u.PartAt(0)
	if rc.part == nil {
		return fmt.Errorf("slot 0 did not materialize a part")
	}
	rc.part.MarkDamaged()
	return nil
}

func (rc *repairContext) aTechnicianNamed(skillName, name string) error {
	return rc.aTechnicianNamedWithShifts(skillName, name, 0)
}

func (rc *repairContext) aTechnicianNamedWithShifts(skillName, name string, minutes int) error {
	skill, err := shared.ParseSkill(skillName)
	if err != nil {
		return err
	}
	rc.tech, err = repair.NewTech(name, skill, minutes)
	return err
}

func (rc *repairContext) isAssignedToThePart(name string) error {
	if rc.tech == nil || rc.tech.Name() != name {
		return fmt.Errorf("no technician %q on the roster", name)
	}
	return rc.resolver.AssignTech(rc.tech, rc.part)
}

func (rc *repairContext) startsWorkOnThePartDirectly(name string) error {
	if rc.tech == nil || rc.tech.Name() != name {
		return fmt.Errorf("no technician %q on the roster", name)
	}
	return rc.part.StartWork(rc.tech.ID())
}

func (rc *repairContext) aWorkSessionRunsWithAPassingRoll() error {
	outcome, err := rc.resolver.WorkSession(rc.unit, rc.part, rc.tech, alwaysPassCheck)
	if err != nil {
		return err
	}
	rc.outcome = outcome
	return nil
}

func (rc *repairContext) theShiftResetsAndAWorkSessionRunsWithAPassingRoll() error {
	rc.tech.ResetDay()
	return rc.aWorkSessionRunsWithAPassingRoll()
}

func (rc *repairContext) aWorkSessionRunsWithAFailingRoll() error {
	outcome, err := rc.resolver.WorkSession(rc.unit, rc.part, rc.tech, alwaysFailCheck)
	if err != nil {
		return err
	}
	rc.outcome = outcome
	return nil
}

func (rc *repairContext) workSessionsRunWithFailingRolls(count int) error {
	if rc.part.WorkStatus() != parts.WorkInProgress {
		if err := rc.resolver.AssignTech(rc.tech, rc.part); err != nil {
			return err
		}
	}
	for i := 0; i < count; i++ {
		if err := rc.aWorkSessionRunsWithAFailingRoll(); err != nil {
			return err
		}
	}
	return nil
}

func (rc *repairContext) theSessionShouldBeResolvedSuccessfully() error {
	if !rc.outcome.Resolved || !rc.outcome.Success {
		return fmt.Errorf("expected a resolved successful session but got %+v", rc.outcome)
	}
	return nil
}

func (rc *repairContext) theSessionShouldReport(fragment string) error {
	if !strings.Contains(rc.outcome.Message, fragment) {
		return fmt.Errorf("expected message containing %q but got %q", fragment, rc.outcome.Message)
	}
	return nil
}

func (rc *repairContext) thePartConditionShouldBe(condition string) error {
	if string(rc.part.Condition()) != condition {
		return fmt.Errorf("expected condition %s but got %s", condition, rc.part.Condition())
	}
	return nil
}

func (rc *repairContext) thePartShouldRequireSkill(skillName string) error {
	want, err := shared.ParseSkill(skillName)
	if err != nil {
		return err
	}
	if rc.part.RequiredSkill() != want {
		return fmt.Errorf("expected required skill %s but got %s", want, rc.part.RequiredSkill())
	}
	return nil
}

func (rc *repairContext) shouldBeFreeForOtherWork(name string) error {
	if rc.tech == nil || rc.tech.Name() != name {
		return fmt.Errorf("no technician %q on the roster", name)
	}
	if rc.tech.AssignedPart() != "" {
		return fmt.Errorf("expected no assignment but %s still holds %s", name, rc.tech.AssignedPart())
	}
	return nil
}

func (rc *repairContext) thePartShouldBeDestroyed() error {
	if !rc.outcome.Destroyed {
		return fmt.Errorf("expected the part to be destroyed but got %+v", rc.outcome)
	}
	return nil
}

func (rc *repairContext) theUnitSlotShouldBeMarkedDestroyed() error {
	if !rc.unit.Slots()[0].Destroyed {
		return fmt.Errorf("expected slot 0 to be marked destroyed")
	}
	return nil
}

func InitializeRepairScenario(ctx *godog.ScenarioContext) {
	rc := &repairContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		rc.reset()
		return ctx, nil
	})

	ctx.Step(`^a damaged "([^"]*)" installed on a (\d+) ton unit$`, rc.aDamagedPartInstalledOnAUnit)
	ctx.Step(`^a "([^"]*)" technician named "([^"]*)"$`, rc.aTechnicianNamed)
	ctx.Step(`^a "([^"]*)" technician named "([^"]*)" with (\d+) minute shifts$`, rc.aTechnicianNamedWithShifts)
	ctx.Step(`^an "([^"]*)" technician named "([^"]*)"$`, rc.aTechnicianNamed)
	ctx.Step(`^"([^"]*)" is assigned to the part$`, rc.isAssignedToThePart)
	ctx.Step(`^"([^"]*)" starts work on the part directly$`, rc.startsWorkOnThePartDirectly)
	ctx.Step(`^a work session runs with a passing roll$`, rc.aWorkSessionRunsWithAPassingRoll)
	ctx.Step(`^the shift resets and a work session runs with a passing roll$`, rc.theShiftResetsAndAWorkSessionRunsWithAPassingRoll)
	ctx.Step(`^a work session runs with a failing roll$`, rc.aWorkSessionRunsWithAFailingRoll)
	ctx.Step(`^(\d+) work sessions run with failing rolls$`, rc.workSessionsRunWithFailingRolls)
	ctx.Step(`^the session should be resolved successfully$`, rc.theSessionShouldBeResolvedSuccessfully)
	ctx.Step(`^the session should report "([^"]*)"$`, rc.theSessionShouldReport)
	ctx.Step(`^the part condition should be "([^"]*)"$`, rc.thePartConditionShouldBe)
	ctx.Step(`^the part should require "([^"]*)" skill$`, rc.thePartShouldRequireSkill)
	ctx.Step(`^"([^"]*)" should be free for other work$`, rc.shouldBeFreeForOtherWork)
	ctx.Step(`^the part should be destroyed$`, rc.thePartShouldBeDestroyed)
	ctx.Step(`^the unit slot should be marked destroyed$`, rc.theUnitSlotShouldBeMarkedDestroyed)
}
