package steps

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/ewynne/mechbay-go/internal/adapters/catalog"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
	"github.com/ewynne/mechbay-go/internal/domain/warehouse"
)

// alwaysPassCheck resolves every skill roll in favour of the technician so
// scenarios exercise the lifecycle deterministically.
var alwaysPassCheck = repair.SkillCheckFunc(func(techSkill, requiredSkill shared.Skill, difficulty int) bool {
	return true
})

// alwaysFailCheck forces every roll to miss.
var alwaysFailCheck = repair.SkillCheckFunc(func(techSkill, requiredSkill shared.Skill, difficulty int) bool {
	return false
})

type omniPodContext struct {
	cat     *catalog.StaticCatalog
	wh      *warehouse.Warehouse
	pod     *parts.Part
	spare   *parts.Part
	tech    *repair.Tech
	outcome repair.SessionOutcome
}

func (oc *omniPodContext) reset() {
	oc.cat = catalog.NewStaticCatalog()
	oc.wh = warehouse.New()
	oc.pod = nil
	oc.spare = nil
	oc.tech = nil
	oc.outcome = repair.SessionOutcome{}
}

func (oc *omniPodContext) anEmptyOmniPodInTheWarehouse(key string) error {
	spec, err := oc.cat.Lookup(key)
	if err != nil {
		return err
	}
	template, err := parts.NewEquipment(spec, 6)
	if err != nil {
		return err
	}
	pod, err := parts.NewOmniPod(template)
	if err != nil {
		return err
	}
	oc.pod = oc.wh.AddPart(pod, 0)
	return nil
}

func (oc *omniPodContext) aSpareStackInTheWarehouse(quantity int, key string) error {
	spec, err := oc.cat.Lookup(key)
	if err != nil {
		return err
	}
	spare, err := parts.NewEquipment(spec, 6)
	if err != nil {
		return err
	}
	if err := spare.SetQuantity(quantity); err != nil {
		return err
	}
	oc.spare = oc.wh.AddPart(spare, 0)
	return nil
}

func (oc *omniPodContext) aTechnicianOnTheRoster(skillName, name string) error {
	skill, err := shared.ParseSkill(skillName)
	if err != nil {
		return err
	}
	oc.tech, err = repair.NewTech(name, skill, 0)
	return err
}

func (oc *omniPodContext) thePodIsFixedFromStock() error {
	return oc.pod.Fix(oc.cat, oc.wh)
}

func (oc *omniPodContext) worksThePodForDays(name string, days int) error {
	if oc.tech == nil || oc.tech.Name() != name {
		return fmt.Errorf("no technician %q on the roster", name)
	}
	resolver := repair.NewResolver(oc.cat, oc.wh)
	if err := oc.pod.StartWork(oc.tech.ID()); err != nil {
		return err
	}
	for i := 0; i < days; i++ {
		outcome, err := resolver.WorkSession(nil, oc.pod, oc.tech, alwaysPassCheck)
		if err != nil {
			return err
		}
		oc.outcome = outcome
		oc.tech.ResetDay()
	}
	return nil
}

func (oc *omniPodContext) theSpareStackShouldHold(quantity int) error {
	if oc.spare.Quantity() != quantity {
		return fmt.Errorf("expected spare quantity %d but got %d", quantity, oc.spare.Quantity())
	}
	return nil
}

func (oc *omniPodContext) theWarehouseShouldContainAPodMounted(key string) error {
	for _, p := range oc.wh.Parts() {
		if p.Podded() && p.CatalogKey() == key {
			return nil
		}
	}
	return fmt.Errorf("no pod-mounted %q in the warehouse", key)
}

func (oc *omniPodContext) thePodShellShouldStillBeEmpty() error {
	if oc.pod.Kind() != parts.KindOmniPod {
		return fmt.Errorf("expected an omni pod but got kind %s", oc.pod.Kind())
	}
	if oc.pod.Status() != "Empty" {
		return fmt.Errorf("expected status Empty but got %q", oc.pod.Status())
	}
	return nil
}

func (oc *omniPodContext) theWarehouseShouldHoldPartsInTotal(count int) error {
	if got := len(oc.wh.Parts()); got != count {
		return fmt.Errorf("expected %d warehouse parts but got %d", count, got)
	}
	return nil
}

func (oc *omniPodContext) theFollowingSparesInTheWarehouse(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		key := cellValue(table, row, "key")
		quantity, err := strconv.Atoi(cellValue(table, row, "quantity"))
		if err != nil {
			return fmt.Errorf("bad quantity for %q: %w", key, err)
		}
		spec, err := oc.cat.Lookup(key)
		if err != nil {
			return err
		}
		spare, err := parts.NewEquipment(spec, 6)
		if err != nil {
			return err
		}
		if err := spare.SetQuantity(quantity); err != nil {
			return err
		}
		oc.wh.AddPart(spare, 0)
	}
	return nil
}

func (oc *omniPodContext) theStockSnapshotShouldShow(table *godog.Table) error {
	entries := oc.wh.Snapshot()
	rows := table.Rows[1:]
	if len(entries) != len(rows) {
		return fmt.Errorf("expected %d stock lines but got %d", len(rows), len(entries))
	}
	for i, row := range rows {
		key := cellValue(table, row, "key")
		quantity, err := strconv.Atoi(cellValue(table, row, "quantity"))
		if err != nil {
			return fmt.Errorf("bad quantity for %q: %w", key, err)
		}
		if entries[i].Key != key || entries[i].Quantity != quantity {
			return fmt.Errorf("line %d: expected %s x%d but got %s x%d",
				i, key, quantity, entries[i].Key, entries[i].Quantity)
		}
	}
	return nil
}

// cellValue resolves a cell by header name so feature tables stay
// column-order independent.
func cellValue(table *godog.Table, row *messages.PickleTableRow, column string) string {
	for i, header := range table.Rows[0].Cells {
		if header.Value == column && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

func (oc *omniPodContext) thePodJobShouldBeResolvedSuccessfully() error {
	if !oc.outcome.Resolved || !oc.outcome.Success {
		return fmt.Errorf("expected a resolved successful session but got %+v", oc.outcome)
	}
	return nil
}

func InitializeOmniPodScenario(ctx *godog.ScenarioContext) {
	oc := &omniPodContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		oc.reset()
		return ctx, nil
	})

	ctx.Step(`^an empty "([^"]*)" omni pod in the warehouse$`, oc.anEmptyOmniPodInTheWarehouse)
	ctx.Step(`^a spare stack of (\d+) "([^"]*)" in the warehouse$`, oc.aSpareStackInTheWarehouse)
	ctx.Step(`^an "([^"]*)" technician named "([^"]*)" on the roster$`, oc.aTechnicianOnTheRoster)
	ctx.Step(`^the pod is fixed from stock$`, oc.thePodIsFixedFromStock)
	ctx.Step(`^"([^"]*)" works the pod for (\d+) days$`, oc.worksThePodForDays)
	ctx.Step(`^the spare stack should hold (\d+)$`, oc.theSpareStackShouldHold)
	ctx.Step(`^the warehouse should contain a pod-mounted "([^"]*)"$`, oc.theWarehouseShouldContainAPodMounted)
	ctx.Step(`^the pod shell should still be empty$`, oc.thePodShellShouldStillBeEmpty)
	ctx.Step(`^the warehouse should hold (\d+) part in total$`, oc.theWarehouseShouldHoldPartsInTotal)
	ctx.Step(`^the pod job should be resolved successfully$`, oc.thePodJobShouldBeResolvedSuccessfully)
	ctx.Step(`^the following spares in the warehouse:$`, oc.theFollowingSparesInTheWarehouse)
	ctx.Step(`^the stock snapshot should show:$`, oc.theStockSnapshotShouldShow)
}
