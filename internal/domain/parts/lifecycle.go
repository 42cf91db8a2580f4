package parts

import (
	"fmt"

	"github.com/ewynne/mechbay-go/internal/domain/shared"
	"github.com/ewynne/mechbay-go/pkg/utils"
)

// MaintenanceClassModifier is the difficulty surcharge for Class-D
// maintenance actions: podding equipment and refit-type repairs.
const MaintenanceClassModifier = 2

// omniPodPriceDivisor: empty pod hardware costs a fifth of its contents,
// rounded up, never free.
const omniPodPriceDivisor = 5

// SpareSource is the warehouse surface the part lifecycle needs: matching a
// fungible spare, inserting new stock and consuming a matched stack.
type SpareSource interface {
	FindMatchingSpare(template *Part) *Part
	AddPart(p *Part, quantityDelta int) *Part
	DecrementQuantity(id string) error
}

// BaseTime returns the base work minutes for the part's current job. Omni
// pods delegate to the missing-part-equivalent time of their contained
// equipment; missing placeholders use replacement time; everything else is a
// routine repair.
func (p *Part) BaseTime(cat Catalog) (int, error) {
	switch p.kind {
	case KindOmniPod:
		spec, err := cat.Lookup(p.podType.catalogKey)
		if err != nil {
			return 0, err
		}
		return spec.ReplacementTimeMinutes, nil
	case KindMissing:
		spec, err := cat.Lookup(p.catalogKey)
		if err != nil {
			return 0, err
		}
		return spec.ReplacementTimeMinutes, nil
	default:
		spec, err := cat.Lookup(p.catalogKey)
		if err != nil {
			return 0, err
		}
		return spec.BaseTimeMinutes, nil
	}
}

// Difficulty returns the job difficulty modifier. Podding equipment is a
// Class-D maintenance action and carries the +2 surcharge on top of the
// contained equipment's difficulty.
func (p *Part) Difficulty(cat Catalog) (int, error) {
	key := p.catalogKey
	if p.kind == KindOmniPod {
		key = p.podType.catalogKey
	}
	spec, err := cat.Lookup(key)
	if err != nil {
		return 0, err
	}
	if p.kind == KindOmniPod {
		return spec.Difficulty + MaintenanceClassModifier, nil
	}
	return spec.Difficulty, nil
}

// WorkTarget returns the total minutes a job must accrue before the skill
// roll resolves: base time scaled by difficulty, floor multiplier 1.
func (p *Part) WorkTarget(cat Catalog) (int, error) {
	base, err := p.BaseTime(cat)
	if err != nil {
		return 0, err
	}
	diff, err := p.Difficulty(cat)
	if err != nil {
		return 0, err
	}
	return base * utils.Max(diff, 1), nil
}

// RemainingTime returns the minutes still needed before the job resolves.
func (p *Part) RemainingTime(cat Catalog) (int, error) {
	target, err := p.WorkTarget(cat)
	if err != nil {
		return 0, err
	}
	return utils.Max(target-p.work.timeSpent, 0), nil
}

// TechRating returns the tech rating for sourcing and maintenance checks.
// Pods use the omni construction rating regardless of contents.
func (p *Part) TechRating(cat Catalog) (shared.Rating, error) {
	if p.kind == KindOmniPod {
		return shared.RatingE, nil
	}
	spec, err := cat.Lookup(p.catalogKey)
	if err != nil {
		return 0, err
	}
	return spec.TechRating, nil
}

// Availability returns the era-sensitive availability rating.
//
// For omni pods the two era breakpoints are reproduced exactly: omni
// technology is extinct in the Star League era, and through the Succession
// Wars for Inner Sphere designs; the Dark Age floors availability at D and
// every era in between floors it at E.
func (p *Part) Availability(cat Catalog, era shared.Era) (shared.Rating, error) {
	if p.kind != KindOmniPod {
		spec, err := cat.Lookup(p.catalogKey)
		if err != nil {
			return 0, err
		}
		return spec.AvailabilityIn(era), nil
	}

	spec, err := cat.Lookup(p.podType.catalogKey)
	if err != nil {
		return 0, err
	}
	switch {
	case era == shared.EraStarLeague,
		era == shared.EraSuccessionWars && spec.TechBase == shared.TechBaseInnerSphere:
		return shared.RatingX, nil
	case era == shared.EraDarkAge:
		return shared.MaxRating(spec.AvailabilityIn(era), shared.RatingD), nil
	default:
		return shared.MaxRating(spec.AvailabilityIn(era), shared.RatingE), nil
	}
}

// IntroYear returns the year the design became available. Pods cannot
// predate omni technology itself: 3052 for Inner Sphere, 2850 for Clan.
func (p *Part) IntroYear(cat Catalog) (int, error) {
	if p.kind != KindOmniPod {
		spec, err := cat.Lookup(p.catalogKey)
		if err != nil {
			return 0, err
		}
		return spec.IntroYear, nil
	}
	spec, err := cat.Lookup(p.podType.catalogKey)
	if err != nil {
		return 0, err
	}
	if spec.TechBase == shared.TechBaseInnerSphere {
		return utils.Max(3052, spec.IntroYear), nil
	}
	return utils.Max(2850, spec.IntroYear), nil
}

// StickerPrice returns the purchase price in C-bills. Empty pod hardware is
// cheap but never free: ceil(contents / 5).
func (p *Part) StickerPrice(cat Catalog) (int64, error) {
	if p.kind == KindOmniPod {
		inner, err := p.podType.StickerPrice(cat)
		if err != nil {
			return 0, err
		}
		return utils.CeilDiv(inner, omniPodPriceDivisor), nil
	}
	spec, err := cat.Lookup(p.catalogKey)
	if err != nil {
		return 0, err
	}
	return spec.Price, nil
}

// EquivalentTemplate returns the fungibility template used to source a
// replacement: for a missing placeholder, the good part it stands in for;
// for anything else, an idle clone of the part itself.
func (p *Part) EquivalentTemplate(cat Catalog) (*Part, error) {
	clone := p.Clone()
	if p.kind != KindMissing {
		return clone, nil
	}
	spec, err := cat.Lookup(p.catalogKey)
	if err != nil {
		return nil, err
	}
	clone.kind = spec.Kind
	clone.condition = ConditionGood
	return clone, nil
}

// CheckFixable reports whether the current maintenance action can proceed.
// Missing placeholders and empty pods need a sourceable replacement; the
// failure is recoverable and retried on a later day.
func (p *Part) CheckFixable(cat Catalog, src SpareSource) error {
	switch p.kind {
	case KindOmniPod:
		if src.FindMatchingSpare(p.podType) == nil {
			return &ErrNoReplacementAvailable{Key: p.podType.catalogKey, Tonnage: p.podType.tonnage}
		}
		return nil
	case KindMissing:
		template, err := p.EquivalentTemplate(cat)
		if err != nil {
			return err
		}
		if src.FindMatchingSpare(template) == nil {
			return &ErrNoReplacementAvailable{Key: p.catalogKey, Tonnage: p.tonnage}
		}
		return nil
	default:
		return nil
	}
}

// Fix resolves a successful maintenance action.
//
// OmniPod: clone the contained equipment template, source a matching spare,
// mark the new instance as podded, insert it into stock and consume one from
// the matched stack. Without a match the fix is a no-op beyond bookkeeping:
// the pod exists but there is nothing to put in it yet. The pod entity
// itself stays in the warehouse, still empty.
//
// Missing: consume a matching spare and become the good part it stood in
// for.
//
// Everything else transitions back to Good in place.
func (p *Part) Fix(cat Catalog, src SpareSource) error {
	switch p.kind {
	case KindOmniPod:
		newPart := p.podType.Clone()
		if spare := src.FindMatchingSpare(newPart); spare != nil {
			newPart.podded = true
			src.AddPart(newPart, 0)
			if err := src.DecrementQuantity(spare.ID()); err != nil {
				return err
			}
		}
		return nil

	case KindMissing:
		spec, err := cat.Lookup(p.catalogKey)
		if err != nil {
			return err
		}
		template, err := p.EquivalentTemplate(cat)
		if err != nil {
			return err
		}
		spare := src.FindMatchingSpare(template)
		if spare == nil {
			return &ErrNoReplacementAvailable{Key: p.catalogKey, Tonnage: p.tonnage}
		}
		if err := src.DecrementQuantity(spare.ID()); err != nil {
			return err
		}
		p.kind = spec.Kind
		p.condition = ConditionGood
		p.armorPoints = p.armorTotal
		p.shotsNeeded = 0
		return nil

	case KindArmor:
		p.armorPoints = p.armorTotal
		p.condition = ConditionGood
		return nil

	case KindAmmoBin:
		p.shotsNeeded = 0
		p.condition = ConditionGood
		return nil

	default:
		p.condition = ConditionGood
		return nil
	}
}

// RestoreInPlace is the GM bulk-repair variant of Fix: it bypasses warehouse
// sourcing entirely and never applies to missing placeholders (those are
// removed and re-derived by the restore pass instead).
func (p *Part) RestoreInPlace() error {
	if p.kind == KindMissing {
		return &ErrNotFixableInPlace{PartID: p.id, Kind: p.kind}
	}
	p.armorPoints = p.armorTotal
	p.shotsNeeded = 0
	p.condition = ConditionGood
	return nil
}

// FailOutcome reports how a failed skill roll resolved.
type FailOutcome struct {
	// Destroyed is terminal for this part instance: it is removed
	// permanently and never returns to the warehouse.
	Destroyed bool
	// RequiredSkill is the escalated requirement for the next attempt.
	RequiredSkill shared.Skill
	// Message is the human-readable report line.
	Message string
}

// Fail resolves a failed skill roll as an explicit state transition: the
// escalated part state is returned rather than mutated in place, keeping the
// escalation auditable. Each failure raises the effective skill requirement
// by one tier and resets accrued time and overtime; escalating past the
// maximum tier destroys the part.
func (p Part) Fail(skill shared.Skill) (Part, FailOutcome) {
	next := p
	next.required = skill + 1
	next.work.timeSpent = 0
	next.work.overtime = 0

	outcome := FailOutcome{RequiredSkill: next.required}
	if next.required > shared.MaxSkill {
		outcome.Destroyed = true
		outcome.Message = fmt.Sprintf("repair of %s failed and the part was destroyed", p.name)
	} else {
		outcome.Message = fmt.Sprintf("repair of %s failed; next attempt requires %s", p.name, next.required)
	}
	return next, outcome
}
