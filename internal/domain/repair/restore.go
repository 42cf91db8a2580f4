package repair

import (
	"fmt"

	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

// RestoreResult summarizes a bulk restore.
type RestoreResult struct {
	Passes        int
	PartsFixed    int
	PartsRederive int
	Report        []string
}

// Restore is the GM bulk-repair action: fix everything on an available
// unit, bypassing skill rolls and warehouse sourcing. Missing placeholders
// cannot be fixed in place, only replaced, so each pass removes them,
// clears location damage, and re-derives the part list; fixing one can
// expose further missing parts concealed behind it (cascading structural
// damage), so the sweep repeats until a full pass changes nothing.
//
// For a unit with N cascading missing placeholders the loop terminates
// within N+1 passes.
func Restore(u *unit.Unit, cat parts.Catalog) (RestoreResult, error) {
	result := RestoreResult{}
	u.SetSalvage(false)

	needsCheck := true
	for u.Available() && needsCheck {
		needsCheck = false
		result.Passes++

		for _, p := range u.Parts() {
			if p.Kind() == parts.KindMissing {
				// A missing part cannot be told "replace yourself";
				// drop the placeholder and let derivation rebuild the slot.
				slot := p.Slot()
				p.ResetWork()
				if _, err := u.Remove(p.ID()); err != nil {
					return result, err
				}
				if err := u.HealSlot(slot); err != nil {
					return result, err
				}
				needsCheck = true
				continue
			}

			if p.NeedsFixing() {
				needsCheck = true
				result.PartsFixed++
			}
			if err := p.RestoreInPlace(); err != nil {
				return result, err
			}
			p.ResetWork()
		}

		// Clear lingering location damage in one corrective action, then
		// re-derive so newly reachable slots materialize.
		u.HealAllSlots()
		created, err := u.DeriveParts(cat)
		if err != nil {
			return result, err
		}
		if created > 0 {
			needsCheck = true
			result.PartsRederive += created
		}
	}

	result.Report = append(result.Report,
		fmt.Sprintf("%s restored in %d passes (%d parts fixed, %d re-derived)",
			u.Name(), result.Passes, result.PartsFixed, result.PartsRederive))
	return result, nil
}
