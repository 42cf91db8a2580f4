package warehouse

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ewynne/mechbay-go/internal/domain/parts"
)

// Warehouse is the campaign's pool of spare parts: everything not currently
// installed on a unit. It owns the entities it holds; units and refit
// projects only hold reservations on warehouse stock, never the parts
// themselves, until a job commits.
//
// Thread-Safety:
// The daily tick is single-threaded, but the CLI and the tick can touch
// stock from different goroutines, so all operations are mutex-guarded.
//
// Invariants:
//   - A part is claimed by at most one repair or refit at a time; a second
//     claim is rejected with a typed error, never queued.
//   - Stacks (quantity > 1) exist only for Good, Idle spares.
//   - Matching scans ascending part id so outcomes are reproducible.
type Warehouse struct {
	mu     sync.RWMutex
	stock  map[string]*parts.Part
	claims map[string]parts.WorkPurpose
}

// New creates an empty warehouse.
func New() *Warehouse {
	return &Warehouse{
		stock:  make(map[string]*parts.Part),
		claims: make(map[string]parts.WorkPurpose),
	}
}

// sortedIDs returns stock ids in ascending order. Callers hold the lock.
func (w *Warehouse) sortedIDs() []string {
	ids := make([]string, 0, len(w.stock))
	for id := range w.stock {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FindMatchingSpare returns the first unclaimed, present, undamaged spare
// interchangeable with the template, or nil. "First" means lowest part id:
// the scan order is deterministic so repeated lookups within a tick agree.
func (w *Warehouse) FindMatchingSpare(template *parts.Part) *parts.Part {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, id := range w.sortedIDs() {
		p := w.stock[id]
		if _, claimed := w.claims[id]; claimed {
			continue
		}
		if !p.Present() || p.WorkStatus() != parts.WorkIdle {
			continue
		}
		if p.Condition() != parts.ConditionGood {
			continue
		}
		if p.IsSamePartType(template) {
			return p
		}
	}
	return nil
}

// AddPart inserts a part into stock, merging it into an existing stack when
// an interchangeable Good, Idle spare already exists. quantityDelta adjusts
// the inserted amount on top of the part's own quantity. Returns the entity
// that now owns the stock.
func (w *Warehouse) AddPart(p *parts.Part, quantityDelta int) *parts.Part {
	w.mu.Lock()
	defer w.mu.Unlock()

	p.Uninstall()
	amount := p.Quantity() + quantityDelta
	if amount < 1 {
		amount = 1
	}

	if p.Condition() == parts.ConditionGood && p.WorkStatus() == parts.WorkIdle {
		for _, id := range w.sortedIDs() {
			existing := w.stock[id]
			if existing.ID() == p.ID() {
				continue
			}
			if _, claimed := w.claims[id]; claimed {
				continue
			}
			if existing.Condition() != parts.ConditionGood || existing.WorkStatus() != parts.WorkIdle {
				continue
			}
			if existing.IsSamePartType(p) {
				// Merge preserves the surviving stack's identity.
				_ = existing.SetQuantity(existing.Quantity() + amount)
				delete(w.stock, p.ID())
				return existing
			}
		}
	}

	_ = p.SetQuantity(amount)
	w.stock[p.ID()] = p
	return p
}

// DecrementQuantity consumes one unit from a stack. At zero the entity is
// removed from the warehouse and its ownership ends.
func (w *Warehouse) DecrementQuantity(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.stock[id]
	if !ok {
		return &ErrPartNotFound{PartID: id}
	}
	if p.Quantity() <= 1 {
		delete(w.stock, id)
		delete(w.claims, id)
		return nil
	}
	return p.SetQuantity(p.Quantity() - 1)
}

// Remove takes a part out of the warehouse entirely, e.g. for installation
// on a unit. Claimed parts must be released or committed first.
func (w *Warehouse) Remove(id string) (*parts.Part, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.stock[id]
	if !ok {
		return nil, &ErrPartNotFound{PartID: id}
	}
	if !p.Present() {
		return nil, &ErrPartUnavailable{PartID: id, Status: p.Status()}
	}
	delete(w.stock, id)
	delete(w.claims, id)
	return p, nil
}

// Claim places an exclusive reservation on a part. The claim must be
// atomic with respect to the daily maintenance pass: a part mid-claim is
// rejected, never silently overwritten.
func (w *Warehouse) Claim(id string, purpose parts.WorkPurpose) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.stock[id]
	if !ok {
		return &ErrPartNotFound{PartID: id}
	}
	if existing, claimed := w.claims[id]; claimed {
		return &ErrPartAlreadyClaimed{PartID: id, Purpose: existing}
	}
	if !p.Present() {
		return &ErrPartUnavailable{PartID: id, Status: p.Status()}
	}
	if err := p.Reserve(purpose); err != nil {
		return err
	}
	w.claims[id] = purpose
	return nil
}

// ClaimOne reserves a single unit from a stack, splitting a quantity-1
// entity off when needed, and returns the claimed entity.
func (w *Warehouse) ClaimOne(id string, purpose parts.WorkPurpose) (*parts.Part, error) {
	w.mu.Lock()

	p, ok := w.stock[id]
	if !ok {
		w.mu.Unlock()
		return nil, &ErrPartNotFound{PartID: id}
	}
	if _, claimed := w.claims[id]; claimed {
		w.mu.Unlock()
		return nil, &ErrPartAlreadyClaimed{PartID: id, Purpose: w.claims[id]}
	}
	if p.Quantity() <= 1 {
		w.mu.Unlock()
		return p, w.Claim(id, purpose)
	}

	_ = p.SetQuantity(p.Quantity() - 1)
	split := p.Clone()
	w.stock[split.ID()] = split
	w.mu.Unlock()

	if err := w.Claim(split.ID(), purpose); err != nil {
		return nil, err
	}
	return split, nil
}

// Release drops a claim, returning the part to the unreserved pool. The
// entity is merged back into a matching stack when possible.
func (w *Warehouse) Release(id string) error {
	w.mu.Lock()
	p, ok := w.stock[id]
	if !ok {
		w.mu.Unlock()
		return &ErrPartNotFound{PartID: id}
	}
	if _, claimed := w.claims[id]; !claimed {
		w.mu.Unlock()
		return &ErrPartNotClaimed{PartID: id}
	}
	delete(w.claims, id)
	p.ClearReservation()
	delete(w.stock, id)
	w.mu.Unlock()

	w.AddPart(p, 0)
	return nil
}

// RestoreClaim re-registers a claim from persisted reservation state
// without touching the part's own work state. Repository use only.
func (w *Warehouse) RestoreClaim(id string, purpose parts.WorkPurpose) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.stock[id]; !ok {
		return &ErrPartNotFound{PartID: id}
	}
	w.claims[id] = purpose
	return nil
}

// ClaimedBy returns the purpose of an active claim, if any.
func (w *Warehouse) ClaimedBy(id string) (parts.WorkPurpose, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	purpose, ok := w.claims[id]
	return purpose, ok
}

// Get returns a part by id.
func (w *Warehouse) Get(id string) (*parts.Part, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.stock[id]
	if !ok {
		return nil, &ErrPartNotFound{PartID: id}
	}
	return p, nil
}

// Parts returns all stocked parts in ascending id order.
func (w *Warehouse) Parts() []*parts.Part {
	w.mu.RLock()
	defer w.mu.RUnlock()

	result := make([]*parts.Part, 0, len(w.stock))
	for _, id := range w.sortedIDs() {
		result = append(result, w.stock[id])
	}
	return result
}

// AdvanceArrivals decrements every in-transit counter exactly once,
// floor-clamped at zero. Called once per daily tick.
func (w *Warehouse) AdvanceArrivals() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, id := range w.sortedIDs() {
		w.stock[id].AdvanceArrival()
	}
}

// StockEntry is one line of the structural stock listing.
type StockEntry struct {
	Kind      parts.Kind
	Key       string
	Name      string
	Tonnage   float64
	SubRating int
	Condition parts.Condition
	Podded    bool
	Quantity  int
}

// Snapshot returns the structural stock state: what is on hand by type and
// quantity, independent of entity identity. Two warehouses with the same
// snapshot are interchangeable for planning purposes.
func (w *Warehouse) Snapshot() []StockEntry {
	w.mu.RLock()
	defer w.mu.RUnlock()

	byType := make(map[string]*StockEntry)
	var order []string
	for _, id := range w.sortedIDs() {
		p := w.stock[id]
		key := fmt.Sprintf("%s|%s|%.3f|%d|%s|%t", p.Kind(), p.CatalogKey(), p.Tonnage(), p.SubRating(), p.Condition(), p.Podded())
		if p.Kind() == parts.KindOmniPod && p.PodType() != nil {
			key += "|pod:" + p.PodType().CatalogKey()
		}
		if entry, ok := byType[key]; ok {
			entry.Quantity += p.Quantity()
			continue
		}
		byType[key] = &StockEntry{
			Kind:      p.Kind(),
			Key:       p.CatalogKey(),
			Name:      p.Name(),
			Tonnage:   p.Tonnage(),
			SubRating: p.SubRating(),
			Condition: p.Condition(),
			Podded:    p.Podded(),
			Quantity:  p.Quantity(),
		}
		order = append(order, key)
	}

	sort.Strings(order)
	result := make([]StockEntry, 0, len(order))
	for _, key := range order {
		result = append(result, *byType[key])
	}
	return result
}
