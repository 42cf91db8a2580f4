package common

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/refit"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
	"github.com/ewynne/mechbay-go/internal/domain/warehouse"
)

// Campaign is the in-memory registry of live aggregates the handlers work
// against. Persistence is write-through: handlers mutate these entities and
// save snapshots via the repositories afterwards.
//
// Thread-Safety:
// The registry maps are mutex-guarded; the aggregates themselves carry
// their own guarantees (the warehouse locks internally, units and refits
// are only touched from the tick and CLI paths serialized by this mutex).
type Campaign struct {
	mu sync.RWMutex

	Era       shared.Era
	Catalog   parts.Catalog
	Warehouse *warehouse.Warehouse

	units  map[string]*unit.Unit
	techs  map[string]*repair.Tech
	refits map[string]*refit.Refit
}

// NewCampaign creates an empty campaign registry.
func NewCampaign(era shared.Era, cat parts.Catalog) *Campaign {
	return &Campaign{
		Era:       era,
		Catalog:   cat,
		Warehouse: warehouse.New(),
		units:     make(map[string]*unit.Unit),
		techs:     make(map[string]*repair.Tech),
		refits:    make(map[string]*refit.Refit),
	}
}

// AddUnit registers a unit with the campaign.
func (c *Campaign) AddUnit(u *unit.Unit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.units[u.ID()] = u
}

// Unit returns a registered unit by id.
func (c *Campaign) Unit(id string) (*unit.Unit, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.units[id]
	if !ok {
		return nil, fmt.Errorf("unknown unit %s", id)
	}
	return u, nil
}

// UnitByName returns a registered unit by display name.
func (c *Campaign) UnitByName(name string) (*unit.Unit, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, id := range sortedKeys(c.units) {
		if c.units[id].Name() == name {
			return c.units[id], nil
		}
	}
	return nil, fmt.Errorf("unknown unit %q", name)
}

// Units returns every registered unit in ascending id order.
func (c *Campaign) Units() []*unit.Unit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*unit.Unit, 0, len(c.units))
	for _, id := range sortedKeys(c.units) {
		result = append(result, c.units[id])
	}
	return result
}

// OwnerOf returns the unit a part is installed on, or nil for warehouse
// stock.
func (c *Campaign) OwnerOf(p *parts.Part) *unit.Unit {
	if !p.Installed() {
		return nil
	}
	u, err := c.Unit(p.UnitID())
	if err != nil {
		return nil
	}
	return u
}

// AddTech registers a roster entry.
func (c *Campaign) AddTech(t *repair.Tech) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.techs[t.ID()] = t
}

// Tech returns a roster entry by id.
func (c *Campaign) Tech(id string) (*repair.Tech, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.techs[id]
	if !ok {
		return nil, fmt.Errorf("unknown tech %s", id)
	}
	return t, nil
}

// Techs returns the roster in ascending id order.
func (c *Campaign) Techs() []*repair.Tech {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*repair.Tech, 0, len(c.techs))
	for _, id := range sortedKeys(c.techs) {
		result = append(result, c.techs[id])
	}
	return result
}

// AddRefit registers an active refit project.
func (c *Campaign) AddRefit(r *refit.Refit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refits[r.ID()] = r
}

// Refit returns an active project by id.
func (c *Campaign) Refit(id string) (*refit.Refit, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.refits[id]
	if !ok {
		return nil, fmt.Errorf("unknown refit %s", id)
	}
	return r, nil
}

// Refits returns active projects in ascending id order.
func (c *Campaign) Refits() []*refit.Refit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*refit.Refit, 0, len(c.refits))
	for _, id := range sortedKeys(c.refits) {
		result = append(result, c.refits[id])
	}
	return result
}

// RemoveRefit drops a terminal project from the registry.
func (c *Campaign) RemoveRefit(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.refits, id)
}

// FindPart resolves a part id against installed parts first, then
// warehouse stock. The returned unit is nil for warehouse parts.
func (c *Campaign) FindPart(id string) (*parts.Part, *unit.Unit, error) {
	c.mu.RLock()
	for _, uid := range sortedKeys(c.units) {
		u := c.units[uid]
		if p, err := u.Part(id); err == nil {
			c.mu.RUnlock()
			return p, u, nil
		}
	}
	c.mu.RUnlock()

	p, err := c.Warehouse.Get(id)
	if err != nil {
		return nil, nil, err
	}
	return p, nil, nil
}

// RecoveryResult contains the outcome of campaign state recovery.
type RecoveryResult struct {
	Units  int
	Parts  int
	Techs  int
	Refits int
}

// Recover rebuilds the in-memory registry from persistence on startup.
// Installed parts are rebound to their units, everything else lands in the
// warehouse, and non-terminal refit projects are re-attached with their kit
// claims restored.
func (c *Campaign) Recover(
	ctx context.Context,
	unitRepo UnitRepository,
	partRepo PartRepository,
	refitRepo RefitRepository,
	techRepo TechRepository,
) (*RecoveryResult, error) {
	result := &RecoveryResult{}

	partSnaps, err := partRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load parts: %w", err)
	}
	byUnit := make(map[string][]*parts.Part)
	for _, snap := range partSnaps {
		p, err := parts.FromSnapshot(snap)
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild part %s: %w", snap.ID, err)
		}
		result.Parts++
		if snap.UnitID != "" {
			byUnit[snap.UnitID] = append(byUnit[snap.UnitID], p)
			continue
		}
		c.Warehouse.AddPart(p, 0)
		if snap.WorkStatus == parts.WorkReserved {
			if err := c.Warehouse.RestoreClaim(p.ID(), snap.Purpose); err != nil {
				return nil, err
			}
		}
	}

	unitSnaps, err := unitRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}
	for _, snap := range unitSnaps {
		u, err := unit.FromSnapshot(snap, byUnit[snap.ID])
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild unit %s: %w", snap.ID, err)
		}
		c.AddUnit(u)
		result.Units++
	}

	techSnaps, err := techRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load techs: %w", err)
	}
	for _, snap := range techSnaps {
		c.AddTech(repair.TechFromSnapshot(snap))
		result.Techs++
	}

	refitSnaps, err := refitRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load refits: %w", err)
	}
	for _, snap := range refitSnaps {
		if snap.Status.Terminal() {
			continue
		}
		u, err := c.Unit(snap.UnitID)
		if err != nil {
			return nil, fmt.Errorf("refit %s references unknown unit %s", snap.ID, snap.UnitID)
		}
		r, err := refit.FromSnapshot(snap, u, c.Warehouse)
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild refit %s: %w", snap.ID, err)
		}
		c.AddRefit(r)
		result.Refits++
	}

	return result, nil
}

// Persist writes the full campaign state through the repositories.
func (c *Campaign) Persist(
	ctx context.Context,
	unitRepo UnitRepository,
	partRepo PartRepository,
	refitRepo RefitRepository,
	techRepo TechRepository,
) error {
	var snaps []parts.Snapshot
	for _, p := range c.Warehouse.Parts() {
		snaps = append(snaps, p.ToSnapshot())
	}
	for _, u := range c.Units() {
		for _, p := range u.Parts() {
			snaps = append(snaps, p.ToSnapshot())
		}
		if err := unitRepo.Save(ctx, u.ToSnapshot()); err != nil {
			return fmt.Errorf("failed to save unit %s: %w", u.ID(), err)
		}
	}
	if err := partRepo.SaveAll(ctx, snaps); err != nil {
		return fmt.Errorf("failed to save parts: %w", err)
	}
	for _, t := range c.Techs() {
		if err := techRepo.Save(ctx, t.ToSnapshot()); err != nil {
			return fmt.Errorf("failed to save tech %s: %w", t.ID(), err)
		}
	}
	for _, r := range c.Refits() {
		if err := refitRepo.Save(ctx, r.ToSnapshot()); err != nil {
			return fmt.Errorf("failed to save refit %s: %w", r.ID(), err)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
