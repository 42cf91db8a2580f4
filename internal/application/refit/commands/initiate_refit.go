package commands

import (
	"context"
	"fmt"

	"github.com/ewynne/mechbay-go/internal/application/common"
	"github.com/ewynne/mechbay-go/internal/domain/refit"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

// InitiateRefitCommand represents a command to plan a refit and claim its
// kit from warehouse stock.
type InitiateRefitCommand struct {
	UnitID        string
	Target        []unit.Slot
	Refurbishment bool
	CustomJob     bool
	// Begin starts the project immediately when the kit is complete.
	Begin bool
}

// InitiateRefitResponse represents the planning result
type InitiateRefitResponse struct {
	RefitID             string
	Status              refit.Status
	TimeRequiredMinutes int
	Shortfall           []string
	Removals            []string
}

// InitiateRefitHandler handles the InitiateRefit command
type InitiateRefitHandler struct {
	campaign *common.Campaign
	metrics  common.MaintenanceMetrics
}

// NewInitiateRefitHandler creates a new InitiateRefitHandler
func NewInitiateRefitHandler(campaign *common.Campaign, metrics common.MaintenanceMetrics) *InitiateRefitHandler {
	return &InitiateRefitHandler{campaign: campaign, metrics: metrics}
}

// Handle executes the InitiateRefit command
func (h *InitiateRefitHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*InitiateRefitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *InitiateRefitCommand")
	}

	u, err := h.campaign.Unit(cmd.UnitID)
	if err != nil {
		return nil, err
	}

	project, err := refit.Plan(u, cmd.Target, h.campaign.Warehouse, h.campaign.Catalog, refit.Options{
		Refurbishment: cmd.Refurbishment,
		CustomJob:     cmd.CustomJob,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to plan refit for %s: %w", u.Name(), err)
	}
	h.campaign.AddRefit(project)
	h.metrics.RecordRefitTransition(string(project.Status()))

	if cmd.Begin {
		if err := project.Begin(); err != nil {
			return nil, err
		}
		h.metrics.RecordRefitTransition(string(project.Status()))
	}

	common.LoggerFromContext(ctx).Log("info", "refit planned", map[string]interface{}{
		"refit_id":  project.ID(),
		"unit_id":   u.ID(),
		"shortfall": len(project.Shortfall()),
	})

	return &InitiateRefitResponse{
		RefitID:             project.ID(),
		Status:              project.Status(),
		TimeRequiredMinutes: project.TimeRequiredMinutes(),
		Shortfall:           project.Shortfall(),
		Removals:            project.Removals(),
	}, nil
}
