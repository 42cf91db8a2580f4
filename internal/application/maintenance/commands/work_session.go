package commands

import (
	"context"
	"fmt"

	"github.com/ewynne/mechbay-go/internal/application/common"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
)

// RunWorkSessionCommand represents a command to apply one day of an
// assigned technician's time to a part.
type RunWorkSessionCommand struct {
	TechID string
	PartID string
}

// RunWorkSessionResponse represents the session outcome
type RunWorkSessionResponse struct {
	Outcome repair.SessionOutcome
}

// RunWorkSessionHandler handles the RunWorkSession command
type RunWorkSessionHandler struct {
	campaign *common.Campaign
	check    repair.SkillCheck
	metrics  common.MaintenanceMetrics
}

// NewRunWorkSessionHandler creates a new RunWorkSessionHandler
func NewRunWorkSessionHandler(campaign *common.Campaign, check repair.SkillCheck, metrics common.MaintenanceMetrics) *RunWorkSessionHandler {
	return &RunWorkSessionHandler{
		campaign: campaign,
		check:    check,
		metrics:  metrics,
	}
}

// Handle executes the RunWorkSession command
func (h *RunWorkSessionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunWorkSessionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunWorkSessionCommand")
	}

	tech, err := h.campaign.Tech(cmd.TechID)
	if err != nil {
		return nil, err
	}
	p, owner, err := h.campaign.FindPart(cmd.PartID)
	if err != nil {
		return nil, err
	}

	resolver := repair.NewResolver(h.campaign.Catalog, h.campaign.Warehouse)
	outcome, err := resolver.WorkSession(owner, p, tech, h.check)
	if err != nil {
		return nil, err
	}

	if outcome.Resolved {
		switch {
		case outcome.Destroyed:
			h.metrics.RecordRepair("destroyed")
			h.metrics.RecordPartDestroyed(string(p.Kind()))
		case outcome.Success:
			h.metrics.RecordRepair("success")
		default:
			h.metrics.RecordRepair("failure")
		}
	}

	common.LoggerFromContext(ctx).Log("info", "work session", map[string]interface{}{
		"tech_id":  tech.ID(),
		"part_id":  outcome.PartID,
		"minutes":  outcome.MinutesWorked,
		"resolved": outcome.Resolved,
		"success":  outcome.Success,
	})

	return &RunWorkSessionResponse{Outcome: outcome}, nil
}
