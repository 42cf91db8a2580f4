package commands

import (
	"context"
	"fmt"

	"github.com/ewynne/mechbay-go/internal/application/common"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
)

// AssignTechCommand represents a command to commit a technician to a part's
// work session.
type AssignTechCommand struct {
	TechID string
	PartID string
}

// AssignTechResponse represents the result of assigning a technician
type AssignTechResponse struct {
	Report string
}

// AssignTechHandler handles the AssignTech command
type AssignTechHandler struct {
	campaign *common.Campaign
}

// NewAssignTechHandler creates a new AssignTechHandler
func NewAssignTechHandler(campaign *common.Campaign) *AssignTechHandler {
	return &AssignTechHandler{campaign: campaign}
}

// Handle executes the AssignTech command
func (h *AssignTechHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AssignTechCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AssignTechCommand")
	}

	tech, err := h.campaign.Tech(cmd.TechID)
	if err != nil {
		return nil, err
	}
	p, _, err := h.campaign.FindPart(cmd.PartID)
	if err != nil {
		return nil, err
	}

	resolver := repair.NewResolver(h.campaign.Catalog, h.campaign.Warehouse)
	if err := resolver.AssignTech(tech, p); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("info", "tech assigned", map[string]interface{}{
		"tech_id": tech.ID(),
		"part_id": p.ID(),
	})

	return &AssignTechResponse{
		Report: fmt.Sprintf("%s assigned to %s", tech.Name(), p.Name()),
	}, nil
}
