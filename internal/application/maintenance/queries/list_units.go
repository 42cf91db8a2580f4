package queries

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/ewynne/mechbay-go/internal/application/common"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

// ListUnitsQuery represents a query for the campaign's unit roster
type ListUnitsQuery struct{}

// UnitSummaryDTO is the presentation view of one unit
type UnitSummaryDTO struct {
	ID           string
	Name         string
	Tonnage      float64
	Deployed     bool
	Refitting    bool
	PartCount    int
	NeedsFixing  int
	MissingParts int
}

// ListUnitsResponse holds the roster summaries
type ListUnitsResponse struct {
	Units []UnitSummaryDTO
}

// ListUnitsHandler handles the ListUnits query
type ListUnitsHandler struct {
	campaign *common.Campaign
}

// NewListUnitsHandler creates a new ListUnitsHandler
func NewListUnitsHandler(campaign *common.Campaign) *ListUnitsHandler {
	return &ListUnitsHandler{campaign: campaign}
}

// Handle executes the ListUnits query
func (h *ListUnitsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ListUnitsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListUnitsQuery")
	}

	result := lo.Map(h.campaign.Units(), func(u *unit.Unit, _ int) UnitSummaryDTO {
		broken := u.NeedsFixing()
		return UnitSummaryDTO{
			ID:          u.ID(),
			Name:        u.Name(),
			Tonnage:     u.Tonnage(),
			Deployed:    u.Deployed(),
			Refitting:   u.Refitting(),
			PartCount:   len(u.Parts()),
			NeedsFixing: len(broken),
			MissingParts: lo.CountBy(broken, func(p *parts.Part) bool {
				return p.Kind() == parts.KindMissing
			}),
		}
	})
	return &ListUnitsResponse{Units: result}, nil
}
