package queries

import (
	"context"
	"fmt"

	"github.com/ewynne/mechbay-go/internal/application/common"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

// GetPartStatusQuery represents a query for one part's maintenance view
type GetPartStatusQuery struct {
	PartID string
}

// PartStatusDTO is the presentation view of a part
type PartStatusDTO struct {
	ID               string
	Name             string
	Kind             parts.Kind
	Condition        parts.Condition
	Status           string
	UnitName         string
	Slot             int
	Quantity         int
	RequiredSkill    shared.Skill
	BaseTimeMinutes  int
	WorkTarget       int
	RemainingMinutes int
	Difficulty       int
	TechRating       shared.Rating
	Availability     shared.Rating
	IntroYear        int
	Price            int64
}

// GetPartStatusResponse wraps the DTO
type GetPartStatusResponse struct {
	Part PartStatusDTO
}

// GetPartStatusHandler handles the GetPartStatus query
type GetPartStatusHandler struct {
	campaign *common.Campaign
}

// NewGetPartStatusHandler creates a new GetPartStatusHandler
func NewGetPartStatusHandler(campaign *common.Campaign) *GetPartStatusHandler {
	return &GetPartStatusHandler{campaign: campaign}
}

// Handle executes the GetPartStatus query
func (h *GetPartStatusHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetPartStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPartStatusQuery")
	}

	p, owner, err := h.campaign.FindPart(query.PartID)
	if err != nil {
		return nil, err
	}

	cat := h.campaign.Catalog
	baseTime, err := p.BaseTime(cat)
	if err != nil {
		return nil, err
	}
	target, err := p.WorkTarget(cat)
	if err != nil {
		return nil, err
	}
	remaining, err := p.RemainingTime(cat)
	if err != nil {
		return nil, err
	}
	difficulty, err := p.Difficulty(cat)
	if err != nil {
		return nil, err
	}
	techRating, err := p.TechRating(cat)
	if err != nil {
		return nil, err
	}
	availability, err := p.Availability(cat, h.campaign.Era)
	if err != nil {
		return nil, err
	}
	introYear, err := p.IntroYear(cat)
	if err != nil {
		return nil, err
	}
	price, err := p.StickerPrice(cat)
	if err != nil {
		return nil, err
	}

	dto := PartStatusDTO{
		ID:               p.ID(),
		Name:             p.Name(),
		Kind:             p.Kind(),
		Condition:        p.Condition(),
		Status:           p.Status(),
		Slot:             p.Slot(),
		Quantity:         p.Quantity(),
		RequiredSkill:    p.RequiredSkill(),
		BaseTimeMinutes:  baseTime,
		WorkTarget:       target,
		RemainingMinutes: remaining,
		Difficulty:       difficulty,
		TechRating:       techRating,
		Availability:     availability,
		IntroYear:        introYear,
		Price:            price,
	}
	if owner != nil {
		dto.UnitName = owner.Name()
	}

	return &GetPartStatusResponse{Part: dto}, nil
}
