package queries

import (
	"context"
	"fmt"

	"github.com/ewynne/mechbay-go/internal/application/common"
	"github.com/ewynne/mechbay-go/internal/domain/warehouse"
)

// GetWarehouseStockQuery represents a query for the structural stock listing
type GetWarehouseStockQuery struct{}

// GetWarehouseStockResponse holds stock grouped by part type
type GetWarehouseStockResponse struct {
	Entries []warehouse.StockEntry
}

// GetWarehouseStockHandler handles the GetWarehouseStock query
type GetWarehouseStockHandler struct {
	campaign *common.Campaign
}

// NewGetWarehouseStockHandler creates a new GetWarehouseStockHandler
func NewGetWarehouseStockHandler(campaign *common.Campaign) *GetWarehouseStockHandler {
	return &GetWarehouseStockHandler{campaign: campaign}
}

// Handle executes the GetWarehouseStock query
func (h *GetWarehouseStockHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetWarehouseStockQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetWarehouseStockQuery")
	}
	return &GetWarehouseStockResponse{Entries: h.campaign.Warehouse.Snapshot()}, nil
}
