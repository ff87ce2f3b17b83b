package shipment

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment/dto"
)

type Repository interface {
	// Header
	Create(ctx context.Context, shipment *model.Shipment) error
	FindByID(ctx context.Context, id int64) (*model.Shipment, error)
	// FindByIDForUpdate locks the header row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*model.Shipment, error)
	FindAll(ctx context.Context, filters *dto.ShipmentFilters) ([]model.Shipment, int, error)
	Update(ctx context.Context, shipment *model.Shipment) error
	Delete(ctx context.Context, id int64) error

	// Line items
	InsertItems(ctx context.Context, items []model.ShipmentItem) error
	DeleteItems(ctx context.Context, shipmentID int64) error
	ListItems(ctx context.Context, shipmentID int64) ([]model.ShipmentItem, error)
}
