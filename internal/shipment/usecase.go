package shipment

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment/dto"
)

type UseCase interface {
	CreateShipment(ctx context.Context, input *dto.CreateShipmentInput) (*model.Shipment, error)
	GetShipment(ctx context.Context, id int64) (*model.Shipment, error)
	GetShipmentDetails(ctx context.Context, id int64) (*model.Shipment, error)
	ListShipments(ctx context.Context, filters *dto.ShipmentFilters) ([]model.Shipment, int, error)
	UpdateShipment(ctx context.Context, input *dto.UpdateShipmentInput) (*model.Shipment, error)
	DeleteShipment(ctx context.Context, id int64) error
}
