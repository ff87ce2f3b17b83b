package order

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
)

type Repository interface {
	// Header
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	// FindByIDForUpdate locks the header row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id int64) error

	// Line items
	InsertItems(ctx context.Context, items []model.OrderItem) error
	DeleteItems(ctx context.Context, orderID int64) error
	ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
