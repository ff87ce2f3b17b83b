package inventory

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	stockDto "github.com/fekuna/omnipos-backoffice-service/internal/stock/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	UpdateProductPrice(ctx context.Context, input *dto.UpdatePriceInput) (*model.Product, error)
	ListMovements(ctx context.Context, filters *stockDto.MovementFilters) ([]model.StockMovement, int, error)
}
