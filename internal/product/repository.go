package product

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/shopspring/decimal"
)

// Repository is the slice of product storage the transaction engine needs.
// Catalog CRUD lives elsewhere; stock_quantity is only written by stock.Ledger.
type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error
}
