package stock

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock/dto"
)

// Reference names the document that caused a stock movement.
type Reference struct {
	Type string
	ID   int64
}

type Adjustment struct {
	ProductID int64
	Quantity  int32
	Reference Reference
	Reason    string
}

// Ledger owns products.stock_quantity. Implementations are bound to the
// caller's transaction, so a later failure in the same document rolls back
// every adjustment made before it.
type Ledger interface {
	// Reserve subtracts Quantity, failing with a validation error when the
	// product does not hold enough stock.
	Reserve(ctx context.Context, adj Adjustment) (*model.StockMovement, error)
	// Receive adds Quantity.
	Receive(ctx context.Context, adj Adjustment) (*model.StockMovement, error)

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
