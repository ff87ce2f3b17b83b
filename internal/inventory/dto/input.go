package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	Name          string
	Description   *string
	Price         decimal.Decimal
	StockQuantity int32 // Opening stock, not recorded as a movement
	CategoryID    int64
	SupplierID    int64
}

// UpdatePriceInput changes the list price. Existing order lines keep the
// unit price they were placed with.
type UpdatePriceInput struct {
	ProductID int64
	Price     decimal.Decimal
}
