package dto

import "github.com/shopspring/decimal"

type OrderItemInput struct {
	ProductID int64
	Quantity  int32
	UnitPrice decimal.Decimal
}

type CreateOrderInput struct {
	CustomerID      int64
	Status          string // Defaults to pending
	TotalAmount     decimal.Decimal
	ShippingAddress string
	Items           []OrderItemInput
}

// UpdateOrderInput is a patch: nil fields are left untouched. Items are only
// replaced when ReplaceItems is set.
type UpdateOrderInput struct {
	ID              int64
	Status          *string
	TotalAmount     *decimal.Decimal
	ShippingAddress *string
	ReplaceItems    bool
	Items           []OrderItemInput
}
