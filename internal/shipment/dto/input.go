package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShipmentItemInput struct {
	ProductID int64
	Quantity  int32
	UnitCost  decimal.Decimal
}

type CreateShipmentInput struct {
	SupplierID           int64
	ShipmentDate         time.Time
	ExpectedDeliveryDate time.Time
	Status               string // Defaults to in_transit
	TotalCost            decimal.Decimal
	Items                []ShipmentItemInput
}

// UpdateShipmentInput is a patch: nil fields are left untouched. Items are only
// replaced when ReplaceItems is set.
type UpdateShipmentInput struct {
	ID                   int64
	Status               *string
	ExpectedDeliveryDate *time.Time
	TotalCost            *decimal.Decimal
	ReplaceItems         bool
	Items                []ShipmentItemInput
}
