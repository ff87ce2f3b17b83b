package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Shipment struct {
	ID                   int64           `db:"shipment_id" json:"shipment_id"`
	SupplierID           int64           `db:"supplier_id" json:"supplier_id"`
	ShipmentDate         time.Time       `db:"shipment_date" json:"shipment_date"`
	ExpectedDeliveryDate time.Time       `db:"expected_delivery_date" json:"expected_delivery_date"`
	Status               ShipmentStatus  `db:"status" json:"status"`
	TotalCost            decimal.Decimal `db:"total_cost" json:"total_cost"`
	Items                []ShipmentItem  `db:"-" json:"items,omitempty"`
}

type ShipmentItem struct {
	ShipmentID  int64           `db:"shipment_id" json:"shipment_id"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	Quantity    int32           `db:"quantity" json:"quantity"`
	UnitCost    decimal.Decimal `db:"unit_cost" json:"unit_cost"`
	ProductName string          `db:"-" json:"product_name,omitempty"` // Joined data
}

// CalendarDate drops the time of day, matching the DATE columns that hold
// shipment_date and expected_delivery_date.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
