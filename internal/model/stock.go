package model

import "time"

const (
	MovementReserve = "reserve"
	MovementReceive = "receive"

	ReferenceOrder    = "order"
	ReferenceShipment = "shipment"
)

// StockMovement is one append-only entry of the stock ledger.
type StockMovement struct {
	ID             int64     `db:"movement_id" json:"movement_id"`
	ProductID      int64     `db:"product_id" json:"product_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"`
	QuantityChange int32     `db:"quantity_change" json:"quantity_change"`
	QuantityAfter  int32     `db:"quantity_after" json:"quantity_after"`
	ReferenceType  string    `db:"reference_type" json:"reference_type"`
	ReferenceID    int64     `db:"reference_id" json:"reference_id"`
	Reason         string    `db:"reason" json:"reason"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
