package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID              int64           `db:"order_id" json:"order_id"`
	CustomerID      int64           `db:"customer_id" json:"customer_id"`
	OrderDate       time.Time       `db:"order_date" json:"order_date"`
	Status          OrderStatus     `db:"status" json:"status"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"total_amount"`
	ShippingAddress string          `db:"shipping_address" json:"shipping_address"`
	Items           []OrderItem     `db:"-" json:"items,omitempty"`
}

// OrderItem keeps the unit price agreed at order time, independent of the
// product's current price.
type OrderItem struct {
	OrderID     int64           `db:"order_id" json:"order_id"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	Quantity    int32           `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	ProductName string          `db:"-" json:"product_name,omitempty"` // Joined data
}
