package model

import "github.com/shopspring/decimal"

type Product struct {
	ID            int64           `db:"product_id" json:"product_id"`
	Name          string          `db:"name" json:"name"`
	Description   *string         `db:"description" json:"description"`
	Price         decimal.Decimal `db:"price" json:"price"`
	StockQuantity int32           `db:"stock_quantity" json:"stock_quantity"`
	CategoryID    int64           `db:"category_id" json:"category_id"`
	SupplierID    int64           `db:"supplier_id" json:"supplier_id"`
}
