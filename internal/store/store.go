// Package store is the transaction boundary of the document engine. Every
// document mutation runs inside WithinTx and sees repositories bound to the
// same transaction; returning an error discards all of their writes.
package store

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/order"
	"github.com/fekuna/omnipos-backoffice-service/internal/product"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock"
)

type Repositories interface {
	Orders() order.Repository
	Shipments() shipment.Repository
	Products() product.Repository
	Ledger() stock.Ledger
}

type TxManager interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	// Repos returns repositories for reads outside of a document transaction.
	Repos() Repositories
}
