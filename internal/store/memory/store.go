package memory

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/database/inmem"
	"github.com/fekuna/omnipos-backoffice-service/internal/order"
	orderRepo "github.com/fekuna/omnipos-backoffice-service/internal/order/repository"
	"github.com/fekuna/omnipos-backoffice-service/internal/product"
	productRepo "github.com/fekuna/omnipos-backoffice-service/internal/product/repository"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment"
	shipmentRepo "github.com/fekuna/omnipos-backoffice-service/internal/shipment/repository"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock"
	stockRepo "github.com/fekuna/omnipos-backoffice-service/internal/stock/repository"
	"github.com/fekuna/omnipos-backoffice-service/internal/store"
	"github.com/hashicorp/go-memdb"
)

type TxManager struct {
	DB *inmem.DB
}

func NewTxManager(db *inmem.DB) *TxManager {
	return &TxManager{DB: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos store.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txn := m.DB.Txn(true)
	defer txn.Abort()

	if err := fn(ctx, m.repositories(txn)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	txn.Commit()
	return nil
}

// Repos reads from a snapshot taken at call time.
func (m *TxManager) Repos() store.Repositories {
	return m.repositories(m.DB.Txn(false))
}

func (m *TxManager) repositories(txn *memdb.Txn) *repositories {
	return &repositories{
		orders:    orderRepo.NewMemRepository(txn, m.DB),
		shipments: shipmentRepo.NewMemRepository(txn, m.DB),
		products:  productRepo.NewMemRepository(txn, m.DB),
		ledger:    stockRepo.NewMemLedger(txn, m.DB),
	}
}

type repositories struct {
	orders    *orderRepo.MemRepository
	shipments *shipmentRepo.MemRepository
	products  *productRepo.MemRepository
	ledger    *stockRepo.MemLedger
}

func (r *repositories) Orders() order.Repository       { return r.orders }
func (r *repositories) Shipments() shipment.Repository { return r.shipments }
func (r *repositories) Products() product.Repository   { return r.products }
func (r *repositories) Ledger() stock.Ledger           { return r.ledger }

var _ store.TxManager = (*TxManager)(nil)
