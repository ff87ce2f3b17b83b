package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-backoffice-service/internal/database/inmem"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/hashicorp/go-memdb"
	"github.com/shopspring/decimal"
)

type MemRepository struct {
	Txn *memdb.Txn
	IDs inmem.IDGenerator
}

func NewMemRepository(txn *memdb.Txn, ids inmem.IDGenerator) *MemRepository {
	return &MemRepository{Txn: txn, IDs: ids}
}

func (r *MemRepository) Create(ctx context.Context, p *model.Product) error {
	if p.StockQuantity < 0 {
		return fmt.Errorf("stock_quantity must not be negative")
	}
	p.ID = r.IDs.NextID(inmem.TableProducts)
	row := *p
	return r.Txn.Insert(inmem.TableProducts, &row)
}

func (r *MemRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	raw, err := r.Txn.First(inmem.TableProducts, "id", id)
	if err != nil || raw == nil {
		return nil, err
	}
	p := *raw.(*model.Product)
	return &p, nil
}

func (r *MemRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	products := []model.Product{}
	for _, id := range ids {
		p, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (r *MemRepository) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error {
	p, err := r.FindByID(ctx, id)
	if err != nil || p == nil {
		return err
	}
	p.Price = price
	return r.Txn.Insert(inmem.TableProducts, p)
}
