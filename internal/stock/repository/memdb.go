package repository

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/database/inmem"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock/dto"
	"github.com/hashicorp/go-memdb"
)

type MemLedger struct {
	Txn *memdb.Txn
	IDs inmem.IDGenerator
}

func NewMemLedger(txn *memdb.Txn, ids inmem.IDGenerator) *MemLedger {
	return &MemLedger{Txn: txn, IDs: ids}
}

func (r *MemLedger) Reserve(ctx context.Context, adj stock.Adjustment) (*model.StockMovement, error) {
	if adj.Quantity <= 0 {
		return nil, stock.InvalidQuantity(adj.ProductID, adj.Quantity)
	}
	p, err := r.product(adj.ProductID)
	if err != nil {
		return nil, err
	}
	if p.StockQuantity < adj.Quantity {
		return nil, stock.InsufficientStock(adj.ProductID, adj.Quantity, p.StockQuantity)
	}
	return r.write(p, p.StockQuantity-adj.Quantity, model.MovementReserve, -adj.Quantity, adj)
}

func (r *MemLedger) Receive(ctx context.Context, adj stock.Adjustment) (*model.StockMovement, error) {
	if adj.Quantity <= 0 {
		return nil, stock.InvalidQuantity(adj.ProductID, adj.Quantity)
	}
	p, err := r.product(adj.ProductID)
	if err != nil {
		return nil, err
	}
	if int64(p.StockQuantity)+int64(adj.Quantity) > math.MaxInt32 {
		return nil, fmt.Errorf("stock of product %d out of range", adj.ProductID)
	}
	return r.write(p, p.StockQuantity+adj.Quantity, model.MovementReceive, adj.Quantity, adj)
}

func (r *MemLedger) product(id int64) (*model.Product, error) {
	raw, err := r.Txn.First(inmem.TableProducts, "id", id)
	if err != nil {
		return nil, fmt.Errorf("failed to read product: %w", err)
	}
	if raw == nil {
		return nil, apperror.NotFound("product", id)
	}
	return raw.(*model.Product), nil
}

func (r *MemLedger) write(p *model.Product, after int32, movementType string, change int32, adj stock.Adjustment) (*model.StockMovement, error) {
	// memdb rows are shared with readers and must not be mutated in place.
	updated := *p
	updated.StockQuantity = after
	if err := r.Txn.Insert(inmem.TableProducts, &updated); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	m := &model.StockMovement{
		ID:             r.IDs.NextID(inmem.TableStockMovements),
		ProductID:      adj.ProductID,
		MovementType:   movementType,
		QuantityChange: change,
		QuantityAfter:  after,
		ReferenceType:  adj.Reference.Type,
		ReferenceID:    adj.Reference.ID,
		Reason:         adj.Reason,
		CreatedAt:      time.Now().UTC(),
	}
	if err := r.Txn.Insert(inmem.TableStockMovements, m); err != nil {
		return nil, fmt.Errorf("failed to log movement: %w", err)
	}
	out := *m
	return &out, nil
}

func (r *MemLedger) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	rows, err := inmem.Scan(r.Txn, inmem.TableStockMovements)
	if err != nil {
		return nil, 0, err
	}

	items := []model.StockMovement{}
	for _, raw := range rows {
		m := raw.(*model.StockMovement)
		if f.ProductID != 0 && m.ProductID != f.ProductID {
			continue
		}
		if f.ReferenceType != "" && m.ReferenceType != f.ReferenceType {
			continue
		}
		if f.ReferenceID != 0 && m.ReferenceID != f.ReferenceID {
			continue
		}
		items = append(items, *m)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID > items[j].ID })

	return inmem.Page(items, f.Page, f.PageSize), len(items), nil
}
