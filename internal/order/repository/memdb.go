package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/fekuna/omnipos-backoffice-service/internal/database/inmem"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
	"github.com/hashicorp/go-memdb"
)

type MemRepository struct {
	Txn *memdb.Txn
	IDs inmem.IDGenerator
}

func NewMemRepository(txn *memdb.Txn, ids inmem.IDGenerator) *MemRepository {
	return &MemRepository{Txn: txn, IDs: ids}
}

func (r *MemRepository) Create(ctx context.Context, o *model.Order) error {
	o.ID = r.IDs.NextID(inmem.TableOrders)
	return r.put(o)
}

func (r *MemRepository) put(o *model.Order) error {
	row := *o
	row.Items = nil
	return r.Txn.Insert(inmem.TableOrders, &row)
}

func (r *MemRepository) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	raw, err := r.Txn.First(inmem.TableOrders, "id", id)
	if err != nil || raw == nil {
		return nil, err
	}
	o := *raw.(*model.Order)
	return &o, nil
}

// FindByIDForUpdate needs no extra locking: memdb write transactions are exclusive.
func (r *MemRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *MemRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	rows, err := inmem.Scan(r.Txn, inmem.TableOrders)
	if err != nil {
		return nil, 0, err
	}

	orders := []model.Order{}
	for _, raw := range rows {
		o := raw.(*model.Order)
		if f.CustomerID != 0 && o.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		orders = append(orders, *o)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].OrderDate.After(orders[j].OrderDate)
		}
		return orders[i].ID > orders[j].ID
	})

	return inmem.Page(orders, f.Page, f.PageSize), len(orders), nil
}

func (r *MemRepository) Update(ctx context.Context, o *model.Order) error {
	existing, err := r.FindByID(ctx, o.ID)
	if err != nil || existing == nil {
		return err
	}
	return r.put(o)
}

func (r *MemRepository) Delete(ctx context.Context, id int64) error {
	if err := r.DeleteItems(ctx, id); err != nil {
		return err
	}
	_, err := r.Txn.DeleteAll(inmem.TableOrders, "id", id)
	return err
}

func (r *MemRepository) InsertItems(ctx context.Context, items []model.OrderItem) error {
	for i := range items {
		existing, err := r.Txn.First(inmem.TableOrderItems, "id", items[i].OrderID, items[i].ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("duplicate key value violates order_items_pkey (%d, %d)", items[i].OrderID, items[i].ProductID)
		}
		row := items[i]
		row.ProductName = ""
		if err := r.Txn.Insert(inmem.TableOrderItems, &row); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemRepository) DeleteItems(ctx context.Context, orderID int64) error {
	_, err := r.Txn.DeleteAll(inmem.TableOrderItems, "order_id", orderID)
	return err
}

func (r *MemRepository) ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	it, err := r.Txn.Get(inmem.TableOrderItems, "order_id", orderID)
	if err != nil {
		return nil, err
	}
	items := []model.OrderItem{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		items = append(items, *raw.(*model.OrderItem))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items, nil
}
