package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/fekuna/omnipos-backoffice-service/internal/database/inmem"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment/dto"
	"github.com/hashicorp/go-memdb"
)

type MemRepository struct {
	Txn *memdb.Txn
	IDs inmem.IDGenerator
}

func NewMemRepository(txn *memdb.Txn, ids inmem.IDGenerator) *MemRepository {
	return &MemRepository{Txn: txn, IDs: ids}
}

func (r *MemRepository) Create(ctx context.Context, s *model.Shipment) error {
	s.ID = r.IDs.NextID(inmem.TableShipments)
	return r.put(s)
}

func (r *MemRepository) put(s *model.Shipment) error {
	row := *s
	row.Items = nil
	return r.Txn.Insert(inmem.TableShipments, &row)
}

func (r *MemRepository) FindByID(ctx context.Context, id int64) (*model.Shipment, error) {
	raw, err := r.Txn.First(inmem.TableShipments, "id", id)
	if err != nil || raw == nil {
		return nil, err
	}
	s := *raw.(*model.Shipment)
	return &s, nil
}

func (r *MemRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.Shipment, error) {
	return r.FindByID(ctx, id)
}

func (r *MemRepository) FindAll(ctx context.Context, f *dto.ShipmentFilters) ([]model.Shipment, int, error) {
	rows, err := inmem.Scan(r.Txn, inmem.TableShipments)
	if err != nil {
		return nil, 0, err
	}

	shipments := []model.Shipment{}
	for _, raw := range rows {
		s := raw.(*model.Shipment)
		if f.SupplierID != 0 && s.SupplierID != f.SupplierID {
			continue
		}
		if f.Status != "" && string(s.Status) != f.Status {
			continue
		}
		shipments = append(shipments, *s)
	}
	sort.SliceStable(shipments, func(i, j int) bool {
		if !shipments[i].ShipmentDate.Equal(shipments[j].ShipmentDate) {
			return shipments[i].ShipmentDate.After(shipments[j].ShipmentDate)
		}
		return shipments[i].ID > shipments[j].ID
	})

	return inmem.Page(shipments, f.Page, f.PageSize), len(shipments), nil
}

func (r *MemRepository) Update(ctx context.Context, s *model.Shipment) error {
	existing, err := r.FindByID(ctx, s.ID)
	if err != nil || existing == nil {
		return err
	}
	return r.put(s)
}

func (r *MemRepository) Delete(ctx context.Context, id int64) error {
	if err := r.DeleteItems(ctx, id); err != nil {
		return err
	}
	_, err := r.Txn.DeleteAll(inmem.TableShipments, "id", id)
	return err
}

func (r *MemRepository) InsertItems(ctx context.Context, items []model.ShipmentItem) error {
	for i := range items {
		existing, err := r.Txn.First(inmem.TableShipmentItems, "id", items[i].ShipmentID, items[i].ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("duplicate key value violates shipment_items_pkey (%d, %d)", items[i].ShipmentID, items[i].ProductID)
		}
		row := items[i]
		row.ProductName = ""
		if err := r.Txn.Insert(inmem.TableShipmentItems, &row); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemRepository) DeleteItems(ctx context.Context, shipmentID int64) error {
	_, err := r.Txn.DeleteAll(inmem.TableShipmentItems, "shipment_id", shipmentID)
	return err
}

func (r *MemRepository) ListItems(ctx context.Context, shipmentID int64) ([]model.ShipmentItem, error) {
	it, err := r.Txn.Get(inmem.TableShipmentItems, "shipment_id", shipmentID)
	if err != nil {
		return nil, err
	}
	items := []model.ShipmentItem{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		items = append(items, *raw.(*model.ShipmentItem))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items, nil
}
