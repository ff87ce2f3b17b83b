// Package inmem provides the go-memdb backed document store used when the
// service runs with STORAGE_DRIVER=memory and by the test suites.
//
// Write transactions in go-memdb are serialised, so the read-modify-write of a
// product's stock inside one transaction cannot interleave with another writer.
package inmem

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-memdb"
)

const (
	TableProducts       = "products"
	TableOrders         = "orders"
	TableOrderItems     = "order_items"
	TableShipments      = "shipments"
	TableShipmentItems  = "shipment_items"
	TableStockMovements = "stock_movements"
)

// IDGenerator hands out SERIAL-like identifiers. Identifiers taken by an
// aborted transaction are not reused.
type IDGenerator interface {
	NextID(table string) int64
}

type DB struct {
	*memdb.MemDB

	mu  sync.Mutex
	seq map[string]int64
}

func New() (*DB, error) {
	db, err := memdb.NewMemDB(Schema())
	if err != nil {
		return nil, fmt.Errorf("failed to create memdb: %w", err)
	}
	return &DB{MemDB: db, seq: make(map[string]int64)}, nil
}

func (d *DB) NextID(table string) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq[table]++
	return d.seq[table]
}

func Schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			TableProducts: {
				Name: TableProducts,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {Name: "id", Unique: true, Indexer: &memdb.IntFieldIndex{Field: "ID"}},
				},
			},
			TableOrders: {
				Name: TableOrders,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {Name: "id", Unique: true, Indexer: &memdb.IntFieldIndex{Field: "ID"}},
				},
			},
			TableOrderItems: {
				Name: TableOrderItems,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {Name: "id", Unique: true, Indexer: &memdb.CompoundIndex{
						Indexes: []memdb.Indexer{
							&memdb.IntFieldIndex{Field: "OrderID"},
							&memdb.IntFieldIndex{Field: "ProductID"},
						},
					}},
					"order_id":   {Name: "order_id", Indexer: &memdb.IntFieldIndex{Field: "OrderID"}},
					"product_id": {Name: "product_id", Indexer: &memdb.IntFieldIndex{Field: "ProductID"}},
				},
			},
			TableShipments: {
				Name: TableShipments,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {Name: "id", Unique: true, Indexer: &memdb.IntFieldIndex{Field: "ID"}},
				},
			},
			TableShipmentItems: {
				Name: TableShipmentItems,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {Name: "id", Unique: true, Indexer: &memdb.CompoundIndex{
						Indexes: []memdb.Indexer{
							&memdb.IntFieldIndex{Field: "ShipmentID"},
							&memdb.IntFieldIndex{Field: "ProductID"},
						},
					}},
					"shipment_id": {Name: "shipment_id", Indexer: &memdb.IntFieldIndex{Field: "ShipmentID"}},
					"product_id":  {Name: "product_id", Indexer: &memdb.IntFieldIndex{Field: "ProductID"}},
				},
			},
			TableStockMovements: {
				Name: TableStockMovements,
				Indexes: map[string]*memdb.IndexSchema{
					"id":         {Name: "id", Unique: true, Indexer: &memdb.IntFieldIndex{Field: "ID"}},
					"product_id": {Name: "product_id", Indexer: &memdb.IntFieldIndex{Field: "ProductID"}},
				},
			},
		},
	}
}

// Scan returns every row of a table keyed by an int64 "id" index, in id order.
func Scan(txn *memdb.Txn, table string) ([]interface{}, error) {
	it, err := txn.LowerBound(table, "id", int64(0))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", table, err)
	}
	var rows []interface{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		rows = append(rows, obj)
	}
	return rows, nil
}

// Page applies the LIMIT/OFFSET convention used by the SQL repositories.
func Page[T any](rows []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return rows
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []T{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
