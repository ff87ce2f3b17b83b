package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB sqlx.ExtContext
}

func NewPGRepository(db sqlx.ExtContext) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, s *model.Shipment) error {
	query := `
        INSERT INTO shipments (supplier_id, shipment_date, expected_delivery_date, status, total_cost)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING shipment_id
    `
	return r.DB.QueryRowxContext(ctx, query,
		s.SupplierID, s.ShipmentDate, s.ExpectedDeliveryDate, s.Status, s.TotalCost,
	).Scan(&s.ID)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Shipment, error) {
	return r.findOne(ctx, `SELECT * FROM shipments WHERE shipment_id = $1 LIMIT 1`, id)
}

func (r *PGRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.Shipment, error) {
	return r.findOne(ctx, `SELECT * FROM shipments WHERE shipment_id = $1 FOR UPDATE`, id)
}

func (r *PGRepository) findOne(ctx context.Context, query string, id int64) (*model.Shipment, error) {
	var shipment model.Shipment
	err := sqlx.GetContext(ctx, r.DB, &shipment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &shipment, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ShipmentFilters) ([]model.Shipment, int, error) {
	var shipments []model.Shipment
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.SupplierID != 0 {
		conditions = append(conditions, "supplier_id = :supplier_id")
		args["supplier_id"] = f.SupplierID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := r.DB.BindNamed("SELECT count(*) FROM shipments"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, r.DB, &count, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM shipments" + whereClause + " ORDER BY shipment_date DESC, shipment_id DESC"
	if f.PageSize > 0 {
		offset := (max(f.Page, 1) - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	query, qArgs, err := r.DB.BindNamed(query, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.SelectContext(ctx, r.DB, &shipments, query, qArgs...); err != nil {
		return nil, 0, err
	}
	return shipments, count, nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.Shipment) error {
	query := `
        UPDATE shipments
        SET status = :status,
            expected_delivery_date = :expected_delivery_date,
            total_cost = :total_cost
        WHERE shipment_id = :shipment_id
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, s)
	return err
}

// Delete removes the header; shipment_items go with it through ON DELETE CASCADE.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM shipments WHERE shipment_id = $1", id)
	return err
}

func (r *PGRepository) InsertItems(ctx context.Context, items []model.ShipmentItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
        INSERT INTO shipment_items (shipment_id, product_id, quantity, unit_cost)
        VALUES (:shipment_id, :product_id, :quantity, :unit_cost)
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, items)
	return err
}

func (r *PGRepository) DeleteItems(ctx context.Context, shipmentID int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM shipment_items WHERE shipment_id = $1", shipmentID)
	return err
}

func (r *PGRepository) ListItems(ctx context.Context, shipmentID int64) ([]model.ShipmentItem, error) {
	items := []model.ShipmentItem{}
	err := sqlx.SelectContext(ctx, r.DB, &items,
		`SELECT * FROM shipment_items WHERE shipment_id = $1 ORDER BY product_id`, shipmentID)
	return items, err
}
