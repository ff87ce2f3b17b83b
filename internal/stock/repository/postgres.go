package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock/dto"
	"github.com/jmoiron/sqlx"
)

// PGLedger adjusts stock with single conditional UPDATE statements. The row
// lock taken by UPDATE is held until the enclosing transaction ends, and the
// WHERE predicate is re-evaluated after waiting for a concurrent writer, so two
// reservations of the last unit can never both succeed.
type PGLedger struct {
	DB sqlx.ExtContext
}

func NewPGLedger(db sqlx.ExtContext) *PGLedger {
	return &PGLedger{DB: db}
}

func (r *PGLedger) Reserve(ctx context.Context, adj stock.Adjustment) (*model.StockMovement, error) {
	if adj.Quantity <= 0 {
		return nil, stock.InvalidQuantity(adj.ProductID, adj.Quantity)
	}

	query := `
        UPDATE products
        SET stock_quantity = stock_quantity - $1
        WHERE product_id = $2 AND stock_quantity >= $1
        RETURNING stock_quantity
    `
	var after int32
	err := r.DB.QueryRowxContext(ctx, query, adj.Quantity, adj.ProductID).Scan(&after)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.explainMiss(ctx, adj)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reserve stock: %w", err)
	}

	return r.logMovement(ctx, model.MovementReserve, -adj.Quantity, after, adj)
}

func (r *PGLedger) Receive(ctx context.Context, adj stock.Adjustment) (*model.StockMovement, error) {
	if adj.Quantity <= 0 {
		return nil, stock.InvalidQuantity(adj.ProductID, adj.Quantity)
	}

	query := `
        UPDATE products
        SET stock_quantity = stock_quantity + $1
        WHERE product_id = $2
        RETURNING stock_quantity
    `
	var after int32
	err := r.DB.QueryRowxContext(ctx, query, adj.Quantity, adj.ProductID).Scan(&after)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("product", adj.ProductID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to receive stock: %w", err)
	}

	return r.logMovement(ctx, model.MovementReceive, adj.Quantity, after, adj)
}

// explainMiss tells a missing product apart from an insufficient one after the
// conditional update matched no row.
func (r *PGLedger) explainMiss(ctx context.Context, adj stock.Adjustment) error {
	var available int32
	err := sqlx.GetContext(ctx, r.DB, &available,
		`SELECT stock_quantity FROM products WHERE product_id = $1`, adj.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound("product", adj.ProductID)
	}
	if err != nil {
		return fmt.Errorf("failed to read stock: %w", err)
	}
	return stock.InsufficientStock(adj.ProductID, adj.Quantity, available)
}

func (r *PGLedger) logMovement(ctx context.Context, movementType string, change, after int32, adj stock.Adjustment) (*model.StockMovement, error) {
	m := &model.StockMovement{
		ProductID:      adj.ProductID,
		MovementType:   movementType,
		QuantityChange: change,
		QuantityAfter:  after,
		ReferenceType:  adj.Reference.Type,
		ReferenceID:    adj.Reference.ID,
		Reason:         adj.Reason,
	}

	query := `
        INSERT INTO stock_movements (
            product_id, movement_type, quantity_change, quantity_after,
            reference_type, reference_id, reason
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING movement_id, created_at
    `
	err := r.DB.QueryRowxContext(ctx, query,
		m.ProductID, m.MovementType, m.QuantityChange, m.QuantityAfter,
		m.ReferenceType, m.ReferenceID, m.Reason,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to log movement: %w", err)
	}
	return m, nil
}

func (r *PGLedger) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var items []model.StockMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != 0 {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.ReferenceType != "" {
		conditions = append(conditions, "reference_type = :reference_type")
		args["reference_type"] = f.ReferenceType
	}
	if f.ReferenceID != 0 {
		conditions = append(conditions, "reference_id = :reference_id")
		args["reference_id"] = f.ReferenceID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := r.DB.BindNamed("SELECT count(*) FROM stock_movements"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, r.DB, &count, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC, movement_id DESC"
	if f.PageSize > 0 {
		offset := (max(f.Page, 1) - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	query, qArgs, err := r.DB.BindNamed(query, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.SelectContext(ctx, r.DB, &items, query, qArgs...); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}
