package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB sqlx.ExtContext
}

func NewPGRepository(db sqlx.ExtContext) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (customer_id, order_date, status, total_amount, shipping_address)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING order_id
    `
	return r.DB.QueryRowxContext(ctx, query,
		o.CustomerID, o.OrderDate, o.Status, o.TotalAmount, o.ShippingAddress,
	).Scan(&o.ID)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	return r.findOne(ctx, `SELECT * FROM orders WHERE order_id = $1 LIMIT 1`, id)
}

func (r *PGRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	return r.findOne(ctx, `SELECT * FROM orders WHERE order_id = $1 FOR UPDATE`, id)
}

func (r *PGRepository) findOne(ctx context.Context, query string, id int64) (*model.Order, error) {
	var order model.Order
	err := sqlx.GetContext(ctx, r.DB, &order, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	var orders []model.Order
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CustomerID != 0 {
		conditions = append(conditions, "customer_id = :customer_id")
		args["customer_id"] = f.CustomerID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := r.DB.BindNamed("SELECT count(*) FROM orders"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, r.DB, &count, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY order_date DESC, order_id DESC"
	if f.PageSize > 0 {
		offset := (max(f.Page, 1) - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	query, qArgs, err := r.DB.BindNamed(query, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.SelectContext(ctx, r.DB, &orders, query, qArgs...); err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *PGRepository) Update(ctx context.Context, o *model.Order) error {
	query := `
        UPDATE orders
        SET status = :status,
            total_amount = :total_amount,
            shipping_address = :shipping_address
        WHERE order_id = :order_id
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, o)
	return err
}

// Delete removes the header; order_items go with it through ON DELETE CASCADE.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE order_id = $1", id)
	return err
}

func (r *PGRepository) InsertItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
        INSERT INTO order_items (order_id, product_id, quantity, unit_price)
        VALUES (:order_id, :product_id, :quantity, :unit_price)
    `
	_, err := sqlx.NamedExecContext(ctx, r.DB, query, items)
	return err
}

func (r *PGRepository) DeleteItems(ctx context.Context, orderID int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = $1", orderID)
	return err
}

func (r *PGRepository) ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	items := []model.OrderItem{}
	err := sqlx.SelectContext(ctx, r.DB, &items,
		`SELECT * FROM order_items WHERE order_id = $1 ORDER BY product_id`, orderID)
	return items, err
}
