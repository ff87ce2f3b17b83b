package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB sqlx.ExtContext
}

func NewPGRepository(db sqlx.ExtContext) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (name, description, price, stock_quantity, category_id, supplier_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING product_id
    `
	return r.DB.QueryRowxContext(ctx, query,
		p.Name, p.Description, p.Price, p.StockQuantity, p.CategoryID, p.SupplierID,
	).Scan(&p.ID)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE product_id = $1 LIMIT 1`
	err := sqlx.GetContext(ctx, r.DB, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE product_id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	// Rebind for Postgres ($1, $2...)
	query = r.DB.Rebind(query)

	var products []model.Product
	err = sqlx.SelectContext(ctx, r.DB, &products, query, args...)
	return products, err
}

func (r *PGRepository) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE products SET price = $1 WHERE product_id = $2`, price, id)
	return err
}
