package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/order"
	orderRepo "github.com/fekuna/omnipos-backoffice-service/internal/order/repository"
	"github.com/fekuna/omnipos-backoffice-service/internal/product"
	productRepo "github.com/fekuna/omnipos-backoffice-service/internal/product/repository"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment"
	shipmentRepo "github.com/fekuna/omnipos-backoffice-service/internal/shipment/repository"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock"
	stockRepo "github.com/fekuna/omnipos-backoffice-service/internal/stock/repository"
	"github.com/fekuna/omnipos-backoffice-service/internal/store"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

type TxManager struct {
	DB *sqlx.DB
}

func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{DB: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos store.Repositories) error) error {
	tx, err := m.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, newRepositories(tx)); err != nil {
		return translate(err)
	}

	if err := tx.Commit(); err != nil {
		return translate(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

func (m *TxManager) Repos() store.Repositories {
	return newRepositories(m.DB)
}

type repositories struct {
	orders    *orderRepo.PGRepository
	shipments *shipmentRepo.PGRepository
	products  *productRepo.PGRepository
	ledger    *stockRepo.PGLedger
}

func newRepositories(db sqlx.ExtContext) *repositories {
	return &repositories{
		orders:    orderRepo.NewPGRepository(db),
		shipments: shipmentRepo.NewPGRepository(db),
		products:  productRepo.NewPGRepository(db),
		ledger:    stockRepo.NewPGLedger(db),
	}
}

func (r *repositories) Orders() order.Repository       { return r.orders }
func (r *repositories) Shipments() shipment.Repository { return r.shipments }
func (r *repositories) Products() product.Repository   { return r.products }
func (r *repositories) Ledger() stock.Ledger           { return r.ledger }

// translate turns constraint violations reported by Postgres into validation
// errors. Anything else is returned as is.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	params := map[string]interface{}{"Constraint": pgErr.ConstraintName}
	switch pgErr.Code {
	case pgerrcode.ForeignKeyViolation:
		return &apperror.Error{
			Kind:      apperror.KindValidation,
			MessageID: apperror.MsgUnknownReference,
			Message:   "referenced record does not exist: " + pgErr.ConstraintName,
			Params:    params,
			Err:       err,
		}
	case pgerrcode.CheckViolation, pgerrcode.UniqueViolation, pgerrcode.NotNullViolation:
		return &apperror.Error{
			Kind:      apperror.KindValidation,
			MessageID: apperror.MsgConstraintViolation,
			Message:   "constraint violated: " + pgErr.ConstraintName,
			Params:    params,
			Err:       err,
		}
	}
	return err
}

var _ store.TxManager = (*TxManager)(nil)
