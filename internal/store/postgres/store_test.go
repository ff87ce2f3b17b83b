package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/lineitem"
	"github.com/fekuna/omnipos-backoffice-service/internal/logger"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
	orderUC "github.com/fekuna/omnipos-backoffice-service/internal/order/usecase"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock"
	"github.com/fekuna/omnipos-backoffice-service/internal/store"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockManager(t *testing.T) (*TxManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTxManager(sqlx.NewDb(db, "pgx")), mock
}

func TestTranslate(t *testing.T) {
	plain := errors.New("connection reset")
	serialization := &pgconn.PgError{Code: pgerrcode.SerializationFailure}

	tests := []struct {
		name      string
		err       error
		kind      apperror.Kind
		messageID string
	}{
		{
			name:      "foreign key",
			err:       fmt.Errorf("failed to insert order items: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "order_items_product_id_fkey"}),
			kind:      apperror.KindValidation,
			messageID: apperror.MsgUnknownReference,
		},
		{
			name:      "check",
			err:       &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "products_stock_quantity_check"},
			kind:      apperror.KindValidation,
			messageID: apperror.MsgConstraintViolation,
		},
		{
			name:      "unique",
			err:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "order_items_pkey"},
			kind:      apperror.KindValidation,
			messageID: apperror.MsgConstraintViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var appErr *apperror.Error
			require.ErrorAs(t, translate(tt.err), &appErr)
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.Equal(t, tt.messageID, appErr.MessageID)
			assert.NotEmpty(t, appErr.Params["Constraint"])
		})
	}

	assert.Same(t, plain, translate(plain))
	assert.Equal(t, error(serialization), translate(serialization))
}

func TestWithinTx_RollsBackOnLaterLineFailure(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE products\s+SET stock_quantity = stock_quantity - \$1`).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(8))
	mock.ExpectQuery(`INSERT INTO stock_movements`).
		WillReturnRows(sqlmock.NewRows([]string{"movement_id", "created_at"}).AddRow(1, time.Now()))
	mock.ExpectQuery(`UPDATE products\s+SET stock_quantity = stock_quantity - \$1`).
		WithArgs(3, 2).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))
	mock.ExpectQuery(`SELECT stock_quantity FROM products`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(1))
	mock.ExpectRollback()

	err := m.WithinTx(context.Background(), func(ctx context.Context, repos store.Repositories) error {
		return lineitem.Apply(ctx, repos.Ledger(), lineitem.Reserve,
			stock.Reference{Type: model.ReferenceOrder, ID: 5}, "order placed",
			[]lineitem.Line{{ProductID: 2, Quantity: 3}, {ProductID: 1, Quantity: 2}})
	})

	assert.True(t, apperror.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet(), "the first reservation is rolled back, never committed")
}

func TestWithinTx_TranslatesConstraintErrors(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO order_items`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "order_items_order_id_fkey"})
	mock.ExpectRollback()

	err := m.WithinTx(context.Background(), func(ctx context.Context, repos store.Repositories) error {
		return repos.Orders().InsertItems(ctx, []model.OrderItem{{OrderID: 1, ProductID: 1, Quantity: 1}})
	})

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.MsgUnknownReference, appErr.MessageID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_UnknownProductIsNotFound(t *testing.T) {
	m, mock := newMockManager(t)
	uc := orderUC.NewOrderUseCase(m, nil, nil, nil, logger.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM products WHERE product_id IN \(\$1, \$2\)`).
		WithArgs(1, 999).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name"}).AddRow(1, "Widget"))
	mock.ExpectRollback()

	_, err := uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		CustomerID:      1,
		ShippingAddress: "Jl. Merdeka 1, Bandung",
		Items: []dto.OrderItemInput{
			{ProductID: 999, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
			{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	})

	assert.True(t, apperror.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet(), "no order or item row is written")
}
