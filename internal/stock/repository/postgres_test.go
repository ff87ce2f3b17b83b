package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	reserveSQL  = `UPDATE products\s+SET stock_quantity = stock_quantity - \$1\s+WHERE product_id = \$2 AND stock_quantity >= \$1`
	receiveSQL  = `UPDATE products\s+SET stock_quantity = stock_quantity \+ \$1\s+WHERE product_id = \$2`
	stockSQL    = `SELECT stock_quantity FROM products WHERE product_id = \$1`
	movementSQL = `INSERT INTO stock_movements`
)

func newPGLedger(t *testing.T) (*PGLedger, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPGLedger(sqlx.NewDb(db, "pgx")), mock
}

func TestPGLedger_Reserve(t *testing.T) {
	ledger, mock := newPGLedger(t)

	mock.ExpectQuery(reserveSQL).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(3))
	mock.ExpectQuery(movementSQL).
		WithArgs(1, model.MovementReserve, -2, 3, model.ReferenceOrder, 7, "order placed").
		WillReturnRows(sqlmock.NewRows([]string{"movement_id", "created_at"}).AddRow(11, time.Now()))

	m, err := ledger.Reserve(context.Background(), stock.Adjustment{
		ProductID: 1,
		Quantity:  2,
		Reference: stock.Reference{Type: model.ReferenceOrder, ID: 7},
		Reason:    "order placed",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), m.ID)
	assert.Equal(t, int32(3), m.QuantityAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGLedger_ReserveMiss(t *testing.T) {
	tests := []struct {
		name      string
		stockRows *sqlmock.Rows
		kind      apperror.Kind
		messageID string
	}{
		{
			name:      "not enough stock",
			stockRows: sqlmock.NewRows([]string{"stock_quantity"}).AddRow(1),
			kind:      apperror.KindValidation,
			messageID: apperror.MsgInsufficientStock,
		},
		{
			name:      "unknown product",
			stockRows: sqlmock.NewRows([]string{"stock_quantity"}),
			kind:      apperror.KindNotFound,
			messageID: apperror.MsgNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, mock := newPGLedger(t)
			mock.ExpectQuery(reserveSQL).
				WithArgs(5, 1).
				WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))
			mock.ExpectQuery(stockSQL).WithArgs(1).WillReturnRows(tt.stockRows)

			_, err := ledger.Reserve(context.Background(), stock.Adjustment{ProductID: 1, Quantity: 5})

			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.Equal(t, tt.messageID, appErr.MessageID)
			assert.NoError(t, mock.ExpectationsWereMet(), "no movement is logged")
		})
	}
}

func TestPGLedger_ReserveReportsAvailable(t *testing.T) {
	ledger, mock := newPGLedger(t)
	mock.ExpectQuery(reserveSQL).WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))
	mock.ExpectQuery(stockSQL).WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(5))

	_, err := ledger.Reserve(context.Background(), stock.Adjustment{ProductID: 1, Quantity: 6})

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, int32(5), appErr.Params["Available"])
	assert.Equal(t, int32(6), appErr.Params["Requested"])
}

func TestPGLedger_ReceiveUnknownProduct(t *testing.T) {
	ledger, mock := newPGLedger(t)
	mock.ExpectQuery(receiveSQL).
		WithArgs(4, 404).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))

	_, err := ledger.Receive(context.Background(), stock.Adjustment{ProductID: 404, Quantity: 4})

	assert.True(t, apperror.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGLedger_RejectsNonPositiveQuantity(t *testing.T) {
	ledger, mock := newPGLedger(t)

	_, err := ledger.Reserve(context.Background(), stock.Adjustment{ProductID: 1, Quantity: 0})
	assert.True(t, apperror.IsValidation(err))
	_, err = ledger.Receive(context.Background(), stock.Adjustment{ProductID: 1, Quantity: -1})
	assert.True(t, apperror.IsValidation(err))

	assert.NoError(t, mock.ExpectationsWereMet(), "no statement reaches the database")
}
