package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPGRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestPGRepository_FindByIDForUpdate(t *testing.T) {
	repo, mock := newPGRepo(t)
	orderedAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM orders WHERE order_id = \$1 FOR UPDATE`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "customer_id", "order_date", "status", "total_amount", "shipping_address"}).
			AddRow(3, 7, orderedAt, "confirmed", "12.50", "Jl. Braga 10, Bandung"))
	mock.ExpectQuery(`SELECT \* FROM orders WHERE order_id = \$1 FOR UPDATE`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}))

	o, err := repo.FindByIDForUpdate(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, model.OrderStatusConfirmed, o.Status)
	assert.Equal(t, "12.5", o.TotalAmount.String())

	missing, err := repo.FindByIDForUpdate(context.Background(), 4)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_InsertItemsKeepsCallerOrder(t *testing.T) {
	repo, mock := newPGRepo(t)

	mock.ExpectExec(`INSERT INTO order_items \(order_id, product_id, quantity, unit_price\)`).
		WithArgs(9, 5, 1, sqlmock.AnyArg(), 9, 2, 3, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.InsertItems(context.Background(), []model.OrderItem{
		{OrderID: 9, ProductID: 5, Quantity: 1},
		{OrderID: 9, ProductID: 2, Quantity: 3},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
