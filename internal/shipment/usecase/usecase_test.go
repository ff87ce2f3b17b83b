package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/database/inmem"
	"github.com/fekuna/omnipos-backoffice-service/internal/logger"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock"
	"github.com/fekuna/omnipos-backoffice-service/internal/store"
	"github.com/fekuna/omnipos-backoffice-service/internal/store/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shippedAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	tx *memory.TxManager
	uc shipment.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := inmem.New()
	require.NoError(t, err)

	tx := memory.NewTxManager(db)
	return &fixture{tx: tx, uc: NewShipmentUseCase(tx, nil, nil, nil, logger.NewNop())}
}

func (f *fixture) seedProduct(t *testing.T, name string, stock int32) int64 {
	t.Helper()
	p := &model.Product{Name: name, Price: decimal.RequireFromString("9.99"), StockQuantity: stock}
	err := f.tx.WithinTx(context.Background(), func(ctx context.Context, repos store.Repositories) error {
		return repos.Products().Create(ctx, p)
	})
	require.NoError(t, err)
	return p.ID
}

// sell takes stock out the way an order would.
func (f *fixture) sell(t *testing.T, productID int64, qty int32) {
	t.Helper()
	err := f.tx.WithinTx(context.Background(), func(ctx context.Context, repos store.Repositories) error {
		_, err := repos.Ledger().Reserve(ctx, stock.Adjustment{ProductID: productID, Quantity: qty, Reason: "sale"})
		return err
	})
	require.NoError(t, err)
}

func (f *fixture) stockOf(t *testing.T, productID int64) int32 {
	t.Helper()
	p, err := f.tx.Repos().Products().FindByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockQuantity
}

func createInput(items ...dto.ShipmentItemInput) *dto.CreateShipmentInput {
	return &dto.CreateShipmentInput{
		SupplierID:           3,
		ShipmentDate:         shippedAt,
		ExpectedDeliveryDate: shippedAt.Add(72 * time.Hour),
		TotalCost:            decimal.RequireFromString("120.00"),
		Items:                items,
	}
}

func line(productID int64, qty int32, cost string) dto.ShipmentItemInput {
	return dto.ShipmentItemInput{ProductID: productID, Quantity: qty, UnitCost: decimal.RequireFromString(cost)}
}

func strPtr(s string) *string { return &s }

func TestCreateShipment_ReceivesStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Widget", 10)

	s, err := f.uc.CreateShipment(ctx, createInput(line(p, 7, "3.20")))
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentStatusInTransit, s.Status)
	assert.Equal(t, int32(17), f.stockOf(t, p))

	details, err := f.uc.GetShipmentDetails(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, details.Items, 1)
	assert.Equal(t, "Widget", details.Items[0].ProductName)
	assert.True(t, details.Items[0].UnitCost.Equal(decimal.RequireFromString("3.20")))
	assert.True(t, details.ShipmentDate.Equal(shippedAt))
}

func TestCreateShipment_Rejections(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Widget", 10)

	early := createInput(line(p, 1, "1.00"))
	early.ExpectedDeliveryDate = shippedAt.AddDate(0, 0, -1)

	noDate := createInput(line(p, 1, "1.00"))
	noDate.ExpectedDeliveryDate = time.Time{}

	tests := []struct {
		name      string
		input     *dto.CreateShipmentInput
		kind      apperror.Kind
		messageID string
	}{
		{"delivery before shipment", early, apperror.KindValidation, apperror.MsgInvalidDeliveryDate},
		{"missing delivery date", noDate, apperror.KindValidation, apperror.MsgMissingField},
		{"no items", createInput(), apperror.KindValidation, apperror.MsgEmptyItems},
		{"negative cost", createInput(line(p, 1, "-0.01")), apperror.KindValidation, apperror.MsgInvalidUnitAmount},
		{"unknown product", createInput(line(p, 1, "1.00"), line(404, 1, "1.00")), apperror.KindNotFound, apperror.MsgNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.CreateShipment(context.Background(), tt.input)
			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.Equal(t, tt.messageID, appErr.MessageID)
		})
	}

	assert.Equal(t, int32(10), f.stockOf(t, p))
	_, total, err := f.uc.ListShipments(context.Background(), &dto.ShipmentFilters{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateShipment_EqualDatesAllowed(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Widget", 0)

	in := createInput(line(p, 2, "1.00"))
	in.ExpectedDeliveryDate = in.ShipmentDate

	_, err := f.uc.CreateShipment(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.stockOf(t, p))
}

func TestCreateShipment_ComparesCalendarDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Widget", 0)

	today := createInput(line(p, 1, "1.00"))
	today.ShipmentDate = time.Time{}
	today.ExpectedDeliveryDate = model.CalendarDate(time.Now())

	s, err := f.uc.CreateShipment(ctx, today)
	require.NoError(t, err, "default shipment date with delivery due today")
	assert.True(t, s.ShipmentDate.Equal(model.CalendarDate(time.Now())))

	sameDay := createInput(line(p, 1, "1.00"))
	sameDay.ShipmentDate = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	sameDay.ExpectedDeliveryDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	s, err = f.uc.CreateShipment(ctx, sameDay)
	require.NoError(t, err)
	assert.Equal(t, shippedAt, s.ShipmentDate)
	assert.Equal(t, shippedAt, s.ExpectedDeliveryDate)

	details, err := f.uc.GetShipmentDetails(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", details.ShipmentDate.Format(time.DateOnly))
	assert.Zero(t, details.ShipmentDate.Hour())

	assert.Equal(t, int32(2), f.stockOf(t, p))
}

func TestUpdateShipment_CancelRetractsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Widget", 1)

	s, err := f.uc.CreateShipment(ctx, createInput(line(p, 4, "1.00")))
	require.NoError(t, err)
	require.Equal(t, int32(5), f.stockOf(t, p))

	updated, err := f.uc.UpdateShipment(ctx, &dto.UpdateShipmentInput{ID: s.ID, Status: strPtr("cancelled")})
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentStatusCancelled, updated.Status)
	assert.Equal(t, int32(1), f.stockOf(t, p))

	_, err = f.uc.UpdateShipment(ctx, &dto.UpdateShipmentInput{ID: s.ID, Status: strPtr("delivered")})
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateShipment_CancelAfterStockSold(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Widget", 0)

	s, err := f.uc.CreateShipment(ctx, createInput(line(p, 4, "1.00")))
	require.NoError(t, err)
	f.sell(t, p, 3)

	_, err = f.uc.UpdateShipment(ctx, &dto.UpdateShipmentInput{ID: s.ID, Status: strPtr("cancelled")})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.MsgInsufficientStock, appErr.MessageID)

	got, err := f.uc.GetShipment(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentStatusInTransit, got.Status)
	assert.Equal(t, int32(1), f.stockOf(t, p))
}

func TestUpdateShipment_ReplaceItemsNetsQuantities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedProduct(t, "A", 0)
	b := f.seedProduct(t, "B", 0)

	s, err := f.uc.CreateShipment(ctx, createInput(line(a, 5, "1.00")))
	require.NoError(t, err)
	f.sell(t, a, 4)

	// Only the difference of 2 is taken back, which the single unit left cannot cover.
	_, err = f.uc.UpdateShipment(ctx, &dto.UpdateShipmentInput{
		ID: s.ID, ReplaceItems: true, Items: []dto.ShipmentItemInput{line(a, 3, "1.00")},
	})
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, int32(1), f.stockOf(t, a))

	updated, err := f.uc.UpdateShipment(ctx, &dto.UpdateShipmentInput{
		ID: s.ID, ReplaceItems: true, Items: []dto.ShipmentItemInput{line(a, 4, "1.00"), line(b, 6, "2.00")},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, int32(0), f.stockOf(t, a))
	assert.Equal(t, int32(6), f.stockOf(t, b))
}

func TestUpdateShipment_DeliveryDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Widget", 0)

	s, err := f.uc.CreateShipment(ctx, createInput(line(p, 1, "1.00")))
	require.NoError(t, err)

	tooEarly := shippedAt.Add(-24 * time.Hour)
	_, err = f.uc.UpdateShipment(ctx, &dto.UpdateShipmentInput{ID: s.ID, ExpectedDeliveryDate: &tooEarly})
	assert.True(t, apperror.IsValidation(err))

	later := shippedAt.Add(240 * time.Hour)
	cost := decimal.RequireFromString("99.50")
	updated, err := f.uc.UpdateShipment(ctx, &dto.UpdateShipmentInput{ID: s.ID, ExpectedDeliveryDate: &later, TotalCost: &cost})
	require.NoError(t, err)
	assert.True(t, updated.ExpectedDeliveryDate.Equal(later))
	assert.True(t, updated.TotalCost.Equal(cost))
	assert.Equal(t, int32(1), f.stockOf(t, p))
}

func TestDeleteShipment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Widget", 2)

	s, err := f.uc.CreateShipment(ctx, createInput(line(p, 5, "1.00")))
	require.NoError(t, err)

	f.sell(t, p, 6)
	err = f.uc.DeleteShipment(ctx, s.ID)
	assert.True(t, apperror.IsValidation(err), "sold stock cannot be retracted")
	_, err = f.uc.GetShipment(ctx, s.ID)
	require.NoError(t, err)

	require.NoError(t, f.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		_, err := repos.Ledger().Receive(ctx, stock.Adjustment{ProductID: p, Quantity: 4, Reason: "restock"})
		return err
	}))

	require.NoError(t, f.uc.DeleteShipment(ctx, s.ID))
	assert.Equal(t, int32(0), f.stockOf(t, p))

	_, err = f.uc.GetShipmentDetails(ctx, s.ID)
	assert.True(t, apperror.IsNotFound(err))
}

// versionedCache is a single-goroutine cache. beforeFill runs once just
// before the next SetJSON stores its value.
type versionedCache struct {
	entries    map[string][]byte
	versions   map[string]int64
	beforeFill func()
}

func (c *versionedCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *versionedCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if hook := c.beforeFill; hook != nil {
		c.beforeFill = nil
		hook()
	}
	data, err := json.Marshal(value)
	c.entries[key] = data
	return err
}

func (c *versionedCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *versionedCache) Version(_ context.Context, key string) (int64, error) {
	return c.versions[key], nil
}

func (c *versionedCache) Bump(_ context.Context, key string) (int64, error) {
	c.versions[key]++
	return c.versions[key], nil
}

func TestGetShipmentDetails_FillRacingUpdateIsNotServed(t *testing.T) {
	f := newFixture(t)
	c := &versionedCache{entries: map[string][]byte{}, versions: map[string]int64{}}
	uc := NewShipmentUseCase(f.tx, c, nil, nil, logger.NewNop())
	ctx := context.Background()
	p := f.seedProduct(t, "Beans", 0)

	s, err := uc.CreateShipment(ctx, createInput(line(p, 3, "40.00")))
	require.NoError(t, err)

	cost := decimal.RequireFromString("150.00")
	c.beforeFill = func() {
		_, err := uc.UpdateShipment(ctx, &dto.UpdateShipmentInput{ID: s.ID, TotalCost: &cost})
		require.NoError(t, err)
	}
	stale, err := uc.GetShipmentDetails(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "120.00", stale.TotalCost.StringFixed(2))

	for i := 0; i < 2; i++ {
		got, err := uc.GetShipmentDetails(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "150.00", got.TotalCost.StringFixed(2))
	}
	assert.Equal(t, int64(2), c.versions[versionKey(s.ID)])
	assert.Contains(t, c.entries, detailsKey(s.ID, 2))
}
