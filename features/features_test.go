package features

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/database/inmem"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory"
	invDto "github.com/fekuna/omnipos-backoffice-service/internal/inventory/dto"
	invUC "github.com/fekuna/omnipos-backoffice-service/internal/inventory/usecase"
	"github.com/fekuna/omnipos-backoffice-service/internal/logger"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/order"
	orderDto "github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
	orderUC "github.com/fekuna/omnipos-backoffice-service/internal/order/usecase"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment"
	shipmentDto "github.com/fekuna/omnipos-backoffice-service/internal/shipment/dto"
	shipmentUC "github.com/fekuna/omnipos-backoffice-service/internal/shipment/usecase"
	"github.com/fekuna/omnipos-backoffice-service/internal/store"
	"github.com/fekuna/omnipos-backoffice-service/internal/store/memory"
	"github.com/shopspring/decimal"
)

// unknownProductID is used for product names no step created.
const unknownProductID = 999999

type backofficeTestContext struct {
	tx        *memory.TxManager
	orders    order.UseCase
	shipments shipment.UseCase
	inventory inventory.UseCase
	products  map[string]int64

	lastOrder    *model.Order
	lastShipment *model.Shipment
	err          error
	raceErrs     []error
}

func (c *backofficeTestContext) anEmptyBackOffice() error {
	db, err := inmem.New()
	if err != nil {
		return err
	}
	log := logger.NewNop()
	c.tx = memory.NewTxManager(db)
	c.orders = orderUC.NewOrderUseCase(c.tx, nil, nil, nil, log)
	c.shipments = shipmentUC.NewShipmentUseCase(c.tx, nil, nil, nil, log)
	c.inventory = invUC.NewInventoryUseCase(c.tx, log)
	c.products = map[string]int64{}
	c.lastOrder, c.lastShipment, c.err, c.raceErrs = nil, nil, nil, nil
	return nil
}

func (c *backofficeTestContext) productID(name string) int64 {
	if id, ok := c.products[name]; ok {
		return id
	}
	return unknownProductID
}

func (c *backofficeTestContext) aProductPricedWithStock(name, price string, stock int) error {
	p := &model.Product{Name: name, StockQuantity: int32(stock)}
	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return err
	}
	err = c.tx.WithinTx(context.Background(), func(ctx context.Context, repos store.Repositories) error {
		return repos.Products().Create(ctx, p)
	})
	if err != nil {
		return err
	}
	c.products[name] = p.ID
	return nil
}

func (c *backofficeTestContext) placeOrder(customerID int64, items []orderDto.OrderItemInput) {
	c.lastOrder, c.err = c.orders.CreateOrder(context.Background(), &orderDto.CreateOrderInput{
		CustomerID:      customerID,
		TotalAmount:     decimal.Zero,
		ShippingAddress: "Jl. Asia Afrika 8, Bandung",
		Items:           items,
	})
}

func (c *backofficeTestContext) customerOrdersOfAt(customerID, qty int, name, price string) error {
	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	c.placeOrder(int64(customerID), []orderDto.OrderItemInput{
		{ProductID: c.productID(name), Quantity: int32(qty), UnitPrice: unitPrice},
	})
	return nil
}

func (c *backofficeTestContext) customerPlacesAnOrderFor(customerID int, table *godog.Table) error {
	var items []orderDto.OrderItemInput
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		qty, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		price, err := decimal.NewFromString(row.Cells[2].Value)
		if err != nil {
			return err
		}
		items = append(items, orderDto.OrderItemInput{
			ProductID: c.productID(row.Cells[0].Value),
			Quantity:  int32(qty),
			UnitPrice: price,
		})
	}
	c.placeOrder(int64(customerID), items)
	return nil
}

func (c *backofficeTestContext) customersConcurrentlyOrder(n, qty int, name string) error {
	c.raceErrs = make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, c.raceErrs[i] = c.orders.CreateOrder(context.Background(), &orderDto.CreateOrderInput{
				CustomerID:      int64(i + 1),
				ShippingAddress: "Jl. Asia Afrika 8, Bandung",
				Items:           []orderDto.OrderItemInput{{ProductID: c.productID(name), Quantity: int32(qty)}},
			})
		}(i)
	}
	wg.Wait()
	return nil
}

func (c *backofficeTestContext) supplierShipsOfAtCost(supplierID, qty int, name, cost string) error {
	unitCost, err := decimal.NewFromString(cost)
	if err != nil {
		return err
	}
	c.lastShipment, c.err = c.shipments.CreateShipment(context.Background(), &shipmentDto.CreateShipmentInput{
		SupplierID:           int64(supplierID),
		ExpectedDeliveryDate: time.Now().UTC().AddDate(0, 0, 7),
		Items:                []shipmentDto.ShipmentItemInput{{ProductID: c.productID(name), Quantity: int32(qty), UnitCost: unitCost}},
	})
	return nil
}

func (c *backofficeTestContext) thePriceOfChangesTo(name, price string) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	_, err = c.inventory.UpdateProductPrice(context.Background(), &invDto.UpdatePriceInput{ProductID: c.productID(name), Price: p})
	return err
}

func (c *backofficeTestContext) theOrderIsMovedTo(status string) error {
	if c.lastOrder == nil {
		return fmt.Errorf("no order was created: %v", c.err)
	}
	_, c.err = c.orders.UpdateOrder(context.Background(), &orderDto.UpdateOrderInput{ID: c.lastOrder.ID, Status: &status})
	return nil
}

func (c *backofficeTestContext) theShipmentIsDeleted() error {
	if c.lastShipment == nil {
		return fmt.Errorf("no shipment was created: %v", c.err)
	}
	c.err = c.shipments.DeleteShipment(context.Background(), c.lastShipment.ID)
	return nil
}

func (c *backofficeTestContext) theRequestSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %v", c.err)
	}
	return nil
}

func (c *backofficeTestContext) theRequestFailsWithAError(kind string) error {
	want := map[string]apperror.Kind{
		"validation": apperror.KindValidation,
		"not found":  apperror.KindNotFound,
	}[kind]
	if c.err == nil {
		return fmt.Errorf("expected a %s error, got success", kind)
	}
	if got := apperror.KindOf(c.err); got != want {
		return fmt.Errorf("expected a %s error, got %s: %v", kind, got, c.err)
	}
	return nil
}

func (c *backofficeTestContext) theStockOfIs(name string, want int) error {
	p, err := c.tx.Repos().Products().FindByID(context.Background(), c.productID(name))
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("product %q does not exist", name)
	}
	if int(p.StockQuantity) != want {
		return fmt.Errorf("stock of %q is %d, want %d", name, p.StockQuantity, want)
	}
	return nil
}

func (c *backofficeTestContext) thereAreOrders(want int) error {
	_, total, err := c.orders.ListOrders(context.Background(), &orderDto.OrderFilters{})
	if err != nil {
		return err
	}
	if total != want {
		return fmt.Errorf("found %d orders, want %d", total, want)
	}
	return nil
}

func (c *backofficeTestContext) thereIsShipmentWithItem(shipments, items int) error {
	list, total, err := c.shipments.ListShipments(context.Background(), &shipmentDto.ShipmentFilters{})
	if err != nil {
		return err
	}
	if total != shipments {
		return fmt.Errorf("found %d shipments, want %d", total, shipments)
	}
	details, err := c.shipments.GetShipmentDetails(context.Background(), list[0].ID)
	if err != nil {
		return err
	}
	if len(details.Items) != items {
		return fmt.Errorf("shipment has %d items, want %d", len(details.Items), items)
	}
	return nil
}

func (c *backofficeTestContext) exactlyOrderSucceeds(want int) error {
	var ok int
	for _, err := range c.raceErrs {
		switch {
		case err == nil:
			ok++
		case !apperror.IsValidation(err):
			return fmt.Errorf("unexpected error: %v", err)
		}
	}
	if ok != want {
		return fmt.Errorf("%d orders succeeded, want %d", ok, want)
	}
	return nil
}

func (c *backofficeTestContext) theOrderLineForHasUnitPrice(name, price string) error {
	if c.lastOrder == nil {
		return fmt.Errorf("no order was created: %v", c.err)
	}
	details, err := c.orders.GetOrderDetails(context.Background(), c.lastOrder.ID)
	if err != nil {
		return err
	}
	want := decimal.RequireFromString(price)
	for _, it := range details.Items {
		if it.ProductID == c.productID(name) {
			if !it.UnitPrice.Equal(want) {
				return fmt.Errorf("unit price is %s, want %s", it.UnitPrice, want)
			}
			return nil
		}
	}
	return fmt.Errorf("order has no line for %q", name)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &backofficeTestContext{}

	// Given steps
	ctx.Step(`^an empty back-office$`, tc.anEmptyBackOffice)
	ctx.Step(`^a product "([^"]*)" priced ([\d.]+) with stock (\d+)$`, tc.aProductPricedWithStock)

	// When steps
	ctx.Step(`^customer (\d+) orders (\d+) of "([^"]*)" at ([\d.]+)$`, tc.customerOrdersOfAt)
	ctx.Step(`^customer (\d+) places an order for:$`, tc.customerPlacesAnOrderFor)
	ctx.Step(`^(\d+) customers concurrently order (\d+) of "([^"]*)"$`, tc.customersConcurrentlyOrder)
	ctx.Step(`^supplier (\d+) ships (\d+) of "([^"]*)" at cost ([\d.]+)$`, tc.supplierShipsOfAtCost)
	ctx.Step(`^the price of "([^"]*)" changes to ([\d.]+)$`, tc.thePriceOfChangesTo)
	ctx.Step(`^the order is moved to "([^"]*)"$`, tc.theOrderIsMovedTo)
	ctx.Step(`^the shipment is deleted$`, tc.theShipmentIsDeleted)

	// Then steps
	ctx.Step(`^the request succeeds$`, tc.theRequestSucceeds)
	ctx.Step(`^the request fails with a (validation|not found) error$`, tc.theRequestFailsWithAError)
	ctx.Step(`^the stock of "([^"]*)" is (\d+)$`, tc.theStockOfIs)
	ctx.Step(`^there are (\d+) orders$`, tc.thereAreOrders)
	ctx.Step(`^there is (\d+) shipment with (\d+) item$`, tc.thereIsShipmentWithItem)
	ctx.Step(`^exactly (\d+) order succeeds and the others fail with a validation error$`, tc.exactlyOrderSucceeds)
	ctx.Step(`^the order line for "([^"]*)" has unit price ([\d.]+)$`, tc.theOrderLineForHasUnitPrice)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"stock.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
