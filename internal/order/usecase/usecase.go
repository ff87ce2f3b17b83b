package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/cache"
	"github.com/fekuna/omnipos-backoffice-service/internal/events"
	"github.com/fekuna/omnipos-backoffice-service/internal/lineitem"
	"github.com/fekuna/omnipos-backoffice-service/internal/logger"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/order"
	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/search"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock"
	"github.com/fekuna/omnipos-backoffice-service/internal/store"
	"github.com/fekuna/omnipos-backoffice-service/internal/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const detailsTTL = 5 * time.Minute

type orderUseCase struct {
	tx        store.TxManager
	cache     cache.Cache
	publisher events.Publisher
	es        search.Indexer
	logger    logger.ZapLogger
	tracer    trace.Tracer
}

// NewOrderUseCase wires the order processor. cache, publisher and es may be nil.
func NewOrderUseCase(tx store.TxManager, cache cache.Cache, publisher events.Publisher, es search.Indexer, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		tx:        tx,
		cache:     cache,
		publisher: publisher,
		es:        es,
		logger:    log,
		tracer:    otel.Tracer("github.com/fekuna/omnipos-backoffice-service/internal/order"),
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (o *model.Order, err error) {
	ctx, span := uc.tracer.Start(ctx, "order.CreateOrder",
		trace.WithAttributes(attribute.Int64("customer_id", input.CustomerID), attribute.Int("items", len(input.Items))))
	defer func() { tracing.End(span, err) }()

	status, err := model.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, err
	}
	if err = validateHeader(input.CustomerID, input.TotalAmount.IsNegative(), input.ShippingAddress); err != nil {
		return nil, err
	}
	lines := toLines(input.Items)
	if err = lineitem.Validate(lines); err != nil {
		return nil, err
	}

	o = &model.Order{
		CustomerID:      input.CustomerID,
		OrderDate:       time.Now().UTC(),
		Status:          status,
		TotalAmount:     input.TotalAmount,
		ShippingAddress: input.ShippingAddress,
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		if err := lineitem.RequireProducts(ctx, repos.Products(), lines); err != nil {
			return err
		}
		if err := repos.Orders().Create(ctx, o); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		o.Items = toItems(o.ID, input.Items)
		if err := repos.Orders().InsertItems(ctx, o.Items); err != nil {
			return fmt.Errorf("failed to insert order items: %w", err)
		}

		if !status.Active() {
			return nil
		}
		return lineitem.Apply(ctx, repos.Ledger(), lineitem.Reserve, reference(o.ID), "order placed", lines)
	})
	if err != nil {
		err = apperror.Storage(err)
		uc.logFailure("create order", err, zap.Int64("customer_id", input.CustomerID))
		return nil, err
	}

	uc.logger.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.Int64("customer_id", o.CustomerID),
		zap.Int("items", len(o.Items)),
	)
	uc.afterCommit(ctx, events.OrderCreated, o)
	return o, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	o, err := uc.tx.Repos().Orders().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if o == nil {
		return nil, apperror.NotFound("order", id)
	}
	return o, nil
}

func (uc *orderUseCase) GetOrderDetails(ctx context.Context, id int64) (*model.Order, error) {
	// key stays empty when the version is unknown, which skips the fill.
	var key string
	if uc.cache != nil {
		version, err := uc.cache.Version(ctx, versionKey(id))
		if err != nil {
			uc.logger.Warn("order cache version read failed", zap.Int64("order_id", id), zap.Error(err))
		} else {
			key = detailsKey(id, version)
			var cached model.Order
			hit, err := uc.cache.GetJSON(ctx, key, &cached)
			if err != nil {
				uc.logger.Warn("order cache read failed", zap.String("key", key), zap.Error(err))
			}
			if hit {
				return &cached, nil
			}
		}
	}

	repos := uc.tx.Repos()
	o, err := repos.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if o == nil {
		return nil, apperror.NotFound("order", id)
	}

	o.Items, err = repos.Orders().ListItems(ctx, id)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if err := uc.attachProductNames(ctx, repos, o.Items); err != nil {
		return nil, apperror.Storage(err)
	}

	if key != "" {
		if err := uc.cache.SetJSON(ctx, key, o, detailsTTL); err != nil {
			uc.logger.Warn("order cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return o, nil
}

func (uc *orderUseCase) attachProductNames(ctx context.Context, repos store.Repositories, items []model.OrderItem) error {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	products, err := repos.Products().FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	for i := range items {
		items[i].ProductName = names[items[i].ProductID]
	}
	return nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	orders, count, err := uc.tx.Repos().Orders().FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperror.Storage(err)
	}
	return orders, count, nil
}

// UpdateOrder applies the header patch and the optional item replacement in one
// transaction. Replacing items moves only the net stock difference; cancelling
// hands the order's stock back.
func (uc *orderUseCase) UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) (o *model.Order, err error) {
	ctx, span := uc.tracer.Start(ctx, "order.UpdateOrder", trace.WithAttributes(attribute.Int64("order_id", input.ID)))
	defer func() { tracing.End(span, err) }()

	var nextStatus *model.OrderStatus
	if input.Status != nil {
		if *input.Status == "" {
			return nil, apperror.Validation(apperror.MsgMissingField, "status must not be empty",
				map[string]interface{}{"Field": "status"})
		}
		st, err := model.ParseOrderStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		nextStatus = &st
	}
	if input.TotalAmount != nil && input.TotalAmount.IsNegative() {
		return nil, negativeAmount("total_amount")
	}
	if input.ShippingAddress != nil && strings.TrimSpace(*input.ShippingAddress) == "" {
		return nil, missingField("shipping_address")
	}
	var newLines []lineitem.Line
	if input.ReplaceItems {
		newLines = toLines(input.Items)
		if err = lineitem.Validate(newLines); err != nil {
			return nil, err
		}
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		current, err := repos.Orders().FindByIDForUpdate(ctx, input.ID)
		if err != nil {
			return fmt.Errorf("failed to load order: %w", err)
		}
		if current == nil {
			return apperror.NotFound("order", input.ID)
		}
		items, err := repos.Orders().ListItems(ctx, input.ID)
		if err != nil {
			return fmt.Errorf("failed to load order items: %w", err)
		}

		next := *current
		if nextStatus != nil {
			if !current.Status.CanTransitionTo(*nextStatus) {
				return model.TransitionError(string(current.Status), string(*nextStatus))
			}
			next.Status = *nextStatus
		}
		if input.TotalAmount != nil {
			next.TotalAmount = *input.TotalAmount
		}
		if input.ShippingAddress != nil {
			next.ShippingAddress = *input.ShippingAddress
		}

		ref := reference(current.ID)
		lines := itemLines(items)
		if input.ReplaceItems {
			if !current.Status.Active() {
				return cancelled(current.ID)
			}
			if err := lineitem.RequireProducts(ctx, repos.Products(), newLines); err != nil {
				return err
			}
			if err := repos.Orders().DeleteItems(ctx, current.ID); err != nil {
				return fmt.Errorf("failed to delete order items: %w", err)
			}
			items = toItems(current.ID, input.Items)
			if err := repos.Orders().InsertItems(ctx, items); err != nil {
				return fmt.Errorf("failed to insert order items: %w", err)
			}

			forward, backward := lineitem.Net(lines, newLines)
			if err := lineitem.Apply(ctx, repos.Ledger(), lineitem.Receive, ref, "order items replaced", backward); err != nil {
				return err
			}
			if err := lineitem.Apply(ctx, repos.Ledger(), lineitem.Reserve, ref, "order items replaced", forward); err != nil {
				return err
			}
			lines = newLines
		}

		if current.Status.Active() && !next.Status.Active() {
			if err := lineitem.Apply(ctx, repos.Ledger(), lineitem.Receive, ref, "order cancelled", lines); err != nil {
				return err
			}
		}

		if err := repos.Orders().Update(ctx, &next); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		next.Items = items
		o = &next
		return nil
	})
	if err != nil {
		err = apperror.Storage(err)
		uc.logFailure("update order", err, zap.Int64("order_id", input.ID))
		return nil, err
	}

	uc.logger.Info("order updated",
		zap.Int64("order_id", o.ID),
		zap.String("status", string(o.Status)),
		zap.Bool("items_replaced", input.ReplaceItems),
	)
	uc.afterCommit(ctx, events.OrderUpdated, o)
	return o, nil
}

// DeleteOrder removes the order and its items, returning the stock of an
// order that was not cancelled.
func (uc *orderUseCase) DeleteOrder(ctx context.Context, id int64) (err error) {
	ctx, span := uc.tracer.Start(ctx, "order.DeleteOrder", trace.WithAttributes(attribute.Int64("order_id", id)))
	defer func() { tracing.End(span, err) }()

	var deleted *model.Order
	err = uc.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		current, err := repos.Orders().FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load order: %w", err)
		}
		if current == nil {
			return apperror.NotFound("order", id)
		}
		items, err := repos.Orders().ListItems(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load order items: %w", err)
		}

		if current.Status.Active() {
			if err := lineitem.Apply(ctx, repos.Ledger(), lineitem.Receive, reference(id), "order deleted", itemLines(items)); err != nil {
				return err
			}
		}
		if err := repos.Orders().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		current.Items = items
		deleted = current
		return nil
	})
	if err != nil {
		err = apperror.Storage(err)
		uc.logFailure("delete order", err, zap.Int64("order_id", id))
		return err
	}

	uc.logger.Info("order deleted", zap.Int64("order_id", id))
	uc.afterCommit(ctx, events.OrderDeleted, deleted)
	return nil
}

// afterCommit runs the side effects of a committed change. None of them can
// undo the commit, so failures are only logged.
func (uc *orderUseCase) afterCommit(ctx context.Context, eventType string, o *model.Order) {
	if uc.cache != nil {
		version, err := uc.cache.Bump(ctx, versionKey(o.ID))
		if err != nil {
			uc.logger.Warn("failed to invalidate order cache", zap.Int64("order_id", o.ID), zap.Error(err))
		} else if err := uc.cache.Delete(ctx, detailsKey(o.ID, version-1)); err != nil {
			uc.logger.Warn("failed to drop stale order details", zap.Int64("order_id", o.ID), zap.Error(err))
		}
	}

	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, events.New(eventType, o.ID, o)); err != nil {
			uc.logger.Error("failed to publish order event",
				zap.String("event_type", eventType), zap.Int64("order_id", o.ID), zap.Error(err))
		}
	}

	if uc.es != nil {
		doc := *o
		go uc.syncToElastic(context.Background(), eventType, &doc)
	}
}

func (uc *orderUseCase) syncToElastic(ctx context.Context, eventType string, o *model.Order) {
	var err error
	if eventType == events.OrderDeleted {
		err = uc.es.Delete(ctx, search.OrdersIndex, o.ID)
	} else {
		err = uc.es.Index(ctx, search.OrdersIndex, o.ID, o)
	}
	if err != nil {
		uc.logger.Error("failed to sync order to search index", zap.Int64("order_id", o.ID), zap.Error(err))
	}
}

func (uc *orderUseCase) logFailure(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("kind", apperror.KindOf(err).String()), zap.Error(err))
	if apperror.KindOf(err) == apperror.KindStorage {
		uc.logger.Error("failed to "+op, fields...)
		return
	}
	uc.logger.Warn("rejected "+op, fields...)
}

func versionKey(id int64) string {
	return fmt.Sprintf("orders:version:%d", id)
}

func detailsKey(id, version int64) string {
	return fmt.Sprintf("orders:details:%d:v%d", id, version)
}

func reference(orderID int64) stock.Reference {
	return stock.Reference{Type: model.ReferenceOrder, ID: orderID}
}

func toLines(items []dto.OrderItemInput) []lineitem.Line {
	lines := make([]lineitem.Line, len(items))
	for i, it := range items {
		lines[i] = lineitem.Line{ProductID: it.ProductID, Quantity: it.Quantity, Amount: it.UnitPrice}
	}
	return lines
}

func itemLines(items []model.OrderItem) []lineitem.Line {
	lines := make([]lineitem.Line, len(items))
	for i, it := range items {
		lines[i] = lineitem.Line{ProductID: it.ProductID, Quantity: it.Quantity, Amount: it.UnitPrice}
	}
	return lines
}

// toItems keeps the caller's order of lines.
func toItems(orderID int64, inputs []dto.OrderItemInput) []model.OrderItem {
	items := make([]model.OrderItem, len(inputs))
	for i, in := range inputs {
		items[i] = model.OrderItem{
			OrderID:   orderID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
		}
	}
	return items
}

func validateHeader(customerID int64, negativeTotal bool, shippingAddress string) error {
	if customerID <= 0 {
		return missingField("customer_id")
	}
	if negativeTotal {
		return negativeAmount("total_amount")
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return missingField("shipping_address")
	}
	return nil
}

func missingField(field string) error {
	return apperror.Validation(apperror.MsgMissingField, field+" is required",
		map[string]interface{}{"Field": field})
}

func negativeAmount(field string) error {
	return apperror.Validation(apperror.MsgNegativeAmount, field+" must not be negative",
		map[string]interface{}{"Field": field})
}

func cancelled(id int64) error {
	return apperror.Validation(apperror.MsgDocumentCancelled,
		fmt.Sprintf("order %d is cancelled and cannot be changed", id),
		map[string]interface{}{"Resource": "order", "ID": id})
}
