package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/cache"
	"github.com/fekuna/omnipos-backoffice-service/internal/events"
	"github.com/fekuna/omnipos-backoffice-service/internal/lineitem"
	"github.com/fekuna/omnipos-backoffice-service/internal/logger"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/search"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock"
	"github.com/fekuna/omnipos-backoffice-service/internal/store"
	"github.com/fekuna/omnipos-backoffice-service/internal/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const detailsTTL = 5 * time.Minute

type shipmentUseCase struct {
	tx        store.TxManager
	cache     cache.Cache
	publisher events.Publisher
	es        search.Indexer
	logger    logger.ZapLogger
	tracer    trace.Tracer
}

// NewShipmentUseCase wires the shipment processor. cache, publisher and es may be nil.
func NewShipmentUseCase(tx store.TxManager, cache cache.Cache, publisher events.Publisher, es search.Indexer, log logger.ZapLogger) shipment.UseCase {
	return &shipmentUseCase{
		tx:        tx,
		cache:     cache,
		publisher: publisher,
		es:        es,
		logger:    log,
		tracer:    otel.Tracer("github.com/fekuna/omnipos-backoffice-service/internal/shipment"),
	}
}

func (uc *shipmentUseCase) CreateShipment(ctx context.Context, input *dto.CreateShipmentInput) (s *model.Shipment, err error) {
	ctx, span := uc.tracer.Start(ctx, "shipment.CreateShipment",
		trace.WithAttributes(attribute.Int64("supplier_id", input.SupplierID), attribute.Int("items", len(input.Items))))
	defer func() { tracing.End(span, err) }()

	status, err := model.ParseShipmentStatus(input.Status)
	if err != nil {
		return nil, err
	}
	if input.SupplierID <= 0 {
		return nil, missingField("supplier_id")
	}
	if input.TotalCost.IsNegative() {
		return nil, negativeAmount("total_cost")
	}

	shipmentDate := input.ShipmentDate
	if shipmentDate.IsZero() {
		shipmentDate = time.Now()
	}
	shipmentDate = model.CalendarDate(shipmentDate)
	if input.ExpectedDeliveryDate.IsZero() {
		return nil, missingField("expected_delivery_date")
	}
	expected := model.CalendarDate(input.ExpectedDeliveryDate)
	if err = checkDeliveryDate(shipmentDate, expected); err != nil {
		return nil, err
	}

	lines := toLines(input.Items)
	if err = lineitem.Validate(lines); err != nil {
		return nil, err
	}

	s = &model.Shipment{
		SupplierID:           input.SupplierID,
		ShipmentDate:         shipmentDate,
		ExpectedDeliveryDate: expected,
		Status:               status,
		TotalCost:            input.TotalCost,
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		if err := lineitem.RequireProducts(ctx, repos.Products(), lines); err != nil {
			return err
		}
		if err := repos.Shipments().Create(ctx, s); err != nil {
			return fmt.Errorf("failed to create shipment: %w", err)
		}

		s.Items = toItems(s.ID, input.Items)
		if err := repos.Shipments().InsertItems(ctx, s.Items); err != nil {
			return fmt.Errorf("failed to insert shipment items: %w", err)
		}

		if !status.Active() {
			return nil
		}
		return lineitem.Apply(ctx, repos.Ledger(), lineitem.Receive, reference(s.ID), "shipment received", lines)
	})
	if err != nil {
		err = apperror.Storage(err)
		uc.logFailure("create shipment", err, zap.Int64("supplier_id", input.SupplierID))
		return nil, err
	}

	uc.logger.Info("shipment created",
		zap.Int64("shipment_id", s.ID),
		zap.Int64("supplier_id", s.SupplierID),
		zap.Int("items", len(s.Items)),
	)
	uc.afterCommit(ctx, events.ShipmentCreated, s)
	return s, nil
}

func (uc *shipmentUseCase) GetShipment(ctx context.Context, id int64) (*model.Shipment, error) {
	s, err := uc.tx.Repos().Shipments().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if s == nil {
		return nil, apperror.NotFound("shipment", id)
	}
	return s, nil
}

func (uc *shipmentUseCase) GetShipmentDetails(ctx context.Context, id int64) (*model.Shipment, error) {
	// key stays empty when the version is unknown, which skips the fill.
	var key string
	if uc.cache != nil {
		version, err := uc.cache.Version(ctx, versionKey(id))
		if err != nil {
			uc.logger.Warn("shipment cache version read failed", zap.Int64("shipment_id", id), zap.Error(err))
		} else {
			key = detailsKey(id, version)
			var cached model.Shipment
			hit, err := uc.cache.GetJSON(ctx, key, &cached)
			if err != nil {
				uc.logger.Warn("shipment cache read failed", zap.String("key", key), zap.Error(err))
			}
			if hit {
				return &cached, nil
			}
		}
	}

	repos := uc.tx.Repos()
	s, err := repos.Shipments().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if s == nil {
		return nil, apperror.NotFound("shipment", id)
	}

	s.Items, err = repos.Shipments().ListItems(ctx, id)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	ids := make([]int64, len(s.Items))
	for i, it := range s.Items {
		ids[i] = it.ProductID
	}
	products, err := repos.Products().FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	for i := range s.Items {
		s.Items[i].ProductName = names[s.Items[i].ProductID]
	}

	if key != "" {
		if err := uc.cache.SetJSON(ctx, key, s, detailsTTL); err != nil {
			uc.logger.Warn("shipment cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return s, nil
}

func (uc *shipmentUseCase) ListShipments(ctx context.Context, filters *dto.ShipmentFilters) ([]model.Shipment, int, error) {
	shipments, count, err := uc.tx.Repos().Shipments().FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperror.Storage(err)
	}
	return shipments, count, nil
}

// UpdateShipment applies the patch in one transaction. Received stock that is
// taken back (replacement or cancellation) must still be on hand.
func (uc *shipmentUseCase) UpdateShipment(ctx context.Context, input *dto.UpdateShipmentInput) (s *model.Shipment, err error) {
	ctx, span := uc.tracer.Start(ctx, "shipment.UpdateShipment", trace.WithAttributes(attribute.Int64("shipment_id", input.ID)))
	defer func() { tracing.End(span, err) }()

	var nextStatus *model.ShipmentStatus
	if input.Status != nil {
		if *input.Status == "" {
			return nil, missingField("status")
		}
		st, err := model.ParseShipmentStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		nextStatus = &st
	}
	if input.TotalCost != nil && input.TotalCost.IsNegative() {
		return nil, negativeAmount("total_cost")
	}
	var newLines []lineitem.Line
	if input.ReplaceItems {
		newLines = toLines(input.Items)
		if err = lineitem.Validate(newLines); err != nil {
			return nil, err
		}
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		current, err := repos.Shipments().FindByIDForUpdate(ctx, input.ID)
		if err != nil {
			return fmt.Errorf("failed to load shipment: %w", err)
		}
		if current == nil {
			return apperror.NotFound("shipment", input.ID)
		}
		items, err := repos.Shipments().ListItems(ctx, input.ID)
		if err != nil {
			return fmt.Errorf("failed to load shipment items: %w", err)
		}

		next := *current
		if nextStatus != nil {
			if !current.Status.CanTransitionTo(*nextStatus) {
				return model.TransitionError(string(current.Status), string(*nextStatus))
			}
			next.Status = *nextStatus
		}
		if input.ExpectedDeliveryDate != nil {
			expected := model.CalendarDate(*input.ExpectedDeliveryDate)
			if err := checkDeliveryDate(model.CalendarDate(current.ShipmentDate), expected); err != nil {
				return err
			}
			next.ExpectedDeliveryDate = expected
		}
		if input.TotalCost != nil {
			next.TotalCost = *input.TotalCost
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
			if err := repos.Shipments().DeleteItems(ctx, current.ID); err != nil {
				return fmt.Errorf("failed to delete shipment items: %w", err)
			}
			items = toItems(current.ID, input.Items)
			if err := repos.Shipments().InsertItems(ctx, items); err != nil {
				return fmt.Errorf("failed to insert shipment items: %w", err)
			}

			// Retract first so a shortfall is reported before anything else moves.
			forward, backward := lineitem.Net(lines, newLines)
			if err := lineitem.Apply(ctx, repos.Ledger(), lineitem.Reserve, ref, "shipment items replaced", backward); err != nil {
				return err
			}
			if err := lineitem.Apply(ctx, repos.Ledger(), lineitem.Receive, ref, "shipment items replaced", forward); err != nil {
				return err
			}
			lines = newLines
		}

		if current.Status.Active() && !next.Status.Active() {
			if err := lineitem.Apply(ctx, repos.Ledger(), lineitem.Reserve, ref, "shipment cancelled", lines); err != nil {
				return err
			}
		}

		if err := repos.Shipments().Update(ctx, &next); err != nil {
			return fmt.Errorf("failed to update shipment: %w", err)
		}
		next.Items = items
		s = &next
		return nil
	})
	if err != nil {
		err = apperror.Storage(err)
		uc.logFailure("update shipment", err, zap.Int64("shipment_id", input.ID))
		return nil, err
	}

	uc.logger.Info("shipment updated",
		zap.Int64("shipment_id", s.ID),
		zap.String("status", string(s.Status)),
		zap.Bool("items_replaced", input.ReplaceItems),
	)
	uc.afterCommit(ctx, events.ShipmentUpdated, s)
	return s, nil
}

// DeleteShipment removes the shipment and takes back the stock it received,
// which fails when that stock has already been sold.
func (uc *shipmentUseCase) DeleteShipment(ctx context.Context, id int64) (err error) {
	ctx, span := uc.tracer.Start(ctx, "shipment.DeleteShipment", trace.WithAttributes(attribute.Int64("shipment_id", id)))
	defer func() { tracing.End(span, err) }()

	var deleted *model.Shipment
	err = uc.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		current, err := repos.Shipments().FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load shipment: %w", err)
		}
		if current == nil {
			return apperror.NotFound("shipment", id)
		}
		items, err := repos.Shipments().ListItems(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load shipment items: %w", err)
		}

		if current.Status.Active() {
			if err := lineitem.Apply(ctx, repos.Ledger(), lineitem.Reserve, reference(id), "shipment deleted", itemLines(items)); err != nil {
				return err
			}
		}
		if err := repos.Shipments().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete shipment: %w", err)
		}
		current.Items = items
		deleted = current
		return nil
	})
	if err != nil {
		err = apperror.Storage(err)
		uc.logFailure("delete shipment", err, zap.Int64("shipment_id", id))
		return err
	}

	uc.logger.Info("shipment deleted", zap.Int64("shipment_id", id))
	uc.afterCommit(ctx, events.ShipmentDeleted, deleted)
	return nil
}

func (uc *shipmentUseCase) afterCommit(ctx context.Context, eventType string, s *model.Shipment) {
	if uc.cache != nil {
		version, err := uc.cache.Bump(ctx, versionKey(s.ID))
		if err != nil {
			uc.logger.Warn("failed to invalidate shipment cache", zap.Int64("shipment_id", s.ID), zap.Error(err))
		} else if err := uc.cache.Delete(ctx, detailsKey(s.ID, version-1)); err != nil {
			uc.logger.Warn("failed to drop stale shipment details", zap.Int64("shipment_id", s.ID), zap.Error(err))
		}
	}

	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, events.New(eventType, s.ID, s)); err != nil {
			uc.logger.Error("failed to publish shipment event",
				zap.String("event_type", eventType), zap.Int64("shipment_id", s.ID), zap.Error(err))
		}
	}

	if uc.es != nil {
		doc := *s
		go uc.syncToElastic(context.Background(), eventType, &doc)
	}
}

func (uc *shipmentUseCase) syncToElastic(ctx context.Context, eventType string, s *model.Shipment) {
	var err error
	if eventType == events.ShipmentDeleted {
		err = uc.es.Delete(ctx, search.ShipmentsIndex, s.ID)
	} else {
		err = uc.es.Index(ctx, search.ShipmentsIndex, s.ID, s)
	}
	if err != nil {
		uc.logger.Error("failed to sync shipment to search index", zap.Int64("shipment_id", s.ID), zap.Error(err))
	}
}

func (uc *shipmentUseCase) logFailure(op string, err error, fields ...zap.Field) {
	kind := apperror.KindOf(err)
	fields = append(fields, zap.String("kind", kind.String()), zap.Error(err))
	if kind == apperror.KindStorage {
		uc.logger.Error("failed to "+op, fields...)
		return
	}
	uc.logger.Warn("rejected "+op, fields...)
}

func versionKey(id int64) string {
	return fmt.Sprintf("shipments:version:%d", id)
}

func detailsKey(id, version int64) string {
	return fmt.Sprintf("shipments:details:%d:v%d", id, version)
}

func reference(shipmentID int64) stock.Reference {
	return stock.Reference{Type: model.ReferenceShipment, ID: shipmentID}
}

// checkDeliveryDate compares calendar dates; both arguments carry no time of day.
func checkDeliveryDate(shipmentDate, expected time.Time) error {
	if expected.Before(shipmentDate) {
		return apperror.Validation(apperror.MsgInvalidDeliveryDate,
			"expected_delivery_date must not be before shipment_date",
			map[string]interface{}{
				"ShipmentDate": shipmentDate.Format(time.DateOnly),
				"Expected":     expected.Format(time.DateOnly),
			})
	}
	return nil
}

func toLines(items []dto.ShipmentItemInput) []lineitem.Line {
	lines := make([]lineitem.Line, len(items))
	for i, it := range items {
		lines[i] = lineitem.Line{ProductID: it.ProductID, Quantity: it.Quantity, Amount: it.UnitCost}
	}
	return lines
}

func itemLines(items []model.ShipmentItem) []lineitem.Line {
	lines := make([]lineitem.Line, len(items))
	for i, it := range items {
		lines[i] = lineitem.Line{ProductID: it.ProductID, Quantity: it.Quantity, Amount: it.UnitCost}
	}
	return lines
}

func toItems(shipmentID int64, inputs []dto.ShipmentItemInput) []model.ShipmentItem {
	items := make([]model.ShipmentItem, len(inputs))
	for i, in := range inputs {
		items[i] = model.ShipmentItem{
			ShipmentID: shipmentID,
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			UnitCost:   in.UnitCost,
		}
	}
	return items
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
		fmt.Sprintf("shipment %d is cancelled and cannot be changed", id),
		map[string]interface{}{"Resource": "shipment", "ID": id})
}
