package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/logger"
	"github.com/fekuna/omnipos-backoffice-service/internal/order"
	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const OrderRequested = "OrderRequested"

// MessageReader is satisfied by broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// OrderListener turns OrderRequested commands from the storefront topic into
// orders. A rejected command is logged and skipped; it is not retried.
type OrderListener struct {
	consumer MessageReader
	uc       order.UseCase
	logger   logger.ZapLogger
}

func NewOrderListener(consumer MessageReader, uc order.UseCase, logger logger.ZapLogger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting order command listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping order command listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			if err := l.processMessage(ctx, msg.Value); err != nil {
				l.logFailure(msg, err)
			}
		}
	}
}

type OrderRequestedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	CustomerID      int64              `json:"customer_id"`
	Status          string             `json:"status"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	ShippingAddress string             `json:"shipping_address"`
	Items           []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID int64           `json:"product_id"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) error {
	var event OrderRequestedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.EventType != OrderRequested {
		return nil
	}

	items := make([]dto.OrderItemInput, len(event.Payload.Items))
	for i, it := range event.Payload.Items {
		items[i] = dto.OrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}

	o, err := l.uc.CreateOrder(ctx, &dto.CreateOrderInput{
		CustomerID:      event.Payload.CustomerID,
		Status:          event.Payload.Status,
		TotalAmount:     event.Payload.TotalAmount,
		ShippingAddress: event.Payload.ShippingAddress,
		Items:           items,
	})
	if err != nil {
		return fmt.Errorf("event %s: %w", event.EventID, err)
	}

	l.logger.Info("Processed OrderRequested event",
		zap.String("event_id", event.EventID),
		zap.Int64("order_id", o.ID),
	)
	return nil
}

func (l *OrderListener) logFailure(msg kafka.Message, err error) {
	fields := []zap.Field{
		zap.String("topic", msg.Topic),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
		zap.Error(err),
	}
	if apperror.KindOf(err) == apperror.KindValidation || apperror.KindOf(err) == apperror.KindNotFound {
		l.logger.Warn("Order command rejected", fields...)
		return
	}
	l.logger.Error("Failed to process order command", fields...)
}
