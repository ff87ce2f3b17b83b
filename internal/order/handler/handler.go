package handler

import (
	"context"

	backofficev1 "github.com/fekuna/omnipos-backoffice-service/api/backoffice/v1"
	"github.com/fekuna/omnipos-backoffice-service/internal/logger"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/order"
	"github.com/fekuna/omnipos-backoffice-service/internal/order/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/wire"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderHandler struct {
	backofficev1.UnimplementedOrderServiceServer
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) CreateOrder(ctx context.Context, req *backofficev1.CreateOrderRequest) (*backofficev1.Order, error) {
	total, err := wire.ParseDecimal("total_amount", req.TotalAmount)
	if err != nil {
		return nil, err
	}
	items, err := mapItemsFromProto(req.Items)
	if err != nil {
		return nil, err
	}

	o, err := h.uc.CreateOrder(ctx, &dto.CreateOrderInput{
		CustomerID:      req.CustomerID,
		Status:          req.Status,
		TotalAmount:     total,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
	})
	if err != nil {
		return nil, err
	}
	return mapOrderToProto(o), nil
}

func (h *OrderHandler) GetOrder(ctx context.Context, req *backofficev1.GetOrderRequest) (*backofficev1.Order, error) {
	o, err := h.uc.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	return mapOrderToProto(o), nil
}

func (h *OrderHandler) GetOrderDetails(ctx context.Context, req *backofficev1.GetOrderRequest) (*backofficev1.Order, error) {
	o, err := h.uc.GetOrderDetails(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	return mapOrderToProto(o), nil
}

func (h *OrderHandler) ListOrders(ctx context.Context, req *backofficev1.ListOrdersRequest) (*backofficev1.ListOrdersResponse, error) {
	orders, count, err := h.uc.ListOrders(ctx, &dto.OrderFilters{
		CustomerID: req.CustomerID,
		Status:     req.Status,
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	})
	if err != nil {
		return nil, err
	}

	out := make([]backofficev1.Order, len(orders))
	for i := range orders {
		out[i] = *mapOrderToProto(&orders[i])
	}
	return &backofficev1.ListOrdersResponse{
		Orders: out,
		Total:  int32(count),
	}, nil
}

func (h *OrderHandler) UpdateOrder(ctx context.Context, req *backofficev1.UpdateOrderRequest) (*backofficev1.Order, error) {
	input := &dto.UpdateOrderInput{
		ID:              req.OrderID,
		Status:          req.Status,
		ShippingAddress: req.ShippingAddress,
		ReplaceItems:    req.ReplaceItems,
	}

	if req.TotalAmount != nil {
		total, err := wire.ParseDecimal("total_amount", *req.TotalAmount)
		if err != nil {
			return nil, err
		}
		input.TotalAmount = &total
	}
	if req.ReplaceItems {
		items, err := mapItemsFromProto(req.Items)
		if err != nil {
			return nil, err
		}
		input.Items = items
	}

	o, err := h.uc.UpdateOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	return mapOrderToProto(o), nil
}

func (h *OrderHandler) DeleteOrder(ctx context.Context, req *backofficev1.DeleteOrderRequest) (*backofficev1.Empty, error) {
	if err := h.uc.DeleteOrder(ctx, req.OrderID); err != nil {
		return nil, err
	}
	h.logger.Debug("order removed via api", zap.Int64("order_id", req.OrderID))
	return &backofficev1.Empty{}, nil
}

func mapItemsFromProto(items []backofficev1.OrderItem) ([]dto.OrderItemInput, error) {
	out := make([]dto.OrderItemInput, len(items))
	for i, it := range items {
		price, err := wire.ParseDecimal("unit_price", it.UnitPrice)
		if err != nil {
			return nil, err
		}
		out[i] = dto.OrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: price,
		}
	}
	return out, nil
}

func mapOrderToProto(o *model.Order) *backofficev1.Order {
	if o == nil {
		return nil
	}

	var items []backofficev1.OrderItem
	if len(o.Items) > 0 {
		items = make([]backofficev1.OrderItem, len(o.Items))
		for i, it := range o.Items {
			items[i] = backofficev1.OrderItem{
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   money(it.UnitPrice),
			}
		}
	}

	return &backofficev1.Order{
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		OrderDate:       wire.FormatTime(o.OrderDate),
		Status:          string(o.Status),
		TotalAmount:     money(o.TotalAmount),
		ShippingAddress: o.ShippingAddress,
		Items:           items,
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
