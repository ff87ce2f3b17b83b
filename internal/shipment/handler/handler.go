package handler

import (
	"context"

	backofficev1 "github.com/fekuna/omnipos-backoffice-service/api/backoffice/v1"
	"github.com/fekuna/omnipos-backoffice-service/internal/logger"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment"
	"github.com/fekuna/omnipos-backoffice-service/internal/shipment/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/wire"
)

type ShipmentHandler struct {
	backofficev1.UnimplementedShipmentServiceServer
	uc     shipment.UseCase
	logger logger.ZapLogger
}

func NewShipmentHandler(uc shipment.UseCase, log logger.ZapLogger) *ShipmentHandler {
	return &ShipmentHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ShipmentHandler) CreateShipment(ctx context.Context, req *backofficev1.CreateShipmentRequest) (*backofficev1.Shipment, error) {
	shipmentDate, err := wire.ParseTime("shipment_date", req.ShipmentDate)
	if err != nil {
		return nil, err
	}
	expected, err := wire.ParseTime("expected_delivery_date", req.ExpectedDeliveryDate)
	if err != nil {
		return nil, err
	}
	totalCost, err := wire.ParseDecimal("total_cost", req.TotalCost)
	if err != nil {
		return nil, err
	}
	items, err := mapItemsFromProto(req.Items)
	if err != nil {
		return nil, err
	}

	s, err := h.uc.CreateShipment(ctx, &dto.CreateShipmentInput{
		SupplierID:           req.SupplierID,
		ShipmentDate:         shipmentDate,
		ExpectedDeliveryDate: expected,
		Status:               req.Status,
		TotalCost:            totalCost,
		Items:                items,
	})
	if err != nil {
		return nil, err
	}
	return mapShipmentToProto(s), nil
}

func (h *ShipmentHandler) GetShipment(ctx context.Context, req *backofficev1.GetShipmentRequest) (*backofficev1.Shipment, error) {
	s, err := h.uc.GetShipment(ctx, req.ShipmentID)
	if err != nil {
		return nil, err
	}
	return mapShipmentToProto(s), nil
}

func (h *ShipmentHandler) GetShipmentDetails(ctx context.Context, req *backofficev1.GetShipmentRequest) (*backofficev1.Shipment, error) {
	s, err := h.uc.GetShipmentDetails(ctx, req.ShipmentID)
	if err != nil {
		return nil, err
	}
	return mapShipmentToProto(s), nil
}

func (h *ShipmentHandler) ListShipments(ctx context.Context, req *backofficev1.ListShipmentsRequest) (*backofficev1.ListShipmentsResponse, error) {
	shipments, count, err := h.uc.ListShipments(ctx, &dto.ShipmentFilters{
		SupplierID: req.SupplierID,
		Status:     req.Status,
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	})
	if err != nil {
		return nil, err
	}

	out := make([]backofficev1.Shipment, len(shipments))
	for i := range shipments {
		out[i] = *mapShipmentToProto(&shipments[i])
	}
	return &backofficev1.ListShipmentsResponse{
		Shipments: out,
		Total:     int32(count),
	}, nil
}

func (h *ShipmentHandler) UpdateShipment(ctx context.Context, req *backofficev1.UpdateShipmentRequest) (*backofficev1.Shipment, error) {
	input := &dto.UpdateShipmentInput{
		ID:           req.ShipmentID,
		Status:       req.Status,
		ReplaceItems: req.ReplaceItems,
	}

	if req.ExpectedDeliveryDate != nil {
		expected, err := wire.ParseTime("expected_delivery_date", *req.ExpectedDeliveryDate)
		if err != nil {
			return nil, err
		}
		input.ExpectedDeliveryDate = &expected
	}
	if req.TotalCost != nil {
		cost, err := wire.ParseDecimal("total_cost", *req.TotalCost)
		if err != nil {
			return nil, err
		}
		input.TotalCost = &cost
	}
	if req.ReplaceItems {
		items, err := mapItemsFromProto(req.Items)
		if err != nil {
			return nil, err
		}
		input.Items = items
	}

	s, err := h.uc.UpdateShipment(ctx, input)
	if err != nil {
		return nil, err
	}
	return mapShipmentToProto(s), nil
}

func (h *ShipmentHandler) DeleteShipment(ctx context.Context, req *backofficev1.DeleteShipmentRequest) (*backofficev1.Empty, error) {
	if err := h.uc.DeleteShipment(ctx, req.ShipmentID); err != nil {
		return nil, err
	}
	return &backofficev1.Empty{}, nil
}

func mapItemsFromProto(items []backofficev1.ShipmentItem) ([]dto.ShipmentItemInput, error) {
	out := make([]dto.ShipmentItemInput, len(items))
	for i, it := range items {
		cost, err := wire.ParseDecimal("unit_cost", it.UnitCost)
		if err != nil {
			return nil, err
		}
		out[i] = dto.ShipmentItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  cost,
		}
	}
	return out, nil
}

func mapShipmentToProto(s *model.Shipment) *backofficev1.Shipment {
	if s == nil {
		return nil
	}

	var items []backofficev1.ShipmentItem
	if len(s.Items) > 0 {
		items = make([]backofficev1.ShipmentItem, len(s.Items))
		for i, it := range s.Items {
			items[i] = backofficev1.ShipmentItem{
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitCost:    it.UnitCost.StringFixed(2),
			}
		}
	}

	return &backofficev1.Shipment{
		ShipmentID:           s.ID,
		SupplierID:           s.SupplierID,
		ShipmentDate:         wire.FormatTime(s.ShipmentDate),
		ExpectedDeliveryDate: wire.FormatTime(s.ExpectedDeliveryDate),
		Status:               string(s.Status),
		TotalCost:            s.TotalCost.StringFixed(2),
		Items:                items,
	}
}
