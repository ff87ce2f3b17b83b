package handler

import (
	"context"

	backofficev1 "github.com/fekuna/omnipos-backoffice-service/api/backoffice/v1"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/logger"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	stockDto "github.com/fekuna/omnipos-backoffice-service/internal/stock/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/wire"
)

type InventoryHandler struct {
	backofficev1.UnimplementedInventoryServiceServer
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) CreateProduct(ctx context.Context, req *backofficev1.CreateProductRequest) (*backofficev1.Product, error) {
	price, err := wire.ParseDecimal("price", req.Price)
	if err != nil {
		return nil, err
	}

	description := (*string)(nil)
	if req.Description != "" {
		d := req.Description
		description = &d
	}

	p, err := h.uc.CreateProduct(ctx, &dto.CreateProductInput{
		Name:          req.Name,
		Description:   description,
		Price:         price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		SupplierID:    req.SupplierID,
	})
	if err != nil {
		return nil, err
	}
	return mapProductToProto(p), nil
}

func (h *InventoryHandler) GetProduct(ctx context.Context, req *backofficev1.GetProductRequest) (*backofficev1.Product, error) {
	p, err := h.uc.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	return mapProductToProto(p), nil
}

func (h *InventoryHandler) UpdateProductPrice(ctx context.Context, req *backofficev1.UpdateProductPriceRequest) (*backofficev1.Product, error) {
	price, err := wire.ParseDecimal("price", req.Price)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.UpdateProductPrice(ctx, &dto.UpdatePriceInput{ProductID: req.ProductID, Price: price})
	if err != nil {
		return nil, err
	}
	return mapProductToProto(p), nil
}

func (h *InventoryHandler) ListMovements(ctx context.Context, req *backofficev1.ListMovementsRequest) (*backofficev1.ListMovementsResponse, error) {
	mvs, count, err := h.uc.ListMovements(ctx, &stockDto.MovementFilters{
		ProductID:     req.ProductID,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Page:          int(req.Page),
		PageSize:      int(req.PageSize),
	})
	if err != nil {
		return nil, err
	}

	movements := make([]backofficev1.StockMovement, len(mvs))
	for i := range mvs {
		movements[i] = mapMovementToProto(&mvs[i])
	}
	return &backofficev1.ListMovementsResponse{
		Movements: movements,
		Total:     int32(count),
	}, nil
}

func mapProductToProto(p *model.Product) *backofficev1.Product {
	if p == nil {
		return nil
	}
	description := ""
	if p.Description != nil {
		description = *p.Description
	}
	return &backofficev1.Product{
		ProductID:     p.ID,
		Name:          p.Name,
		Description:   description,
		Price:         p.Price.StringFixed(2),
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
	}
}

func mapMovementToProto(m *model.StockMovement) backofficev1.StockMovement {
	return backofficev1.StockMovement{
		MovementID:     m.ID,
		ProductID:      m.ProductID,
		MovementType:   m.MovementType,
		QuantityChange: m.QuantityChange,
		QuantityAfter:  m.QuantityAfter,
		ReferenceType:  m.ReferenceType,
		ReferenceID:    m.ReferenceID,
		Reason:         m.Reason,
		CreatedAt:      wire.FormatTime(m.CreatedAt),
	}
}
