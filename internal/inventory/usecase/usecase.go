package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/logger"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	stockDto "github.com/fekuna/omnipos-backoffice-service/internal/stock/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/store"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	tx     store.TxManager
	logger logger.ZapLogger
}

func NewInventoryUseCase(tx store.TxManager, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		tx:     tx,
		logger: log,
	}
}

func (uc *inventoryUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.Validation(apperror.MsgMissingField, "name is required",
			map[string]interface{}{"Field": "name"})
	}
	if input.Price.IsNegative() {
		return nil, apperror.Validation(apperror.MsgNegativeAmount, "price must not be negative",
			map[string]interface{}{"Field": "price"})
	}
	if input.StockQuantity < 0 {
		return nil, apperror.Validation(apperror.MsgNegativeAmount, "stock_quantity must not be negative",
			map[string]interface{}{"Field": "stock_quantity"})
	}

	p := &model.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		CategoryID:    input.CategoryID,
		SupplierID:    input.SupplierID,
	}
	err := uc.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		if err := repos.Products().Create(ctx, p); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to create product", zap.String("name", input.Name), zap.Error(err))
		return nil, apperror.Storage(err)
	}

	uc.logger.Info("product created", zap.Int64("product_id", p.ID), zap.Int32("stock_quantity", p.StockQuantity))
	return p, nil
}

func (uc *inventoryUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.tx.Repos().Products().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if p == nil {
		return nil, apperror.NotFound("product", id)
	}
	return p, nil
}

func (uc *inventoryUseCase) UpdateProductPrice(ctx context.Context, input *dto.UpdatePriceInput) (*model.Product, error) {
	if input.Price.IsNegative() {
		return nil, apperror.Validation(apperror.MsgNegativeAmount, "price must not be negative",
			map[string]interface{}{"Field": "price"})
	}

	var updated *model.Product
	err := uc.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		p, err := repos.Products().FindByID(ctx, input.ProductID)
		if err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}
		if p == nil {
			return apperror.NotFound("product", input.ProductID)
		}
		if err := repos.Products().UpdatePrice(ctx, p.ID, input.Price); err != nil {
			return fmt.Errorf("failed to update price: %w", err)
		}
		p.Price = input.Price
		updated = p
		return nil
	})
	if err != nil {
		if !apperror.IsNotFound(err) {
			uc.logger.Error("failed to update product price", zap.Int64("product_id", input.ProductID), zap.Error(err))
		}
		return nil, apperror.Storage(err)
	}

	uc.logger.Info("product price updated", zap.Int64("product_id", updated.ID), zap.String("price", updated.Price.StringFixed(2)))
	return updated, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *stockDto.MovementFilters) ([]model.StockMovement, int, error) {
	movements, count, err := uc.tx.Repos().Ledger().ListMovements(ctx, filters)
	if err != nil {
		return nil, 0, apperror.Storage(err)
	}
	return movements, count, nil
}
