package stock

import (
	"fmt"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
)

func InsufficientStock(productID int64, requested, available int32) error {
	return apperror.Validation(apperror.MsgInsufficientStock,
		fmt.Sprintf("insufficient stock for product %d: requested %d, available %d", productID, requested, available),
		map[string]interface{}{"ProductID": productID, "Requested": requested, "Available": available})
}

func InvalidQuantity(productID int64, quantity int32) error {
	return apperror.Validation(apperror.MsgInvalidQuantity,
		fmt.Sprintf("quantity for product %d must be greater than zero, got %d", productID, quantity),
		map[string]interface{}{"ProductID": productID, "Quantity": quantity})
}
