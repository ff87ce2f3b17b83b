// Package lineitem holds the helpers shared by the order and shipment
// processors for the item rows of a document: validation, stock application
// and the net stock effect of replacing one item set with another.
package lineitem

import (
	"context"
	"fmt"
	"sort"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/product"
	"github.com/fekuna/omnipos-backoffice-service/internal/stock"
	"github.com/shopspring/decimal"
)

// Line is one (product, quantity, snapshotted amount) row of a document.
// Amount is the unit price of an order item or the unit cost of a shipment item.
type Line struct {
	ProductID int64
	Quantity  int32
	Amount    decimal.Decimal
}

type Direction int

const (
	Reserve Direction = iota
	Receive
)

func (d Direction) Opposite() Direction {
	if d == Reserve {
		return Receive
	}
	return Reserve
}

func (d Direction) String() string {
	if d == Reserve {
		return "reserve"
	}
	return "receive"
}

// Validate checks the rules every item set must satisfy before any row is
// written: at least one line, positive quantities, non-negative amounts and a
// product appearing at most once.
func Validate(lines []Line) error {
	if len(lines) == 0 {
		return apperror.Validation(apperror.MsgEmptyItems, "document must contain at least one item", nil)
	}

	seen := make(map[int64]struct{}, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return stock.InvalidQuantity(l.ProductID, l.Quantity)
		}
		if l.Amount.IsNegative() {
			return apperror.Validation(apperror.MsgInvalidUnitAmount,
				fmt.Sprintf("unit amount for product %d must not be negative", l.ProductID),
				map[string]interface{}{"ProductID": l.ProductID, "Amount": l.Amount.String()})
		}
		if _, dup := seen[l.ProductID]; dup {
			return apperror.Validation(apperror.MsgDuplicateProduct,
				fmt.Sprintf("product %d appears more than once", l.ProductID),
				map[string]interface{}{"ProductID": l.ProductID})
		}
		seen[l.ProductID] = struct{}{}
	}
	return nil
}

// ByProduct returns a copy sorted by product id. Stock rows are always locked in
// this order so two documents touching the same products cannot deadlock.
func ByProduct(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// RequireProducts fails with a NotFound error for the lowest product id that
// does not exist. It runs before any item row is written so a missing product
// is reported the same way on every storage backend.
func RequireProducts(ctx context.Context, products product.Repository, lines []Line) error {
	sorted := ByProduct(lines)
	ids := make([]int64, len(sorted))
	for i, l := range sorted {
		ids[i] = l.ProductID
	}

	found, err := products.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	known := make(map[int64]struct{}, len(found))
	for _, p := range found {
		known[p.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return apperror.NotFound("product", id)
		}
	}
	return nil
}

// Apply moves stock for every line in the given direction through the ledger.
// The first failing line aborts; the caller's transaction discards the rest.
func Apply(ctx context.Context, ledger stock.Ledger, dir Direction, ref stock.Reference, reason string, lines []Line) error {
	for _, l := range ByProduct(lines) {
		adj := stock.Adjustment{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Reference: ref,
			Reason:    reason,
		}

		var err error
		switch dir {
		case Reserve:
			_, err = ledger.Reserve(ctx, adj)
		case Receive:
			_, err = ledger.Receive(ctx, adj)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Net compares the stock effect of the current item set with a replacement.
// forward holds the extra quantities the replacement needs in the document's
// own direction, backward the quantities to hand back. Products whose quantity
// does not change appear in neither.
func Net(current, replacement []Line) (forward, backward []Line) {
	delta := make(map[int64]int64)
	for _, l := range replacement {
		delta[l.ProductID] += int64(l.Quantity)
	}
	for _, l := range current {
		delta[l.ProductID] -= int64(l.Quantity)
	}

	for productID, d := range delta {
		switch {
		case d > 0:
			forward = append(forward, Line{ProductID: productID, Quantity: int32(d)})
		case d < 0:
			backward = append(backward, Line{ProductID: productID, Quantity: int32(-d)})
		}
	}
	return ByProduct(forward), ByProduct(backward)
}
