package model

import (
	"fmt"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: nil,
	OrderStatusCancelled: nil,
}

// ParseOrderStatus returns the default status for an empty string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	if s == "" {
		return OrderStatusPending, nil
	}
	st := OrderStatus(s)
	if _, ok := orderTransitions[st]; !ok {
		return "", invalidStatus(s)
	}
	return st, nil
}

// Active reports whether the order's items count against stock.
func (s OrderStatus) Active() bool { return s != OrderStatusCancelled }

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type ShipmentStatus string

const (
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusCancelled ShipmentStatus = "cancelled"
)

var shipmentTransitions = map[ShipmentStatus][]ShipmentStatus{
	ShipmentStatusInTransit: {ShipmentStatusDelivered, ShipmentStatusCancelled},
	ShipmentStatusDelivered: nil,
	ShipmentStatusCancelled: nil,
}

func ParseShipmentStatus(s string) (ShipmentStatus, error) {
	if s == "" {
		return ShipmentStatusInTransit, nil
	}
	st := ShipmentStatus(s)
	if _, ok := shipmentTransitions[st]; !ok {
		return "", invalidStatus(s)
	}
	return st, nil
}

func (s ShipmentStatus) Active() bool { return s != ShipmentStatusCancelled }

func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range shipmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func invalidStatus(s string) error {
	return apperror.Validation(apperror.MsgInvalidStatus,
		fmt.Sprintf("unknown status %q", s),
		map[string]interface{}{"Status": s})
}

// TransitionError is returned when a status change is not in the transition table.
func TransitionError(from, to string) error {
	return apperror.Validation(apperror.MsgInvalidStatusTransition,
		fmt.Sprintf("cannot change status from %s to %s", from, to),
		map[string]interface{}{"From": from, "To": to})
}
