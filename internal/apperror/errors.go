// Package apperror defines the error taxonomy surfaced by the transaction engine.
//
// NotFound and Validation errors are client visible. Storage errors carry the
// underlying repository failure for logging but are reported to clients as an
// opaque internal error.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// Message ids, also used as i18n keys.
const (
	MsgNotFound                = "NotFound"
	MsgInsufficientStock       = "InsufficientStock"
	MsgInvalidQuantity         = "InvalidQuantity"
	MsgInvalidUnitAmount       = "InvalidUnitAmount"
	MsgDuplicateProduct        = "DuplicateProduct"
	MsgEmptyItems              = "EmptyItems"
	MsgInvalidStatus           = "InvalidStatus"
	MsgInvalidStatusTransition = "InvalidStatusTransition"
	MsgInvalidDeliveryDate     = "InvalidDeliveryDate"
	MsgNegativeAmount          = "NegativeAmount"
	MsgDocumentCancelled       = "DocumentCancelled"
	MsgMissingField            = "MissingField"
	MsgUnknownReference        = "UnknownReference"
	MsgInvalidDecimal          = "InvalidDecimal"
	MsgDecimalScale            = "DecimalScale"
	MsgInvalidTimestamp        = "InvalidTimestamp"
	MsgConstraintViolation     = "ConstraintViolation"
	MsgInternal                = "Internal"
)

type Error struct {
	Kind      Kind
	MessageID string
	Message   string
	Params    map[string]interface{}
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id interface{}) *Error {
	return &Error{
		Kind:      KindNotFound,
		MessageID: MsgNotFound,
		Message:   fmt.Sprintf("%s %v not found", resource, id),
		Params:    map[string]interface{}{"Resource": resource, "ID": id},
	}
}

func Validation(messageID, message string, params map[string]interface{}) *Error {
	return &Error{
		Kind:      KindValidation,
		MessageID: messageID,
		Message:   message,
		Params:    params,
	}
}

// Storage wraps a repository failure. Errors that already carry a kind are
// returned unchanged so a NotFound raised inside a transaction stays NotFound.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return &Error{
		Kind:      KindStorage,
		MessageID: MsgInternal,
		Message:   "storage failure",
		Err:       err,
	}
}

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
