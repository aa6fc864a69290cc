package model

import "errors"

var (
	ErrInvalidItems      = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrItemNotFound      = errors.New("item not found in order")
	ErrTableUnavailable  = errors.New("table is already occupied")
	ErrTableNotFound     = errors.New("table does not exist")
	ErrPaymentDeclined   = errors.New("tendered amount does not cover the order total")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)
