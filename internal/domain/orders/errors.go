package orders

import "errors"

var (
	// ErrNoOpenReturn indicates an order whose return status implies an
	// active return, but none of its returns is open.
	ErrNoOpenReturn = errors.New("orders: no open return on order")

	// ErrMalformedAmount indicates a money amount that could not be parsed
	// as a decimal string.
	ErrMalformedAmount = errors.New("orders: malformed money amount")

	// ErrSyncRejected indicates the internal database refused an order
	// sync mutation; the response message carries the reason.
	ErrSyncRejected = errors.New("orders: sync rejected")
)
