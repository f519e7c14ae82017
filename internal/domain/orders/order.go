package orders

import "time"

// ---------------------------------------------------------------------------
// Order Record Types
// ---------------------------------------------------------------------------

// OrderType tags the kind of record produced by classification.
type OrderType string

const (
	// OrderTypeDelivery is a normal delivery order with no return activity.
	OrderTypeDelivery OrderType = "delivery"
	// OrderTypeReturn is a refund record; its total is negative.
	OrderTypeReturn OrderType = "return"
	// OrderTypeExchange is an exchange record carrying a child return.
	OrderTypeExchange OrderType = "exchange"
)

// IsValid returns true if the order type is valid.
func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeDelivery, OrderTypeReturn, OrderTypeExchange:
		return true
	default:
		return false
	}
}

// String returns the string representation of OrderType.
func (t OrderType) String() string {
	return string(t)
}

// Customer holds the buyer details carried on a classified order.
type Customer struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	VerifiedEmail bool   `json:"verifiedEmail"`
}

// ShippingAddress holds the delivery address carried on a classified order.
type ShippingAddress struct {
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Company      string `json:"company"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Province     string `json:"province"`
	ProvinceCode string `json:"provinceCode"`
}

// HasStreetLine reports whether at least one address line is present.
func (a *ShippingAddress) HasStreetLine() bool {
	if a == nil {
		return false
	}
	return a.Address1 != "" || a.Address2 != ""
}

// OrderItem is one line of a classified order.
type OrderItem struct {
	ID        string `json:"id"`
	Count     int    `json:"count"`
	Total     string `json:"total"`
	VariantID string `json:"variantId"`
}

// Order is a normalized order record derived from a remote order and its
// nested returns. Records are produced once per fetched page and only the
// Synced flag is set afterwards, when the internal database confirms the id.
type Order struct {
	ID                  string           `json:"id"`
	Type                OrderType        `json:"orderType"`
	Synced              bool             `json:"synced"`
	Valid               bool             `json:"valid"`
	Name                string           `json:"name"`
	Customer            Customer         `json:"customerDetails"`
	ShippingAddress     *ShippingAddress `json:"shippingDetails"`
	PaymentGatewayNames []string         `json:"paymentGatewayNames"`
	FullyPaid           bool             `json:"fullyPaid"`
	CreatedAt           time.Time        `json:"createdAt"`
	TotalPrice          string           `json:"totalPrice"`
	CurrencyCode        string           `json:"currencyCode"`
	Items               []OrderItem      `json:"orderItems"`
	ChildOrder          *Order           `json:"childOrder,omitempty"`
	PreviousOrderID     string           `json:"previousOrderId,omitempty"`
}

// ---------------------------------------------------------------------------
// Remote Wire Types
// ---------------------------------------------------------------------------

// Remote order return statuses consumed by classification.
const (
	ReturnStatusNone       = "NO_RETURN"
	ReturnStatusInProgress = "IN_PROGRESS"

	// returnStateOpen marks the active return on an order.
	returnStateOpen = "OPEN"
)

// LineItem is a line item on a remote order. Money amounts arrive as decimal
// strings in shop currency.
type LineItem struct {
	ID              string `json:"id"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	Title           string `json:"title"`
	Quantity        int    `json:"quantity"`
	VariantID       string `json:"variantId"`
	OriginalTotal   string `json:"originalTotal"`
	DiscountedTotal string `json:"discountedTotal"`
}

// ExchangeLineItem is a replacement line item nested under a return.
type ExchangeLineItem struct {
	ID       string   `json:"id"`
	LineItem LineItem `json:"lineItem"`
}

// Return is a return attached to a remote order, possibly carrying exchange
// line items when the buyer swapped products instead of a plain refund.
type Return struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Status            string             `json:"status"`
	ExchangeLineItems []ExchangeLineItem `json:"exchangeLineItems"`
}

// IsOpen reports whether this is the active return on the order.
func (r *Return) IsOpen() bool {
	return r.Status == returnStateOpen
}

// HasExchanges reports whether the return carries exchange line items.
func (r *Return) HasExchanges() bool {
	return len(r.ExchangeLineItems) > 0
}

// RemoteOrder is an order fetched from the remote platform.
type RemoteOrder struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	CurrencyCode        string           `json:"currencyCode"`
	CreatedAt           time.Time        `json:"createdAt"`
	ReturnStatus        string           `json:"returnStatus"`
	PaymentGatewayNames []string         `json:"paymentGatewayNames"`
	FullyPaid           bool             `json:"fullyPaid"`
	TotalPrice          string           `json:"totalPrice"`
	TotalShippingPrice  string           `json:"totalShippingPrice"`
	Customer            Customer         `json:"customer"`
	ShippingAddress     *ShippingAddress `json:"shippingAddress"`
	LineItems           []LineItem       `json:"lineItems"`
	Returns             []Return         `json:"returns"`
}

// OpenReturn returns the active return on the order, or nil.
func (o *RemoteOrder) OpenReturn() *Return {
	for idx := range o.Returns {
		if o.Returns[idx].IsOpen() {
			return &o.Returns[idx]
		}
	}
	return nil
}

// PageInfo carries the forward/backward cursors of a fetched order page.
type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
}

// Page is one fetched page of remote orders.
type Page struct {
	Orders   []RemoteOrder `json:"orders"`
	PageInfo PageInfo      `json:"pageInfo"`
}
