package orders

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Classify derives normalized order records from one page of remote orders.
//
// Orders with no return activity become a single delivery record. Orders with
// an in-progress return become either exchange records (one per return that
// carries exchange line items, each with a child return record for the
// remainder) or a single return record when nothing was exchanged.
//
// Classification is record-granular: a malformed order is skipped with a
// warning and the rest of the page proceeds. The Synced flag is left false
// here; callers cross-check ids against the internal database afterwards.
func Classify(page []RemoteOrder) ([]*Order, []string) {
	records := make([]*Order, 0, len(page))
	warnings := make([]string, 0)

	for idx := range page {
		order := &page[idx]

		switch order.ReturnStatus {
		case ReturnStatusNone:
			record, err := buildDelivery(order)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("order %s: %v", order.ID, err))
				continue
			}
			records = append(records, record)

		case ReturnStatusInProgress:
			generated, warns := classifyReturning(order)
			records = append(records, generated...)
			warnings = append(warnings, warns...)
		}
	}

	return records, warnings
}

// classifyReturning handles an order with an in-progress return.
func classifyReturning(order *RemoteOrder) ([]*Order, []string) {
	records := make([]*Order, 0, 1)
	warnings := make([]string, 0)

	hasExchange := false
	for idx := range order.Returns {
		if order.Returns[idx].HasExchanges() {
			hasExchange = true
			break
		}
	}

	if !hasExchange {
		record, err := buildReturn(order)
		if err != nil {
			return nil, []string{fmt.Sprintf("order %s: %v", order.ID, err)}
		}
		return []*Order{record}, nil
	}

	for idx := range order.Returns {
		ret := &order.Returns[idx]
		if !ret.HasExchanges() {
			continue
		}
		exchange, err := buildExchange(order, ret)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("order %s: %v", order.ID, err))
			continue
		}
		child, err := buildReturn(order)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("order %s: %v", order.ID, err))
			continue
		}
		exchange.ChildOrder = child
		records = append(records, exchange)
	}

	return records, warnings
}

// ---------------------------------------------------------------------------
// Record Builders
// ---------------------------------------------------------------------------

// buildDelivery produces the record for an order with no return activity.
// Total is the order total net of shipping.
func buildDelivery(order *RemoteOrder) (*Order, error) {
	total, err := netTotal(order)
	if err != nil {
		return nil, err
	}

	items := make([]OrderItem, 0, len(order.LineItems))
	for _, line := range order.LineItems {
		lineTotal := line.DiscountedTotal
		if lineTotal == "" {
			lineTotal = "0.00"
		}
		items = append(items, OrderItem{
			ID:        line.ID,
			Count:     line.Quantity,
			Total:     lineTotal,
			VariantID: line.VariantID,
		})
	}

	record := newRecord(order, OrderTypeDelivery)
	record.ID = order.ID
	record.Name = order.Name
	record.TotalPrice = total.StringFixed(2)
	record.Items = items
	return record, nil
}

// buildReturn produces the refund record for the order's open return. Its
// total carries a negative sign on purpose: it represents money flowing back
// to the buyer. Line items exclude anything covered by exchange line items.
func buildReturn(order *RemoteOrder) (*Order, error) {
	open := order.OpenReturn()
	if open == nil {
		return nil, ErrNoOpenReturn
	}

	total, err := netTotal(order)
	if err != nil {
		return nil, err
	}

	exchanged := make(map[string]bool, len(open.ExchangeLineItems))
	for _, exchange := range open.ExchangeLineItems {
		exchanged[exchange.LineItem.ID] = true
	}

	items := make([]OrderItem, 0, len(order.LineItems))
	for _, line := range order.LineItems {
		if exchanged[line.ID] {
			continue
		}
		items = append(items, OrderItem{
			ID:        line.ID,
			Count:     line.Quantity,
			Total:     line.OriginalTotal,
			VariantID: line.VariantID,
		})
	}

	record := newRecord(order, OrderTypeReturn)
	record.ID = open.ID
	record.Name = open.Name
	// Negate in decimal space; string prefixing would double the sign when
	// shipping exceeds the order total.
	record.TotalPrice = total.Neg().StringFixed(2)
	record.Items = items
	record.PreviousOrderID = order.ID
	return record, nil
}

// buildExchange produces the record for one return carrying exchange line
// items. Its total is the sum of the exchanged items' original totals.
func buildExchange(order *RemoteOrder, ret *Return) (*Order, error) {
	total := decimal.Zero
	items := make([]OrderItem, 0, len(ret.ExchangeLineItems))
	for _, exchange := range ret.ExchangeLineItems {
		line := exchange.LineItem
		amount, err := decimal.NewFromString(line.OriginalTotal)
		if err != nil {
			return nil, fmt.Errorf("%w: line %s total %q", ErrMalformedAmount, line.ID, line.OriginalTotal)
		}
		total = total.Add(amount)
		items = append(items, OrderItem{
			ID:        line.ID,
			Count:     line.Quantity,
			Total:     line.OriginalTotal,
			VariantID: line.VariantID,
		})
	}

	record := newRecord(order, OrderTypeExchange)
	record.ID = ret.ID
	record.Name = ret.Name
	record.TotalPrice = total.StringFixed(2)
	record.Items = items
	record.PreviousOrderID = order.ID
	return record, nil
}

// newRecord seeds a record with the fields shared by every order type.
// Validity depends only on the shipping address, never on sync state.
func newRecord(order *RemoteOrder, orderType OrderType) *Order {
	return &Order{
		Type:                orderType,
		Synced:              false,
		Valid:               order.ShippingAddress.HasStreetLine(),
		Customer:            order.Customer,
		ShippingAddress:     order.ShippingAddress,
		PaymentGatewayNames: order.PaymentGatewayNames,
		FullyPaid:           order.FullyPaid,
		CreatedAt:           order.CreatedAt,
		CurrencyCode:        order.CurrencyCode,
	}
}

// netTotal computes the order total minus shipping. Money math stays in
// fixed-point decimals; strings are only produced at the boundary.
func netTotal(order *RemoteOrder) (decimal.Decimal, error) {
	total, err := decimal.NewFromString(order.TotalPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: total %q", ErrMalformedAmount, order.TotalPrice)
	}
	shipping, err := decimal.NewFromString(order.TotalShippingPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: shipping %q", ErrMalformedAmount, order.TotalShippingPrice)
	}
	return total.Sub(shipping), nil
}

// CollectIDs returns the ids of all records and their child records, in
// order. Used for the batched synced-state lookup.
func CollectIDs(records []*Order) []string {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
		if record.ChildOrder != nil {
			ids = append(ids, record.ChildOrder.ID)
		}
	}
	return ids
}

// MarkSynced sets the Synced flag on every record (or child record) whose id
// appears in the given set.
func MarkSynced(records []*Order, syncedIDs []string) {
	synced := make(map[string]bool, len(syncedIDs))
	for _, id := range syncedIDs {
		synced[id] = true
	}
	for _, record := range records {
		if synced[record.ID] {
			record.Synced = true
		}
		if record.ChildOrder != nil && synced[record.ChildOrder.ID] {
			record.ChildOrder.Synced = true
		}
	}
}
