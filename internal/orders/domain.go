package orders

import (
	"errors"
	"time"
)

// Status enumerates the order lifecycle states reported by the store.
type Status string

const (
	// StatusPending indicates the order is awaiting fulfilment.
	StatusPending Status = "pending"
	// StatusShipped indicates the order left the warehouse.
	StatusShipped Status = "shipped"
	// StatusInDelivery indicates the order is with the delivery partner.
	StatusInDelivery Status = "in_delivery"
	// StatusDelivered indicates the customer received the order.
	StatusDelivered Status = "delivered"
	// StatusCompleted indicates the order is fully closed out.
	StatusCompleted Status = "completed"
	// StatusReturned indicates the customer sent the order back.
	StatusReturned Status = "returned"
	// StatusReturnedInStock indicates returned goods were restocked.
	StatusReturnedInStock Status = "returned_in_stock"
	// StatusCancelled indicates the order was cancelled before delivery.
	StatusCancelled Status = "cancelled"
)

// statusDeliveryAlias is the legacy value some rows carry for in-delivery.
const statusDeliveryAlias Status = "delivery"

// ReservesStock reports whether an order in this status still holds stock.
func (s Status) ReservesStock() bool {
	switch s {
	case StatusPending, StatusShipped, StatusInDelivery, statusDeliveryAlias:
		return true
	}
	return false
}

// Delivered reports whether the status counts as delivered for revenue purposes.
func (s Status) Delivered() bool {
	return s == StatusDelivered || s == StatusCompleted
}

// Type enumerates order kinds.
type Type string

const (
	// TypeNormal is a regular customer sale.
	TypeNormal Type = "normal"
	// TypeReturn is a pure return order; it never reserves stock.
	TypeReturn Type = "return"
	// TypeReplacement swaps goods; its incoming items are returned stock.
	TypeReplacement Type = "replacement"
	// TypeExchange is the legacy label for replacement orders.
	TypeExchange Type = "exchange"
)

// ItemDirection marks whether goods move to or from the customer.
type ItemDirection string

const (
	// DirectionOutgoing is the default direction: goods leaving to the customer.
	DirectionOutgoing ItemDirection = "outgoing"
	// DirectionIncoming marks returned goods on replacement orders.
	DirectionIncoming ItemDirection = "incoming"
)

// Incoming reports whether the item is returned stock. Absent direction
// defaults to outgoing.
func (d ItemDirection) Incoming() bool {
	return d == DirectionIncoming
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	VariantID string
	Quantity  int
	UnitPrice float64
	// CostPrice is captured from the variant at order time. ProductCost is
	// the product-level fallback; UnitCost resolves the precedence.
	CostPrice   float64
	ProductCost float64
	Direction   ItemDirection
}

// UnitCost returns the effective cost price, preferring the variant-level
// value over the product-level fallback.
func (it OrderItem) UnitCost() float64 {
	if it.CostPrice > 0 {
		return it.CostPrice
	}
	return it.ProductCost
}

// Order is one customer transaction together with its line items.
type Order struct {
	ID              string
	Status          Status
	Type            Type
	ReceiptReceived bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	TotalAmount     float64
	DeliveryFee     float64
	FinalAmount     float64
	// SalesAmount, when present, is the precomputed net sales figure and
	// takes priority over deriving FinalAmount - DeliveryFee.
	SalesAmount *float64
	CreatedBy   string
	Items       []OrderItem
}

// EffectiveDate is the timestamp used for date-range filtering: updated_at
// with a fallback to created_at.
func (o Order) EffectiveDate() time.Time {
	if !o.UpdatedAt.IsZero() {
		return o.UpdatedAt
	}
	return o.CreatedAt
}

// RevenueRecognized reports whether the order may contribute to revenue:
// delivered (or completed) with the partner settlement confirmed.
func (o Order) RevenueRecognized() bool {
	return o.Status.Delivered() && o.ReceiptReceived
}

// Sales returns the net sales value of the order.
func (o Order) Sales() float64 {
	if o.SalesAmount != nil {
		return *o.SalesAmount
	}
	return o.FinalAmount - o.DeliveryFee
}

// COGS sums the effective cost of the outgoing items.
func (o Order) COGS() float64 {
	var total float64
	for _, it := range o.Items {
		if it.Direction.Incoming() {
			continue
		}
		total += it.UnitCost() * float64(it.Quantity)
	}
	return total
}

var (
	// ErrOrderNotFound occurs when the order id does not exist.
	ErrOrderNotFound = errors.New("orders: order not found")
	// ErrReceiptAlreadyConfirmed occurs when the invoice receipt was
	// confirmed before.
	ErrReceiptAlreadyConfirmed = errors.New("orders: receipt already confirmed")
	// ErrReceiptNotDeliverable occurs when confirming a receipt on an
	// order that has not been delivered.
	ErrReceiptNotDeliverable = errors.New("orders: receipt requires a delivered order")
)
