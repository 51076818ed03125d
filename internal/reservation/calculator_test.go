package reservation

import (
	"testing"

	"github.com/ryus-backoffice/ryus-backoffice/internal/orders"
)

func order(status orders.Status, typ orders.Type, items ...orders.OrderItem) orders.Order {
	return orders.Order{ID: "o1", Status: status, Type: typ, Items: items}
}

func item(variantID string, qty int, dir orders.ItemDirection) orders.OrderItem {
	return orders.OrderItem{VariantID: variantID, Quantity: qty, Direction: dir}
}

func TestReservedQuantityActiveStatuses(t *testing.T) {
	snapshot := []orders.Order{
		order(orders.StatusPending, orders.TypeNormal, item("V1", 3, orders.DirectionOutgoing)),
		order(orders.StatusShipped, orders.TypeNormal, item("V1", 2, orders.DirectionOutgoing)),
		order(orders.StatusInDelivery, orders.TypeNormal, item("V1", 1, orders.DirectionOutgoing)),
		order(orders.StatusDelivered, orders.TypeNormal, item("V1", 10, orders.DirectionOutgoing)),
		order(orders.StatusCancelled, orders.TypeNormal, item("V1", 7, orders.DirectionOutgoing)),
	}
	if got := ReservedQuantity("V1", snapshot); got != 6 {
		t.Fatalf("expected 6 reserved, got %d", got)
	}
}

func TestReservedQuantityExcludesReturnOrders(t *testing.T) {
	snapshot := []orders.Order{
		order(orders.StatusPending, orders.TypeReturn, item("V1", 5, orders.DirectionOutgoing)),
	}
	if got := ReservedQuantity("V1", snapshot); got != 0 {
		t.Fatalf("return order must not reserve, got %d", got)
	}
}

func TestReservedQuantityExcludesIncomingItems(t *testing.T) {
	snapshot := []orders.Order{
		order(orders.StatusPending, orders.TypeReplacement,
			item("V1", 2, orders.DirectionOutgoing),
			item("V1", 3, orders.DirectionIncoming),
		),
	}
	if got := ReservedQuantity("V1", snapshot); got != 2 {
		t.Fatalf("incoming item must not reserve, got %d", got)
	}
}

func TestReservedQuantityDefaultsDirectionToOutgoing(t *testing.T) {
	snapshot := []orders.Order{
		order(orders.StatusPending, orders.TypeNormal, orders.OrderItem{VariantID: "V1", Quantity: 4}),
	}
	if got := ReservedQuantity("V1", snapshot); got != 4 {
		t.Fatalf("missing direction should count as outgoing, got %d", got)
	}
}

func TestReservedQuantityMalformedInput(t *testing.T) {
	if got := ReservedQuantity("", []orders.Order{order(orders.StatusPending, orders.TypeNormal, item("V1", 3, ""))}); got != 0 {
		t.Fatalf("empty variant id should yield 0, got %d", got)
	}
	if got := ReservedQuantity("V1", nil); got != 0 {
		t.Fatalf("nil snapshot should yield 0, got %d", got)
	}
	snapshot := []orders.Order{order(orders.StatusPending, orders.TypeNormal)}
	if got := ReservedQuantity("V1", snapshot); got != 0 {
		t.Fatalf("order without items should yield 0, got %d", got)
	}
}

func TestReservedQuantityNeverNegative(t *testing.T) {
	snapshot := []orders.Order{
		order(orders.StatusPending, orders.TypeNormal, item("V1", -5, orders.DirectionOutgoing)),
	}
	if got := ReservedQuantity("V1", snapshot); got != 0 {
		t.Fatalf("negative quantities must be ignored, got %d", got)
	}
}

func TestReservedByVariantMatchesPerVariantQueries(t *testing.T) {
	snapshot := []orders.Order{
		order(orders.StatusPending, orders.TypeNormal, item("V1", 3, orders.DirectionOutgoing), item("V2", 1, orders.DirectionOutgoing)),
		order(orders.StatusShipped, orders.TypeNormal, item("V2", 2, orders.DirectionOutgoing)),
		order(orders.StatusPending, orders.TypeReturn, item("V3", 9, orders.DirectionOutgoing)),
	}
	bulk := ReservedByVariant(snapshot)
	for _, id := range []string{"V1", "V2", "V3"} {
		if bulk[id] != ReservedQuantity(id, snapshot) {
			t.Fatalf("bulk result diverges for %s: %d vs %d", id, bulk[id], ReservedQuantity(id, snapshot))
		}
	}
	if _, ok := bulk["V3"]; ok {
		t.Fatalf("variant with zero demand should be absent")
	}
}
