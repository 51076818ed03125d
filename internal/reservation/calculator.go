// Package reservation derives reserved stock quantities from an order
// snapshot. There is no persisted reservation ledger: every query recomputes
// the figure from scratch, so the result is only as fresh as the snapshot.
package reservation

import "github.com/ryus-backoffice/ryus-backoffice/internal/orders"

// ReservedQuantity returns how many units of a variant are held by orders
// still in an active status. Return orders never reserve stock, and incoming
// items on replacement orders are returned goods, not demand. Malformed
// input (empty variant id, nil snapshot) yields 0.
func ReservedQuantity(variantID string, snapshot []orders.Order) int {
	if variantID == "" {
		return 0
	}
	total := 0
	for _, o := range snapshot {
		if !reserves(o) {
			continue
		}
		for _, it := range o.Items {
			if it.VariantID != variantID || it.Direction.Incoming() {
				continue
			}
			if it.Quantity > 0 {
				total += it.Quantity
			}
		}
	}
	return total
}

// ReservedByVariant computes reservations for every variant in one pass.
// Variants with zero demand are absent from the result.
func ReservedByVariant(snapshot []orders.Order) map[string]int {
	reserved := make(map[string]int)
	for _, o := range snapshot {
		if !reserves(o) {
			continue
		}
		for _, it := range o.Items {
			if it.VariantID == "" || it.Direction.Incoming() {
				continue
			}
			if it.Quantity > 0 {
				reserved[it.VariantID] += it.Quantity
			}
		}
	}
	return reserved
}

func reserves(o orders.Order) bool {
	return o.Type != orders.TypeReturn && o.Status.ReservesStock()
}
