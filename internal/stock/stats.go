package stock

import (
	"github.com/ryus-backoffice/ryus-backoffice/internal/orders"
	"github.com/ryus-backoffice/ryus-backoffice/internal/reservation"
)

// Classification thresholds on available (on-hand minus reserved) units.
const (
	lowStockThreshold    = 5
	mediumStockThreshold = 10
)

// Classify buckets a variant. Out-of-stock checks the raw on-hand quantity,
// not availability: a variant with stock on hand is never out-of-stock even
// when reservations exceed it, it just classifies as low.
func Classify(onHand, available int) Level {
	switch {
	case onHand == 0:
		return LevelOutOfStock
	case available <= lowStockThreshold:
		return LevelLow
	case available <= mediumStockThreshold:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// ComputeStats derives per-variant reservation figures and bucket counts
// from a catalogue and order snapshot. Pure: the caller supplies both
// snapshots, nothing is fetched here.
func ComputeStats(products []Product, snapshot []orders.Order) InventoryStats {
	reserved := reservation.ReservedByVariant(snapshot)
	stats := InventoryStats{TotalProducts: len(products)}
	for _, p := range products {
		for _, v := range p.Variants {
			vs := buildVariantStats(p.ID, v, reserved[v.ID])
			if vs.Reserved > 0 {
				stats.ReservedStock += vs.Reserved
			}
			switch vs.Level {
			case LevelOutOfStock:
				stats.OutOfStock++
			case LevelLow:
				stats.LowStock++
			case LevelMedium:
				stats.MediumStock++
			case LevelHigh:
				stats.HighStock++
			}
			stats.Variants = append(stats.Variants, vs)
		}
	}
	return stats
}

func buildVariantStats(productID string, v ProductVariant, reserved int) VariantStats {
	available := v.Quantity - reserved
	if available < 0 {
		available = 0
	}
	return VariantStats{
		ProductID: productID,
		VariantID: v.ID,
		OnHand:    v.Quantity,
		Reserved:  reserved,
		Available: available,
		Level:     Classify(v.Quantity, available),
	}
}
