package stock

import "errors"

// Product groups the sellable variants of one catalogue entry.
type Product struct {
	ID       string
	Name     string
	Variants []ProductVariant
}

// ProductVariant is a sellable SKU: product + color + size.
type ProductVariant struct {
	ID        string
	ProductID string
	Color     string
	Size      string
	// Quantity is the authoritative on-hand count from the store.
	Quantity  int
	CostPrice float64
	SalePrice float64
}

// Level buckets a variant by how much sellable stock remains.
type Level string

const (
	// LevelOutOfStock means the raw on-hand quantity is zero.
	LevelOutOfStock Level = "out_of_stock"
	// LevelLow means five or fewer units remain available.
	LevelLow Level = "low"
	// LevelMedium means ten or fewer units remain available.
	LevelMedium Level = "medium"
	// LevelHigh means more than ten units remain available.
	LevelHigh Level = "high"
)

// VariantStats carries the derived reservation view of one variant.
type VariantStats struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	OnHand    int    `json:"on_hand"`
	Reserved  int    `json:"reserved_quantity"`
	Available int    `json:"available_quantity"`
	Level     Level  `json:"level"`
}

// InventoryStats is the rollup consumed by inventory dashboards.
type InventoryStats struct {
	TotalProducts int            `json:"total_products"`
	ReservedStock int            `json:"reserved_stock"`
	OutOfStock    int            `json:"out_of_stock"`
	LowStock      int            `json:"low_stock"`
	MediumStock   int            `json:"medium_stock"`
	HighStock     int            `json:"high_stock"`
	Variants      []VariantStats `json:"variants"`
}

// ErrVariantNotFound occurs when a variant id is absent from the catalogue.
var ErrVariantNotFound = errors.New("stock: variant not found")
