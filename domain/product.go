// Package domain defines core business types and interfaces.
package domain

import (
	"context"
	"strings"
)

// Product represents a catalog entry. Title is the catalog key.
type Product struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	QuantityInStock int     `json:"quantity_in_stock"`
	// InitialQuantity is fixed at registration and is the denominator
	// for sell-through reporting. Updates never touch it.
	InitialQuantity int `json:"initial_quantity"`
}

// ProductUpdate carries a partial update. A nil field keeps the current value.
type ProductUpdate struct {
	Author   *string
	Category *string
	Price    *float64
	Quantity *int
}

// ListFilter allows filtering and sorting results from List
type ListFilter struct {
	Author   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string // "title", "price", "quantity"
	Order    string // "asc" or "desc"
}

// Snapshot is a point-in-time copy of the catalog and the sales ledger,
// taken for read-only reporting. Sales keep ledger (insertion) order.
type Snapshot struct {
	Products []Product `json:"products"`
	Sales    []Sale    `json:"sales"`
}

// Store defines the catalog and ledger operations.
type Store interface {
	Register(ctx context.Context, product Product) error
	Consult(ctx context.Context, title string) (Product, error)
	Update(ctx context.Context, title string, upd ProductUpdate) (Product, error)
	Delete(ctx context.Context, title string) error
	List(ctx context.Context, filter ListFilter) ([]Product, error)

	RegisterSale(ctx context.Context, req SaleRequest) (Sale, error)
	ListSales(ctx context.Context) ([]Sale, error)

	Snapshot(ctx context.Context) (Snapshot, error)
}

// ValidateProduct checks the field constraints for a catalog entry.
func ValidateProduct(p Product) error {
	if strings.TrimSpace(p.Title) == "" {
		return NewInvalidFieldError("title", "cannot be empty", p.Title)
	}
	if p.Price <= 0 {
		return NewInvalidFieldError("price", "must be positive", p.Price)
	}
	if p.QuantityInStock < 0 {
		return NewInvalidFieldError("quantity_in_stock", "must be non-negative", p.QuantityInStock)
	}
	if p.InitialQuantity < 0 {
		return NewInvalidFieldError("initial_quantity", "must be non-negative", p.InitialQuantity)
	}
	return nil
}

// ValidateUpdate checks the supplied fields of a partial update.
func ValidateUpdate(upd ProductUpdate) error {
	if upd.Price != nil && *upd.Price <= 0 {
		return NewInvalidFieldError("price", "must be positive", *upd.Price)
	}
	if upd.Quantity != nil && *upd.Quantity < 0 {
		return NewInvalidFieldError("quantity_in_stock", "must be non-negative", *upd.Quantity)
	}
	return nil
}
