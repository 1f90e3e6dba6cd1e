// Package store provides the catalog and sales ledger storage.
package store

import (
	"bookledger/domain"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore is a thread-safe in-memory implementation of domain.Store.
// The catalog is a map keyed by product title; the ledger is an append-only
// slice in registration order.
type InMemoryStore struct {
	mu          sync.RWMutex
	products    map[string]domain.Product
	sales       []domain.Sale
	now         func() time.Time
	strictDates bool
}

// NewInMemoryStore constructs a new InMemoryStore
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		products: make(map[string]domain.Product),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// compile-time assertion that InMemoryStore implements domain.Store
var _ domain.Store = (*InMemoryStore)(nil)

// Register inserts a new product. InitialQuantity is set from the starting
// stock when the caller leaves it zero.
func (s *InMemoryStore) Register(ctx context.Context, product domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	product.Title = strings.TrimSpace(product.Title)
	if product.InitialQuantity == 0 {
		product.InitialQuantity = product.QuantityInStock
	}
	if err := domain.ValidateProduct(product); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.Title]; exists {
		return domain.NewDuplicateProductError(product.Title)
	}
	s.products[product.Title] = product
	return nil
}

// Consult returns the product for the given title.
func (s *InMemoryStore) Consult(ctx context.Context, title string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[title]
	if !ok {
		return domain.Product{}, domain.NewProductNotFoundError(title)
	}
	return p, nil
}

// Update applies a partial update. Absent fields keep their current value;
// InitialQuantity is history and cannot be changed.
func (s *InMemoryStore) Update(ctx context.Context, title string, upd domain.ProductUpdate) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}

	if err := domain.ValidateUpdate(upd); err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[title]
	if !ok {
		return domain.Product{}, domain.NewProductNotFoundError(title)
	}
	if upd.Author != nil {
		p.Author = *upd.Author
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Quantity != nil {
		p.QuantityInStock = *upd.Quantity
	}
	s.products[title] = p
	return p, nil
}

// Delete removes a product from the catalog. Recorded sales referencing the
// title are kept untouched; their unit price snapshots remain valid.
func (s *InMemoryStore) Delete(ctx context.Context, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[title]; !ok {
		return domain.NewProductNotFoundError(title)
	}
	delete(s.products, title)
	return nil
}

// List returns catalog entries matching the filter, optionally sorted.
func (s *InMemoryStore) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.Author != "" && p.Author != filter.Author {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	switch filter.SortBy {
	case "title":
		sort.Slice(out, func(i, j int) bool {
			if filter.Order == "desc" {
				return out[i].Title > out[j].Title
			}
			return out[i].Title < out[j].Title
		})
	case "price":
		sort.Slice(out, func(i, j int) bool {
			if filter.Order == "desc" {
				return out[i].Price > out[j].Price
			}
			return out[i].Price < out[j].Price
		})
	case "quantity":
		sort.Slice(out, func(i, j int) bool {
			if filter.Order == "desc" {
				return out[i].QuantityInStock > out[j].QuantityInStock
			}
			return out[i].QuantityInStock < out[j].QuantityInStock
		})
	default:
		// deterministic output even without an explicit sort
		sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	}

	return out, nil
}

// RegisterSale validates and executes a sale. The stock check and the
// decrement happen under one lock so the sequence is atomic per product:
// either every validation passes and stock moves, or nothing changes.
func (s *InMemoryStore) RegisterSale(ctx context.Context, req domain.SaleRequest) (domain.Sale, error) {
	if err := ctx.Err(); err != nil {
		return domain.Sale{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[req.ProductTitle]
	if !ok {
		return domain.Sale{}, domain.NewProductNotFoundError(req.ProductTitle)
	}
	if req.Quantity <= 0 {
		return domain.Sale{}, domain.NewInvalidFieldError("quantity", "must be positive", req.Quantity)
	}
	if req.Quantity > p.QuantityInStock {
		return domain.Sale{}, domain.NewInsufficientStockError(req.ProductTitle, req.Quantity, p.QuantityInStock)
	}
	if req.Discount < 0 || req.Discount > 100 {
		return domain.Sale{}, domain.NewInvalidFieldError("discount_percentage", "must be between 0 and 100", req.Discount)
	}
	date, err := domain.NormalizeDate(req.Date, s.strictDates, s.now())
	if err != nil {
		return domain.Sale{}, err
	}

	p.QuantityInStock -= req.Quantity
	s.products[req.ProductTitle] = p

	sale := domain.Sale{
		ID:                 uuid.NewString(),
		Client:             req.Client,
		ProductTitle:       req.ProductTitle,
		Quantity:           req.Quantity,
		Date:               date,
		UnitPrice:          p.Price,
		DiscountPercentage: req.Discount,
		TotalPrice:         domain.TotalPrice(p.Price, req.Quantity, req.Discount),
	}
	s.sales = append(s.sales, sale)
	return sale, nil
}

// ListSales returns the ledger in registration order.
func (s *InMemoryStore) ListSales(ctx context.Context) ([]domain.Sale, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Sale, len(s.sales))
	copy(out, s.sales)
	return out, nil
}

// Snapshot copies the catalog and ledger for read-only reporting. Products
// come out in title order; sales keep ledger order.
func (s *InMemoryStore) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.Snapshot{
		Products: make([]domain.Product, 0, len(s.products)),
		Sales:    make([]domain.Sale, len(s.sales)),
	}
	for _, p := range s.products {
		snap.Products = append(snap.Products, p)
	}
	sort.Slice(snap.Products, func(i, j int) bool { return snap.Products[i].Title < snap.Products[j].Title })
	copy(snap.Sales, s.sales)
	return snap, nil
}
