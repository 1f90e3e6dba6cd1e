// Package seed pre-populates the catalog before first interactive use.
package seed

import (
	"bookledger/domain"
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
)

// Defaults returns the built-in starting catalog: five books with their
// initial stock levels.
func Defaults() []domain.Product {
	return []domain.Product{
		{
			Title:           "Cien años de soledad",
			Author:          "Gabriel Garcia Marquez",
			Category:        "Fantasy",
			Price:           10.00,
			QuantityInStock: 50,
			InitialQuantity: 50,
		},
		{
			Title:           "Habitos atomicos",
			Author:          "James Clear",
			Category:        "Self-help",
			Price:           12.50,
			QuantityInStock: 30,
			InitialQuantity: 30,
		},
		{
			Title:           "La ley de la atraccion",
			Author:          "Jerry Hicks, Esther Hicks",
			Category:        "Self-help",
			Price:           18.75,
			QuantityInStock: 40,
			InitialQuantity: 40,
		},
		{
			Title:           "Piense y hagase rico",
			Author:          "Napoleon Hill",
			Category:        "Self-help",
			Price:           15.00,
			QuantityInStock: 25,
			InitialQuantity: 25,
		},
		{
			Title:           "Padre rico padre pobre",
			Author:          "Robert Kiyosaki, Sharon Lechter",
			Category:        "Non-fiction",
			Price:           10.00,
			QuantityInStock: 35,
			InitialQuantity: 35,
		},
	}
}

// LoadFile reads a seed catalog from path. Both a JSON array and NDJSON
// (one product object per line) are accepted.
func LoadFile(path string) ([]domain.Product, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	btrim := bytes.TrimSpace(b)
	if len(btrim) == 0 {
		return nil, errors.New("empty seed file")
	}

	var products []domain.Product

	// JSON array
	if btrim[0] == '[' {
		if err := json.Unmarshal(btrim, &products); err != nil {
			return nil, err
		}
		return products, nil
	}

	// NDJSON or single JSON object
	scanner := bufio.NewScanner(bytes.NewReader(btrim))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var p domain.Product
		if err := json.Unmarshal(line, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// Apply registers products into the store, stopping at the first failure.
// Registration is all-or-nothing per product, so a failure partway leaves
// the already-registered entries valid.
func Apply(ctx context.Context, st domain.Store, products []domain.Product) error {
	for _, p := range products {
		if err := st.Register(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
