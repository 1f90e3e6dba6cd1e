// Package report computes read-only aggregates over a catalog and ledger
// snapshot. Nothing here mutates state; running a report twice over the
// same snapshot yields identical results.
package report

import (
	"bookledger/domain"
	"sort"
)

// DefaultTopN is the historical cutoff for the best-sellers report.
const DefaultTopN = 3

// Demand classification thresholds, as percentage of initial stock sold.
const (
	highDemandThreshold   = 75
	mediumDemandThreshold = 25
)

// LowStockThreshold marks products that need restocking.
const LowStockThreshold = 10

// TopProduct is one row of the best-sellers report.
type TopProduct struct {
	Title        string `json:"title"`
	QuantitySold int    `json:"quantity_sold"`
}

// TopSellingProducts groups the ledger by product title, sums quantities and
// returns at most n titles, best seller first. Ties keep the order in which
// the titles first appeared in the ledger.
func TopSellingProducts(snap domain.Snapshot, n int) []TopProduct {
	if n <= 0 {
		n = DefaultTopN
	}

	totals := make(map[string]int)
	order := make([]string, 0)
	for _, sale := range snap.Sales {
		if _, seen := totals[sale.ProductTitle]; !seen {
			order = append(order, sale.ProductTitle)
		}
		totals[sale.ProductTitle] += sale.Quantity
	}

	out := make([]TopProduct, 0, len(order))
	for _, title := range order {
		if totals[title] <= 0 {
			continue
		}
		out = append(out, TopProduct{Title: title, QuantitySold: totals[title]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].QuantitySold > out[j].QuantitySold })

	if len(out) > n {
		out = out[:n]
	}
	return out
}

// AuthorRevenue is one row of the sales-by-author report.
type AuthorRevenue struct {
	Author       string  `json:"author"`
	TotalRevenue float64 `json:"total_revenue"`
}

// SalesByAuthor accumulates total sale price per author, looked up through
// the product's current catalog entry. Sales whose product has since been
// deleted are excluded: without a catalog entry there is no author to
// attribute them to.
func SalesByAuthor(snap domain.Snapshot) []AuthorRevenue {
	byTitle := make(map[string]domain.Product, len(snap.Products))
	for _, p := range snap.Products {
		byTitle[p.Title] = p
	}

	revenue := make(map[string]float64)
	order := make([]string, 0)
	for _, sale := range snap.Sales {
		p, ok := byTitle[sale.ProductTitle]
		if !ok {
			continue
		}
		if _, seen := revenue[p.Author]; !seen {
			order = append(order, p.Author)
		}
		revenue[p.Author] += sale.TotalPrice
	}

	out := make([]AuthorRevenue, 0, len(order))
	for _, author := range order {
		out = append(out, AuthorRevenue{Author: author, TotalRevenue: revenue[author]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalRevenue > out[j].TotalRevenue })
	return out
}

// Income summarizes ledger revenue before and after discounts.
type Income struct {
	Gross    float64 `json:"gross"`
	Discount float64 `json:"discount"`
	Net      float64 `json:"net"`
}

// IncomeReport totals gross income, discount given and net income. It reads
// only snapshot fields recorded on each sale, so deleting a product or
// changing its price later does not move these numbers.
func IncomeReport(snap domain.Snapshot) Income {
	var inc Income
	for _, sale := range snap.Sales {
		gross := sale.UnitPrice * float64(sale.Quantity)
		inc.Gross += gross
		inc.Discount += gross * sale.DiscountPercentage / 100
	}
	inc.Net = inc.Gross - inc.Discount
	return inc
}

// Demand classifies a product's sell-through.
type Demand string

const (
	HighDemand   Demand = "High Demand"
	MediumDemand Demand = "Medium Demand"
	LowDemand    Demand = "Low Demand"
)

// ProductPerformance is one row of the inventory performance report.
// NoInitialStock is set when InitialQuantity is zero, in which case
// PercentSold and Demand are meaningless.
type ProductPerformance struct {
	Title           string  `json:"title"`
	QuantitySold    int     `json:"quantity_sold"`
	InitialQuantity int     `json:"initial_quantity"`
	PercentSold     float64 `json:"percent_sold"`
	Demand          Demand  `json:"demand,omitempty"`
	NoInitialStock  bool    `json:"no_initial_stock,omitempty"`
}

// LowStockProduct flags a catalog entry running low.
type LowStockProduct struct {
	Title     string `json:"title"`
	Remaining int    `json:"remaining"`
}

// Performance is the full inventory performance report.
type Performance struct {
	Products []ProductPerformance `json:"products"`
	LowStock []LowStockProduct    `json:"low_stock"`
}

// InventoryPerformance evaluates sell-through for every product still in the
// catalog and lists those with fewer than LowStockThreshold units left.
// Deleted products do not appear; rows come out in title order.
func InventoryPerformance(snap domain.Snapshot) Performance {
	sold := make(map[string]int)
	for _, sale := range snap.Sales {
		sold[sale.ProductTitle] += sale.Quantity
	}

	var perf Performance
	for _, p := range snap.Products {
		row := ProductPerformance{
			Title:           p.Title,
			QuantitySold:    sold[p.Title],
			InitialQuantity: p.InitialQuantity,
		}
		if p.InitialQuantity == 0 {
			row.NoInitialStock = true
		} else {
			row.PercentSold = float64(row.QuantitySold) / float64(p.InitialQuantity) * 100
			row.Demand = classify(row.PercentSold)
		}
		perf.Products = append(perf.Products, row)

		if p.QuantityInStock < LowStockThreshold {
			perf.LowStock = append(perf.LowStock, LowStockProduct{Title: p.Title, Remaining: p.QuantityInStock})
		}
	}
	// snapshot products are already title-sorted; keep that order
	return perf
}

func classify(percentSold float64) Demand {
	switch {
	case percentSold >= highDemandThreshold:
		return HighDemand
	case percentSold >= mediumDemandThreshold:
		return MediumDemand
	default:
		return LowDemand
	}
}
