package domain

import "time"

// DateLayout is the ISO-8601 calendar date form used for sale dates.
const DateLayout = "2006-01-02"

// Sale is one ledger entry. Sales are immutable once recorded: the ledger
// is append-only and a sale outlives deletion of its product. UnitPrice is
// snapshotted from the product at sale time and never re-read.
type Sale struct {
	ID                 string  `json:"id"`
	Client             string  `json:"client"`
	ProductTitle       string  `json:"product_title"`
	Quantity           int     `json:"quantity"`
	Date               string  `json:"date"`
	UnitPrice          float64 `json:"unit_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	TotalPrice         float64 `json:"total_sale_price"`
}

// SaleRequest is the input for registering a sale. Date may be empty
// (defaults to the current date); Discount defaults to zero.
type SaleRequest struct {
	Client       string
	ProductTitle string
	Quantity     int
	Date         string
	Discount     float64
}

// TotalPrice derives the sale total from a unit price, quantity and
// discount percentage. Full precision; rounding happens at display.
func TotalPrice(unitPrice float64, quantity int, discount float64) float64 {
	return unitPrice * float64(quantity) * (1 - discount/100)
}

// ValidateSaleRequest checks the request fields that do not need catalog
// access. Stock and product existence are checked by the store.
func ValidateSaleRequest(req SaleRequest) error {
	if req.Quantity <= 0 {
		return NewInvalidFieldError("quantity", "must be positive", req.Quantity)
	}
	if req.Discount < 0 || req.Discount > 100 {
		return NewInvalidFieldError("discount_percentage", "must be between 0 and 100", req.Discount)
	}
	return nil
}

// NormalizeDate resolves the sale date: empty defaults to now's calendar
// date. When strict, a supplied date must parse as DateLayout; otherwise
// any non-empty string is stored as given.
func NormalizeDate(date string, strict bool, now time.Time) (string, error) {
	if date == "" {
		return now.Format(DateLayout), nil
	}
	if strict {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return "", NewInvalidFieldError("date", "must match YYYY-MM-DD", date)
		}
	}
	return date, nil
}
