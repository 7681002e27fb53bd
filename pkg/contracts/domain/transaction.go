package domain

import (
	"time"
)

// Transaction represents a single line of the cleaned retail-transaction
// dataset. One row corresponds to one invoice line: a quantity of one
// stock item sold (or returned, when Quantity is negative) on an invoice.
type Transaction struct {
	InvoiceID   string    `json:"invoice_id" csv:"Invoice" validate:"required"`
	StockCode   string    `json:"stock_code" csv:"StockCode" validate:"required"`
	Description string    `json:"description" csv:"Description"`
	CustomerID  string    `json:"customer_id" csv:"CustomerID"`
	InvoiceDate time.Time `json:"invoice_date" csv:"InvoiceDate" validate:"required"`
	Quantity    int64     `json:"quantity" csv:"Quantity"`
	Price       float64   `json:"price" csv:"Price" validate:"min=0"`
	StockValue  float64   `json:"stock_value" csv:"StockValue"`
	Exclude     bool      `json:"exclude" csv:"Exclude"`
}

// IsPurchase reports whether the row is a valid purchase under the
// standard selection policy: positive quantity and not flagged for
// exclusion by the upstream cleaning job. Returns and cancellations
// carry negative quantities and are filtered out here.
func (t Transaction) IsPurchase() bool {
	return t.Quantity > 0 && !t.Exclude
}

// Observation is a single timestamped amount fed into the time-series
// aggregator. GroupKey is empty for ungrouped (whole-shop) series and
// carries the stock code for per-item series.
type Observation struct {
	Timestamp time.Time `json:"timestamp"`
	GroupKey  string    `json:"group_key,omitempty"`
	Amount    float64   `json:"amount"`
}

// ItemFrequency records how regularly an item sells: the number of
// distinct calendar days on which the item had at least one
// transaction. Used to rank items for display, not for aggregation.
type ItemFrequency struct {
	StockCode   string `json:"stock_code"`
	Description string `json:"description,omitempty"`
	ActiveDays  int    `json:"active_days"`
}
