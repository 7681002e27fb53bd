package dataset

import (
	"retailpulse/pkg/contracts/domain"
)

// FilterPurchases applies the standard row-selection policy: keep rows
// with positive quantity that the upstream cleaning job did not flag
// for exclusion. This is deterministic selection, not error handling;
// dropped rows are simply not purchases.
func FilterPurchases(transactions []domain.Transaction) []domain.Transaction {
	purchases := make([]domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.IsPurchase() {
			purchases = append(purchases, tx)
		}
	}
	return purchases
}

// RevenueObservations projects transactions onto an ungrouped
// observation stream: one observation per row, amount = stock value.
func RevenueObservations(transactions []domain.Transaction) []domain.Observation {
	observations := make([]domain.Observation, 0, len(transactions))
	for _, tx := range transactions {
		observations = append(observations, domain.Observation{
			Timestamp: tx.InvoiceDate,
			Amount:    tx.StockValue,
		})
	}
	return observations
}

// ItemObservations projects transactions onto a grouped observation
// stream keyed by stock code, so per-item series aggregate
// independently.
func ItemObservations(transactions []domain.Transaction) []domain.Observation {
	observations := make([]domain.Observation, 0, len(transactions))
	for _, tx := range transactions {
		observations = append(observations, domain.Observation{
			Timestamp: tx.InvoiceDate,
			GroupKey:  tx.StockCode,
			Amount:    tx.StockValue,
		})
	}
	return observations
}
