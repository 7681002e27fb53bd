package aggregation

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"retailpulse/pkg/contracts/domain"
)

// DefaultTopItems is the number of items returned when no explicit
// count is requested.
const DefaultTopItems = 12

// TopFrequentItems ranks items by how regularly they sell: the number
// of distinct calendar days with at least one transaction for the item.
// It returns at most k items in descending day-count order; ties break
// on ascending stock code so the ranking is reproducible across runs.
// k <= 0 falls back to DefaultTopItems.
func (a *Aggregator) TopFrequentItems(ctx context.Context, transactions []domain.Transaction, k int) []domain.ItemFrequency {
	if k <= 0 {
		k = DefaultTopItems
	}

	days := make(map[string]map[string]struct{})
	descriptions := make(map[string]string)

	for _, tx := range transactions {
		code := strings.TrimSpace(tx.StockCode)
		if code == "" {
			continue // Skip rows without an item identifier
		}

		dateKey := tx.InvoiceDate.Format("2006-01-02")
		if days[code] == nil {
			days[code] = make(map[string]struct{})
		}
		days[code][dateKey] = struct{}{}

		if descriptions[code] == "" && tx.Description != "" {
			descriptions[code] = tx.Description
		}
	}

	frequencies := make([]domain.ItemFrequency, 0, len(days))
	for code, dates := range days {
		frequencies = append(frequencies, domain.ItemFrequency{
			StockCode:   code,
			Description: descriptions[code],
			ActiveDays:  len(dates),
		})
	}

	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].ActiveDays == frequencies[j].ActiveDays {
			return frequencies[i].StockCode < frequencies[j].StockCode
		}
		return frequencies[i].ActiveDays > frequencies[j].ActiveDays
	})

	if len(frequencies) > k {
		frequencies = frequencies[:k]
	}

	a.logger.InfoContext(ctx, "ranked top frequent items",
		slog.Int("transactions", len(transactions)),
		slog.Int("distinct_items", len(days)),
		slog.Int("returned", len(frequencies)))

	return frequencies
}
