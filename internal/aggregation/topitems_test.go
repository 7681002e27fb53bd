package aggregation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailpulse/pkg/contracts/domain"
)

func tx(code, description string, day time.Time) domain.Transaction {
	return domain.Transaction{
		InvoiceID:   "INV-1",
		StockCode:   code,
		Description: description,
		InvoiceDate: day,
		Quantity:    1,
		Price:       1.0,
		StockValue:  1.0,
	}
}

func TestTopFrequentItems_Ranking(t *testing.T) {
	ctx := context.Background()
	agg := newTestAggregator(t)

	transactions := []domain.Transaction{
		// 22423 sells on 3 distinct days, twice on the first
		tx("22423", "REGENCY CAKESTAND", date(2021, 1, 1)),
		tx("22423", "REGENCY CAKESTAND", date(2021, 1, 1)),
		tx("22423", "REGENCY CAKESTAND", date(2021, 1, 2)),
		tx("22423", "REGENCY CAKESTAND", date(2021, 1, 5)),
		// 85123 sells on 2 distinct days
		tx("85123", "WHITE HANGING HEART", date(2021, 1, 1)),
		tx("85123", "WHITE HANGING HEART", date(2021, 1, 3)),
		// 84879 sells on 1 day
		tx("84879", "ASSORTED COLOUR BIRD", date(2021, 1, 4)),
	}

	items := agg.TopFrequentItems(ctx, transactions, 10)
	require.Len(t, items, 3)

	assert.Equal(t, "22423", items[0].StockCode)
	assert.Equal(t, 3, items[0].ActiveDays)
	assert.Equal(t, "REGENCY CAKESTAND", items[0].Description)
	assert.Equal(t, "85123", items[1].StockCode)
	assert.Equal(t, 2, items[1].ActiveDays)
	assert.Equal(t, "84879", items[2].StockCode)
	assert.Equal(t, 1, items[2].ActiveDays)

	// Day counts are monotonically non-increasing
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].ActiveDays, items[i].ActiveDays)
	}
}

func TestTopFrequentItems_CapsAtK(t *testing.T) {
	ctx := context.Background()
	agg := newTestAggregator(t)

	var transactions []domain.Transaction
	for i := 0; i < 20; i++ {
		code := string(rune('A' + i))
		for d := 0; d <= i; d++ {
			transactions = append(transactions, tx(code, "", date(2021, 1, 1+d%27)))
		}
	}

	items := agg.TopFrequentItems(ctx, transactions, 5)
	assert.Len(t, items, 5)
}

func TestTopFrequentItems_DefaultK(t *testing.T) {
	ctx := context.Background()
	agg := newTestAggregator(t)

	var transactions []domain.Transaction
	for i := 0; i < 30; i++ {
		code := string(rune('A'+i%26)) + string(rune('a'+i/26))
		transactions = append(transactions, tx(code, "", date(2021, 1, 1)))
	}

	items := agg.TopFrequentItems(ctx, transactions, 0)
	assert.Len(t, items, DefaultTopItems)
}

func TestTopFrequentItems_TieBreakByStockCode(t *testing.T) {
	ctx := context.Background()
	agg := newTestAggregator(t)

	transactions := []domain.Transaction{
		tx("ZEBRA", "", date(2021, 1, 1)),
		tx("APPLE", "", date(2021, 1, 1)),
		tx("MANGO", "", date(2021, 1, 1)),
	}

	items := agg.TopFrequentItems(ctx, transactions, 10)
	require.Len(t, items, 3)
	assert.Equal(t, "APPLE", items[0].StockCode)
	assert.Equal(t, "MANGO", items[1].StockCode)
	assert.Equal(t, "ZEBRA", items[2].StockCode)
}

func TestTopFrequentItems_SkipsEmptyStockCodes(t *testing.T) {
	ctx := context.Background()
	agg := newTestAggregator(t)

	transactions := []domain.Transaction{
		tx("", "NO CODE", date(2021, 1, 1)),
		tx("  ", "BLANK CODE", date(2021, 1, 1)),
		tx("REAL", "REAL ITEM", date(2021, 1, 1)),
	}

	items := agg.TopFrequentItems(ctx, transactions, 10)
	require.Len(t, items, 1)
	assert.Equal(t, "REAL", items[0].StockCode)
}

func TestTopFrequentItems_EmptyInput(t *testing.T) {
	ctx := context.Background()
	agg := newTestAggregator(t)

	items := agg.TopFrequentItems(ctx, nil, 12)
	assert.Empty(t, items)
}
