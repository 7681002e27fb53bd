package dataset

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailpulse/internal/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validCSV = `invoice_date,invoice_id,stock_code,description,customer_id,quantity,price,stock_value,exclude
2021-01-01 10:30:00,536365,85123,WHITE HANGING HEART,17850,6,2.55,15.30,false
2021-01-01 11:45:00,536366,22423,REGENCY CAKESTAND,17851,2,12.75,25.50,false
2021-01-02 09:00:00,536367,85123,WHITE HANGING HEART,17850,-1,2.55,-2.55,false
2021-01-02 14:20:00,536368,84879,ASSORTED COLOUR BIRD,17852,4,1.69,6.76,true
`

func TestLoadTransactions(t *testing.T) {
	ctx := context.Background()
	path := writeCSV(t, validCSV)

	transactions, err := LoadTransactions(ctx, path)
	require.NoError(t, err)
	require.Len(t, transactions, 4)

	first := transactions[0]
	assert.Equal(t, "536365", first.InvoiceID)
	assert.Equal(t, "85123", first.StockCode)
	assert.Equal(t, "WHITE HANGING HEART", first.Description)
	assert.Equal(t, "17850", first.CustomerID)
	assert.Equal(t, time.Date(2021, 1, 1, 10, 30, 0, 0, time.UTC), first.InvoiceDate)
	assert.Equal(t, int64(6), first.Quantity)
	assert.Equal(t, 2.55, first.Price)
	assert.Equal(t, 15.30, first.StockValue)
	assert.False(t, first.Exclude)

	assert.True(t, transactions[3].Exclude)
	assert.Equal(t, int64(-1), transactions[2].Quantity)
}

func TestLoadTransactions_HeaderAliases(t *testing.T) {
	ctx := context.Background()
	path := writeCSV(t, `InvoiceDate,Invoice,StockCode,Quantity,UnitPrice,StockValue,Exclude
2021-01-01,536365,85123,6,2.55,15.30,false
`)

	transactions, err := LoadTransactions(ctx, path)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "536365", transactions[0].InvoiceID)
	assert.Equal(t, 2.55, transactions[0].Price)
}

func TestLoadTransactions_MissingFile(t *testing.T) {
	ctx := context.Background()

	_, err := LoadTransactions(ctx, filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrTypeNotFound, appErr.Type)
}

func TestLoadTransactions_MissingRequiredColumn(t *testing.T) {
	ctx := context.Background()
	path := writeCSV(t, `invoice_date,invoice_id,stock_code,quantity,price,exclude
2021-01-01,536365,85123,6,2.55,false
`)

	_, err := LoadTransactions(ctx, path)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrTypeValidation, appErr.Type)
	assert.Contains(t, err.Error(), "stock_value")
}

func TestLoadTransactions_MalformedCells(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		inError string
	}{
		{
			name:    "bad timestamp",
			row:     "not-a-date,536365,85123,d,c,6,2.55,15.30,false",
			inError: "invoice_date",
		},
		{
			name:    "bad quantity",
			row:     "2021-01-01,536365,85123,d,c,six,2.55,15.30,false",
			inError: "quantity",
		},
		{
			name:    "bad price",
			row:     "2021-01-01,536365,85123,d,c,6,cheap,15.30,false",
			inError: "price",
		},
		{
			name:    "bad stock value",
			row:     "2021-01-01,536365,85123,d,c,6,2.55,alot,false",
			inError: "stock_value",
		},
		{
			name:    "bad exclude flag",
			row:     "2021-01-01,536365,85123,d,c,6,2.55,15.30,maybe",
			inError: "exclude",
		},
		{
			name:    "empty timestamp",
			row:     ",536365,85123,d,c,6,2.55,15.30,false",
			inError: "invoice_date",
		},
	}

	header := "invoice_date,invoice_id,stock_code,description,customer_id,quantity,price,stock_value,exclude\n"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			path := writeCSV(t, header+tt.row+"\n")

			_, err := LoadTransactions(ctx, path)
			require.Error(t, err)

			var appErr *errors.AppError
			require.True(t, stderrors.As(err, &appErr))
			assert.Equal(t, errors.ErrTypeParsing, appErr.Type)
			assert.Contains(t, err.Error(), tt.inError)
			// Failing line is the second line of the file
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestLoadTransactions_EmptyTable(t *testing.T) {
	ctx := context.Background()
	path := writeCSV(t, "invoice_date,invoice_id,stock_code,quantity,price,stock_value,exclude\n")

	transactions, err := LoadTransactions(ctx, path)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestLoadTransactions_DateOnlyFormat(t *testing.T) {
	ctx := context.Background()
	path := writeCSV(t, `invoice_date,invoice_id,stock_code,quantity,price,stock_value,exclude
2021-03-15,536365,85123,6,2.55,15.30,0
`)

	transactions, err := LoadTransactions(ctx, path)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC), transactions[0].InvoiceDate)
	assert.False(t, transactions[0].Exclude)
}
