package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"retailpulse/internal/errors"
	"retailpulse/pkg/contracts/domain"
)

// Required column names in the cleaned transaction table. Matching is
// case-insensitive and tolerant of the common header spellings the
// upstream cleaning job has produced over time.
var requiredColumns = []string{"invoice_date", "invoice_id", "stock_code", "quantity", "price", "stock_value", "exclude"}

// columnAliases maps canonical column names to accepted header spellings.
var columnAliases = map[string][]string{
	"invoice_date": {"invoice_date", "invoicedate"},
	"invoice_id":   {"invoice_id", "invoice", "invoiceno"},
	"stock_code":   {"stock_code", "stockcode"},
	"description":  {"description"},
	"customer_id":  {"customer_id", "customerid"},
	"quantity":     {"quantity"},
	"price":        {"price", "unitprice", "unit_price"},
	"stock_value":  {"stock_value", "stockvalue"},
	"exclude":      {"exclude", "excluded"},
}

// dateFormats lists the timestamp layouts the loader accepts, most
// common first.
var dateFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// LoadTransactions reads the cleaned retail-transaction table from a
// CSV file. An absent required column is a fatal precondition failure;
// a malformed timestamp or numeric cell fails fast with an error naming
// the line and field. Row filtering is not applied here; see
// FilterPurchases.
func LoadTransactions(ctx context.Context, path string) ([]domain.Transaction, error) {
	logger := slog.Default()
	logger.InfoContext(ctx, "loading transactions", slog.String("path", path))

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("transaction file %s", path))
		}
		return nil, errors.NewStorageError("failed to open transaction file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // validated per row below

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewParsingError("failed to read CSV header", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var transactions []domain.Transaction
	line := 1

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during data loading: %w", ctx.Err())
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("failed to read CSV record (line %d)", line+1), err)
		}
		line++

		tx, err := parseTransaction(record, columns, line)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, tx)
	}

	logger.InfoContext(ctx, "loaded transactions",
		slog.String("path", path),
		slog.Int("records", len(transactions)))

	return transactions, nil
}

// mapColumns resolves header names to column indices and verifies that
// every required column is present.
func mapColumns(header []string) (map[string]int, error) {
	normalized := make(map[string]int, len(header))
	for i, name := range header {
		normalized[strings.ToLower(strings.TrimSpace(stripBOM(name)))] = i
	}

	columns := make(map[string]int)
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			if idx, ok := normalized[alias]; ok {
				columns[canonical] = idx
				break
			}
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	return columns, nil
}

// parseTransaction converts one CSV record into a Transaction,
// failing fast on malformed timestamp or numeric cells.
func parseTransaction(record []string, columns map[string]int, line int) (domain.Transaction, error) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	dateStr := cell("invoice_date")
	invoiceDate, err := parseDate(dateStr)
	if err != nil {
		return domain.Transaction{}, errors.NewParsingError(
			fmt.Sprintf("malformed invoice_date %q (line %d)", dateStr, line), err)
	}

	quantity, err := parseInt(cell("quantity"))
	if err != nil {
		return domain.Transaction{}, errors.NewParsingError(
			fmt.Sprintf("malformed quantity (line %d)", line), err)
	}

	price, err := parseFloat(cell("price"))
	if err != nil {
		return domain.Transaction{}, errors.NewParsingError(
			fmt.Sprintf("malformed price (line %d)", line), err)
	}

	stockValue, err := parseFloat(cell("stock_value"))
	if err != nil {
		return domain.Transaction{}, errors.NewParsingError(
			fmt.Sprintf("malformed stock_value (line %d)", line), err)
	}

	exclude, err := parseBool(cell("exclude"))
	if err != nil {
		return domain.Transaction{}, errors.NewParsingError(
			fmt.Sprintf("malformed exclude flag (line %d)", line), err)
	}

	return domain.Transaction{
		InvoiceID:   cell("invoice_id"),
		StockCode:   cell("stock_code"),
		Description: cell("description"),
		CustomerID:  cell("customer_id"),
		InvoiceDate: invoiceDate,
		Quantity:    quantity,
		Price:       price,
		StockValue:  stockValue,
		Exclude:     exclude,
	}, nil
}

// parseDate attempts to parse date strings in multiple formats
func parseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, format := range dateFormats {
		if date, err := time.Parse(format, dateStr); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

func parseInt(str string) (int64, error) {
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseInt(strings.ReplaceAll(str, ",", ""), 10, 64)
}

func parseFloat(str string) (float64, error) {
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(strings.ReplaceAll(str, ",", ""), 64)
}

func parseBool(str string) (bool, error) {
	if str == "" {
		return false, fmt.Errorf("empty boolean value")
	}
	return strconv.ParseBool(strings.ToLower(str))
}

// stripBOM removes a UTF-8 byte order mark from the first header cell
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
