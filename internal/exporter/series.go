package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"retailpulse/internal/aggregation"
	"retailpulse/internal/config"
	"retailpulse/internal/errors"
	"retailpulse/pkg/contracts/domain"
)

// SeriesExporter writes aggregated time series and item rankings as
// chartable CSV files plus a JSON summary document.
type SeriesExporter struct {
	cfg       *config.Config
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewSeriesExporter creates a new series exporter
func NewSeriesExporter(cfg *config.Config, logger *slog.Logger) *SeriesExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeriesExporter{
		cfg:       cfg,
		csvWriter: NewCSVWriter(cfg),
		logger:    logger,
	}
}

// ExportRevenueSeries writes one CSV per resolution with the whole-shop
// revenue rollup: revenue_daily.csv, revenue_weekly.csv,
// revenue_monthly.csv under the reports directory.
func (e *SeriesExporter) ExportRevenueSeries(ctx context.Context, series map[aggregation.Resolution][]domain.SeriesPoint) error {
	for _, res := range aggregation.Resolutions {
		points := series[res]

		records := make([][]string, 0, len(points))
		for _, p := range points {
			records = append(records, []string{formatDate(p.Bucket), formatAmount(p.Amount)})
		}

		filename := fmt.Sprintf("revenue_%s.csv", res)
		if err := e.csvWriter.WriteSimpleCSV(filename, []string{"Date", "Amount"}, records); err != nil {
			return fmt.Errorf("failed to write revenue series for %s: %w", res, err)
		}

		e.logger.InfoContext(ctx, "exported revenue series",
			slog.String("resolution", res.String()),
			slog.Int("buckets", len(points)))
	}

	return nil
}

// ExportItemSeries writes a per-item sales series CSV at the given
// resolution. When include is non-nil, only points whose group key is
// in the set are written; this is how the report stays restricted to
// the top-ranked items.
func (e *SeriesExporter) ExportItemSeries(ctx context.Context, res aggregation.Resolution, points []domain.SeriesPoint, include map[string]bool) error {
	filename := fmt.Sprintf("item_sales_%s.csv", res)

	// Per-item series are the largest output; stream rows instead of
	// buffering the whole table.
	stream, err := e.csvWriter.CreateStreamWriter(filename, []string{"Date", "StockCode", "Amount"})
	if err != nil {
		return fmt.Errorf("failed to create item series file for %s: %w", res, err)
	}

	rows := 0
	for _, p := range points {
		if include != nil && !include[p.GroupKey] {
			continue
		}
		if err := stream.WriteRecord([]string{formatDate(p.Bucket), p.GroupKey, formatAmount(p.Amount)}); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write item series row for %s: %w", res, err)
		}
		rows++
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to flush item series for %s: %w", res, err)
	}

	e.logger.InfoContext(ctx, "exported item series",
		slog.String("resolution", res.String()),
		slog.Int("rows", rows))

	return nil
}

// ExportTopItems writes the item frequency ranking to top_items.csv
func (e *SeriesExporter) ExportTopItems(ctx context.Context, items []domain.ItemFrequency) error {
	records := make([][]string, 0, len(items))
	for _, item := range items {
		records = append(records, []string{item.StockCode, item.Description, formatInt(item.ActiveDays)})
	}

	// The ranking is opened in Excel by hand; the BOM keeps non-ASCII
	// descriptions readable there.
	if err := e.csvWriter.WriteCSV("top_items.csv", WriteOptions{
		Headers:   []string{"StockCode", "Description", "ActiveDays"},
		Records:   records,
		BOMPrefix: true,
	}); err != nil {
		return fmt.Errorf("failed to write top items: %w", err)
	}

	e.logger.InfoContext(ctx, "exported top items", slog.Int("items", len(items)))

	return nil
}

// ExportSummaryJSON writes run metadata alongside the series files so
// downstream chart renderers can trace which run produced them.
func (e *SeriesExporter) ExportSummaryJSON(ctx context.Context, summary domain.SeriesSummary) error {
	path := e.cfg.GetReportPath("summary.json")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for JSON summary", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create JSON summary file", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(summary); err != nil {
		return errors.NewStorageError("failed to encode JSON summary", err)
	}

	e.logger.InfoContext(ctx, "exported summary",
		slog.String("path", path),
		slog.String("run_id", summary.RunID))

	return nil
}
