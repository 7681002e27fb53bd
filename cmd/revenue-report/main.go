package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"retailpulse/internal/aggregation"
	"retailpulse/internal/config"
	"retailpulse/internal/dataset"
	"retailpulse/internal/exporter"
	"retailpulse/internal/infrastructure"
	"retailpulse/pkg/contracts"
	"retailpulse/pkg/contracts/domain"
)

func main() {
	inputPath := flag.String("input", "", "path to the cleaned transaction CSV (defaults to data/transactions.csv)")
	outputDir := flag.String("out", "", "output directory for reports (defaults to configured reports dir)")
	topItems := flag.Int("top", 0, "number of top items to report (defaults to configured value)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *outputDir != "" {
		cfg.Paths.ReportsDir = *outputDir
	}
	if *topItems > 0 {
		cfg.Analysis.TopItems = *topItems
	}
	if *inputPath == "" {
		*inputPath = defaultInputPath(cfg)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	logger = infrastructure.WithComponent(logger, "revenue-report")

	if err := cfg.EnsureDirectories(); err != nil {
		logger.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.EnsureRunID(context.Background())
	runID := infrastructure.GetRunID(ctx)
	logger.InfoContext(ctx, "Starting revenue report",
		"input", *inputPath,
		"reports_dir", cfg.Paths.ReportsDir,
		"top_items", cfg.Analysis.TopItems)

	transactions, err := dataset.LoadTransactions(ctx, *inputPath)
	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to load transactions")
		os.Exit(1)
	}

	purchases := dataset.FilterPurchases(transactions)
	logger.InfoContext(ctx, "Filtered purchases",
		"transactions", len(transactions),
		"purchases", len(purchases))

	agg := aggregation.NewAggregator(logger, cfg.Analysis)

	// Whole-shop revenue at every resolution
	revenue := agg.AggregateAll(ctx, dataset.RevenueObservations(purchases))

	// Top regularly-purchased items and their per-item series
	top := agg.TopFrequentItems(ctx, purchases, cfg.Analysis.TopItems)
	include := make(map[string]bool, len(top))
	for _, item := range top {
		include[item.StockCode] = true
	}

	itemObservations := dataset.ItemObservations(purchases)

	seriesExp := exporter.NewSeriesExporter(cfg, logger)
	workbookExp := exporter.NewWorkbookExporter(cfg, logger)

	if err := seriesExp.ExportRevenueSeries(ctx, revenue); err != nil {
		logger.ErrorContext(ctx, "Failed to export revenue series", "error", err)
		os.Exit(1)
	}

	pointCounts := make(map[string]int, len(revenue))
	for res, points := range revenue {
		pointCounts[res.String()] = len(points)
	}

	for _, res := range aggregation.Resolutions {
		itemSeries, err := agg.AggregateGrouped(ctx, itemObservations, res)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to aggregate item series",
				"resolution", res.String(), "error", err)
			os.Exit(1)
		}
		if err := seriesExp.ExportItemSeries(ctx, res, itemSeries, include); err != nil {
			logger.ErrorContext(ctx, "Failed to export item series",
				"resolution", res.String(), "error", err)
			os.Exit(1)
		}
	}

	if err := seriesExp.ExportTopItems(ctx, top); err != nil {
		logger.ErrorContext(ctx, "Failed to export top items", "error", err)
		os.Exit(1)
	}

	summary := domain.SeriesSummary{
		RunID:            runID,
		Format:           contracts.DataFormatVersion,
		GeneratedAt:      time.Now().UTC(),
		SourcePath:       *inputPath,
		TransactionCount: len(transactions),
		PurchaseCount:    len(purchases),
		TopItems:         top,
		PointCounts:      pointCounts,
	}
	if err := seriesExp.ExportSummaryJSON(ctx, summary); err != nil {
		logger.ErrorContext(ctx, "Failed to export summary", "error", err)
		os.Exit(1)
	}

	if err := workbookExp.Export(ctx, "revenue_report.xlsx", revenue, top); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to export workbook")
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Revenue report generated successfully",
		"reports_dir", cfg.Paths.ReportsDir,
		"purchases", len(purchases),
		"top_items", len(top))

	printTopItems(top)
}

// defaultInputPath returns the transaction file location inside the
// configured data directory.
func defaultInputPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.DataDir, "transactions.csv")
}

// printTopItems prints the item ranking to stdout for quick inspection
func printTopItems(items []domain.ItemFrequency) {
	if len(items) == 0 {
		return
	}

	fmt.Println("\n=== TOP REGULARLY-PURCHASED ITEMS ===")
	fmt.Println("StockCode | Active Days | Description")
	fmt.Println("----------|-------------|------------")

	for _, item := range items {
		fmt.Printf("%-9s | %11d | %s\n", item.StockCode, item.ActiveDays, item.Description)
	}
}
