package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"retailpulse/internal/aggregation"
	"retailpulse/internal/config"
	"retailpulse/internal/errors"
	"retailpulse/pkg/contracts/domain"
)

// WorkbookExporter writes the full analysis into a single Excel
// workbook: one sheet per resolution plus the top-items ranking.
// The workbook is the hand-off format for the chart renderer.
type WorkbookExporter struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewWorkbookExporter creates a new workbook exporter
func NewWorkbookExporter(cfg *config.Config, logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{cfg: cfg, logger: logger}
}

// Export writes the workbook to the given file name inside the reports
// directory.
func (e *WorkbookExporter) Export(ctx context.Context, fileName string, series map[aggregation.Resolution][]domain.SeriesPoint, items []domain.ItemFrequency) error {
	path := e.cfg.GetReportPath(fileName)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for workbook", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, res := range aggregation.Resolutions {
		sheet := sheetName(res)

		if i == 0 {
			// Reuse the default sheet for the first resolution
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}

		if err := writeSeriesSheet(f, sheet, series[res]); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
	}

	if _, err := f.NewSheet("TopItems"); err != nil {
		return fmt.Errorf("failed to create sheet TopItems: %w", err)
	}
	if err := writeTopItemsSheet(f, items); err != nil {
		return fmt.Errorf("failed to write sheet TopItems: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save workbook", err)
	}

	e.logger.InfoContext(ctx, "exported workbook",
		slog.String("path", path),
		slog.Int("top_items", len(items)))

	return nil
}

// sheetName returns the capitalized sheet title for a resolution
func sheetName(res aggregation.Resolution) string {
	name := res.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

func writeSeriesSheet(f *excelize.File, sheet string, points []domain.SeriesPoint) error {
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Amount"}); err != nil {
		return err
	}

	for i, p := range points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{formatDate(p.Bucket), p.Amount}); err != nil {
			return err
		}
	}

	return nil
}

func writeTopItemsSheet(f *excelize.File, items []domain.ItemFrequency) error {
	if err := f.SetSheetRow("TopItems", "A1", &[]interface{}{"StockCode", "Description", "ActiveDays"}); err != nil {
		return err
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("TopItems", cell, &[]interface{}{item.StockCode, item.Description, item.ActiveDays}); err != nil {
			return err
		}
	}

	return nil
}
