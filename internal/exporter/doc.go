// Package exporter writes aggregated retail series and item rankings
// to the report formats consumed downstream: per-resolution CSV files,
// a JSON summary with run metadata, and an Excel workbook.
//
// All relative output paths resolve into the configured reports
// directory. The top-items ranking carries a UTF-8 BOM so Excel reads
// it as UTF-8; the chart-input series files are written without one to
// keep analysis tooling happy.
package exporter
