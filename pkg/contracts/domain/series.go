package domain

import (
	"time"
)

// SeriesPoint is one rollup bucket of an aggregated time series: the
// sum of all observation amounts whose timestamps fall into the same
// calendar bucket at the given resolution. Bucket carries the bucket
// label date (midnight UTC); GroupKey is empty for ungrouped series.
type SeriesPoint struct {
	Resolution string    `json:"resolution"`
	GroupKey   string    `json:"group_key,omitempty"`
	Bucket     time.Time `json:"bucket"`
	Amount     float64   `json:"amount"`
}

// SeriesSummary describes one exported report run. It is written as
// metadata alongside the series files so downstream chart renderers can
// trace which run produced them.
type SeriesSummary struct {
	RunID            string    `json:"run_id"`
	Format           string    `json:"format,omitempty"`
	GeneratedAt      time.Time `json:"generated_at"`
	SourcePath       string    `json:"source_path"`
	TransactionCount int       `json:"transaction_count"`
	PurchaseCount    int       `json:"purchase_count"`
	TopItems         []ItemFrequency `json:"top_items"`
	PointCounts      map[string]int  `json:"point_counts"`
}
