// Package aggregation rolls retail transaction observations up into
// calendar-bucketed time series and ranks items by sales regularity.
//
// # Components
//
// 1. Resolution: the bucketing strategy (daily, weekly, monthly)
// 2. Aggregator: sums observation amounts per (group, bucket) pair
// 3. TopFrequentItems: ranks items by distinct active trading days
//
// # Usage
//
// Aggregate a revenue series at every resolution:
//
//	agg := aggregation.NewAggregator(logger, cfg.Analysis)
//	series := agg.AggregateAll(ctx, observations)
//
// Aggregate per-item series at one resolution:
//
//	points, err := agg.AggregateGrouped(ctx, itemObs, aggregation.Weekly)
//
// # Bucket conventions
//
// Daily buckets are calendar dates, weekly buckets are labelled by the
// Sunday ending the week, monthly buckets by the first of the month.
// All labels are midnight UTC. Buckets with no observations are
// omitted, never zero-filled, so the sum over any resolution's buckets
// always equals the sum of the input amounts.
//
// # Concurrency
//
// Grouped aggregation fans out across group keys with a bounded
// errgroup. Groups share no state, so the bound is purely a resource
// limit and has no effect on results.
package aggregation
