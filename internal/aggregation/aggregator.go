package aggregation

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"retailpulse/internal/config"
	"retailpulse/pkg/contracts/domain"
)

// Aggregator rolls timestamped observations up into calendar-bucketed
// time series at daily, weekly, and monthly resolution. It holds no
// state between calls; the same input always yields the same output.
type Aggregator struct {
	logger      *slog.Logger
	maxParallel int
}

// NewAggregator creates an aggregator with the given configuration.
// MaxParallelGroups bounds how many group keys are aggregated
// concurrently in AggregateGrouped.
func NewAggregator(logger *slog.Logger, cfg config.AnalysisConfig) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}

	maxParallel := cfg.MaxParallelGroups
	if maxParallel <= 0 {
		maxParallel = 1
	}

	return &Aggregator{
		logger:      logger,
		maxParallel: maxParallel,
	}
}

// Aggregate sums observation amounts into calendar buckets at the given
// resolution, ignoring group keys. The result is sorted by bucket date.
// Empty input yields an empty series; buckets with no observations are
// omitted rather than zero-filled.
func (a *Aggregator) Aggregate(ctx context.Context, observations []domain.Observation, res Resolution) []domain.SeriesPoint {
	points := bucketSums(observations, res, "")

	a.logger.DebugContext(ctx, "aggregated series",
		slog.String("resolution", res.String()),
		slog.Int("observations", len(observations)),
		slog.Int("buckets", len(points)))

	return points
}

// AggregateGrouped aggregates observations independently per group key.
// Amounts never mix across keys: each group's series is computed from
// that group's observations alone. Groups are processed concurrently,
// bounded by the configured parallelism. The result is sorted by
// (group key, bucket date).
func (a *Aggregator) AggregateGrouped(ctx context.Context, observations []domain.Observation, res Resolution) ([]domain.SeriesPoint, error) {
	groups := make(map[string][]domain.Observation)
	for _, obs := range observations {
		groups[obs.GroupKey] = append(groups[obs.GroupKey], obs)
	}

	points := make([]domain.SeriesPoint, 0, len(groups))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxParallel)

	for key, groupObs := range groups {
		key, groupObs := key, groupObs
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			groupPoints := bucketSums(groupObs, res, key)

			mu.Lock()
			points = append(points, groupPoints...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].GroupKey == points[j].GroupKey {
			return points[i].Bucket.Before(points[j].Bucket)
		}
		return points[i].GroupKey < points[j].GroupKey
	})

	a.logger.InfoContext(ctx, "aggregated grouped series",
		slog.String("resolution", res.String()),
		slog.Int("observations", len(observations)),
		slog.Int("groups", len(groups)),
		slog.Int("buckets", len(points)))

	return points, nil
}

// AggregateAll produces the ungrouped series at every supported
// resolution.
func (a *Aggregator) AggregateAll(ctx context.Context, observations []domain.Observation) map[Resolution][]domain.SeriesPoint {
	series := make(map[Resolution][]domain.SeriesPoint, len(Resolutions))
	for _, res := range Resolutions {
		series[res] = a.Aggregate(ctx, observations, res)
	}
	return series
}

// bucketSums is the shared reduction: sum amounts per bucket label and
// return the buckets in chronological order.
func bucketSums(observations []domain.Observation, res Resolution, groupKey string) []domain.SeriesPoint {
	sums := make(map[time.Time]float64)
	for _, obs := range observations {
		sums[res.Bucket(obs.Timestamp)] += obs.Amount
	}

	points := make([]domain.SeriesPoint, 0, len(sums))
	for bucket, amount := range sums {
		points = append(points, domain.SeriesPoint{
			Resolution: res.String(),
			GroupKey:   groupKey,
			Bucket:     bucket,
			Amount:     amount,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Bucket.Before(points[j].Bucket)
	})

	return points
}
