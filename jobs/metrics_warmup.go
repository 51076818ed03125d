package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/ryus-backoffice/ryus-backoffice/internal/finance"
	jobmetrics "github.com/ryus-backoffice/ryus-backoffice/internal/jobs"
	"github.com/ryus-backoffice/ryus-backoffice/internal/stock"
)

// FinancePort computes dashboard summaries, warming their cache entries.
type FinancePort interface {
	Summary(ctx context.Context, period finance.Period, scope finance.ViewScope) (finance.FinancialMetrics, error)
}

// StatsPort computes the inventory rollup, warming its cache entry.
type StatsPort interface {
	Stats(ctx context.Context) (stock.InventoryStats, error)
}

// MetricsWarmupJob precomputes the manager-scope dashboard aggregates for
// every period so the first request after an invalidation hits a warm cache.
type MetricsWarmupJob struct {
	Finance FinancePort
	Stock   StatsPort
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewMetricsWarmupJob initialises the warmup handler.
func NewMetricsWarmupJob(financePort FinancePort, stockPort StatsPort, logger *slog.Logger, metrics *jobmetrics.Metrics) *MetricsWarmupJob {
	return &MetricsWarmupJob{Finance: financePort, Stock: stockPort, Logger: logger, Metrics: metrics}
}

var warmupPeriods = []finance.Period{
	finance.PeriodToday,
	finance.PeriodWeek,
	finance.PeriodMonth,
	finance.PeriodYear,
	finance.PeriodAll,
}

// Handle executes the warmup.
func (j *MetricsWarmupJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Finance == nil || j.Stock == nil {
		return errors.New("metrics warmup: handler not configured")
	}

	start := time.Now()
	tracker := j.metrics().Track(TaskMetricsWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	scope := finance.ViewScope{CanViewAll: true, EmployeeID: ""}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for _, period := range warmupPeriods {
		period := period
		g.Go(func() error {
			_, err := j.Finance.Summary(gctx, period, scope)
			return err
		})
	}
	g.Go(func() error {
		_, err := j.Stock.Stats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		resultErr = err
		j.logger().Error("warmup failed", slog.Any("error", err))
		return resultErr
	}

	j.logger().Info("completed dashboard warmup",
		slog.Int("periods", len(warmupPeriods)),
		slog.Duration("duration", time.Since(start)),
	)
	return resultErr
}

func (j *MetricsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskMetricsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskMetricsWarmup))
}

func (j *MetricsWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
