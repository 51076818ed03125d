package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/ryus-backoffice/ryus-backoffice/internal/jobs"
	"github.com/ryus-backoffice/ryus-backoffice/internal/stock"
)

// StockPort supplies the variants needing replenishment attention.
type StockPort interface {
	LowStock(ctx context.Context) ([]stock.VariantStats, error)
}

// DedupPort suppresses repeat alerts for the same variant inside a window.
type DedupPort interface {
	Seen(ctx context.Context, key string) (bool, error)
}

// NotifyPort enqueues the per-variant alert deliveries.
type NotifyPort interface {
	EnqueueNotifyLowStock(ctx context.Context, payload NotifyLowStockPayload) error
}

// LowStockScanJob walks the derived inventory view and raises one alert per
// variant that crossed into the low or out-of-stock bucket.
type LowStockScanJob struct {
	Stock   StockPort
	Dedup   DedupPort
	Notify  NotifyPort
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewLowStockScanJob initialises the scan handler.
func NewLowStockScanJob(stockPort StockPort, dedup DedupPort, notify NotifyPort, logger *slog.Logger, metrics *jobmetrics.Metrics) *LowStockScanJob {
	return &LowStockScanJob{Stock: stockPort, Dedup: dedup, Notify: notify, Logger: logger, Metrics: metrics}
}

// Handle executes the scan.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Stock == nil {
		return errors.New("low stock scan: handler not configured")
	}
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	start := time.Now()
	tracker := j.metrics().Track(TaskLowStockScan)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting low stock scan")

	variants, err := j.Stock.LowStock(ctx)
	if err != nil {
		resultErr = err
		logger.Error("scan failed", slog.Any("error", err))
		return resultErr
	}

	var alerted, suppressed int
	for _, vs := range variants {
		if vs.Level == stock.LevelOutOfStock && !payload.IncludeOutOfStock {
			continue
		}
		if j.Dedup != nil {
			seen, err := j.Dedup.Seen(ctx, "lowstock:"+vs.VariantID)
			if err != nil {
				resultErr = err
				logger.Error("dedup check failed", slog.String("variant_id", vs.VariantID), slog.Any("error", err))
				return resultErr
			}
			if seen {
				suppressed++
				continue
			}
		}
		if j.Notify != nil {
			if err := j.Notify.EnqueueNotifyLowStock(ctx, NotifyLowStockPayload{
				ProductID: vs.ProductID,
				VariantID: vs.VariantID,
				Available: vs.Available,
				Level:     string(vs.Level),
			}); err != nil {
				resultErr = err
				logger.Error("enqueue alert failed", slog.String("variant_id", vs.VariantID), slog.Any("error", err))
				return resultErr
			}
		}
		j.metrics().AddLowStockAlerts(string(vs.Level), 1)
		alerted++
	}

	logger.Info("completed low stock scan",
		slog.Int("candidates", len(variants)),
		slog.Int("alerted", alerted),
		slog.Int("suppressed", suppressed),
		slog.Duration("duration", time.Since(start)),
	)
	return resultErr
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskLowStockScan))
	}
	return slog.Default().With(slog.String("job", TaskLowStockScan))
}

func (j *LowStockScanJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
