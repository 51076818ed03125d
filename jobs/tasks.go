package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/ryus-backoffice/ryus-backoffice/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLowStockScan walks the catalogue and raises alerts for variants
	// running out of sellable stock.
	TaskLowStockScan = "stock:low_scan"
	// TaskNotifyLowStock delivers a single low-stock alert.
	TaskNotifyLowStock = "stock:notify_low"
	// TaskMetricsWarmup precomputes the dashboard aggregates so the first
	// morning request hits a warm cache.
	TaskMetricsWarmup = "dashboard:warmup"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// LowStockScanPayload tunes one scan run.
type LowStockScanPayload struct {
	// IncludeOutOfStock also alerts for variants already at zero on hand.
	IncludeOutOfStock bool `json:"include_out_of_stock"`
}

// NewLowStockScanTask constructs the scan task.
func NewLowStockScanTask(payload LowStockScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, data), nil
}

// NotifyLowStockPayload identifies the variant an alert is about.
type NotifyLowStockPayload struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Available int    `json:"available_quantity"`
	Level     string `json:"level"`
}

// NewNotifyLowStockTask constructs a notification task.
func NewNotifyLowStockTask(payload NotifyLowStockPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotifyLowStock, data), nil
}

// NewMetricsWarmupTask constructs the warmup task.
func NewMetricsWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskMetricsWarmup, nil)
}

// HandleNotifyLowStockTask processes TaskNotifyLowStock tasks.
func HandleNotifyLowStockTask(ctx context.Context, t *asynq.Task) error {
	var payload NotifyLowStockPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder: deliver via Telegram once the bot account is provisioned.
	slog.Default().Warn("low stock alert",
		slog.String("product_id", payload.ProductID),
		slog.String("variant_id", payload.VariantID),
		slog.Int("available", payload.Available),
		slog.String("level", payload.Level),
	)
	return nil
}
