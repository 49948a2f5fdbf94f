// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the back-office system.
// It tracks warehouse order activity, helpdesk tickets, document uploads,
// and storage/stock health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	orderCreatedTotal     *Counter
	ticketOpenedTotal     *Counter
	documentUploadedTotal *Counter
	documentBytesTotal    *Counter

	// Gauge metrics (point-in-time values)
	storageUsedBytes  *Gauge
	storageUsagePct   *FloatGauge
	stockLowItemCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data providers for periodic collection
	storageProvider StorageMetricsProvider
	stockProvider   StockMetricsProvider
}

// DivisionStorageUsage is a point-in-time snapshot of one division's storage.
type DivisionStorageUsage struct {
	DivisionID   uuid.UUID
	UsedCapacity int64
	MaxCapacity  int64
}

// StorageMetricsProvider provides storage data for periodic metrics collection.
// This interface allows the telemetry layer to query storage state without
// depending on the division domain directly.
type StorageMetricsProvider interface {
	// GetStorageUsageByDivision returns the current storage usage of every division
	GetStorageUsageByDivision(ctx context.Context) ([]DivisionStorageUsage, error)
}

// StockMetricsProvider provides stock data for periodic metrics collection.
type StockMetricsProvider interface {
	// GetLowStockCount returns the count of items at or below their minimum quantity
	GetLowStockCount(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	StorageProvider StorageMetricsProvider
	StockProvider   StockMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:           cfg.Meter,
		logger:          logger,
		stopChan:        make(chan struct{}),
		storageProvider: cfg.StorageProvider,
		stockProvider:   cfg.StockProvider,
	}

	// Initialize counter metrics
	var err error

	bm.orderCreatedTotal, err = NewCounter(
		cfg.Meter,
		"backoffice_warehouse_order_created_total",
		"Total number of warehouse orders created",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	bm.ticketOpenedTotal, err = NewCounter(
		cfg.Meter,
		"backoffice_ticket_opened_total",
		"Total number of helpdesk tickets opened",
		"{tickets}",
	)
	if err != nil {
		return nil, err
	}

	bm.documentUploadedTotal, err = NewCounter(
		cfg.Meter,
		"backoffice_document_uploaded_total",
		"Total number of documents uploaded",
		"{documents}",
	)
	if err != nil {
		return nil, err
	}

	bm.documentBytesTotal, err = NewCounter(
		cfg.Meter,
		"backoffice_document_bytes_total",
		"Total bytes of uploaded documents",
		"By",
	)
	if err != nil {
		return nil, err
	}

	// Storage and stock gauge metrics
	bm.storageUsedBytes, err = NewGauge(
		cfg.Meter,
		"backoffice_storage_used_bytes",
		"Current storage usage per division",
		"By",
	)
	if err != nil {
		return nil, err
	}

	bm.storageUsagePct, err = NewFloatGauge(
		cfg.Meter,
		"backoffice_storage_usage_percent",
		"Current storage usage per division as a percentage of its quota",
		"%",
	)
	if err != nil {
		return nil, err
	}

	bm.stockLowItemCount, err = NewGauge(
		cfg.Meter,
		"backoffice_stock_low_item_count",
		"Number of stock items at or below their minimum quantity",
		"{items}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Order Metrics
// =============================================================================

// RecordOrderCreated records a warehouse order creation event.
// This should be called from the application layer when an order is created.
func (bm *BusinessMetrics) RecordOrderCreated(ctx context.Context, divisionID uuid.UUID) {
	bm.orderCreatedTotal.Inc(ctx,
		AttrDivisionID.String(divisionID.String()),
	)
}

// =============================================================================
// Ticket Metrics
// =============================================================================

// RecordTicketOpened records a new helpdesk ticket.
func (bm *BusinessMetrics) RecordTicketOpened(ctx context.Context, category, priority string) {
	bm.ticketOpenedTotal.Inc(ctx,
		AttrTicketCategory.String(category),
		AttrTicketPriority.String(priority),
	)
}

// =============================================================================
// Document Metrics
// =============================================================================

// RecordDocumentUploaded records a successful document upload.
func (bm *BusinessMetrics) RecordDocumentUploaded(ctx context.Context, category string, sizeBytes int64) {
	bm.documentUploadedTotal.Inc(ctx,
		AttrDocumentCategory.String(category),
	)
	bm.documentBytesTotal.Add(ctx, sizeBytes,
		AttrDocumentCategory.String(category),
	)
}

// =============================================================================
// Storage and Stock Metrics
// =============================================================================

// RecordStorageUsage records the current storage usage for a division.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordStorageUsage(ctx context.Context, usage DivisionStorageUsage) {
	bm.storageUsedBytes.Record(ctx, usage.UsedCapacity,
		AttrDivisionID.String(usage.DivisionID.String()),
	)
	if usage.MaxCapacity > 0 {
		pct := float64(usage.UsedCapacity) / float64(usage.MaxCapacity) * 100
		bm.storageUsagePct.Record(ctx, pct,
			AttrDivisionID.String(usage.DivisionID.String()),
		)
	}
}

// RecordLowStockCount records the number of items at or below minimum quantity.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordLowStockCount(ctx context.Context, count int64) {
	bm.stockLowItemCount.Record(ctx, count)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects storage and stock metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectGaugeMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectGaugeMetrics(ctx)
		}
	}
}

// collectGaugeMetrics collects storage and stock gauge metrics.
func (bm *BusinessMetrics) collectGaugeMetrics(ctx context.Context) {
	if bm.storageProvider != nil {
		usages, err := bm.storageProvider.GetStorageUsageByDivision(ctx)
		if err != nil {
			bm.logger.Error("Failed to collect storage usage metrics", zap.Error(err))
		} else {
			for _, usage := range usages {
				bm.RecordStorageUsage(ctx, usage)
			}
		}
	}

	if bm.stockProvider != nil {
		lowStockCount, err := bm.stockProvider.GetLowStockCount(ctx)
		if err != nil {
			bm.logger.Error("Failed to collect low stock count", zap.Error(err))
		} else {
			bm.RecordLowStockCount(ctx, lowStockCount)
		}
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
