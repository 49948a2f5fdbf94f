// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormStorageMetricsProvider implements StorageMetricsProvider using GORM.
// It queries the divisions table directly for aggregated metrics.
type GormStorageMetricsProvider struct {
	db *gorm.DB
}

// NewGormStorageMetricsProvider creates a new GormStorageMetricsProvider.
func NewGormStorageMetricsProvider(db *gorm.DB) *GormStorageMetricsProvider {
	return &GormStorageMetricsProvider{db: db}
}

// GetStorageUsageByDivision returns the current storage usage of every division.
func (p *GormStorageMetricsProvider) GetStorageUsageByDivision(ctx context.Context) ([]DivisionStorageUsage, error) {
	var usages []DivisionStorageUsage
	err := p.db.WithContext(ctx).
		Table("divisions").
		Select("id as division_id, used_capacity, max_capacity").
		Find(&usages).Error

	return usages, err
}

// GormStockMetricsProvider implements StockMetricsProvider using GORM.
type GormStockMetricsProvider struct {
	db *gorm.DB
}

// NewGormStockMetricsProvider creates a new GormStockMetricsProvider.
func NewGormStockMetricsProvider(db *gorm.DB) *GormStockMetricsProvider {
	return &GormStockMetricsProvider{db: db}
}

// GetLowStockCount returns the count of items at or below their minimum quantity.
func (p *GormStockMetricsProvider) GetLowStockCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("stock_items").
		Where("min_quantity > 0 AND quantity <= min_quantity").
		Count(&count).Error

	return count, err
}
