package repository

import (
	"context"

	"golang-token-pulse/internal/entity"

	"gorm.io/gorm"
)

// NewDiscoveryRunRepository creates a new GORM-based run history repository.
func NewDiscoveryRunRepository(db *gorm.DB) DiscoveryRunRepository {
	return &discoveryRunRepository{db: db}
}

type discoveryRunRepository struct {
	db *gorm.DB
}

// Create inserts a new run record.
func (r *discoveryRunRepository) Create(ctx context.Context, run *entity.DiscoveryRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// Update saves the current state of a run record.
func (r *discoveryRunRepository) Update(ctx context.Context, run *entity.DiscoveryRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

// FindLatest retrieves the most recent runs, newest first.
func (r *discoveryRunRepository) FindLatest(ctx context.Context, limit int) ([]entity.DiscoveryRun, error) {
	var runs []entity.DiscoveryRun
	if err := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
