package repository

import (
	"context"
	"humaniq_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *AuditRepository) ListByAction(ctx context.Context, action string, limit int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []model.AuditLog
	err := r.DB.WithContext(ctx).
		Where("action = ?", action).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
