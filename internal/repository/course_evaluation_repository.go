package repository

import (
	"context"
	"humaniq_backend/internal/model"

	"gorm.io/gorm"
)

// CourseEvaluationRepository only appends and reads.
type CourseEvaluationRepository struct {
	DB *gorm.DB
}

func NewCourseEvaluationRepository(db *gorm.DB) *CourseEvaluationRepository {
	return &CourseEvaluationRepository{DB: db}
}

func (r *CourseEvaluationRepository) Create(ctx context.Context, e *model.CourseEvaluation) error {
	return translate(r.DB.WithContext(ctx).Create(e).Error)
}

func (r *CourseEvaluationRepository) ListByKey(ctx context.Context, key model.CourseKey) ([]model.CourseEvaluation, error) {
	var list []model.CourseEvaluation
	err := r.DB.WithContext(ctx).
		Where("colaborador_id = ? AND curso_slug = ?", key.ColaboradorID, key.CursoSlug).
		Order("tentativa ASC").
		Find(&list).Error
	return list, err
}

func (r *CourseEvaluationRepository) HasPassed(ctx context.Context, key model.CourseKey) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.CourseEvaluation{}).
		Where("colaborador_id = ? AND curso_slug = ? AND aprovado = ?", key.ColaboradorID, key.CursoSlug, true).
		Count(&count).Error
	return count > 0, err
}
