package repository

import (
	"context"
	"humaniq_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseAvailabilityRepository struct {
	DB *gorm.DB
}

func NewCourseAvailabilityRepository(db *gorm.DB) *CourseAvailabilityRepository {
	return &CourseAvailabilityRepository{DB: db}
}

func (r *CourseAvailabilityRepository) Find(ctx context.Context, key model.CourseKey) (*model.CourseAvailability, error) {
	var a model.CourseAvailability
	err := r.DB.WithContext(ctx).
		Where("colaborador_id = ? AND curso_slug = ?", key.ColaboradorID, key.CursoSlug).
		First(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// Upsert writes the gate for the pair. Loaded rows are saved by id; new rows replace the
// mutable columns of a concurrently inserted row for the same pair.
func (r *CourseAvailabilityRepository) Upsert(ctx context.Context, a *model.CourseAvailability) error {
	if a.ID != "" {
		return translate(r.DB.WithContext(ctx).Save(a).Error)
	}
	a.ID = model.GenerateUUID()
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "colaborador_id"}, {Name: "curso_slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"empresa_id", "disponivel", "periodicidade_dias", "ultima_liberacao",
			"proxima_disponibilidade", "atualizado_por", "motivo_bloqueio", "updated_at",
		}),
	}).Create(a).Error
	return translate(err)
}

func (r *CourseAvailabilityRepository) ListByColaborador(ctx context.Context, colaboradorID string) ([]model.CourseAvailability, error) {
	var list []model.CourseAvailability
	err := r.DB.WithContext(ctx).Where("colaborador_id = ?", colaboradorID).Find(&list).Error
	return list, err
}

// ListDue returns blocked rows whose scheduled release has passed.
func (r *CourseAvailabilityRepository) ListDue(ctx context.Context, now time.Time) ([]model.CourseAvailability, error) {
	var list []model.CourseAvailability
	err := r.DB.WithContext(ctx).
		Where("disponivel = ? AND proxima_disponibilidade IS NOT NULL AND proxima_disponibilidade <= ?", false, now).
		Order("proxima_disponibilidade ASC").
		Find(&list).Error
	return list, err
}
