package repository

import (
	"context"
	"humaniq_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseProgressRepository struct {
	DB       *gorm.DB
	lockRows bool
}

func NewCourseProgressRepository(db *gorm.DB) *CourseProgressRepository {
	return &CourseProgressRepository{DB: db, lockRows: db.Dialector.Name() != "sqlite"}
}

func (r *CourseProgressRepository) Find(ctx context.Context, key model.CourseKey) (*model.CourseProgress, error) {
	return r.find(r.DB.WithContext(ctx), key)
}

func (r *CourseProgressRepository) FindForUpdate(ctx context.Context, key model.CourseKey) (*model.CourseProgress, error) {
	db := r.DB.WithContext(ctx)
	if r.lockRows {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.find(db, key)
}

func (r *CourseProgressRepository) find(db *gorm.DB, key model.CourseKey) (*model.CourseProgress, error) {
	var p model.CourseProgress
	err := db.Where("colaborador_id = ? AND curso_slug = ?", key.ColaboradorID, key.CursoSlug).
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *CourseProgressRepository) Create(ctx context.Context, p *model.CourseProgress) error {
	return translate(r.DB.WithContext(ctx).Create(p).Error)
}

func (r *CourseProgressRepository) Save(ctx context.Context, p *model.CourseProgress) error {
	return translate(r.DB.WithContext(ctx).Save(p).Error)
}

func (r *CourseProgressRepository) ListByColaborador(ctx context.Context, colaboradorID string) ([]model.CourseProgress, error) {
	var list []model.CourseProgress
	err := r.DB.WithContext(ctx).
		Where("colaborador_id = ?", colaboradorID).
		Order("data_inicio ASC").
		Find(&list).Error
	return list, err
}
