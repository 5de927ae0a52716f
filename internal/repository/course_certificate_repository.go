package repository

import (
	"context"
	"humaniq_backend/internal/model"

	"gorm.io/gorm"
)

type CourseCertificateRepository struct {
	DB *gorm.DB
}

func NewCourseCertificateRepository(db *gorm.DB) *CourseCertificateRepository {
	return &CourseCertificateRepository{DB: db}
}

func (r *CourseCertificateRepository) FindByKey(ctx context.Context, key model.CourseKey) (*model.CourseCertificate, error) {
	var c model.CourseCertificate
	err := r.DB.WithContext(ctx).
		Where("colaborador_id = ? AND curso_slug = ?", key.ColaboradorID, key.CursoSlug).
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CourseCertificateRepository) FindByCode(ctx context.Context, code string) (*model.CourseCertificate, error) {
	var c model.CourseCertificate
	err := r.DB.WithContext(ctx).Where("codigo_validacao = ?", code).First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Create inserts the certificate. A violated unique index surfaces as util.ErrConflict.
func (r *CourseCertificateRepository) Create(ctx context.Context, c *model.CourseCertificate) error {
	return translate(r.DB.WithContext(ctx).Create(c).Error)
}

func (r *CourseCertificateRepository) ListByColaborador(ctx context.Context, colaboradorID string) ([]model.CourseCertificate, error) {
	var list []model.CourseCertificate
	err := r.DB.WithContext(ctx).
		Where("colaborador_id = ?", colaboradorID).
		Order("data_emissao DESC").
		Find(&list).Error
	return list, err
}
