package repository

import (
	"context"
	"humaniq_backend/internal/model"

	"gorm.io/gorm"
)

// ColaboradorRepository reads the collaborators table maintained by the onboarding system.
type ColaboradorRepository struct {
	DB *gorm.DB
}

func NewColaboradorRepository(db *gorm.DB) *ColaboradorRepository {
	return &ColaboradorRepository{DB: db}
}

func (r *ColaboradorRepository) FindByID(ctx context.Context, id string) (*model.Colaborador, error) {
	var c model.Colaborador
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ColaboradorRepository) ListByEmpresa(ctx context.Context, empresaID string) ([]model.Colaborador, error) {
	var list []model.Colaborador
	err := r.DB.WithContext(ctx).
		Where("empresa_id = ? AND ativo = ?", empresaID, true).
		Order("nome ASC").
		Find(&list).Error
	return list, err
}
