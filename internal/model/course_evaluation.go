package model

import (
	"time"

	"gorm.io/datatypes"
)

// CourseEvaluation is one final-assessment attempt. Rows are append-only.
//
// swagger:model CourseEvaluation
type CourseEvaluation struct {
	UUIDBase
	ColaboradorID  string         `gorm:"type:varchar(36);not null;index:idx_avaliacao_colab_curso" json:"colaboradorId"`
	CursoID        string         `gorm:"size:100" json:"cursoId"`
	CursoSlug      string         `gorm:"size:150;not null;index:idx_avaliacao_colab_curso" json:"cursoSlug"`
	Respostas      datatypes.JSON `json:"respostas"`
	Pontuacao      int            `gorm:"not null" json:"pontuacao"`
	TotalQuestoes  int            `gorm:"not null" json:"totalQuestoes"`
	Aprovado       bool           `gorm:"not null;default:false" json:"aprovado"`
	TempoGasto     int            `gorm:"default:0" json:"tempoGasto"`
	Tentativa      int            `gorm:"not null" json:"tentativa"`
	DataRealizacao time.Time      `json:"dataRealizacao"`
}

func (CourseEvaluation) TableName() string {
	return "curso_avaliacoes"
}
