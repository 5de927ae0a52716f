package model

import (
	"math"
	"slices"
	"time"

	"gorm.io/datatypes"
)

// MaxEvaluationAttempts is the hard cap on final evaluation submissions per collaborator and course.
const MaxEvaluationAttempts = 3

// CourseKey identifies the collaborator x course pair every lifecycle record is scoped to.
type CourseKey struct {
	ColaboradorID string
	CursoSlug     string
}

// swagger:model CourseProgress
type CourseProgress struct {
	UUIDBase
	ColaboradorID           string                   `gorm:"type:varchar(36);not null;uniqueIndex:idx_progresso_colab_curso" json:"colaboradorId"`
	CursoID                 string                   `gorm:"size:100" json:"cursoId"`
	CursoSlug               string                   `gorm:"size:150;not null;uniqueIndex:idx_progresso_colab_curso" json:"cursoSlug"`
	ModulosConcluidos       datatypes.JSONSlice[int] `json:"modulosConcluidos"`
	TotalModulos            int                      `gorm:"not null;default:0" json:"totalModulos"`
	ProgressoPorcentagem    int                      `gorm:"not null;default:0" json:"progressoPorcentagem"`
	AvaliacaoFinalRealizada bool                     `gorm:"default:false" json:"avaliacaoFinalRealizada"`
	AvaliacaoFinalAprovada  bool                     `gorm:"default:false" json:"avaliacaoFinalAprovada"`
	AvaliacaoFinalPontuacao int                      `gorm:"default:0" json:"avaliacaoFinalPontuacao"`
	TentativasAvaliacao     int                      `gorm:"not null;default:0" json:"tentativasAvaliacao"`
	DataInicio              time.Time                `json:"dataInicio"`
	DataUltimaAtualizacao   time.Time                `json:"dataUltimaAtualizacao"`
	DataConclusao           *time.Time               `json:"dataConclusao"`
}

func (CourseProgress) TableName() string {
	return "curso_progresso"
}

func NewCourseProgress(key CourseKey, cursoID string, totalModules int, now time.Time) *CourseProgress {
	return &CourseProgress{
		ColaboradorID:         key.ColaboradorID,
		CursoID:               cursoID,
		CursoSlug:             key.CursoSlug,
		ModulosConcluidos:     datatypes.JSONSlice[int]{},
		TotalModulos:          totalModules,
		DataInicio:            now,
		DataUltimaAtualizacao: now,
	}
}

func (p *CourseProgress) Key() CourseKey {
	return CourseKey{ColaboradorID: p.ColaboradorID, CursoSlug: p.CursoSlug}
}

func (p *CourseProgress) CompletedCount() int {
	return len(p.ModulosConcluidos)
}

func (p *CourseProgress) HasModule(moduleID int) bool {
	return slices.Contains(p.ModulosConcluidos, moduleID)
}

// ReconcileTotal raises the stored total to catalogTotal. The total never decreases.
func (p *CourseProgress) ReconcileTotal(catalogTotal int) bool {
	if catalogTotal <= 0 {
		return false
	}
	if p.TotalModulos <= 0 || catalogTotal > p.TotalModulos {
		p.TotalModulos = catalogTotal
		return true
	}
	return false
}

// MarkModule adds moduleID to the completed set. It reports whether the set changed.
func (p *CourseProgress) MarkModule(moduleID int) bool {
	if p.HasModule(moduleID) {
		return false
	}
	p.ModulosConcluidos = append(p.ModulosConcluidos, moduleID)
	return true
}

// Recompute derives the percentage and the completion timestamp from the completed set.
// The timestamp is kept from the first completion and cleared when the course grows.
func (p *CourseProgress) Recompute(now time.Time) {
	p.ProgressoPorcentagem = Percentage(p.CompletedCount(), p.TotalModulos)
	if p.IsModulesComplete() {
		if p.DataConclusao == nil {
			t := now
			p.DataConclusao = &t
		}
	} else {
		p.DataConclusao = nil
	}
	p.DataUltimaAtualizacao = now
}

// IsModulesComplete reports whether every module of the course has been completed.
func (p *CourseProgress) IsModulesComplete() bool {
	return p.TotalModulos > 0 && p.CompletedCount() >= p.TotalModulos && p.ProgressoPorcentagem >= 100
}

// IsCertifiable is the course-side precondition for a certificate.
func (p *CourseProgress) IsCertifiable() bool {
	return p.IsModulesComplete() && p.DataConclusao != nil
}

func (p *CourseProgress) AttemptsRemaining() int {
	if r := MaxEvaluationAttempts - p.TentativasAvaliacao; r > 0 {
		return r
	}
	return 0
}

// RecordAttempt overwrites the evaluation summary with the latest attempt.
func (p *CourseProgress) RecordAttempt(score int, passed bool, now time.Time) int {
	p.TentativasAvaliacao++
	p.AvaliacaoFinalRealizada = true
	p.AvaliacaoFinalAprovada = passed
	p.AvaliacaoFinalPontuacao = score
	p.DataUltimaAtualizacao = now
	return p.TentativasAvaliacao
}

// Percentage is round(100 * completed / total), capped at 100.
func Percentage(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(completed) / float64(total)))
	if pct > 100 {
		return 100
	}
	return pct
}

// PassingScore is ceil(0.7 * totalQuestions), computed in integers to avoid float rounding at the boundary.
func PassingScore(totalQuestions int) int {
	if totalQuestions <= 0 {
		return 0
	}
	return (7*totalQuestions + 9) / 10
}
