package model

import "time"

const (
	ReasonNotReleased      = "not released"
	ReasonBlockedByCompany = "blocked by company"
)

// CourseAvailability is the company-controlled gate for one collaborator and course.
//
// swagger:model CourseAvailability
type CourseAvailability struct {
	UUIDBase
	ColaboradorID          string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_disp_colab_curso" json:"colaboradorId"`
	EmpresaID              string     `gorm:"type:varchar(36);index" json:"empresaId"`
	CursoSlug              string     `gorm:"size:150;not null;uniqueIndex:idx_disp_colab_curso" json:"cursoSlug"`
	Disponivel             bool       `gorm:"not null;default:false" json:"disponivel"`
	PeriodicidadeDias      *int       `json:"periodicidadeDias"`
	UltimaLiberacao        *time.Time `json:"ultimaLiberacao"`
	ProximaDisponibilidade *time.Time `gorm:"index" json:"proximaDisponibilidade"`
	AtualizadoPor          string     `gorm:"size:100" json:"atualizadoPor"`
	MotivoBloqueio         string     `gorm:"size:255" json:"motivoBloqueio,omitempty"`
}

func (CourseAvailability) TableName() string {
	return "curso_disponibilidade"
}

// Release opens the course and clears any pending schedule.
func (a *CourseAvailability) Release(by string, now time.Time) {
	t := now
	a.Disponivel = true
	a.UltimaLiberacao = &t
	a.ProximaDisponibilidade = nil
	a.MotivoBloqueio = ""
	a.AtualizadoPor = by
}

// Block closes the course. With a periodicity the next release is scheduled.
func (a *CourseAvailability) Block(by, reason string, now time.Time) {
	a.Disponivel = false
	a.AtualizadoPor = by
	a.MotivoBloqueio = reason
	a.ProximaDisponibilidade = nil
	if a.PeriodicidadeDias != nil && *a.PeriodicidadeDias > 0 {
		next := now.AddDate(0, 0, *a.PeriodicidadeDias)
		a.ProximaDisponibilidade = &next
	}
}

// AvailabilityStatus is the gate's answer.
type AvailabilityStatus struct {
	Available bool   `json:"disponivel"`
	Reason    string `json:"motivo,omitempty"`
}
