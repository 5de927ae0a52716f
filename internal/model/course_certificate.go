package model

import "time"

// CourseCertificate is immutable once issued. There is no update path for it.
//
// swagger:model CourseCertificate
type CourseCertificate struct {
	UUIDBase
	ColaboradorID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_cert_colab_curso" json:"colaboradorId"`
	EmpresaID       string    `gorm:"type:varchar(36);index" json:"empresaId"`
	CursoID         string    `gorm:"size:100;not null" json:"cursoId"`
	CursoSlug       string    `gorm:"size:150;not null;uniqueIndex:idx_cert_colab_curso" json:"cursoSlug"`
	CursoTitulo     string    `gorm:"size:255;not null" json:"cursoTitulo"`
	ColaboradorNome string    `gorm:"size:200;not null" json:"colaboradorNome"`
	CargaHoraria    int       `gorm:"not null" json:"cargaHoraria"`
	CodigoValidacao string    `gorm:"size:64;not null;uniqueIndex" json:"codigoValidacao"`
	DataEmissao     time.Time `gorm:"not null" json:"dataEmissao"`
	Valido          bool      `gorm:"not null;default:true" json:"valido"`
	EmitidoPor      string    `gorm:"size:100" json:"emitidoPor"`
	MotivoEmissao   string    `gorm:"size:255" json:"motivoEmissao"`
}

func (CourseCertificate) TableName() string {
	return "curso_certificados"
}

func (c *CourseCertificate) Key() CourseKey {
	return CourseKey{ColaboradorID: c.ColaboradorID, CursoSlug: c.CursoSlug}
}

// PublicCertificate is what the unauthenticated validation endpoint reveals.
type PublicCertificate struct {
	CodigoValidacao string    `json:"codigoValidacao"`
	ColaboradorNome string    `json:"colaboradorNome"`
	CursoTitulo     string    `json:"cursoTitulo"`
	CargaHoraria    int       `json:"cargaHoraria"`
	DataEmissao     time.Time `json:"dataEmissao"`
}

func (c *CourseCertificate) Public() *PublicCertificate {
	return &PublicCertificate{
		CodigoValidacao: c.CodigoValidacao,
		ColaboradorNome: c.ColaboradorNome,
		CursoTitulo:     c.CursoTitulo,
		CargaHoraria:    c.CargaHoraria,
		DataEmissao:     c.DataEmissao,
	}
}
