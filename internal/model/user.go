package model

type UserRole string

const (
	RoleColaborador UserRole = "colaborador"
	RoleEmpresa     UserRole = "empresa"
	RoleAdmin       UserRole = "admin"
)

// Colaborador is owned by the onboarding system; this service only reads it.
//
// swagger:model Colaborador
type Colaborador struct {
	ID        string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Nome      string `gorm:"size:200;not null" json:"nome"`
	Email     string `gorm:"size:200;index" json:"email"`
	EmpresaID string `gorm:"type:varchar(36);index" json:"empresaId"`
	Ativo     bool   `gorm:"default:true" json:"ativo"`
}

func (Colaborador) TableName() string {
	return "colaboradores"
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID        string
	Role      UserRole
	EmpresaID string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// System is the actor recorded for automatic changes (auto-lock, scheduler).
var System = Actor{ID: "system", Role: RoleAdmin}
