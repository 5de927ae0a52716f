package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AuditCertificateIssued  = "certificate_issued"
	AuditPurgeCollaborator  = "purge_collaborator_courses"
	AuditPurgeAll           = "purge_all_course_data"
	AuditAvailabilityChange = "availability_changed"
)

// AuditLog rows are append-only.
type AuditLog struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ActorID   string         `gorm:"size:100;index" json:"actorId"`
	ActorRole string         `gorm:"size:30" json:"actorRole"`
	Action    string         `gorm:"size:60;not null;index" json:"action"`
	Target    string         `gorm:"size:200" json:"target"`
	Outcome   string         `gorm:"size:30" json:"outcome"`
	Details   datatypes.JSON `json:"details"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// PurgeResult counts the rows removed per table by a purge.
type PurgeResult struct {
	Progresso       int64 `json:"progresso"`
	Avaliacoes      int64 `json:"avaliacoes"`
	Certificados    int64 `json:"certificados"`
	Disponibilidade int64 `json:"disponibilidade"`
}

func (r PurgeResult) Total() int64 {
	return r.Progresso + r.Avaliacoes + r.Certificados + r.Disponibilidade
}
