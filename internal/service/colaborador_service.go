package service

import (
	"context"
	"encoding/json"
	"errors"
	"humaniq_backend/internal/catalog"
	"humaniq_backend/internal/model"
	"humaniq_backend/internal/repository"
	"humaniq_backend/internal/util"
	"humaniq_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func utcNow() time.Time {
	return time.Now().UTC()
}

// authorizeColaborador scopes company staff to their own collaborators. Admins may act
// on collaborators unknown to this service, in which case the result is nil.
func authorizeColaborador(ctx context.Context, store repository.Store, actor model.Actor, colaboradorID string) (*model.Colaborador, error) {
	colab, err := store.Colaboradores().FindByID(ctx, colaboradorID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) && actor.IsAdmin() {
			return nil, nil
		}
		return nil, err
	}
	if actor.IsAdmin() {
		return colab, nil
	}
	if actor.Role != model.RoleEmpresa || actor.EmpresaID == "" || colab.EmpresaID != actor.EmpresaID {
		return nil, util.ErrPermissionDenied
	}
	return colab, nil
}

// writeAudit appends an audit row. A failed write is logged and never fails the operation.
func writeAudit(ctx context.Context, store repository.Store, actor model.Actor, action, target, outcome string, details datatypes.JSON) {
	entry := &model.AuditLog{
		ActorID:   actor.ID,
		ActorRole: string(actor.Role),
		Action:    action,
		Target:    target,
		Outcome:   outcome,
		Details:   details,
	}
	if err := store.Audit().Create(context.WithoutCancel(ctx), entry); err != nil {
		logger.Log.Error("audit write failed",
			zap.String("action", action),
			zap.String("target", target),
			zap.String("outcome", outcome),
			zap.Error(err))
	}
}

type ColaboradorService struct {
	Store        repository.Store
	Catalog      *catalog.Catalog
	Certificates *CertificateService
	Storage      *StorageService
}

func NewColaboradorService(store repository.Store, cat *catalog.Catalog, certificates *CertificateService, storage *StorageService) *ColaboradorService {
	return &ColaboradorService{Store: store, Catalog: cat, Certificates: certificates, Storage: storage}
}

// CourseDetail is one catalog course as seen for a collaborator.
type CourseDetail struct {
	Curso               catalog.Course            `json:"curso"`
	Estado              model.CourseState         `json:"estado"`
	Progresso           *model.CourseProgress     `json:"progresso"`
	Certificado         *CertificateView          `json:"certificado"`
	Disponibilidade     *model.CourseAvailability `json:"disponibilidade"`
	Disponivel          bool                      `json:"disponivel"`
	TentativasRestantes int                       `json:"tentativasRestantes"`
}

type CollaboratorCourses struct {
	Colaborador *model.Colaborador `json:"colaborador,omitempty"`
	Cursos      []CourseDetail     `json:"cursos"`
}

// CourseDetails combines catalog, progress, certificates and availability for one collaborator.
func (s *ColaboradorService) CourseDetails(ctx context.Context, actor model.Actor, colaboradorID string) (*CollaboratorCourses, error) {
	colab, err := authorizeColaborador(ctx, s.Store, actor, colaboradorID)
	if err != nil {
		return nil, err
	}

	progress, err := s.Store.Progress().ListByColaborador(ctx, colaboradorID)
	if err != nil {
		return nil, err
	}
	certs, err := s.Store.Certificates().ListByColaborador(ctx, colaboradorID)
	if err != nil {
		return nil, err
	}
	gates, err := s.Store.Availability().ListByColaborador(ctx, colaboradorID)
	if err != nil {
		return nil, err
	}

	progressBySlug := make(map[string]*model.CourseProgress, len(progress))
	for i := range progress {
		progressBySlug[progress[i].CursoSlug] = &progress[i]
	}
	certBySlug := make(map[string]*model.CourseCertificate, len(certs))
	for i := range certs {
		certBySlug[certs[i].CursoSlug] = &certs[i]
	}
	gateBySlug := make(map[string]*model.CourseAvailability, len(gates))
	for i := range gates {
		gateBySlug[gates[i].CursoSlug] = &gates[i]
	}

	out := &CollaboratorCourses{Colaborador: colab, Cursos: make([]CourseDetail, 0, s.Catalog.Len())}
	for _, course := range s.Catalog.List() {
		p := progressBySlug[course.Slug]
		c := certBySlug[course.Slug]
		a := gateBySlug[course.Slug]

		d := CourseDetail{
			Curso:               course,
			Estado:              model.DeriveCourseState(p, a, c),
			Progresso:           p,
			Disponibilidade:     a,
			Disponivel:          a != nil && a.Disponivel,
			TentativasRestantes: model.MaxEvaluationAttempts,
		}
		if p != nil {
			d.TentativasRestantes = p.AttemptsRemaining()
		}
		if c != nil {
			d.Certificado = s.Certificates.view(c)
		}
		out.Cursos = append(out.Cursos, d)
	}
	return out, nil
}

// PurgeCollaborator irreversibly deletes every course record of one collaborator.
func (s *ColaboradorService) PurgeCollaborator(ctx context.Context, actor model.Actor, colaboradorID string) (model.PurgeResult, error) {
	if colaboradorID == "" {
		return model.PurgeResult{}, util.ErrNotFound
	}
	if _, err := authorizeColaborador(ctx, s.Store, actor, colaboradorID); err != nil {
		writeAudit(ctx, s.Store, actor, model.AuditPurgeCollaborator, colaboradorID, "denied", nil)
		return model.PurgeResult{}, err
	}

	certs, err := s.Store.Certificates().ListByColaborador(ctx, colaboradorID)
	if err != nil {
		return model.PurgeResult{}, err
	}

	writeAudit(ctx, s.Store, actor, model.AuditPurgeCollaborator, colaboradorID, "started", nil)
	res, err := s.Store.PurgeColaborador(ctx, colaboradorID)
	s.finishPurge(ctx, actor, model.AuditPurgeCollaborator, colaboradorID, res, err)
	if err != nil {
		return model.PurgeResult{}, err
	}

	s.dropArchives(ctx, certs)
	return res, nil
}

// PurgeAll irreversibly deletes all course records. Admin only, and only when confirmed.
func (s *ColaboradorService) PurgeAll(ctx context.Context, actor model.Actor, confirmed bool) (model.PurgeResult, error) {
	if !actor.IsAdmin() {
		writeAudit(ctx, s.Store, actor, model.AuditPurgeAll, "*", "denied", nil)
		return model.PurgeResult{}, util.ErrPermissionDenied
	}
	if !confirmed {
		return model.PurgeResult{}, util.ErrPurgeNotConfirmed
	}

	writeAudit(ctx, s.Store, actor, model.AuditPurgeAll, "*", "started", nil)
	res, err := s.Store.PurgeAll(ctx)
	s.finishPurge(ctx, actor, model.AuditPurgeAll, "*", res, err)
	return res, err
}

func (s *ColaboradorService) finishPurge(ctx context.Context, actor model.Actor, action, target string, res model.PurgeResult, err error) {
	outcome := "succeeded"
	fields := []zap.Field{
		zap.String("action", action),
		zap.String("target", target),
		zap.String("actorId", actor.ID),
	}
	var details datatypes.JSON
	if err != nil {
		outcome = "failed"
		logger.Log.Error("course data purge failed", append(fields, zap.Error(err))...)
	} else {
		details, _ = json.Marshal(res)
		logger.Log.Warn("course data purged", append(fields, zap.Int64("rows", res.Total()))...)
	}
	writeAudit(ctx, s.Store, actor, action, target, outcome, details)
}

func (s *ColaboradorService) dropArchives(ctx context.Context, certs []model.CourseCertificate) {
	if s.Storage == nil {
		return
	}
	for _, c := range certs {
		if err := s.Storage.DeleteCertificate(ctx, c.CodigoValidacao); err != nil {
			logger.Log.Warn("certificate archive not removed", zap.String("codigo", c.CodigoValidacao), zap.Error(err))
		}
	}
}
